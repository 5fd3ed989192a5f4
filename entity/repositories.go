package entity

import (
	"time"

	"github.com/LazyDev-01/Dayliz-App-sub011/connectivity"
	"github.com/LazyDev-01/Dayliz-App-sub011/datasource"
	"github.com/LazyDev-01/Dayliz-App-sub011/logging"
	"github.com/LazyDev-01/Dayliz-App-sub011/offlinerepo"
)

// Staleness bounds per entity class. User-owned data has no bound (an old
// cart beats an empty screen) while catalog caches go stale after a day.
const (
	CatalogMaxStaleness = 24 * time.Hour
)

// Scope builders. The scope token identifies which logical collection an
// operation applies to; for user-owned entities that is the user, for
// catalog entities the whole table.
func CartScope(userID string) string      { return offlinerepo.ScopeFor("cart", userID) }
func WishlistScope(userID string) string  { return offlinerepo.ScopeFor("wishlist", userID) }
func OrdersScope(userID string) string    { return offlinerepo.ScopeFor("orders", userID) }
func AddressesScope(userID string) string { return offlinerepo.ScopeFor("addresses", userID) }
func PaymentMethodsScope(userID string) string {
	return offlinerepo.ScopeFor("payment_methods", userID)
}

// ProductsScope is the single scope for the product catalog.
func ProductsScope() string { return offlinerepo.ScopeFor("products", "all") }

// CategoriesScope is the single scope for the category list.
func CategoriesScope() string { return offlinerepo.ScopeFor("categories", "all") }

func handlersFor[T any](getID func(T) string, setID func(*T, string)) offlinerepo.Handlers[T] {
	return offlinerepo.Handlers[T]{GetID: getID, SetID: setID}
}

// NewCartRepository builds the cart repository. Cart is a convenience
// entity: offline writes are staged locally and reported as pending sync.
func NewCartRepository(
	remote datasource.RemoteSource[CartItem],
	local datasource.LocalSource[CartItem],
	network connectivity.Checker,
	log logging.Logger,
) (*offlinerepo.Repository[CartItem], error) {
	return offlinerepo.New(remote, local, network,
		handlersFor(
			func(c CartItem) string { return c.ID },
			func(c *CartItem, id string) { c.ID = id },
		),
		offlinerepo.Config{WriteMode: offlinerepo.WriteLocalFallback},
		log,
	)
}

// NewWishlistRepository builds the wishlist repository, same class as cart.
func NewWishlistRepository(
	remote datasource.RemoteSource[WishlistItem],
	local datasource.LocalSource[WishlistItem],
	network connectivity.Checker,
	log logging.Logger,
) (*offlinerepo.Repository[WishlistItem], error) {
	return offlinerepo.New(remote, local, network,
		handlersFor(
			func(w WishlistItem) string { return w.ID },
			func(w *WishlistItem, id string) { w.ID = id },
		),
		offlinerepo.Config{WriteMode: offlinerepo.WriteLocalFallback},
		log,
	)
}

// NewOrdersRepository builds the orders repository. Orders are critical:
// offline writes fail rather than stage, so a "placed" order is always a
// remote commit.
func NewOrdersRepository(
	remote datasource.RemoteSource[Order],
	local datasource.LocalSource[Order],
	network connectivity.Checker,
	log logging.Logger,
) (*offlinerepo.Repository[Order], error) {
	return offlinerepo.New(remote, local, network,
		handlersFor(
			func(o Order) string { return o.ID },
			func(o *Order, id string) { o.ID = id },
		),
		offlinerepo.Config{WriteMode: offlinerepo.WriteRemoteOnly},
		log,
	)
}

// NewPaymentMethodsRepository builds the payment-methods repository, same
// class as orders.
func NewPaymentMethodsRepository(
	remote datasource.RemoteSource[PaymentMethod],
	local datasource.LocalSource[PaymentMethod],
	network connectivity.Checker,
	log logging.Logger,
) (*offlinerepo.Repository[PaymentMethod], error) {
	return offlinerepo.New(remote, local, network,
		handlersFor(
			func(p PaymentMethod) string { return p.ID },
			func(p *PaymentMethod, id string) { p.ID = id },
		),
		offlinerepo.Config{WriteMode: offlinerepo.WriteRemoteOnly},
		log,
	)
}

// NewAddressesRepository builds the addresses repository. Address edits go
// to the remote only, matching the backend's ownership checks.
func NewAddressesRepository(
	remote datasource.RemoteSource[Address],
	local datasource.LocalSource[Address],
	network connectivity.Checker,
	log logging.Logger,
) (*offlinerepo.Repository[Address], error) {
	return offlinerepo.New(remote, local, network,
		handlersFor(
			func(a Address) string { return a.ID },
			func(a *Address, id string) { a.ID = id },
		),
		offlinerepo.Config{WriteMode: offlinerepo.WriteRemoteOnly},
		log,
	)
}

// NewProductsRepository builds the product catalog repository. The client
// never writes products; the repository is a read cache with a staleness
// bound.
func NewProductsRepository(
	remote datasource.RemoteSource[Product],
	local datasource.LocalSource[Product],
	network connectivity.Checker,
	log logging.Logger,
) (*offlinerepo.Repository[Product], error) {
	return offlinerepo.New(remote, local, network,
		handlersFor(
			func(p Product) string { return p.ID },
			func(p *Product, id string) { p.ID = id },
		),
		offlinerepo.Config{WriteMode: offlinerepo.WriteRemoteOnly, MaxStaleness: CatalogMaxStaleness},
		log,
	)
}

// NewCategoriesRepository builds the categories repository, same class as
// products.
func NewCategoriesRepository(
	remote datasource.RemoteSource[Category],
	local datasource.LocalSource[Category],
	network connectivity.Checker,
	log logging.Logger,
) (*offlinerepo.Repository[Category], error) {
	return offlinerepo.New(remote, local, network,
		handlersFor(
			func(c Category) string { return c.ID },
			func(c *Category, id string) { c.ID = id },
		),
		offlinerepo.Config{WriteMode: offlinerepo.WriteRemoteOnly, MaxStaleness: CatalogMaxStaleness},
		log,
	)
}
