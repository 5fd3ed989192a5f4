// Package di wires the offline-first data layer: one container holding the
// shared collaborators (SQLite handle, connectivity checker, logger, REST
// client settings) and a factory per entity type that assembles remote
// source, local cache, and policy into a ready repository.
package di

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/LazyDev-01/Dayliz-App-sub011/connectivity"
	"github.com/LazyDev-01/Dayliz-App-sub011/entity"
	"github.com/LazyDev-01/Dayliz-App-sub011/internal/memstore"
	"github.com/LazyDev-01/Dayliz-App-sub011/internal/restsource"
	"github.com/LazyDev-01/Dayliz-App-sub011/internal/sqlitestore"
	"github.com/LazyDev-01/Dayliz-App-sub011/logging"
	"github.com/LazyDev-01/Dayliz-App-sub011/offlinerepo"
)

// Config collects everything the data layer needs from the host app. It
// mirrors the internal restsource and memstore configs so callers never
// depend on internal packages.
type Config struct {
	// BaseURL is the backend API root.
	BaseURL string

	// APIKey is the backend's anonymous key.
	APIKey string

	// AuthToken is the current user's session token, when logged in.
	AuthToken string

	// DBPath is the SQLite file for the durable cache. ":memory:" works
	// for tests.
	DBPath string

	// ProbeEndpoints are host:port pairs the connectivity probe dials.
	// Ignored when Checker is set.
	ProbeEndpoints []string

	// ProbeTimeout bounds each probe dial.
	ProbeTimeout time.Duration

	// Checker overrides the dial probe entirely.
	Checker connectivity.Checker

	// HTTPClient overrides the default REST transport.
	HTTPClient *http.Client

	// MaxRetries bounds transient-failure retries per remote request.
	MaxRetries uint64

	// CatalogTTL is how long in-memory catalog caches keep entries.
	// Defaults to entity.CatalogMaxStaleness.
	CatalogTTL time.Duration

	// Logger may be nil.
	Logger logging.Logger
}

// Container manages the shared instances behind the per-entity repositories.
type Container struct {
	db      *sql.DB
	checker connectivity.Checker
	logger  logging.Logger
	restCfg restsource.Config
	memCfg  memstore.Config
}

// NewContainer opens the local database and prepares the shared
// collaborators. Close releases the database handle.
func NewContainer(cfg Config) (*Container, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	checker := cfg.Checker
	if checker == nil {
		checker = connectivity.NewDialChecker(cfg.ProbeTimeout, cfg.ProbeEndpoints...)
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = ":memory:"
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	// One connection keeps :memory: databases coherent and serializes
	// writers, which SQLite wants anyway.
	db.SetMaxOpenConns(1)

	restCfg := restsource.Config{
		BaseURL:    cfg.BaseURL,
		APIKey:     cfg.APIKey,
		AuthToken:  cfg.AuthToken,
		HTTPClient: cfg.HTTPClient,
		MaxRetries: cfg.MaxRetries,
		Logger:     logger,
	}
	if err := restCfg.Validate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	memCfg := memstore.DefaultConfig()
	if cfg.CatalogTTL > 0 {
		memCfg.TTL = cfg.CatalogTTL
	} else {
		memCfg.TTL = entity.CatalogMaxStaleness
	}

	return &Container{
		db:      db,
		checker: checker,
		logger:  logger,
		restCfg: restCfg,
		memCfg:  memCfg,
	}, nil
}

// Close releases the container's database handle.
func (c *Container) Close() error {
	return c.db.Close()
}

// Checker returns the shared connectivity checker.
func (c *Container) Checker() connectivity.Checker {
	return c.checker
}

// Logger returns the shared logger.
func (c *Container) Logger() logging.Logger {
	return c.logger
}

// Cart builds the cart repository. Cart reads use the aggregate RPC fast
// path that joins items with their products in one round trip.
func (c *Container) Cart(ctx context.Context) (*offlinerepo.Repository[entity.CartItem], error) {
	remote, err := restsource.NewAggregate[entity.CartItem](c.restCfg, restsource.Resource{
		Table:        "cart_items",
		ScopeColumn:  "user_id",
		AggregateRPC: "get_user_cart",
	})
	if err != nil {
		return nil, err
	}
	local, err := durableStore[entity.CartItem](ctx, c, "cart_items")
	if err != nil {
		return nil, err
	}
	return entity.NewCartRepository(remote, local, c.checker, c.logger)
}

// Wishlist builds the wishlist repository.
func (c *Container) Wishlist(ctx context.Context) (*offlinerepo.Repository[entity.WishlistItem], error) {
	remote, err := restsource.New[entity.WishlistItem](c.restCfg, restsource.Resource{
		Table:       "wishlist_items",
		ScopeColumn: "user_id",
	})
	if err != nil {
		return nil, err
	}
	local, err := durableStore[entity.WishlistItem](ctx, c, "wishlist_items")
	if err != nil {
		return nil, err
	}
	return entity.NewWishlistRepository(remote, local, c.checker, c.logger)
}

// Orders builds the orders repository.
func (c *Container) Orders(ctx context.Context) (*offlinerepo.Repository[entity.Order], error) {
	remote, err := restsource.New[entity.Order](c.restCfg, restsource.Resource{
		Table:       "orders",
		ScopeColumn: "user_id",
	})
	if err != nil {
		return nil, err
	}
	local, err := durableStore[entity.Order](ctx, c, "orders")
	if err != nil {
		return nil, err
	}
	return entity.NewOrdersRepository(remote, local, c.checker, c.logger)
}

// Addresses builds the addresses repository.
func (c *Container) Addresses(ctx context.Context) (*offlinerepo.Repository[entity.Address], error) {
	remote, err := restsource.New[entity.Address](c.restCfg, restsource.Resource{
		Table:       "addresses",
		ScopeColumn: "user_id",
	})
	if err != nil {
		return nil, err
	}
	local, err := durableStore[entity.Address](ctx, c, "addresses")
	if err != nil {
		return nil, err
	}
	return entity.NewAddressesRepository(remote, local, c.checker, c.logger)
}

// PaymentMethods builds the payment-methods repository.
func (c *Container) PaymentMethods(ctx context.Context) (*offlinerepo.Repository[entity.PaymentMethod], error) {
	remote, err := restsource.New[entity.PaymentMethod](c.restCfg, restsource.Resource{
		Table:       "payment_methods",
		ScopeColumn: "user_id",
	})
	if err != nil {
		return nil, err
	}
	local, err := durableStore[entity.PaymentMethod](ctx, c, "payment_methods")
	if err != nil {
		return nil, err
	}
	return entity.NewPaymentMethodsRepository(remote, local, c.checker, c.logger)
}

// Products builds the product catalog repository. Catalog caches live in
// memory: they are cheap to refetch and not worth disk writes.
func (c *Container) Products() (*offlinerepo.Repository[entity.Product], error) {
	remote, err := restsource.New[entity.Product](c.restCfg, restsource.Resource{Table: "products"})
	if err != nil {
		return nil, err
	}
	local, err := memstore.New[entity.Product](c.memCfg)
	if err != nil {
		return nil, err
	}
	return entity.NewProductsRepository(remote, local, c.checker, c.logger)
}

// Categories builds the categories repository.
func (c *Container) Categories() (*offlinerepo.Repository[entity.Category], error) {
	remote, err := restsource.New[entity.Category](c.restCfg, restsource.Resource{Table: "categories"})
	if err != nil {
		return nil, err
	}
	local, err := memstore.New[entity.Category](c.memCfg)
	if err != nil {
		return nil, err
	}
	return entity.NewCategoriesRepository(remote, local, c.checker, c.logger)
}

// durableStore opens a sqlite-backed store and makes sure its table exists.
// Since Go methods cannot have type parameters, this is a package-level
// function.
func durableStore[T any](ctx context.Context, c *Container, table string) (*sqlitestore.Store[T], error) {
	store, err := sqlitestore.New[T](c.db, table)
	if err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		return nil, err
	}
	return store, nil
}
