package entity

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Product is a catalog item.
type Product struct {
	ID          string     `json:"id" msgpack:"id"`
	Name        string     `json:"name" msgpack:"name"`
	Description string     `json:"description,omitempty" msgpack:"description"`
	Price       float64    `json:"price" msgpack:"price"`
	SalePrice   *float64   `json:"sale_price,omitempty" msgpack:"sale_price"`
	Category    string     `json:"category" msgpack:"category"`
	Subcategory string     `json:"subcategory,omitempty" msgpack:"subcategory"`
	ImageURL    string     `json:"image_url,omitempty" msgpack:"image_url"`
	Stock       int        `json:"stock" msgpack:"stock"`
	IsFeatured  bool       `json:"is_featured" msgpack:"is_featured"`
	IsActive    bool       `json:"is_active" msgpack:"is_active"`
	CreatedAt   *time.Time `json:"created_at,omitempty" msgpack:"created_at"`
}

// EffectivePrice is the price the customer pays: the sale price when one is
// set, the list price otherwise.
func (p Product) EffectivePrice() float64 {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}

// Validate implements validation.Validatable.
func (p Product) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Price, validation.Min(0.0)),
		validation.Field(&p.Category, validation.Required),
		validation.Field(&p.Stock, validation.Min(0)),
	)
}

// CartItem is one line of a user's cart.
type CartItem struct {
	ID        string     `json:"id" msgpack:"id"`
	UserID    string     `json:"user_id" msgpack:"user_id"`
	ProductID string     `json:"product_id" msgpack:"product_id"`
	Quantity  int        `json:"quantity" msgpack:"quantity"`
	Product   *Product   `json:"product,omitempty" msgpack:"product"`
	CreatedAt *time.Time `json:"created_at,omitempty" msgpack:"created_at"`
}

// Validate implements validation.Validatable.
func (c CartItem) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ProductID, validation.Required),
		validation.Field(&c.Quantity, validation.Required, validation.Min(1)),
	)
}

// Cart is the aggregate view of a user's cart: the items with their products
// joined in, plus the computed total.
type Cart struct {
	Items []CartItem `json:"items"`
	Total float64    `json:"total"`
}

// NewCart computes the aggregate from cart lines. Lines without product data
// contribute nothing to the total.
func NewCart(items []CartItem) Cart {
	var total float64
	for _, item := range items {
		if item.Product != nil {
			total += float64(item.Quantity) * item.Product.EffectivePrice()
		}
	}
	return Cart{Items: items, Total: total}
}

// WishlistItem marks a product as saved for later.
type WishlistItem struct {
	ID        string     `json:"id" msgpack:"id"`
	UserID    string     `json:"user_id" msgpack:"user_id"`
	ProductID string     `json:"product_id" msgpack:"product_id"`
	Product   *Product   `json:"product,omitempty" msgpack:"product"`
	CreatedAt *time.Time `json:"created_at,omitempty" msgpack:"created_at"`
}

// Validate implements validation.Validatable.
func (w WishlistItem) Validate() error {
	return validation.ValidateStruct(&w,
		validation.Field(&w.ProductID, validation.Required),
	)
}

// Order statuses as the backend reports them.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// OrderItem is one line of an order, priced at purchase time.
type OrderItem struct {
	ID        string  `json:"id" msgpack:"id"`
	OrderID   string  `json:"order_id" msgpack:"order_id"`
	ProductID string  `json:"product_id" msgpack:"product_id"`
	Quantity  int     `json:"quantity" msgpack:"quantity"`
	Price     float64 `json:"price" msgpack:"price"`
}

// Validate implements validation.Validatable.
func (o OrderItem) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.ProductID, validation.Required),
		validation.Field(&o.Quantity, validation.Required, validation.Min(1)),
		validation.Field(&o.Price, validation.Min(0.0)),
	)
}

// Order is a placed order. Orders are critical entities: they are never
// staged locally.
type Order struct {
	ID            string      `json:"id" msgpack:"id"`
	UserID        string      `json:"user_id" msgpack:"user_id"`
	Status        string      `json:"status" msgpack:"status"`
	TotalPrice    float64     `json:"total_price" msgpack:"total_price"`
	Address       string      `json:"address" msgpack:"address"`
	PaymentMethod string      `json:"payment_method" msgpack:"payment_method"`
	PaymentStatus string      `json:"payment_status" msgpack:"payment_status"`
	Items         []OrderItem `json:"items,omitempty" msgpack:"items"`
	CreatedAt     *time.Time  `json:"created_at,omitempty" msgpack:"created_at"`
	DeliveredAt   *time.Time  `json:"delivered_at,omitempty" msgpack:"delivered_at"`
}

// Validate implements validation.Validatable.
func (o Order) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Address, validation.Required),
		validation.Field(&o.PaymentMethod, validation.Required),
		validation.Field(&o.TotalPrice, validation.Min(0.0)),
		validation.Field(&o.Items, validation.Required),
	)
}

// Address is a saved delivery address.
type Address struct {
	ID        string   `json:"id" msgpack:"id"`
	UserID    string   `json:"user_id" msgpack:"user_id"`
	Label     string   `json:"label" msgpack:"label"`
	Line1     string   `json:"line1" msgpack:"line1"`
	Line2     string   `json:"line2,omitempty" msgpack:"line2"`
	City      string   `json:"city" msgpack:"city"`
	PostCode  string   `json:"post_code" msgpack:"post_code"`
	Latitude  *float64 `json:"latitude,omitempty" msgpack:"latitude"`
	Longitude *float64 `json:"longitude,omitempty" msgpack:"longitude"`
	IsDefault bool     `json:"is_default" msgpack:"is_default"`
}

// Validate implements validation.Validatable.
func (a Address) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Line1, validation.Required),
		validation.Field(&a.City, validation.Required),
	)
}

// Payment method types supported by the backend.
const (
	PaymentTypeCard = "card"
	PaymentTypeUPI  = "upi"
	PaymentTypeCOD  = "cod"
)

// PaymentMethod is a stored payment instrument. Only display-safe fields are
// ever cached on the device.
type PaymentMethod struct {
	ID        string     `json:"id" msgpack:"id"`
	UserID    string     `json:"user_id" msgpack:"user_id"`
	Type      string     `json:"type" msgpack:"type"`
	Label     string     `json:"label" msgpack:"label"`
	Last4     string     `json:"last4,omitempty" msgpack:"last4"`
	IsDefault bool       `json:"is_default" msgpack:"is_default"`
	CreatedAt *time.Time `json:"created_at,omitempty" msgpack:"created_at"`
}

// Validate implements validation.Validatable.
func (p PaymentMethod) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Type, validation.Required,
			validation.In(PaymentTypeCard, PaymentTypeUPI, PaymentTypeCOD)),
		validation.Field(&p.Label, validation.Required),
	)
}

// Category is a catalog grouping.
type Category struct {
	ID       string `json:"id" msgpack:"id"`
	Name     string `json:"name" msgpack:"name"`
	ImageURL string `json:"image_url,omitempty" msgpack:"image_url"`
	Position int    `json:"position" msgpack:"position"`
}

// Validate implements validation.Validatable.
func (c Category) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required),
	)
}
