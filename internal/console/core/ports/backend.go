package ports

import (
	"context"
	"errors"

	"github.com/erfansky/Dressmaking/internal/console/core/domain/entity"
)

// Errors the backend adapters translate wire failures into. Callers branch
// on these, never on HTTP status codes.
var (
	// ErrNotFound maps a 404 from the backend.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials is returned by Obtain for any credential failure;
	// the backend does not distinguish wrong-username from wrong-password and
	// neither do we.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrSessionExpired means the access token was rejected and the single
	// refresh attempt failed. The session must be cleared and the user sent
	// back to login.
	ErrSessionExpired = errors.New("session expired")
)

// TokenService exchanges credentials for tokens against the backend's token
// endpoints. Refresh is also used internally by the authenticated transport.
type TokenService interface {
	Obtain(ctx context.Context, username, password string) (entity.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (access string, err error)
}

// CustomerService is the customer collection on the backend.
type CustomerService interface {
	ListCustomers(ctx context.Context, q entity.ListQuery) (entity.Page[entity.Customer], error)
	GetCustomer(ctx context.Context, id int64) (entity.Customer, error)
	CreateCustomer(ctx context.Context, c entity.Customer) (entity.Customer, error)
	UpdateCustomer(ctx context.Context, c entity.Customer) (entity.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error
}

// ProductService is the product collection on the backend.
type ProductService interface {
	ListProducts(ctx context.Context) ([]entity.Product, error)
	GetProduct(ctx context.Context, id int64) (entity.Product, error)
	CreateProduct(ctx context.Context, p entity.Product) (entity.Product, error)
	UpdateProduct(ctx context.Context, p entity.Product) (entity.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

// PropertyService manages property definitions, scoped per product.
type PropertyService interface {
	ListProperties(ctx context.Context, productID int64) ([]entity.Property, error)
	GetProperty(ctx context.Context, id int64) (entity.Property, error)
	CreateProperty(ctx context.Context, p entity.Property) (entity.Property, error)
	UpdateProperty(ctx context.Context, p entity.Property) (entity.Property, error)
	DeleteProperty(ctx context.Context, id int64) error
}

// CustomerPropertyService manages saved customer-specific property values.
// Listing is always scoped to one (customer, product) pair; Create and
// Update together implement the upsert the assignment workflow relies on.
type CustomerPropertyService interface {
	ListCustomerProperties(ctx context.Context, customerID, productID int64) ([]entity.CustomerProperty, error)
	CreateCustomerProperty(ctx context.Context, v entity.CustomerProperty, valueType entity.ValueType) (entity.CustomerProperty, error)
	UpdateCustomerProperty(ctx context.Context, v entity.CustomerProperty, valueType entity.ValueType) (entity.CustomerProperty, error)
}

// OrderService is the order collection on the backend. UpdateOrder replaces
// only the mutable fields (price, payed, status).
type OrderService interface {
	ListOrders(ctx context.Context, q entity.ListQuery) (entity.Page[entity.Order], error)
	GetOrder(ctx context.Context, id int64) (entity.Order, error)
	CreateOrder(ctx context.Context, o entity.Order) (entity.Order, error)
	UpdateOrder(ctx context.Context, id int64, price, payed int64, status entity.Status) (entity.Order, error)
}

// OrderItemService creates and lists order line items. Value typing for
// selected properties is supplied per call because the wire encoding of a
// value depends on its property definition.
type OrderItemService interface {
	ListOrderItems(ctx context.Context, orderID int64) ([]entity.OrderItem, error)
	CreateOrderItem(ctx context.Context, it entity.OrderItem, valueTypes map[int64]entity.ValueType) (entity.OrderItem, error)
}

// Backend bundles every collection the console consumes.
type Backend interface {
	CustomerService
	ProductService
	PropertyService
	CustomerPropertyService
	OrderService
	OrderItemService
}
