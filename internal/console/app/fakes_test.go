package app_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/erfansky/Dressmaking/internal/console/core/domain/entity"
	"github.com/erfansky/Dressmaking/internal/console/core/ports"
)

// fakeBackend is an in-memory ports.Backend. Mutation methods assign ids
// sequentially; failure injection is per-method via the fail map.
type fakeBackend struct {
	mu sync.Mutex

	customers  map[int64]entity.Customer
	products   map[int64]entity.Product
	properties map[int64]entity.Property
	custProps  map[int64]entity.CustomerProperty
	orders     map[int64]entity.Order
	items      []entity.OrderItem

	nextID int64

	// fail["CreateOrderItem"] etc. makes that method error.
	fail map[string]error

	// failItemAfter fails CreateOrderItem once this many items exist.
	failItemAfter int

	createdValues []entity.CustomerProperty
	updatedValues []entity.CustomerProperty
	itemTypes     []map[int64]entity.ValueType
}

var _ ports.Backend = (*fakeBackend)(nil)

func t0() context.Context { return context.Background() }

// failAfterValues passes through to the backend for a fixed number of
// upserts, then fails every one after that.
type failAfterValues struct {
	backend *fakeBackend
	allow   int
	calls   int
}

func (f *failAfterValues) ListCustomerProperties(ctx context.Context, customerID, productID int64) ([]entity.CustomerProperty, error) {
	return f.backend.ListCustomerProperties(ctx, customerID, productID)
}

func (f *failAfterValues) CreateCustomerProperty(ctx context.Context, v entity.CustomerProperty, valueType entity.ValueType) (entity.CustomerProperty, error) {
	f.calls++
	if f.calls > f.allow {
		return entity.CustomerProperty{}, fmt.Errorf("backend unavailable")
	}
	return f.backend.CreateCustomerProperty(ctx, v, valueType)
}

func (f *failAfterValues) UpdateCustomerProperty(ctx context.Context, v entity.CustomerProperty, valueType entity.ValueType) (entity.CustomerProperty, error) {
	f.calls++
	if f.calls > f.allow {
		return entity.CustomerProperty{}, fmt.Errorf("backend unavailable")
	}
	return f.backend.UpdateCustomerProperty(ctx, v, valueType)
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		customers:     map[int64]entity.Customer{},
		products:      map[int64]entity.Product{},
		properties:    map[int64]entity.Property{},
		custProps:     map[int64]entity.CustomerProperty{},
		orders:        map[int64]entity.Order{},
		fail:          map[string]error{},
		failItemAfter: -1,
		nextID:        100,
	}
}

func (f *fakeBackend) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeBackend) failure(method string) error {
	if err, ok := f.fail[method]; ok {
		return err
	}
	return nil
}

// --- customers ---

func (f *fakeBackend) ListCustomers(ctx context.Context, q entity.ListQuery) (entity.Page[entity.Customer], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failure("ListCustomers"); err != nil {
		return entity.Page[entity.Customer]{}, err
	}
	page := entity.Page[entity.Customer]{Items: []entity.Customer{}}
	for _, c := range f.customers {
		page.Items = append(page.Items, c)
	}
	page.Count = len(page.Items)
	return page, nil
}

func (f *fakeBackend) GetCustomer(ctx context.Context, id int64) (entity.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.customers[id]
	if !ok {
		return entity.Customer{}, ports.ErrNotFound
	}
	return c, nil
}

func (f *fakeBackend) CreateCustomer(ctx context.Context, c entity.Customer) (entity.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failure("CreateCustomer"); err != nil {
		return entity.Customer{}, err
	}
	c.ID = f.id()
	f.customers[c.ID] = c
	return c, nil
}

func (f *fakeBackend) UpdateCustomer(ctx context.Context, c entity.Customer) (entity.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.customers[c.ID]; !ok {
		return entity.Customer{}, ports.ErrNotFound
	}
	f.customers[c.ID] = c
	return c, nil
}

func (f *fakeBackend) DeleteCustomer(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.customers[id]; !ok {
		return ports.ErrNotFound
	}
	delete(f.customers, id)
	return nil
}

// --- products ---

func (f *fakeBackend) ListProducts(ctx context.Context) ([]entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []entity.Product{}
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeBackend) GetProduct(ctx context.Context, id int64) (entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return entity.Product{}, ports.ErrNotFound
	}
	return p, nil
}

func (f *fakeBackend) CreateProduct(ctx context.Context, p entity.Product) (entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = f.id()
	f.products[p.ID] = p
	return p, nil
}

func (f *fakeBackend) UpdateProduct(ctx context.Context, p entity.Product) (entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[p.ID]; !ok {
		return entity.Product{}, ports.ErrNotFound
	}
	f.products[p.ID] = p
	return p, nil
}

func (f *fakeBackend) DeleteProduct(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.products, id)
	return nil
}

// --- properties ---

func (f *fakeBackend) ListProperties(ctx context.Context, productID int64) ([]entity.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failure("ListProperties"); err != nil {
		return nil, err
	}
	out := []entity.Property{}
	for _, p := range f.properties {
		if p.ProductID == productID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeBackend) GetProperty(ctx context.Context, id int64) (entity.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.properties[id]
	if !ok {
		return entity.Property{}, ports.ErrNotFound
	}
	return p, nil
}

func (f *fakeBackend) CreateProperty(ctx context.Context, p entity.Property) (entity.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = f.id()
	f.properties[p.ID] = p
	return p, nil
}

func (f *fakeBackend) UpdateProperty(ctx context.Context, p entity.Property) (entity.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.properties[p.ID]; !ok {
		return entity.Property{}, ports.ErrNotFound
	}
	f.properties[p.ID] = p
	return p, nil
}

func (f *fakeBackend) DeleteProperty(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.properties, id)
	return nil
}

// --- customer properties ---

func (f *fakeBackend) ListCustomerProperties(ctx context.Context, customerID, productID int64) ([]entity.CustomerProperty, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failure("ListCustomerProperties"); err != nil {
		return nil, err
	}
	out := []entity.CustomerProperty{}
	for _, v := range f.custProps {
		def, ok := f.properties[v.PropertyID]
		if v.CustomerID == customerID && ok && def.ProductID == productID {
			v.PropertyName = def.Name
			v.PropertyType = def.ValueType
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeBackend) CreateCustomerProperty(ctx context.Context, v entity.CustomerProperty, valueType entity.ValueType) (entity.CustomerProperty, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failure("CreateCustomerProperty"); err != nil {
		return entity.CustomerProperty{}, err
	}
	v.ID = f.id()
	f.custProps[v.ID] = v
	f.createdValues = append(f.createdValues, v)
	return v, nil
}

func (f *fakeBackend) UpdateCustomerProperty(ctx context.Context, v entity.CustomerProperty, valueType entity.ValueType) (entity.CustomerProperty, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.custProps[v.ID]; !ok {
		return entity.CustomerProperty{}, ports.ErrNotFound
	}
	f.custProps[v.ID] = v
	f.updatedValues = append(f.updatedValues, v)
	return v, nil
}

// --- orders ---

func (f *fakeBackend) ListOrders(ctx context.Context, q entity.ListQuery) (entity.Page[entity.Order], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	page := entity.Page[entity.Order]{Items: []entity.Order{}}
	for _, o := range f.orders {
		page.Items = append(page.Items, o)
	}
	page.Count = len(page.Items)
	return page, nil
}

func (f *fakeBackend) GetOrder(ctx context.Context, id int64) (entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return entity.Order{}, ports.ErrNotFound
	}
	return o, nil
}

func (f *fakeBackend) CreateOrder(ctx context.Context, o entity.Order) (entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failure("CreateOrder"); err != nil {
		return entity.Order{}, err
	}
	o.ID = f.id()
	f.orders[o.ID] = o
	return o, nil
}

func (f *fakeBackend) UpdateOrder(ctx context.Context, id int64, price, payed int64, status entity.Status) (entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return entity.Order{}, ports.ErrNotFound
	}
	o.Price, o.Payed, o.Status = price, payed, status
	f.orders[id] = o
	return o, nil
}

// --- order items ---

func (f *fakeBackend) ListOrderItems(ctx context.Context, orderID int64) ([]entity.OrderItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []entity.OrderItem{}
	for _, it := range f.items {
		if it.OrderID == orderID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeBackend) CreateOrderItem(ctx context.Context, it entity.OrderItem, valueTypes map[int64]entity.ValueType) (entity.OrderItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failItemAfter >= 0 && len(f.items) >= f.failItemAfter {
		return entity.OrderItem{}, fmt.Errorf("backend unavailable")
	}
	it.ID = f.id()
	f.items = append(f.items, it)
	f.itemTypes = append(f.itemTypes, valueTypes)
	return it, nil
}
