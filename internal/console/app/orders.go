package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/erfansky/Dressmaking/internal/console/core/domain/entity"
	"github.com/erfansky/Dressmaking/internal/console/core/ports"
)

// OrderViewService backs the order list and detail screens: it resolves
// foreign ids to display names and reconstructs property display entries
// from the raw persisted records.
type OrderViewService struct {
	backend  ports.Backend
	resolver ports.NameResolver
}

func NewOrderViewService(backend ports.Backend, resolver ports.NameResolver) *OrderViewService {
	return &OrderViewService{backend: backend, resolver: resolver}
}

// OrderRow is one row of the listing.
type OrderRow struct {
	entity.Order
	CustomerName  string `json:"customer_name"`
	StatusDisplay string `json:"status_display"`
}

// OrderListPage is one page of rows plus the backend's cursors.
type OrderListPage struct {
	Count    int        `json:"count"`
	Next     string     `json:"next,omitempty"`
	Previous string     `json:"previous,omitempty"`
	Orders   []OrderRow `json:"orders"`
}

// List fetches a page of orders and resolves every placed-by id to a name
// in one batch. A name that cannot be resolved falls back to the raw id.
func (s *OrderViewService) List(ctx context.Context, q entity.ListQuery) (*OrderListPage, error) {
	page, err := s.backend.ListOrders(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	ids := make([]int64, 0, len(page.Items))
	for _, o := range page.Items {
		ids = append(ids, o.PlacedBy)
	}
	names := s.resolver.ResolveCustomerNames(ctx, ids)

	out := &OrderListPage{
		Count:    page.Count,
		Next:     page.Next,
		Previous: page.Previous,
		Orders:   make([]OrderRow, 0, len(page.Items)),
	}
	for _, o := range page.Items {
		out.Orders = append(out.Orders, OrderRow{
			Order:         o,
			CustomerName:  names[o.PlacedBy],
			StatusDisplay: o.Status.Display(),
		})
	}
	return out, nil
}

// PropertyEntry is one resolved property display line.
type PropertyEntry struct {
	PropertyID int64  `json:"property_id"`
	Name       string `json:"name"`
	Value      string `json:"value"`
}

// ItemView is one fully resolved line item.
type ItemView struct {
	entity.OrderItem
	ProductName        string          `json:"product_name"`
	CustomerName       string          `json:"customer_name"`
	CustomerProperties []PropertyEntry `json:"customer_properties"`
	OrderProperties    []PropertyEntry `json:"order_properties"`
}

// OrderDetail is the resolved detail view.
type OrderDetail struct {
	entity.Order
	CustomerName  string     `json:"customer_name"`
	StatusDisplay string     `json:"status_display"`
	Items         []ItemView `json:"items"`
}

// Detail loads the order, its items, and every display name and property
// entry the screen shows. Fetching the same detail twice without an
// intervening mutation yields identical values; entries are ordered by
// property id to keep that stable.
//
// Customer-specific values are looked up for the order's primary customer,
// not each item's own customer. The composition workflow supports multiple
// customers per order, so for non-primary items this shows the primary
// customer's values — long-standing behaviour, kept as is (see DESIGN.md).
func (s *OrderViewService) Detail(ctx context.Context, orderID int64) (*OrderDetail, error) {
	order, err := s.backend.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order: %w", err)
	}

	items, err := s.backend.ListOrderItems(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}

	customerIDs := []int64{order.PlacedBy}
	productIDs := make([]int64, 0, len(items))
	for _, it := range items {
		customerIDs = append(customerIDs, it.CustomerID)
		productIDs = append(productIDs, it.ProductID)
	}
	customerNames := s.resolver.ResolveCustomerNames(ctx, customerIDs)
	productNames := s.resolver.ResolveProductNames(ctx, productIDs)

	detail := &OrderDetail{
		Order:         order,
		CustomerName:  customerNames[order.PlacedBy],
		StatusDisplay: order.Status.Display(),
		Items:         make([]ItemView, len(items)),
	}

	// Per-item lookups are independent; issue them together and collect.
	var wg sync.WaitGroup
	for i, it := range items {
		wg.Add(1)
		go func(i int, it entity.OrderItem) {
			defer wg.Done()
			detail.Items[i] = ItemView{
				OrderItem:          it,
				ProductName:        productNames[it.ProductID],
				CustomerName:       customerNames[it.CustomerID],
				CustomerProperties: s.customerEntries(ctx, order.PlacedBy, it.ProductID),
				OrderProperties:    s.orderEntries(ctx, it.SelectedProperties),
			}
		}(i, it)
	}
	wg.Wait()

	return detail, nil
}

// customerEntries loads the saved customer-specific values shown read-only
// on each item. A failed lookup yields no entries rather than an error —
// the rest of the detail still renders.
func (s *OrderViewService) customerEntries(ctx context.Context, customerID, productID int64) []PropertyEntry {
	values, err := s.backend.ListCustomerProperties(ctx, customerID, productID)
	if err != nil {
		return nil
	}
	entries := make([]PropertyEntry, 0, len(values))
	for _, v := range values {
		name := v.PropertyName
		if name == "" {
			name = strconv.FormatInt(v.PropertyID, 10)
		}
		entries = append(entries, PropertyEntry{PropertyID: v.PropertyID, Name: name, Value: v.Value})
	}
	sortEntries(entries)
	return entries
}

// orderEntries reconstructs the order-specific display lines by resolving
// each selected property id to its definition name, falling back to the
// raw id when the definition cannot be fetched.
func (s *OrderViewService) orderEntries(ctx context.Context, selected entity.Selections) []PropertyEntry {
	entries := make([]PropertyEntry, 0, len(selected))
	for propID, value := range selected {
		name := strconv.FormatInt(propID, 10)
		if def, err := s.backend.GetProperty(ctx, propID); err == nil {
			name = def.Name
		}
		entries = append(entries, PropertyEntry{PropertyID: propID, Name: name, Value: value})
	}
	sortEntries(entries)
	return entries
}

func sortEntries(entries []PropertyEntry) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].PropertyID < entries[j].PropertyID })
}

// Update resubmits the three mutable fields of an order.
func (s *OrderViewService) Update(ctx context.Context, orderID, price, payed int64, status entity.Status) (entity.Order, error) {
	if !status.Known() {
		return entity.Order{}, fmt.Errorf("unknown status %q", status)
	}
	check := entity.Order{Price: price, Payed: payed}
	if err := check.ValidateFinancials(); err != nil {
		return entity.Order{}, err
	}

	updated, err := s.backend.UpdateOrder(ctx, orderID, price, payed, status)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return entity.Order{}, err
		}
		return entity.Order{}, fmt.Errorf("update order %d: %w", orderID, err)
	}
	return updated, nil
}
