package app_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erfansky/Dressmaking/internal/console/app"
	"github.com/erfansky/Dressmaking/internal/console/core/domain/entity"
)

func newOrderView(f *fakeBackend) *app.OrderViewService {
	return app.NewOrderViewService(f, app.NewCachedResolver(f, f, nil))
}

func TestOrderListResolvesNames(t *testing.T) {
	f := newFakeBackend()
	sara, _ := f.CreateCustomer(t0(), entity.Customer{FirstName: "Sara", LastName: "Karimi"})
	o1, _ := f.CreateOrder(t0(), entity.Order{PlacedBy: sara.ID, Status: entity.StatusInProgress})
	o2, _ := f.CreateOrder(t0(), entity.Order{PlacedBy: 424242, Status: entity.StatusCompleted})

	page, err := newOrderView(f).List(t0(), entity.ListQuery{})
	require.NoError(t, err)
	require.Len(t, page.Orders, 2)

	rows := map[int64]string{}
	displays := map[int64]string{}
	for _, row := range page.Orders {
		rows[row.ID] = row.CustomerName
		displays[row.ID] = row.StatusDisplay
	}
	assert.Equal(t, "Sara Karimi", rows[o1.ID])
	assert.Equal(t, "424242", rows[o2.ID], "unresolvable customers fall back to the raw id")
	assert.Equal(t, "in progress", displays[o1.ID])
	assert.Equal(t, "completed", displays[o2.ID])
}

func TestOrderDetailUsesPrimaryCustomerValues(t *testing.T) {
	f := newFakeBackend()
	shirtID, collarID, _, fitID := seedShirt(f)
	sara, _ := f.CreateCustomer(t0(), entity.Customer{FirstName: "Sara", LastName: "Karimi"})
	nika, _ := f.CreateCustomer(t0(), entity.Customer{FirstName: "Nika", LastName: "Rad"})

	// Both customers have a saved collar value; only the primary's shows.
	_, _ = f.CreateCustomerProperty(t0(), entity.CustomerProperty{
		CustomerID: sara.ID, PropertyID: collarID, Value: "Classic",
	}, entity.ValueDropdown)
	_, _ = f.CreateCustomerProperty(t0(), entity.CustomerProperty{
		CustomerID: nika.ID, PropertyID: collarID, Value: "Wing",
	}, entity.ValueDropdown)

	order, _ := f.CreateOrder(t0(), entity.Order{PlacedBy: sara.ID, Status: entity.StatusInProgress})
	_, _ = f.CreateOrderItem(t0(), entity.OrderItem{
		OrderID: order.ID, CustomerID: nika.ID, ProductID: shirtID, Quantity: 1,
		SelectedProperties: entity.Selections{fitID: "Slim"},
	}, nil)

	detail, err := newOrderView(f).Detail(t0(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sara Karimi", detail.CustomerName)
	require.Len(t, detail.Items, 1)

	item := detail.Items[0]
	assert.Equal(t, "Nika Rad", item.CustomerName)
	assert.Equal(t, "Shirt", item.ProductName)

	require.Len(t, item.CustomerProperties, 1)
	assert.Equal(t, "Classic", item.CustomerProperties[0].Value,
		"customer-specific values come from the order's primary customer")

	require.Len(t, item.OrderProperties, 1)
	assert.Equal(t, "Fit", item.OrderProperties[0].Name)
	assert.Equal(t, "Slim", item.OrderProperties[0].Value)
}

func TestOrderDetailIsStableAcrossFetches(t *testing.T) {
	f := newFakeBackend()
	shirtID, _, _, fitID := seedShirt(f)
	extra, _ := f.CreateProperty(t0(), entity.Property{
		ProductID: shirtID, Name: "Hem", ValueType: entity.ValueText,
	})
	sara, _ := f.CreateCustomer(t0(), entity.Customer{FirstName: "Sara", LastName: "Karimi"})

	order, _ := f.CreateOrder(t0(), entity.Order{PlacedBy: sara.ID, Status: entity.StatusInProgress})
	_, _ = f.CreateOrderItem(t0(), entity.OrderItem{
		OrderID: order.ID, CustomerID: sara.ID, ProductID: shirtID, Quantity: 1,
		SelectedProperties: entity.Selections{fitID: "Slim", extra.ID: "rolled"},
	}, nil)

	view := newOrderView(f)
	first, err := view.Detail(t0(), order.ID)
	require.NoError(t, err)
	second, err := view.Detail(t0(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second, "repeated reads yield identical views")

	// Entries are ordered by property id.
	entries := first.Items[0].OrderProperties
	require.Len(t, entries, 2)
	assert.Less(t, entries[0].PropertyID, entries[1].PropertyID)
}

func TestOrderDetailFallsBackToRawIDs(t *testing.T) {
	f := newFakeBackend()
	sara, _ := f.CreateCustomer(t0(), entity.Customer{FirstName: "Sara", LastName: "Karimi"})
	order, _ := f.CreateOrder(t0(), entity.Order{PlacedBy: sara.ID, Status: entity.StatusInProgress})

	// The item references a property whose definition no longer exists.
	_, _ = f.CreateOrderItem(t0(), entity.OrderItem{
		OrderID: order.ID, CustomerID: sara.ID, ProductID: 777, Quantity: 1,
		SelectedProperties: entity.Selections{31337: "Slim"},
	}, nil)

	detail, err := newOrderView(f).Detail(t0(), order.ID)
	require.NoError(t, err)
	require.Len(t, detail.Items, 1)

	item := detail.Items[0]
	assert.Equal(t, "777", item.ProductName)
	require.Len(t, item.OrderProperties, 1)
	assert.Equal(t, strconv.Itoa(31337), item.OrderProperties[0].Name)
}

func TestOrderUpdate(t *testing.T) {
	f := newFakeBackend()
	sara, _ := f.CreateCustomer(t0(), entity.Customer{FirstName: "Sara", LastName: "Karimi"})
	order, _ := f.CreateOrder(t0(), entity.Order{PlacedBy: sara.ID, Price: 100, Status: entity.StatusInProgress})

	view := newOrderView(f)

	updated, err := view.Update(t0(), order.ID, 150, 150, entity.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCompleted, updated.Status)
	assert.Equal(t, int64(150), updated.Payed)

	_, err = view.Update(t0(), order.ID, 100, 20, "on_hold")
	assert.Error(t, err, "unknown statuses are rejected")

	_, err = view.Update(t0(), order.ID, 100, 200, entity.StatusCompleted)
	assert.Error(t, err, "payed beyond price is rejected")
}
