package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erfansky/Dressmaking/internal/console/app"
	"github.com/erfansky/Dressmaking/internal/console/core/domain/entity"
)

func TestSeedItem(t *testing.T) {
	f := newFakeBackend()
	shirtID, collarID, _, fitID := seedShirt(f)
	cust, _ := f.CreateCustomer(t0(), entity.Customer{FirstName: "Sara", LastName: "Karimi"})
	_, err := f.CreateCustomerProperty(t0(), entity.CustomerProperty{
		CustomerID: cust.ID, PropertyID: collarID, Value: "Classic",
	}, entity.ValueDropdown)
	require.NoError(t, err)

	seed, err := app.NewCompositionService(f, nil).SeedItem(t0(), cust.ID, shirtID)
	require.NoError(t, err)

	assert.Equal(t, "Shirt", seed.Product.Name)
	assert.Equal(t, 1, seed.Quantity)
	assert.Empty(t, seed.Note)

	// Saved customer values ride along read-only.
	require.Len(t, seed.CustomerProperties, 1)
	assert.Equal(t, "Classic", seed.CustomerProperties[0].Value)

	// Order-specific definitions get empty editable values.
	require.Len(t, seed.OrderProperties, 1)
	assert.Equal(t, fitID, seed.OrderProperties[0].ID)
	assert.Equal(t, entity.Selections{fitID: ""}, seed.Values)
}

func TestSaveCreatesOrderAndItems(t *testing.T) {
	f := newFakeBackend()
	shirtID, _, _, fitID := seedShirt(f)
	sara, _ := f.CreateCustomer(t0(), entity.Customer{FirstName: "Sara", LastName: "Karimi"})
	nika, _ := f.CreateCustomer(t0(), entity.Customer{FirstName: "Nika", LastName: "Rad"})

	draft := app.Draft{
		PlacedBy: sara.ID,
		Price:    900,
		Payed:    300,
	}
	require.True(t, draft.AddParticipant(sara.ID))
	require.True(t, draft.AddParticipant(nika.ID))
	assert.False(t, draft.AddParticipant(nika.ID), "duplicate participants are rejected")

	draft.Participants[0].Items = []app.DraftItem{
		{ProductID: shirtID, Quantity: 2, Selected: entity.Selections{fitID: "Slim"}},
	}
	draft.Participants[1].Items = []app.DraftItem{
		{ProductID: shirtID, Quantity: 1, Note: "rush", Selected: entity.Selections{fitID: "Regular"}},
	}

	result, err := app.NewCompositionService(f, nil).Save(t0(), draft)
	require.NoError(t, err)
	require.NotZero(t, result.OrderID)
	assert.True(t, result.Report.Succeeded())

	order, err := f.GetOrder(t0(), result.OrderID)
	require.NoError(t, err)
	assert.Equal(t, sara.ID, order.PlacedBy, "order references the primary customer only")
	assert.Equal(t, entity.StatusInProgress, order.Status)

	items, err := f.ListOrderItems(t0(), result.OrderID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	owners := map[int64]bool{}
	for _, it := range items {
		owners[it.CustomerID] = true
		assert.Equal(t, result.OrderID, it.OrderID)
	}
	assert.True(t, owners[sara.ID])
	assert.True(t, owners[nika.ID])
}

func TestSaveValidation(t *testing.T) {
	f := newFakeBackend()
	shirtID, _, _, fitID := seedShirt(f)
	sara, _ := f.CreateCustomer(t0(), entity.Customer{FirstName: "Sara", LastName: "Karimi"})
	svc := app.NewCompositionService(f, nil)

	// No primary customer.
	_, err := svc.Save(t0(), app.Draft{})
	assert.Error(t, err)

	// Payed beyond price.
	_, err = svc.Save(t0(), app.Draft{PlacedBy: sara.ID, Price: 10, Payed: 20})
	assert.Error(t, err)

	base := func() app.Draft {
		d := app.Draft{PlacedBy: sara.ID, Price: 100}
		d.AddParticipant(sara.ID)
		return d
	}

	// Zero quantity.
	d := base()
	d.Participants[0].Items = []app.DraftItem{{ProductID: shirtID, Quantity: 0}}
	_, err = svc.Save(t0(), d)
	assert.Error(t, err)

	// Dropdown without a selection.
	d = base()
	d.Participants[0].Items = []app.DraftItem{{ProductID: shirtID, Quantity: 1}}
	_, err = svc.Save(t0(), d)
	assert.Error(t, err, "order dropdowns require a concrete choice")

	// Dropdown with a value outside the option list.
	d = base()
	d.Participants[0].Items = []app.DraftItem{
		{ProductID: shirtID, Quantity: 1, Selected: entity.Selections{fitID: "Baggy"}},
	}
	_, err = svc.Save(t0(), d)
	assert.Error(t, err)

	// Value for a property that is not order-specific.
	d = base()
	d.Participants[0].Items = []app.DraftItem{
		{ProductID: shirtID, Quantity: 1, Selected: entity.Selections{fitID: "Slim", 99999: "x"}},
	}
	_, err = svc.Save(t0(), d)
	assert.Error(t, err)

	// Nothing was persisted by any of the rejected drafts.
	assert.Empty(t, f.orders)
	assert.Empty(t, f.items)
}

func TestSavePartialFailureKeepsOrder(t *testing.T) {
	f := newFakeBackend()
	shirtID, _, _, fitID := seedShirt(f)
	sara, _ := f.CreateCustomer(t0(), entity.Customer{FirstName: "Sara", LastName: "Karimi"})

	f.failItemAfter = 1 // second item creation fails

	draft := app.Draft{PlacedBy: sara.ID, Price: 100}
	draft.AddParticipant(sara.ID)
	draft.Participants[0].Items = []app.DraftItem{
		{ProductID: shirtID, Quantity: 1, Selected: entity.Selections{fitID: "Slim"}},
		{ProductID: shirtID, Quantity: 1, Selected: entity.Selections{fitID: "Regular"}},
	}

	result, err := app.NewCompositionService(f, nil).Save(t0(), draft)
	require.Error(t, err)
	require.NotNil(t, result)

	// The order and the first item persist; the report names what's left.
	assert.NotZero(t, result.OrderID)
	assert.Len(t, f.orders, 1)
	assert.Len(t, f.items, 1)

	failure, ok := result.Report.FirstFailure()
	require.True(t, ok)
	assert.Equal(t, []string{failure.Name}, result.Report.Remaining())
}
