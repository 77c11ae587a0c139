package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erfansky/Dressmaking/internal/console/app"
	"github.com/erfansky/Dressmaking/internal/console/core/domain/entity"
)

// seedShirt installs the recurring scenario: a Shirt with a customer-level
// dropdown and number plus an order-level dropdown.
func seedShirt(f *fakeBackend) (productID int64, collarID, sizeID, fitID int64) {
	shirt, _ := f.CreateProduct(t0(), entity.Product{Name: "Shirt"})
	collar, _ := f.CreateProperty(t0(), entity.Property{
		ProductID: shirt.ID, Name: "Collar Style", ValueType: entity.ValueDropdown,
		PossibleValues: []string{"Classic", "Mandarin", "Wing"}, IsCustomerSpecific: true,
	})
	size, _ := f.CreateProperty(t0(), entity.Property{
		ProductID: shirt.ID, Name: "Size", ValueType: entity.ValueNumber, IsCustomerSpecific: true,
	})
	fit, _ := f.CreateProperty(t0(), entity.Property{
		ProductID: shirt.ID, Name: "Fit", ValueType: entity.ValueDropdown,
		PossibleValues: []string{"Slim", "Regular"},
	})
	return shirt.ID, collar.ID, size.ID, fit.ID
}

func TestAssignmentLoadSeedsDefaults(t *testing.T) {
	f := newFakeBackend()
	shirtID, collarID, sizeID, _ := seedShirt(f)
	cust, _ := f.CreateCustomer(t0(), entity.Customer{FirstName: "Sara", LastName: "Karimi"})

	svc := app.NewAssignmentService(f, f, nil)
	form, err := svc.Load(t0(), cust.ID, shirtID)
	require.NoError(t, err)

	// Only customer-specific definitions appear; the order-level Fit does not.
	require.Len(t, form.Fields, 2)
	byID := map[int64]app.AssignmentField{}
	for _, field := range form.Fields {
		byID[field.Property.ID] = field
	}

	assert.Equal(t, []string{}, byID[collarID].Selected, "unsaved dropdown seeds empty selection")
	assert.Equal(t, "0", byID[sizeID].Value, "unsaved number seeds zero")
}

func TestAssignmentLoadSplitsSavedSelections(t *testing.T) {
	f := newFakeBackend()
	shirtID, collarID, _, _ := seedShirt(f)
	cust, _ := f.CreateCustomer(t0(), entity.Customer{FirstName: "Sara", LastName: "Karimi"})
	_, err := f.CreateCustomerProperty(t0(), entity.CustomerProperty{
		CustomerID: cust.ID, PropertyID: collarID, Value: "Classic,Mandarin",
	}, entity.ValueDropdown)
	require.NoError(t, err)

	form, err := app.NewAssignmentService(f, f, nil).Load(t0(), cust.ID, shirtID)
	require.NoError(t, err)

	for _, field := range form.Fields {
		if field.Property.ID == collarID {
			assert.Equal(t, []string{"Classic", "Mandarin"}, field.Selected)
		}
	}
}

func TestAssignmentSaveCreatesThenUpdates(t *testing.T) {
	f := newFakeBackend()
	shirtID, collarID, sizeID, _ := seedShirt(f)
	cust, _ := f.CreateCustomer(t0(), entity.Customer{FirstName: "Sara", LastName: "Karimi"})

	svc := app.NewAssignmentService(f, f, nil)

	report, err := svc.Save(t0(), cust.ID, shirtID, map[int64]app.FieldInput{
		collarID: {Selected: []string{"Classic", "Wing"}},
		sizeID:   {Value: "42"},
	})
	require.NoError(t, err)
	assert.True(t, report.Succeeded())
	assert.Len(t, f.createdValues, 2)
	assert.Empty(t, f.updatedValues)

	// Dropdown selections are persisted comma-joined.
	byProp := map[int64]string{}
	for _, v := range f.createdValues {
		byProp[v.PropertyID] = v.Value
	}
	assert.Equal(t, "Classic,Wing", byProp[collarID])
	assert.Equal(t, "42", byProp[sizeID])

	// A second save of the same pair updates in place — no duplicates.
	report, err = svc.Save(t0(), cust.ID, shirtID, map[int64]app.FieldInput{
		collarID: {Selected: []string{"Mandarin"}},
		sizeID:   {Value: "43"},
	})
	require.NoError(t, err)
	assert.True(t, report.Succeeded())
	assert.Len(t, f.createdValues, 2, "no new records on re-save")
	assert.Len(t, f.updatedValues, 2)

	values, err := f.ListCustomerProperties(t0(), cust.ID, shirtID)
	require.NoError(t, err)
	assert.Len(t, values, 2, "still one record per (customer, property)")
}

func TestAssignmentSavePartialFailure(t *testing.T) {
	f := newFakeBackend()
	shirtID, _, _, _ := seedShirt(f)
	cust, _ := f.CreateCustomer(t0(), entity.Customer{FirstName: "Sara", LastName: "Karimi"})

	// The first upsert succeeds, everything after fails.
	svc := app.NewAssignmentService(f, &failAfterValues{backend: f, allow: 1}, nil)
	report, err := svc.Save(t0(), cust.ID, shirtID, map[int64]app.FieldInput{})
	require.Error(t, err)
	require.NotNil(t, report)
	assert.False(t, report.Succeeded())

	_, failed := report.FirstFailure()
	assert.True(t, failed)
	assert.Len(t, f.createdValues, 1, "the upsert before the failure stays persisted")
}
