package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erfansky/Dressmaking/internal/console/app"
	"github.com/erfansky/Dressmaking/internal/console/core/domain/entity"
	"github.com/erfansky/Dressmaking/internal/console/core/ports"
)

func TestSubmitCustomerEditInPlace(t *testing.T) {
	f := newFakeBackend()
	svc := app.NewRegistryService(f)

	created, err := svc.Submit(t0(), entity.Customer{FirstName: "Sara", LastName: "Karimi"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	// Resubmitting with the id set must update that record, never add one.
	created.Phone = "09121234567"
	updated, err := svc.Submit(t0(), created)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	page, err := svc.List(t0(), entity.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Count)
	assert.Equal(t, "09121234567", page.Items[0].Phone)
}

func TestSubmitCustomerValidates(t *testing.T) {
	f := newFakeBackend()
	svc := app.NewRegistryService(f)

	_, err := svc.Submit(t0(), entity.Customer{FirstName: "Sara1", LastName: "Karimi"})
	assert.Error(t, err)
	assert.Empty(t, f.customers, "invalid input never reaches the backend")
}

func TestDeleteCustomer(t *testing.T) {
	f := newFakeBackend()
	svc := app.NewRegistryService(f)

	created, err := svc.Submit(t0(), entity.Customer{FirstName: "Sara", LastName: "Karimi"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(t0(), created.ID))
	_, err = svc.Get(t0(), created.ID)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}
