package app

import (
	"context"
	"fmt"

	"github.com/erfansky/Dressmaking/internal/console/core/domain/entity"
	"github.com/erfansky/Dressmaking/internal/console/core/ports"
)

// RegistryService implements the customer registry workflow: searchable
// listing, a single submit path for both create and edit, and deletion.
type RegistryService struct {
	customers ports.CustomerService
}

func NewRegistryService(customers ports.CustomerService) *RegistryService {
	return &RegistryService{customers: customers}
}

func (s *RegistryService) List(ctx context.Context, q entity.ListQuery) (entity.Page[entity.Customer], error) {
	page, err := s.customers.ListCustomers(ctx, q)
	if err != nil {
		return entity.Page[entity.Customer]{}, fmt.Errorf("list customers: %w", err)
	}
	return page, nil
}

func (s *RegistryService) Get(ctx context.Context, id int64) (entity.Customer, error) {
	return s.customers.GetCustomer(ctx, id)
}

// Submit validates and persists a customer. A zero ID creates a new record;
// a non-zero ID always updates that record in place, never creates a
// duplicate.
func (s *RegistryService) Submit(ctx context.Context, c entity.Customer) (entity.Customer, error) {
	if err := c.Validate(); err != nil {
		return entity.Customer{}, err
	}
	if c.ID != 0 {
		updated, err := s.customers.UpdateCustomer(ctx, c)
		if err != nil {
			return entity.Customer{}, fmt.Errorf("update customer %d: %w", c.ID, err)
		}
		return updated, nil
	}
	created, err := s.customers.CreateCustomer(ctx, c)
	if err != nil {
		return entity.Customer{}, fmt.Errorf("create customer: %w", err)
	}
	return created, nil
}

// Delete removes a customer. Confirmation is the transport layer's concern;
// by the time this runs the decision is final.
func (s *RegistryService) Delete(ctx context.Context, id int64) error {
	if err := s.customers.DeleteCustomer(ctx, id); err != nil {
		return fmt.Errorf("delete customer %d: %w", id, err)
	}
	return nil
}
