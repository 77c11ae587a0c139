package app

import (
	"context"
	"fmt"

	"github.com/erfansky/Dressmaking/internal/console/core/domain/entity"
	"github.com/erfansky/Dressmaking/internal/console/core/ports"
)

// CatalogService manages products and their property definitions. Both
// follow the same submit convention as the registry: zero ID creates,
// non-zero ID updates in place.
type CatalogService struct {
	products   ports.ProductService
	properties ports.PropertyService
}

func NewCatalogService(products ports.ProductService, properties ports.PropertyService) *CatalogService {
	return &CatalogService{products: products, properties: properties}
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]entity.Product, error) {
	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id int64) (entity.Product, error) {
	return s.products.GetProduct(ctx, id)
}

func (s *CatalogService) SubmitProduct(ctx context.Context, p entity.Product) (entity.Product, error) {
	if err := p.Validate(); err != nil {
		return entity.Product{}, err
	}
	if p.ID != 0 {
		updated, err := s.products.UpdateProduct(ctx, p)
		if err != nil {
			return entity.Product{}, fmt.Errorf("update product %d: %w", p.ID, err)
		}
		return updated, nil
	}
	created, err := s.products.CreateProduct(ctx, p)
	if err != nil {
		return entity.Product{}, fmt.Errorf("create product: %w", err)
	}
	return created, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.products.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	return nil
}

// ProductProperties lists the property definitions of one product.
func (s *CatalogService) ProductProperties(ctx context.Context, productID int64) ([]entity.Property, error) {
	defs, err := s.properties.ListProperties(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	return defs, nil
}

// SubmitProperty validates and persists a property definition. Raw dropdown
// options are normalised through AddOption so stray whitespace and blank
// entries never reach the backend.
func (s *CatalogService) SubmitProperty(ctx context.Context, p entity.Property, rawOptions []string) (entity.Property, error) {
	if p.ValueType == entity.ValueDropdown {
		p.PossibleValues = nil
		for _, raw := range rawOptions {
			p.AddOption(raw)
		}
	}
	if err := p.Validate(); err != nil {
		return entity.Property{}, err
	}
	if p.ID != 0 {
		updated, err := s.properties.UpdateProperty(ctx, p)
		if err != nil {
			return entity.Property{}, fmt.Errorf("update property %d: %w", p.ID, err)
		}
		return updated, nil
	}
	created, err := s.properties.CreateProperty(ctx, p)
	if err != nil {
		return entity.Property{}, fmt.Errorf("create property: %w", err)
	}
	return created, nil
}

func (s *CatalogService) DeleteProperty(ctx context.Context, id int64) error {
	if err := s.properties.DeleteProperty(ctx, id); err != nil {
		return fmt.Errorf("delete property %d: %w", id, err)
	}
	return nil
}
