package backend

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/erfansky/Dressmaking/internal/console/core/domain/entity"
)

// --- products ---

func (c *Client) ListProducts(ctx context.Context) ([]entity.Product, error) {
	items, err := getCollection[entity.Product](ctx, c, "products/", nil)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (entity.Product, error) {
	var out entity.Product
	if err := c.get(ctx, fmt.Sprintf("products/%d/", id), nil, &out); err != nil {
		return entity.Product{}, err
	}
	return out, nil
}

func (c *Client) CreateProduct(ctx context.Context, p entity.Product) (entity.Product, error) {
	var out entity.Product
	if err := c.post(ctx, "products/", productPayload(p), &out); err != nil {
		return entity.Product{}, err
	}
	return out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, p entity.Product) (entity.Product, error) {
	var out entity.Product
	if err := c.put(ctx, fmt.Sprintf("products/%d/", p.ID), productPayload(p), &out); err != nil {
		return entity.Product{}, err
	}
	return out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.del(ctx, fmt.Sprintf("products/%d/", id))
}

func productPayload(p entity.Product) map[string]any {
	return map[string]any{
		"name":        p.Name,
		"description": p.Description,
	}
}

// --- property definitions ---

func (c *Client) ListProperties(ctx context.Context, productID int64) ([]entity.Property, error) {
	q := url.Values{}
	q.Set("product", strconv.FormatInt(productID, 10))
	return getCollection[entity.Property](ctx, c, "properties/", q)
}

func (c *Client) GetProperty(ctx context.Context, id int64) (entity.Property, error) {
	var out entity.Property
	if err := c.get(ctx, fmt.Sprintf("properties/%d/", id), nil, &out); err != nil {
		return entity.Property{}, err
	}
	return out, nil
}

func (c *Client) CreateProperty(ctx context.Context, p entity.Property) (entity.Property, error) {
	var out entity.Property
	if err := c.post(ctx, "properties/", propertyPayload(p), &out); err != nil {
		return entity.Property{}, err
	}
	return out, nil
}

func (c *Client) UpdateProperty(ctx context.Context, p entity.Property) (entity.Property, error) {
	var out entity.Property
	if err := c.put(ctx, fmt.Sprintf("properties/%d/", p.ID), propertyPayload(p), &out); err != nil {
		return entity.Property{}, err
	}
	return out, nil
}

func (c *Client) DeleteProperty(ctx context.Context, id int64) error {
	return c.del(ctx, fmt.Sprintf("properties/%d/", id))
}

// propertyPayload builds the write body. possible_values goes out only for
// dropdown definitions; the backend rejects it on text/number properties.
func propertyPayload(p entity.Property) map[string]any {
	payload := map[string]any{
		"product":              p.ProductID,
		"name":                 p.Name,
		"value_type":           string(p.ValueType),
		"is_customer_specific": p.IsCustomerSpecific,
	}
	if p.ValueType == entity.ValueDropdown {
		payload["possible_values"] = p.PossibleValues
	} else {
		payload["possible_values"] = nil
	}
	return payload
}
