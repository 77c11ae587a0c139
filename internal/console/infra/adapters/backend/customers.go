package backend

import (
	"context"
	"fmt"
	"net/url"

	"github.com/erfansky/Dressmaking/internal/console/core/domain/entity"
)

// ListCustomers fetches one page of customers, either the first page
// (optionally filtered by a search term) or the page behind a cursor the
// backend handed out earlier.
func (c *Client) ListCustomers(ctx context.Context, q entity.ListQuery) (entity.Page[entity.Customer], error) {
	return listPage[entity.Customer](ctx, c, "customers/", q)
}

func (c *Client) GetCustomer(ctx context.Context, id int64) (entity.Customer, error) {
	var out entity.Customer
	if err := c.get(ctx, fmt.Sprintf("customers/%d/", id), nil, &out); err != nil {
		return entity.Customer{}, err
	}
	return out, nil
}

func (c *Client) CreateCustomer(ctx context.Context, cust entity.Customer) (entity.Customer, error) {
	var out entity.Customer
	if err := c.post(ctx, "customers/", customerPayload(cust), &out); err != nil {
		return entity.Customer{}, err
	}
	return out, nil
}

func (c *Client) UpdateCustomer(ctx context.Context, cust entity.Customer) (entity.Customer, error) {
	var out entity.Customer
	if err := c.put(ctx, fmt.Sprintf("customers/%d/", cust.ID), customerPayload(cust), &out); err != nil {
		return entity.Customer{}, err
	}
	return out, nil
}

func (c *Client) DeleteCustomer(ctx context.Context, id int64) error {
	return c.del(ctx, fmt.Sprintf("customers/%d/", id))
}

// customerPayload strips the read-only fields from the write body. Phone is
// sent as null when empty so the backend's uniqueness check ignores it.
func customerPayload(cust entity.Customer) map[string]any {
	payload := map[string]any{
		"first_name": cust.FirstName,
		"last_name":  cust.LastName,
	}
	if cust.Phone != "" {
		payload["phone"] = cust.Phone
	} else {
		payload["phone"] = nil
	}
	return payload
}

// listPage fetches a paginated collection endpoint.
func listPage[T any](ctx context.Context, c *Client, path string, q entity.ListQuery) (entity.Page[T], error) {
	var page entity.Page[T]

	target := path
	values := url.Values{}
	if q.Cursor != "" {
		// Cursors are the backend's own absolute next/previous URLs; follow
		// them verbatim.
		target = q.Cursor
	} else if q.Search != "" {
		values.Set("search", q.Search)
	}

	if err := c.get(ctx, target, values, &page); err != nil {
		return entity.Page[T]{}, err
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	return page, nil
}
