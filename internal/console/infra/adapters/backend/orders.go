package backend

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/erfansky/Dressmaking/internal/console/core/domain/entity"
)

func (c *Client) ListOrders(ctx context.Context, q entity.ListQuery) (entity.Page[entity.Order], error) {
	return listPage[entity.Order](ctx, c, "orders/", q)
}

func (c *Client) GetOrder(ctx context.Context, id int64) (entity.Order, error) {
	var out entity.Order
	if err := c.get(ctx, fmt.Sprintf("orders/%d/", id), nil, &out); err != nil {
		return entity.Order{}, err
	}
	return out, nil
}

func (c *Client) CreateOrder(ctx context.Context, o entity.Order) (entity.Order, error) {
	var out entity.Order
	payload := map[string]any{
		"placed_by": o.PlacedBy,
		"price":     o.Price,
		"payed":     o.Payed,
		"status":    string(o.Status),
	}
	if err := c.post(ctx, "orders/", payload, &out); err != nil {
		return entity.Order{}, err
	}
	return out, nil
}

// UpdateOrder replaces the three mutable fields. The backend applies this
// as a partial update even over PUT, so untouched fields survive.
func (c *Client) UpdateOrder(ctx context.Context, id int64, price, payed int64, status entity.Status) (entity.Order, error) {
	var out entity.Order
	payload := map[string]any{
		"price":  price,
		"payed":  payed,
		"status": string(status),
	}
	if err := c.put(ctx, fmt.Sprintf("orders/%d/", id), payload, &out); err != nil {
		return entity.Order{}, err
	}
	return out, nil
}

func (c *Client) ListOrderItems(ctx context.Context, orderID int64) ([]entity.OrderItem, error) {
	q := url.Values{}
	q.Set("order", strconv.FormatInt(orderID, 10))
	return getCollection[entity.OrderItem](ctx, c, "order-items/", q)
}

// CreateOrderItem posts one line item. Selected property values are encoded
// with the JSON type their definition demands, keyed by decimal property id.
func (c *Client) CreateOrderItem(ctx context.Context, it entity.OrderItem, valueTypes map[int64]entity.ValueType) (entity.OrderItem, error) {
	selected := make(map[string]any, len(it.SelectedProperties))
	for propID, value := range it.SelectedProperties {
		var encoded any = value
		if valueTypes[propID] == entity.ValueNumber {
			encoded = parseNumber(value)
		}
		selected[strconv.FormatInt(propID, 10)] = encoded
	}

	payload := map[string]any{
		"order":               it.OrderID,
		"customer":            it.CustomerID,
		"product":             it.ProductID,
		"quantity":            it.Quantity,
		"selected_properties": selected,
		"note":                it.Note,
	}

	var out entity.OrderItem
	if err := c.post(ctx, "order-items/", payload, &out); err != nil {
		return entity.OrderItem{}, err
	}
	return out, nil
}
