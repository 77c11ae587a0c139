package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/erfansky/Dressmaking/internal/console/core/domain/entity"
)

// flexValue absorbs the backend's JSON value field, which may be a string,
// a number, or a historical list of selected options, and normalises it to
// the string form the workflow code operates on.
type flexValue string

func (f *flexValue) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch tv := v.(type) {
	case nil:
		*f = ""
	case string:
		*f = flexValue(tv)
	case float64:
		*f = flexValue(strconv.FormatFloat(tv, 'f', -1, 64))
	case bool:
		*f = flexValue(strconv.FormatBool(tv))
	case []any:
		parts := make([]string, 0, len(tv))
		for _, e := range tv {
			s, ok := e.(string)
			if !ok {
				return fmt.Errorf("value list contains a non-string element")
			}
			parts = append(parts, s)
		}
		*f = flexValue(strings.Join(parts, ","))
	default:
		return fmt.Errorf("unsupported value shape")
	}
	return nil
}

type customerPropertyDTO struct {
	ID           int64            `json:"id"`
	Customer     int64            `json:"customer"`
	Property     int64            `json:"property"`
	Value        flexValue        `json:"value"`
	PropertyName string           `json:"property_name"`
	PropertyType entity.ValueType `json:"property_type"`
}

func (d customerPropertyDTO) toEntity() entity.CustomerProperty {
	return entity.CustomerProperty{
		ID:           d.ID,
		CustomerID:   d.Customer,
		PropertyID:   d.Property,
		Value:        string(d.Value),
		PropertyName: d.PropertyName,
		PropertyType: d.PropertyType,
	}
}

// ListCustomerProperties fetches the saved values for one (customer,
// product) pair via ?customer=&property__product=.
func (c *Client) ListCustomerProperties(ctx context.Context, customerID, productID int64) ([]entity.CustomerProperty, error) {
	q := url.Values{}
	q.Set("customer", strconv.FormatInt(customerID, 10))
	q.Set("property__product", strconv.FormatInt(productID, 10))

	dtos, err := getCollection[customerPropertyDTO](ctx, c, "customer-properties/", q)
	if err != nil {
		return nil, err
	}
	out := make([]entity.CustomerProperty, len(dtos))
	for i, d := range dtos {
		out[i] = d.toEntity()
	}
	return out, nil
}

func (c *Client) CreateCustomerProperty(ctx context.Context, v entity.CustomerProperty, valueType entity.ValueType) (entity.CustomerProperty, error) {
	var dto customerPropertyDTO
	if err := c.post(ctx, "customer-properties/", customerPropertyPayload(v, valueType), &dto); err != nil {
		return entity.CustomerProperty{}, err
	}
	return dto.toEntity(), nil
}

func (c *Client) UpdateCustomerProperty(ctx context.Context, v entity.CustomerProperty, valueType entity.ValueType) (entity.CustomerProperty, error) {
	var dto customerPropertyDTO
	if err := c.put(ctx, fmt.Sprintf("customer-properties/%d/", v.ID), customerPropertyPayload(v, valueType), &dto); err != nil {
		return entity.CustomerProperty{}, err
	}
	return dto.toEntity(), nil
}

// customerPropertyPayload encodes the value with the JSON type the backend
// validates against: numbers for number properties (an unparseable entry
// degrades to 0, matching the form's behaviour), plain strings otherwise.
// Dropdown values arrive here already comma-joined.
func customerPropertyPayload(v entity.CustomerProperty, valueType entity.ValueType) map[string]any {
	var value any = v.Value
	if valueType == entity.ValueNumber {
		value = parseNumber(v.Value)
	}
	return map[string]any{
		"customer": v.CustomerID,
		"property": v.PropertyID,
		"value":    value,
	}
}

func parseNumber(s string) float64 {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return n
}
