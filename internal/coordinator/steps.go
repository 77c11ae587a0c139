package coordinator

import (
	"context"
	"fmt"

	"github.com/erfansky/Dressmaking/internal/console/core/domain/entity"
	"github.com/erfansky/Dressmaking/internal/console/core/ports"
)

// --- CreateOrderStep ---

// CreateOrderStep creates the order record itself. It always runs first;
// item steps read the id it captures.
type CreateOrderStep struct {
	orders  ports.OrderService
	order   entity.Order
	orderID int64
}

func NewCreateOrderStep(orders ports.OrderService, order entity.Order) *CreateOrderStep {
	return &CreateOrderStep{orders: orders, order: order}
}

func (s *CreateOrderStep) Name() string { return "create_order" }

// OrderID is the id assigned by the backend. Zero until Execute succeeds.
func (s *CreateOrderStep) OrderID() int64 { return s.orderID }

func (s *CreateOrderStep) Execute(ctx context.Context) error {
	created, err := s.orders.CreateOrder(ctx, s.order)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	s.orderID = created.ID
	return nil
}

// --- CreateOrderItemStep ---

// CreateOrderItemStep creates one line item for the order created by the
// preceding CreateOrderStep.
type CreateOrderItemStep struct {
	items      ports.OrderItemService
	orderStep  *CreateOrderStep
	item       entity.OrderItem
	valueTypes map[int64]entity.ValueType
	label      string
}

// NewCreateOrderItemStep builds a step for one (customer, product) line.
// label distinguishes steps in the report, e.g. "item_2_customer_7".
func NewCreateOrderItemStep(
	items ports.OrderItemService,
	orderStep *CreateOrderStep,
	item entity.OrderItem,
	valueTypes map[int64]entity.ValueType,
	label string,
) *CreateOrderItemStep {
	return &CreateOrderItemStep{
		items:      items,
		orderStep:  orderStep,
		item:       item,
		valueTypes: valueTypes,
		label:      label,
	}
}

func (s *CreateOrderItemStep) Name() string { return s.label }

func (s *CreateOrderItemStep) Execute(ctx context.Context) error {
	item := s.item
	item.OrderID = s.orderStep.OrderID()
	if item.OrderID == 0 {
		return fmt.Errorf("order id not available, create_order did not run")
	}
	if _, err := s.items.CreateOrderItem(ctx, item, s.valueTypes); err != nil {
		return fmt.Errorf("create order item for customer %d: %w", item.CustomerID, err)
	}
	return nil
}

// --- UpsertCustomerPropertyStep ---

// UpsertCustomerPropertyStep saves one customer property value: an update
// when an existing record id is known, a create otherwise. The existing id
// is looked up from a fresh fetch immediately before the saga is built so a
// stale id can never turn an update into a duplicate.
type UpsertCustomerPropertyStep struct {
	values     ports.CustomerPropertyService
	value      entity.CustomerProperty
	valueType  entity.ValueType
	existingID int64
	label      string
}

func NewUpsertCustomerPropertyStep(
	values ports.CustomerPropertyService,
	value entity.CustomerProperty,
	valueType entity.ValueType,
	existingID int64,
	label string,
) *UpsertCustomerPropertyStep {
	return &UpsertCustomerPropertyStep{
		values:     values,
		value:      value,
		valueType:  valueType,
		existingID: existingID,
		label:      label,
	}
}

func (s *UpsertCustomerPropertyStep) Name() string { return s.label }

func (s *UpsertCustomerPropertyStep) Execute(ctx context.Context) error {
	if s.existingID != 0 {
		v := s.value
		v.ID = s.existingID
		if _, err := s.values.UpdateCustomerProperty(ctx, v, s.valueType); err != nil {
			return fmt.Errorf("update customer property %d: %w", s.value.PropertyID, err)
		}
		return nil
	}
	if _, err := s.values.CreateCustomerProperty(ctx, s.value, s.valueType); err != nil {
		return fmt.Errorf("create customer property %d: %w", s.value.PropertyID, err)
	}
	return nil
}
