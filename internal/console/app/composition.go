package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/erfansky/Dressmaking/internal/console/core/domain/entity"
	"github.com/erfansky/Dressmaking/internal/console/core/ports"
	"github.com/erfansky/Dressmaking/internal/coordinator"
	"github.com/erfansky/Dressmaking/internal/coordinator/sagalog"
)

// CompositionService implements the order composition workflow: seeding
// line items with a customer's saved property values plus the product's
// order-specific schema, validating a composed draft, and saving it as a
// create-order-then-items saga.
type CompositionService struct {
	backend ports.Backend
	sagaLog sagalog.Repository
}

func NewCompositionService(backend ports.Backend, sagaLog sagalog.Repository) *CompositionService {
	return &CompositionService{backend: backend, sagaLog: sagaLog}
}

// ItemSeed is everything the composition screen needs to present a freshly
// added line item: the customer's saved values for the product (shown
// read-only, not re-editable here) and the order-specific definitions, each
// with an empty editable value.
type ItemSeed struct {
	Product            entity.Product            `json:"product"`
	CustomerProperties []entity.CustomerProperty `json:"customer_properties"`
	OrderProperties    []entity.Property         `json:"order_properties"`
	Quantity           int                       `json:"quantity"`
	Note               string                    `json:"note"`
	Values             entity.Selections         `json:"values"`
}

// SeedItem prepares a line item for (customer, product). Quantity defaults
// to 1, the note to empty, and every order-specific property to an empty
// value keyed by its id.
func (s *CompositionService) SeedItem(ctx context.Context, customerID, productID int64) (*ItemSeed, error) {
	product, err := s.backend.GetProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}

	customerProps, err := s.backend.ListCustomerProperties(ctx, customerID, productID)
	if err != nil {
		return nil, fmt.Errorf("load customer property values: %w", err)
	}

	defs, err := s.backend.ListProperties(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("load property definitions: %w", err)
	}
	orderProps := entity.OrderEditableProperties(defs)

	values := make(entity.Selections, len(orderProps))
	for _, def := range orderProps {
		values[def.ID] = ""
	}

	return &ItemSeed{
		Product:            product,
		CustomerProperties: customerProps,
		OrderProperties:    orderProps,
		Quantity:           1,
		Note:               "",
		Values:             values,
	}, nil
}

// DraftItem is one composed line item as submitted.
type DraftItem struct {
	ProductID int64             `json:"product_id"`
	Quantity  int               `json:"quantity"`
	Note      string            `json:"note"`
	Selected  entity.Selections `json:"selected_properties"`
}

// Participant is one customer contributing items to the order.
type Participant struct {
	CustomerID int64       `json:"customer_id"`
	Items      []DraftItem `json:"items"`
}

// Draft is a whole composed order. PlacedBy is the primary customer the
// order was started from; additional participants contribute their own
// items but the order record itself references only the primary.
type Draft struct {
	PlacedBy     int64         `json:"placed_by"`
	Price        int64         `json:"price"`
	Payed        int64         `json:"payed"`
	Participants []Participant `json:"participants"`
}

// AddParticipant appends a customer to the draft, rejecting duplicates.
func (d *Draft) AddParticipant(customerID int64) bool {
	for _, p := range d.Participants {
		if p.CustomerID == customerID {
			return false
		}
	}
	d.Participants = append(d.Participants, Participant{CustomerID: customerID})
	return true
}

// SaveResult reports the outcome of a composition save. OrderID is set as
// soon as the order record exists, even when later item steps failed — the
// order is real at that point and staff need its id to follow up.
type SaveResult struct {
	OrderID int64               `json:"order_id,omitempty"`
	Report  *coordinator.Report `json:"report"`
}

// Save validates the draft and runs the save saga: one create-order step,
// then one create-item step per (participant, item) in draft order. The
// loop is sequential and non-transactional; a failure partway leaves the
// order with only the items created so far, and the report records exactly
// which steps did not complete.
func (s *CompositionService) Save(ctx context.Context, draft Draft) (*SaveResult, error) {
	if draft.PlacedBy == 0 {
		return nil, fmt.Errorf("draft has no primary customer")
	}

	order := entity.Order{
		PlacedBy: draft.PlacedBy,
		Price:    draft.Price,
		Payed:    draft.Payed,
		Status:   entity.StatusInProgress, // fixed initial status
	}
	if err := order.ValidateFinancials(); err != nil {
		return nil, err
	}

	schemas, err := s.loadSchemas(ctx, draft)
	if err != nil {
		return nil, err
	}

	orderStep := coordinator.NewCreateOrderStep(s.backend, order)
	steps := []coordinator.Step{orderStep}

	itemIndex := 0
	for _, participant := range draft.Participants {
		for _, item := range participant.Items {
			itemIndex++
			schema := schemas[item.ProductID]

			if err := validateDraftItem(participant.CustomerID, item, schema); err != nil {
				return nil, err
			}

			steps = append(steps, coordinator.NewCreateOrderItemStep(
				s.backend,
				orderStep,
				entity.OrderItem{
					CustomerID:         participant.CustomerID,
					ProductID:          item.ProductID,
					Quantity:           item.Quantity,
					Note:               item.Note,
					SelectedProperties: completeSelections(item.Selected, schema.orderProps),
				},
				schema.valueTypes,
				fmt.Sprintf("item_%d_customer_%d", itemIndex, participant.CustomerID),
			))
		}
	}

	payload, _ := json.Marshal(draft)
	sagaID := "order-" + uuid.NewString()

	report, runErr := coordinator.NewOrchestrator(sagaID, steps, s.sagaLog, string(payload)).Run(ctx)
	result := &SaveResult{OrderID: orderStep.OrderID(), Report: report}
	if runErr != nil {
		return result, fmt.Errorf("order save incomplete: %w", runErr)
	}
	return result, nil
}

// productSchema caches one product's property partition for a save.
type productSchema struct {
	orderProps []entity.Property
	valueTypes map[int64]entity.ValueType
}

func (s *CompositionService) loadSchemas(ctx context.Context, draft Draft) (map[int64]productSchema, error) {
	schemas := make(map[int64]productSchema)
	for _, participant := range draft.Participants {
		for _, item := range participant.Items {
			if _, done := schemas[item.ProductID]; done {
				continue
			}
			defs, err := s.backend.ListProperties(ctx, item.ProductID)
			if err != nil {
				return nil, fmt.Errorf("load property definitions for product %d: %w", item.ProductID, err)
			}
			orderProps := entity.OrderEditableProperties(defs)
			valueTypes := make(map[int64]entity.ValueType, len(orderProps))
			for _, def := range orderProps {
				valueTypes[def.ID] = def.ValueType
			}
			schemas[item.ProductID] = productSchema{orderProps: orderProps, valueTypes: valueTypes}
		}
	}
	return schemas, nil
}

// validateDraftItem enforces the per-item rules: quantity and note limits,
// no values for properties outside the product's order-specific set, and a
// concrete choice for every dropdown (order dropdowns are single-choice).
func validateDraftItem(customerID int64, item DraftItem, schema productSchema) error {
	entityItem := entity.OrderItem{Quantity: item.Quantity, Note: item.Note}
	if err := entityItem.Validate(); err != nil {
		return fmt.Errorf("item for customer %d: %w", customerID, err)
	}

	for propID := range item.Selected {
		if _, ok := schema.valueTypes[propID]; !ok {
			return fmt.Errorf("item for customer %d: property %d is not order-specific for product %d", customerID, propID, item.ProductID)
		}
	}

	for _, def := range schema.orderProps {
		if def.ValueType != entity.ValueDropdown {
			continue
		}
		choice := item.Selected[def.ID]
		if choice == "" {
			return fmt.Errorf("item for customer %d: %s requires a selection", customerID, def.Name)
		}
		if !def.HasOption(choice) {
			return fmt.Errorf("item for customer %d: %q is not an option of %s", customerID, choice, def.Name)
		}
	}
	return nil
}

// completeSelections fills the submitted values out to the full
// order-specific schema, defaulting missing entries to empty strings, so
// the persisted mapping always covers exactly the order-specific ids.
func completeSelections(submitted entity.Selections, orderProps []entity.Property) entity.Selections {
	out := make(entity.Selections, len(orderProps))
	for _, def := range orderProps {
		out[def.ID] = submitted[def.ID]
	}
	return out
}
