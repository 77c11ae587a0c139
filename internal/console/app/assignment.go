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

// AssignmentService implements the customer property assignment workflow:
// merging a product's customer-specific property schema with a customer's
// previously saved values into an editable form, and saving that form back
// as a per-property upsert saga.
type AssignmentService struct {
	properties ports.PropertyService
	values     ports.CustomerPropertyService
	sagaLog    sagalog.Repository
}

func NewAssignmentService(properties ports.PropertyService, values ports.CustomerPropertyService, sagaLog sagalog.Repository) *AssignmentService {
	return &AssignmentService{properties: properties, values: values, sagaLog: sagaLog}
}

// AssignmentField is one editable entry of the form, keyed by property id.
// Exactly one of Value/Selected is meaningful depending on the value type:
// Selected for dropdowns (multi-select here, unlike the order screen),
// Value for text and number.
type AssignmentField struct {
	Property entity.Property `json:"property"`
	Value    string          `json:"value,omitempty"`
	Selected []string        `json:"selected,omitempty"`
}

// AssignmentForm is the merged editable view for one (customer, product)
// pair.
type AssignmentForm struct {
	CustomerID int64             `json:"customer_id"`
	ProductID  int64             `json:"product_id"`
	Fields     []AssignmentField `json:"fields"`
}

// Load builds the form: fetch the product's property definitions, keep only
// the customer-specific ones, fetch the customer's saved values, and seed
// each field from the saved value or the type's empty default.
func (s *AssignmentService) Load(ctx context.Context, customerID, productID int64) (*AssignmentForm, error) {
	defs, err := s.properties.ListProperties(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("load property definitions: %w", err)
	}
	editable := entity.CustomerEditableProperties(defs)

	existing, err := s.values.ListCustomerProperties(ctx, customerID, productID)
	if err != nil {
		return nil, fmt.Errorf("load saved values: %w", err)
	}
	saved := indexValues(existing)

	form := &AssignmentForm{CustomerID: customerID, ProductID: productID}
	for _, def := range editable {
		field := AssignmentField{Property: def}
		stored, has := saved[def.ID]
		switch def.ValueType {
		case entity.ValueDropdown:
			if has {
				field.Selected = entity.SplitSelections(stored.Value)
			} else {
				field.Selected = []string{}
			}
		case entity.ValueNumber:
			if has {
				field.Value = stored.Value
			} else {
				field.Value = "0"
			}
		default:
			if has {
				field.Value = stored.Value
			}
		}
		form.Fields = append(form.Fields, field)
	}
	return form, nil
}

// FieldInput is the submitted state of one field.
type FieldInput struct {
	Value    string   `json:"value"`
	Selected []string `json:"selected"`
}

// Save upserts every customer-specific property of the product for the
// customer. Existing record ids are re-fetched immediately before building
// the saga so an id that went stale between load and save cannot produce a
// duplicate. The steps run sequentially and are not transactional: on a
// mid-saga failure the earlier upserts stay persisted, and the report says
// which ones.
func (s *AssignmentService) Save(ctx context.Context, customerID, productID int64, inputs map[int64]FieldInput) (*coordinator.Report, error) {
	defs, err := s.properties.ListProperties(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("load property definitions: %w", err)
	}
	editable := entity.CustomerEditableProperties(defs)

	existing, err := s.values.ListCustomerProperties(ctx, customerID, productID)
	if err != nil {
		return nil, fmt.Errorf("load saved values: %w", err)
	}
	saved := indexValues(existing)

	steps := make([]coordinator.Step, 0, len(editable))
	for _, def := range editable {
		input := inputs[def.ID]

		var value string
		switch def.ValueType {
		case entity.ValueDropdown:
			value = entity.JoinSelections(input.Selected)
		default:
			value = input.Value
		}

		var existingID int64
		if stored, has := saved[def.ID]; has {
			existingID = stored.ID
		}

		steps = append(steps, coordinator.NewUpsertCustomerPropertyStep(
			s.values,
			entity.CustomerProperty{
				CustomerID: customerID,
				PropertyID: def.ID,
				Value:      value,
			},
			def.ValueType,
			existingID,
			fmt.Sprintf("property_%d", def.ID),
		))
	}

	payload, _ := json.Marshal(map[string]any{
		"customer": customerID,
		"product":  productID,
		"inputs":   inputs,
	})
	sagaID := "assignment-" + uuid.NewString()

	report, err := coordinator.NewOrchestrator(sagaID, steps, s.sagaLog, string(payload)).Run(ctx)
	if err != nil {
		return report, fmt.Errorf("assignment save incomplete: %w", err)
	}
	return report, nil
}

func indexValues(values []entity.CustomerProperty) map[int64]entity.CustomerProperty {
	out := make(map[int64]entity.CustomerProperty, len(values))
	for _, v := range values {
		out[v.PropertyID] = v
	}
	return out
}
