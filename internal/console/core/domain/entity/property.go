package entity

import (
	"fmt"
	"strings"
)

// ValueType enumerates how a property value is entered and stored.
type ValueType string

const (
	ValueText     ValueType = "text"
	ValueNumber   ValueType = "number"
	ValueDropdown ValueType = "dropdown"
)

// Property is a typed attribute definition scoped to one product, e.g.
// "Collar Style" on "Shirt". A property flagged customer-specific is filled
// in once per customer; one that is not customer-specific is filled in per
// order line item.
//
// The backend stores only is_customer_specific; is_order_specific also
// appears in some responses and is read verbatim where present, defaulting
// to false when absent. Both read paths below are kept exactly as the
// console has always evaluated them rather than collapsing the two flags
// into one (see DESIGN.md, open questions).
type Property struct {
	ID                 int64     `json:"id"`
	ProductID          int64     `json:"product"`
	Name               string    `json:"name"`
	ValueType          ValueType `json:"value_type"`
	PossibleValues     []string  `json:"possible_values,omitempty"`
	IsCustomerSpecific bool      `json:"is_customer_specific"`
	IsOrderSpecific    bool      `json:"is_order_specific,omitempty"`
}

// CustomerEditable reports whether the property belongs on the customer
// property assignment screen.
func (p Property) CustomerEditable() bool {
	return p.IsCustomerSpecific && !p.IsOrderSpecific
}

// OrderEditable reports whether the property is entered per order line item.
func (p Property) OrderEditable() bool {
	return !p.IsCustomerSpecific
}

// AddOption appends a dropdown option after trimming surrounding whitespace.
// Blank options are rejected. Returns true if the option was added.
func (p *Property) AddOption(raw string) bool {
	opt := strings.TrimSpace(raw)
	if opt == "" {
		return false
	}
	p.PossibleValues = append(p.PossibleValues, opt)
	return true
}

// RemoveOption deletes the option at position i, preserving the order of the
// remaining options. Returns false if i is out of range.
func (p *Property) RemoveOption(i int) bool {
	if i < 0 || i >= len(p.PossibleValues) {
		return false
	}
	p.PossibleValues = append(p.PossibleValues[:i], p.PossibleValues[i+1:]...)
	return true
}

// Validate enforces the definition rules: dropdown properties must carry a
// non-empty option list, non-dropdown properties must not carry one.
func (p Property) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("property name cannot be empty")
	}
	switch p.ValueType {
	case ValueText, ValueNumber:
		if len(p.PossibleValues) > 0 {
			return fmt.Errorf("only dropdown properties can define possible values")
		}
	case ValueDropdown:
		if len(p.PossibleValues) == 0 {
			return fmt.Errorf("dropdown properties must define a non-empty list of options")
		}
		for _, v := range p.PossibleValues {
			if strings.TrimSpace(v) == "" {
				return fmt.Errorf("dropdown options must be non-empty strings")
			}
		}
	default:
		return fmt.Errorf("unknown value type %q", p.ValueType)
	}
	return nil
}

// HasOption reports whether v is one of the dropdown's possible values.
func (p Property) HasOption(v string) bool {
	for _, pv := range p.PossibleValues {
		if pv == v {
			return true
		}
	}
	return false
}

// CustomerEditableProperties filters defs to those managed on the customer
// property assignment screen.
func CustomerEditableProperties(defs []Property) []Property {
	out := make([]Property, 0, len(defs))
	for _, d := range defs {
		if d.CustomerEditable() {
			out = append(out, d)
		}
	}
	return out
}

// OrderEditableProperties filters defs to those entered per order line item.
func OrderEditableProperties(defs []Property) []Property {
	out := make([]Property, 0, len(defs))
	for _, d := range defs {
		if d.OrderEditable() {
			out = append(out, d)
		}
	}
	return out
}

// SplitSelections decodes the stored comma-joined form of a multi-select
// dropdown value. An empty stored value yields an empty slice, not [""].
func SplitSelections(stored string) []string {
	if stored == "" {
		return []string{}
	}
	return strings.Split(stored, ",")
}

// JoinSelections is the inverse of SplitSelections. Options must not contain
// commas themselves; the catalog never produces such options.
func JoinSelections(selected []string) string {
	return strings.Join(selected, ",")
}

// CustomerProperty is a saved value of a customer-specific property for one
// customer. At most one exists per (customer, property) pair; saves go
// through an upsert keyed on that pair.
//
// PropertyName and PropertyType are read-only denormalisations the backend
// includes in list responses.
type CustomerProperty struct {
	ID           int64     `json:"id"`
	CustomerID   int64     `json:"customer"`
	PropertyID   int64     `json:"property"`
	Value        string    `json:"value"`
	PropertyName string    `json:"property_name,omitempty"`
	PropertyType ValueType `json:"property_type,omitempty"`
}
