package entity

import (
	"fmt"
	"strings"
)

// Product is a garment type offered by the atelier (e.g. "Shirt", "Evening
// dress"). Properties attached to a product describe its configurable
// attributes.
type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("product name cannot be empty")
	}
	return nil
}
