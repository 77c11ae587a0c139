package entity

import (
	"fmt"
	"strings"
	"unicode"
)

// Customer is a client of the atelier. The backend is the system of record;
// instances held here are transient view-state copies.
type Customer struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// DisplayName is the "First Last" form shown in lists and order views.
func (c Customer) DisplayName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Validate mirrors the backend's customer rules so obviously bad input is
// rejected before a round trip: non-blank names containing only letters,
// spaces or hyphens, and an optional phone of exactly 11 digits starting
// with 0.
func (c Customer) Validate() error {
	if strings.TrimSpace(c.FirstName) == "" {
		return fmt.Errorf("first name cannot be empty")
	}
	if strings.TrimSpace(c.LastName) == "" {
		return fmt.Errorf("last name cannot be empty")
	}
	for _, name := range []string{c.FirstName, c.LastName} {
		if !validName(name) {
			return fmt.Errorf("name %q must only contain letters, spaces, or hyphens", name)
		}
	}
	if c.Phone != "" {
		if len(c.Phone) != 11 || c.Phone[0] != '0' || !allDigits(c.Phone) {
			return fmt.Errorf("phone number must start with 0 and be exactly 11 digits")
		}
	}
	return nil
}

func validName(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && r != ' ' && r != '-' {
			return false
		}
	}
	return true
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
