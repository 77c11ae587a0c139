package entity

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

var statusDisplay = map[Status]string{
	StatusInProgress: "in progress",
	StatusCompleted:  "completed",
	StatusCancelled:  "cancelled",
}

// Display returns the human form of the status. Unrecognised values are
// shown verbatim.
func (s Status) Display() string {
	if d, ok := statusDisplay[s]; ok {
		return d
	}
	return string(s)
}

// Known reports whether s is one of the statuses the console understands.
func (s Status) Known() bool {
	_, ok := statusDisplay[s]
	return ok
}

// Order is created once from the composition workflow; afterwards only
// price, payed and status are mutable, from the detail screen.
type Order struct {
	ID        int64  `json:"id"`
	PlacedBy  int64  `json:"placed_by"`
	Price     int64  `json:"price"`
	Payed     int64  `json:"payed"`
	Status    Status `json:"status"`
	CreatedAt string `json:"created_at,omitempty"`
}

// ValidateFinancials checks the money fields before submission.
func (o Order) ValidateFinancials() error {
	if o.Price < 0 {
		return fmt.Errorf("price must be non-negative")
	}
	if o.Payed < 0 {
		return fmt.Errorf("payed amount must be non-negative")
	}
	if o.Payed > o.Price {
		return fmt.Errorf("payed amount cannot exceed total price")
	}
	return nil
}

// Selections maps a property id to the order-specific value entered for one
// line item. The backend serialises it as a JSON object with string keys;
// values may come back as strings or numbers and are normalised to strings.
type Selections map[int64]string

func (s Selections) MarshalJSON() ([]byte, error) {
	m := make(map[string]string, len(s))
	for id, v := range s {
		m[strconv.FormatInt(id, 10)] = v
	}
	return json.Marshal(m)
}

func (s *Selections) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Selections, len(raw))
	for k, v := range raw {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return fmt.Errorf("selected_properties: bad property id %q", k)
		}
		switch tv := v.(type) {
		case string:
			out[id] = tv
		case float64:
			out[id] = strconv.FormatFloat(tv, 'f', -1, 64)
		case nil:
			out[id] = ""
		default:
			return fmt.Errorf("selected_properties: unsupported value for property %s", k)
		}
	}
	*s = out
	return nil
}

// MaxNoteLength is the backend's limit on line item notes.
const MaxNoteLength = 255

// OrderItem is one (customer, product) entry within an order. The owning
// customer may differ from the order's placed_by customer when an order
// spans multiple customers.
type OrderItem struct {
	ID                 int64      `json:"id"`
	OrderID            int64      `json:"order"`
	CustomerID         int64      `json:"customer"`
	ProductID          int64      `json:"product"`
	Quantity           int        `json:"quantity"`
	SelectedProperties Selections `json:"selected_properties,omitempty"`
	Note               string     `json:"note,omitempty"`
}

func (it OrderItem) Validate() error {
	if it.Quantity < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}
	if len(it.Note) > MaxNoteLength {
		return fmt.Errorf("note must be at most %d characters", MaxNoteLength)
	}
	return nil
}
