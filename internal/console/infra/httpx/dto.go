package httpx

import (
	"github.com/erfansky/Dressmaking/internal/console/app"
	"github.com/erfansky/Dressmaking/internal/console/core/domain/entity"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SessionResponse struct {
	LoggedIn bool `json:"logged_in"`
}

type CustomerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

func (r CustomerRequest) toEntity(id int64) entity.Customer {
	return entity.Customer{
		ID:        id,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
	}
}

type ProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r ProductRequest) toEntity(id int64) entity.Product {
	return entity.Product{ID: id, Name: r.Name, Description: r.Description}
}

type PropertyRequest struct {
	ProductID          int64            `json:"product"`
	Name               string           `json:"name"`
	ValueType          entity.ValueType `json:"value_type"`
	PossibleValues     []string         `json:"possible_values"`
	IsCustomerSpecific bool             `json:"is_customer_specific"`
	IsOrderSpecific    bool             `json:"is_order_specific"`
}

func (r PropertyRequest) toEntity(id int64) entity.Property {
	return entity.Property{
		ID:                 id,
		ProductID:          r.ProductID,
		Name:               r.Name,
		ValueType:          r.ValueType,
		IsCustomerSpecific: r.IsCustomerSpecific,
		IsOrderSpecific:    r.IsOrderSpecific,
	}
}

// AssignmentSaveRequest carries the submitted field states keyed by
// property id (decimal strings, matching how JSON object keys arrive).
type AssignmentSaveRequest struct {
	Fields map[string]app.FieldInput `json:"fields"`
}

type OrderUpdateRequest struct {
	Price  int64         `json:"price"`
	Payed  int64         `json:"payed"`
	Status entity.Status `json:"status"`
}

type SagaStatusResponse struct {
	SagaID      string `json:"saga_id"`
	Status      string `json:"status"`
	CurrentStep string `json:"current_step,omitempty"`
	Errors      string `json:"errors,omitempty"`
	UpdatedAt   string `json:"updated_at"`
	TraceID     string `json:"trace_id,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
