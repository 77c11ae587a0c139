package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomerDisplayName(t *testing.T) {
	assert.Equal(t, "Maryam Ahmadi", Customer{FirstName: "Maryam", LastName: "Ahmadi"}.DisplayName())
	assert.Equal(t, "Maryam", Customer{FirstName: "Maryam"}.DisplayName())
}

func TestCustomerValidate(t *testing.T) {
	ok := Customer{FirstName: "Anne-Marie", LastName: "van Dyke", Phone: "09121234567"}
	assert.NoError(t, ok.Validate())

	assert.NoError(t, Customer{FirstName: "Sara", LastName: "Karimi"}.Validate(), "phone is optional")

	assert.Error(t, Customer{LastName: "Karimi"}.Validate())
	assert.Error(t, Customer{FirstName: "Sara", LastName: " "}.Validate())
	assert.Error(t, Customer{FirstName: "Sara2", LastName: "Karimi"}.Validate())

	assert.Error(t, Customer{FirstName: "Sara", LastName: "Karimi", Phone: "9121234567"}.Validate(), "must start with 0")
	assert.Error(t, Customer{FirstName: "Sara", LastName: "Karimi", Phone: "0912123456"}.Validate(), "too short")
	assert.Error(t, Customer{FirstName: "Sara", LastName: "Karimi", Phone: "0912123456x"}.Validate(), "non-digit")
}
