package validate

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// messages maps "<field>/<tag>" to the text shown next to the input.
var messages = map[string]string{
	"name/min":             "Name must be at least 2 characters",
	"email/required":       "Email is required",
	"email/email":          "Invalid email address",
	"street/required":      "Street address is required",
	"city/required":        "City is required",
	"state/required":       "State is required",
	"zipCode/required":     "ZIP code is required",
	"zipCode/zipcode":      "Invalid ZIP code format",
	"country/required":     "Country is required",
	"customerId/required":  "Customer is required",
	"invoiceDate/required": "Invoice date is required",
	"invoiceDate/datetime": "Invoice date must be a date (YYYY-MM-DD)",
	"dueDate/required":     "Due date is required",
	"dueDate/datetime":     "Due date must be a date (YYYY-MM-DD)",
	"dueDate/duedate":      "Due date must be after invoice date",
	"items/min":            "At least one item is required",
	"name/required":        "Item name is required",
	"price/gt":             "Price must be greater than 0",
	"quantity/min":         "Quantity must be at least 1",
	"taxRate/gte":          "Tax rate must be between 0 and 100",
	"taxRate/lte":          "Tax rate must be between 0 and 100",
}

func message(fe validator.FieldError) string {
	if msg, ok := messages[fe.Field()+"/"+fe.Tag()]; ok {
		return msg
	}
	if fe.Param() != "" {
		return fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
}
