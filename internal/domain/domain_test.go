package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAddress(street string) Address {
	return Address{Street: street, City: "Pune", State: "MH", ZipCode: "411001", Country: "India"}
}

func TestNewCustomerInput_SameAsShippingCopiesByValue(t *testing.T) {
	p := PersonalInfo{Name: "Ada", Email: "ada@example.com"}
	a := AddressInfo{
		BillingAddress:  sampleAddress("1 Billing Rd"),
		ShippingAddress: sampleAddress("2 Shipping Rd"),
		SameAsShipping:  true,
	}

	in := NewCustomerInput(p, a)
	require.Equal(t, in.BillingAddress, in.ShippingAddress)

	in.ShippingAddress.Street = "changed"
	assert.Equal(t, "1 Billing Rd", in.BillingAddress.Street)
}

func TestNewCustomerInput_KeepsSeparateShipping(t *testing.T) {
	in := NewCustomerInput(
		PersonalInfo{Name: "Ada", Email: "ada@example.com", Phone: "555"},
		AddressInfo{BillingAddress: sampleAddress("1 Billing Rd"), ShippingAddress: sampleAddress("2 Shipping Rd")},
	)

	assert.Equal(t, "2 Shipping Rd", in.ShippingAddress.Street)
	assert.Equal(t, PersonalInfo{Name: "Ada", Email: "ada@example.com", Phone: "555"}, in.Personal())
}

func TestCustomerPatch_Apply(t *testing.T) {
	c := Customer{
		Meta:  Meta{ID: "c1", CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		Name:  "Ada",
		Email: "ada@example.com",
		Phone: "555",
	}
	name := "Ada Lovelace"
	ship := sampleAddress("9 New St")

	CustomerPatch{Name: &name, ShippingAddress: &ship}.Apply(&c)

	assert.Equal(t, "Ada Lovelace", c.Name)
	assert.Equal(t, "ada@example.com", c.Email)
	assert.Equal(t, "555", c.Phone)
	assert.Equal(t, ship, c.ShippingAddress)
	assert.Equal(t, "c1", c.ID)
}

func TestCustomerPatch_Empty(t *testing.T) {
	assert.True(t, CustomerPatch{}.Empty())
	phone := ""
	assert.False(t, CustomerPatch{Phone: &phone}.Empty())
}

func TestInvoicePatch_Empty(t *testing.T) {
	assert.True(t, InvoicePatch{}.Empty())
	status := InvoiceStatusPaid
	assert.False(t, InvoicePatch{Status: &status}.Empty())
}

func TestInvoiceStatus_Valid(t *testing.T) {
	for _, s := range InvoiceStatuses {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, InvoiceStatus("cancelled").Valid())
	assert.False(t, InvoiceStatus("").Valid())
}

func TestDefaultInvoiceInput(t *testing.T) {
	now := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

	in := DefaultInvoiceInput("c1", now)

	assert.Equal(t, "c1", in.CustomerID)
	assert.Equal(t, "2025-01-15", in.InvoiceDate)
	assert.Equal(t, "2025-02-14", in.DueDate)
	assert.Zero(t, in.TaxRate)
	assert.Empty(t, in.Items)
}

func TestCustomerJSONShape(t *testing.T) {
	c := Customer{
		Meta:            Meta{ID: "c1", CreatedAt: time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)},
		Name:            "Ada",
		Email:           "ada@example.com",
		BillingAddress:  sampleAddress("1 Billing Rd"),
		ShippingAddress: sampleAddress("1 Billing Rd"),
	}

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "c1", m["id"])
	assert.Equal(t, "2025-01-15T09:00:00Z", m["createdAt"])
	assert.NotContains(t, m, "Meta")
	assert.NotContains(t, m, "phone")
	billing, ok := m["billingAddress"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "411001", billing["zipCode"])
}

func TestInvoice_Input(t *testing.T) {
	inv := Invoice{
		CustomerID:  "c1",
		InvoiceDate: "2025-01-01",
		DueDate:     "2025-01-31",
		Items:       []InvoiceItem{{ID: "i1", Name: "Widget", Price: 10, Quantity: 2, Total: 20}},
		TaxRate:     10,
	}

	in := inv.Input()

	assert.Equal(t, "c1", in.CustomerID)
	assert.Equal(t, []ItemInput{{ID: "i1", Name: "Widget", Price: 10, Quantity: 2}}, in.Items)
	assert.Equal(t, 10.0, in.TaxRate)
}

func TestEmailKey(t *testing.T) {
	assert.Equal(t, EmailKey("A@x.com"), EmailKey("a@x.com"))
	assert.Equal(t, EmailKey("Ada@Example.COM"), EmailKey("ada@example.com"))
	assert.NotEqual(t, EmailKey("  ada@example.com"), EmailKey("ada@example.com"))
	assert.True(t, SameEmail("STRASSE@x.de", "strasse@X.DE"))
	assert.False(t, SameEmail("a@x.com", "b@x.com"))
}
