// Package seed imports customers and invoices from a YAML fixture file.
//
// Records go through the state manager like any other input, so a fixture
// is validated exactly as typed-in data would be.
package seed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/rubico/internal/domain"
)

// Fixture is the top level of a seed file.
type Fixture struct {
	// Customers are created in file order, so the last one ends up newest.
	Customers []Customer `yaml:"customers"`

	// Invoices are created after all customers.
	Invoices []Invoice `yaml:"invoices"`
}

// Customer is one customer entry: both entry steps side by side.
type Customer struct {
	domain.PersonalInfo `yaml:",inline"`
	domain.AddressInfo  `yaml:",inline"`
}

// Invoice is one invoice entry. The customer is referenced by email, since
// ids are only known once customers are created.
type Invoice struct {
	// Customer is the email of an existing or seeded customer.
	Customer string `yaml:"customer"`

	// InvoiceDate and DueDate default to today and today + 30 days.
	InvoiceDate string `yaml:"invoiceDate,omitempty"`
	DueDate     string `yaml:"dueDate,omitempty"`

	TaxRate float64            `yaml:"taxRate,omitempty"`
	Items   []domain.ItemInput `yaml:"items"`

	// Status is applied after creation. Empty means draft.
	Status domain.InvoiceStatus `yaml:"status,omitempty"`
}

// Load reads and parses a fixture file. Unknown fields are rejected so a
// typo does not silently drop data.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file: %w", err)
	}
	return Parse(data)
}

// Parse parses fixture YAML. An empty document is an empty fixture.
func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	for i, inv := range f.Invoices {
		if inv.Customer == "" {
			return nil, fmt.Errorf("invoice %d: customer is required", i)
		}
	}
	return &f, nil
}
