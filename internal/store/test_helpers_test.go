package store

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/roach88/rubico/internal/domain"
	"github.com/roach88/rubico/internal/testutil"
)

// createTestStore creates a new file-backed store in a temp dir with a
// deterministic clock and sequential ids.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path,
		WithLogger(zaptest.NewLogger(t)),
		WithClock(testutil.NewStepClock()),
		WithIDFunc(testutil.NewSeqIDs("rec").Next),
	)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestCustomer creates a customer record with minimal required fields.
func createTestCustomer(name, email string) domain.Customer {
	addr := domain.Address{
		Street:  "1 Main St",
		City:    "Pune",
		State:   "MH",
		ZipCode: "411001",
		Country: "India",
	}
	return domain.Customer{
		Name:            name,
		Email:           email,
		BillingAddress:  addr,
		ShippingAddress: addr,
	}
}

// createTestInvoice creates an invoice record for the given customer.
func createTestInvoice(customerID string) domain.Invoice {
	return domain.Invoice{
		CustomerID:    customerID,
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
		InvoiceDate:   "2025-01-01",
		DueDate:       "2025-01-31",
		Items: []domain.InvoiceItem{
			{ID: "item-1", Name: "Widget", Price: 10, Quantity: 2, Total: 20},
		},
		TaxRate:   10,
		Subtotal:  20,
		TaxAmount: 2,
		Total:     22,
		Status:    domain.InvoiceStatusDraft,
	}
}
