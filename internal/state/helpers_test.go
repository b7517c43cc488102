package state

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/roach88/rubico/internal/domain"
	"github.com/roach88/rubico/internal/store"
	"github.com/roach88/rubico/internal/testutil"
)

// createTestManager returns a manager over a fresh file-backed store with
// deterministic ids and timestamps.
func createTestManager(t *testing.T) (*Manager, *store.Store) {
	t.Helper()
	log := zaptest.NewLogger(t)
	s, err := store.Open(filepath.Join(t.TempDir(), "state.db"),
		store.WithLogger(log),
		store.WithClock(testutil.NewStepClock()),
		store.WithIDFunc(testutil.NewSeqIDs("rec").Next),
	)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	m := New(s.Customers(), s.Invoices(),
		WithLogger(log),
		WithIDFunc(testutil.NewSeqIDs("item").Next),
	)
	return m, s
}

func testAddress() domain.Address {
	return domain.Address{
		Street:  "1 Main St",
		City:    "Pune",
		State:   "MH",
		ZipCode: "411001",
		Country: "India",
	}
}

func testCustomerInput(name, email string) domain.CustomerInput {
	return domain.CustomerInput{
		Name:            name,
		Email:           email,
		BillingAddress:  testAddress(),
		ShippingAddress: testAddress(),
	}
}

func testInvoiceInput(customerID string) domain.InvoiceInput {
	return domain.InvoiceInput{
		CustomerID:  customerID,
		InvoiceDate: "2025-01-01",
		DueDate:     "2025-01-31",
		Items: []domain.ItemInput{
			{Name: "Widget", Price: 10, Quantity: 2},
			{Name: "Gadget", Price: 5, Quantity: 1},
		},
		TaxRate: 10,
	}
}

func mustAddCustomer(t *testing.T, m *Manager, name, email string) domain.Customer {
	t.Helper()
	c, err := m.AddCustomer(context.Background(), testCustomerInput(name, email))
	require.NoError(t, err)
	return c
}

func ptr[T any](v T) *T { return &v }

// failingCustomers and failingInvoices fail every call with err.
type failingCustomers struct{ err error }

func (f failingCustomers) GetAll(context.Context) ([]domain.Customer, error) { return nil, f.err }
func (f failingCustomers) GetByID(context.Context, string) (domain.Customer, bool, error) {
	return domain.Customer{}, false, f.err
}
func (f failingCustomers) GetByEmail(context.Context, string) (domain.Customer, bool, error) {
	return domain.Customer{}, false, f.err
}
func (f failingCustomers) Create(context.Context, domain.Customer) (domain.Customer, error) {
	return domain.Customer{}, f.err
}
func (f failingCustomers) Update(context.Context, string, func(*domain.Customer) error) (domain.Customer, bool, error) {
	return domain.Customer{}, false, f.err
}
func (f failingCustomers) Delete(context.Context, string) error { return f.err }

type failingInvoices struct{ err error }

func (f failingInvoices) GetAll(context.Context) ([]domain.Invoice, error) { return nil, f.err }
func (f failingInvoices) GetByCustomerID(context.Context, string) ([]domain.Invoice, error) {
	return nil, f.err
}
func (f failingInvoices) Create(context.Context, domain.Invoice) (domain.Invoice, error) {
	return domain.Invoice{}, f.err
}
func (f failingInvoices) Update(context.Context, string, func(*domain.Invoice) error) (domain.Invoice, bool, error) {
	return domain.Invoice{}, false, f.err
}
func (f failingInvoices) Delete(context.Context, string) error { return f.err }
