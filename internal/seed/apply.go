package seed

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/roach88/rubico/internal/clock"
	"github.com/roach88/rubico/internal/domain"
	"github.com/roach88/rubico/internal/state"
)

// Result counts what Apply created.
type Result struct {
	Customers int `json:"customers"`
	Invoices  int `json:"invoices"`
}

// Seeder pushes fixtures through a state manager.
type Seeder struct {
	m     *state.Manager
	log   *zap.Logger
	clock clock.Clock
}

// New creates a Seeder. A nil logger discards output and a nil clock
// means the system clock.
func New(m *state.Manager, log *zap.Logger, c clock.Clock) *Seeder {
	if log == nil {
		log = zap.NewNop()
	}
	if c == nil {
		c = clock.System{}
	}
	return &Seeder{m: m, log: log.Named("seed"), clock: c}
}

// Apply creates every customer, then every invoice, stopping at the first
// failure. Records created before the failure are kept.
func (s *Seeder) Apply(ctx context.Context, f *Fixture) (Result, error) {
	var res Result
	ids := make(map[string]string, len(f.Customers))

	for i, fc := range f.Customers {
		c, err := s.m.AddCustomer(ctx, domain.NewCustomerInput(fc.PersonalInfo, fc.AddressInfo))
		if err != nil {
			return res, fmt.Errorf("customer %d (%s): %w", i, fc.Email, err)
		}
		ids[domain.EmailKey(c.Email)] = c.ID
		res.Customers++
		s.log.Debug("customer seeded", zap.String("id", c.ID), zap.String("email", c.Email))
	}

	for i, fi := range f.Invoices {
		customerID, err := s.customerID(ctx, ids, fi.Customer)
		if err != nil {
			return res, fmt.Errorf("invoice %d: %w", i, err)
		}

		in := domain.DefaultInvoiceInput(customerID, s.clock.Now())
		if fi.InvoiceDate != "" {
			in.InvoiceDate = fi.InvoiceDate
		}
		if fi.DueDate != "" {
			in.DueDate = fi.DueDate
		}
		in.TaxRate = fi.TaxRate
		in.Items = fi.Items

		inv, err := s.m.AddInvoice(ctx, in)
		if err != nil {
			return res, fmt.Errorf("invoice %d: %w", i, err)
		}
		if fi.Status != "" && fi.Status != inv.Status {
			status := fi.Status
			if _, _, err := s.m.UpdateInvoice(ctx, inv.ID, domain.InvoicePatch{Status: &status}); err != nil {
				return res, fmt.Errorf("invoice %d status: %w", i, err)
			}
		}
		res.Invoices++
		s.log.Debug("invoice seeded", zap.String("id", inv.ID), zap.String("customer_id", customerID))
	}

	return res, nil
}

// customerID resolves an email to a customer id, preferring customers
// created by this fixture.
func (s *Seeder) customerID(ctx context.Context, seeded map[string]string, email string) (string, error) {
	if id, ok := seeded[domain.EmailKey(email)]; ok {
		return id, nil
	}
	c, found, err := s.m.CustomerByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if !found {
		return "", fmt.Errorf("no customer with email %q", email)
	}
	return c.ID, nil
}
