package state

import (
	"context"
	"fmt"

	"github.com/roach88/rubico/internal/calc"
	"github.com/roach88/rubico/internal/domain"
	"github.com/roach88/rubico/internal/store"
	"github.com/roach88/rubico/internal/validate"
)

// User-facing messages for failed invoice store calls.
const (
	msgLoadInvoices  = "Failed to load invoices"
	msgCreateInvoice = "Failed to create invoice"
	msgUpdateInvoice = "Failed to update invoice"
	msgDeleteInvoice = "Failed to delete invoice"
)

// msgCustomerMissing is reported on customerId when it names no customer.
const msgCustomerMissing = "Customer not found"

// LoadInvoices replaces the cached invoices with the store's.
func (m *Manager) LoadInvoices(ctx context.Context) error {
	m.invoiceMu.Lock()
	defer m.invoiceMu.Unlock()

	m.begin()
	all, err := m.invoices.GetAll(ctx)
	if err != nil {
		return m.fail("load_invoices", msgLoadInvoices, err)
	}
	m.finish(func() { m.invoiceC = all })
	return nil
}

// Invoice returns the cached invoice with the given id, or an error
// wrapping store.ErrNotFound.
func (m *Manager) Invoice(id string) (domain.Invoice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, inv := range m.invoiceC {
		if inv.ID == id {
			return inv, nil
		}
	}
	return domain.Invoice{}, fmt.Errorf("invoice %s: %w", id, store.ErrNotFound)
}

// CustomerInvoices reads every invoice for a customer from the store,
// newest first.
func (m *Manager) CustomerInvoices(ctx context.Context, customerID string) ([]domain.Invoice, error) {
	return m.invoices.GetByCustomerID(ctx, customerID)
}

// AddInvoice validates in, snapshots the customer's name and email, computes
// totals, stores the invoice as a draft and prepends it to the cache.
func (m *Manager) AddInvoice(ctx context.Context, in domain.InvoiceInput) (domain.Invoice, error) {
	if err := m.validator.Invoice(in); err != nil {
		return domain.Invoice{}, err
	}

	m.invoiceMu.Lock()
	defer m.invoiceMu.Unlock()

	m.begin()
	cust, found, err := m.customers.GetByID(ctx, in.CustomerID)
	if err != nil {
		return domain.Invoice{}, m.fail("create_invoice", msgCreateInvoice, err)
	}
	if !found {
		return domain.Invoice{}, m.rejectOrFail("create_invoice", msgCreateInvoice,
			validate.NewFieldError("customerId", msgCustomerMissing))
	}

	inv := domain.Invoice{
		CustomerID:    cust.ID,
		CustomerName:  cust.Name,
		CustomerEmail: cust.Email,
		InvoiceDate:   in.InvoiceDate,
		DueDate:       in.DueDate,
		Items:         m.items(in.Items),
		TaxRate:       in.TaxRate,
		Status:        domain.InvoiceStatusDraft,
	}
	calc.Recompute(&inv)

	created, err := m.invoices.Create(ctx, inv)
	if err != nil {
		return domain.Invoice{}, m.fail("create_invoice", msgCreateInvoice, err)
	}
	m.finish(func() {
		m.invoiceC = append([]domain.Invoice{created}, m.invoiceC...)
	})
	return created, nil
}

// UpdateInvoice merges patch onto the invoice with the given id and
// recomputes its totals. The customer snapshot is never changed.
//
// If there is no such invoice the boolean is false, the error is nil and
// the cache is unchanged.
func (m *Manager) UpdateInvoice(ctx context.Context, id string, patch domain.InvoicePatch) (domain.Invoice, bool, error) {
	if patch.Status != nil {
		if err := m.validator.Status(*patch.Status); err != nil {
			return domain.Invoice{}, false, err
		}
	}

	m.invoiceMu.Lock()
	defer m.invoiceMu.Unlock()

	m.begin()
	updated, found, err := m.invoices.Update(ctx, id, func(inv *domain.Invoice) error {
		in := inv.Input()
		if patch.InvoiceDate != nil {
			in.InvoiceDate = *patch.InvoiceDate
		}
		if patch.DueDate != nil {
			in.DueDate = *patch.DueDate
		}
		if patch.Items != nil {
			in.Items = patch.Items
		}
		if patch.TaxRate != nil {
			in.TaxRate = *patch.TaxRate
		}
		if err := m.validator.Invoice(in); err != nil {
			return err
		}

		inv.InvoiceDate = in.InvoiceDate
		inv.DueDate = in.DueDate
		inv.Items = m.items(in.Items)
		inv.TaxRate = in.TaxRate
		if patch.Status != nil {
			inv.Status = *patch.Status
		}
		calc.Recompute(inv)
		return nil
	})
	if err != nil {
		return domain.Invoice{}, false, m.rejectOrFail("update_invoice", msgUpdateInvoice, err)
	}
	if !found {
		m.finish(nil)
		return domain.Invoice{}, false, nil
	}
	m.finish(func() {
		m.invoiceC = replaceByID(m.invoiceC, updated)
	})
	return updated, true, nil
}

// DeleteInvoice removes the invoice from the store and the cache.
// Deleting an unknown id succeeds.
func (m *Manager) DeleteInvoice(ctx context.Context, id string) error {
	m.invoiceMu.Lock()
	defer m.invoiceMu.Unlock()

	m.begin()
	if err := m.invoices.Delete(ctx, id); err != nil {
		return m.fail("delete_invoice", msgDeleteInvoice, err)
	}
	m.finish(func() {
		m.invoiceC = removeByID(m.invoiceC, id)
	})
	return nil
}

// items turns entered lines into invoice items, keeping given ids and
// generating the rest. Totals are computed, never taken from input.
func (m *Manager) items(in []domain.ItemInput) []domain.InvoiceItem {
	out := make([]domain.InvoiceItem, len(in))
	for i, it := range in {
		id := it.ID
		if id == "" {
			id = m.newID()
		}
		out[i] = calc.Item(id, it.Name, it.Price, it.Quantity)
	}
	return out
}
