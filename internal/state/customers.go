package state

import (
	"context"
	"fmt"

	"github.com/roach88/rubico/internal/domain"
	"github.com/roach88/rubico/internal/store"
	"github.com/roach88/rubico/internal/validate"
)

// User-facing messages for failed customer store calls.
const (
	msgLoadCustomers  = "Failed to load customers"
	msgCreateCustomer = "Failed to create customer"
	msgUpdateCustomer = "Failed to update customer"
	msgDeleteCustomer = "Failed to delete customer"
)

// LoadCustomers replaces the cached customers with the store's.
func (m *Manager) LoadCustomers(ctx context.Context) error {
	m.customerMu.Lock()
	defer m.customerMu.Unlock()

	m.begin()
	all, err := m.customers.GetAll(ctx)
	if err != nil {
		return m.fail("load_customers", msgLoadCustomers, err)
	}
	m.finish(func() { m.customerC = all })
	return nil
}

// Customer returns the cached customer with the given id, or an error
// wrapping store.ErrNotFound.
func (m *Manager) Customer(id string) (domain.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.customerC {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.Customer{}, fmt.Errorf("customer %s: %w", id, store.ErrNotFound)
}

// CustomerByEmail looks a customer up in the store by email, ignoring case.
func (m *Manager) CustomerByEmail(ctx context.Context, email string) (domain.Customer, bool, error) {
	return m.customers.GetByEmail(ctx, email)
}

// CheckPersonalInfo validates the first customer entry step, including
// email uniqueness. currentID is the customer being edited, or empty.
func (m *Manager) CheckPersonalInfo(ctx context.Context, p domain.PersonalInfo, currentID string) error {
	if err := m.validator.PersonalInfo(p); err != nil {
		return err
	}
	return validate.EmailAvailable(ctx, m.customers, p.Email, currentID)
}

// CheckAddressInfo validates the second customer entry step.
func (m *Manager) CheckAddressInfo(a domain.AddressInfo) error {
	return m.validator.AddressInfo(a)
}

// AddCustomer validates in, checks that its email is free, stores it and
// prepends it to the cache.
func (m *Manager) AddCustomer(ctx context.Context, in domain.CustomerInput) (domain.Customer, error) {
	if err := m.validator.Customer(in); err != nil {
		return domain.Customer{}, err
	}

	m.customerMu.Lock()
	defer m.customerMu.Unlock()

	m.begin()
	if err := validate.EmailAvailable(ctx, m.customers, in.Email, ""); err != nil {
		return domain.Customer{}, m.rejectOrFail("create_customer", msgCreateCustomer, err)
	}

	created, err := m.customers.Create(ctx, in.Customer())
	if err != nil {
		return domain.Customer{}, m.fail("create_customer", msgCreateCustomer, err)
	}
	m.finish(func() {
		m.customerC = append([]domain.Customer{created}, m.customerC...)
	})
	return created, nil
}

// UpdateCustomer merges patch onto the customer with the given id. The
// merged record must pass the same rules as a new one, and a changed email
// must not belong to another customer.
//
// If there is no such customer the boolean is false, the error is nil and
// the cache is unchanged. Invoices keep their customer snapshot.
func (m *Manager) UpdateCustomer(ctx context.Context, id string, patch domain.CustomerPatch) (domain.Customer, bool, error) {
	m.customerMu.Lock()
	defer m.customerMu.Unlock()

	m.begin()
	if patch.Email != nil {
		// An absent id is a no-op even when the new email is taken.
		_, found, err := m.customers.GetByID(ctx, id)
		if err != nil {
			return domain.Customer{}, false, m.fail("update_customer", msgUpdateCustomer, err)
		}
		if !found {
			m.finish(nil)
			return domain.Customer{}, false, nil
		}
		if err := validate.EmailAvailable(ctx, m.customers, *patch.Email, id); err != nil {
			return domain.Customer{}, false, m.rejectOrFail("update_customer", msgUpdateCustomer, err)
		}
	}

	updated, found, err := m.customers.Update(ctx, id, func(c *domain.Customer) error {
		patch.Apply(c)
		return m.validator.Customer(c.Input())
	})
	if err != nil {
		return domain.Customer{}, false, m.rejectOrFail("update_customer", msgUpdateCustomer, err)
	}
	if !found {
		m.finish(nil)
		return domain.Customer{}, false, nil
	}
	m.finish(func() {
		m.customerC = replaceByID(m.customerC, updated)
	})
	return updated, true, nil
}

// DeleteCustomer removes the customer from the store and the cache.
// Deleting an unknown id succeeds. The customer's invoices are kept.
func (m *Manager) DeleteCustomer(ctx context.Context, id string) error {
	m.customerMu.Lock()
	defer m.customerMu.Unlock()

	m.begin()
	if err := m.customers.Delete(ctx, id); err != nil {
		return m.fail("delete_customer", msgDeleteCustomer, err)
	}
	m.finish(func() {
		m.customerC = removeByID(m.customerC, id)
	})
	return nil
}

// rejectOrFail ends a store call. Input errors are returned without touching
// State.Error; anything else is a store failure.
func (m *Manager) rejectOrFail(op, msg string, err error) error {
	if validate.IsValidation(err) || validate.IsUniqueness(err) {
		m.finish(nil)
		return err
	}
	return m.fail(op, msg, err)
}
