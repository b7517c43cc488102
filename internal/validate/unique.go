package validate

import (
	"context"
	"fmt"

	"github.com/roach88/rubico/internal/domain"
)

// CustomerLister reads the full customer list from the store.
type CustomerLister interface {
	GetAll(ctx context.Context) ([]domain.Customer, error)
}

// EmailAvailable checks that no customer other than currentID holds email,
// ignoring case. Pass an empty currentID when creating a customer and the
// customer's own id when editing one.
//
// Returns a *UniquenessError on collision. A failure to read the customer
// list is returned wrapped, so store errors stay recognisable.
func EmailAvailable(ctx context.Context, customers CustomerLister, email, currentID string) error {
	all, err := customers.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("check email uniqueness: %w", err)
	}
	key := domain.EmailKey(email)
	for _, c := range all {
		if c.ID != currentID && domain.EmailKey(c.Email) == key {
			return &UniquenessError{Email: email, ExistingID: c.ID}
		}
	}
	return nil
}
