package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rubico/internal/domain"
	"github.com/roach88/rubico/internal/testutil"
)

func TestCreate_ThenGetByID(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	in := createTestCustomer("Ada", "ada@example.com")

	created, err := s.Customers().Create(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, "rec-0001", created.ID)
	assert.Equal(t, testutil.Epoch, created.CreatedAt)

	got, found, err := s.Customers().GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, created, got)

	// Everything but Meta is exactly the input
	got.Meta = domain.Meta{}
	assert.Equal(t, in, got)
}

func TestCreate_OverwritesCallerMeta(t *testing.T) {
	s := createTestStore(t)
	in := createTestCustomer("Ada", "ada@example.com")
	in.ID = "caller-chosen"

	created, err := s.Customers().Create(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, "rec-0001", created.ID)
}

func TestCreate_DuplicateIDFails(t *testing.T) {
	path := t.TempDir() + "/dup.db"
	s, err := Open(path, WithIDFunc(func() string { return "same" }))
	require.NoError(t, err)
	defer s.Close()
	ctx := context.Background()

	_, err = s.Customers().Create(ctx, createTestCustomer("Ada", "ada@example.com"))
	require.NoError(t, err)

	_, err = s.Customers().Create(ctx, createTestCustomer("Bob", "bob@example.com"))
	require.Error(t, err)
	assert.True(t, IsPersistence(err))

	var pe *PersistenceError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "create", pe.Op)
	assert.Equal(t, CollectionCustomers, pe.Collection)
	assert.Equal(t, "same", pe.ID)

	all, err := s.Customers().GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1, "failed write must not be visible")
}

func TestGetAll_Empty(t *testing.T) {
	s := createTestStore(t)

	customers, err := s.Customers().GetAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, customers)
	assert.Empty(t, customers)

	invoices, err := s.Invoices().GetAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, invoices)
	assert.Empty(t, invoices)
}

func TestGetAll_NewestFirst(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := s.Customers().Create(ctx, createTestCustomer(fmt.Sprintf("c%d", i), fmt.Sprintf("c%d@example.com", i)))
		require.NoError(t, err)
	}

	all, err := s.Customers().GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c2", all[0].Name)
	assert.Equal(t, "c1", all[1].Name)
	assert.Equal(t, "c0", all[2].Name)
	assert.True(t, all[0].CreatedAt.After(all[1].CreatedAt))
}

func TestGetAll_FrozenClockStillOrdered(t *testing.T) {
	path := t.TempDir() + "/frozen.db"
	frozen := testutil.NewStepClockAt(testutil.Epoch, 0)
	s, err := Open(path, WithClock(frozen))
	require.NoError(t, err)
	defer s.Close()
	ctx := context.Background()

	first, err := s.Invoices().Create(ctx, createTestInvoice("c1"))
	require.NoError(t, err)
	second, err := s.Invoices().Create(ctx, createTestInvoice("c1"))
	require.NoError(t, err)

	assert.True(t, second.CreatedAt.After(first.CreatedAt))

	all, err := s.Invoices().GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
}

func TestGetByID_Absent(t *testing.T) {
	s := createTestStore(t)

	_, found, err := s.Customers().GetByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestUpdate_ChangesOnlyPatchedFields(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	created, err := s.Customers().Create(ctx, createTestCustomer("Ada", "ada@example.com"))
	require.NoError(t, err)

	name := "Ada Lovelace"
	updated, found, err := s.Customers().Update(ctx, created.ID, func(c *domain.Customer) error {
		domain.CustomerPatch{Name: &name}.Apply(c)
		return nil
	})
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, "Ada Lovelace", updated.Name)
	assert.Equal(t, created.Email, updated.Email)
	assert.Equal(t, created.BillingAddress, updated.BillingAddress)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	got, _, err := s.Customers().GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestUpdate_PreservesMetaEvenIfApplyChangesIt(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	created, err := s.Customers().Create(ctx, createTestCustomer("Ada", "ada@example.com"))
	require.NoError(t, err)

	updated, found, err := s.Customers().Update(ctx, created.ID, func(c *domain.Customer) error {
		c.ID = "hijacked"
		c.CreatedAt = c.CreatedAt.AddDate(-1, 0, 0)
		return nil
	})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, created.Meta, updated.Meta)

	_, found, err = s.Customers().GetByID(ctx, "hijacked")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestUpdate_Absent(t *testing.T) {
	s := createTestStore(t)
	called := false

	_, found, err := s.Customers().Update(context.Background(), "missing", func(*domain.Customer) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.False(t, found)
	assert.False(t, called)
}

func TestUpdate_ApplyErrorWritesNothing(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	created, err := s.Customers().Create(ctx, createTestCustomer("Ada", "ada@example.com"))
	require.NoError(t, err)
	rejected := errors.New("rejected")

	_, found, err := s.Customers().Update(ctx, created.ID, func(c *domain.Customer) error {
		c.Name = "should not persist"
		return rejected
	})
	assert.ErrorIs(t, err, rejected)
	assert.False(t, IsPersistence(err))
	assert.False(t, found)

	got, _, err := s.Customers().GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)
}

func TestDelete_Idempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	created, err := s.Customers().Create(ctx, createTestCustomer("Ada", "ada@example.com"))
	require.NoError(t, err)

	require.NoError(t, s.Customers().Delete(ctx, created.ID))
	require.NoError(t, s.Customers().Delete(ctx, created.ID))
	require.NoError(t, s.Customers().Delete(ctx, "never-existed"))

	n, err := s.Customers().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCollectionsAreIndependent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	cust, err := s.Customers().Create(ctx, createTestCustomer("Ada", "ada@example.com"))
	require.NoError(t, err)
	_, err = s.Invoices().Create(ctx, createTestInvoice(cust.ID))
	require.NoError(t, err)

	// Deleting the customer leaves its invoice in place.
	require.NoError(t, s.Customers().Delete(ctx, cust.ID))

	invoices, err := s.Invoices().GetByCustomerID(ctx, cust.ID)
	require.NoError(t, err)
	assert.Len(t, invoices, 1)

	_, found, err := s.Invoices().GetByID(ctx, cust.ID)
	require.NoError(t, err)
	assert.False(t, found, "ids are scoped per collection")
}

func TestGetByEmail_CaseInsensitive(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	created, err := s.Customers().Create(ctx, createTestCustomer("Ada", "Ada@Example.com"))
	require.NoError(t, err)
	_, err = s.Customers().Create(ctx, createTestCustomer("Bob", "bob@example.com"))
	require.NoError(t, err)

	for _, email := range []string{"ada@example.com", "ADA@EXAMPLE.COM", "Ada@Example.com"} {
		got, found, err := s.Customers().GetByEmail(ctx, email)
		require.NoError(t, err)
		require.True(t, found, email)
		assert.Equal(t, created.ID, got.ID)
	}

	for _, email := range []string{"nobody@example.com", "  ada@example.com", "ada@example.com "} {
		_, found, err := s.Customers().GetByEmail(ctx, email)
		require.NoError(t, err)
		assert.False(t, found, email)
	}
}

func TestGetByCustomerID(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	first, err := s.Invoices().Create(ctx, createTestInvoice("c1"))
	require.NoError(t, err)
	_, err = s.Invoices().Create(ctx, createTestInvoice("c2"))
	require.NoError(t, err)
	second, err := s.Invoices().Create(ctx, createTestInvoice("c1"))
	require.NoError(t, err)

	got, err := s.Invoices().GetByCustomerID(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID)
	assert.Equal(t, first.ID, got[1].ID)

	none, err := s.Invoices().GetByCustomerID(ctx, "c9")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestClosedStore_SurfacesPersistenceError(t *testing.T) {
	s := createTestStore(t)
	require.NoError(t, s.Close())
	ctx := context.Background()

	_, err := s.Customers().GetAll(ctx)
	assert.True(t, IsPersistence(err))

	_, _, err = s.Customers().GetByID(ctx, "x")
	assert.True(t, IsPersistence(err))

	_, err = s.Customers().Create(ctx, createTestCustomer("Ada", "ada@example.com"))
	assert.True(t, IsPersistence(err))

	_, _, err = s.Customers().Update(ctx, "x", func(*domain.Customer) error { return nil })
	assert.True(t, IsPersistence(err))

	err = s.Customers().Delete(ctx, "x")
	assert.True(t, IsPersistence(err))
}

func TestPersistenceError_Message(t *testing.T) {
	inner := errors.New("disk full")

	assert.Equal(t, "store: create customers/c1: disk full",
		(&PersistenceError{Op: "create", Collection: "customers", ID: "c1", Err: inner}).Error())
	assert.Equal(t, "store: get_all invoices: disk full",
		(&PersistenceError{Op: "get_all", Collection: "invoices", Err: inner}).Error())
	assert.Equal(t, "store: ping: disk full",
		(&PersistenceError{Op: "ping", Err: inner}).Error())
	assert.ErrorIs(t, &PersistenceError{Err: inner}, inner)
}
