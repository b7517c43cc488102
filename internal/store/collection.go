package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/roach88/rubico/internal/domain"
)

// Record is implemented by pointers to persisted record types.
type Record interface {
	Metadata() *domain.Meta
}

// Collection is one keyed set of records of type T.
//
// P is *T; the constraint lets the collection reach the record's Meta
// without reflection.
type Collection[T any, P interface {
	*T
	Record
}] struct {
	s    *Store
	name string
}

func newCollection[T any, P interface {
	*T
	Record
}](s *Store, name string) *Collection[T, P] {
	return &Collection[T, P]{s: s, name: name}
}

// Name returns the collection name.
func (c *Collection[T, P]) Name() string {
	return c.name
}

// GetAll returns every record, newest first.
// Returns an empty slice (not nil) for an empty collection.
func (c *Collection[T, P]) GetAll(ctx context.Context) ([]T, error) {
	rows, err := c.s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT data FROM %s
		ORDER BY created_at DESC, rowid DESC
	`, c.name))
	if err != nil {
		return nil, c.fail("get_all", "", err)
	}
	defer rows.Close()

	records := []T{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, c.fail("get_all", "", err)
		}
		rec, err := unmarshalRecord[T](data)
		if err != nil {
			return nil, c.fail("get_all", "", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, c.fail("get_all", "", err)
	}

	return records, nil
}

// GetByID returns the record with the given id.
// The boolean is false if there is no such record; that is not an error.
func (c *Collection[T, P]) GetByID(ctx context.Context, id string) (T, bool, error) {
	var zero T
	rec, found, err := c.get(ctx, c.s.db, id)
	if err != nil {
		return zero, false, c.fail("get", id, err)
	}
	return rec, found, nil
}

// Find returns the records matching match, newest first.
func (c *Collection[T, P]) Find(ctx context.Context, match func(T) bool) ([]T, error) {
	all, err := c.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := []T{}
	for _, rec := range all {
		if match(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Create assigns rec a new id and creation time, writes it, and returns the
// stored record. Any id or createdAt already on rec is overwritten.
func (c *Collection[T, P]) Create(ctx context.Context, rec T) (T, error) {
	var zero T
	meta := P(&rec).Metadata()
	meta.ID = c.s.newID()
	meta.CreatedAt = c.s.clock.Now()

	data, err := marshalRecord(rec)
	if err != nil {
		return zero, c.fail("create", meta.ID, err)
	}

	_, err = c.s.db.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (id, created_at, data)
		VALUES (?, ?, ?)
	`, c.name), meta.ID, meta.CreatedAt.UnixNano(), data)
	if err != nil {
		return zero, c.fail("create", meta.ID, err)
	}

	c.s.log.Debug("record created",
		zap.String("collection", c.name),
		zap.String("id", meta.ID),
	)
	return rec, nil
}

// Update loads the record with the given id, passes it to apply, and writes
// the result back, all in one transaction. id and createdAt are restored
// after apply, so a patch can never change them.
//
// If there is no such record, Update returns (zero, false, nil) and apply is
// not called. If apply returns an error, nothing is written and that error is
// returned as is.
func (c *Collection[T, P]) Update(ctx context.Context, id string, apply func(*T) error) (T, bool, error) {
	var zero T

	tx, err := c.s.db.BeginTx(ctx, nil)
	if err != nil {
		return zero, false, c.fail("update", id, fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback() // No-op if committed

	rec, found, err := c.get(ctx, tx, id)
	if err != nil {
		return zero, false, c.fail("update", id, err)
	}
	if !found {
		return zero, false, nil
	}

	meta := *P(&rec).Metadata()
	if err := apply(&rec); err != nil {
		return zero, false, err
	}
	*P(&rec).Metadata() = meta

	data, err := marshalRecord(rec)
	if err != nil {
		return zero, false, c.fail("update", id, err)
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`
		UPDATE %s SET data = ? WHERE id = ?
	`, c.name), data, id); err != nil {
		return zero, false, c.fail("update", id, err)
	}

	if err := tx.Commit(); err != nil {
		return zero, false, c.fail("update", id, fmt.Errorf("commit: %w", err))
	}

	c.s.log.Debug("record updated",
		zap.String("collection", c.name),
		zap.String("id", id),
	)
	return rec, true, nil
}

// Delete removes the record with the given id.
// Deleting an id that does not exist succeeds.
func (c *Collection[T, P]) Delete(ctx context.Context, id string) error {
	res, err := c.s.db.ExecContext(ctx, fmt.Sprintf(`
		DELETE FROM %s WHERE id = ?
	`, c.name), id)
	if err != nil {
		return c.fail("delete", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return c.fail("delete", id, fmt.Errorf("rows affected: %w", err))
	}

	c.s.log.Debug("record deleted",
		zap.String("collection", c.name),
		zap.String("id", id),
		zap.Bool("existed", n > 0),
	)
	return nil
}

// Count returns the number of records in the collection.
func (c *Collection[T, P]) Count(ctx context.Context) (int, error) {
	var n int
	err := c.s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", c.name)).Scan(&n)
	if err != nil {
		return 0, c.fail("count", "", err)
	}
	return n, nil
}

// queryRower is satisfied by *sql.DB and *sql.Tx.
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (c *Collection[T, P]) get(ctx context.Context, q queryRower, id string) (T, bool, error) {
	var zero T
	var data string
	err := q.QueryRowContext(ctx, fmt.Sprintf(`
		SELECT data FROM %s WHERE id = ?
	`, c.name), id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, err
	}

	rec, err := unmarshalRecord[T](data)
	if err != nil {
		return zero, false, err
	}
	return rec, true, nil
}

func (c *Collection[T, P]) fail(op, id string, err error) error {
	c.s.log.Warn("store operation failed",
		zap.String("op", op),
		zap.String("collection", c.name),
		zap.String("id", id),
		zap.Error(err),
	)
	return &PersistenceError{Op: op, Collection: c.name, ID: id, Err: err}
}

// CustomerCollection is the customers collection.
type CustomerCollection struct {
	*Collection[domain.Customer, *domain.Customer]
}

// GetByEmail returns the customer whose email matches, ignoring case.
// If more than one matches, the newest wins; the boolean is false if none do.
func (c *CustomerCollection) GetByEmail(ctx context.Context, email string) (domain.Customer, bool, error) {
	key := domain.EmailKey(email)
	matches, err := c.Find(ctx, func(cust domain.Customer) bool {
		return domain.EmailKey(cust.Email) == key
	})
	if err != nil {
		return domain.Customer{}, false, err
	}
	if len(matches) == 0 {
		return domain.Customer{}, false, nil
	}
	return matches[0], true, nil
}

// InvoiceCollection is the invoices collection.
type InvoiceCollection struct {
	*Collection[domain.Invoice, *domain.Invoice]
}

// GetByCustomerID returns every invoice that references customerID, newest
// first. Invoices of deleted customers are still returned.
func (c *InvoiceCollection) GetByCustomerID(ctx context.Context, customerID string) ([]domain.Invoice, error) {
	return c.Find(ctx, func(inv domain.Invoice) bool {
		return inv.CustomerID == customerID
	})
}
