package state

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/roach88/rubico/internal/calc"
	"github.com/roach88/rubico/internal/domain"
	"github.com/roach88/rubico/internal/store"
	"github.com/roach88/rubico/internal/validate"
)

// CustomerRepository is the part of the customers collection the manager
// uses. *store.CustomerCollection implements it.
type CustomerRepository interface {
	GetAll(ctx context.Context) ([]domain.Customer, error)
	GetByID(ctx context.Context, id string) (domain.Customer, bool, error)
	GetByEmail(ctx context.Context, email string) (domain.Customer, bool, error)
	Create(ctx context.Context, c domain.Customer) (domain.Customer, error)
	Update(ctx context.Context, id string, apply func(*domain.Customer) error) (domain.Customer, bool, error)
	Delete(ctx context.Context, id string) error
}

// InvoiceRepository is the part of the invoices collection the manager
// uses. *store.InvoiceCollection implements it.
type InvoiceRepository interface {
	GetAll(ctx context.Context) ([]domain.Invoice, error)
	GetByCustomerID(ctx context.Context, customerID string) ([]domain.Invoice, error)
	Create(ctx context.Context, inv domain.Invoice) (domain.Invoice, error)
	Update(ctx context.Context, id string, apply func(*domain.Invoice) error) (domain.Invoice, bool, error)
	Delete(ctx context.Context, id string) error
}

// State is a snapshot of the manager. Slices are copies; changing them does
// not change the manager.
type State struct {
	Customers []domain.Customer
	Invoices  []domain.Invoice
	IsLoading bool
	// Error is the message of the last failed store call, or empty.
	Error string
}

// Listener is called with a fresh snapshot after every state change. It
// runs on the goroutine that made the change, one listener call at a time,
// and must not call back into the manager's mutating methods. Snapshot is
// safe to call.
type Listener func(State)

// Manager is the session state container. Build one per session with New.
type Manager struct {
	customers CustomerRepository
	invoices  InvoiceRepository
	validator *validate.Validator
	newID     func() string
	log       *zap.Logger

	// Serialize read-modify-write cycles per collection.
	customerMu sync.Mutex
	invoiceMu  sync.Mutex

	// Held across snapshot and delivery so listeners see snapshots in
	// the order the changes happened.
	notifyMu sync.Mutex

	mu        sync.RWMutex // guards everything below
	customerC []domain.Customer
	invoiceC  []domain.Invoice
	pending   int
	errMsg    string
	listeners map[int]Listener
	nextSub   int
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log.Named("state")
		}
	}
}

// WithValidator replaces the default validator.
func WithValidator(v *validate.Validator) Option {
	return func(m *Manager) {
		if v != nil {
			m.validator = v
		}
	}
}

// WithIDFunc sets the generator for invoice item ids.
func WithIDFunc(f func() string) Option {
	return func(m *Manager) {
		if f != nil {
			m.newID = f
		}
	}
}

// New creates a Manager with empty caches. Call LoadCustomers and
// LoadInvoices to fill them.
func New(customers CustomerRepository, invoices InvoiceRepository, opts ...Option) *Manager {
	m := &Manager{
		customers: customers,
		invoices:  invoices,
		validator: validate.New(),
		newID:     store.NewUUID,
		log:       zap.NewNop(),
		customerC: []domain.Customer{},
		invoiceC:  []domain.Invoice{},
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Snapshot returns the current state.
func (m *Manager) Snapshot() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

// Subscribe registers fn for change notifications and returns a function
// that removes it.
func (m *Manager) Subscribe(fn Listener) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.listeners[id] = fn
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.listeners, id)
			m.mu.Unlock()
		})
	}
}

// Dashboard aggregates the cached collections.
func (m *Manager) Dashboard() calc.Dashboard {
	s := m.Snapshot()
	return calc.Summarize(s.Customers, s.Invoices)
}

func (m *Manager) snapshotLocked() State {
	return State{
		Customers: append([]domain.Customer{}, m.customerC...),
		Invoices:  append([]domain.Invoice{}, m.invoiceC...),
		IsLoading: m.pending > 0,
		Error:     m.errMsg,
	}
}

// begin marks a store call in flight and clears the previous error.
func (m *Manager) begin() {
	m.change(func() {
		m.pending++
		m.errMsg = ""
	})
}

// finish marks a store call done and applies update to the cache.
func (m *Manager) finish(update func()) {
	m.change(func() {
		m.pending--
		if update != nil {
			update()
		}
	})
}

// fail marks a store call done with a user-facing error message.
func (m *Manager) fail(op, msg string, err error) error {
	m.log.Warn("operation failed", zap.String("op", op), zap.Error(err))
	m.finish(func() { m.errMsg = msg })
	return err
}

// change applies fn under the lock and notifies listeners with the
// resulting snapshot.
func (m *Manager) change(fn func()) {
	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()

	m.mu.Lock()
	fn()
	snap := m.snapshotLocked()
	listeners := make([]Listener, 0, len(m.listeners))
	for _, l := range m.listeners {
		listeners = append(listeners, l)
	}
	m.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
}

func replaceByID[T any, P interface {
	*T
	store.Record
}](s []T, rec T) []T {
	id := P(&rec).Metadata().ID
	for i := range s {
		if P(&s[i]).Metadata().ID == id {
			s[i] = rec
			break
		}
	}
	return s
}

func removeByID[T any, P interface {
	*T
	store.Record
}](s []T, id string) []T {
	out := s[:0]
	for i := range s {
		if P(&s[i]).Metadata().ID != id {
			out = append(out, s[i])
		}
	}
	return out
}
