package domain

import "time"

// DateLayout is the calendar-date form used for invoice and due dates.
const DateLayout = "2006-01-02"

// InvoiceStatus is the lifecycle state of an invoice. Nothing in rubico
// advances it automatically.
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// InvoiceStatuses lists every valid status.
var InvoiceStatuses = []InvoiceStatus{
	InvoiceStatusDraft,
	InvoiceStatusSent,
	InvoiceStatusPaid,
	InvoiceStatusOverdue,
}

// Valid reports whether s is a known status.
func (s InvoiceStatus) Valid() bool {
	for _, v := range InvoiceStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// InvoiceItem is a line on an invoice. Total is price × quantity.
type InvoiceItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Total    float64 `json:"total"`
}

// Invoice is a bill issued to a customer.
type Invoice struct {
	Meta
	CustomerID    string        `json:"customerId"`
	CustomerName  string        `json:"customerName"`
	CustomerEmail string        `json:"customerEmail"`
	InvoiceDate   string        `json:"invoiceDate"`
	DueDate       string        `json:"dueDate"`
	Items         []InvoiceItem `json:"items"`
	Subtotal      float64       `json:"subtotal"`
	TaxRate       float64       `json:"taxRate"`
	TaxAmount     float64       `json:"taxAmount"`
	Total         float64       `json:"total"`
	Status        InvoiceStatus `json:"status"`
}

// ItemInput is one line of an invoice being entered.
type ItemInput struct {
	// ID is optional; the state manager generates one when empty.
	ID       string  `json:"id,omitempty" yaml:"id,omitempty"`
	Name     string  `json:"name" yaml:"name" validate:"required"`
	Price    float64 `json:"price" yaml:"price" validate:"gt=0"`
	Quantity int     `json:"quantity" yaml:"quantity" validate:"min=1"`
}

// InvoiceInput is everything needed to create an Invoice. The customer
// snapshot, totals and status are filled in by the state manager.
type InvoiceInput struct {
	CustomerID  string      `json:"customerId" yaml:"customerId" validate:"required"`
	InvoiceDate string      `json:"invoiceDate" yaml:"invoiceDate" validate:"required,datetime=2006-01-02"`
	DueDate     string      `json:"dueDate" yaml:"dueDate" validate:"required,datetime=2006-01-02"`
	Items       []ItemInput `json:"items" yaml:"items" validate:"min=1,dive"`
	TaxRate     float64     `json:"taxRate" yaml:"taxRate" validate:"gte=0,lte=100"`
}

// DefaultInvoiceInput returns an empty invoice dated today and due in 30 days.
func DefaultInvoiceInput(customerID string, now time.Time) InvoiceInput {
	return InvoiceInput{
		CustomerID:  customerID,
		InvoiceDate: now.Format(DateLayout),
		DueDate:     now.AddDate(0, 0, 30).Format(DateLayout),
	}
}

// InvoicePatch lists the invoice fields an update may change. Customer
// snapshot fields are fixed at creation and are not patchable.
type InvoicePatch struct {
	InvoiceDate *string        `json:"invoiceDate,omitempty"`
	DueDate     *string        `json:"dueDate,omitempty"`
	Items       []ItemInput    `json:"items,omitempty"`
	TaxRate     *float64       `json:"taxRate,omitempty"`
	Status      *InvoiceStatus `json:"status,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p InvoicePatch) Empty() bool {
	return p.InvoiceDate == nil && p.DueDate == nil && p.Items == nil &&
		p.TaxRate == nil && p.Status == nil
}

// Input returns the invoice's editable fields in input form.
func (inv Invoice) Input() InvoiceInput {
	items := make([]ItemInput, len(inv.Items))
	for i, it := range inv.Items {
		items[i] = ItemInput{ID: it.ID, Name: it.Name, Price: it.Price, Quantity: it.Quantity}
	}
	return InvoiceInput{
		CustomerID:  inv.CustomerID,
		InvoiceDate: inv.InvoiceDate,
		DueDate:     inv.DueDate,
		Items:       items,
		TaxRate:     inv.TaxRate,
	}
}
