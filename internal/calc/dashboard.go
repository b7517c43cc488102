package calc

import (
	"github.com/shopspring/decimal"

	"github.com/roach88/rubico/internal/domain"
)

// RecentLimit is how many customers and invoices a dashboard lists.
const RecentLimit = 5

// Dashboard summarises both collections for an overview screen.
type Dashboard struct {
	TotalCustomers  int               `json:"totalCustomers"`
	TotalInvoices   int               `json:"totalInvoices"`
	TotalRevenue    float64           `json:"totalRevenue"`
	PaidInvoices    int               `json:"paidInvoices"`
	RecentCustomers []domain.Customer `json:"recentCustomers"`
	RecentInvoices  []domain.Invoice  `json:"recentInvoices"`
}

// Summarize aggregates the given collections. Both are expected newest
// first, so the recent lists are simply their heads. Revenue sums the
// stored invoice totals.
func Summarize(customers []domain.Customer, invoices []domain.Invoice) Dashboard {
	revenue := decimal.Zero
	paid := 0
	for _, inv := range invoices {
		revenue = revenue.Add(decimal.NewFromFloat(inv.Total))
		if inv.Status == domain.InvoiceStatusPaid {
			paid++
		}
	}
	return Dashboard{
		TotalCustomers:  len(customers),
		TotalInvoices:   len(invoices),
		TotalRevenue:    revenue.InexactFloat64(),
		PaidInvoices:    paid,
		RecentCustomers: head(customers, RecentLimit),
		RecentInvoices:  head(invoices, RecentLimit),
	}
}

func head[T any](s []T, n int) []T {
	if len(s) < n {
		n = len(s)
	}
	out := make([]T, n)
	copy(out, s[:n])
	return out
}
