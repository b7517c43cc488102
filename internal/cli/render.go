package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/roach88/rubico/internal/calc"
	"github.com/roach88/rubico/internal/domain"
)

// timeLayout is how creation times are shown.
const timeLayout = "2006-01-02 15:04:05"

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func percent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

// created reports a new record. JSON output is the record itself.
type created struct {
	kind   string
	ID     string
	Record any
}

func (c created) MarshalJSON() ([]byte, error) { return json.Marshal(c.Record) }

func (c created) renderText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Created %s %s\n", c.kind, c.ID)
	return err
}

// updated reports a changed record. JSON output is the record itself.
type updated struct {
	kind   string
	ID     string
	Record any
}

func (u updated) MarshalJSON() ([]byte, error) { return json.Marshal(u.Record) }

func (u updated) renderText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Updated %s %s\n", u.kind, u.ID)
	return err
}

// notChanged reports an update aimed at an id that does not exist.
type notChanged struct {
	kind string
	ID   string
}

func (n notChanged) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{"id": n.ID, "found": false})
}

func (n notChanged) renderText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "No %s with id %s; nothing changed\n", n.kind, n.ID)
	return err
}

// deleted reports a deletion. Deleting an unknown id is not an error.
type deleted struct {
	kind string
	ID   string
}

func (d deleted) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{"id": d.ID, "deleted": true})
}

func (d deleted) renderText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Deleted %s %s\n", d.kind, d.ID)
	return err
}

type customerList []domain.Customer

func (l customerList) renderText(w io.Writer) error {
	if len(l) == 0 {
		_, err := fmt.Fprintln(w, "No customers")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tCREATED")
	for _, c := range l {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Email, c.CreatedAt.UTC().Format(timeLayout))
	}
	return tw.Flush()
}

type customerDetail struct {
	Customer domain.Customer  `json:"customer"`
	Invoices []domain.Invoice `json:"invoices"`
}

func (d customerDetail) renderText(w io.Writer) error {
	c := d.Customer
	fmt.Fprintf(w, "Customer %s\n", c.ID)
	fmt.Fprintf(w, "%-11s%s\n", "Name:", c.Name)
	fmt.Fprintf(w, "%-11s%s\n", "Email:", c.Email)
	if c.Phone != "" {
		fmt.Fprintf(w, "%-11s%s\n", "Phone:", c.Phone)
	}
	fmt.Fprintf(w, "%-11s%s\n", "Billing:", formatAddress(c.BillingAddress))
	fmt.Fprintf(w, "%-11s%s\n", "Shipping:", formatAddress(c.ShippingAddress))
	fmt.Fprintf(w, "%-11s%s\n", "Created:", c.CreatedAt.UTC().Format(timeLayout))
	fmt.Fprintln(w)
	if len(d.Invoices) == 0 {
		_, err := fmt.Fprintln(w, "No invoices")
		return err
	}
	return invoiceList(d.Invoices).renderText(w)
}

func formatAddress(a domain.Address) string {
	return fmt.Sprintf("%s, %s, %s %s, %s", a.Street, a.City, a.State, a.ZipCode, a.Country)
}

type invoiceList []domain.Invoice

func (l invoiceList) renderText(w io.Writer) error {
	if len(l) == 0 {
		_, err := fmt.Fprintln(w, "No invoices")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tCUSTOMER\tDATE\tDUE\tTOTAL\tSTATUS")
	for _, inv := range l {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			inv.ID, inv.CustomerName, inv.InvoiceDate, inv.DueDate, money(inv.Total), inv.Status)
	}
	return tw.Flush()
}

type invoiceDetail domain.Invoice

func (d invoiceDetail) MarshalJSON() ([]byte, error) { return json.Marshal(domain.Invoice(d)) }

func (d invoiceDetail) renderText(w io.Writer) error {
	// Shown totals are recomputed from the items, like stored ones.
	inv := domain.Invoice(d)
	inv.Items = append([]domain.InvoiceItem(nil), d.Items...)
	calc.Recompute(&inv)

	fmt.Fprintf(w, "Invoice %s\n", inv.ID)
	fmt.Fprintf(w, "%-11s%s <%s> (%s)\n", "Customer:", inv.CustomerName, inv.CustomerEmail, inv.CustomerID)
	fmt.Fprintf(w, "%-11s%s\n", "Status:", inv.Status)
	fmt.Fprintf(w, "%-11s%s\n", "Issued:", inv.InvoiceDate)
	fmt.Fprintf(w, "%-11s%s\n", "Due:", inv.DueDate)
	fmt.Fprintln(w)

	tw := newTable(w)
	fmt.Fprintln(tw, "ITEM\tPRICE\tQTY\tTOTAL")
	for _, it := range inv.Items {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", it.Name, money(it.Price), it.Quantity, money(it.Total))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-11s%s\n", "Subtotal:", money(inv.Subtotal))
	fmt.Fprintf(w, "%-11s%s\n", "Tax ("+percent(inv.TaxRate)+"):", money(inv.TaxAmount))
	_, err := fmt.Fprintf(w, "%-11s%s\n", "Total:", money(inv.Total))
	return err
}

type dashboardView calc.Dashboard

func (d dashboardView) MarshalJSON() ([]byte, error) { return json.Marshal(calc.Dashboard(d)) }

func (d dashboardView) renderText(w io.Writer) error {
	fmt.Fprintf(w, "%-12s%d\n", "Customers:", d.TotalCustomers)
	fmt.Fprintf(w, "%-12s%d\n", "Invoices:", d.TotalInvoices)
	fmt.Fprintf(w, "%-12s%s\n", "Revenue:", money(d.TotalRevenue))
	fmt.Fprintf(w, "%-12s%d\n", "Paid:", d.PaidInvoices)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Recent customers")
	if len(d.RecentCustomers) == 0 {
		fmt.Fprintln(w, "  (none)")
	} else {
		tw := newTable(w)
		for _, c := range d.RecentCustomers {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", c.ID, c.Name, c.Email)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Recent invoices")
	if len(d.RecentInvoices) == 0 {
		_, err := fmt.Fprintln(w, "  (none)")
		return err
	}
	tw := newTable(w)
	for _, inv := range d.RecentInvoices {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", inv.ID, inv.CustomerName, money(inv.Total), inv.Status)
	}
	return tw.Flush()
}
