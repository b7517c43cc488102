// Package calc computes the derived values of an invoice. Everything here is
// pure: the same items and tax rate always give the same totals, whether the
// caller is about to persist an invoice or display one.
//
// Arithmetic is done in decimal and converted to float64 only at the end, so
// sums like 0.1 + 0.2 do not pick up binary rounding noise.
package calc

import (
	"github.com/shopspring/decimal"

	"github.com/roach88/rubico/internal/domain"
)

// Totals is the derived money summary of an invoice.
type Totals struct {
	Subtotal  float64
	TaxAmount float64
	Total     float64
}

// LineTotal returns price × quantity.
func LineTotal(price float64, quantity int) float64 {
	return lineTotal(price, quantity).InexactFloat64()
}

// Subtotal returns the sum of the item totals, each recomputed from price
// and quantity rather than trusted from the item.
func Subtotal(items []domain.InvoiceItem) float64 {
	return subtotal(items).InexactFloat64()
}

// TaxAmount returns subtotal × taxRate / 100.
func TaxAmount(subtotal, taxRate float64) float64 {
	return taxAmount(decimal.NewFromFloat(subtotal), taxRate).InexactFloat64()
}

// GrandTotal returns subtotal + taxAmount.
func GrandTotal(subtotal, taxAmount float64) float64 {
	return decimal.NewFromFloat(subtotal).Add(decimal.NewFromFloat(taxAmount)).InexactFloat64()
}

// Compute derives all invoice totals from items and tax rate.
func Compute(items []domain.InvoiceItem, taxRate float64) Totals {
	sub := subtotal(items)
	tax := taxAmount(sub, taxRate)
	return Totals{
		Subtotal:  sub.InexactFloat64(),
		TaxAmount: tax.InexactFloat64(),
		Total:     sub.Add(tax).InexactFloat64(),
	}
}

// Item builds an invoice line with its total filled in.
func Item(id, name string, price float64, quantity int) domain.InvoiceItem {
	return domain.InvoiceItem{
		ID:       id,
		Name:     name,
		Price:    price,
		Quantity: quantity,
		Total:    LineTotal(price, quantity),
	}
}

// Recompute overwrites every derived field of inv: each item total, then
// subtotal, tax amount and grand total.
func Recompute(inv *domain.Invoice) {
	for i := range inv.Items {
		inv.Items[i].Total = LineTotal(inv.Items[i].Price, inv.Items[i].Quantity)
	}
	t := Compute(inv.Items, inv.TaxRate)
	inv.Subtotal = t.Subtotal
	inv.TaxAmount = t.TaxAmount
	inv.Total = t.Total
}

func lineTotal(price float64, quantity int) decimal.Decimal {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity)))
}

func subtotal(items []domain.InvoiceItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(lineTotal(it.Price, it.Quantity))
	}
	return sum
}

func taxAmount(subtotal decimal.Decimal, taxRate float64) decimal.Decimal {
	return subtotal.Mul(decimal.NewFromFloat(taxRate)).Div(decimal.NewFromInt(100))
}
