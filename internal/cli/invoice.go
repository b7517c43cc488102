package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/rubico/internal/app"
	"github.com/roach88/rubico/internal/domain"
)

func newInvoiceCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "Manage invoices",
	}
	cmd.AddCommand(newInvoiceAddCommand(e))
	cmd.AddCommand(newInvoiceListCommand(e))
	cmd.AddCommand(newInvoiceShowCommand(e))
	cmd.AddCommand(newInvoiceUpdateCommand(e))
	cmd.AddCommand(newInvoiceDeleteCommand(e))
	return cmd
}

// parseItem parses "name:price:quantity". The name may itself contain
// colons; price and quantity are taken from the end.
func parseItem(s string) (domain.ItemInput, error) {
	j := strings.LastIndex(s, ":")
	if j < 0 {
		return domain.ItemInput{}, fmt.Errorf("item %q: want name:price:quantity", s)
	}
	i := strings.LastIndex(s[:j], ":")
	if i < 0 {
		return domain.ItemInput{}, fmt.Errorf("item %q: want name:price:quantity", s)
	}

	price, err := strconv.ParseFloat(s[i+1:j], 64)
	if err != nil {
		return domain.ItemInput{}, fmt.Errorf("item %q: price: %w", s, err)
	}
	qty, err := strconv.Atoi(s[j+1:])
	if err != nil {
		return domain.ItemInput{}, fmt.Errorf("item %q: quantity: %w", s, err)
	}
	return domain.ItemInput{Name: s[:i], Price: price, Quantity: qty}, nil
}

var errNoChanges = errors.New("nothing to update: give at least one field flag")

func parseItems(specs []string) ([]domain.ItemInput, error) {
	items := make([]domain.ItemInput, 0, len(specs))
	for _, s := range specs {
		it, err := parseItem(s)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

func newInvoiceAddCommand(e *env) *cobra.Command {
	var (
		customerID, date, due string
		taxRate               float64
		itemSpecs             []string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a draft invoice for a customer",
		Long: `Add a draft invoice for a customer.

The invoice date defaults to today and the due date to 30 days later.
Items are given as --item name:price:quantity, once per line. Totals are
always computed; they cannot be entered.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.run(cmd, func(ctx context.Context, s *app.Session, f *OutputFormatter) error {
				items, err := parseItems(itemSpecs)
				if err != nil {
					return err
				}

				in := domain.DefaultInvoiceInput(customerID, e.clock.Now())
				if date != "" {
					in.InvoiceDate = date
				}
				if due != "" {
					in.DueDate = due
				}
				in.TaxRate = taxRate
				in.Items = items

				inv, err := s.Manager.AddInvoice(ctx, in)
				if err != nil {
					return err
				}
				f.VerboseLog("Invoice %s total %s", inv.ID, money(inv.Total))
				return f.Success(created{kind: "invoice", ID: inv.ID, Record: inv})
			})
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&customerID, "customer", "", "customer id")
	fs.StringVar(&date, "date", "", "invoice date, YYYY-MM-DD (default today)")
	fs.StringVar(&due, "due", "", "due date, YYYY-MM-DD (default invoice date + 30 days)")
	fs.Float64Var(&taxRate, "tax", 0, "tax rate in percent (0-100)")
	fs.StringArrayVar(&itemSpecs, "item", nil, "line item as name:price:quantity (repeatable)")
	return cmd
}

func newInvoiceListCommand(e *env) *cobra.Command {
	var customerID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List invoices, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.run(cmd, func(ctx context.Context, s *app.Session, f *OutputFormatter) error {
				if customerID == "" {
					return f.Success(invoiceList(s.Manager.Snapshot().Invoices))
				}
				invoices, err := s.Manager.CustomerInvoices(ctx, customerID)
				if err != nil {
					return err
				}
				return f.Success(invoiceList(invoices))
			})
		},
	}
	cmd.Flags().StringVar(&customerID, "customer", "", "only invoices for this customer id")
	return cmd
}

func newInvoiceShowCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show an invoice with its items and totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.run(cmd, func(ctx context.Context, s *app.Session, f *OutputFormatter) error {
				inv, err := s.Manager.Invoice(args[0])
				if err != nil {
					return err
				}
				return f.Success(invoiceDetail(inv))
			})
		},
	}
}

func newInvoiceUpdateCommand(e *env) *cobra.Command {
	var (
		date, due, status string
		taxRate           float64
		itemSpecs         []string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change dates, items, tax rate or status of an invoice",
		Long: `Change some fields of an invoice. Only the flags given are changed;
--item replaces all lines. Totals are recomputed. The customer name and
email on the invoice never change.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			fs := cmd.Flags()
			return e.run(cmd, func(ctx context.Context, s *app.Session, f *OutputFormatter) error {
				var patch domain.InvoicePatch
				if fs.Changed("date") {
					patch.InvoiceDate = &date
				}
				if fs.Changed("due") {
					patch.DueDate = &due
				}
				if fs.Changed("tax") {
					patch.TaxRate = &taxRate
				}
				if fs.Changed("status") {
					st := domain.InvoiceStatus(status)
					patch.Status = &st
				}
				if fs.Changed("item") {
					items, err := parseItems(itemSpecs)
					if err != nil {
						return err
					}
					patch.Items = items
				}

				if patch.Empty() {
					return errNoChanges
				}

				inv, found, err := s.Manager.UpdateInvoice(ctx, id, patch)
				if err != nil {
					return err
				}
				if !found {
					return f.Success(notChanged{kind: "invoice", ID: id})
				}
				return f.Success(updated{kind: "invoice", ID: inv.ID, Record: inv})
			})
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&date, "date", "", "invoice date, YYYY-MM-DD")
	fs.StringVar(&due, "due", "", "due date, YYYY-MM-DD")
	fs.Float64Var(&taxRate, "tax", 0, "tax rate in percent (0-100)")
	fs.StringVar(&status, "status", "", "draft, sent, paid or overdue")
	fs.StringArrayVar(&itemSpecs, "item", nil, "line item as name:price:quantity (repeatable, replaces all)")
	return cmd
}

func newInvoiceDeleteCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.run(cmd, func(ctx context.Context, s *app.Session, f *OutputFormatter) error {
				if err := s.Manager.DeleteInvoice(ctx, args[0]); err != nil {
					return err
				}
				return f.Success(deleted{kind: "invoice", ID: args[0]})
			})
		},
	}
}
