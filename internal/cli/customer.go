package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/roach88/rubico/internal/app"
	"github.com/roach88/rubico/internal/domain"
	"github.com/roach88/rubico/internal/store"
)

func newCustomerCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Manage customers",
	}
	cmd.AddCommand(newCustomerAddCommand(e))
	cmd.AddCommand(newCustomerListCommand(e))
	cmd.AddCommand(newCustomerShowCommand(e))
	cmd.AddCommand(newCustomerUpdateCommand(e))
	cmd.AddCommand(newCustomerDeleteCommand(e))
	return cmd
}

// addressFlags binds one address to flags named <prefix>street, etc.
type addressFlags struct {
	prefix string
	addr   domain.Address
}

func (a *addressFlags) register(fs *pflag.FlagSet, what string) {
	fs.StringVar(&a.addr.Street, a.prefix+"street", "", what+" street")
	fs.StringVar(&a.addr.City, a.prefix+"city", "", what+" city")
	fs.StringVar(&a.addr.State, a.prefix+"state", "", what+" state")
	fs.StringVar(&a.addr.ZipCode, a.prefix+"zip", "", what+" ZIP code")
	fs.StringVar(&a.addr.Country, a.prefix+"country", "", what+" country")
}

// merge overlays the flags that were set onto base.
func (a *addressFlags) merge(fs *pflag.FlagSet, base domain.Address) (domain.Address, bool) {
	changed := false
	set := func(name string, dst *string, v string) {
		if fs.Changed(a.prefix + name) {
			*dst = v
			changed = true
		}
	}
	set("street", &base.Street, a.addr.Street)
	set("city", &base.City, a.addr.City)
	set("state", &base.State, a.addr.State)
	set("zip", &base.ZipCode, a.addr.ZipCode)
	set("country", &base.Country, a.addr.Country)
	return base, changed
}

func newCustomerAddCommand(e *env) *cobra.Command {
	var (
		personal       domain.PersonalInfo
		billing        = &addressFlags{}
		shipping       = &addressFlags{prefix: "ship-"}
		sameAsShipping bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a customer",
		Long: `Add a customer.

Personal details are checked first (including that the email is not already
registered), then the addresses. Use --same-as-billing to ship to the
billing address.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.run(cmd, func(ctx context.Context, s *app.Session, f *OutputFormatter) error {
				m := s.Manager
				if err := m.CheckPersonalInfo(ctx, personal, ""); err != nil {
					return err
				}
				addresses := domain.AddressInfo{
					BillingAddress:  billing.addr,
					ShippingAddress: shipping.addr,
					SameAsShipping:  sameAsShipping,
				}
				if err := m.CheckAddressInfo(addresses); err != nil {
					return err
				}

				c, err := m.AddCustomer(ctx, domain.NewCustomerInput(personal, addresses))
				if err != nil {
					return err
				}
				f.VerboseLog("Customer %s created at %s", c.ID, c.CreatedAt.Format(timeLayout))
				return f.Success(created{kind: "customer", ID: c.ID, Record: c})
			})
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&personal.Name, "name", "", "customer name (at least 2 characters)")
	fs.StringVar(&personal.Email, "email", "", "email address (must be unique)")
	fs.StringVar(&personal.Phone, "phone", "", "phone number")
	billing.register(fs, "billing")
	shipping.register(fs, "shipping")
	fs.BoolVar(&sameAsShipping, "same-as-billing", false, "use the billing address for shipping")
	return cmd
}

func newCustomerListCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List customers, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.run(cmd, func(ctx context.Context, s *app.Session, f *OutputFormatter) error {
				return f.Success(customerList(s.Manager.Snapshot().Customers))
			})
		},
	}
}

func newCustomerShowCommand(e *env) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show a customer and their invoices",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 1) == (email != "") {
				return reportError(e.formatter(cmd), fmt.Errorf("give either an id or --email"))
			}
			return e.run(cmd, func(ctx context.Context, s *app.Session, f *OutputFormatter) error {
				m := s.Manager
				var c domain.Customer
				if email != "" {
					found, ok, err := m.CustomerByEmail(ctx, email)
					if err != nil {
						return err
					}
					if !ok {
						return fmt.Errorf("no customer with email %q", email)
					}
					c = found
				} else {
					found, err := m.Customer(args[0])
					if err != nil {
						return err
					}
					c = found
				}

				invoices, err := m.CustomerInvoices(ctx, c.ID)
				if err != nil {
					return err
				}
				return f.Success(customerDetail{Customer: c, Invoices: invoices})
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "look the customer up by email (case-insensitive)")
	return cmd
}

func newCustomerUpdateCommand(e *env) *cobra.Command {
	var (
		name, email, phone string
		billing            = &addressFlags{}
		shipping           = &addressFlags{prefix: "ship-"}
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change some fields of a customer",
		Long: `Change some fields of a customer. Only the flags given are changed.

Existing invoices keep the name and email the customer had when they were
created.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			fs := cmd.Flags()
			return e.run(cmd, func(ctx context.Context, s *app.Session, f *OutputFormatter) error {
				m := s.Manager
				var patch domain.CustomerPatch
				if fs.Changed("name") {
					patch.Name = &name
				}
				if fs.Changed("email") {
					patch.Email = &email
				}
				if fs.Changed("phone") {
					patch.Phone = &phone
				}

				// Address flags patch single fields, so start from the cached
				// record. An unknown id keeps the zero address; UpdateCustomer
				// then reports it as absent.
				var current domain.Customer
				if c, err := m.Customer(id); err == nil {
					current = c
				} else if !errors.Is(err, store.ErrNotFound) {
					return err
				}
				if addr, ok := billing.merge(fs, current.BillingAddress); ok {
					patch.BillingAddress = &addr
				}
				if addr, ok := shipping.merge(fs, current.ShippingAddress); ok {
					patch.ShippingAddress = &addr
				}

				if patch.Empty() {
					return errNoChanges
				}

				c, found, err := m.UpdateCustomer(ctx, id, patch)
				if err != nil {
					return err
				}
				if !found {
					return f.Success(notChanged{kind: "customer", ID: id})
				}
				return f.Success(updated{kind: "customer", ID: c.ID, Record: c})
			})
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&name, "name", "", "new name")
	fs.StringVar(&email, "email", "", "new email address")
	fs.StringVar(&phone, "phone", "", "new phone number")
	billing.register(fs, "billing")
	shipping.register(fs, "shipping")
	return cmd
}

func newCustomerDeleteCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a customer (their invoices are kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.run(cmd, func(ctx context.Context, s *app.Session, f *OutputFormatter) error {
				if err := s.Manager.DeleteCustomer(ctx, args[0]); err != nil {
					return err
				}
				return f.Success(deleted{kind: "customer", ID: args[0]})
			})
		},
	}
}
