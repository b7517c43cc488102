package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/rubico/internal/app"
	"github.com/roach88/rubico/internal/seed"
)

type seedResult seed.Result

func (r seedResult) renderText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Seeded %d customer(s) and %d invoice(s)\n", r.Customers, r.Invoices)
	return err
}

func newSeedCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file.yaml>",
		Short: "Import customers and invoices from a YAML file",
		Long: `Import customers and invoices from a YAML file.

Records are validated like typed-in ones. Invoices name their customer by
email. Import stops at the first invalid record; earlier ones are kept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fixture, err := seed.Load(args[0])
			if err != nil {
				return reportError(e.formatter(cmd), err)
			}
			return e.run(cmd, func(ctx context.Context, s *app.Session, f *OutputFormatter) error {
				res, err := seed.New(s.Manager, s.Log, e.clock).Apply(ctx, fixture)
				if err != nil {
					return err
				}
				return f.Success(seedResult(res))
			})
		},
	}
}
