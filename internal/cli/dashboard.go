package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/roach88/rubico/internal/app"
)

func newDashboardCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show totals and the most recent records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.run(cmd, func(ctx context.Context, s *app.Session, f *OutputFormatter) error {
				return f.Success(dashboardView(s.Manager.Dashboard()))
			})
		},
	}
}
