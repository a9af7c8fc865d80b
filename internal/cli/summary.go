package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"weightlog/internal/app"
	"weightlog/internal/domain"
)

var summaryCmd = LeafCommand{
	Use:   "summary",
	Short: "Show the latest weight, BMI and distance to target",
	Args:  cobra.NoArgs,
	StrFlags: []StringFlag{
		{Name: "unit", Short: "u", Usage: "kg or lb", Default: domain.UnitKg},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		unitFlag, _ := cmd.Flags().GetString("unit")
		return withSession(func(s *session) error {
			return runSummary(cmd, s.charts, unitFlag)
		})
	},
}.Build()

func runSummary(cmd *cobra.Command, cs *app.ChartsService, unit string) error {
	sum, err := cs.Summary(commandContext(cmd), unit)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if sum.NeedsSetup {
		_, _ = fmt.Fprintf(w, "no entries yet, run %s to get started\n", Primary("weightlog add <weight>"))
		return nil
	}

	_, _ = fmt.Fprintf(w, "  weight:    %s\n", Primary(fmt.Sprintf("%.1f %s", sum.Weight, sum.Unit)))
	_, _ = fmt.Fprintf(w, "  target:    %s\n", Primary(fmt.Sprintf("%.1f %s", sum.TargetWeight, sum.Unit)))
	_, _ = fmt.Fprintf(w, "  to go:     %s\n", Primary(fmt.Sprintf("%.1f %s", sum.DistanceToTarget, sum.Unit)))
	_, _ = fmt.Fprintf(w, "  bmi:       %s %s\n", Primary(fmt.Sprintf("%.1f", sum.BMI)), Silent(sum.Category))
	_, _ = fmt.Fprintf(w, "  entries:   %d\n", sum.Count)
	return nil
}
