package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"weightlog/internal/app"
	"weightlog/internal/domain"
)

const chartWidth = 30

var chartCmd = LeafCommand{
	Use:   "chart",
	Short: "Show the weight trend for a time range",
	Args:  cobra.NoArgs,
	StrFlags: []StringFlag{
		{Name: "range", Short: "r", Usage: "week, month, 6months, year or all", Default: string(domain.RangeAll)},
		{Name: "unit", Short: "u", Usage: "kg or lb", Default: domain.UnitKg},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		rangeFlag, _ := cmd.Flags().GetString("range")
		unitFlag, _ := cmd.Flags().GetString("unit")
		return withSession(func(s *session) error {
			return runChart(cmd, s.charts, rangeFlag, unitFlag, time.Now())
		})
	},
}.Build()

func runChart(cmd *cobra.Command, cs *app.ChartsService, rangeFlag, unit string, now time.Time) error {
	rng, err := domain.ParseRange(rangeFlag)
	if err != nil {
		return err
	}
	points, err := cs.Series(commandContext(cmd), rng, unit, now)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if len(points) == 0 {
		_, _ = fmt.Fprintf(w, "no entries in range %s\n", rng)
		return nil
	}

	lo, hi := points[0].Weight, points[0].Weight
	for _, p := range points {
		lo = min(lo, p.Weight)
		hi = max(hi, p.Weight)
	}
	for _, p := range points {
		width := 1
		if hi > lo {
			width += int((p.Weight - lo) / (hi - lo) * (chartWidth - 1))
		}
		_, _ = fmt.Fprintf(w, "%s %s %.1f %s\n",
			Silent(fmt.Sprintf("%-6s", p.Label)),
			Primary(strings.Repeat("█", width)),
			p.Weight, p.Unit)
	}
	return nil
}
