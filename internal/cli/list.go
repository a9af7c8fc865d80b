package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"weightlog/internal/app"
	"weightlog/internal/domain"
)

var listCmd = LeafCommand{
	Use:     "list",
	Short:   "List entries, newest first",
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *session) error {
			return runList(cmd, s.entries)
		})
	},
}.Build()

func runList(cmd *cobra.Command, es *app.EntryLogService) error {
	rows, err := es.Display(commandContext(cmd))
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(w, "no entries yet")
		return nil
	}
	for _, row := range rows {
		e := row.Entry
		_, _ = fmt.Fprintf(w, "%s  %-18s  %s  bmi %.1f  %s\n",
			Silent(fmt.Sprintf("[%d]", row.Index)),
			displayDate(e),
			Primary(fmt.Sprintf("%6.1f kg", e.Weight)),
			e.BMI,
			Silent(fmt.Sprintf("%.1f kg to target", domain.DistanceToTarget(e))))
	}
	return nil
}

// displayDate renders an entry's date in local time; undated entries show
// their stored text.
func displayDate(e domain.Entry) string {
	if !e.Dated() {
		return e.DateString()
	}
	return e.Date.In(time.Local).Format("02 Jan 2006 15:04")
}
