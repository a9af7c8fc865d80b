package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"weightlog/internal/app"
)

var clearCmd = LeafCommand{
	Use:   "clear",
	Short: "Delete every entry and all stored data",
	Args:  cobra.NoArgs,
	BoolFlags: []BoolFlag{
		{Name: "yes", Short: "y", Usage: "skip confirmation prompt"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		yesFlag, _ := cmd.Flags().GetBool("yes")
		return withSession(func(s *session) error {
			return runClear(cmd, s.entries, confirmFor(yesFlag))
		})
	},
}.Build()

func runClear(cmd *cobra.Command, es *app.EntryLogService, confirm ConfirmFunc) error {
	w := cmd.OutOrStdout()

	if confirm != nil {
		ok, err := confirm("Delete all entries? This cannot be undone.")
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(w, "cancelled")
			return nil
		}
	}

	if err := es.ClearAll(commandContext(cmd)); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w, Warning("all data cleared"))
	return nil
}
