package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"weightlog/internal/app"
	"weightlog/internal/domain"
)

var deleteCmd = LeafCommand{
	Use:     "delete <index>",
	Short:   "Delete the entry with the index shown by list",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	BoolFlags: []BoolFlag{
		{Name: "yes", Short: "y", Usage: "skip confirmation prompt"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		yesFlag, _ := cmd.Flags().GetBool("yes")
		return withSession(func(s *session) error {
			return runDelete(cmd, s.entries, args[0], confirmFor(yesFlag))
		})
	},
}.Build()

func runDelete(cmd *cobra.Command, es *app.EntryLogService, indexArg string, confirm ConfirmFunc) error {
	index, err := strconv.Atoi(indexArg)
	if err != nil {
		return fmt.Errorf("index must be an integer, got %q", indexArg)
	}

	ctx := commandContext(cmd)
	if err := es.EnsureLoaded(ctx); err != nil {
		return err
	}
	entries := es.Entries()
	w := cmd.OutOrStdout()

	if index < 0 || index >= len(entries) {
		return &domain.IndexError{Index: index, Len: len(entries)}
	}

	e := entries[index]
	_, _ = fmt.Fprintf(w, "  date:   %s\n", Primary(displayDate(e)))
	_, _ = fmt.Fprintf(w, "  weight: %s\n", Primary(fmt.Sprintf("%.1f kg", e.Weight)))

	if confirm != nil {
		ok, err := confirm("Delete this entry?")
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(w, "cancelled")
			return nil
		}
	}

	if err := es.DeleteAt(ctx, index); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "deleted entry %s\n", Silent(strconv.Itoa(index)))
	return nil
}
