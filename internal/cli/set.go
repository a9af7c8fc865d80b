package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"weightlog/internal/app"
)

var setCmd = GroupCommand{
	Use:   "set",
	Short: "Change a kept detail on the latest entry",
	Subcommands: []*cobra.Command{
		setFieldCmd(app.FieldTargetWeight, "Change the target weight in kg", "target"),
		setFieldCmd(app.FieldHeight, "Change the height in cm"),
		setFieldCmd(app.FieldAge, "Change the age in years"),
	},
}.Build()

func setFieldCmd(field, short string, aliases ...string) *cobra.Command {
	return LeafCommand{
		Use:     field + " <value>",
		Short:   short,
		Aliases: aliases,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(func(s *session) error {
				return runSet(cmd, s.entries, field, args[0])
			})
		},
	}.Build()
}

// runSet edits field on the latest entry. The stored BMI is left as it was.
func runSet(cmd *cobra.Command, es *app.EntryLogService, field, value string) error {
	entry, err := es.EditLatestField(commandContext(cmd), field, value)
	if err != nil {
		return err
	}

	var shown string
	switch field {
	case app.FieldAge:
		shown = fmt.Sprintf("%d", entry.Age)
	case app.FieldHeight:
		shown = fmt.Sprintf("%.1f cm", entry.Height)
	default:
		shown = fmt.Sprintf("%.1f kg", entry.TargetWeight)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s set to %s\n", field, Success(shown))
	return nil
}
