package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"weightlog/internal/app"
	"weightlog/internal/domain"
)

var stickyPrompts = map[string]string{
	app.FieldTargetWeight: "Target weight (kg)",
	app.FieldHeight:       "Height (cm)",
	app.FieldAge:          "Age (years)",
}

var addCmd = LeafCommand{
	Use:   "add <weight>",
	Short: "Record a weight in kg",
	Args:  cobra.ExactArgs(1),
	StrFlags: []StringFlag{
		{Name: "target", Short: "t", Usage: "target weight in kg (kept for later entries)"},
		{Name: "height", Usage: "height in cm (kept for later entries)"},
		{Name: "age", Usage: "age in years (kept for later entries)"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		target, _ := cmd.Flags().GetString("target")
		height, _ := cmd.Flags().GetString("height")
		age, _ := cmd.Flags().GetString("age")

		return withSession(func(s *session) error {
			in := app.AppendInput{Weight: args[0], TargetWeight: target, Height: height, Age: age}
			return runAdd(cmd, s.entries, in, NewPromptFunc())
		})
	},
}.Build()

func runAdd(cmd *cobra.Command, es *app.EntryLogService, in app.AppendInput, prompt PromptFunc) error {
	ctx := commandContext(cmd)
	w := cmd.OutOrStdout()

	missing, err := es.MissingStickyFields(ctx)
	if err != nil {
		return err
	}
	if len(missing) > 0 && prompt != nil {
		_, _ = fmt.Fprintln(w, Silent("first entry, a few details are needed once"))
	}
	for _, field := range missing {
		target := stickyInput(&in, field)
		if *target != "" || prompt == nil {
			continue
		}
		v, err := prompt(stickyPrompts[field])
		if err != nil {
			return err
		}
		*target = v
	}

	entry, err := es.Append(ctx, in)
	var pe *domain.PersistenceError
	if errors.As(err, &pe) && entry != nil {
		_, _ = fmt.Fprintf(w, "%s %.1f kg\n", Warning("recorded but"), entry.Weight)
		return err
	}
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "added %s (bmi %s, %s to target)\n",
		Primary(fmt.Sprintf("%.1f kg", entry.Weight)),
		Primary(fmt.Sprintf("%.1f", entry.BMI)),
		Silent(fmt.Sprintf("%.1f kg", domain.DistanceToTarget(*entry))))
	return nil
}

func stickyInput(in *app.AppendInput, field string) *string {
	switch field {
	case app.FieldTargetWeight:
		return &in.TargetWeight
	case app.FieldHeight:
		return &in.Height
	default:
		return &in.Age
	}
}
