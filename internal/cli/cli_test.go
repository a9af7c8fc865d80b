package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"weightlog/internal/adapter/memory"
	"weightlog/internal/app"
)

var testNow = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func newTestServices(t *testing.T) (*memory.DB, *app.EntryLogService, *app.ChartsService) {
	t.Helper()
	store := memory.New()
	es := app.NewEntryLogService(store, app.WithClock(func() time.Time { return testNow }))
	return store, es, app.NewChartsService(es)
}

func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	stdout := new(bytes.Buffer)
	cmd := &cobra.Command{}
	cmd.SetOut(stdout)
	cmd.SetContext(context.Background())
	return cmd, stdout
}

func seedEntries(t *testing.T, es *app.EntryLogService, weights ...string) {
	t.Helper()
	in := app.AppendInput{TargetWeight: "65", Height: "175", Age: "28"}
	for _, w := range weights {
		in.Weight = w
		_, err := es.Append(context.Background(), in)
		require.NoError(t, err)
	}
}

func noPrompt(t *testing.T) PromptFunc {
	return func(prompt string) (string, error) {
		t.Fatalf("unexpected prompt %q", prompt)
		return "", nil
	}
}
