package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryNeedsSetup(t *testing.T) {
	_, _, cs := newTestServices(t)
	cmd, stdout := newTestCmd()

	require.NoError(t, runSummary(cmd, cs, "kg"))
	assert.Contains(t, stdout.String(), "no entries yet")
}

func TestSummaryLatest(t *testing.T) {
	_, es, cs := newTestServices(t)
	seedEntries(t, es, "70")
	cmd, stdout := newTestCmd()

	require.NoError(t, runSummary(cmd, cs, "kg"))

	out := stdout.String()
	assert.Contains(t, out, "70.0 kg")
	assert.Contains(t, out, "65.0 kg")
	assert.Contains(t, out, "5.0 kg")
	assert.Contains(t, out, "22.9")
	assert.Contains(t, out, "entries:   1")
}
