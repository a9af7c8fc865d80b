package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weightlog/internal/domain"
)

func TestDeleteEntry(t *testing.T) {
	_, es, _ := newTestServices(t)
	seedEntries(t, es, "70", "69")
	cmd, stdout := newTestCmd()

	err := runDelete(cmd, es, "0", AlwaysYes())

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "70.0 kg")
	assert.Contains(t, stdout.String(), "deleted entry")
	require.Len(t, es.Entries(), 1)
	assert.Equal(t, 69.0, es.Entries()[0].Weight)
}

func TestDeleteConfirmDeclined(t *testing.T) {
	_, es, _ := newTestServices(t)
	seedEntries(t, es, "70")
	cmd, stdout := newTestCmd()

	confirm := func(_ string) (bool, error) {
		return false, nil
	}
	err := runDelete(cmd, es, "0", confirm)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "cancelled")
	assert.NotContains(t, stdout.String(), "deleted entry")
	assert.Len(t, es.Entries(), 1)
}

func TestDeleteOutOfRange(t *testing.T) {
	_, es, _ := newTestServices(t)
	seedEntries(t, es, "70")
	cmd, _ := newTestCmd()

	confirm := func(_ string) (bool, error) {
		t.Fatal("confirm should not be called")
		return false, nil
	}

	for _, arg := range []string{"1", "-1"} {
		err := runDelete(cmd, es, arg, confirm)
		var ie *domain.IndexError
		assert.ErrorAs(t, err, &ie)
	}
	assert.Len(t, es.Entries(), 1)
}

func TestDeleteBadIndex(t *testing.T) {
	_, es, _ := newTestServices(t)
	cmd, _ := newTestCmd()

	err := runDelete(cmd, es, "first", AlwaysYes())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "integer")
}
