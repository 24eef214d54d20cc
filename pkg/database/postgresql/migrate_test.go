package postgresql

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS(), ".")
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{
		"00001_create_suppliers.sql",
		"00002_create_evaluations.sql",
		"00003_create_non_conformities.sql",
		"00004_create_documents.sql",
	}, names)

	body, err := fs.ReadFile(migrationsFS(), "00003_create_non_conformities.sql")
	require.NoError(t, err)
	assert.Contains(t, string(body), "ON DELETE CASCADE")
	assert.Contains(t, string(body), "-- +goose Down")
}
