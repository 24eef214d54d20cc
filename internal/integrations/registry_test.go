package integrations

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supplier-hub/internal/integrations/mock"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	_, err := r.GetActive()
	assert.Error(t, err)

	p := mock.NewProvider()
	require.NoError(t, r.Register(p))
	assert.Error(t, r.Register(p), "повторная регистрация")

	active, err := r.GetActive()
	require.NoError(t, err)
	assert.Equal(t, "mock", active.Name())

	assert.Error(t, r.SetActive("google"))
}

func TestFetchSnapshot(t *testing.T) {
	p := mock.NewProvider()

	snap, err := FetchSnapshot(context.Background(), p, "abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", snap.SpreadsheetID)
	assert.NotNil(t, snap.Employees)
	assert.NotNil(t, snap.Feedbacks)
	assert.Equal(t, []string{"abc123"}, p.Requested())

	p.ShouldFail = true
	_, err = FetchSnapshot(context.Background(), p, "abc123")
	assert.ErrorIs(t, err, mock.ErrUnavailable)
}
