package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supplier-hub/internal/entities"
	apperrors "supplier-hub/pkg/errors"
)

var fixed = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestSuppliers_CRUD(t *testing.T) {
	ctx := context.Background()
	repos := New(func() time.Time { return fixed })

	first, err := repos.Suppliers.Create(ctx, entities.Supplier{Name: "Acme", Category: "raw-materials"})
	require.NoError(t, err)
	second, err := repos.Suppliers.Create(ctx, entities.Supplier{Name: "Beta", Category: "logistics"})
	require.NoError(t, err)

	assert.NotEmpty(t, first.ID)
	assert.Equal(t, entities.SupplierStatusActive, first.Status)
	assert.Equal(t, fixed, first.Metrics.LastUpdated)
	assert.NotNil(t, first.CustomFields)

	all, err := repos.Suppliers.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID, "новые первыми")

	byCat, err := repos.Suppliers.ListByField(ctx, "category", "logistics")
	require.NoError(t, err)
	require.Len(t, byCat, 1)
	assert.Equal(t, "Beta", byCat[0].Name)

	_, err = repos.Suppliers.ListByField(ctx, "phone", "x")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	first.Name = "Acme SA"
	updated, err := repos.Suppliers.Update(ctx, first.ID, first)
	require.NoError(t, err)
	assert.Equal(t, "Acme SA", updated.Name)

	require.NoError(t, repos.Suppliers.Delete(ctx, first.ID))
	err = repos.Suppliers.Delete(ctx, first.ID)
	var notFound *apperrors.RemoteNotFoundError
	assert.ErrorAs(t, err, &notFound)

	_, err = repos.Suppliers.GetByID(ctx, first.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, 1, repos.Suppliers.Len())
}

func TestSuppliers_CreateBatchRollsBack(t *testing.T) {
	ctx := context.Background()
	repos := New(nil)
	_, err := repos.Suppliers.Create(ctx, entities.Supplier{Name: "Acme"})
	require.NoError(t, err)

	repos.Suppliers.WriteErr = errors.New("disk full")
	_, err = repos.Suppliers.CreateBatch(ctx, []entities.Supplier{{Name: "A"}, {Name: "B"}})

	var writeErr *apperrors.RemoteWriteError
	assert.ErrorAs(t, err, &writeErr)
	assert.Equal(t, 1, repos.Suppliers.Len())
}

func TestCollection_ReadErr(t *testing.T) {
	repos := New(nil)
	repos.Evaluations.ReadErr = errors.New("timeout")

	_, err := repos.Evaluations.ListAll(context.Background())

	var readErr *apperrors.RemoteReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, "evaluations", readErr.Collection)
}

func TestDocuments_FilterByOwner(t *testing.T) {
	ctx := context.Background()
	repos := New(nil)
	sup := "s1"
	_, err := repos.Documents.Create(ctx, entities.Document{Name: "a.pdf", SupplierID: &sup})
	require.NoError(t, err)
	_, err = repos.Documents.Create(ctx, entities.Document{Name: "b.pdf"})
	require.NoError(t, err)

	got, err := repos.Documents.ListByField(ctx, "supplier_id", "s1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a.pdf", got[0].Name)
}
