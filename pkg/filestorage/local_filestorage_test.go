package filestorage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFileStorage_SaveAndDelete(t *testing.T) {
	base := t.TempDir()
	storage, err := NewLocalFileStorage(base)
	require.NoError(t, err)

	url, size, err := storage.Save(strings.NewReader("contract body"), "Contract.PDF", "suppliers")
	require.NoError(t, err)

	assert.Equal(t, int64(len("contract body")), size)
	assert.True(t, strings.HasPrefix(url, "/uploads/suppliers/"))
	assert.True(t, strings.HasSuffix(url, ".pdf"))

	onDisk := filepath.Join(base, strings.TrimPrefix(url, URLPrefix))
	body, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	assert.Equal(t, "contract body", string(body))

	require.NoError(t, storage.Delete(url))
	_, err = os.Stat(onDisk)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, storage.Delete(url), "повторное удаление не ошибка")
}

func TestLocalFileStorage_PrefixCannotEscapeBase(t *testing.T) {
	base := t.TempDir()
	storage, err := NewLocalFileStorage(base)
	require.NoError(t, err)

	url, _, err := storage.Save(strings.NewReader("x"), "a.txt", "../../etc")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/etc/"))
}
