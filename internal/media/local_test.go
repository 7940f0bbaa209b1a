package media

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shenikar/rescue_chain/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "/media/")
	require.NoError(t, err)

	url, err := store.Save(context.Background(), "../../etc/fire photo.jpg", "image/jpeg", strings.NewReader("jpeg-bytes"))

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/media/"))
	assert.True(t, strings.HasSuffix(url, "-fire_photo.jpg"))

	data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/media/")))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))
}

func TestLocalStore_TooLarge(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "/media")
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "big.bin", "application/octet-stream", bytes.NewReader(make([]byte, maxFileSize+1)))

	assert.ErrorIs(t, err, service.ErrValidation)
	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries, "частично записанный файл удаляется")
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "file", sanitize(""))
	assert.Equal(t, "file", sanitize(".."))
	assert.Equal(t, "a_b.png", sanitize(`C:\Users\x\a b.png`))
}
