package storage

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLocalStorage(t *testing.T) *LocalStorage {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestLocalStorage_SaveAndGet(t *testing.T) {
	s := setupLocalStorage(t)
	ctx := context.Background()

	content := []byte("document payload")
	path := "documents/2026/08/31/abc123.pdf"

	require.NoError(t, s.SaveWithContext(ctx, path, bytes.NewReader(content)))

	exists, err := s.Exists(ctx, path)
	require.NoError(t, err)
	assert.True(t, exists)

	reader, err := s.GetWithContext(ctx, path)
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, content, data)
}

func TestLocalStorage_GetMissing(t *testing.T) {
	s := setupLocalStorage(t)

	_, err := s.GetWithContext(context.Background(), "documents/nope.pdf")
	assert.ErrorContains(t, err, "file not found")
}

func TestLocalStorage_Delete(t *testing.T) {
	s := setupLocalStorage(t)
	ctx := context.Background()

	path := "images/2026/08/31/img.png"
	require.NoError(t, s.SaveWithContext(ctx, path, bytes.NewReader([]byte{0x89, 0x50})))
	require.NoError(t, s.DeleteWithContext(ctx, path))

	exists, err := s.Exists(ctx, path)
	require.NoError(t, err)
	assert.False(t, exists)

	// 删除不存在的文件不报错
	assert.NoError(t, s.DeleteWithContext(ctx, path))
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	s := setupLocalStorage(t)
	ctx := context.Background()

	for _, path := range []string{
		"../escape.txt",
		"documents/../../escape.txt",
		"/etc/passwd",
		"",
	} {
		err := s.SaveWithContext(ctx, path, bytes.NewReader([]byte("x")))
		assert.Error(t, err, "path %q should be rejected", path)
	}
}

func TestIsValidStoragePath(t *testing.T) {
	assert.True(t, IsValidStoragePath("documents/2026/08/31/a.pdf"))
	assert.False(t, IsValidStoragePath(""))
	assert.False(t, IsValidStoragePath("../a.pdf"))
	assert.False(t, IsValidStoragePath("/abs/path.pdf"))
	assert.False(t, IsValidStoragePath("\\windows\\path.pdf"))
}

func TestLocalStorage_Health(t *testing.T) {
	s := setupLocalStorage(t)
	assert.NoError(t, s.Health(context.Background()))
	assert.Equal(t, "local", s.Name())
}
