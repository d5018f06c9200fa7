package storefront

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session", "creds.json")
	s := NewFileStore(path)

	// 文件不存在等同未登录
	creds, err := s.Load()
	require.NoError(t, err)
	assert.True(t, creds.Empty())

	require.NoError(t, s.Save(Credentials{Token: "tok", Email: "john.doe@example.com", PendingEmail: "new@example.com"}))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok", got.Token)
	assert.Equal(t, "new@example.com", got.PendingEmail)

	require.NoError(t, s.Clear())
	got, err = s.Load()
	require.NoError(t, err)
	assert.True(t, got.Empty())
	// 重复清除不报错
	require.NoError(t, s.Clear())
}

func TestFileStoreCorruptedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s := NewFileStore(path)
	creds, err := s.Load()
	require.NoError(t, err)
	assert.True(t, creds.Empty())
}
