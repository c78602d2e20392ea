package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	f := NewTokenFile(path)

	tok, err := f.Load()
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, f.Save("abc.def.ghi"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	tok, err = f.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)

	require.NoError(t, f.Clear())
	require.NoError(t, f.Clear(), "clearing twice is fine")

	tok, err = f.Load()
	require.NoError(t, err)
	assert.Empty(t, tok)
}
