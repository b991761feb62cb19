package fsops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileCreatesParents(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a", "b", "readme.txt")

	require.NoError(t, WriteFile(target, []byte("HELLO")))

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "HELLO", string(got))
}

func TestWithinRoot(t *testing.T) {
	assert.True(t, WithinRoot("/out", "/out/a/b"))
	assert.True(t, WithinRoot("/out", "/out"))
	assert.False(t, WithinRoot("/out", "/outside"))
	assert.False(t, WithinRoot("/out", "/out/../escape"))
}
