package pathutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedStub string

func (n namedStub) EntryName() string { return string(n) }

func TestComposeBuildsAncestorPath(t *testing.T) {
	got, err := Compose("/out", []Named{namedStub("a"), namedStub("b")}, "leaf.wad")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/out", "a", "b", "leaf.wad"), got)
}

func TestComposeRejectsEscapeAttempts(t *testing.T) {
	_, err := Compose("/out", nil, "..")
	assert.Error(t, err)

	_, err = Compose("/out", []Named{namedStub("../escape")}, "x")
	assert.Error(t, err)

	_, err = Compose("/out", nil, "")
	assert.Error(t, err)
}

func TestRewriteImageOutputName(t *testing.T) {
	assert.Equal(t, "sprite.png", RewriteImageOutputName("sprite.rle", true))
	assert.Equal(t, "sprite.png", RewriteImageOutputName("sprite.RLE", true))
	assert.Equal(t, "noext.png", RewriteImageOutputName("noext", true))

	assert.Equal(t, "icon.bmp", RewriteImageOutputName("icon.bmp", false))
	assert.Equal(t, "icon.bmp", RewriteImageOutputName("icon", false))
}
