package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesConstructedKind(t *testing.T) {
	err := Formatf("bad palette id %d", 7)
	assert.True(t, Is(err, KindFormat))
	assert.False(t, Is(err, KindIO))
}

func TestIsFollowsWrappedCauses(t *testing.T) {
	cause := errors.New("disk gone")
	err := IO(cause, "read entry")
	assert.True(t, Is(err, KindIO))
	assert.ErrorIs(t, err, cause)
}

func TestErrorStringIncludesKind(t *testing.T) {
	err := Usagef("no input files")
	assert.Contains(t, err.Error(), "UsageError")
	assert.Contains(t, err.Error(), "no input files")
}

func TestFormatPlusVIncludesStackFrame(t *testing.T) {
	err := Resourcef("traversal queue overflow")
	out := fmt.Sprintf("%+v", err)
	assert.Contains(t, out, "traversal queue overflow")
	assert.Contains(t, out, "errs_test.go")
}
