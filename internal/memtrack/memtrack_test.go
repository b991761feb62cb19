package memtrack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounterTracksCurrentAndHighWater(t *testing.T) {
	var c Counter
	done := c.Scope(1024)
	assert.EqualValues(t, 1024, c.Current())
	assert.EqualValues(t, 1024, c.HighWater())

	done2 := c.Scope(2048)
	assert.EqualValues(t, 3072, c.Current())
	assert.EqualValues(t, 3072, c.HighWater())

	done2()
	assert.EqualValues(t, 1024, c.Current())
	assert.EqualValues(t, 3072, c.HighWater(), "high water survives frees")

	done()
	assert.EqualValues(t, 0, c.Current())
}
