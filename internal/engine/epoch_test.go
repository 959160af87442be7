package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEpochBumpIncreasesMonotonically(t *testing.T) {
	var e epoch
	first := e.current()
	second := e.bump()
	assert.Greater(t, second, first)
	assert.Equal(t, second, e.current())
}

func TestEpochStaleDetectsBump(t *testing.T) {
	var e epoch
	stamped := e.current()
	assert.False(t, e.stale(stamped))

	e.bump()
	assert.True(t, e.stale(stamped))
}
