package pfac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSink_AddDedupsAndPreservesOrder(t *testing.T) {
	s := NewSink(10)

	assert.True(t, s.Add(3))
	assert.True(t, s.Add(1))
	assert.False(t, s.Add(3)) // duplicate
	assert.True(t, s.Add(7))

	assert.Equal(t, []uint32{3, 1, 7}, s.IDs())
	assert.Equal(t, 3, s.Len())
}

func TestSink_Contains(t *testing.T) {
	s := NewSink(10)
	assert.False(t, s.Contains(5))
	s.Add(5)
	assert.True(t, s.Contains(5))
}

func TestSink_Reset(t *testing.T) {
	s := NewSink(10)
	s.Add(1)
	s.Add(2)
	s.Reset()

	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.IDs())
	assert.False(t, s.Contains(1))

	// backing bitset must actually be reusable, not just the ids slice
	assert.True(t, s.Add(1))
}

func TestSink_BoundaryID(t *testing.T) {
	s := NewSink(64) // exercises the word boundary at bit 64
	assert.True(t, s.Add(64))
	assert.True(t, s.Contains(64))
	assert.True(t, s.Add(0))
	assert.True(t, s.Contains(0))
}
