package pfac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGoto_SharedPrefixReusesStates(t *testing.T) {
	patterns := []*Pattern{
		newPattern([]byte("cat"), 0, 0, 0, 0, 0),
		newPattern([]byte("car"), 1, 0, 0, 0, 0),
	}
	states := buildGoto(patterns, false)

	cState := states[0].trans['c']
	require.NotEqual(t, int32(-1), cState)

	caState := states[cState].trans['a']
	require.NotEqual(t, int32(-1), caState)

	catState := states[caState].trans['t']
	carState := states[caState].trans['r']
	require.NotEqual(t, int32(-1), catState)
	require.NotEqual(t, int32(-1), carState)
	assert.NotEqual(t, catState, carState)

	assert.Equal(t, []uint32{0}, states[catState].output)
	assert.Equal(t, []uint32{1}, states[carState].output)
}

func TestBuildGoto_RootSelfLoopsOnUndefinedBytes(t *testing.T) {
	patterns := []*Pattern{newPattern([]byte("a"), 0, 0, 0, 0, 0)}
	states := buildGoto(patterns, false)

	assert.EqualValues(t, 0, states[0].trans['z'])
	assert.NotEqualValues(t, 0, states[0].trans['a'])
}

func TestBuildGoto_FoldsToLowerCase(t *testing.T) {
	patterns := []*Pattern{newPattern([]byte("Cat"), 0, 0, 0, 0, 0)}
	states := buildGoto(patterns, false)

	// insertion walks Folded, so the trie only has a lower-case path; the
	// upper-case byte has no child and falls back to the root self-loop
	assert.EqualValues(t, 0, states[0].trans['C'])
	assert.NotEqualValues(t, -1, states[0].trans['c'])
}

func TestFillLevel1Gap_PreallocatesEveryStartingByte(t *testing.T) {
	patterns := []*Pattern{
		newPattern([]byte("apple"), 0, 0, 0, 0, 0),
		newPattern([]byte("banana"), 1, 0, 0, 0, 0),
	}
	withGap := buildGoto(patterns, true)
	withoutGap := buildGoto(patterns, false)

	assert.NotEqualValues(t, -1, withGap[0].trans['a'])
	assert.NotEqualValues(t, -1, withGap[0].trans['b'])

	// same reachable strings regardless of the gap-fill optimization
	for _, s := range []string{"apple", "banana"} {
		assert.NotEqual(t, int32(-1), walkState(withGap, s))
		assert.NotEqual(t, int32(-1), walkState(withoutGap, s))
	}
}

func TestAppendUniqueU32(t *testing.T) {
	list := appendUniqueU32(nil, 1)
	list = appendUniqueU32(list, 2)
	list = appendUniqueU32(list, 1) // duplicate
	assert.Equal(t, []uint32{1, 2}, list)
}
