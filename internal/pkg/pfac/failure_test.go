package pfac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func walkState(states []trieState, s string) int32 {
	cur := int32(0)
	for _, c := range []byte(s) {
		cur = states[cur].trans[c]
		if cur == -1 {
			return -1
		}
	}
	return cur
}

// buildFailure computes the classical Aho-Corasick failure link and suffix
// output union correctly, independent of whether the delta compiler chooses
// to use it. "she" is a proper suffix-in-trie of nothing, but "he" is a
// proper suffix of "she" that is itself a full pattern, so she's failure
// link must land on he's terminal state and its merged output must include
// he's pattern index alongside its own.
func TestBuildFailure_ClassicalSuffixMerge(t *testing.T) {
	patterns := []*Pattern{
		newPattern([]byte("he"), 1, 0, 0, 0, 0),
		newPattern([]byte("she"), 2, 0, 0, 0, 0),
		newPattern([]byte("his"), 3, 0, 0, 0, 0),
		newPattern([]byte("hers"), 4, 0, 0, 0, 0),
	}
	states := buildGoto(patterns, true)

	heState := walkState(states, "he")
	sheState := walkState(states, "she")
	hersState := walkState(states, "hers")
	if heState == -1 || sheState == -1 || hersState == -1 {
		t.Fatalf("expected trie states not found: he=%d she=%d hers=%d", heState, sheState, hersState)
	}

	failure, merged := buildFailure(states)

	assert.Equal(t, heState, failure[sheState])
	assert.ElementsMatch(t, []uint32{0}, states[heState].output)
	assert.ElementsMatch(t, []uint32{1}, states[sheState].output)
	assert.ElementsMatch(t, []uint32{1, 0}, merged[sheState])

	// hers's own output is untouched by the merge computation regardless
	// of what its failure chain passes through.
	assert.ElementsMatch(t, []uint32{3}, states[hersState].output)
}

// TestBuildFailure_DoesNotMutateStates guards the design decision in
// failure.go: buildFailure must return the merge as a separate structure
// rather than folding it into states[i].output, because the delta
// compiler's correctness (see scan_test.go's overlapping-prefix scenario)
// depends on state output staying exactly what was literally inserted.
func TestBuildFailure_DoesNotMutateStates(t *testing.T) {
	patterns := []*Pattern{
		newPattern([]byte("a"), 0, 0, 0, 0, 0),
		newPattern([]byte("aa"), 1, 0, 0, 0, 0),
		newPattern([]byte("aaa"), 2, 0, 0, 0, 0),
	}
	states := buildGoto(patterns, true)

	before := make([][]uint32, len(states))
	for i, s := range states {
		before[i] = append([]uint32(nil), s.output...)
	}

	_, merged := buildFailure(states)

	for i, s := range states {
		assert.ElementsMatch(t, before[i], s.output, "state %d output mutated", i)
	}

	// merged, meanwhile, does accumulate: the terminal state for "aaa"
	// classically also reports "aa" and "a".
	aaaState := walkState(states, "aaa")
	assert.ElementsMatch(t, []uint32{0, 1, 2}, merged[aaaState])
}
