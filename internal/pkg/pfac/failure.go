package pfac

// buildFailure computes, by breadth-first traversal from the root, the
// failure link for every state plus the classical Aho-Corasick "suffix
// output": for each state u, failure[u] is the longest proper suffix of
// u's path that is also a trie prefix, and merged[u] is the union of u's
// own output with merged[failure[u]].
//
// The delta compiler intentionally does NOT use merged: this automaton is
// scanned failureless with a restart at every input offset (scan.go), so
// every suffix occurrence a failure link would have caught mid-scan is
// separately discovered by the walk starting at that suffix's own offset.
// Feeding merged into the delta/output tables double-reports those
// occurrences (see scan_test.go's overlapping-prefixes scenario). merged is
// retained here because it is the correct, useful answer to a different
// question - "what would a classical single-pass automaton report from
// this state" - and building it is how failure link correctness gets
// tested independently of the scan kernel.
//
// The queue is a plain growable slice; the pattern set always fits, so
// ErrTooManyPatterns is never actually returned by this construction, but
// the sentinel is kept for parity with a bounded-queue implementation.
func buildFailure(states []trieState) (failure []int32, merged [][]uint32) {
	n := len(states)
	failure = make([]int32, n)
	merged = make([][]uint32, n)
	for i, s := range states {
		if len(s.output) > 0 {
			merged[i] = append([]uint32(nil), s.output...)
		}
	}

	queue := make([]int32, 0, n)
	for c := 0; c < 256; c++ {
		s := states[0].trans[c]
		if s != 0 {
			failure[s] = 0
			queue = append(queue, s)
		}
	}

	for len(queue) > 0 {
		r := queue[0]
		queue = queue[1:]

		for c := 0; c < 256; c++ {
			u := states[r].trans[c]
			if u == -1 {
				continue
			}
			queue = append(queue, u)

			state := failure[r]
			for states[state].trans[c] == -1 {
				state = failure[state]
			}
			failure[u] = states[state].trans[c]

			if fout := merged[failure[u]]; len(fout) > 0 {
				merged[u] = mergeUniqueU32(merged[u], fout)
			}
		}
	}

	return failure, merged
}

func mergeUniqueU32(dst, src []uint32) []uint32 {
	for _, v := range src {
		dst = appendUniqueU32(dst, v)
	}
	return dst
}
