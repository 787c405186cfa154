package pfac

import "errors"

var (
	// ErrAlreadyPrepared is returned by Prepare when called more than once
	// on the same Context.
	ErrAlreadyPrepared = errors.New("pfac: context already prepared")

	// ErrTooManyPatterns is reserved for a queue-overflow condition during
	// automaton construction. Every internal queue here (trie insertion,
	// buildFailure's BFS) is a growable slice, so this is unreachable in
	// practice; it is kept so a caller checking for it against a future
	// bounded-queue implementation still compiles.
	ErrTooManyPatterns = errors.New("pfac: too many patterns for construction queue")

	// ErrPatternIDOverflow is returned by Prepare when a pattern id is
	// >= 1<<16 and the Context was not created with WithWideIDs. Without
	// WithWideIDs, pattern ids are packed into the low 16 bits of each
	// output-table entry; ids at or above 1<<16 would collide.
	ErrPatternIDOverflow = errors.New("pfac: pattern id exceeds 16 bits; use WithWideIDs")

	// ErrStateOverflow is returned by Prepare when the automaton has too
	// many states to address with the selected table width.
	ErrStateOverflow = errors.New("pfac: state count exceeds table width")
)
