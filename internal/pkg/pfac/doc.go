// Package pfac implements a multi-pattern exact-string matching engine
// based on the Aho-Corasick construction, augmented with a "parallel
// failureless" (PFAC) search loop that restarts the automaton at every
// byte offset of the input.
//
// A Context accumulates patterns via AddPatternCaseSensitive and
// AddPatternCaseInsensitive, is frozen with Prepare, and is then scanned
// any number of times with Scan. Construction is single-goroutine; once
// prepared, a Context is immutable and safe for concurrent Scan calls
// provided each caller supplies its own ThreadContext and Sink.
package pfac
