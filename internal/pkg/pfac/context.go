package pfac

import (
	"fmt"

	"github.com/multipattern/pfacmatch/internal/pkg/logger"
)

// Option configures a Context at construction time.
type Option func(*options)

type options struct {
	wideIDs     bool
	force32     bool
	skipLevel1  bool
}

// WithWideIDs widens the output-table encoding to carry a full 32-bit
// pattern id plus a separate verify bit (packed into a uint64) instead of
// truncating to the low 16 bits. Use this when any pattern id may reach or
// exceed 1<<16; without it, Prepare returns ErrPatternIDOverflow for such
// ids.
func WithWideIDs() Option {
	return func(o *options) { o.wideIDs = true }
}

// WithForce32BitTable forces the 32-bit delta table variant even when the
// state count would fit in the 16-bit variant. Mirrors the reference
// implementation's global force-32 toggle, useful when a sibling matcher
// implementation requires a stable table width.
func WithForce32BitTable() Option {
	return func(o *options) { o.force32 = true }
}

// WithoutLevel1Gap disables the depth-1 gap pre-fill. The state count is
// the same either way, since insertion creates the same first-level states;
// only the numbering of those states differs.
func WithoutLevel1Gap() Option {
	return func(o *options) { o.skipLevel1 = true }
}

// Context accumulates patterns, compiles them into a delta-table
// automaton on Prepare, and serves Scan calls against the compiled
// automaton. The zero value is not usable; construct with NewContext.
type Context struct {
	opts options

	store    *patternStore
	prepared bool

	compiled *compiled

	patternCount int
	allocations  int
	memoryBytes  int64
}

// NewContext allocates a Context ready to accept patterns.
func NewContext(opts ...Option) *Context {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	return &Context{
		opts:  o,
		store: newPatternStore(),
	}
}

// AddPatternCaseSensitive adds bytes under id, requiring a byte-exact
// occurrence in scanned input. offset, depth and sid are accepted for
// call-compatibility and ignored. Returns nil for a zero-length pattern
// (logged and ignored) or a duplicate id (logged and ignored), per this
// core's dedup-by-id contract.
func (c *Context) AddPatternCaseSensitive(bytes []byte, id uint32, offset, depth int, sid uint32) error {
	return c.addPattern(bytes, id, 0, offset, depth, sid)
}

// AddPatternCaseInsensitive is AddPatternCaseSensitive with the NoCase
// flag forced on: matching is done against the ASCII-folded input and no
// case-sensitive re-check is ever performed for this id.
func (c *Context) AddPatternCaseInsensitive(bytes []byte, id uint32, offset, depth int, sid uint32) error {
	return c.addPattern(bytes, id, NoCase, offset, depth, sid)
}

func (c *Context) addPattern(bytes []byte, id uint32, flags Flags, offset, depth int, sid uint32) error {
	if c.prepared {
		return ErrAlreadyPrepared
	}
	if len(bytes) == 0 {
		logger.Debug("pfac: ignoring zero-length pattern", "id", id)
		return nil
	}
	if !c.store.add(bytes, id, flags, offset, depth, sid) {
		logger.Debug("pfac: ignoring duplicate pattern id", "id", id)
		return nil
	}
	c.allocations++
	c.memoryBytes += int64(len(bytes)) * 2 // folded + original copies
	return nil
}

// Prepare freezes the accumulated patterns and builds the compiled
// automaton. Calling Prepare a second time returns ErrAlreadyPrepared. An
// empty pattern set is not an error: Prepare succeeds and Scan will
// always report zero matches.
func (c *Context) Prepare() error {
	if c.prepared {
		return ErrAlreadyPrepared
	}
	c.prepared = true

	patterns := c.store.freeze()
	c.patternCount = len(patterns)
	if len(patterns) == 0 {
		return nil
	}

	if !c.opts.wideIDs {
		for _, p := range patterns {
			if p.ID >= 1<<16 {
				return ErrPatternIDOverflow
			}
		}
	}

	patternList := buildPatternList(patterns, c.store.maxID)

	trie := buildGoto(patterns, !c.opts.skipLevel1)
	stateCount := len(trie)
	// Failure links and their classical suffix-merged output (failure.go)
	// are not needed here: the delta table is scanned failureless with a
	// restart at every offset, so compile builds it from each state's own
	// output only. buildFailure is exercised directly by failure_test.go.

	compiled, err := compile(trie, patterns, c.opts.wideIDs, c.opts.force32)
	if err != nil {
		return err
	}
	compiled.patternList = patternList
	c.compiled = compiled

	c.allocations += stateCount + 2
	c.memoryBytes += int64(stateCount) * (256*4 + 8)

	logger.Debug("pfac: prepared context",
		"patterns", len(patterns),
		"states", stateCount,
		"wide_table", compiled.wide)

	return nil
}

// Scan runs the compiled automaton against buf, reporting every matched
// pattern id into sink and returning the raw (pre-dedup) match count. Scan
// performs no allocation on the hot path beyond the case-folded copy of
// buf, and never mutates the Context. It is safe to call concurrently from
// multiple goroutines provided each supplies its own ThreadContext and
// Sink.
func (c *Context) Scan(tc *ThreadContext, sink *Sink, buf []byte) uint32 {
	var raw uint32
	if c.compiled != nil {
		raw = c.compiled.scan(buf, sink)
	}
	if tc != nil {
		tc.recordScan(len(buf), raw)
	}
	return raw
}

// Close releases the compiled automaton and resets memory accounting. The
// Context must not be used again afterward.
func (c *Context) Close() {
	c.compiled = nil
	c.allocations = 0
	c.memoryBytes = 0
}

// Stats summarizes a prepared Context for diagnostics.
type Stats struct {
	PatternCount int
	StateCount   int
	TableWidth   int // 16 or 32; 0 if not yet prepared or empty
	Allocations  int
	MemoryBytes  int64
}

// Stats returns a snapshot of the Context's construction-time bookkeeping.
func (c *Context) Stats() Stats {
	s := Stats{
		PatternCount: c.patternCount,
		Allocations:  c.allocations,
		MemoryBytes:  c.memoryBytes,
	}
	if c.compiled != nil {
		s.StateCount = c.compiled.stateCount
		if c.compiled.wide {
			s.TableWidth = 32
		} else {
			s.TableWidth = 16
		}
	}
	return s
}

// String renders diagnostic info equivalent to the reference
// implementation's print_info.
func (c *Context) String() string {
	s := c.Stats()
	return fmt.Sprintf("pfac.Context{patterns=%d states=%d width=%d allocs=%d bytes=%d}",
		s.PatternCount, s.StateCount, s.TableWidth, s.Allocations, s.MemoryBytes)
}

// ThreadContext holds per-goroutine scan statistics. It carries no
// automaton state: the compiled Context is immutable and shared.
type ThreadContext struct {
	scans      uint64
	bytesSeen  uint64
	rawMatches uint64
}

// NewThreadContext allocates per-goroutine scan scratch. reserved is
// accepted for call-compatibility with a broader matcher-API family and is
// currently unused.
func NewThreadContext(reserved int) *ThreadContext {
	return &ThreadContext{}
}

func (tc *ThreadContext) recordScan(bytesLen int, raw uint32) {
	tc.scans++
	tc.bytesSeen += uint64(bytesLen)
	tc.rawMatches += uint64(raw)
}

// ThreadStats summarizes a ThreadContext's counters.
type ThreadStats struct {
	Scans      uint64
	BytesSeen  uint64
	RawMatches uint64
}

// Stats returns a snapshot of tc's counters.
func (tc *ThreadContext) Stats() ThreadStats {
	return ThreadStats{Scans: tc.scans, BytesSeen: tc.bytesSeen, RawMatches: tc.rawMatches}
}

// String renders diagnostic info equivalent to the reference
// implementation's print_search_stats.
func (tc *ThreadContext) String() string {
	s := tc.Stats()
	return fmt.Sprintf("pfac.ThreadContext{scans=%d bytes=%d raw_matches=%d}",
		s.Scans, s.BytesSeen, s.RawMatches)
}

// Close releases tc. Provided for lifecycle-contract parity; a
// ThreadContext holds no resources that outlive garbage collection.
func (tc *ThreadContext) Close() {}
