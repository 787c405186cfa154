package pfac

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/multipattern/pfacmatch/internal/pkg/logger"
)

// PatternSpec is the caller-facing description of one pattern, independent
// of any prepared Context. BufferedContext accepts a whole set of these on
// every update; there is no incremental add or remove.
type PatternSpec struct {
	ID     uint32
	Bytes  []byte
	NoCase bool
}

// BufferedContext holds a hot-swappable, prepared Context behind an
// atomic pointer: Scan is lock-free and always runs against the most
// recently completed build, while UpdatePatterns rebuilds a brand new
// Context off the hot path and swaps it in once Prepare succeeds.
//
// The rebuild-then-swap shape exists because a network-facing pattern set
// changes far less often than it is scanned against, and a scan goroutine
// must never block on a rebuild.
type BufferedContext struct {
	current atomic.Pointer[Context]
	opts    []Option

	specs   []PatternSpec
	specsMu sync.RWMutex

	buildMu  sync.Mutex
	building atomic.Bool

	lastBuildTime     atomic.Value // time.Time
	lastBuildDuration atomic.Value // time.Duration
}

// NewBufferedContext creates a BufferedContext with no patterns loaded;
// Scan reports no matches until the first UpdatePatterns/UpdatePatternsSync
// call succeeds. opts are applied to every rebuilt Context.
func NewBufferedContext(opts ...Option) *BufferedContext {
	bc := &BufferedContext{opts: opts}
	bc.lastBuildTime.Store(time.Time{})
	bc.lastBuildDuration.Store(time.Duration(0))
	return bc
}

// UpdatePatterns replaces the pattern set and rebuilds the automaton in a
// background goroutine. Scan continues to use the previous automaton (or
// reports no matches, if none has ever built successfully) until the
// rebuild completes and swaps in.
func (bc *BufferedContext) UpdatePatterns(specs []PatternSpec) {
	bc.setSpecs(specs)
	go func() {
		if err := bc.rebuild(); err != nil {
			logger.Error("pfac: background rebuild failed", "error", err)
		}
	}()
}

// UpdatePatternsSync replaces the pattern set and blocks until the rebuild
// completes, returning any construction error.
func (bc *BufferedContext) UpdatePatternsSync(specs []PatternSpec) error {
	bc.setSpecs(specs)
	return bc.rebuild()
}

func (bc *BufferedContext) setSpecs(specs []PatternSpec) {
	bc.specsMu.Lock()
	bc.specs = append([]PatternSpec(nil), specs...)
	bc.specsMu.Unlock()
}

func (bc *BufferedContext) rebuild() error {
	bc.buildMu.Lock()
	defer bc.buildMu.Unlock()

	bc.building.Store(true)
	defer bc.building.Store(false)

	bc.specsMu.RLock()
	specs := append([]PatternSpec(nil), bc.specs...)
	bc.specsMu.RUnlock()

	next := NewContext(bc.opts...)
	for _, s := range specs {
		var err error
		if s.NoCase {
			err = next.AddPatternCaseInsensitive(s.Bytes, s.ID, 0, 0, 0)
		} else {
			err = next.AddPatternCaseSensitive(s.Bytes, s.ID, 0, 0, 0)
		}
		if err != nil {
			logger.Error("pfac: failed to add pattern during rebuild", "id", s.ID, "error", err)
			return err
		}
	}

	start := time.Now()
	if err := next.Prepare(); err != nil {
		logger.Error("pfac: failed to prepare rebuilt context", "error", err, "pattern_count", len(specs))
		return err
	}
	buildDuration := time.Since(start)

	// The old Context is not Close()'d here: a concurrent Scan may still
	// hold its pointer past this Swap, and Close mutates state Scan reads
	// unsynchronized. It is simply dropped and left for the garbage
	// collector once every in-flight Scan against it returns.
	bc.current.Swap(next)
	bc.lastBuildTime.Store(time.Now())
	bc.lastBuildDuration.Store(buildDuration)

	logger.Info("pfac: automaton rebuilt",
		"pattern_count", len(specs),
		"build_duration", buildDuration,
		"states", next.Stats().StateCount)

	return nil
}

// Scan runs the current automaton, if any, against buf. It is safe to call
// concurrently with UpdatePatterns/UpdatePatternsSync and with other Scan
// calls, provided each caller supplies its own ThreadContext and Sink.
func (bc *BufferedContext) Scan(tc *ThreadContext, sink *Sink, buf []byte) uint32 {
	ctx := bc.current.Load()
	if ctx == nil {
		return 0
	}
	return ctx.Scan(tc, sink, buf)
}

// IsBuilding reports whether a rebuild is currently running.
func (bc *BufferedContext) IsBuilding() bool {
	return bc.building.Load()
}

// HasContext reports whether a build has ever completed successfully.
func (bc *BufferedContext) HasContext() bool {
	return bc.current.Load() != nil
}

// LastBuildTime returns when the current automaton finished building.
func (bc *BufferedContext) LastBuildTime() time.Time {
	if t := bc.lastBuildTime.Load(); t != nil {
		return t.(time.Time)
	}
	return time.Time{}
}

// LastBuildDuration returns how long the current automaton took to build.
func (bc *BufferedContext) LastBuildDuration() time.Duration {
	if d := bc.lastBuildDuration.Load(); d != nil {
		return d.(time.Duration)
	}
	return 0
}

// BufferedStats summarizes a BufferedContext for diagnostics.
type BufferedStats struct {
	Stats
	IsBuilding        bool
	LastBuildTime     time.Time
	LastBuildDuration time.Duration
}

// Stats returns a snapshot combining the current Context's Stats with
// rebuild bookkeeping.
func (bc *BufferedContext) Stats() BufferedStats {
	s := BufferedStats{
		IsBuilding:        bc.IsBuilding(),
		LastBuildTime:     bc.LastBuildTime(),
		LastBuildDuration: bc.LastBuildDuration(),
	}
	if ctx := bc.current.Load(); ctx != nil {
		s.Stats = ctx.Stats()
	}
	return s
}
