package pfac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContext_AddThenPrepareThenScan(t *testing.T) {
	ctx := NewContext()
	require.NoError(t, ctx.AddPatternCaseSensitive([]byte("needle"), 1, 0, 0, 0))
	require.NoError(t, ctx.Prepare())

	sink := NewSink(2)
	raw := ctx.Scan(nil, sink, []byte("a needle in a haystack"))
	assert.Equal(t, uint32(1), raw)
	assert.Equal(t, []uint32{1}, sink.IDs())
}

func TestContext_ScanWithNilThreadContextDoesNotPanic(t *testing.T) {
	ctx := NewContext()
	require.NoError(t, ctx.Prepare())
	assert.NotPanics(t, func() {
		ctx.Scan(nil, NewSink(1), []byte("anything"))
	})
}

func TestContext_ScanRecordsThreadStats(t *testing.T) {
	ctx := NewContext()
	require.NoError(t, ctx.AddPatternCaseSensitive([]byte("ab"), 0, 0, 0, 0))
	require.NoError(t, ctx.Prepare())

	tc := NewThreadContext(0)
	ctx.Scan(tc, NewSink(1), []byte("abab"))

	stats := tc.Stats()
	assert.EqualValues(t, 1, stats.Scans)
	assert.EqualValues(t, 4, stats.BytesSeen)
	assert.EqualValues(t, 2, stats.RawMatches)
}

func TestContext_StatsReflectsPreparedAutomaton(t *testing.T) {
	ctx := NewContext()
	require.NoError(t, ctx.AddPatternCaseSensitive([]byte("a"), 0, 0, 0, 0))
	require.NoError(t, ctx.AddPatternCaseSensitive([]byte("b"), 1, 0, 0, 0))
	require.NoError(t, ctx.Prepare())

	stats := ctx.Stats()
	assert.Equal(t, 2, stats.PatternCount)
	assert.Equal(t, 16, stats.TableWidth)
	assert.Positive(t, stats.StateCount)
}

func TestContext_StatsOnEmptyPreparedContext(t *testing.T) {
	ctx := NewContext()
	require.NoError(t, ctx.Prepare())

	stats := ctx.Stats()
	assert.Equal(t, 0, stats.PatternCount)
	assert.Equal(t, 0, stats.StateCount)
	assert.Equal(t, 0, stats.TableWidth)
}

func TestContext_CloseClearsCompiledAutomaton(t *testing.T) {
	ctx := NewContext()
	require.NoError(t, ctx.AddPatternCaseSensitive([]byte("a"), 0, 0, 0, 0))
	require.NoError(t, ctx.Prepare())

	ctx.Close()

	// scanning a closed Context is defined as reporting no matches, not a panic
	raw := ctx.Scan(nil, NewSink(1), []byte("a"))
	assert.Zero(t, raw)
}

func TestContext_StringIncludesCoreStats(t *testing.T) {
	ctx := NewContext()
	require.NoError(t, ctx.AddPatternCaseSensitive([]byte("a"), 0, 0, 0, 0))
	require.NoError(t, ctx.Prepare())

	s := ctx.String()
	assert.Contains(t, s, "patterns=1")
}

func TestThreadContext_StringIncludesCoreStats(t *testing.T) {
	ctx := NewContext()
	require.NoError(t, ctx.AddPatternCaseSensitive([]byte("a"), 0, 0, 0, 0))
	require.NoError(t, ctx.Prepare())

	tc := NewThreadContext(0)
	ctx.Scan(tc, NewSink(1), []byte("a"))

	assert.Contains(t, tc.String(), "raw_matches=1")
}
