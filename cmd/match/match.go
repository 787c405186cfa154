package match

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/multipattern/pfacmatch/internal/pkg/cmdutil"
	"github.com/multipattern/pfacmatch/internal/pkg/logger"
	"github.com/multipattern/pfacmatch/internal/pkg/pfac"
	"github.com/spf13/cobra"
)

var MatchCmd = &cobra.Command{
	Use:   "match",
	Short: "Scan input against a pattern file",
	Long:  `Load a YAML pattern file, build the automaton once, and scan an input file (or stdin) for every occurrence.`,
	RunE:  runMatchCmd,
}

var (
	patternsPath string
	inputPath    string
	wideIDs      bool
	force32      bool
	noLevel1Gap  bool
)

func init() {
	MatchCmd.Flags().StringVarP(&patternsPath, "patterns", "p", "", "path to a YAML pattern file (required)")
	MatchCmd.Flags().StringVarP(&inputPath, "input", "i", "", "path to the input file to scan (default: stdin)")
	MatchCmd.Flags().BoolVar(&wideIDs, "wide-ids", false, "allow pattern ids at or above 1<<16")
	MatchCmd.Flags().BoolVar(&force32, "force32", false, "always use the 32-bit delta table variant")
	MatchCmd.Flags().BoolVar(&noLevel1Gap, "no-level1-gap", false, "skip the depth-1 gap pre-fill optimization")
	_ = MatchCmd.MarkFlagRequired("patterns")
}

func runMatchCmd(cmd *cobra.Command, args []string) error {
	patternsPath = cmdutil.GetStringConfig("patterns", patternsPath)
	inputPath = cmdutil.GetStringConfig("input", inputPath)

	in, closeFn, err := openInput(inputPath)
	if err != nil {
		return err
	}
	defer closeFn()

	result, err := runMatch(patternsPath, in, buildOptions())
	if err != nil {
		return err
	}

	printResult(cmd.OutOrStdout(), result)
	return nil
}

func buildOptions() []pfac.Option {
	var opts []pfac.Option
	if wideIDs {
		opts = append(opts, pfac.WithWideIDs())
	}
	if force32 {
		opts = append(opts, pfac.WithForce32BitTable())
	}
	if noLevel1Gap {
		opts = append(opts, pfac.WithoutLevel1Gap())
	}
	return opts
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// matchResult is the outcome of one match run, kept separate from CLI I/O
// so runMatch stays a plain, testable function.
type matchResult struct {
	IDs []uint32
	Raw uint32
}

func runMatch(patternsPath string, input io.Reader, opts []pfac.Option) (matchResult, error) {
	specs, err := pfac.LoadPatternFile(patternsPath)
	if err != nil {
		return matchResult{}, err
	}

	var maxID uint32
	for _, s := range specs {
		if s.ID > maxID {
			maxID = s.ID
		}
	}

	ctx := pfac.NewContext(opts...)
	for _, s := range specs {
		if s.NoCase {
			err = ctx.AddPatternCaseInsensitive(s.Bytes, s.ID, 0, 0, 0)
		} else {
			err = ctx.AddPatternCaseSensitive(s.Bytes, s.ID, 0, 0, 0)
		}
		if err != nil {
			return matchResult{}, fmt.Errorf("add pattern %d: %w", s.ID, err)
		}
	}
	if err := ctx.Prepare(); err != nil {
		return matchResult{}, fmt.Errorf("prepare: %w", err)
	}
	defer ctx.Close()

	buf, err := io.ReadAll(input)
	if err != nil {
		return matchResult{}, fmt.Errorf("read input: %w", err)
	}

	sink := pfac.NewSink(maxID)
	tc := pfac.NewThreadContext(0)
	raw := ctx.Scan(tc, sink, buf)

	logger.Debug("pfacmatch: scan complete", "patterns", len(specs), "bytes", len(buf), "raw_matches", raw)

	return matchResult{IDs: sink.IDs(), Raw: raw}, nil
}

func printResult(w io.Writer, result matchResult) {
	ids := append([]uint32(nil), result.IDs...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		fmt.Fprintf(w, "%d\n", id)
	}
	fmt.Fprintf(w, "matched %d distinct id(s), %d raw occurrence(s)\n", len(ids), result.Raw)
}
