package pfac

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// patternFile is the on-disk YAML shape accepted by LoadPatternFile.
type patternFile struct {
	Patterns []struct {
		ID      uint32 `yaml:"id"`
		Pattern string `yaml:"pattern"`
		NoCase  bool   `yaml:"nocase"`
	} `yaml:"patterns"`
}

// LoadPatternFile reads a YAML pattern list from path and returns it as
// PatternSpecs ready for BufferedContext.UpdatePatterns or direct
// AddPatternCaseSensitive/AddPatternCaseInsensitive calls. Pattern-set
// loading is deliberately kept out of Context itself: construction stays a
// pure in-memory operation, and any number of on-disk formats can feed it.
func LoadPatternFile(path string) ([]PatternSpec, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pfac: read pattern file: %w", err)
	}

	var pf patternFile
	if err := yaml.Unmarshal(raw, &pf); err != nil {
		return nil, fmt.Errorf("pfac: parse pattern file: %w", err)
	}

	specs := make([]PatternSpec, 0, len(pf.Patterns))
	for _, p := range pf.Patterns {
		specs = append(specs, PatternSpec{
			ID:     p.ID,
			Bytes:  []byte(p.Pattern),
			NoCase: p.NoCase,
		})
	}
	return specs, nil
}
