package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/dustin/go-humanize"
)

const (
	DefaultWindowSize    = 250
	DefaultLengthWeight  = 1.0
	DefaultMeanQWeight   = 1.0
	DefaultWindowQWeight = 1.0
)

// Config is the single, explicit configuration value threaded through the
// scorer, trim/split processor and selector. It replaces the teacher's (and
// Filtlong's) global mutable option state.
type Config struct {
	InFiles []string
	OutFile string

	TargetBases  int64
	HasTarget    bool
	KeepPercent  float64
	HasKeepPct   bool

	MinLength int64
	HasMinLen bool
	MaxLength int64
	HasMaxLen bool

	MinMeanQ   float64
	HasMinMeanQ bool
	MinWindowQ  float64
	HasMinWinQ  bool

	WindowSize int

	LengthWeight  float64
	MeanQWeight   float64
	WindowQWeight float64

	AssemblyRef string
	Reads1Ref   string
	Reads2Ref   string

	Trim      bool
	Split     int64
	HasSplit  bool

	Verbose bool
}

func newDefaultConfig() *Config {
	return &Config{
		WindowSize:    DefaultWindowSize,
		LengthWeight:  DefaultLengthWeight,
		MeanQWeight:   DefaultMeanQWeight,
		WindowQWeight: DefaultWindowQWeight,
	}
}

// HasReference reports whether an assembly or paired-read reference was
// supplied.
func (c *Config) HasReference() bool {
	return c.AssemblyRef != "" || (c.Reads1Ref != "" && c.Reads2Ref != "")
}

// parseSizeArg parses a size value with an optional k/kb/m/mb/g/gb suffix
// (case-insensitive, decimal multipliers) into ceil(number * multiplier).
// The multiplier comes from humanize.ParseBytes' decimal-suffix behavior
// (k=1000, not 1024), which matches the suffix semantics Filtlong's test
// suite pins down in original_source/test/test_unit_suffixes.py.
func parseSizeArg(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, fmt.Errorf("invalid value %q", value)
	}

	split := strings.IndexFunc(trimmed, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '.' && r != ','
	})
	if split < 0 {
		split = len(trimmed)
	}
	number, err := strconv.ParseFloat(strings.ReplaceAll(trimmed[:split], ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q", value)
	}
	multiplier, err := humanize.ParseBytes("1" + strings.TrimSpace(trimmed[split:]))
	if err != nil {
		return 0, fmt.Errorf("invalid value %q", value)
	}
	return int64(math.Ceil(number * float64(multiplier))), nil
}

// parsePositiveSizeArg parses a size argument and rejects non-positive
// results, producing the exact error text Filtlong uses for the named flag.
func parsePositiveSizeArg(flagName, value string) (int64, error) {
	// parseSizeArg does not accept a sign, so a leading '-' has to be
	// detected before parsing to report it as a non-positive value.
	if strings.HasPrefix(strings.TrimSpace(value), "-") {
		return 0, fmt.Errorf("the value for --%s must be a positive integer", flagName)
	}
	n, err := parseSizeArg(value)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q for --%s", value, flagName)
	}
	if n <= 0 {
		return 0, fmt.Errorf("the value for --%s must be a positive integer", flagName)
	}
	return n, nil
}

// formatBP renders a base count with locale-style comma grouping and a "bp"
// suffix, e.g. "10,001 bp".
func formatBP(n int64) string {
	return humanize.Comma(n) + " bp"
}

// validateConfig enforces spec.md §4.4/§4.5/§7's configuration-error rules.
// All returned errors are fatal and should be reported with a leading
// "Error: " prefix and exit code 1.
func validateConfig(c *Config) error {
	if len(c.InFiles) == 0 {
		return fmt.Errorf("input file is required")
	}

	if !c.HasTarget && !c.HasKeepPct && !c.HasMinLen && !c.HasMaxLen &&
		!c.HasMinMeanQ && !c.HasMinWinQ {
		return fmt.Errorf("no thresholds set")
	}

	if c.HasTarget && c.TargetBases <= 0 {
		return fmt.Errorf("the value for --target_bases must be a positive integer")
	}
	if c.HasKeepPct && (c.KeepPercent <= 0 || c.KeepPercent >= 100) {
		return fmt.Errorf("the value for --keep_percent must be greater than 0 and less than 100")
	}
	if c.HasMinLen && c.MinLength <= 0 {
		return fmt.Errorf("the value for --min_length must be a positive integer")
	}
	if c.HasMaxLen && c.MaxLength <= 0 {
		return fmt.Errorf("the value for --max_length must be a positive integer")
	}
	if c.HasMinMeanQ && c.MinMeanQ <= 0 {
		return fmt.Errorf("the value for --min_mean_q must be greater than 0")
	}
	if c.HasMinWinQ && c.MinWindowQ <= 0 {
		return fmt.Errorf("the value for --min_window_q must be greater than 0")
	}
	if c.WindowSize <= 0 {
		return fmt.Errorf("the value for --window_size must be a positive integer")
	}
	if c.LengthWeight < 0 || c.MeanQWeight < 0 || c.WindowQWeight < 0 {
		return fmt.Errorf("weight options must be non-negative")
	}

	if c.Trim && !c.HasReference() {
		return fmt.Errorf("assembly or read reference is required to use --trim")
	}
	if c.HasSplit && !c.HasReference() {
		return fmt.Errorf("assembly or read reference is required to use --split")
	}
	if c.HasSplit && c.Split <= 0 {
		return fmt.Errorf("the value for --split must be a positive integer")
	}
	if (c.Reads1Ref == "") != (c.Reads2Ref == "") {
		return fmt.Errorf("both -1 and -2 are required to use a paired-read reference")
	}

	return nil
}
