// longfilt filters long reads (PacBio/Nanopore) by quality: Phred quality
// fused with optional reference-derived k-mer identity, optional trim/split
// of low-quality regions, and a budgeted selection of the reads that best
// fill a requested base target.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// VERSION is bumped on release; reported by --version.
const VERSION = "1.0.0"

// exitFunc is a seam for tests to intercept process termination (mirrors
// the teacher's exitFunc variable in phredsort.go).
var exitFunc = os.Exit

var (
	cfg = newDefaultConfig()

	inFiles        string
	targetBasesArg string
	minLengthArg   string
	maxLengthArg   string
	splitArg       string
	showVersion    bool
)

func main() {
	root := &cobra.Command{
		Use:           "longfilt",
		Short:         "quality filtering for long-read sequencing data",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runLongfilt,
	}
	root.SetHelpFunc(helpFunc)

	flags := root.Flags()
	flags.StringVarP(&inFiles, "in", "i", "", "input read file(s), comma-separated ('-' for stdin)")
	flags.StringVarP(&cfg.OutFile, "out", "o", "", "output file ('-' for stdout)")
	flags.StringVar(&targetBasesArg, "target_bases", "", "total-bases budget (accepts k/kb/m/mb/g/gb suffixes)")
	flags.Float64Var(&cfg.KeepPercent, "keep_percent", 0, "percent-bases budget, in (0, 100)")
	flags.StringVarP(&minLengthArg, "min_length", "l", "", "hard length floor")
	flags.StringVarP(&maxLengthArg, "max_length", "L", "", "hard length ceiling")
	flags.Float64Var(&cfg.MinMeanQ, "min_mean_q", 0, "hard mean-quality floor")
	flags.Float64Var(&cfg.MinWindowQ, "min_window_q", 0, "hard window-quality floor")
	flags.IntVar(&cfg.WindowSize, "window_size", DefaultWindowSize, "sliding window width W")
	flags.Float64Var(&cfg.LengthWeight, "length_weight", DefaultLengthWeight, "length-score scaling")
	flags.Float64Var(&cfg.MeanQWeight, "mean_q_weight", DefaultMeanQWeight, "mean-quality scaling in final score")
	flags.Float64Var(&cfg.WindowQWeight, "window_q_weight", DefaultWindowQWeight, "window-quality scaling in final score")
	flags.StringVarP(&cfg.AssemblyRef, "assembly", "a", "", "assembly FASTA reference")
	flags.StringVarP(&cfg.Reads1Ref, "reads1", "1", "", "paired short-read FASTQ reference, mate 1")
	flags.StringVarP(&cfg.Reads2Ref, "reads2", "2", "", "paired short-read FASTQ reference, mate 2")
	flags.BoolVar(&cfg.Trim, "trim", false, "trim low-quality head/tail (requires a reference)")
	flags.StringVar(&splitArg, "split", "", "split at bad runs of this length or longer (requires a reference)")
	flags.BoolVar(&cfg.Verbose, "verbose", false, "richer progress output")
	flags.BoolVarP(&showVersion, "version", "v", false, "print the version and exit")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, red("Error: "+err.Error()))
		exitFunc(1)
	}
}

func runLongfilt(cmd *cobra.Command, args []string) error {
	if showVersion {
		fmt.Printf("longfilt %s\n", VERSION)
		exitFunc(0)
		return nil
	}

	if err := finishFlagParsing(cmd); err != nil {
		return err
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	ref, err := BuildReferenceIndex(cfg)
	if err != nil {
		return err
	}
	if cfg.Verbose && ref != nil {
		fmt.Fprintf(os.Stderr, "reference index: %s distinct 16-mers\n", humanize.Comma(int64(ref.Len())))
	}

	reads, stats, err := Ingest(cfg, ref)
	if err != nil {
		return err
	}

	if cfg.Trim || cfg.HasSplit {
		verb := "trimming"
		if cfg.HasSplit {
			verb = "splitting"
		}
		fmt.Fprintf(os.Stderr, "after %s: %s reads (%s)\n",
			verb, humanize.Comma(int64(stats.ReadsAfterTS)), formatBP(stats.BasesAfterTS))
	}

	if cfg.HasTarget {
		fmt.Fprintf(os.Stderr, "target: %s\n", formatBP(cfg.TargetBases))
	}

	selected := Select(reads, cfg)
	kept := TotalBases(selected)

	if cfg.HasTarget && kept < cfg.TargetBases {
		fmt.Fprintln(os.Stderr, "not enough reads to reach target")
	}
	fmt.Fprintf(os.Stderr, "keeping %s\n", formatBP(kept))

	if err := Emit(selected, cfg.OutFile); err != nil {
		return err
	}
	return nil
}

// finishFlagParsing turns the string-typed CLI flags (which accept
// size-suffixed values) into the Config's numeric fields, and records
// which optional thresholds were actually supplied.
func finishFlagParsing(cmd *cobra.Command) error {
	if strings.TrimSpace(inFiles) != "" {
		for _, f := range strings.Split(inFiles, ",") {
			f = strings.TrimSpace(f)
			if f != "" {
				cfg.InFiles = append(cfg.InFiles, f)
			}
		}
	}

	changed := cmd.Flags().Changed

	if targetBasesArg != "" {
		n, err := parsePositiveSizeArg("target_bases", targetBasesArg)
		if err != nil {
			return err
		}
		cfg.TargetBases = n
		cfg.HasTarget = true
	}
	cfg.HasKeepPct = changed("keep_percent")
	if minLengthArg != "" {
		n, err := parsePositiveSizeArg("min_length", minLengthArg)
		if err != nil {
			return err
		}
		cfg.MinLength = n
		cfg.HasMinLen = true
	}
	if maxLengthArg != "" {
		n, err := parsePositiveSizeArg("max_length", maxLengthArg)
		if err != nil {
			return err
		}
		cfg.MaxLength = n
		cfg.HasMaxLen = true
	}
	cfg.HasMinMeanQ = changed("min_mean_q")
	cfg.HasMinWinQ = changed("min_window_q")
	if splitArg != "" {
		n, err := parsePositiveSizeArg("split", splitArg)
		if err != nil {
			return err
		}
		cfg.Split = n
		cfg.HasSplit = true
	}

	return nil
}
