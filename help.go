package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// helpFunc prints a colorized usage banner, in the teacher's style, instead
// of cobra's default help renderer.
func helpFunc(cmd *cobra.Command, args []string) {
	fmt.Printf(`
%s

%s
  Filter long reads (PacBio/Nanopore) by quality. Combines Phred quality
  with optional reference-derived k-mer identity, optionally trims or
  splits low-quality regions, and selects the reads that best meet a
  requested base budget.

%s
  %s
  %s
  %s
  %s
  %s
  %s
  %s
  %s
  %s
  %s
  %s
  %s
  %s
  %s
  %s
  %s

%s
  # Keep everything above a mean quality floor
  %s

  # Keep the best 500 Mbp by length/quality, using an assembly reference
  %s

  # Trim low-quality flanks and split at long bad stretches
  %s

%s
  https://github.com/vmikk/longfilt

`,
		bold(getColorizedLogo()+" - quality filtering for long-read sequencing data"),
		bold(yellow("Description:")),
		bold(yellow("Flags:")),
		cyan("-i, --in")+" <string>          : Input read file(s), comma-separated (required, use '-' for stdin)",
		cyan("-o, --out")+" <string>         : Output file (default: stdout, also '-')",
		cyan("--target_bases")+" <size>      : total-bases budget (accepts k/kb/m/mb/g/gb suffixes)",
		cyan("--keep_percent")+" <float>     : percent-bases budget, in (0, 100)",
		cyan("-l, --min_length")+" <size>    : hard length floor",
		cyan("-L, --max_length")+" <size>    : hard length ceiling",
		cyan("--min_mean_q")+" <float>       : hard mean-quality floor",
		cyan("--min_window_q")+" <float>     : hard window-quality floor",
		cyan("--window_size")+" <int>        : sliding window width W (default 250)",
		cyan("--length_weight")+" <float>    : length-score scaling (default 1.0)",
		cyan("--mean_q_weight")+" <float>    : mean-quality scaling in final score (default 1.0)",
		cyan("--window_q_weight")+" <float>  : window-quality scaling in final score (default 1.0)",
		cyan("-a")+" <path>                  : assembly FASTA reference",
		cyan("-1, -2")+" <path>              : paired short-read FASTQ reference",
		cyan("--trim")+"                     : trim low-quality head/tail (requires a reference)",
		cyan("--split")+" <size>             : split at bad runs of this length or longer (requires a reference)",
		cyan("--verbose")+"                  : richer progress output",
		bold(yellow("Examples:")),
		cyan("longfilt --min_mean_q 90 -i input.fastq.gz -o filtered.fastq.gz"),
		cyan("longfilt -a assembly.fasta --target_bases 500m -i input.fastq.gz -o filtered.fastq.gz"),
		cyan("longfilt -a assembly.fasta --trim --split 1000 -i input.fastq.gz -o filtered.fastq.gz"),
		bold(yellow("More information:")),
	)
}
