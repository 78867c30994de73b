package main

import (
	"sort"

	"github.com/shenwei356/natsort"
)

// PassesHardThresholds reports whether a read clears the hard length/quality
// floors (spec.md §4.4). Reads that fail are dropped outright, before any
// budget is considered.
func PassesHardThresholds(r *Read, cfg *Config) bool {
	if cfg.HasMinLen && int64(r.Length) < cfg.MinLength {
		return false
	}
	if cfg.HasMaxLen && int64(r.Length) > cfg.MaxLength {
		return false
	}
	if cfg.HasMinMeanQ && r.Score.MeanQuality < cfg.MinMeanQ {
		return false
	}
	if cfg.HasMinWinQ && r.Score.WindowQuality < cfg.MinWindowQ {
		return false
	}
	return true
}

// byScoreDesc orders reads by descending final score, breaking ties with a
// natural-order name comparison — the same value-then-name shape as the
// teacher's QualityFloatList/ReversedQualityFloatList, adapted to a single
// descending-quality ordering since there is no --reverse flag here.
type byScoreDesc []*Read

func (l byScoreDesc) Len() int      { return len(l) }
func (l byScoreDesc) Swap(i, j int) { l[i], l[j] = l[j], l[i] }
func (l byScoreDesc) Less(i, j int) bool {
	if l[i].Score.FinalScore != l[j].Score.FinalScore {
		return l[i].Score.FinalScore > l[j].Score.FinalScore
	}
	return natsort.Compare(l[i].Name, l[j].Name)
}

// Select applies the hard thresholds and, if a budget (--target_bases or
// --keep_percent) is set, the quality-maximizing budgeted selection of
// spec.md §4.4: reads are ranked by final score and kept greedily until the
// cumulative base count reaches the budget, overshooting by at most one
// read. The result is re-sorted back into original input order, ready for
// emission.
func Select(reads []*Read, cfg *Config) []*Read {
	kept := make([]*Read, 0, len(reads))
	for _, r := range reads {
		if PassesHardThresholds(r, cfg) {
			kept = append(kept, r)
		}
	}

	if !cfg.HasTarget && !cfg.HasKeepPct {
		return reorderOriginal(kept)
	}

	target := targetBases(kept, cfg)

	ranked := make([]*Read, len(kept))
	copy(ranked, kept)
	sort.Stable(byScoreDesc(ranked))

	selected := make([]*Read, 0, len(ranked))
	var total int64
	for _, r := range ranked {
		if total >= target {
			break
		}
		selected = append(selected, r)
		total += int64(r.Length)
	}

	return reorderOriginal(selected)
}

// TotalBases sums the sequence lengths of a read slice, used both for
// --keep_percent's budget and for the "keeping N bp" progress line.
func TotalBases(reads []*Read) int64 {
	var total int64
	for _, r := range reads {
		total += int64(r.Length)
	}
	return total
}

// targetBases computes the effective bases budget: when both
// --target_bases and --keep_percent are set, spec.md §4.4 takes the
// smaller of the two.
func targetBases(kept []*Read, cfg *Config) int64 {
	keepPctBases := int64(float64(TotalBases(kept)) * cfg.KeepPercent / 100)
	switch {
	case cfg.HasTarget && cfg.HasKeepPct:
		if cfg.TargetBases < keepPctBases {
			return cfg.TargetBases
		}
		return keepPctBases
	case cfg.HasTarget:
		return cfg.TargetBases
	default:
		return keepPctBases
	}
}

func reorderOriginal(reads []*Read) []*Read {
	out := make([]*Read, len(reads))
	copy(out, reads)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}
