package main

import "fmt"

// Calibration constants for the trim/split scan (spec.md §9's Open
// Question, resolved in SPEC_FULL.md §4.3 against the shapes in
// original_source/test/test_trim.py and test_split.py). Internal, not
// exposed as CLI flags.
const (
	trimMeanQThreshold  = 90.0
	splitMeanQThreshold = 80.0
)

// TrimAndSplit applies the optional trim/split transformation to a freshly
// ingested read (spec.md §4.3), returning the resulting sub-reads in
// increasing start order. Trimming alone keeps the original name (only the
// sequence/quality slice shrinks); an actual split renames each piece
// "ORIGINAL_start-end" with 1-based inclusive coordinates against the
// original sequence. A nil/empty return means the read was dropped because
// every range narrowed to zero length.
func TrimAndSplit(r *Read, cfg *Config, ref *KmerSet) []*Read {
	if !cfg.Trim && !cfg.HasSplit {
		return []*Read{r}
	}

	vec := buildQualityVector(r, ref, DefaultLowRefQuality)
	prefix := prefixSum(vec)

	start, end := 0, r.Length
	if cfg.Trim {
		start, end = trimRange(prefix, cfg.WindowSize)
	}
	if end <= start {
		return nil
	}

	var ranges []OutputRange
	if cfg.HasSplit {
		ranges = splitRange(prefix, start, end, cfg.WindowSize, int(cfg.Split))
	} else {
		ranges = []OutputRange{{Start: start, End: end}}
	}
	if len(ranges) == 0 {
		return nil
	}

	multi := len(ranges) > 1
	reads := make([]*Read, 0, len(ranges))
	for _, rg := range ranges {
		if rg.End-rg.Start < 0 {
			continue
		}
		name := r.Name
		if multi {
			name = fmt.Sprintf("%s_%d-%d", r.Name, rg.Start+1, rg.End)
		}
		var qual []byte
		if r.HasQualities() {
			qual = r.Qualities[rg.Start:rg.End]
		}
		reads = append(reads, newRead(name, r.Header, r.Sequence[rg.Start:rg.End], qual, r.Index))
	}
	return reads
}

func prefixSum(vec []float64) []float64 {
	prefix := make([]float64, len(vec)+1)
	for i, v := range vec {
		prefix[i+1] = prefix[i] + v
	}
	return prefix
}

func windowMean(prefix []float64, start, width int) float64 {
	return (prefix[start+width] - prefix[start]) / float64(width)
}

// trimRange walks inward from each end of the read while the windowed mean
// stays below trimMeanQThreshold, shrinking the window near the boundary
// (spec.md §4.3). It returns the retained [start, end) range.
func trimRange(prefix []float64, windowSize int) (int, int) {
	n := len(prefix) - 1

	start := 0
	for start < n {
		w := windowSize
		if n-start < w {
			w = n - start
		}
		if w == 0 || windowMean(prefix, start, w) >= trimMeanQThreshold {
			break
		}
		start++
	}

	end := n
	for end > start {
		w := windowSize
		if end-start < w {
			w = end - start
		}
		if w == 0 || windowMean(prefix, end-w, w) >= trimMeanQThreshold {
			break
		}
		end--
	}

	return start, end
}

// splitRange recursively cuts [start, end) at the midpoint of any maximal
// bad run (window mean below splitMeanQThreshold) whose length reaches
// splitLen, as long as the run doesn't touch either boundary of the current
// range (spec.md §4.3: "runs touching an endpoint are trimmed, not split").
// Returned ranges are in increasing start order.
func splitRange(prefix []float64, start, end, windowSize, splitLen int) []OutputRange {
	if end <= start {
		return nil
	}

	type run struct{ start, end int }
	var runs []run
	inRun := false
	runStart := start
	for i := start; i < end; i++ {
		w := windowSize
		if end-i < w {
			w = end - i
		}
		if w == 0 {
			break
		}
		bad := windowMean(prefix, i, w) < splitMeanQThreshold
		switch {
		case bad && !inRun:
			inRun = true
			runStart = i
		case !bad && inRun:
			inRun = false
			runs = append(runs, run{runStart, i})
		}
	}
	if inRun {
		runs = append(runs, run{runStart, end})
	}

	for _, rn := range runs {
		if rn.end-rn.start < splitLen {
			continue
		}
		if rn.start == start || rn.end == end {
			continue // touches an endpoint: leave it for trimming, not splitting
		}
		mid := (rn.start + rn.end) / 2
		left := splitRange(prefix, start, mid, windowSize, splitLen)
		right := splitRange(prefix, mid, end, windowSize, splitLen)
		return append(left, right...)
	}

	return []OutputRange{{Start: start, End: end}}
}
