package main

import "math"

const PhredOffset = 33

// DefaultLowRefQuality is the quality assigned to a base not covered by any
// reference 16-mer hit (spec.md §4.2 step 2's "configured low value").
const DefaultLowRefQuality = 0.0

// OutputRange is a half-open [Start, End) subinterval of a read's sequence,
// produced by the trim/split processor (spec.md §3 invariant ii).
type OutputRange struct {
	Start int
	End   int
}

// ScoringRecord is the mutable scoring state attached to a Read once the
// scorer has run (spec.md §3).
type ScoringRecord struct {
	LengthScore    float64
	MeanQuality    float64
	WindowQuality  float64
	FinalScore     float64
	PassThresholds bool
	Ranges         []OutputRange
}

// Read is immutable after ingest except for its Score field, filled in by
// the scorer (spec.md §3). The trim/split processor does not modify a Read;
// it returns new Reads for the retained ranges.
type Read struct {
	Name      string
	Header    string
	Sequence  []byte
	Qualities []byte // nil when absent (FASTA input)
	Length    int
	Index     int // original input order, for re-sorting after selection
	Score     ScoringRecord
}

func newRead(name, header string, sequence, qualities []byte, index int) *Read {
	return &Read{
		Name:      name,
		Header:    header,
		Sequence:  sequence,
		Qualities: qualities,
		Length:    len(sequence),
		Index:     index,
		Score: ScoringRecord{
			Ranges: []OutputRange{{Start: 0, End: len(sequence)}},
		},
	}
}

// HasQualities reports whether this read carries per-base Phred scores.
func (r *Read) HasQualities() bool {
	return len(r.Qualities) == r.Length && r.Length > 0
}

var errorProbs [256]float64

func init() {
	for i := range errorProbs {
		errorProbs[i] = math.Pow(10, -float64(i-PhredOffset)/10)
	}
}

// phredBaseQuality converts one Phred+33-encoded quality byte into the
// [0,100] scale used throughout the per-base quality vector: 100*(1 -
// error probability), per spec.md §3.
func phredBaseQuality(q byte) float64 {
	return 100 * (1 - errorProbs[q])
}

// buildQualityVector constructs the transient per-base quality vector for a
// read (spec.md §3, §4.2). ref is nil when no reference k-mer set is
// configured; lowRefQuality is the quality assigned to bases not covered by
// any reference hit.
func buildQualityVector(r *Read, ref *KmerSet, lowRefQuality float64) []float64 {
	n := r.Length
	vec := make([]float64, n)

	hasPhred := r.HasQualities()
	hasRef := ref != nil

	if !hasPhred && !hasRef {
		for i := range vec {
			vec[i] = 100
		}
		return vec
	}

	var refQ []float64
	if hasRef {
		refQ = referenceQualityVector(r.Sequence, ref, lowRefQuality)
	}

	switch {
	case hasPhred && hasRef:
		for i := 0; i < n; i++ {
			vec[i] = phredBaseQuality(r.Qualities[i]) * refQ[i] / 100
		}
	case hasPhred:
		for i := 0; i < n; i++ {
			vec[i] = phredBaseQuality(r.Qualities[i])
		}
	case hasRef:
		copy(vec, refQ)
	}
	return vec
}

// referenceQualityVector computes per-base reference-identity quality
// (spec.md §4.2): a base is "covered" if any 16-mer window overlapping it
// is present (on either strand) in the reference set, scoring 100; else
// lowRefQuality.
func referenceQualityVector(bases []byte, ref *KmerSet, lowRefQuality float64) []float64 {
	n := len(bases)
	refQ := make([]float64, n)
	for i := range refQ {
		refQ[i] = lowRefQuality
	}

	if n < KmerSize {
		return refQ
	}

	for i := 0; i+KmerSize <= n; i++ {
		if !ref.Contains(bases[i : i+KmerSize]) {
			continue
		}
		end := i + KmerSize
		for j := i; j < end; j++ {
			refQ[j] = 100
		}
	}
	return refQ
}
