package main

import "testing"

func TestPhredBaseQuality(t *testing.T) {
	tests := []struct {
		name string
		q    byte
		want float64
	}{
		{name: "Phred 40 (very high)", q: 'I', want: 99.99},  // ASCII 73 -> Phred 40
		{name: "Phred 0 (minimum)", q: '!', want: 0.0},        // ASCII 33 -> Phred 0
		{name: "Phred 10", q: '+', want: 90.0},                 // ASCII 43 -> Phred 10
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := phredBaseQuality(tt.q)
			if diff := got - tt.want; diff > 0.01 || diff < -0.01 {
				t.Errorf("phredBaseQuality(%q) = %v, want ~%v", tt.q, got, tt.want)
			}
		})
	}
}

func TestBuildQualityVectorPhredOnly(t *testing.T) {
	r := newRead("r1", "r1", []byte("ACGTACGTAC"), []byte("IIIIIIIIII"), 0)
	vec := buildQualityVector(r, nil, DefaultLowRefQuality)
	if len(vec) != 10 {
		t.Fatalf("expected a 10-element vector, got %d", len(vec))
	}
	for i, v := range vec {
		if v < 99 || v > 100 {
			t.Errorf("vec[%d] = %v, want ~100 for Phred 40 bases", i, v)
		}
	}
}

func TestBuildQualityVectorNoPhredNoRef(t *testing.T) {
	r := newRead("r1", "r1", []byte("ACGTACGTAC"), nil, 0)
	vec := buildQualityVector(r, nil, DefaultLowRefQuality)
	for i, v := range vec {
		if v != 100 {
			t.Errorf("vec[%d] = %v, want 100 when no Phred and no reference", i, v)
		}
	}
}

func TestBuildQualityVectorFusesPhredAndReference(t *testing.T) {
	ref := NewKmerSet(16)
	seq16 := []byte("ACGTACGTACGTACGT")
	ref.addSequence(seq16)

	r := newRead("r1", "r1", seq16, []byte("IIIIIIIIIIIIIIII"), 0)
	vec := buildQualityVector(r, ref, 0)
	for i, v := range vec {
		// Fully covered by the reference and high Phred quality both -> near 100.
		if v < 95 {
			t.Errorf("vec[%d] = %v, want near 100 when both signals agree", i, v)
		}
	}
}

func TestReferenceQualityVectorUncoveredBasesGetLowValue(t *testing.T) {
	ref := NewKmerSet(16)
	ref.addSequence([]byte("AAAAAAAAAAAAAAAA"))

	bases := []byte("CCCCCCCCCCCCCCCCCCCC") // unrelated, 20 bases
	vec := referenceQualityVector(bases, ref, 5.0)
	for i, v := range vec {
		if v != 5.0 {
			t.Errorf("refQ[%d] = %v, want low-ref-quality 5.0 for an uncovered base", i, v)
		}
	}
}

func TestReadHasQualities(t *testing.T) {
	withQual := newRead("r1", "r1", []byte("ACGT"), []byte("IIII"), 0)
	if !withQual.HasQualities() {
		t.Errorf("expected HasQualities() true when quality length matches sequence length")
	}

	withoutQual := newRead("r2", "r2", []byte("ACGT"), nil, 0)
	if withoutQual.HasQualities() {
		t.Errorf("expected HasQualities() false for a FASTA-derived read")
	}
}
