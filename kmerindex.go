package main

import (
	"fmt"
	"io"

	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"
	"github.com/shenwei356/unikmer"
)

// KmerSize is the fixed reference k-mer width (spec.md §3).
const KmerSize = 16

// KmerSet is a read-only (after construction) membership predicate over
// canonical 16-mers. Canonicalizing each k-mer to min(forward, revcomp) via
// unikmer.KmerCode.Canonical halves memory and makes "present on either
// strand" automatic: a canonical code represents both orientations, so a
// single insertion per forward-strand position already covers both strands.
// addSequence still scans the reverse-complement strand as well; with
// canonical codes that second scan inserts no code the forward scan has not
// already inserted.
type KmerSet struct {
	codes map[uint64]struct{}
}

// NewKmerSet creates an empty k-mer set sized for the given number of
// distinct k-mers expected (a hint only; Go maps grow as needed).
func NewKmerSet(sizeHint int) *KmerSet {
	return &KmerSet{codes: make(map[uint64]struct{}, sizeHint)}
}

// addSequence inserts the canonical code of every 16-mer in seq (forward
// strand) plus every 16-mer of its reverse complement, so the set holds
// reference content regardless of which strand a query read happens to
// match.
func (s *KmerSet) addSequence(bases []byte) {
	s.addStrand(bases)
	rc := make([]byte, len(bases))
	for i, b := range bases {
		rc[len(bases)-1-i] = complementBase(b)
	}
	s.addStrand(rc)
}

func (s *KmerSet) addStrand(bases []byte) {
	if len(bases) < KmerSize {
		return
	}
	for i := 0; i+KmerSize <= len(bases); i++ {
		kmer := bases[i : i+KmerSize]
		code, err := unikmer.NewKmerCode(kmer)
		if err != nil {
			continue // ambiguous base (N, etc.) — skip, per spec.md's silence on them
		}
		s.codes[code.Canonical().Code] = struct{}{}
	}
}

// Contains reports whether the canonical form of kmer (len(kmer) ==
// KmerSize) is present in the set.
func (s *KmerSet) Contains(kmer []byte) bool {
	code, err := unikmer.NewKmerCode(kmer)
	if err != nil {
		return false
	}
	_, ok := s.codes[code.Canonical().Code]
	return ok
}

// Len reports the number of distinct canonical k-mers stored.
func (s *KmerSet) Len() int { return len(s.codes) }

func complementBase(b byte) byte {
	switch b {
	case 'A', 'a':
		return 'T'
	case 'C', 'c':
		return 'G'
	case 'G', 'g':
		return 'C'
	case 'T', 't':
		return 'A'
	default:
		return 'N'
	}
}

// BuildKmerSetFromAssembly adds every 16-mer of every contig in path (FASTA)
// to the reference k-mer set, both strands.
func BuildKmerSetFromAssembly(path string) (*KmerSet, error) {
	reader, err := fastx.NewReader(seq.DNAredundant, path, fastx.DefaultIDRegexp)
	if err != nil {
		return nil, fmt.Errorf("cannot find file: %s", path)
	}
	defer reader.Close()

	set := NewKmerSet(1 << 20)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading reference %s: %v", path, err)
		}
		set.addSequence(record.Seq.Seq)
	}
	return set, nil
}

// BuildKmerSetFromReads adds every 16-mer of every paired short read in
// path1/path2 to the reference k-mer set, both strands.
func BuildKmerSetFromReads(path1, path2 string) (*KmerSet, error) {
	set := NewKmerSet(1 << 20)
	for _, path := range []string{path1, path2} {
		reader, err := fastx.NewReader(seq.DNAredundant, path, fastx.DefaultIDRegexp)
		if err != nil {
			return nil, fmt.Errorf("cannot find file: %s", path)
		}
		for {
			record, err := reader.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				reader.Close()
				return nil, fmt.Errorf("error reading reference %s: %v", path, err)
			}
			set.addSequence(record.Seq.Seq)
		}
		reader.Close()
	}
	return set, nil
}

// BuildReferenceIndex builds the reference k-mer set for a config, preferring
// the assembly reference if both are set (callers validate mutual-exclusion
// upstream if that's desired; spec.md treats either as sufficient).
func BuildReferenceIndex(c *Config) (*KmerSet, error) {
	switch {
	case c.AssemblyRef != "":
		return BuildKmerSetFromAssembly(c.AssemblyRef)
	case c.Reads1Ref != "" && c.Reads2Ref != "":
		return BuildKmerSetFromReads(c.Reads1Ref, c.Reads2Ref)
	default:
		return nil, nil
	}
}
