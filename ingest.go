package main

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"
	"github.com/shenwei356/util/pathutil"
)

// IngestStats tallies the counters the progress lines of spec.md §6 report.
type IngestStats struct {
	ReadsIn      int
	BasesIn      int64
	ReadsDropped int // whole reads removed by trim/split narrowing to nothing
	ReadsAfterTS int
	BasesAfterTS int64
}

func (s *IngestStats) add(other IngestStats) {
	s.ReadsIn += other.ReadsIn
	s.BasesIn += other.BasesIn
	s.ReadsDropped += other.ReadsDropped
	s.ReadsAfterTS += other.ReadsAfterTS
	s.BasesAfterTS += other.BasesAfterTS
}

// Ingest reads every record out of cfg.InFiles ("-" means stdin), running
// the trim/split transform and scorer over each as it arrives (spec.md §2
// pipeline steps 1-4), and returns the full in-memory read set the selector
// needs to see all at once.
func Ingest(cfg *Config, ref *KmerSet) ([]*Read, IngestStats, error) {
	var stats IngestStats
	var reads []*Read
	scorer := NewScorer(cfg, ref)
	index := 0

	for _, path := range cfg.InFiles {
		if path != "-" {
			exists, err := pathutil.Exists(path)
			if err != nil || !exists {
				return nil, stats, fmt.Errorf("cannot find file: %s", path)
			}
		}

		var fileReads []*Read
		var fileStats IngestStats
		var err error
		if path == "-" {
			fileReads, fileStats, err = ingestStdin(cfg, ref, scorer, &index)
		} else {
			fileReads, fileStats, err = ingestFile(path, cfg, ref, scorer, &index)
		}
		if err != nil {
			return nil, stats, err
		}
		reads = append(reads, fileReads...)
		stats.add(fileStats)
	}

	return reads, stats, nil
}

// checkFastaConstraint enforces spec.md §4.5: a read with no Phred quality
// scores (FASTA input) carries no quality signal on its own, so it is only
// usable when an external reference supplies one instead.
func checkFastaConstraint(r *Read, ref *KmerSet) error {
	if !r.HasQualities() && ref == nil {
		return fmt.Errorf("FASTA input not supported without an external reference")
	}
	return nil
}

// processRead runs one freshly-read record through trim/split and scoring,
// updating stats, and returns the resulting (possibly zero, possibly
// multiple) sub-reads.
func processRead(r *Read, cfg *Config, ref *KmerSet, scorer *Scorer, stats *IngestStats) []*Read {
	stats.ReadsIn++
	stats.BasesIn += int64(r.Length)

	subReads := TrimAndSplit(r, cfg, ref)
	if len(subReads) == 0 {
		stats.ReadsDropped++
		return nil
	}
	for _, sr := range subReads {
		scorer.Score(sr)
		stats.ReadsAfterTS++
		stats.BasesAfterTS += int64(sr.Length)
	}
	return subReads
}

func ingestFile(path string, cfg *Config, ref *KmerSet, scorer *Scorer, index *int) ([]*Read, IngestStats, error) {
	reader, err := fastx.NewReader(seq.DNAredundant, path, fastx.DefaultIDRegexp)
	if err != nil {
		return nil, IngestStats{}, fmt.Errorf("cannot find file: %s", path)
	}
	defer reader.Close()

	var stats IngestStats
	var out []*Read
	lastName := ""
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("incorrect FASTQ format for read %s: %v", lastName, err)
		}

		r := newRead(string(record.Name), string(record.Name),
			append([]byte{}, record.Seq.Seq...), append([]byte{}, record.Seq.Qual...), *index)
		if err := checkFastaConstraint(r, ref); err != nil {
			return nil, stats, err
		}
		lastName = r.Name
		*index++
		out = append(out, processRead(r, cfg, ref, scorer, &stats)...)
	}
	return out, stats, nil
}

// ingestStdin holds each record zstd-compressed in memory while standard
// input is being read, the same trick the teacher's sortStdin uses for a
// non-seekable stream. Once the stream ends, every record is decompressed,
// processed and returned, so the returned reads hold their sequence and
// quality bytes uncompressed.
func ingestStdin(cfg *Config, ref *KmerSet, scorer *Scorer, index *int) ([]*Read, IngestStats, error) {
	reader, err := fastx.NewReader(seq.DNAredundant, "-", fastx.DefaultIDRegexp)
	if err != nil {
		return nil, IngestStats{}, fmt.Errorf("error reading standard input: %v", err)
	}
	defer reader.Close()

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, IngestStats{}, fmt.Errorf("error creating zstd encoder: %v", err)
	}
	defer encoder.Close()
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, IngestStats{}, fmt.Errorf("error creating zstd decoder: %v", err)
	}
	defer decoder.Close()

	type buffered struct {
		name   []byte
		data   []byte
		seqLen int
	}
	var bufferedRecords []buffered
	lastName := ""
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, IngestStats{}, fmt.Errorf("incorrect FASTQ format for read %s: %v", lastName, err)
		}

		data := append(append([]byte{}, record.Seq.Seq...), record.Seq.Qual...)
		compressed := encoder.EncodeAll(data, make([]byte, 0, len(data)))
		bufferedRecords = append(bufferedRecords, buffered{
			name:   append([]byte{}, record.Name...),
			data:   compressed,
			seqLen: len(record.Seq.Seq),
		})
		lastName = string(record.Name)
	}

	var stats IngestStats
	var out []*Read
	for _, rec := range bufferedRecords {
		decompressed, err := decoder.DecodeAll(rec.data, nil)
		if err != nil {
			return nil, stats, fmt.Errorf("error decompressing buffered record: %v", err)
		}
		bases := decompressed[:rec.seqLen]
		var qual []byte
		if len(decompressed) > rec.seqLen {
			qual = decompressed[rec.seqLen:]
		}

		r := newRead(string(rec.name), string(rec.name), bases, qual, *index)
		if err := checkFastaConstraint(r, ref); err != nil {
			return nil, stats, err
		}
		*index++
		out = append(out, processRead(r, cfg, ref, scorer, &stats)...)
	}
	return out, stats, nil
}
