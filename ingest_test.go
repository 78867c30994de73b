package main

import (
	"os"
	"strings"
	"testing"
)

const sampleFastq = "@read1\nACGTACGTAC\n+\nIIIIIIIIII\n@read2\nACGTACGTACGTACGTACG\n+\n!!!!!!!!!!!!!!!!!!!\n"

func writeTempFastq(t *testing.T, content string) string {
	t.Helper()
	tmpfile, err := os.CreateTemp("", "ingest_test_*.fastq")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tmpfile.WriteString(content); err != nil {
		t.Fatal(err)
	}
	tmpfile.Close()
	t.Cleanup(func() { os.Remove(tmpfile.Name()) })
	return tmpfile.Name()
}

func TestIngestFileCountsReadsAndBases(t *testing.T) {
	path := writeTempFastq(t, sampleFastq)

	cfg := newDefaultConfig()
	cfg.InFiles = []string{path}

	reads, stats, err := Ingest(cfg, nil)
	if err != nil {
		t.Fatalf("Ingest() unexpected error: %v", err)
	}
	if len(reads) != 2 {
		t.Fatalf("Ingest() returned %d reads, want 2", len(reads))
	}
	if stats.ReadsIn != 2 {
		t.Errorf("stats.ReadsIn = %d, want 2", stats.ReadsIn)
	}
	if stats.BasesIn != 29 {
		t.Errorf("stats.BasesIn = %d, want 29", stats.BasesIn)
	}
	if reads[0].Name != "read1" || reads[1].Name != "read2" {
		t.Errorf("Ingest() read names = [%s, %s], want [read1, read2]", reads[0].Name, reads[1].Name)
	}
	if reads[0].Score.FinalScore == 0 {
		t.Errorf("expected the scorer to have run over ingested reads")
	}
}

func TestIngestMissingFile(t *testing.T) {
	cfg := newDefaultConfig()
	cfg.InFiles = []string{"/nonexistent/path/does-not-exist.fastq"}

	_, _, err := Ingest(cfg, nil)
	if err == nil {
		t.Fatalf("Ingest() with a missing input file: want an error, got nil")
	}
	if !strings.Contains(err.Error(), "cannot find file") {
		t.Errorf("Ingest() error = %q, want it to mention 'cannot find file'", err.Error())
	}
}

func TestIngestFastaWithoutReferenceFails(t *testing.T) {
	path := writeTempFastq(t, ">read1\nACGTACGTACGTACGT\n")

	cfg := newDefaultConfig()
	cfg.InFiles = []string{path}

	_, _, err := Ingest(cfg, nil)
	if err == nil {
		t.Fatalf("Ingest() with FASTA input and no reference: want an error, got nil")
	}
	want := "FASTA input not supported without an external reference"
	if err.Error() != want {
		t.Errorf("Ingest() error = %q, want %q", err.Error(), want)
	}
}

func TestIngestFastaWithReferenceSucceeds(t *testing.T) {
	path := writeTempFastq(t, ">read1\nACGTACGTACGTACGT\n")

	cfg := newDefaultConfig()
	cfg.InFiles = []string{path}
	ref := NewKmerSet(16)
	ref.addSequence([]byte("ACGTACGTACGTACGT"))

	reads, _, err := Ingest(cfg, ref)
	if err != nil {
		t.Fatalf("Ingest() with FASTA input and a reference: unexpected error: %v", err)
	}
	if len(reads) != 1 {
		t.Fatalf("Ingest() returned %d reads, want 1", len(reads))
	}
}

func TestIngestMalformedFastqReportsReadName(t *testing.T) {
	// read1 is well-formed; read2's quality line is shorter than its sequence,
	// which the FASTQ parser rejects.
	path := writeTempFastq(t, "@read1\nACGTACGTAC\n+\nIIIIIIIIII\n@read2\nACGTACGTACGTACGTAC\n+\nII\n")

	cfg := newDefaultConfig()
	cfg.InFiles = []string{path}

	_, _, err := Ingest(cfg, nil)
	if err == nil {
		t.Fatalf("Ingest() with a malformed FASTQ record: want an error, got nil")
	}
	if !strings.Contains(err.Error(), "incorrect FASTQ format for read") {
		t.Errorf("Ingest() error = %q, want it to contain 'incorrect FASTQ format for read'", err.Error())
	}
}

func TestIngestStatsAdd(t *testing.T) {
	a := IngestStats{ReadsIn: 1, BasesIn: 10, ReadsDropped: 1, ReadsAfterTS: 1, BasesAfterTS: 5}
	b := IngestStats{ReadsIn: 2, BasesIn: 20, ReadsDropped: 0, ReadsAfterTS: 2, BasesAfterTS: 20}
	a.add(b)

	want := IngestStats{ReadsIn: 3, BasesIn: 30, ReadsDropped: 1, ReadsAfterTS: 3, BasesAfterTS: 25}
	if a != want {
		t.Errorf("IngestStats.add() = %+v, want %+v", a, want)
	}
}
