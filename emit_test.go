package main

import (
	"os"
	"strings"
	"testing"
)

func TestEmitWritesFastqWhenQualitiesPresent(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "emit_test_*.fastq")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())
	tmpfile.Close()

	reads := []*Read{
		newRead("r1", "r1", []byte("ACGT"), []byte("IIII"), 0),
	}
	if err := Emit(reads, tmpfile.Name()); err != nil {
		t.Fatalf("Emit() unexpected error: %v", err)
	}

	content, err := os.ReadFile(tmpfile.Name())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(content), "@r1") {
		t.Errorf("Emit() output = %q, want a FASTQ record starting with @r1", content)
	}
	if !strings.Contains(string(content), "IIII") {
		t.Errorf("Emit() output %q missing quality line", content)
	}
}

func TestEmitWritesFastaWhenQualitiesAbsent(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "emit_test_*.fasta")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())
	tmpfile.Close()

	reads := []*Read{
		newRead("r1", "r1", []byte("ACGT"), nil, 0),
	}
	if err := Emit(reads, tmpfile.Name()); err != nil {
		t.Fatalf("Emit() unexpected error: %v", err)
	}

	content, err := os.ReadFile(tmpfile.Name())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(content), ">r1") {
		t.Errorf("Emit() output = %q, want a FASTA record starting with >r1", content)
	}
}
