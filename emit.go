package main

import (
	"fmt"

	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"
	"github.com/shenwei356/xopen"
)

// Emit writes reads to outPath in FASTQ (when qualities are present) or
// FASTA format, inferring the right one per record the way the original
// Filtlong does: a read without quality scores is emitted headerless-qual.
// outPath may carry any of xopen's recognized compression suffixes; "-"
// writes to standard output.
func Emit(reads []*Read, outPath string) error {
	path := outPath
	if path == "" {
		path = "-"
	}

	writer, err := xopen.Wopen(path)
	if err != nil {
		return fmt.Errorf("cannot create output file: %s", path)
	}
	defer writer.Close()

	for _, r := range reads {
		record := &fastx.Record{
			Name: []byte(r.Name),
			Seq: &seq.Seq{
				Alphabet: seq.DNAredundant,
				Seq:      r.Sequence,
				Qual:     r.Qualities,
			},
		}
		record.FormatToWriter(writer, 0)
	}
	return nil
}
