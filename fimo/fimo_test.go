package fimo

import (
	"math"
	"testing"
)

func TestRead(t *testing.T) {
	records := Read("testdata/fimo.tsv")
	if len(records) != 4 {
		t.Fatal("expected 4 records, got", len(records))
	}

	r := records[0]
	if r.MotifId != "MA0139.1" || r.MotifAltId != "CTCF" || r.SequenceName != "chr1" {
		t.Error("problem parsing identifier columns", r)
	}
	if r.Start != 100 || r.Stop != 120 {
		t.Error("problem parsing coordinates", r.Start, r.Stop)
	}
	if !r.PosStrand || r.Score != 10 || r.PValue != 1e-6 || r.QValue != 0.001 {
		t.Error("problem parsing strand or score columns", r)
	}
	if r.MatchedSequence != "TGGCCACCAGGGGGCGCTAGC" {
		t.Error("problem parsing matched sequence", r.MatchedSequence)
	}

	if records[1].PosStrand {
		t.Error("second record should be minus strand")
	}
}

func TestMinusLog10P(t *testing.T) {
	r := Record{PValue: 1e-6}
	if math.Abs(r.MinusLog10P()-6) > 1e-12 {
		t.Error("-log10(1e-6) should be 6, got", r.MinusLog10P())
	}
}
