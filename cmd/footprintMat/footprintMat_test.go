package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexg9010/footprintTools/sites"
	"gonum.org/v1/gonum/mat"
)

func TestWriteMatrix(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "matrix.tsv")

	table := []sites.Site{{Chrom: "chr1", Start: 100, End: 120, QStart: 95, QEnd: 125}}
	m := mat.NewDense(1, 4, []float64{1, 0, 0, 2})
	writeMatrix(out, m, table)

	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(b)) != "chr1:95-125\t1\t0\t0\t2" {
		t.Error("unexpected matrix output:", string(b))
	}
}

func TestWriteSites(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "sites.tsv")

	table := []sites.Site{{Chrom: "chr1", Start: 100, End: 120, PosStrand: true, Score: 10, PValue: 1e-6, QValue: 0.001, MatchedSeq: "TGGCCACC"}}
	writeSites(out, table)

	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 2 {
		t.Fatal("expected header plus one site, got", len(lines))
	}
	if lines[1] != "chr1\t100\t120\t+\t10\t1e-06\t0.001\tTGGCCACC" {
		t.Error("unexpected site row:", lines[1])
	}
}
