package prior

import (
	"math"
	"testing"

	"github.com/alexg9010/footprintTools/bedgraph"
	"github.com/alexg9010/footprintTools/region"
	"github.com/alexg9010/footprintTools/sites"
)

func TestBuildWithoutTrack(t *testing.T) {
	s := []sites.Site{
		{Chrom: "chr1", Start: 100, End: 120, Score: 10},
		{Chrom: "chr2", Start: 5000, End: 5020, Score: 12.5},
	}
	m := Build(s, nil)
	rows, cols := m.Dims()
	if rows != 2 || cols != 2 {
		t.Fatal("expected 2x2 matrix, got", rows, cols)
	}
	if m.At(0, 0) != 1 || m.At(1, 0) != 1 {
		t.Error("first column should be an intercept of ones")
	}
	if m.At(0, 1) != 10 || m.At(1, 1) != 12.5 {
		t.Error("second column should carry motif scores")
	}
}

func TestBuildWithTrack(t *testing.T) {
	s := []sites.Site{
		{Chrom: "chr1", Start: 100, End: 120, Score: 10},
		{Chrom: "chr3", Start: 1, End: 20, Score: 8}, // no track coverage
	}
	track := []bedgraph.Record{
		{Region: region.Region{Chrom: "chr1", Start: 100, End: 110}, Score: 0.8},
		{Region: region.Region{Chrom: "chr1", Start: 111, End: 120}, Score: 0.4},
		{Region: region.Region{Chrom: "chr2", Start: 1, End: 100}, Score: 0.9},
	}
	m := Build(s, track)
	rows, cols := m.Dims()
	if rows != 2 || cols != 3 {
		t.Fatal("expected 2x3 matrix, got", rows, cols)
	}
	if math.Abs(m.At(0, 2)-0.6) > 1e-12 {
		t.Error("expected mean of overlapping track scores, got", m.At(0, 2))
	}
	if m.At(1, 2) != 0 {
		t.Error("sites without track coverage should get zero, got", m.At(1, 2))
	}
}
