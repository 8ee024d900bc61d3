package bedgraph

import "testing"

func TestRead(t *testing.T) {
	records := Read("testdata/cons.bedGraph")
	if len(records) != 3 {
		t.Fatal("expected 3 records, got", len(records))
	}

	// bedGraph 99-120 covers the same bases as 1-based closed 100-120
	r := records[0]
	if r.Chrom != "chr1" || r.Start != 100 || r.End != 120 {
		t.Error("coordinates should convert to 1-based closed, got", r.Region)
	}
	if r.Score != 0.87 {
		t.Error("problem parsing score", r.Score)
	}

	// interval accessors recover the on-disk half-open bounds
	if r.GetChromStart() != 99 || r.GetChromEnd() != 120 {
		t.Error("interval accessors should be bed-style", r.GetChromStart(), r.GetChromEnd())
	}
}
