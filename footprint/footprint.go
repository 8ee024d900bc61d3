// Package footprint builds per-site read-start count matrices around motif
// matches, the observation input for downstream footprint model fitting.
//
// Matrix layout: one row per surviving site, 2*L columns where L is the
// query window length. Columns [0,L) count forward-strand read starts at
// each relative position and columns [L,2L) count reverse-strand starts at
// the same relative positions, so column c and column c+L describe the same
// base on opposite strands.
package footprint

import (
	"errors"
	"fmt"
	"sort"

	"github.com/alexg9010/footprintTools/fimo"
	"github.com/alexg9010/footprintTools/reads"
	"github.com/alexg9010/footprintTools/region"
	"github.com/alexg9010/footprintTools/sites"
	"gonum.org/v1/gonum/mat"
)

// ErrNoOverlap is wrapped when no query window has any overlapping read,
// which usually means the alignment file and motif scan disagree on genome
// build or chromosome naming.
var ErrNoOverlap = errors.New("no reads overlap any query window")

// ErrReconcile is wrapped when query results cannot be matched one-to-one
// against the site table.
var ErrReconcile = errors.New("query results do not reconcile with site table")

// Config holds the pipeline thresholds.
type Config struct {
	Log10pThreshold float64
	Flank           int
}

// DefaultConfig returns the standard thresholds: p < 1e-4 and 100 bp flanks.
func DefaultConfig() Config {
	return Config{Log10pThreshold: sites.DefaultLog10pThreshold, Flank: sites.DefaultFlank}
}

// Pair is one site matched back to the reads overlapping its query window.
type Pair struct {
	Site  sites.Site
	Reads []reads.Read
}

// TrueStart returns the 5' start of a read. Reverse-strand records store the
// leftmost aligned coordinate, so the 5' end sits at Pos + QueryWidth.
func TrueStart(r reads.Read) int {
	if r.PosStrand {
		return r.Pos
	}
	return r.Pos + r.QueryWidth
}

// CountStarts tabulates read starts within the site's query window into a
// fixed-length row. Reads whose true start falls outside the window are
// ignored; a window where nothing survives yields an all-zero row.
func CountStarts(s sites.Site, rds []reads.Read) []float64 {
	winLen := s.QEnd - s.QStart + 1
	row := make([]float64, 2*winLen)
	for _, r := range rds {
		start := TrueStart(r)
		if start < s.QStart || start > s.QEnd {
			continue
		}
		j := start - s.QStart
		if !r.PosStrand {
			j += winLen
		}
		row[j]++
	}
	return row
}

// Reconcile matches each query result back to its site by parsing the result
// identifier and joining on the query window coordinates, then orders the
// pairs by genomic coordinate. Sites absent from results (no overlapping
// reads) are dropped. An unknown or repeated result identifier means the
// query and site table have diverged and is fatal; bamFile names the
// offending input in the error.
func Reconcile(results []reads.Result, widened []sites.Site, bamFile string) ([]Pair, error) {
	byWindow := make(map[region.Region]sites.Site, len(widened))
	for i := range widened {
		byWindow[widened[i].Window()] = widened[i]
	}

	seen := make(map[region.Region]bool, len(results))
	ans := make([]Pair, 0, len(results))
	for i := range results {
		w, err := region.Parse(results[i].Region)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrReconcile, bamFile, err)
		}
		s, found := byWindow[w]
		if !found {
			return nil, fmt.Errorf("%w: %s: result window %s matches no site", ErrReconcile, bamFile, w)
		}
		if seen[w] {
			return nil, fmt.Errorf("%w: %s: window %s returned twice", ErrReconcile, bamFile, w)
		}
		seen[w] = true
		ans = append(ans, Pair{Site: s, Reads: results[i].Reads})
	}

	sort.Slice(ans, func(i, j int) bool {
		return region.Compare(ans[i].Site.Window(), ans[j].Site.Window()) < 0
	})
	return ans, nil
}

// Assemble turns reconciled pairs into the count matrix and its companion
// site table. Row i of the matrix corresponds to table entry i; the table
// carries original motif spans, not query windows. All windows must share
// one length, which holds whenever the matches come from a single motif.
func Assemble(pairs []Pair) (*mat.Dense, []sites.Site, error) {
	if len(pairs) == 0 {
		return nil, nil, errors.New("no reconciled sites to assemble")
	}
	winLen := pairs[0].Site.QEnd - pairs[0].Site.QStart + 1
	m := mat.NewDense(len(pairs), 2*winLen, nil)
	table := make([]sites.Site, len(pairs))
	for i := range pairs {
		l := pairs[i].Site.QEnd - pairs[i].Site.QStart + 1
		if l != winLen {
			return nil, nil, fmt.Errorf("query windows differ in length (%d vs %d): count matrix requires a uniform motif width", winLen, l)
		}
		m.SetRow(i, CountStarts(pairs[i].Site, pairs[i].Reads))
		table[i] = pairs[i].Site
	}
	return m, table, nil
}

// ComputeFrom runs query, reconciliation, and aggregation over an already
// selected and expanded site table.
func ComputeFrom(src reads.Source, widened []sites.Site, bamFile string) (*mat.Dense, []sites.Site, error) {
	windows := make([]region.Region, len(widened))
	for i := range widened {
		windows[i] = widened[i].Window()
	}
	results := src.Overlapping(windows)
	if len(results) == 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrNoOverlap, bamFile)
	}
	pairs, err := Reconcile(results, widened, bamFile)
	if err != nil {
		return nil, nil, err
	}
	return Assemble(pairs)
}

// Compute is the full pipeline: read the motif match table, select and widen
// sites, make sure the BAM index exists, and aggregate read starts. The
// returned site table is in genomic coordinate order, matching matrix rows.
func Compute(fimoFile, bamFile string, cfg Config) (*mat.Dense, []sites.Site, error) {
	selected, err := sites.Select(fimo.Read(fimoFile), cfg.Log10pThreshold, fimoFile)
	if err != nil {
		return nil, nil, err
	}
	sites.Expand(selected, cfg.Flank)

	if err = reads.EnsureIndex(bamFile); err != nil {
		return nil, nil, err
	}
	src, err := reads.NewBamSource(bamFile)
	if err != nil {
		return nil, nil, err
	}
	defer src.Close()

	return ComputeFrom(src, selected, bamFile)
}
