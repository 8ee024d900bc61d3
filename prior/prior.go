// Package prior assembles the per-site covariate matrix fit alongside the
// read-start counts: an intercept, the motif match score, and optionally the
// mean of a bedGraph track (typically sequence conservation) over each motif
// span.
package prior

import (
	"github.com/alexg9010/footprintTools/bedgraph"
	"github.com/alexg9010/footprintTools/sites"
	"github.com/vertgenlab/gonomics/interval"
	"gonum.org/v1/gonum/mat"
)

// Build returns one row per site, in input order. Without a track the
// columns are [1, score]; with a track a third column holds the mean track
// score over the motif span, zero where the track has no overlap.
func Build(s []sites.Site, track []bedgraph.Record) *mat.Dense {
	if track == nil {
		m := mat.NewDense(len(s), 2, nil)
		for i := range s {
			m.Set(i, 0, 1)
			m.Set(i, 1, s[i].Score)
		}
		return m
	}

	trackIntervals := make([]interval.Interval, len(track))
	for i := range track {
		trackIntervals[i] = track[i]
	}
	tree := interval.BuildTree(trackIntervals)

	m := mat.NewDense(len(s), 3, nil)
	var overlap []interval.Interval
	for i := range s {
		m.Set(i, 0, 1)
		m.Set(i, 1, s[i].Score)
		overlap = interval.Query(tree, s[i], "any")
		if len(overlap) == 0 {
			continue
		}
		var sum float64
		for j := range overlap {
			sum += overlap[j].(bedgraph.Record).Score
		}
		m.Set(i, 2, sum/float64(len(overlap)))
	}
	return m
}
