// Package sites selects significant motif matches and prepares the padded
// query windows used for read retrieval.
package sites

import (
	"errors"
	"fmt"
	"sort"

	"github.com/alexg9010/footprintTools/fimo"
	"github.com/alexg9010/footprintTools/region"
)

// ErrNoSignificantMatches is wrapped by Select when no match passes the
// significance threshold.
var ErrNoSignificantMatches = errors.New("no significant motif matches")

// DefaultLog10pThreshold retains matches with p < 1e-4.
const DefaultLog10pThreshold float64 = 4

// DefaultFlank is the padding in bases added to each side of a motif span.
const DefaultFlank int = 100

// Site is one retained motif match. Start/End hold the original motif span;
// QStart/QEnd hold the flanked query window once Expand has run. The ordinal
// is assigned at selection time and never changes, so sites can be traced
// through later reordering.
type Site struct {
	Chrom      string
	Start      int
	End        int
	QStart     int
	QEnd       int
	PosStrand  bool
	Score      float64
	PValue     float64
	QValue     float64
	MatchedSeq string
	ordinal    int
}

// Span returns the original motif span.
func (s Site) Span() region.Region {
	return region.Region{Chrom: s.Chrom, Start: s.Start, End: s.End}
}

// Window returns the flanked query window. Only valid after Expand.
func (s Site) Window() region.Region {
	return region.Region{Chrom: s.Chrom, Start: s.QStart, End: s.QEnd}
}

// Ordinal returns the site's position in the significance-filtered input.
func (s Site) Ordinal() int {
	return s.ordinal
}

// GetChrom, GetChromStart, and GetChromEnd satisfy the gonomics
// interval.Interval interface for the original motif span.

func (s Site) GetChrom() string { return s.Chrom }

func (s Site) GetChromStart() int { return s.Start - 1 }

func (s Site) GetChromEnd() int { return s.End }

// Select retains matches with -log10(p) strictly above log10pThreshold and
// collapses matches on identical spans to the single highest-scoring one.
// src names the match file for error reporting. Output order is unspecified.
func Select(records []fimo.Record, log10pThreshold float64, src string) ([]Site, error) {
	var ans []Site
	for i := range records {
		if records[i].MinusLog10P() <= log10pThreshold {
			continue
		}
		ans = append(ans, Site{
			Chrom:      records[i].SequenceName,
			Start:      records[i].Start,
			End:        records[i].Stop,
			PosStrand:  records[i].PosStrand,
			Score:      records[i].Score,
			PValue:     records[i].PValue,
			QValue:     records[i].QValue,
			MatchedSeq: records[i].MatchedSequence,
			ordinal:    len(ans),
		})
	}
	if len(ans) == 0 {
		return nil, fmt.Errorf("%w above -log10(p) %v in %s", ErrNoSignificantMatches, log10pThreshold, src)
	}
	return dedup(ans), nil
}

// dedup keeps one site per (chrom, start, end) span. Sorting descending by
// score within each span makes the highest-scoring duplicate the first of its
// run, and ordinal order breaks score ties deterministically.
func dedup(s []Site) []Site {
	sort.Slice(s, func(i, j int) bool {
		if c := region.Compare(s[i].Span(), s[j].Span()); c != 0 {
			return c < 0
		}
		if s[i].Score != s[j].Score {
			return s[i].Score > s[j].Score
		}
		return s[i].ordinal < s[j].ordinal
	})
	var ans []Site
	for i := range s {
		if i > 0 && region.Compare(s[i].Span(), s[i-1].Span()) == 0 {
			continue
		}
		ans = append(ans, s[i])
	}
	return ans
}

// Expand sets each site's query window to the motif span plus flank bases on
// both sides. Windows are not clamped to chromosome bounds; a window running
// off the end of a chromosome returns no reads rather than failing.
func Expand(s []Site, flank int) {
	for i := range s {
		s[i].QStart = s[i].Start - flank
		s[i].QEnd = s[i].End + flank
	}
}

// SortByCoordinate orders sites ascending by (chrom, start, end) of the
// original motif span.
func SortByCoordinate(s []Site) {
	sort.Slice(s, func(i, j int) bool {
		return region.Compare(s[i].Span(), s[j].Span()) < 0
	})
}
