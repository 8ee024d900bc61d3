// Package region provides the chrom:start-end interval identifier used to key
// alignment query results back to their originating site.
//
// All coordinates in this module are 1-based and fully closed, matching SAM
// POS and FIMO start/stop. Format boundaries that use other conventions
// (bedGraph, bed-style tree queries) convert exactly once at the boundary.
package region

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformed is wrapped by all parse failures.
var ErrMalformed = errors.New("malformed region")

// Region is a 1-based closed genomic interval. End >= Start for all valid regions.
type Region struct {
	Chrom string
	Start int
	End   int
}

// Parse converts a "chrom:start-end" string to a Region. The chrom name is
// everything before the first ':', so names containing ':' are not supported.
func Parse(s string) (Region, error) {
	var r Region
	var err error
	chrom, coords, found := strings.Cut(s, ":")
	if !found || chrom == "" {
		return r, fmt.Errorf("%w: %q missing chrom separator", ErrMalformed, s)
	}
	// last '-' so unclamped windows with a negative start survive the round trip
	sep := strings.LastIndex(coords, "-")
	if sep <= 0 {
		return r, fmt.Errorf("%w: %q missing coordinate separator", ErrMalformed, s)
	}
	startText, endText := coords[:sep], coords[sep+1:]
	r.Chrom = chrom
	r.Start, err = strconv.Atoi(startText)
	if err != nil {
		return r, fmt.Errorf("%w: %q start is not an integer", ErrMalformed, s)
	}
	r.End, err = strconv.Atoi(endText)
	if err != nil {
		return r, fmt.Errorf("%w: %q end is not an integer", ErrMalformed, s)
	}
	return r, nil
}

// String formats r as "chrom:start-end". Parse(r.String()) == r for all valid r.
func (r Region) String() string {
	return fmt.Sprintf("%s:%d-%d", r.Chrom, r.Start, r.End)
}

// GetChrom, GetChromStart, and GetChromEnd satisfy the gonomics
// interval.Interval interface, which expects bed-style half-open coordinates.

func (r Region) GetChrom() string { return r.Chrom }

func (r Region) GetChromStart() int { return r.Start - 1 }

func (r Region) GetChromEnd() int { return r.End }

// Compare orders regions by (chrom, start, end) ascending, returning
// -1, 0, or 1 in the manner of strings.Compare.
func Compare(a, b Region) int {
	if c := strings.Compare(a.Chrom, b.Chrom); c != 0 {
		return c
	}
	if a.Start != b.Start {
		if a.Start < b.Start {
			return -1
		}
		return 1
	}
	if a.End != b.End {
		if a.End < b.End {
			return -1
		}
		return 1
	}
	return 0
}
