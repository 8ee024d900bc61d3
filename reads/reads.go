// Package reads retrieves aligned reads overlapping query windows from an
// indexed BAM file.
package reads

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"

	"github.com/alexg9010/footprintTools/region"
	"github.com/vertgenlab/gonomics/sam"
)

// Read is the minimal view of one aligned read consumed by footprint
// aggregation. Pos is the 1-based leftmost aligned coordinate as stored in
// the alignment record, regardless of strand.
type Read struct {
	Pos        int
	PosStrand  bool
	QueryWidth int
}

// Result holds the reads overlapping one query window, keyed by the window's
// region identifier.
type Result struct {
	Region string
	Reads  []Read
}

// Source retrieves overlapping reads for a batch of query windows. Results
// are returned in query order and windows with no overlapping reads are
// omitted, so len(results) <= len(regions).
type Source interface {
	Overlapping(regions []region.Region) []Result
}

// FindIndex returns the path of the index for bamFile, accepting either
// file.bam.bai or file.bai naming.
func FindIndex(bamFile string) (string, bool) {
	candidates := []string{bamFile + ".bai", strings.TrimSuffix(bamFile, ".bam") + ".bai"}
	for _, c := range candidates {
		if _, err := os.Stat(c); !errors.Is(err, os.ErrNotExist) {
			return c, true
		}
	}
	return "", false
}

// EnsureIndex makes certain an index exists for bamFile, building one with
// samtools if absent. Building writes bamFile.bai next to the input.
func EnsureIndex(bamFile string) error {
	if _, found := FindIndex(bamFile); found {
		return nil
	}
	log.Printf("no index found for %s, building with samtools index\n", bamFile)
	cmd := exec.Command("samtools", "index", bamFile)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("indexing %s failed: %v: %s", bamFile, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// BamSource is a Source backed by an indexed BAM file.
type BamSource struct {
	br   *sam.BamReader
	bai  sam.Bai
	file string
}

// NewBamSource opens bamFile and its index for region queries. The index
// must already exist; call EnsureIndex first if it may not.
func NewBamSource(bamFile string) (*BamSource, error) {
	idx, found := FindIndex(bamFile)
	if !found {
		return nil, fmt.Errorf("no .bai index found for %s", bamFile)
	}
	br, _ := sam.OpenBam(bamFile)
	return &BamSource{br: br, bai: sam.ReadBai(idx), file: bamFile}, nil
}

// Overlapping seeks each query window in turn, converting this module's
// 1-based closed bounds to the bed-style half-open bounds the seek expects.
// A window start before the chromosome is floored at the first base for the
// seek itself; the window keeps its unclamped identifier.
func (bs *BamSource) Overlapping(regions []region.Region) []Result {
	var ans []Result
	var overlap []sam.Sam
	for _, w := range regions {
		seekStart := w.Start - 1
		if seekStart < 0 {
			seekStart = 0
		}
		overlap = sam.SeekBamRegion(bs.br, bs.bai, w.Chrom, uint32(seekStart), uint32(w.End))
		if len(overlap) == 0 {
			continue
		}
		r := Result{Region: w.String(), Reads: make([]Read, len(overlap))}
		for i := range overlap {
			r.Reads[i] = Read{
				Pos:        int(overlap[i].Pos),
				PosStrand:  sam.IsPosStrand(overlap[i]),
				QueryWidth: len(overlap[i].Seq),
			}
		}
		ans = append(ans, r)
	}
	return ans
}

// Close releases the underlying BAM reader.
func (bs *BamSource) Close() error {
	return bs.br.Close()
}
