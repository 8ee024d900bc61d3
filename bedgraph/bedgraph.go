// Package bedgraph reads the 4-column bedGraph format of per-interval scores.
// bedGraph coordinates are 0-based half-open on disk; records are converted to
// this module's 1-based closed convention at parse time.
package bedgraph

import (
	"strconv"
	"strings"

	"github.com/alexg9010/footprintTools/region"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
)

// Record is one scored interval.
type Record struct {
	region.Region
	Score float64
}

func parseLine(line string) Record {
	words := strings.Split(line, "\t")
	var err error
	var ans Record
	ans.Chrom = words[0]
	ans.Start, err = strconv.Atoi(words[1])
	exception.PanicOnErr(err)
	ans.Start++ // 0-based half-open to 1-based closed
	ans.End, err = strconv.Atoi(words[2])
	exception.PanicOnErr(err)
	ans.Score, err = strconv.ParseFloat(words[3], 64)
	exception.PanicOnErr(err)
	return ans
}

// Read returns all records in file.
func Read(file string) []Record {
	input := fileio.EasyOpen(file)
	var ans []Record
	var line string
	var done bool
	for line, done = fileio.EasyNextRealLine(input); !done; line, done = fileio.EasyNextRealLine(input) {
		if strings.HasPrefix(line, "track") || strings.HasPrefix(line, "#") {
			continue
		}
		ans = append(ans, parseLine(line))
	}
	err := input.Close()
	exception.PanicOnErr(err)
	return ans
}
