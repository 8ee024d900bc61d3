// Package fimo reads the tab-delimited match table produced by the FIMO motif
// scanner. Coordinates are 1-based closed, as written by FIMO.
package fimo

import (
	"math"
	"strconv"
	"strings"

	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
)

// Record is one motif match. Equivalent to one line of a fimo.tsv file.
type Record struct {
	MotifId         string
	MotifAltId      string
	SequenceName    string
	Start           int
	Stop            int
	PosStrand       bool
	Score           float64
	PValue          float64
	QValue          float64
	MatchedSequence string
}

// MinusLog10P returns -log10 of the match p-value, the scale on which
// significance thresholds are applied.
func (r Record) MinusLog10P() float64 {
	return -math.Log10(r.PValue)
}

func parseLine(line string) Record {
	words := strings.Split(line, "\t")
	var err error
	var ans Record
	ans.MotifId = words[0]
	ans.MotifAltId = words[1]
	ans.SequenceName = words[2]
	ans.Start, err = strconv.Atoi(words[3])
	exception.PanicOnErr(err)
	ans.Stop, err = strconv.Atoi(words[4])
	exception.PanicOnErr(err)
	ans.PosStrand = words[5] == "+"
	ans.Score, err = strconv.ParseFloat(words[6], 64)
	exception.PanicOnErr(err)
	ans.PValue, err = strconv.ParseFloat(words[7], 64)
	exception.PanicOnErr(err)
	ans.QValue, err = strconv.ParseFloat(words[8], 64)
	exception.PanicOnErr(err)
	if len(words) > 9 {
		ans.MatchedSequence = words[9]
	}
	return ans
}

func skipLine(line string) bool {
	return len(line) == 0 || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "motif_id")
}

// Read returns all records in file.
func Read(file string) []Record {
	var ans []Record
	for r := range GoReadToChan(file) {
		ans = append(ans, r)
	}
	return ans
}

// GoReadToChan streams records from file on a buffered channel.
func GoReadToChan(file string) <-chan Record {
	ans := make(chan Record, 1000)
	go readToChan(file, ans)
	return ans
}

func readToChan(file string, c chan<- Record) {
	input := fileio.EasyOpen(file)
	var line string
	var done bool
	for line, done = fileio.EasyNextRealLine(input); !done; line, done = fileio.EasyNextRealLine(input) {
		if skipLine(line) {
			continue
		}
		c <- parseLine(line)
	}
	err := input.Close()
	exception.PanicOnErr(err)
	close(c)
}
