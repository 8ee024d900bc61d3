package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/alexg9010/footprintTools/bedgraph"
	"github.com/alexg9010/footprintTools/footprint"
	"github.com/alexg9010/footprintTools/prior"
	"github.com/alexg9010/footprintTools/sites"
	"github.com/guptarohit/asciigraph"
	"github.com/pkg/profile"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func usage() {
	fmt.Print(
		"footprintMat - Build per-site read-start count matrices around significant motif matches\n" +
			"for downstream footprint model fitting.\n" +
			"Usage:\n" +
			"footprintMat [options] -fimo fimo.tsv -b input.bam -o matrix.tsv -region sites.tsv\n\n")
	flag.PrintDefaults()
}

func main() {
	cpuprofile := flag.Bool("cpuprofile", false, "write cpu profile")
	memprofile := flag.Bool("memprofile", false, "write memory profile")
	fimoFile := flag.String("fimo", "", "FIMO motif match table (tsv). Coordinates must match the BAM reference.")
	bamFile := flag.String("b", "", "Input bam file. Indexed with samtools if no .bai is found.")
	matOut := flag.String("o", "stdout", "Output count matrix (tsv). One row per site: window id then 2*L counts, forward-strand columns first.")
	regionOut := flag.String("region", "", "Output site table (tsv), one row per matrix row, original motif spans.")
	log10p := flag.Float64("log10p", sites.DefaultLog10pThreshold, "Keep matches with -log10(p-value) strictly above this threshold.")
	flank := flag.Int("flank", sites.DefaultFlank, "Bases of padding added to each side of a motif span.")
	consFile := flag.String("cons", "", "Optional bedGraph track (e.g. conservation) averaged over each motif span for the prior matrix.")
	priorOut := flag.String("prior", "", "Output prior covariate matrix (tsv): intercept, motif score, and track mean if -cons is given.")
	qcOut := flag.String("qc", "", "Write a histogram of retained-site -log10(p-values) to this png.")
	verbose := flag.Int("v", 0, "Level of verbosity in log.")
	flag.Parse()

	if *memprofile && *cpuprofile {
		usage()
		log.Fatal("ERROR: -memprofile and -cpuprofile are mutually exclusive.")
	}
	if *memprofile {
		defer profile.Start(profile.MemProfile).Stop()
	}
	if *cpuprofile {
		defer profile.Start(profile.CPUProfile).Stop()
	}

	if *fimoFile == "" || *bamFile == "" {
		usage()
		log.Fatal("ERROR: must specify motif matches (-fimo) and bam (-b).")
	}

	footprintMat(*fimoFile, *bamFile, *matOut, *regionOut, *consFile, *priorOut, *qcOut,
		footprint.Config{Log10pThreshold: *log10p, Flank: *flank}, *verbose)
}

func footprintMat(fimoFile, bamFile, matOut, regionOut, consFile, priorOut, qcOut string, cfg footprint.Config, verbose int) {
	m, table, err := footprint.Compute(fimoFile, bamFile, cfg)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}
	rows, cols := m.Dims()
	if verbose > 0 {
		log.Printf("aggregated %d sites x %d columns (window length %d)\n", rows, cols, cols/2)
	}

	writeMatrix(matOut, m, table)
	if regionOut != "" {
		writeSites(regionOut, table)
	}
	if priorOut != "" {
		var track []bedgraph.Record
		if consFile != "" {
			track = bedgraph.Read(consFile)
		}
		writeMatrix(priorOut, prior.Build(table, track), table)
	}

	if verbose > 0 {
		logSignificanceSummary(table)
	}
	if qcOut != "" {
		plotSignificance(qcOut, table)
	}
}

func minusLog10P(table []sites.Site) []float64 {
	vals := make([]float64, len(table))
	for i := range table {
		vals[i] = -math.Log10(table[i].PValue)
	}
	return vals
}

func logSignificanceSummary(table []sites.Site) {
	vals := minusLog10P(table)
	slices.Sort(vals)
	log.Printf("site -log10(p): mean %.2f, median %.2f, max %.2f\n",
		stat.Mean(vals, nil), stat.Quantile(0.5, stat.Empirical, vals, nil), vals[len(vals)-1])

	// terminal histogram of significance across retained sites
	const bins = 30
	counts := make([]float64, bins)
	lo, hi := vals[0], vals[len(vals)-1]
	if hi == lo {
		hi = lo + 1
	}
	for _, v := range vals {
		b := int(float64(bins-1) * (v - lo) / (hi - lo))
		counts[b]++
	}
	log.Printf("sites by -log10(p), %.2f to %.2f:\n%s\n", lo, hi,
		asciigraph.Plot(counts, asciigraph.Height(8), asciigraph.Precision(0)))
}

func plotSignificance(outFile string, table []sites.Site) {
	p := plot.New()
	p.Title.Text = "Retained motif match significance"
	p.X.Label.Text = "-log10(p-value)"
	p.Y.Label.Text = "sites"
	h, err := plotter.NewHist(plotter.Values(minusLog10P(table)), 20)
	exception.PanicOnErr(err)
	p.Add(h)
	err = p.Save(5*vg.Inch, 4*vg.Inch, outFile)
	exception.PanicOnErr(err)
}

func writeMatrix(outFile string, m *mat.Dense, table []sites.Site) {
	out := fileio.EasyCreate(outFile)
	rows, cols := m.Dims()
	sb := new(strings.Builder)
	for i := 0; i < rows; i++ {
		sb.Reset()
		sb.WriteString(table[i].Window().String())
		for j := 0; j < cols; j++ {
			sb.WriteString(fmt.Sprintf("\t%g", m.At(i, j)))
		}
		sb.WriteByte('\n')
		_, err := out.Write([]byte(sb.String()))
		exception.PanicOnErr(err)
	}
	err := out.Close()
	exception.PanicOnErr(err)
}

func writeSites(outFile string, table []sites.Site) {
	out := fileio.EasyCreate(outFile)
	_, err := fmt.Fprintln(out, "chrom\tstart\tend\tstrand\tscore\tp_value\tq_value\tmatched_sequence")
	exception.PanicOnErr(err)
	for i := range table {
		strand := "+"
		if !table[i].PosStrand {
			strand = "-"
		}
		_, err = fmt.Fprintf(out, "%s\t%d\t%d\t%s\t%g\t%g\t%g\t%s\n",
			table[i].Chrom, table[i].Start, table[i].End, strand,
			table[i].Score, table[i].PValue, table[i].QValue, table[i].MatchedSeq)
		exception.PanicOnErr(err)
	}
	err = out.Close()
	exception.PanicOnErr(err)
}
