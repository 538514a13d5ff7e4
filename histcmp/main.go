// Copyright 2026 The go-histstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command histcmp bins and compares samples as histograms.
//
// histcmp reads one or two inputs of newline-separated numbers (file
// arguments, or "-" for stdin). With one input it bins the samples and
// reports per-bin values with uncertainty bands. With two inputs it
// bins both on a shared binning spanning the pooled sample range and
// reports the selected per-bin comparison.
//
// Output is plain text by default, a table with -table, or a PNG
// comparison panel with -o. Bins whose comparison is undefined (zero
// denominator) come back NaN and are skipped when plotting.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
	"github.com/histview/go-histstat/compare"
	"github.com/histview/go-histstat/hist"
	"github.com/histview/go-histstat/uncert"
)

func main() {
	log.SetPrefix("histcmp: ")
	log.SetFlags(0)

	var (
		flagBins  = flag.Int("bins", 20, "number of `bins` on the shared binning")
		flagKind  = flag.String("kind", "ratio", "comparison `kind`: difference, relative_difference, ratio, split_ratio, pull, asymmetry, or efficiency")
		flagErr   = flag.String("err", "poisson", "uncertainty `method` for single-input bands: sqrt or poisson")
		flagTable = flag.Bool("table", false, "output a table instead of text")
		flagOut   = flag.String("o", "", "write a PNG panel to `file`")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [input1 [input2]]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{"-"}
	}
	if len(paths) > 2 {
		log.Fatal("expected at most two inputs")
	}

	// Read and pool the samples to fix one shared binning.
	var pooled stats.Sample
	samples := make([][]float64, len(paths))
	for i, path := range paths {
		samples[i] = readInput(path)
		pooled.Xs = append(pooled.Xs, samples[i]...)
	}
	if len(pooled.Xs) == 0 {
		log.Fatal("no input")
	}
	lo, hi := pooled.Bounds()
	if lo == hi {
		// Degenerate range; give the single value one unit bin.
		hi = lo + 1
	}
	edges := hist.UniformEdges(lo, hi, *flagBins)

	hs := make([]*hist.Histogram, len(samples))
	for i, xs := range samples {
		h, err := hist.Bin(xs, edges, paths[i])
		if err != nil {
			log.Fatal(err)
		}
		hs[i] = h
	}

	var res *compare.Result
	if len(hs) == 2 {
		var err error
		res, err = compare.Compare(hs[0], hs[1], compare.Kind(*flagKind))
		var subset *compare.SubsetError
		switch {
		case errors.As(err, &subset):
			log.Print("warning: ", subset)
		case err != nil:
			log.Fatal(err)
		}
	} else {
		res = &compare.Result{Values: hs[0].Values}
		var err error
		res.Low, res.High, err = uncert.Bands(hs[0].Values, hs[0].Variances, method(*flagErr))
		if err != nil {
			log.Fatal(err)
		}
	}

	if *flagOut != "" {
		title := paths[0]
		if len(paths) == 2 {
			title = fmt.Sprintf("%s %s vs %s", *flagKind, paths[0], paths[1])
		}
		if err := writePlot(*flagOut, title, hs[0].Centers(), res); err != nil {
			log.Fatal(err)
		}
		return
	}

	if *flagTable {
		tab := resultTable(hs[0], res)
		if err := table.Fprint(os.Stdout, tab); err != nil {
			log.Fatal(err)
		}
		return
	}

	for i, v := range res.Values {
		fmt.Printf("[%g, %g)\t%g\t-%g\t+%g", hs[0].Edges[i], hs[0].Edges[i+1], v, res.Low[i], res.High[i])
		if res.DenomLow != nil {
			fmt.Printf("\t-%g\t+%g", res.DenomLow[i], res.DenomHigh[i])
		}
		fmt.Println()
	}
}

func method(name string) uncert.Func {
	switch name {
	case "sqrt":
		return uncert.Sqrt
	case "poisson":
		return uncert.Poisson
	}
	log.Fatalf("unknown uncertainty method %q", name)
	return nil
}

func resultTable(h *hist.Histogram, res *compare.Result) *table.Table {
	b := new(table.Builder).
		Add("bin low", h.Edges[:h.Bins()]).
		Add("bin high", h.Edges[1:]).
		Add("value", res.Values).
		Add("-err", res.Low).
		Add("+err", res.High)
	if res.DenomLow != nil {
		b.Add("-err denom", res.DenomLow).Add("+err denom", res.DenomHigh)
	}
	return b.Done()
}

func readInput(path string) []float64 {
	f := os.Stdin
	if path != "-" {
		var err error
		f, err = os.Open(path)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
	}
	xs, err := scanFloats(f)
	if err != nil {
		log.Fatal(err)
	}
	return xs
}

func scanFloats(r io.Reader) ([]float64, error) {
	var xs []float64
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		v, err := strconv.ParseFloat(scanner.Text(), 64)
		if err != nil {
			return nil, err
		}
		xs = append(xs, v)
	}
	return xs, scanner.Err()
}
