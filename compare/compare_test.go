// Copyright 2026 The go-histstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compare

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/histview/go-histstat/hist"
)

var edges3 = []float64{0, 1, 2, 3}

func mustHist(t *testing.T, values, variances []float64) *hist.Histogram {
	t.Helper()
	edges := make([]float64, len(values)+1)
	for i := range edges {
		edges[i] = float64(i)
	}
	h, err := hist.New(edges, values, variances, "")
	if err != nil {
		t.Fatal(err)
	}
	return h
}

func TestDifference(t *testing.T) {
	// Two identical Poisson-default histograms: zero difference with
	// bands sqrt(v1+v2) = sqrt(2v).
	h1 := mustHist(t, []float64{10, 20, 30}, nil)
	h2 := mustHist(t, []float64{10, 20, 30}, nil)
	res, err := Compare(h1, h2, Difference)
	if err != nil {
		t.Fatal(err)
	}
	if want := []float64{0, 0, 0}; !reflect.DeepEqual(res.Values, want) {
		t.Errorf("values = %v, want %v", res.Values, want)
	}
	want := []float64{math.Sqrt(20), math.Sqrt(40), math.Sqrt(60)}
	if !reflect.DeepEqual(res.Low, want) || !reflect.DeepEqual(res.High, want) {
		t.Errorf("bands = %v / %v, want %v symmetric", res.Low, res.High, want)
	}
}

func TestRatioSelf(t *testing.T) {
	h := mustHist(t, []float64{10, 0, 30}, nil)
	res, err := Compare(h, h, Ratio)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range res.Values {
		if h.Values[i] == 0 {
			if !math.IsNaN(v) || !math.IsNaN(res.Low[i]) || !math.IsNaN(res.High[i]) {
				t.Errorf("bin %d: zero denominator gave %g (%g, %g), want NaN throughout", i, v, res.Low[i], res.High[i])
			}
			continue
		}
		if v != 1 {
			t.Errorf("bin %d: self-ratio = %g, want 1", i, v)
		}
	}
}

func TestRatioPropagation(t *testing.T) {
	h1 := mustHist(t, []float64{8}, []float64{4})
	h2 := mustHist(t, []float64{2}, []float64{1})
	res, err := Compare(h1, h2, Ratio)
	if err != nil {
		t.Fatal(err)
	}
	if res.Values[0] != 4 {
		t.Errorf("ratio = %g, want 4", res.Values[0])
	}
	// var = v1/h2² + h1²·v2/h2⁴ = 4/4 + 64/16 = 5.
	if want := math.Sqrt(5); res.Low[0] != want || res.High[0] != want {
		t.Errorf("bands = (%g, %g), want %g", res.Low[0], res.High[0], want)
	}
}

func TestRatioZeroNumerator(t *testing.T) {
	// A zero numerator is legal; only the denominator drives the NaN
	// policy.
	h1 := mustHist(t, []float64{0}, []float64{4})
	h2 := mustHist(t, []float64{2}, []float64{1})
	res, err := Compare(h1, h2, Ratio)
	if err != nil {
		t.Fatal(err)
	}
	if res.Values[0] != 0 {
		t.Errorf("ratio = %g, want 0", res.Values[0])
	}
	if want := 1.0; res.Low[0] != want {
		t.Errorf("band = %g, want %g", res.Low[0], want)
	}
}

func TestRelativeDifference(t *testing.T) {
	h1 := mustHist(t, []float64{6}, []float64{4})
	h2 := mustHist(t, []float64{2}, []float64{1})
	res, err := Compare(h1, h2, RelativeDifference)
	if err != nil {
		t.Fatal(err)
	}
	if res.Values[0] != 2 {
		t.Errorf("relative difference = %g, want 2", res.Values[0])
	}
	// var = v1/h2² + (h1-h2)²·v2/h2⁴ = 4/4 + 16/16 = 2.
	if want := math.Sqrt(2); res.Low[0] != want {
		t.Errorf("band = %g, want %g", res.Low[0], want)
	}
}

func TestSplitRatio(t *testing.T) {
	h1 := mustHist(t, []float64{8}, []float64{4})
	h2 := mustHist(t, []float64{2}, []float64{1})
	res, err := Compare(h1, h2, SplitRatio)
	if err != nil {
		t.Fatal(err)
	}
	// Numerator band sqrt(v1)/h2, denominator band h1·sqrt(v2)/h2².
	if want := 1.0; res.Low[0] != want || res.High[0] != want {
		t.Errorf("numerator band = (%g, %g), want %g", res.Low[0], res.High[0], want)
	}
	if want := 2.0; res.DenomLow[0] != want || res.DenomHigh[0] != want {
		t.Errorf("denominator band = (%g, %g), want %g", res.DenomLow[0], res.DenomHigh[0], want)
	}
}

func TestSplitRatioOnlyKindWithDenomBands(t *testing.T) {
	h := mustHist(t, []float64{10, 20, 30}, nil)
	for _, kind := range []Kind{Difference, RelativeDifference, Ratio, Pull, Asymmetry, Efficiency} {
		res, err := Compare(h, h, kind)
		if err != nil {
			t.Fatal(err)
		}
		if res.DenomLow != nil || res.DenomHigh != nil {
			t.Errorf("%s populated denominator bands", kind)
		}
	}
}

func TestPullSelf(t *testing.T) {
	h := mustHist(t, []float64{10, 20, 30}, nil)
	res, err := Compare(h, h, Pull)
	if err != nil {
		t.Fatal(err)
	}
	ones := []float64{1, 1, 1}
	if want := []float64{0, 0, 0}; !reflect.DeepEqual(res.Values, want) {
		t.Errorf("values = %v, want %v", res.Values, want)
	}
	if !reflect.DeepEqual(res.Low, ones) || !reflect.DeepEqual(res.High, ones) {
		t.Errorf("bands = %v / %v, want unit bands", res.Low, res.High)
	}
}

func TestPullZeroVariance(t *testing.T) {
	h1 := mustHist(t, []float64{3}, []float64{0})
	h2 := mustHist(t, []float64{5}, []float64{0})
	res, err := Compare(h1, h2, Pull)
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(res.Values[0]) {
		t.Errorf("pull with no variance = %g, want NaN", res.Values[0])
	}
}

func TestAsymmetry(t *testing.T) {
	h1 := mustHist(t, []float64{3}, []float64{2})
	h2 := mustHist(t, []float64{1}, []float64{1})
	res, err := Compare(h1, h2, Asymmetry)
	if err != nil {
		t.Fatal(err)
	}
	if res.Values[0] != 0.5 {
		t.Errorf("asymmetry = %g, want 0.5", res.Values[0])
	}
	// var = [2·h2/(h1+h2)²]²·v1 + [2·h1/(h1+h2)²]²·v2
	//     = (2/16)²·2 + (6/16)²·1
	da := 2.0 * 1 / 16
	db := 2.0 * 3 / 16
	want := math.Sqrt(da*da*2 + db*db*1)
	if res.Low[0] != want {
		t.Errorf("band = %g, want %g", res.Low[0], want)
	}
}

func TestAsymmetryZeroSum(t *testing.T) {
	h1 := mustHist(t, []float64{2}, []float64{1})
	h2 := mustHist(t, []float64{-2}, []float64{1})
	res, err := Compare(h1, h2, Asymmetry)
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(res.Values[0]) {
		t.Errorf("asymmetry with h1+h2 = 0 gave %g, want NaN", res.Values[0])
	}
}

func TestEfficiencySubset(t *testing.T) {
	h1 := mustHist(t, []float64{4, 20, 31}, nil)
	h2 := mustHist(t, []float64{10, 20, 30}, nil)
	res, err := Compare(h1, h2, Efficiency)
	var subset *SubsetError
	if !errors.As(err, &subset) {
		t.Fatalf("got error %v, want SubsetError", err)
	}
	if want := []int{2}; !reflect.DeepEqual(subset.Bins, want) {
		t.Errorf("violating bins = %v, want %v", subset.Bins, want)
	}
	// The warning is non-fatal: the result still comes back.
	if res == nil {
		t.Fatal("no result alongside SubsetError")
	}
	if res.Values[0] != 0.4 || res.Values[1] != 1 {
		t.Errorf("efficiencies = %v, want [0.4 1 ...]", res.Values)
	}
}

func TestEfficiencyVariance(t *testing.T) {
	h1 := mustHist(t, []float64{4}, nil)
	h2 := mustHist(t, []float64{10}, nil)
	res, err := Compare(h1, h2, Efficiency)
	if err != nil {
		t.Fatal(err)
	}
	// Uniform-prior binomial variance for k=4 of n=10, computed
	// through float64 variables so the rounding matches the
	// implementation step for step.
	k, n := 4.0, 10.0
	want := math.Sqrt((k+1)*(k+2)/((n+2)*(n+3)) - (k+1)*(k+1)/((n+2)*(n+2)))
	if res.Low[0] != want || res.High[0] != want {
		t.Errorf("bands = (%g, %g), want %g", res.Low[0], res.High[0], want)
	}
}

func TestEfficiencyBoundary(t *testing.T) {
	// At zero and full efficiency the bands truncate at the physical
	// range instead of crossing it.
	h1 := mustHist(t, []float64{0, 10}, nil)
	h2 := mustHist(t, []float64{10, 10}, nil)
	res, err := Compare(h1, h2, Efficiency)
	if err != nil {
		t.Fatal(err)
	}
	if res.Low[0] != 0 {
		t.Errorf("low band below zero efficiency = %g, want 0", res.Low[0])
	}
	if res.High[1] != 0 {
		t.Errorf("high band above full efficiency = %g, want 0", res.High[1])
	}
	if !(res.High[0] > 0) {
		t.Errorf("high band at zero efficiency = %g, want > 0", res.High[0])
	}
	if !(res.Low[1] > 0) {
		t.Errorf("low band at full efficiency = %g, want > 0", res.Low[1])
	}
}

func TestEfficiencySubsetBandsFinite(t *testing.T) {
	// Far outside the subset regime the raw variance goes negative;
	// the bands must still come back finite alongside the warning.
	h1 := mustHist(t, []float64{40}, nil)
	h2 := mustHist(t, []float64{10}, nil)
	res, err := Compare(h1, h2, Efficiency)
	var subset *SubsetError
	if !errors.As(err, &subset) {
		t.Fatalf("got error %v, want SubsetError", err)
	}
	if math.IsNaN(res.Low[0]) || math.IsNaN(res.High[0]) {
		t.Errorf("bands = (%g, %g), want finite", res.Low[0], res.High[0])
	}
}

func TestEfficiencyZeroDenominator(t *testing.T) {
	h1 := mustHist(t, []float64{0}, nil)
	h2 := mustHist(t, []float64{0}, nil)
	res, err := Compare(h1, h2, Efficiency)
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(res.Values[0]) {
		t.Errorf("efficiency with empty denominator = %g, want NaN", res.Values[0])
	}
}

func TestCompareBinningMismatch(t *testing.T) {
	h1, err := hist.New([]float64{0, 1, 2}, []float64{1, 2}, nil, "")
	if err != nil {
		t.Fatal(err)
	}
	h2, err := hist.New([]float64{0, 1, 3}, []float64{1, 2}, nil, "")
	if err != nil {
		t.Fatal(err)
	}
	_, err = Compare(h1, h2, Ratio)
	var mismatch *hist.BinningMismatchError
	if !errors.As(err, &mismatch) {
		t.Errorf("got %v, want BinningMismatchError", err)
	}
}

func TestCompareUnknownKind(t *testing.T) {
	h := mustHist(t, []float64{1}, nil)
	if _, err := Compare(h, h, Kind("chi2")); err == nil {
		t.Error("unknown kind accepted")
	}
}

func TestCompareDeterministic(t *testing.T) {
	h1 := mustHist(t, []float64{3, 0, 7}, []float64{2, 0, 5})
	h2 := mustHist(t, []float64{4, 1, 7}, []float64{3, 1, 5})
	first, err := Compare(h1, h2, Asymmetry)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		again, err := Compare(h1, h2, Asymmetry)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differed from first run", i)
		}
	}
}
