// Copyright 2026 The go-histstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package compare computes per-bin comparisons between two histograms
// with uncertainty propagation.
//
// All comparisons treat the two histograms as independent random
// variables. Division by a zero-valued bin is not an error: the bin's
// value and bands come back NaN so a rendering layer can skip the
// point.
package compare

import (
	"fmt"
	"math"

	"github.com/histview/go-histstat/hist"
)

// A Kind selects the comparison computed by Compare.
type Kind string

const (
	// Difference is h1 - h2.
	Difference Kind = "difference"

	// RelativeDifference is (h1 - h2) / h2.
	RelativeDifference Kind = "relative_difference"

	// Ratio is h1 / h2 with the full two-variable propagation.
	Ratio Kind = "ratio"

	// SplitRatio is h1 / h2 with the two histograms' contributions
	// reported as separate bands instead of combined.
	SplitRatio Kind = "split_ratio"

	// Pull is (h1 - h2) / sqrt(v1 + v2), a standardized residual.
	Pull Kind = "pull"

	// Asymmetry is (h1 - h2) / (h1 + h2).
	Asymmetry Kind = "asymmetry"

	// Efficiency is h1 / h2 where h1 counts a bin-wise subset of h2,
	// with binomial-regime uncertainty.
	Efficiency Kind = "efficiency"
)

// A Result holds a per-bin comparison aligned to the compared
// histograms' shared binning. Low and High are non-negative band
// magnitudes below and above Values.
type Result struct {
	Values    []float64
	Low, High []float64

	// DenomLow and DenomHigh are the denominator-attributed bands of
	// a SplitRatio comparison; Low and High then carry only the
	// numerator's contribution. They are nil for every other kind.
	DenomLow, DenomHigh []float64
}

// A SubsetError reports bins where an efficiency comparison found the
// numerator exceeding the denominator, violating the subset assumption.
// It is a warning: Compare still returns the result alongside it.
type SubsetError struct {
	Bins []int
}

func (e *SubsetError) Error() string {
	return fmt.Sprintf("compare: efficiency numerator exceeds denominator in bins %v", e.Bins)
}

// Compare computes the per-bin comparison of kind between h1 and h2,
// which must share a binning within tolerance, else it fails with
// *hist.BinningMismatchError.
//
// For the Efficiency kind a *SubsetError may be returned together with
// a non-nil Result; the result is preserved because the caller may
// intend a statistical regime the comparison cannot know about.
func Compare(h1, h2 *hist.Histogram, kind Kind) (*Result, error) {
	if err := hist.CheckEdges(h1.Edges, h2.Edges); err != nil {
		return nil, err
	}
	switch kind {
	case Difference:
		return difference(h1, h2), nil
	case RelativeDifference:
		return relativeDifference(h1, h2), nil
	case Ratio:
		return ratio(h1, h2), nil
	case SplitRatio:
		return splitRatio(h1, h2), nil
	case Pull:
		return pull(h1, h2), nil
	case Asymmetry:
		return asymmetry(h1, h2), nil
	case Efficiency:
		return efficiency(h1, h2)
	}
	return nil, fmt.Errorf("compare: unknown comparison kind %q", kind)
}

func newResult(n int) *Result {
	return &Result{
		Values: make([]float64, n),
		Low:    make([]float64, n),
		High:   make([]float64, n),
	}
}

// setNaN voids bin i, including the split bands when present.
func (r *Result) setNaN(i int) {
	nan := math.NaN()
	r.Values[i], r.Low[i], r.High[i] = nan, nan, nan
	if r.DenomLow != nil {
		r.DenomLow[i], r.DenomHigh[i] = nan, nan
	}
}

func difference(h1, h2 *hist.Histogram) *Result {
	r := newResult(h1.Bins())
	for i := range r.Values {
		r.Values[i] = h1.Values[i] - h2.Values[i]
		s := math.Sqrt(h1.Variance(i) + h2.Variance(i))
		r.Low[i], r.High[i] = s, s
	}
	return r
}

func relativeDifference(h1, h2 *hist.Histogram) *Result {
	r := newResult(h1.Bins())
	for i := range r.Values {
		a, b := h1.Values[i], h2.Values[i]
		if b == 0 {
			r.setNaN(i)
			continue
		}
		d := a - b
		r.Values[i] = d / b
		s := math.Sqrt(h1.Variance(i)/(b*b) + d*d*h2.Variance(i)/(b*b*b*b))
		r.Low[i], r.High[i] = s, s
	}
	return r
}

// ratio propagates var = v1/h2² + h1²·v2/h2⁴, the expanded form of
// (h1/h2)²·(v1/h1² + v2/h2²), which stays defined at h1 = 0.
func ratio(h1, h2 *hist.Histogram) *Result {
	r := newResult(h1.Bins())
	for i := range r.Values {
		a, b := h1.Values[i], h2.Values[i]
		if b == 0 {
			r.setNaN(i)
			continue
		}
		r.Values[i] = a / b
		s := math.Sqrt(h1.Variance(i)/(b*b) + a*a*h2.Variance(i)/(b*b*b*b))
		r.Low[i], r.High[i] = s, s
	}
	return r
}

func splitRatio(h1, h2 *hist.Histogram) *Result {
	r := newResult(h1.Bins())
	r.DenomLow = make([]float64, h1.Bins())
	r.DenomHigh = make([]float64, h1.Bins())
	for i := range r.Values {
		a, b := h1.Values[i], h2.Values[i]
		if b == 0 {
			r.setNaN(i)
			continue
		}
		r.Values[i] = a / b
		sn := math.Sqrt(h1.Variance(i)) / math.Abs(b)
		sd := math.Abs(a) * math.Sqrt(h2.Variance(i)) / (b * b)
		r.Low[i], r.High[i] = sn, sn
		r.DenomLow[i], r.DenomHigh[i] = sd, sd
	}
	return r
}

// pull reports unit bands by convention: the value is already a
// standardized residual. A bin where both variances vanish cannot be
// standardized and comes back NaN.
func pull(h1, h2 *hist.Histogram) *Result {
	r := newResult(h1.Bins())
	for i := range r.Values {
		d := math.Sqrt(h1.Variance(i) + h2.Variance(i))
		if d == 0 {
			r.setNaN(i)
			continue
		}
		r.Values[i] = (h1.Values[i] - h2.Values[i]) / d
		r.Low[i], r.High[i] = 1, 1
	}
	return r
}

func asymmetry(h1, h2 *hist.Histogram) *Result {
	r := newResult(h1.Bins())
	for i := range r.Values {
		a, b := h1.Values[i], h2.Values[i]
		t := a + b
		if t == 0 {
			r.setNaN(i)
			continue
		}
		r.Values[i] = (a - b) / t
		da := 2 * b / (t * t)
		db := 2 * a / (t * t)
		s := math.Sqrt(da*da*h1.Variance(i) + db*db*h2.Variance(i))
		r.Low[i], r.High[i] = s, s
	}
	return r
}

// efficiency assumes h1 counts a bin-wise subset of h2 and uses the
// uniform-prior Bayesian binomial variance
//
//	var = (k+1)(k+2)/((n+2)(n+3)) - (k+1)²/(n+2)²
//
// for k passing out of n total (Paterno, FERMILAB-TM-2286), which
// behaves at the 0 and 1 boundaries where the general ratio formula
// degenerates. Inside [0, 1] the bands are truncated at the boundaries,
// which is where their asymmetry shows.
func efficiency(h1, h2 *hist.Histogram) (*Result, error) {
	r := newResult(h1.Bins())
	var bad []int
	for i := range r.Values {
		k, n := h1.Values[i], h2.Values[i]
		if n == 0 {
			r.setNaN(i)
			continue
		}
		if k > n {
			bad = append(bad, i)
		}
		eff := k / n
		r.Values[i] = eff
		variance := (k+1)*(k+2)/((n+2)*(n+3)) - (k+1)*(k+1)/((n+2)*(n+2))
		// Outside the subset regime (k > n) the variance can go
		// negative; keep the bands finite for the warned-but-returned
		// result.
		s := math.Sqrt(math.Abs(variance))
		low, high := s, s
		if eff >= 0 && eff <= 1 {
			low = math.Min(low, eff)
			high = math.Min(high, 1-eff)
		}
		r.Low[i], r.High[i] = low, high
	}
	if len(bad) > 0 {
		return r, &SubsetError{Bins: bad}
	}
	return r, nil
}
