// Copyright 2026 The go-histstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hist defines the canonical histogram representation shared by
// the uncertainty, aggregation, and comparison packages, and normalizes
// histogram-like inputs from external libraries into it.
package hist

import (
	"fmt"

	"github.com/aclements/go-moremath/vec"
)

// A Histogram is an ordered binning of the real line with one value per
// bin and an optional variance per bin.
type Histogram struct {
	// Edges is the strictly increasing sequence of bin edges. There
	// is one more edge than there are bins: the ith bin spans
	// [Edges[i], Edges[i+1]).
	Edges []float64

	// Values is the per-bin content. Values may be negative, as in
	// difference or pull histograms.
	Values []float64

	// Variances is the per-bin variance of Values. If Variances is
	// nil, the variance of each bin defaults to its value, the
	// Poisson counting assumption.
	Variances []float64

	// Label identifies the histogram in downstream display. It has
	// no numeric meaning.
	Label string
}

// New constructs a Histogram after validating the shape invariants:
// edges strictly increasing and one longer than values, and variances
// either nil or as long as values. The slices are retained, not copied;
// the caller must not modify them afterward.
func New(edges, values, variances []float64, label string) (*Histogram, error) {
	if len(edges) != len(values)+1 {
		return nil, fmt.Errorf("hist: %d edges for %d bins; want %d", len(edges), len(values), len(values)+1)
	}
	if len(edges) < 2 {
		return nil, fmt.Errorf("hist: need at least one bin")
	}
	for i := 1; i < len(edges); i++ {
		if !(edges[i] > edges[i-1]) {
			return nil, fmt.Errorf("hist: edges not strictly increasing at edge %d: %g !< %g", i, edges[i-1], edges[i])
		}
	}
	if variances != nil && len(variances) != len(values) {
		return nil, fmt.Errorf("hist: %d variances for %d bins", len(variances), len(values))
	}
	return &Histogram{Edges: edges, Values: values, Variances: variances, Label: label}, nil
}

// Bins returns the number of bins.
func (h *Histogram) Bins() int {
	return len(h.Values)
}

// Variance returns the variance of bin i, applying the Poisson default
// (variance equals value) when no explicit variances were supplied.
func (h *Histogram) Variance(i int) float64 {
	if h.Variances == nil {
		return h.Values[i]
	}
	return h.Variances[i]
}

// Centers returns the midpoints of all bins.
func (h *Histogram) Centers() []float64 {
	out := make([]float64, h.Bins())
	for i := range out {
		out[i] = (h.Edges[i] + h.Edges[i+1]) / 2
	}
	return out
}

// Widths returns the widths of all bins.
func (h *Histogram) Widths() []float64 {
	out := make([]float64, h.Bins())
	for i := range out {
		out[i] = h.Edges[i+1] - h.Edges[i]
	}
	return out
}

// Sum returns the total of all bin values.
func (h *Histogram) Sum() float64 {
	s := 0.0
	for _, v := range h.Values {
		s += v
	}
	return s
}

// UniformEdges returns n+1 evenly spaced edges covering [lo, hi].
func UniformEdges(lo, hi float64, n int) []float64 {
	return vec.Linspace(lo, hi, n+1)
}

// Bin fills a histogram on the given edges from raw samples. Samples
// outside [edges[0], edges[len(edges)-1]) are dropped; the canonical
// form has no underflow or overflow bins. The last bin is closed on the
// right so that the upper bound itself is counted.
func Bin(samples, edges []float64, label string) (*Histogram, error) {
	values := make([]float64, len(edges)-1)
	h, err := New(edges, values, nil, label)
	if err != nil {
		return nil, err
	}
	for _, x := range samples {
		if x < edges[0] || x > edges[len(edges)-1] {
			continue
		}
		if x == edges[len(edges)-1] {
			values[len(values)-1]++
			continue
		}
		// Binary search for the bin containing x.
		lo, hi := 0, len(values)
		for lo+1 < hi {
			mid := (lo + hi) / 2
			if x < edges[mid] {
				hi = mid
			} else {
				lo = mid
			}
		}
		values[lo]++
	}
	return h, nil
}
