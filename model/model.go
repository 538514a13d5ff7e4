// Copyright 2026 The go-histstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package model aggregates stacked and unstacked model components into
// one total prediction with combined uncertainty.
package model

import (
	"fmt"

	"github.com/histview/go-histstat/hist"
)

// A Component is one piece of a model: either a histogram already on
// the shared binning, or a continuous function sampled at bin centers.
// The two implementations are HistComponent and FuncComponent.
type Component interface {
	// Label identifies the component in downstream display.
	Label() string

	// eval produces the component's per-bin values and variances on
	// the given edges.
	eval(edges []float64) (values, variances []float64, err error)
}

// HistComponent wraps a histogram as a model component. Its edges must
// match the shared binning passed to Aggregate.
type HistComponent struct {
	H *hist.Histogram
}

func (c HistComponent) Label() string { return c.H.Label }

func (c HistComponent) eval(edges []float64) ([]float64, []float64, error) {
	if err := hist.CheckEdges(edges, c.H.Edges); err != nil {
		return nil, nil, err
	}
	values := make([]float64, c.H.Bins())
	variances := make([]float64, c.H.Bins())
	for i := range values {
		values[i] = c.H.Values[i]
		variances[i] = c.H.Variance(i)
	}
	return values, variances, nil
}

// FuncComponent wraps a continuous function of one real variable as a
// model component. The function is evaluated at bin centers, not
// integrated over bin widths. It carries no uncertainty unless Variance
// is non-nil.
type FuncComponent struct {
	F func(float64) float64

	// Variance, if non-nil, gives the component's intrinsic variance
	// at a point.
	Variance func(float64) float64

	Name string
}

func (c FuncComponent) Label() string { return c.Name }

func (c FuncComponent) eval(edges []float64) ([]float64, []float64, error) {
	n := len(edges) - 1
	values := make([]float64, n)
	variances := make([]float64, n)
	for i := range values {
		x := (edges[i] + edges[i+1]) / 2
		values[i] = c.F(x)
		if c.Variance != nil {
			variances[i] = c.Variance(x)
		}
	}
	return values, variances, nil
}

// Aggregate sums all stacked and unstacked components on the shared
// edges into one total histogram. Stacked and unstacked components
// contribute identically to the total; the distinction only matters for
// downstream stacking order. Variances combine in quadrature, the sum
// of component variances per bin, unless propagate is false, in which
// case the total's variance is exactly zero everywhere (a model assumed
// exact). A histogram component whose edges differ from the shared
// edges fails with *hist.BinningMismatchError.
func Aggregate(stacked, unstacked []Component, edges []float64, propagate bool) (*hist.Histogram, error) {
	if len(edges) < 2 {
		return nil, fmt.Errorf("model: %d edges describe no bins", len(edges))
	}
	values := make([]float64, len(edges)-1)
	variances := make([]float64, len(edges)-1)
	for _, cs := range [2][]Component{stacked, unstacked} {
		for _, c := range cs {
			v, vv, err := c.eval(edges)
			if err != nil {
				return nil, err
			}
			for i := range values {
				values[i] += v[i]
				variances[i] += vv[i]
			}
		}
	}
	if !propagate {
		for i := range variances {
			variances[i] = 0
		}
	}
	return hist.New(edges, values, variances, "total")
}
