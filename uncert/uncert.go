// Copyright 2026 The go-histstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package uncert estimates per-bin uncertainty bands for histogram
// values.
package uncert

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// poissonCoverage is the central coverage of the Poisson interval:
// one Gaussian standard deviation, so that the Poisson bands converge
// to the sqrt bands at high counts.
const poissonCoverage = 0.682689492137086

// A Func computes lower and upper uncertainty bands for per-bin values
// with the given per-bin variances. Both returned slices must have the
// same length as the inputs. Custom estimators are ordinary Funcs;
// Bands applies them without clipping or validating their numeric
// content.
type Func func(values, variances []float64) (low, high []float64)

// LengthError reports disagreeing sequence lengths, either between the
// inputs of Bands or in the output of a custom estimator.
type LengthError struct {
	Detail string
}

func (e *LengthError) Error() string {
	return e.Detail
}

// Bands applies method to values and variances after checking that the
// two inputs agree in length, and that the method's output does too.
// A nil variances slice selects the Poisson counting default, variance
// equal to value. A nil method selects Sqrt.
func Bands(values, variances []float64, method Func) (low, high []float64, err error) {
	if variances == nil {
		variances = values
	}
	if len(values) != len(variances) {
		return nil, nil, &LengthError{fmt.Sprintf("uncert: %d values with %d variances", len(values), len(variances))}
	}
	if method == nil {
		method = Sqrt
	}
	low, high = method(values, variances)
	if len(low) != len(values) || len(high) != len(values) {
		return nil, nil, &LengthError{fmt.Sprintf("uncert: estimator returned %d-low/%d-high bands for %d values", len(low), len(high), len(values))}
	}
	return low, high, nil
}

// Sqrt is the symmetric estimator: both bands are the square root of
// the per-bin variance.
func Sqrt(values, variances []float64) (low, high []float64) {
	low = make([]float64, len(values))
	high = make([]float64, len(values))
	for i := range values {
		s := math.Sqrt(variances[i])
		low[i], high[i] = s, s
	}
	return low, high
}

// Poisson is the Garwood central interval for counting histograms. For
// an observed count v it returns
//
//	low  = v - Q(α/2; v)
//	high = Q(1-α/2; v+1) - v
//
// where Q(p; k) is the p-quantile of the gamma distribution with shape
// k and unit scale, and α complements the one-sigma coverage. The
// lower band of an empty bin is exactly zero, while its upper band
// stays finite and positive, which is where this interval has correct
// coverage and sqrt does not. For large v both bands approach sqrt(v).
//
// The construction is defined on counts; bins below zero get the
// zero-count interval. Variances are ignored.
func Poisson(values, variances []float64) (low, high []float64) {
	low = make([]float64, len(values))
	high = make([]float64, len(values))
	alpha := 1 - poissonCoverage
	for i, v := range values {
		if v < 0 {
			v = 0
		}
		if v > 0 {
			g := distuv.Gamma{Alpha: v, Beta: 1}
			low[i] = v - g.Quantile(alpha/2)
		}
		g := distuv.Gamma{Alpha: v + 1, Beta: 1}
		high[i] = g.Quantile(1-alpha/2) - v
	}
	return low, high
}
