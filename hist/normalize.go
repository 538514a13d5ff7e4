// Copyright 2026 The go-histstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hist

import (
	"fmt"
	"reflect"

	"github.com/aclements/go-gg/generic/slice"
)

// Binned pairs per-bin counts with the edges they were computed on, the
// common compute-histogram-then-plot convention. Both fields may be
// slices of any numeric element type.
type Binned struct {
	Counts interface{}
	Edges  interface{}
}

// ValueSource is the capability contract of rich histogram objects:
// per-bin values plus an axis description with edges. Implementations
// may additionally implement VarianceSource.
type ValueSource interface {
	HistValues() []float64
	BinEdges() []float64
}

// VarianceSource optionally extends ValueSource with explicit per-bin
// variances. When implemented, the variances take precedence over the
// Poisson default.
type VarianceSource interface {
	HistVariances() []float64
}

// CountSource is the legacy counts/edges/errors contract used by
// physics file-format readers. Errs are per-bin standard deviations;
// Normalize squares them into variances.
type CountSource interface {
	Counts() []float64
	BinEdges() []float64
	Errs() []float64
}

// UnsupportedInputError reports an input recognized by none of the
// histogram-like shapes Normalize accepts.
type UnsupportedInputError struct {
	Input interface{}
}

func (e *UnsupportedInputError) Error() string {
	return fmt.Sprintf("hist: unsupported histogram input of type %T", e.Input)
}

// Normalize converts any supported histogram-like input into a
// Histogram. Inputs are inspected structurally, in order:
//
//  1. a bare slice of numbers, taken as per-bin counts on the implicit
//     unit-width binning [0, N];
//  2. a Binned pair of counts and edges;
//  3. a ValueSource (optionally a VarianceSource);
//  4. a CountSource.
//
// A *Histogram passes through after revalidation. Values and variances
// are copied, never aliased, so the result is immutable with respect to
// the input. Negative values and variable bin widths are preserved
// verbatim, and explicit variances always win over the Poisson default.
func Normalize(in interface{}) (*Histogram, error) {
	switch v := in.(type) {
	case *Histogram:
		return New(copyFloats(v.Edges), copyFloats(v.Values), copyFloats(v.Variances), v.Label)
	case Binned:
		counts, ok := toFloats(v.Counts)
		if !ok {
			return nil, &UnsupportedInputError{in}
		}
		edges, ok := toFloats(v.Edges)
		if !ok {
			return nil, &UnsupportedInputError{in}
		}
		return New(edges, counts, nil, "")
	}
	if counts, ok := toFloats(in); ok {
		edges := UniformEdges(0, float64(len(counts)), len(counts))
		return New(edges, counts, nil, "")
	}
	if src, ok := in.(ValueSource); ok {
		var variances []float64
		if vs, ok := in.(VarianceSource); ok {
			variances = copyFloats(vs.HistVariances())
		}
		return New(copyFloats(src.BinEdges()), copyFloats(src.HistValues()), variances, "")
	}
	if src, ok := in.(CountSource); ok {
		errs := src.Errs()
		variances := make([]float64, len(errs))
		for i, e := range errs {
			variances[i] = e * e
		}
		return New(copyFloats(src.BinEdges()), copyFloats(src.Counts()), variances, "")
	}
	return nil, &UnsupportedInputError{in}
}

// toFloats coerces a slice of any numeric element type to a fresh
// []float64. It reports false for anything that is not such a slice.
func toFloats(x interface{}) ([]float64, bool) {
	if xs, ok := x.([]float64); ok {
		return copyFloats(xs), true
	}
	rv := reflect.ValueOf(x)
	if !rv.IsValid() || rv.Kind() != reflect.Slice {
		return nil, false
	}
	switch rv.Type().Elem().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
	default:
		return nil, false
	}
	var out []float64
	slice.Convert(&out, x)
	return out, true
}

func copyFloats(xs []float64) []float64 {
	if xs == nil {
		return nil
	}
	return append([]float64(nil), xs...)
}
