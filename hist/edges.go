// Copyright 2026 The go-histstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hist

import (
	"fmt"
	"math"
)

// Per-edge comparison tolerance: |a-b| <= edgeAbsTol + edgeRelTol*|b|.
const (
	edgeAbsTol = 1e-8
	edgeRelTol = 1e-5
)

// BinningMismatchError reports that two histograms required to share a
// binning have different bin edges.
type BinningMismatchError struct {
	// Index is the first differing edge, or -1 if the edge counts
	// themselves differ.
	Index       int
	Want, Got   float64
	NWant, NGot int
}

func (e *BinningMismatchError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("hist: binning mismatch: %d edges vs %d", e.NWant, e.NGot)
	}
	return fmt.Sprintf("hist: binning mismatch at edge %d: %g vs %g", e.Index, e.Want, e.Got)
}

// CheckEdges returns a *BinningMismatchError if got differs from want,
// comparing edge by edge within a fixed small tolerance, and nil
// otherwise.
func CheckEdges(want, got []float64) error {
	if len(want) != len(got) {
		return &BinningMismatchError{Index: -1, NWant: len(want), NGot: len(got)}
	}
	for i, w := range want {
		if math.Abs(got[i]-w) > edgeAbsTol+edgeRelTol*math.Abs(w) {
			return &BinningMismatchError{Index: i, Want: w, Got: got[i]}
		}
	}
	return nil
}

// EdgesEqual reports whether two edge sequences describe the same
// binning within tolerance.
func EdgesEqual(a, b []float64) bool {
	return CheckEdges(a, b) == nil
}
