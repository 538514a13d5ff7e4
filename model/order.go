// Copyright 2026 The go-histstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import "sort"

// An Order selects how components are arranged for stacked display.
type Order int

const (
	// ByDeclaration keeps the caller's order.
	ByDeclaration Order = iota

	// ByYield orders by total component value, smallest first, the
	// usual stacking convention.
	ByYield

	// ByLabel orders lexicographically by label.
	ByLabel
)

// Sort returns a fresh slice with components arranged for stacked
// display. The sort is stable, so ties keep their declared order.
// Descending reverses the result, including for ByDeclaration.
func Sort(components []Component, o Order, descending bool) []Component {
	out := append([]Component(nil), components...)
	switch o {
	case ByYield:
		sort.SliceStable(out, func(i, j int) bool { return yield(out[i]) < yield(out[j]) })
	case ByLabel:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Label() < out[j].Label() })
	}
	if descending {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// yield is the total value of a histogram component. Function
// components have no yield until sampled on a binning and sort as zero.
func yield(c Component) float64 {
	if h, ok := c.(HistComponent); ok {
		return h.H.Sum()
	}
	return 0
}
