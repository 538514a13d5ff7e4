// Copyright 2026 The go-histstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/histview/go-histstat/compare"
)

// points adapts a comparison result for gonum/plot error bars.
type points struct {
	x, y, low, high []float64
}

func (p points) Len() int                    { return len(p.x) }
func (p points) XY(i int) (float64, float64) { return p.x[i], p.y[i] }
func (p points) YError(i int) (float64, float64) {
	return p.low[i], p.high[i]
}

func writePlot(path, title string, centers []float64, res *compare.Result) error {
	var pts points
	for i, v := range res.Values {
		if math.IsNaN(v) {
			continue
		}
		pts.x = append(pts.x, centers[i])
		pts.y = append(pts.y, v)
		pts.low = append(pts.low, res.Low[i])
		pts.high = append(pts.high, res.High[i])
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"

	bars, err := plotter.NewYErrorBars(pts)
	if err != nil {
		return err
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	p.Add(plotter.NewGrid(), bars, scatter)

	return p.Save(6*vg.Inch, 3*vg.Inch, path)
}
