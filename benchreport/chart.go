// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchreport

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgsvg"

	"golang.org/x/benchreport/benchgroup"
)

const (
	chartWidth = 6 * vg.Inch
	barWidth   = 14
)

var (
	baselineColor = color.NRGBA{0x33, 0x99, 0x33, 0xff}
	barColor      = color.NRGBA{0x44, 0x66, 0xcc, 0xff}
)

// Chart draws the relative scores of g as a horizontal bar chart and
// returns it as an SVG document without an XML prolog, so it can be
// embedded in HTML.
//
// It is an error for any score to be infinite.
func Chart(g *benchgroup.Group) ([]byte, error) {
	scores := g.Scores()
	names := make([]string, len(scores))
	for i, s := range scores {
		if math.IsInf(s.Ratio, 0) || math.IsNaN(s.Ratio) {
			return nil, fmt.Errorf("score of %s is %v", s.Benchmark.Fullname, s.Ratio)
		}
		names[i] = s.Source.MemberLabel
	}

	pl := plot.New()
	pl.Title.Text = g.Name()
	pl.X.Label.Text = "relative to fastest"
	pl.X.Min = 0

	grid := plotter.NewGrid()
	grid.Horizontal.Color = nil
	pl.Add(grid)

	// One bar chart per score so the baseline can be colored on its
	// own. Offsets are zero because every chart has a single bar at
	// its own location.
	for i, s := range scores {
		bars, err := plotter.NewBarChart(plotter.Values{s.Ratio}, vg.Points(barWidth))
		if err != nil {
			return nil, err
		}
		bars.Horizontal = true
		bars.XMin = float64(i)
		bars.LineStyle.Width = 0
		bars.Color = barColor
		if i == 0 {
			bars.Color = baselineColor
		}
		pl.Add(bars)
	}
	pl.NominalY(names...)

	height := vg.Points(float64(60 + 2*barWidth*len(scores)))
	c := vgsvg.New(chartWidth, height)
	pl.Draw(draw.New(c))

	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return nil, err
	}
	return stripProlog(buf.Bytes()), nil
}

// stripProlog removes everything before the root svg element.
func stripProlog(svg []byte) []byte {
	if i := bytes.Index(svg, []byte("<svg")); i > 0 {
		return svg[i:]
	}
	return svg
}
