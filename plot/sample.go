// Copyright 2025 trackeval Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package plot

import (
	"image/color"

	"github.com/juju/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/heptrkx/trackeval/hitgraph"
)

// SampleOptions controls how segments are shaded in Sample. With AlphaLabels
// the segments are black with opacity equal to the label, otherwise the label
// picks a color from ColorMap (red for fake, blue for real).
type SampleOptions struct {
	AlphaLabels bool
	ColorMap    palette.ColorMap
}

// feature columns of the hit matrix
const (
	featR = iota
	featPhi
	featZ
)

// Sample draws one event in the r-z and r-phi projections: hits as black
// points, candidate segments as lines shaded by their label.
func Sample(g *hitgraph.Graph, opts *SampleOptions, path string) error {
	if opts == nil {
		opts = &SampleOptions{AlphaLabels: true}
	}
	if opts.ColorMap == nil {
		colorMap := moreland.SmoothBlueRed()
		colorMap.SetMin(0)
		colorMap.SetMax(1)
		opts.ColorMap = colorMap
	}

	rz := plot.New()
	rz.X.Label.Text = "z"
	rz.Y.Label.Text = "r"
	rphi := plot.New()
	rphi.X.Label.Text = "phi"
	rphi.Y.Label.Text = "r"

	// draw the hits
	hits := make(plotter.XYs, g.NumHits())
	for i := range hits {
		hits[i] = plotter.XY{X: float64(g.X.At(i, featZ)), Y: float64(g.X.At(i, featR))}
	}
	if err := addHits(rz, hits); err != nil {
		return errors.Trace(err)
	}
	for i := range hits {
		hits[i] = plotter.XY{X: float64(g.X.At(i, featPhi)), Y: float64(g.X.At(i, featR))}
	}
	if err := addHits(rphi, hits); err != nil {
		return errors.Trace(err)
	}

	// draw the segments between their end point hits
	in, out := g.SegmentEnds()
	for j := 0; j < g.NumSegments(); j++ {
		var segColor color.Color
		if opts.AlphaLabels {
			segColor = color.NRGBA{A: uint8(g.Y[j] * 255)}
		} else {
			mapped, err := opts.ColorMap.At(1 - float64(g.Y[j]))
			if err != nil {
				return errors.Trace(err)
			}
			segColor = mapped
		}
		err := addSegment(rz, segColor,
			plotter.XY{X: float64(g.X.At(out[j], featZ)), Y: float64(g.X.At(out[j], featR))},
			plotter.XY{X: float64(g.X.At(in[j], featZ)), Y: float64(g.X.At(in[j], featR))})
		if err != nil {
			return errors.Trace(err)
		}
		err = addSegment(rphi, segColor,
			plotter.XY{X: float64(g.X.At(out[j], featPhi)), Y: float64(g.X.At(out[j], featR))},
			plotter.XY{X: float64(g.X.At(in[j], featPhi)), Y: float64(g.X.At(in[j], featR))})
		if err != nil {
			return errors.Trace(err)
		}
	}

	return savePanels([]*plot.Plot{rz, rphi}, 15*vg.Inch, 7*vg.Inch, path)
}

func addHits(p *plot.Plot, xys plotter.XYs) error {
	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return errors.Trace(err)
	}
	scatter.GlyphStyle.Color = color.Black
	scatter.GlyphStyle.Radius = vg.Points(1.5)
	p.Add(scatter)
	return nil
}

func addSegment(p *plot.Plot, c color.Color, from, to plotter.XY) error {
	line, err := plotter.NewLine(plotter.XYs{from, to})
	if err != nil {
		return errors.Trace(err)
	}
	line.Color = c
	line.Width = vg.Points(0.75)
	p.Add(line)
	return nil
}
