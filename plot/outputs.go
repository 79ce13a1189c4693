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
	"fmt"

	"github.com/juju/errors"
	"github.com/samber/lo"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/heptrkx/trackeval/eval"
)

const histogramBins = 25

// stepHistogram bins values over [0, 1] and returns the counts as a step
// line.
func stepHistogram(values []float32) (*plotter.Line, error) {
	counts := make([]float64, histogramBins)
	for _, v := range values {
		bin := int(v * histogramBins)
		if bin < 0 {
			bin = 0
		} else if bin >= histogramBins {
			bin = histogramBins - 1
		}
		counts[bin]++
	}
	xys := make(plotter.XYs, 0, histogramBins+1)
	for i, count := range counts {
		xys = append(xys, plotter.XY{X: float64(i) / histogramBins, Y: count})
	}
	xys = append(xys, plotter.XY{X: 1, Y: counts[histogramBins-1]})
	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, errors.Trace(err)
	}
	line.StepStyle = plotter.PostStep
	return line, nil
}

// OutputsROC renders the model output distribution split by true label next
// to the ROC curve.
func OutputsROC(preds, targets [][]float32, metrics *eval.Metrics, path string) error {
	scores := lo.Flatten(preds)
	labels := lo.Flatten(targets)
	if len(scores) != len(labels) {
		return errors.Errorf("%d predictions vs %d targets", len(scores), len(labels))
	}
	var fake, real []float32
	for i, score := range scores {
		if labels[i] > eval.DefaultThreshold {
			real = append(real, score)
		} else {
			fake = append(fake, score)
		}
	}

	outputs := plot.New()
	outputs.X.Label.Text = "Model output"
	fakeLine, err := stepHistogram(fake)
	if err != nil {
		return errors.Trace(err)
	}
	fakeLine.Color = colorTrain
	realLine, err := stepHistogram(real)
	if err != nil {
		return errors.Trace(err)
	}
	realLine.Color = colorValid
	outputs.Add(fakeLine, realLine)
	outputs.Legend.Add("fake", fakeLine)
	outputs.Legend.Add("real", realLine)
	outputs.Legend.Top = true

	roc := plot.New()
	roc.Title.Text = fmt.Sprintf("ROC curve, AUC = %.3f", metrics.AUC)
	roc.X.Label.Text = "False positive rate"
	roc.Y.Label.Text = "True positive rate"
	curve := make(plotter.XYs, len(metrics.ROCFPR))
	for i := range curve {
		curve[i] = plotter.XY{X: metrics.ROCFPR[i], Y: metrics.ROCTPR[i]}
	}
	rocLine, err := plotter.NewLine(curve)
	if err != nil {
		return errors.Trace(err)
	}
	rocLine.Color = colorTrain
	diagonal, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 1}})
	if err != nil {
		return errors.Trace(err)
	}
	diagonal.Color = colorValid
	diagonal.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	roc.Add(rocLine, diagonal)

	return savePanels([]*plot.Plot{outputs, roc}, 12*vg.Inch, 5*vg.Inch, path)
}
