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
	"github.com/juju/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/heptrkx/trackeval/summary"
)

// TrainHistory renders the training and validation losses next to the
// validation accuracy, one point per epoch.
func TrainHistory(summaries []summary.Summary, path string) error {
	if len(summaries) == 0 {
		return errors.New("no summaries to plot")
	}
	trainLoss := make(plotter.XYs, len(summaries))
	validLoss := make(plotter.XYs, len(summaries))
	validAcc := make(plotter.XYs, len(summaries))
	for i, s := range summaries {
		epoch := float64(s.Epoch)
		trainLoss[i] = plotter.XY{X: epoch, Y: s.TrainLoss}
		validLoss[i] = plotter.XY{X: epoch, Y: s.ValidLoss}
		validAcc[i] = plotter.XY{X: epoch, Y: s.ValidAcc}
	}

	losses := plot.New()
	losses.X.Label.Text = "Epoch"
	losses.Y.Label.Text = "Loss"
	trainLine, err := plotter.NewLine(trainLoss)
	if err != nil {
		return errors.Trace(err)
	}
	trainLine.Color = colorTrain
	validLine, err := plotter.NewLine(validLoss)
	if err != nil {
		return errors.Trace(err)
	}
	validLine.Color = colorValid
	losses.Add(trainLine, validLine)
	losses.Legend.Add("Train", trainLine)
	losses.Legend.Add("Validation", validLine)
	losses.Legend.Top = true

	accuracy := plot.New()
	accuracy.X.Label.Text = "Epoch"
	accuracy.Y.Label.Text = "Accuracy"
	accuracy.Y.Min = 0
	accuracy.Y.Max = 1
	accLine, err := plotter.NewLine(validAcc)
	if err != nil {
		return errors.Trace(err)
	}
	accLine.Color = colorValid
	accuracy.Add(accLine)
	accuracy.Legend.Add("Validation", accLine)
	accuracy.Legend.Top = true

	return savePanels([]*plot.Plot{losses, accuracy}, 12*vg.Inch, 5*vg.Inch, path)
}
