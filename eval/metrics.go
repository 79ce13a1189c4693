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

// Package eval computes binary classification metrics over segment scores.
package eval

import (
	"math"
	"sort"

	"github.com/juju/errors"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/integrate"
)

// DefaultThreshold is the decision boundary applied to scores and labels.
const DefaultThreshold = 0.5

// Metrics bundles the evaluation results of one model. Created once by
// ComputeMetrics and never mutated.
type Metrics struct {
	// decision boundary metrics
	Accuracy  float64
	Precision float64
	Recall    float64
	// precision-recall curve
	PRCPrecision  []float64
	PRCRecall     []float64
	PRCThresholds []float64
	// ROC curve
	ROCFPR        []float64
	ROCTPR        []float64
	ROCThresholds []float64
	AUC           float64
}

// ComputeMetrics concatenates per-batch predictions and targets, thresholds
// both into binary labels for the decision boundary metrics, and sweeps the
// distinct score cutoffs for the precision-recall and ROC curves. The curves
// require both classes to be present in the thresholded targets.
func ComputeMetrics(preds, targets [][]float32, threshold float32) (*Metrics, error) {
	scores := lo.Flatten(preds)
	labels := lo.Flatten(targets)
	if len(scores) == 0 {
		return nil, errors.New("no predictions to evaluate")
	}
	if len(scores) != len(labels) {
		return nil, errors.Errorf("%d predictions vs %d targets", len(scores), len(labels))
	}
	truth := make([]bool, len(labels))
	nPos, nNeg := 0, 0
	for i, label := range labels {
		truth[i] = label > threshold
		if truth[i] {
			nPos++
		} else {
			nNeg++
		}
	}

	// decision boundary metrics
	var tp, fp, fn, correct float64
	for i, score := range scores {
		predicted := score > threshold
		if predicted == truth[i] {
			correct++
		}
		switch {
		case predicted && truth[i]:
			tp++
		case predicted && !truth[i]:
			fp++
		case !predicted && truth[i]:
			fn++
		}
	}
	metrics := &Metrics{Accuracy: correct / float64(len(scores))}
	if tp+fp > 0 {
		metrics.Precision = tp / (tp + fp)
	}
	if tp+fn > 0 {
		metrics.Recall = tp / (tp + fn)
	}

	// curves are undefined for single class targets
	if nPos == 0 || nNeg == 0 {
		return nil, errors.Errorf("curves undefined: targets contain a single class (%d positive, %d negative)", nPos, nNeg)
	}

	// cumulative true/false positives at each distinct score cutoff, from the
	// highest score down
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})
	var cutoffs, tps, fps []float64
	cumTP, cumFP := 0.0, 0.0
	for k, i := range order {
		if truth[i] {
			cumTP++
		} else {
			cumFP++
		}
		if k+1 == len(order) || scores[order[k+1]] != scores[i] {
			cutoffs = append(cutoffs, float64(scores[i]))
			tps = append(tps, cumTP)
			fps = append(fps, cumFP)
		}
	}

	// ROC curve starts at the origin with an unreachable cutoff
	metrics.ROCFPR = append(metrics.ROCFPR, 0)
	metrics.ROCTPR = append(metrics.ROCTPR, 0)
	metrics.ROCThresholds = append(metrics.ROCThresholds, math.Inf(1))
	for i := range cutoffs {
		metrics.ROCFPR = append(metrics.ROCFPR, fps[i]/float64(nNeg))
		metrics.ROCTPR = append(metrics.ROCTPR, tps[i]/float64(nPos))
		metrics.ROCThresholds = append(metrics.ROCThresholds, cutoffs[i])
	}
	metrics.AUC = integrate.Trapezoidal(metrics.ROCFPR, metrics.ROCTPR)

	// precision-recall curve with thresholds ascending, closed by the
	// conventional (precision=1, recall=0) end point
	for i := len(cutoffs) - 1; i >= 0; i-- {
		metrics.PRCPrecision = append(metrics.PRCPrecision, tps[i]/(tps[i]+fps[i]))
		metrics.PRCRecall = append(metrics.PRCRecall, tps[i]/float64(nPos))
		metrics.PRCThresholds = append(metrics.PRCThresholds, cutoffs[i])
	}
	metrics.PRCPrecision = append(metrics.PRCPrecision, 1)
	metrics.PRCRecall = append(metrics.PRCRecall, 0)
	return metrics, nil
}
