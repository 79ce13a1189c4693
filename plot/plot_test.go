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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heptrkx/trackeval/eval"
	"github.com/heptrkx/trackeval/hitgraph"
	"github.com/heptrkx/trackeval/summary"
)

// assertPNG checks that the plot was written and is not empty.
func assertPNG(t *testing.T, path string) {
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestTrainHistory(t *testing.T) {
	summaries := []summary.Summary{
		{Epoch: 0, TrainLoss: 0.9, ValidLoss: 0.95, ValidAcc: 0.6},
		{Epoch: 1, TrainLoss: 0.5, ValidLoss: 0.6, ValidAcc: 0.8},
		{Epoch: 2, TrainLoss: 0.3, ValidLoss: 0.45, ValidAcc: 0.85},
	}
	path := filepath.Join(t.TempDir(), "train_history.png")
	require.NoError(t, TrainHistory(summaries, path))
	assertPNG(t, path)
}

func TestTrainHistoryEmpty(t *testing.T) {
	err := TrainHistory(nil, filepath.Join(t.TempDir(), "train_history.png"))
	assert.Error(t, err)
}

func TestOutputsROC(t *testing.T) {
	preds := [][]float32{{0.1, 0.4}, {0.35, 0.8}}
	targets := [][]float32{{0, 0}, {1, 1}}
	metrics, err := eval.ComputeMetrics(preds, targets, eval.DefaultThreshold)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "outputs_roc.png")
	require.NoError(t, OutputsROC(preds, targets, metrics, path))
	assertPNG(t, path)
}

func TestSample(t *testing.T) {
	g := hitgraph.RandomGraph(20, 32)
	path := filepath.Join(t.TempDir(), "sample.png")
	require.NoError(t, Sample(g, nil, path))
	assertPNG(t, path)
}

func TestSampleColorMap(t *testing.T) {
	g := hitgraph.RandomGraph(20, 32)
	path := filepath.Join(t.TempDir(), "sample_colormap.png")
	require.NoError(t, Sample(g, &SampleOptions{}, path))
	assertPNG(t, path)
}
