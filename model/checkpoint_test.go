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

package model

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heptrkx/trackeval/config"
	"github.com/heptrkx/trackeval/hitgraph"
)

func TestCheckpointPath(t *testing.T) {
	path := CheckpointPath("/tmp/experiment", 7)
	assert.Equal(t, "/tmp/experiment/checkpoints/model_checkpoint_007.pth.tar", path)
}

func TestSaveLoadCheckpoint(t *testing.T) {
	dir := t.TempDir()
	conf := &config.Config{
		OutputDir: dir,
		Model: map[string]interface{}{
			"name":       "segment_classifier",
			"hidden_dim": 4,
			"n_iters":    2,
		},
	}
	src := NewSegmentClassifier(Params{"hidden_dim": 4, "n_iters": 2})
	require.NoError(t, SaveCheckpoint(dir, 7, src))
	_, err := os.Stat(CheckpointPath(dir, 7))
	require.NoError(t, err)

	dst, err := LoadCheckpoint(conf, 7)
	require.NoError(t, err)
	g := hitgraph.RandomGraph(10, 16)
	assert.Equal(t, src.Forward(g).Data(), dst.Forward(g).Data())
}

func TestLoadCheckpointMissingEpoch(t *testing.T) {
	conf := &config.Config{
		OutputDir: t.TempDir(),
		Model:     map[string]interface{}{"name": "segment_classifier"},
	}
	_, err := LoadCheckpoint(conf, 3)
	assert.Error(t, err)
}

func TestLoadCheckpointShapeMismatch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, SaveCheckpoint(dir, 1, NewSegmentClassifier(Params{"hidden_dim": 4})))
	conf := &config.Config{
		OutputDir: dir,
		Model: map[string]interface{}{
			"name":       "segment_classifier",
			"hidden_dim": 8,
		},
	}
	_, err := LoadCheckpoint(conf, 1)
	assert.Error(t, err)
}
