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
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"github.com/juju/errors"
	"go.uber.org/zap"

	"github.com/heptrkx/trackeval/base/log"
	"github.com/heptrkx/trackeval/config"
	"github.com/heptrkx/trackeval/nn"
)

const (
	checkpointDir     = "checkpoints"
	checkpointPattern = "model_checkpoint_%03d.pth.tar"
)

// TensorState is the serialized form of one parameter tensor.
type TensorState struct {
	Shape []int
	Data  []float32
}

// Checkpoint is the serialized snapshot written once per training epoch. The
// Model field holds the named parameter state.
type Checkpoint struct {
	Epoch int
	Model map[string]TensorState
}

// CheckpointPath returns the checkpoint file for an epoch, inside the
// checkpoints subdirectory of the experiment output directory.
func CheckpointPath(outputDir string, epoch int) string {
	return filepath.Join(outputDir, checkpointDir, fmt.Sprintf(checkpointPattern, epoch))
}

// SaveCheckpoint writes the model parameter state for an epoch.
func SaveCheckpoint(outputDir string, epoch int, m Model) error {
	state := make(map[string]TensorState)
	for name, t := range m.Parameters() {
		state[name] = TensorState{Shape: t.Shape(), Data: t.Data()}
	}
	path := CheckpointPath(outputDir, epoch)
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return errors.Trace(err)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Trace(err)
	}
	defer f.Close()
	return errors.Trace(gob.NewEncoder(f).Encode(Checkpoint{
		Epoch: epoch,
		Model: state,
	}))
}

// LoadCheckpoint constructs the model described by the configuration and
// reloads its parameters from the checkpoint of the given epoch.
func LoadCheckpoint(conf *config.Config, epoch int) (Model, error) {
	m, err := FromConfig(conf)
	if err != nil {
		return nil, errors.Trace(err)
	}
	outputDir, err := conf.GetOutputDir()
	if err != nil {
		return nil, errors.Trace(err)
	}
	path := CheckpointPath(outputDir, epoch)
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer f.Close()
	var checkpoint Checkpoint
	if err = gob.NewDecoder(f).Decode(&checkpoint); err != nil {
		return nil, errors.Trace(err)
	}
	state := make(map[string]*nn.Tensor, len(checkpoint.Model))
	for name, t := range checkpoint.Model {
		state[name] = nn.NewTensor(t.Data, t.Shape...)
	}
	if err = m.LoadParameters(state); err != nil {
		return nil, errors.Trace(err)
	}
	log.Logger().Info("loaded model checkpoint",
		zap.String("file", path),
		zap.Int("epoch", checkpoint.Epoch),
		zap.Int("n_parameters", NumParameters(m)))
	return m, nil
}
