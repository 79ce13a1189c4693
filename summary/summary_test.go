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

package summary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	expected := []Summary{
		{Epoch: 0, TrainLoss: 0.9, ValidLoss: 0.95, ValidAcc: 0.5},
		{Epoch: 1, TrainLoss: 0.5, ValidLoss: 0.6, ValidAcc: 0.7},
		{Epoch: 2, TrainLoss: 0.3, ValidLoss: 0.4, ValidAcc: 0.85},
	}
	require.NoError(t, Save(dir, expected))
	summaries, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, expected, summaries)
}

func TestLoadShuffledColumns(t *testing.T) {
	dir := t.TempDir()
	text := "valid_acc,epoch,valid_loss,train_loss\n0.75,3,0.4,0.35\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(text), 0644))
	summaries, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, Summary{Epoch: 3, TrainLoss: 0.35, ValidLoss: 0.4, ValidAcc: 0.75}, summaries[0])
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.Error(t, err)
}

func TestLoadMissingColumn(t *testing.T) {
	dir := t.TempDir()
	text := "epoch,train_loss\n0,0.5\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(text), 0644))
	_, err := Load(dir)
	assert.Error(t, err)
}
