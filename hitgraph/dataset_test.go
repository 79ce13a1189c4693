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

package hitgraph

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heptrkx/trackeval/config"
)

// writeDataset writes n toy events, each marked with its index in the first
// hit feature.
func writeDataset(t *testing.T, n int) string {
	dir := t.TempDir()
	for i := 0; i < n; i++ {
		g := RandomGraph(5, 8)
		g.X.Set(0, 0, float32(i))
		require.NoError(t, g.Save(filepath.Join(dir, fmt.Sprintf("event%03d.graph", i))))
	}
	return dir
}

func TestOpenDataset(t *testing.T) {
	dir := writeDataset(t, 5)
	dataset, err := OpenDataset(dir)
	require.NoError(t, err)
	assert.Equal(t, 5, dataset.Len())
	// events are ordered by file name
	for i := 0; i < dataset.Len(); i++ {
		g, err := dataset.Get(i)
		require.NoError(t, err)
		assert.Equal(t, float32(i), g.X.At(0, 0))
	}
}

func TestOpenDatasetEmpty(t *testing.T) {
	_, err := OpenDataset(t.TempDir())
	assert.Error(t, err)
}

func TestSubset(t *testing.T) {
	dir := writeDataset(t, 5)
	dataset, err := OpenDataset(dir)
	require.NoError(t, err)
	subset := NewSubset(dataset, []int{4, 2})
	assert.Equal(t, 2, subset.Len())
	g, err := subset.Get(0)
	require.NoError(t, err)
	assert.Equal(t, float32(4), g.X.At(0, 0))
	g, err = subset.Get(1)
	require.NoError(t, err)
	assert.Equal(t, float32(2), g.X.At(0, 0))
}

func TestDefaultCollate(t *testing.T) {
	g := RandomGraph(5, 8)
	inputs, target, err := DefaultCollate([]*Graph{g})
	require.NoError(t, err)
	assert.Same(t, g, inputs)
	assert.Equal(t, g.Y, target.Data())
	_, _, err = DefaultCollate([]*Graph{g, g})
	assert.Error(t, err)
}

func TestNewTestLoader(t *testing.T) {
	dir := writeDataset(t, 20)
	conf := &config.Config{Data: config.DataConfig{InputDir: dir}}
	loader, err := NewTestLoader(conf, 16)
	require.NoError(t, err)
	assert.Equal(t, 16, loader.Len())
	// the test set is taken from the back, one event per batch
	for i := 0; i < loader.Len(); i++ {
		g, target, err := loader.Get(i)
		require.NoError(t, err)
		assert.Equal(t, float32(19-i), g.X.At(0, 0))
		assert.Equal(t, g.Y, target.Data())
	}
}

func TestNewTestLoaderTooLarge(t *testing.T) {
	dir := writeDataset(t, 4)
	conf := &config.Config{Data: config.DataConfig{InputDir: dir}}
	_, err := NewTestLoader(conf, 16)
	assert.Error(t, err)
}
