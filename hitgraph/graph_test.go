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
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heptrkx/trackeval/nn"
)

// threeHitGraph builds a graph with hits 0-1-2 chained by two segments.
func threeHitGraph() *Graph {
	g := &Graph{
		X:  nn.NewTensor([]float32{1, 0.1, 10, 2, 0.2, 20, 3, 0.3, 30}, 3, 3),
		Ri: nn.Zeros(3, 2),
		Ro: nn.Zeros(3, 2),
		Y:  []float32{1, 0},
	}
	g.Ri.Set(1, 0, 1)
	g.Ro.Set(0, 0, 1)
	g.Ri.Set(2, 1, 1)
	g.Ro.Set(1, 1, 1)
	return g
}

func TestSegmentEnds(t *testing.T) {
	g := threeHitGraph()
	in, out := g.SegmentEnds()
	assert.Equal(t, []int{1, 2}, in)
	assert.Equal(t, []int{0, 1}, out)
}

func TestGraphMarshal(t *testing.T) {
	g := threeHitGraph()
	buf := bytes.NewBuffer(nil)
	require.NoError(t, g.Marshal(buf))
	var decoded Graph
	require.NoError(t, decoded.Unmarshal(buf))
	assert.Equal(t, g.X.Data(), decoded.X.Data())
	assert.Equal(t, g.Ri.Data(), decoded.Ri.Data())
	assert.Equal(t, g.Ro.Data(), decoded.Ro.Data())
	assert.Equal(t, g.Y, decoded.Y)
	assert.Equal(t, 3, decoded.NumHits())
	assert.Equal(t, 2, decoded.NumSegments())
}

func TestGraphSaveLoad(t *testing.T) {
	g := threeHitGraph()
	path := filepath.Join(t.TempDir(), "event000.graph")
	require.NoError(t, g.Save(path))
	decoded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, g.X.Data(), decoded.X.Data())
	assert.Equal(t, g.Y, decoded.Y)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "none.graph"))
	assert.Error(t, err)
}

func TestRandomGraph(t *testing.T) {
	g := RandomGraph(10, 15)
	assert.Equal(t, 10, g.NumHits())
	assert.Equal(t, 15, g.NumSegments())
	// every segment has exactly one input and one output hit
	for j := 0; j < g.NumSegments(); j++ {
		inCount, outCount := 0, 0
		for i := 0; i < g.NumHits(); i++ {
			if g.Ri.At(i, j) != 0 {
				inCount++
			}
			if g.Ro.At(i, j) != 0 {
				outCount++
			}
		}
		assert.Equal(t, 1, inCount)
		assert.Equal(t, 1, outCount)
	}
}
