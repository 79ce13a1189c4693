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

// Package hitgraph provides the hit-graph data model of the particle tracking
// dataset: detector hits are nodes, candidate track segments are edges.
package hitgraph

import (
	"encoding/binary"
	"io"
	"math/rand"
	"os"

	"github.com/juju/errors"

	"github.com/heptrkx/trackeval/nn"
)

// Graph is one event. X holds one row per hit with the cylindrical
// coordinates (r, phi, z). Ri and Ro are hits-by-segments incidence matrices
// marking the input and output hit of every segment. Y holds one label per
// segment in [0, 1].
type Graph struct {
	X  *nn.Tensor
	Ri *nn.Tensor
	Ro *nn.Tensor
	Y  []float32
}

// NumHits returns the number of hits (nodes).
func (g *Graph) NumHits() int {
	return g.X.Rows()
}

// NumSegments returns the number of candidate segments (edges).
func (g *Graph) NumSegments() int {
	return len(g.Y)
}

// SegmentEnds resolves the incidence matrices into per-segment hit indices:
// in[j] is the hit marked by Ri for segment j, out[j] the hit marked by Ro.
func (g *Graph) SegmentEnds() (in, out []int) {
	in = make([]int, g.NumSegments())
	out = make([]int, g.NumSegments())
	for j := 0; j < g.NumSegments(); j++ {
		for i := 0; i < g.NumHits(); i++ {
			if g.Ri.At(i, j) != 0 {
				in[j] = i
			}
			if g.Ro.At(i, j) != 0 {
				out[j] = i
			}
		}
	}
	return
}

// Marshal writes the graph to a byte stream.
func (g *Graph) Marshal(w io.Writer) error {
	dims := []int32{int32(g.NumHits()), int32(g.X.Cols()), int32(g.NumSegments())}
	if err := binary.Write(w, binary.LittleEndian, dims); err != nil {
		return errors.Trace(err)
	}
	for _, t := range []*nn.Tensor{g.X, g.Ri, g.Ro} {
		if err := binary.Write(w, binary.LittleEndian, t.Data()); err != nil {
			return errors.Trace(err)
		}
	}
	return errors.Trace(binary.Write(w, binary.LittleEndian, g.Y))
}

// Unmarshal reads a graph from a byte stream.
func (g *Graph) Unmarshal(r io.Reader) error {
	dims := make([]int32, 3)
	if err := binary.Read(r, binary.LittleEndian, dims); err != nil {
		return errors.Trace(err)
	}
	nHits, nFeatures, nSegments := int(dims[0]), int(dims[1]), int(dims[2])
	g.X = nn.Zeros(nHits, nFeatures)
	g.Ri = nn.Zeros(nHits, nSegments)
	g.Ro = nn.Zeros(nHits, nSegments)
	g.Y = make([]float32, nSegments)
	for _, t := range []*nn.Tensor{g.X, g.Ri, g.Ro} {
		if err := binary.Read(r, binary.LittleEndian, t.Data()); err != nil {
			return errors.Trace(err)
		}
	}
	return errors.Trace(binary.Read(r, binary.LittleEndian, g.Y))
}

// Save writes the graph to a file.
func (g *Graph) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Trace(err)
	}
	defer f.Close()
	return errors.Trace(g.Marshal(f))
}

// Load reads a graph from a file.
func Load(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer f.Close()
	var g Graph
	if err := g.Unmarshal(f); err != nil {
		return nil, errors.Trace(err)
	}
	return &g, nil
}

// RandomGraph generates a toy event for tests and benchmarks. Each segment
// connects two distinct random hits and carries a random binary label.
func RandomGraph(nHits, nSegments int) *Graph {
	g := &Graph{
		X:  nn.Rand(nHits, 3),
		Ri: nn.Zeros(nHits, nSegments),
		Ro: nn.Zeros(nHits, nSegments),
		Y:  make([]float32, nSegments),
	}
	for j := 0; j < nSegments; j++ {
		in := rand.Intn(nHits)
		out := rand.Intn(nHits)
		for out == in {
			out = rand.Intn(nHits)
		}
		g.Ri.Set(in, j, 1)
		g.Ro.Set(out, j, 1)
		if rand.Float32() > 0.5 {
			g.Y[j] = 1
		}
	}
	return g
}
