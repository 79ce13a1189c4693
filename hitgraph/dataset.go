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
	"path/filepath"
	"sort"

	"github.com/juju/errors"

	"github.com/heptrkx/trackeval/config"
	"github.com/heptrkx/trackeval/nn"
)

// FilePattern matches the per-event graph files inside a dataset directory.
const FilePattern = "*.graph"

// Dataset is a directory of per-event graph files, ordered by file name.
type Dataset struct {
	files []string
}

// OpenDataset scans a directory for graph files.
func OpenDataset(dir string) (*Dataset, error) {
	files, err := filepath.Glob(filepath.Join(dir, FilePattern))
	if err != nil {
		return nil, errors.Trace(err)
	}
	if len(files) == 0 {
		return nil, errors.NotFoundf("graph files in %s", dir)
	}
	sort.Strings(files)
	return &Dataset{files: files}, nil
}

func (d *Dataset) Len() int {
	return len(d.files)
}

func (d *Dataset) Get(i int) (*Graph, error) {
	return Load(d.files[i])
}

// Subset is a view of a dataset restricted to explicit indices.
type Subset struct {
	dataset *Dataset
	indices []int
}

func NewSubset(dataset *Dataset, indices []int) *Subset {
	return &Subset{dataset: dataset, indices: indices}
}

func (s *Subset) Len() int {
	return len(s.indices)
}

func (s *Subset) Get(i int) (*Graph, error) {
	return s.dataset.Get(s.indices[i])
}

// Collate merges the graphs of one batch into model inputs and a target
// vector.
type Collate func(graphs []*Graph) (*Graph, *nn.Tensor, error)

// DefaultCollate handles single-graph batches: the graph itself is the input
// and its labels are the target.
func DefaultCollate(graphs []*Graph) (*Graph, *nn.Tensor, error) {
	if len(graphs) != 1 {
		return nil, nil, errors.Errorf("collate expects batches of one graph, got %d", len(graphs))
	}
	g := graphs[0]
	return g, nn.NewTensor(g.Y, len(g.Y)), nil
}

// DataLoader iterates a subset in fixed-size batches, in order.
type DataLoader struct {
	subset    *Subset
	batchSize int
	collate   Collate
}

func NewDataLoader(subset *Subset, batchSize int, collate Collate) *DataLoader {
	return &DataLoader{
		subset:    subset,
		batchSize: batchSize,
		collate:   collate,
	}
}

// Len returns the number of batches.
func (l *DataLoader) Len() int {
	return (l.subset.Len() + l.batchSize - 1) / l.batchSize
}

// Get loads and collates the i-th batch.
func (l *DataLoader) Get(i int) (*Graph, *nn.Tensor, error) {
	begin := i * l.batchSize
	end := begin + l.batchSize
	if end > l.subset.Len() {
		end = l.subset.Len()
	}
	graphs := make([]*Graph, 0, end-begin)
	for j := begin; j < end; j++ {
		g, err := l.subset.Get(j)
		if err != nil {
			return nil, nil, errors.Trace(err)
		}
		graphs = append(graphs, g)
	}
	return l.collate(graphs)
}

// GetDataset opens the full dataset referenced by the configuration.
func GetDataset(conf *config.Config) (*Dataset, error) {
	inputDir, err := conf.GetInputDir()
	if err != nil {
		return nil, errors.Trace(err)
	}
	return OpenDataset(inputDir)
}

// NewTestLoader builds the held-out evaluation loader: the last nTest events
// of the full dataset, taken from the back, one event per batch.
func NewTestLoader(conf *config.Config, nTest int) (*DataLoader, error) {
	dataset, err := GetDataset(conf)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if nTest > dataset.Len() {
		return nil, errors.Errorf("test set size %d exceeds dataset size %d", nTest, dataset.Len())
	}
	indices := make([]int, nTest)
	for i := range indices {
		indices[i] = dataset.Len() - 1 - i
	}
	return NewDataLoader(NewSubset(dataset, indices), 1, DefaultCollate), nil
}
