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

// Package model provides the segment classifier networks and their
// checkpoint handling.
package model

import (
	"github.com/juju/errors"

	"github.com/heptrkx/trackeval/config"
	"github.com/heptrkx/trackeval/hitgraph"
	"github.com/heptrkx/trackeval/nn"
)

// Model scores the candidate segments of a hit graph.
type Model interface {
	// Forward computes one score per segment, in (0, 1).
	Forward(g *hitgraph.Graph) *nn.Tensor
	// Parameters returns the named parameter state.
	Parameters() map[string]*nn.Tensor
	// LoadParameters replaces all parameters from a named state. Missing
	// names and shape mismatches are errors.
	LoadParameters(state map[string]*nn.Tensor) error
}

// Architecture names accepted by New.
const (
	TypeSegmentClassifier = "segment_classifier"
)

// New constructs a model by architecture name.
func New(name string, params Params) (Model, error) {
	switch name {
	case TypeSegmentClassifier:
		return NewSegmentClassifier(params), nil
	default:
		return nil, errors.NotSupportedf("model %q", name)
	}
}

// Training-only keys of the model section, dropped before construction.
var trainingKeys = []string{
	"optimizer",
	"learning_rate",
	"loss_func",
	"lr_scaling",
	"lr_warmup_epochs",
}

// StripTrainingKeys removes optimizer and scheduler settings from the model
// parameters. A no-op for keys that are absent.
func StripTrainingKeys(params Params) {
	for _, key := range trainingKeys {
		delete(params, key)
	}
}

// FromConfig constructs an untrained model from the model section of the
// configuration.
func FromConfig(conf *config.Config) (Model, error) {
	if conf.Model == nil {
		return nil, errors.NotFoundf("model section")
	}
	params := Params(conf.Model).Copy()
	StripTrainingKeys(params)
	name := params.GetString("name", "")
	if name == "" {
		return nil, errors.NotFoundf("model name")
	}
	delete(params, "name")
	return New(name, params)
}

// NumParameters counts the scalar parameters of a model.
func NumParameters(m Model) int {
	count := 0
	for _, t := range m.Parameters() {
		count += len(t.Data())
	}
	return count
}

// MLP is a two layer perceptron with a tanh hidden activation.
type MLP struct {
	Hidden *nn.Linear
	Output *nn.Linear
}

func NewMLP(in, hidden, out int) *MLP {
	return &MLP{
		Hidden: nn.NewLinear(in, hidden),
		Output: nn.NewLinear(hidden, out),
	}
}

func (p *MLP) Forward(x *nn.Tensor) *nn.Tensor {
	return p.Output.Forward(nn.Tanh(p.Hidden.Forward(x)))
}

func (p *MLP) State(prefix string, state map[string]*nn.Tensor) {
	p.Hidden.State(prefix+".hidden", state)
	p.Output.State(prefix+".output", state)
}

func (p *MLP) LoadState(prefix string, state map[string]*nn.Tensor) error {
	if err := p.Hidden.LoadState(prefix+".hidden", state); err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(p.Output.LoadState(prefix+".output", state))
}

// SegmentClassifier is the message passing network used for segment
// classification. An input network embeds the hit features, then an edge
// network and a node network alternate for a fixed number of iterations. The
// edge network output after the last iteration is the segment score.
//
// Hyper-parameters:
//
//	input_dim  - number of hit features. Default is 3.
//	hidden_dim - width of the hidden representation. Default is 8.
//	n_iters    - number of message passing iterations. Default is 3.
type SegmentClassifier struct {
	InputNetwork *nn.Linear
	EdgeNetwork  *MLP
	NodeNetwork  *MLP

	inputDim  int
	hiddenDim int
	nIters    int
}

// NewSegmentClassifier creates an untrained segment classifier.
func NewSegmentClassifier(params Params) *SegmentClassifier {
	inputDim := params.GetInt("input_dim", 3)
	hiddenDim := params.GetInt("hidden_dim", 8)
	latentDim := hiddenDim + inputDim
	return &SegmentClassifier{
		InputNetwork: nn.NewLinear(inputDim, hiddenDim),
		EdgeNetwork:  NewMLP(2*latentDim, hiddenDim, 1),
		NodeNetwork:  NewMLP(3*latentDim, hiddenDim, hiddenDim),
		inputDim:     inputDim,
		hiddenDim:    hiddenDim,
		nIters:       params.GetInt("n_iters", 3),
	}
}

// Forward scores all segments of a graph. The returned tensor is a vector
// with one entry per segment.
func (m *SegmentClassifier) Forward(g *hitgraph.Graph) *nn.Tensor {
	x := g.X
	riT := g.Ri.T()
	roT := g.Ro.T()
	h := nn.Tanh(m.InputNetwork.Forward(x))
	var scores *nn.Tensor
	for iter := 0; ; iter++ {
		// latent representation keeps the raw hit features as a shortcut
		b := nn.Cat(h, x)
		bi := nn.MatMul(riT, b)
		bo := nn.MatMul(roT, b)
		scores = nn.Sigmoid(m.EdgeNetwork.Forward(nn.Cat(bo, bi)))
		if iter == m.nIters {
			break
		}
		// aggregate neighbor features weighted by the edge scores
		weights := nn.Flatten(scores)
		mi := nn.MatMul(nn.ScaleColumns(g.Ri, weights), bo)
		mo := nn.MatMul(nn.ScaleColumns(g.Ro, weights), bi)
		messages := nn.Cat(nn.Cat(mi, mo), b)
		h = nn.Tanh(m.NodeNetwork.Forward(messages))
	}
	return nn.NewTensor(nn.Flatten(scores), g.NumSegments())
}

func (m *SegmentClassifier) Parameters() map[string]*nn.Tensor {
	state := make(map[string]*nn.Tensor)
	m.InputNetwork.State("input_network", state)
	m.EdgeNetwork.State("edge_network", state)
	m.NodeNetwork.State("node_network", state)
	return state
}

func (m *SegmentClassifier) LoadParameters(state map[string]*nn.Tensor) error {
	if err := m.InputNetwork.LoadState("input_network", state); err != nil {
		return errors.Trace(err)
	}
	if err := m.EdgeNetwork.LoadState("edge_network", state); err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(m.NodeNetwork.LoadState("node_network", state))
}
