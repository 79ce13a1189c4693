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

package nn

import (
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearForward(t *testing.T) {
	l := NewLinear(2, 2)
	l.W = NewTensor([]float32{1, 0, 0, 1}, 2, 2)
	l.B = NewTensor([]float32{1, 2}, 2)
	y := l.Forward(NewTensor([]float32{3, 4}, 1, 2))
	assert.Equal(t, []float32{4, 6}, y.Data())
}

func TestLinearState(t *testing.T) {
	src := NewLinear(3, 4)
	dst := NewLinear(3, 4)
	state := make(map[string]*Tensor)
	src.State("layer", state)
	require.Contains(t, state, "layer.weight")
	require.Contains(t, state, "layer.bias")
	require.NoError(t, dst.LoadState("layer", state))
	assert.Equal(t, src.W.Data(), dst.W.Data())
	assert.Equal(t, src.B.Data(), dst.B.Data())
}

func TestLinearLoadStateErrors(t *testing.T) {
	l := NewLinear(3, 4)
	// missing parameters
	err := l.LoadState("layer", map[string]*Tensor{})
	assert.True(t, errors.IsNotFound(err))
	// shape mismatch
	other := NewLinear(4, 4)
	state := make(map[string]*Tensor)
	other.State("layer", state)
	assert.Error(t, l.LoadState("layer", state))
}
