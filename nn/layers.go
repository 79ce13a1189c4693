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
	"github.com/chewxy/math32"
	"github.com/juju/errors"
)

// Linear is a fully connected layer: y = x W + b.
type Linear struct {
	W *Tensor
	B *Tensor
}

func NewLinear(in, out int) *Linear {
	return &Linear{
		W: Normal(0, 1.0/math32.Sqrt(float32(in)), in, out),
		B: Zeros(out),
	}
}

func (l *Linear) Forward(x *Tensor) *Tensor {
	return Add(MatMul(x, l.W), l.B)
}

// State exports the layer parameters under the given prefix.
func (l *Linear) State(prefix string, state map[string]*Tensor) {
	state[prefix+".weight"] = l.W
	state[prefix+".bias"] = l.B
}

// LoadState replaces the layer parameters by the entries under the given
// prefix. Missing entries and shape mismatches are errors.
func (l *Linear) LoadState(prefix string, state map[string]*Tensor) error {
	for suffix, dst := range map[string]*Tensor{".weight": l.W, ".bias": l.B} {
		src, exist := state[prefix+suffix]
		if !exist {
			return errors.NotFoundf("parameter %s%s", prefix, suffix)
		}
		if len(src.data) != len(dst.data) || src.Rows() != dst.Rows() || src.Cols() != dst.Cols() {
			return errors.Errorf("parameter %s%s: shape mismatch %v vs %v",
				prefix, suffix, src.shape, dst.shape)
		}
		copy(dst.data, src.data)
	}
	return nil
}
