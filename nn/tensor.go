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

// Package nn provides the minimal tensor and layer kit used by the segment
// classifier at inference time.
package nn

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/chewxy/math32"
)

// Tensor is a dense row-major matrix of float32 values. A tensor with a
// single dimension is treated as a column vector by MatMul.
type Tensor struct {
	data  []float32
	shape []int
}

func NewTensor(data []float32, shape ...int) *Tensor {
	n := 1
	for _, s := range shape {
		n *= s
	}
	if n != len(data) {
		panic(fmt.Sprintf("nn: shape %v does not match %d elements", shape, len(data)))
	}
	return &Tensor{
		data:  data,
		shape: shape,
	}
}

// Zeros creates a tensor filled with zeros.
func Zeros(shape ...int) *Tensor {
	n := 1
	for _, s := range shape {
		n *= s
	}
	return &Tensor{
		data:  make([]float32, n),
		shape: shape,
	}
}

// Ones creates a tensor filled with ones.
func Ones(shape ...int) *Tensor {
	t := Zeros(shape...)
	for i := range t.data {
		t.data[i] = 1
	}
	return t
}

// Rand creates a tensor filled with uniform random values in [0, 1).
func Rand(shape ...int) *Tensor {
	t := Zeros(shape...)
	for i := range t.data {
		t.data[i] = rand.Float32()
	}
	return t
}

// Normal creates a tensor filled with gaussian random values.
func Normal(mean, stdDev float32, shape ...int) *Tensor {
	t := Zeros(shape...)
	for i := range t.data {
		t.data[i] = float32(rand.NormFloat64())*stdDev + mean
	}
	return t
}

func (t *Tensor) Shape() []int {
	return t.shape
}

// Rows returns the size of the first dimension.
func (t *Tensor) Rows() int {
	return t.shape[0]
}

// Cols returns the size of the second dimension, or 1 for vectors.
func (t *Tensor) Cols() int {
	if len(t.shape) < 2 {
		return 1
	}
	return t.shape[1]
}

func (t *Tensor) At(i, j int) float32 {
	return t.data[i*t.Cols()+j]
}

func (t *Tensor) Set(i, j int, v float32) {
	t.data[i*t.Cols()+j] = v
}

// Data returns the underlying storage. The slice is shared, not copied.
func (t *Tensor) Data() []float32 {
	return t.data
}

func (t *Tensor) Clone() *Tensor {
	data := make([]float32, len(t.data))
	copy(data, t.data)
	shape := make([]int, len(t.shape))
	copy(shape, t.shape)
	return &Tensor{data: data, shape: shape}
}

func (t *Tensor) String() string {
	if len(t.shape) == 0 {
		return fmt.Sprint(t.data[0])
	}
	builder := strings.Builder{}
	builder.WriteString("[")
	if len(t.data) <= 10 {
		for i := 0; i < len(t.data); i++ {
			builder.WriteString(fmt.Sprint(t.data[i]))
			if i != len(t.data)-1 {
				builder.WriteString(", ")
			}
		}
	} else {
		for i := 0; i < 5; i++ {
			builder.WriteString(fmt.Sprint(t.data[i]))
			builder.WriteString(", ")
		}
		builder.WriteString("..., ")
		for i := len(t.data) - 5; i < len(t.data); i++ {
			builder.WriteString(fmt.Sprint(t.data[i]))
			if i != len(t.data)-1 {
				builder.WriteString(", ")
			}
		}
	}
	builder.WriteString("]")
	return builder.String()
}

// T returns the transposed matrix.
func (t *Tensor) T() *Tensor {
	rows, cols := t.Rows(), t.Cols()
	out := Zeros(cols, rows)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out.Set(j, i, t.At(i, j))
		}
	}
	return out
}

// MatMul multiplies two matrices.
func MatMul(x, y *Tensor) *Tensor {
	if x.Cols() != y.Rows() {
		panic(fmt.Sprintf("nn: cannot multiply %v by %v", x.shape, y.shape))
	}
	out := Zeros(x.Rows(), y.Cols())
	for i := 0; i < x.Rows(); i++ {
		for k := 0; k < x.Cols(); k++ {
			v := x.At(i, k)
			if v == 0 {
				continue
			}
			for j := 0; j < y.Cols(); j++ {
				out.data[i*out.Cols()+j] += v * y.At(k, j)
			}
		}
	}
	return out
}

// Add adds y to x. y is broadcast over rows when it is a vector of length
// x.Cols().
func Add(x, y *Tensor) *Tensor {
	wSize := len(y.data)
	if len(x.data)%wSize != 0 {
		panic(fmt.Sprintf("nn: cannot add %v to %v", y.shape, x.shape))
	}
	out := x.Clone()
	for i := range out.data {
		out.data[i] += y.data[i%wSize]
	}
	return out
}

// Cat concatenates two matrices along columns.
func Cat(x, y *Tensor) *Tensor {
	if x.Rows() != y.Rows() {
		panic(fmt.Sprintf("nn: cannot concatenate %v with %v", x.shape, y.shape))
	}
	out := Zeros(x.Rows(), x.Cols()+y.Cols())
	for i := 0; i < x.Rows(); i++ {
		for j := 0; j < x.Cols(); j++ {
			out.Set(i, j, x.At(i, j))
		}
		for j := 0; j < y.Cols(); j++ {
			out.Set(i, x.Cols()+j, y.At(i, j))
		}
	}
	return out
}

// ScaleColumns multiplies the j-th column of x by w[j].
func ScaleColumns(x *Tensor, w []float32) *Tensor {
	if x.Cols() != len(w) {
		panic(fmt.Sprintf("nn: cannot scale %v by %d weights", x.shape, len(w)))
	}
	out := x.Clone()
	for i := 0; i < out.Rows(); i++ {
		for j := 0; j < out.Cols(); j++ {
			out.Set(i, j, out.At(i, j)*w[j])
		}
	}
	return out
}

// Sigmoid applies the logistic function element-wise.
func Sigmoid(x *Tensor) *Tensor {
	out := x.Clone()
	for i := range out.data {
		out.data[i] = 1 / (1 + math32.Exp(-out.data[i]))
	}
	return out
}

// Tanh applies the hyperbolic tangent element-wise.
func Tanh(x *Tensor) *Tensor {
	out := x.Clone()
	for i := range out.data {
		out.data[i] = math32.Tanh(out.data[i])
	}
	return out
}

// Flatten returns the tensor contents as a flat vector.
func Flatten(x *Tensor) []float32 {
	out := make([]float32, len(x.data))
	copy(out, x.data)
	return out
}
