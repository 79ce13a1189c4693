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
	"github.com/juju/errors"
	"github.com/schollz/progressbar/v3"

	"github.com/heptrkx/trackeval/hitgraph"
	"github.com/heptrkx/trackeval/nn"
)

// Apply runs the model over a data loader and collects per-batch predictions
// and targets, flattened to one score vector per batch, in loader order.
func Apply(m Model, loader *hitgraph.DataLoader) (preds, targets [][]float32, err error) {
	bar := progressbar.Default(int64(loader.Len()), "apply model")
	defer func() {
		_ = bar.Finish()
	}()
	for i := 0; i < loader.Len(); i++ {
		inputs, target, err := loader.Get(i)
		if err != nil {
			return nil, nil, errors.Trace(err)
		}
		preds = append(preds, nn.Flatten(m.Forward(inputs)))
		targets = append(targets, nn.Flatten(target))
		_ = bar.Add(1)
	}
	return preds, targets, nil
}
