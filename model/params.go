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
	"reflect"

	"go.uber.org/zap"

	"github.com/heptrkx/trackeval/base/log"
)

// Params stores hyper-parameters for a model. It is a map between names and
// values, decoded from the model section of the configuration file.
type Params map[string]interface{}

// Copy hyper-parameters.
func (params Params) Copy() Params {
	newParams := make(Params)
	for k, v := range params {
		newParams[k] = v
	}
	return newParams
}

// GetInt gets an integer parameter by name. Returns _default if not exists or
// type doesn't match.
func (params Params) GetInt(name string, _default int) int {
	if val, exist := params[name]; exist {
		switch val := val.(type) {
		case int:
			return val
		case int64:
			return int(val)
		case float64:
			return int(val)
		default:
			log.Logger().Error("unexpected parameter type",
				zap.String("name", name),
				zap.String("type", reflect.TypeOf(val).String()))
		}
	}
	return _default
}

// GetFloat32 gets a float parameter by name. Returns _default if not exists
// or type doesn't match.
func (params Params) GetFloat32(name string, _default float32) float32 {
	if val, exist := params[name]; exist {
		switch val := val.(type) {
		case float32:
			return val
		case float64:
			return float32(val)
		case int:
			return float32(val)
		default:
			log.Logger().Error("unexpected parameter type",
				zap.String("name", name),
				zap.String("type", reflect.TypeOf(val).String()))
		}
	}
	return _default
}

// GetString gets a string parameter by name. Returns _default if not exists
// or type doesn't match.
func (params Params) GetString(name string, _default string) string {
	if val, exist := params[name]; exist {
		switch val := val.(type) {
		case string:
			return val
		default:
			log.Logger().Error("unexpected parameter type",
				zap.String("name", name),
				zap.String("type", reflect.TypeOf(val).String()))
		}
	}
	return _default
}
