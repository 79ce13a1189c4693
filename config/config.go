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

package config

import (
	"os"

	"github.com/juju/errors"
	"github.com/spf13/viper"
)

// Config is the experiment configuration loaded from a YAML file. The model
// section is kept as a free-form mapping since hyperparameters differ between
// architectures.
type Config struct {
	OutputDir string                 `mapstructure:"output_dir"`
	Data      DataConfig             `mapstructure:"data"`
	Model     map[string]interface{} `mapstructure:"model"`
}

type DataConfig struct {
	InputDir string `mapstructure:"input_dir"`
	NTest    int    `mapstructure:"n_test"`
}

// LoadConfig loads the experiment configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Trace(err)
	}
	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return nil, errors.Trace(err)
	}
	return &conf, nil
}

// GetOutputDir returns the output directory with environment variables
// expanded.
func (conf *Config) GetOutputDir() (string, error) {
	if conf.OutputDir == "" {
		return "", errors.NotFoundf("output_dir")
	}
	return os.ExpandEnv(conf.OutputDir), nil
}

// GetInputDir returns the dataset input directory with environment variables
// expanded.
func (conf *Config) GetInputDir() (string, error) {
	if conf.Data.InputDir == "" {
		return "", errors.NotFoundf("data.input_dir")
	}
	return os.ExpandEnv(conf.Data.InputDir), nil
}
