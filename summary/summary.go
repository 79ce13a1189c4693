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

// Package summary reads and writes per-epoch training summary tables.
package summary

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/juju/errors"
)

// FileName is the summary table written by the training loop.
const FileName = "summaries_0.csv"

// Summary is one row of the training summary table.
type Summary struct {
	Epoch     int
	TrainLoss float64
	ValidLoss float64
	ValidAcc  float64
}

var header = []string{"epoch", "train_loss", "valid_loss", "valid_acc"}

// Load reads the per-epoch training summaries from
// <outputDir>/summaries_0.csv.
func Load(outputDir string) ([]Summary, error) {
	f, err := os.Open(filepath.Join(outputDir, FileName))
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer f.Close()
	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Trace(err)
	}
	if len(rows) == 0 {
		return nil, errors.Errorf("%s: empty summary file", FileName)
	}
	// locate expected columns from the header row
	columns := make(map[string]int)
	for i, name := range rows[0] {
		columns[name] = i
	}
	for _, name := range header {
		if _, exist := columns[name]; !exist {
			return nil, errors.NotFoundf("column %s", name)
		}
	}
	summaries := make([]Summary, 0, len(rows)-1)
	for _, row := range rows[1:] {
		var s Summary
		if s.Epoch, err = strconv.Atoi(row[columns["epoch"]]); err != nil {
			return nil, errors.Trace(err)
		}
		if s.TrainLoss, err = strconv.ParseFloat(row[columns["train_loss"]], 64); err != nil {
			return nil, errors.Trace(err)
		}
		if s.ValidLoss, err = strconv.ParseFloat(row[columns["valid_loss"]], 64); err != nil {
			return nil, errors.Trace(err)
		}
		if s.ValidAcc, err = strconv.ParseFloat(row[columns["valid_acc"]], 64); err != nil {
			return nil, errors.Trace(err)
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

// Save writes the summary table to <outputDir>/summaries_0.csv.
func Save(outputDir string, summaries []Summary) error {
	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return errors.Trace(err)
	}
	f, err := os.Create(filepath.Join(outputDir, FileName))
	if err != nil {
		return errors.Trace(err)
	}
	defer f.Close()
	writer := csv.NewWriter(f)
	if err = writer.Write(header); err != nil {
		return errors.Trace(err)
	}
	for _, s := range summaries {
		row := []string{
			strconv.Itoa(s.Epoch),
			fmt.Sprint(s.TrainLoss),
			fmt.Sprint(s.ValidLoss),
			fmt.Sprint(s.ValidAcc),
		}
		if err = writer.Write(row); err != nil {
			return errors.Trace(err)
		}
	}
	writer.Flush()
	return errors.Trace(writer.Error())
}
