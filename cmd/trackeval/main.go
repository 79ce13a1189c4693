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

package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/heptrkx/trackeval/base/log"
	"github.com/heptrkx/trackeval/config"
	"github.com/heptrkx/trackeval/eval"
	"github.com/heptrkx/trackeval/hitgraph"
	"github.com/heptrkx/trackeval/model"
	"github.com/heptrkx/trackeval/plot"
	"github.com/heptrkx/trackeval/summary"
)

var evalCommand = &cobra.Command{
	Use:   "trackeval",
	Short: "Evaluate a trained segment classifier on the held-out test set.",
	Run: func(cmd *cobra.Command, args []string) {
		// setup logger
		debug, _ := cmd.PersistentFlags().GetBool("debug")
		log.SetLogger(cmd.PersistentFlags(), debug)

		configPath, _ := cmd.PersistentFlags().GetString("config")
		log.Logger().Info("load config", zap.String("config", configPath))
		conf, err := config.LoadConfig(configPath)
		if err != nil {
			log.Logger().Fatal("failed to load config", zap.Error(err))
		}
		outputDir, err := conf.GetOutputDir()
		if err != nil {
			log.Logger().Fatal("failed to resolve output directory", zap.Error(err))
		}
		plotDir, _ := cmd.PersistentFlags().GetString("plot-dir")
		if plotDir == "" {
			plotDir = filepath.Join(outputDir, "plots")
		}
		if err := os.MkdirAll(plotDir, os.ModePerm); err != nil {
			log.Logger().Fatal("failed to create plot directory", zap.Error(err))
		}

		// training curves
		summaries, err := summary.Load(outputDir)
		if err != nil {
			log.Logger().Fatal("failed to load training summaries", zap.Error(err))
		}
		if err := plot.TrainHistory(summaries, filepath.Join(plotDir, "train_history.png")); err != nil {
			log.Logger().Fatal("failed to plot training history", zap.Error(err))
		}

		// reload the requested checkpoint
		epoch, _ := cmd.PersistentFlags().GetInt("epoch")
		if epoch < 0 {
			epoch = summaries[len(summaries)-1].Epoch
		}
		m, err := model.LoadCheckpoint(conf, epoch)
		if err != nil {
			log.Logger().Fatal("failed to load checkpoint", zap.Error(err))
		}

		// run inference over the held-out test set
		nTest, _ := cmd.PersistentFlags().GetInt("n-test")
		if nTest <= 0 {
			nTest = conf.Data.NTest
		}
		loader, err := hitgraph.NewTestLoader(conf, nTest)
		if err != nil {
			log.Logger().Fatal("failed to build test loader", zap.Error(err))
		}
		preds, targets, err := model.Apply(m, loader)
		if err != nil {
			log.Logger().Fatal("failed to apply model", zap.Error(err))
		}

		// metrics and result figures
		threshold, _ := cmd.PersistentFlags().GetFloat32("threshold")
		metrics, err := eval.ComputeMetrics(preds, targets, threshold)
		if err != nil {
			log.Logger().Fatal("failed to compute metrics", zap.Error(err))
		}
		log.Logger().Info("test set metrics",
			zap.Int("epoch", epoch),
			zap.Int("n_test", nTest),
			zap.Float64("accuracy", metrics.Accuracy),
			zap.Float64("precision", metrics.Precision),
			zap.Float64("recall", metrics.Recall),
			zap.Float64("auc", metrics.AUC))
		if err := plot.OutputsROC(preds, targets, metrics, filepath.Join(plotDir, "outputs_roc.png")); err != nil {
			log.Logger().Fatal("failed to plot outputs", zap.Error(err))
		}

		// draw the first test event
		g, _, err := loader.Get(0)
		if err != nil {
			log.Logger().Fatal("failed to load sample event", zap.Error(err))
		}
		if err := plot.Sample(g, nil, filepath.Join(plotDir, "sample.png")); err != nil {
			log.Logger().Fatal("failed to draw sample", zap.Error(err))
		}
		log.Logger().Info("evaluation complete", zap.String("plot_dir", plotDir))
	},
}

func init() {
	log.AddFlags(evalCommand.PersistentFlags())
	evalCommand.PersistentFlags().Bool("debug", false, "use debug log mode")
	evalCommand.PersistentFlags().StringP("config", "c", "", "configuration file path")
	evalCommand.PersistentFlags().IntP("epoch", "e", -1, "checkpoint epoch to reload (default: last epoch)")
	evalCommand.PersistentFlags().IntP("n-test", "n", 16, "number of held-out test events")
	evalCommand.PersistentFlags().Float32P("threshold", "t", eval.DefaultThreshold, "decision threshold")
	evalCommand.PersistentFlags().String("plot-dir", "", "directory for generated figures (default: <output_dir>/plots)")
}

func main() {
	if err := evalCommand.Execute(); err != nil {
		log.Logger().Fatal("failed to execute", zap.Error(err))
	}
}
