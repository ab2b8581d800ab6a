package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/neurlang/mushroom/config"
	"github.com/neurlang/mushroom/datasets/mushroom"
	"github.com/neurlang/mushroom/learning"
	"github.com/neurlang/mushroom/logger"
	"github.com/neurlang/mushroom/metrics"
	"github.com/neurlang/mushroom/onehot"
	"github.com/neurlang/mushroom/parallel"
	"github.com/neurlang/mushroom/report"
	"github.com/neurlang/mushroom/trainer"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string
	h := learning.Defaults()
	l := logger.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "train_mushroom [data]",
		Short: "Train a mushroom edibility classifier",
		Long: `Train a feed-forward classifier on the UCI mushroom dataset.
The dataset is a comma separated file without header, the class (e or p) first.

Example:
  train_mushroom --epochs 30 --dstmodel mushroom.model --plot errors.png`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if err := cmd.Flags().Set("data", args[0]); err != nil {
					return err
				}
			}
			return run(cmd, configFile)
		},
	}

	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "Path to a config file (yaml, json or toml)")
	f.String("data", mushroom.DefaultPath, "Path to the mushroom dataset")
	f.String("dstmodel", "", "Write the model with the lowest test error to this file")
	f.Bool("resume", false, "Continue training the model stored in --dstmodel")
	f.Int("epochs", h.Epochs, "Number of training epochs")
	f.Int("hidden", h.Hidden, "Hidden layer width, 0 means half the input width")
	f.Float64("learning-rate", h.LearningRate, "Learning rate")
	f.Float64("momentum", h.Momentum, "Momentum")
	f.Float64("weight-decay", h.WeightDecay, "L2 weight decay")
	f.Float64("test-proportion", h.TestProportion, "Share of every class held out for testing")
	f.Int64("seed", h.Seed, "Random seed, 0 means time based")
	f.Bool("shuffle", h.Shuffle, "Shuffle the training set every epoch")
	f.Int("threads", h.Threads, "Worker goroutines, 0 means one per core")
	f.String("unknown", string(onehot.Reject), "Unknown token policy at inference: reject or zero")
	f.String("plot", "", "Save train and test error curves to this image file")
	f.String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")
	f.String("log-level", l.Level, "Log level (debug, info, warn, error)")
	f.String("log-encoding", l.Encoding, "Log encoding (console or json)")
	f.Bool("log-development", l.Development, "Development logging")
	return cmd
}

func run(cmd *cobra.Command, configFile string) error {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := logger.Init(cfg.Log); err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Get()

	brand, avx2 := parallel.CPU()
	log.Info("cpu", zap.String("brand", brand), zap.Bool("avx2", avx2), zap.Int("threads", parallel.Threads()))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rows, err := mushroom.Load(cfg.Data)
	if err != nil {
		return err
	}
	policy, err := cfg.Policy()
	if err != nil {
		return err
	}
	prepared, err := onehot.Prep(rows, onehot.WithUnknownPolicy(policy), onehot.WithThreads(cfg.Threads))
	if err != nil {
		return fmt.Errorf("encode %s: %w", cfg.Data, err)
	}
	log.Info("dataset",
		zap.String("path", cfg.Data),
		zap.Int("rows", len(rows)),
		zap.Int("columns", prepared.Encoder.Columns),
		zap.Int("kept", len(prepared.Encoder.Kept)),
		zap.Int("width", prepared.Encoder.Width()))

	out := cmd.OutOrStdout()
	opts := []trainer.Option{
		trainer.WithLogger(log),
		trainer.WithProgress(func(r trainer.EpochReport) {
			if err := report.Table(out, []trainer.EpochReport{r}); err != nil {
				log.Warn("progress", zap.Error(err))
			}
		}),
	}
	if cfg.DstModel != "" {
		opts = append(opts, trainer.WithCheckpoint(cfg.DstModel))
	}
	saved, err := trainer.Resume(cfg.Resume, cfg.DstModel)
	if err != nil {
		return err
	}
	if saved != nil {
		opts = append(opts, trainer.WithResume(saved))
	}
	if cfg.MetricsAddr != "" {
		m := metrics.NewTraining()
		opts = append(opts, trainer.WithMetrics(m))
		go func() {
			if err := m.Serve(ctx, cfg.MetricsAddr, log); err != nil {
				log.Error("metrics server", zap.Error(err))
			}
		}()
	}

	_, reports, err := trainer.Train(ctx, prepared, cfg.Hyper(), opts...)
	if errors.Is(err, context.Canceled) {
		log.Warn("training interrupted", zap.Int("epochs", len(reports)))
	}
	if cfg.Plot != "" && len(reports) > 0 {
		if perr := report.ErrorCurves(cfg.Plot, reports); perr != nil {
			log.Error("plot", zap.String("path", cfg.Plot), zap.Error(perr))
		} else {
			log.Info("saved plot", zap.String("path", cfg.Plot))
		}
	}
	return err
}
