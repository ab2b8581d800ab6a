// Package config loads the training and inference settings from defaults,
// an optional config file, MUSHROOM_* environment variables and command line flags,
// in increasing order of precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/neurlang/mushroom/datasets/mushroom"
	"github.com/neurlang/mushroom/learning"
	"github.com/neurlang/mushroom/logger"
	"github.com/neurlang/mushroom/onehot"
)

// EnvPrefix prefixes every environment override, e.g. MUSHROOM_EPOCHS=5.
const EnvPrefix = "MUSHROOM"

// Config holds everything the commands need.
type Config struct {
	Data        string `mapstructure:"data"`
	DstModel    string `mapstructure:"dstmodel"`
	Resume      bool   `mapstructure:"resume"`
	Plot        string `mapstructure:"plot"`
	MetricsAddr string `mapstructure:"metrics_addr"`
	Unknown     string `mapstructure:"unknown"`

	Hidden         int     `mapstructure:"hidden"`
	Epochs         int     `mapstructure:"epochs"`
	LearningRate   float64 `mapstructure:"learning_rate"`
	Momentum       float64 `mapstructure:"momentum"`
	WeightDecay    float64 `mapstructure:"weight_decay"`
	TestProportion float64 `mapstructure:"test_proportion"`
	Seed           int64   `mapstructure:"seed"`
	Shuffle        bool    `mapstructure:"shuffle"`
	Threads        int     `mapstructure:"threads"`

	Log logger.Config `mapstructure:"log"`
}

// flags maps config keys to the command line flags that override them.
var flags = map[string]string{
	"data":            "data",
	"dstmodel":        "dstmodel",
	"resume":          "resume",
	"plot":            "plot",
	"metrics_addr":    "metrics-addr",
	"unknown":         "unknown",
	"hidden":          "hidden",
	"epochs":          "epochs",
	"learning_rate":   "learning-rate",
	"momentum":        "momentum",
	"weight_decay":    "weight-decay",
	"test_proportion": "test-proportion",
	"seed":            "seed",
	"shuffle":         "shuffle",
	"threads":         "threads",
	"log.level":       "log-level",
	"log.encoding":    "log-encoding",
	"log.development": "log-development",
}

func setDefaults(v *viper.Viper) {
	h := learning.Defaults()
	l := logger.DefaultConfig()

	v.SetDefault("data", mushroom.DefaultPath)
	v.SetDefault("dstmodel", "")
	v.SetDefault("resume", false)
	v.SetDefault("plot", "")
	v.SetDefault("metrics_addr", "")
	v.SetDefault("unknown", string(onehot.Reject))

	v.SetDefault("hidden", h.Hidden)
	v.SetDefault("epochs", h.Epochs)
	v.SetDefault("learning_rate", h.LearningRate)
	v.SetDefault("momentum", h.Momentum)
	v.SetDefault("weight_decay", h.WeightDecay)
	v.SetDefault("test_proportion", h.TestProportion)
	v.SetDefault("seed", h.Seed)
	v.SetDefault("shuffle", h.Shuffle)
	v.SetDefault("threads", h.Threads)

	v.SetDefault("log.level", l.Level)
	v.SetDefault("log.encoding", l.Encoding)
	v.SetDefault("log.development", l.Development)
	v.SetDefault("log.output_paths", l.OutputPaths)
}

// Load reads the configuration. path names an optional config file (yaml, json,
// toml, ...), fs holds the parsed command line flags and may be nil.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for key, name := range flags {
			f := fs.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &c, nil
}

// Hyper returns the training hyperparameters.
func (c *Config) Hyper() learning.HyperParameters {
	return learning.HyperParameters{
		Hidden:         c.Hidden,
		Epochs:         c.Epochs,
		LearningRate:   c.LearningRate,
		Momentum:       c.Momentum,
		WeightDecay:    c.WeightDecay,
		TestProportion: c.TestProportion,
		Seed:           c.Seed,
		Shuffle:        c.Shuffle,
		Threads:        c.Threads,
	}
}

// Policy returns the unknown token policy.
func (c *Config) Policy() (onehot.UnknownPolicy, error) {
	return onehot.ParseUnknownPolicy(c.Unknown)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Data == "" {
		return fmt.Errorf("config: empty data path")
	}
	if c.Resume && c.DstModel == "" {
		return fmt.Errorf("config: resume needs a dstmodel")
	}
	h := c.Hyper()
	if err := h.Validate(); err != nil {
		return err
	}
	if _, err := c.Policy(); err != nil {
		return err
	}
	if _, err := logger.New(c.Log); err != nil {
		return err
	}
	return nil
}
