package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/Theeeccoo/scheduler/engine"
)

// QLearnFileConfig is the optional --qlearn-config YAML side-file shape:
// any field omitted keeps the built-in default.
type QLearnFileConfig struct {
	Alpha        *float64 `yaml:"alpha"`
	Gamma        *float64 `yaml:"gamma"`
	Epsilon      *float64 `yaml:"epsilon"`
	MinEps       *float64 `yaml:"min_eps"`
	EpsilonDecay *float64 `yaml:"epsilon_decay"`
	Lambda       *float64 `yaml:"lambda"`
}

// LoadQLearnConfig returns the built-in defaults when path is empty,
// overriding any fields the YAML file supplies.
func LoadQLearnConfig(path string, winsize int) (engine.QLearnConfig, error) {
	cfg := engine.DefaultQLearnConfig(winsize)
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading qlearn config: %w", err)
	}

	var file QLearnFileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("parsing qlearn config: %w", err)
	}

	if file.Alpha != nil {
		cfg.Alpha = *file.Alpha
	}
	if file.Gamma != nil {
		cfg.Gamma = *file.Gamma
	}
	if file.Epsilon != nil {
		cfg.Epsilon = *file.Epsilon
	}
	if file.MinEps != nil {
		cfg.MinEps = *file.MinEps
	}
	if file.EpsilonDecay != nil {
		cfg.EpsilonDecay = *file.EpsilonDecay
	}
	if file.Lambda != nil {
		cfg.Lambda = *file.Lambda
	}

	logrus.Infof("q-learning: loaded hyperparameters from %s", path)
	return cfg, nil
}
