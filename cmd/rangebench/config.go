package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/intel/forGoRange/parallel"
)

const (
	payloadSquare = "square"
	payloadCross  = "cross"

	executorSystem = "system"
	executorPool   = "pool"

	outputText = "text"
	outputYAML = "yaml"

	allPolicies = "all"
)

type config struct {
	Policies   []parallel.Policy
	Workers    int
	Size       int
	Iterations int
	Payload    string
	Executor   string
	Queue      int
	Output     string
	Metrics    bool
}

func loadConfig(v *viper.Viper) (config, error) {
	cfg := config{
		Workers:    v.GetInt("workers"),
		Size:       v.GetInt("size"),
		Iterations: v.GetInt("iterations"),
		Payload:    v.GetString("payload"),
		Executor:   v.GetString("executor"),
		Queue:      v.GetInt("queue"),
		Output:     v.GetString("output"),
		Metrics:    v.GetBool("metrics"),
	}

	switch name := v.GetString("policy"); name {
	case allPolicies, "":
		cfg.Policies = []parallel.Policy{parallel.Sequential, parallel.Parallel, parallel.ParallelVector}
	default:
		p, err := parallel.ParsePolicy(name)
		if err != nil {
			return cfg, errors.Wrap(err, "invalid policy flag")
		}
		cfg.Policies = []parallel.Policy{p}
	}

	switch {
	case cfg.Workers < 0:
		return cfg, errors.Errorf("workers must not be negative, got %v", cfg.Workers)
	case cfg.Size < 0:
		return cfg, errors.Errorf("size must not be negative, got %v", cfg.Size)
	case cfg.Iterations <= 0:
		return cfg, errors.Errorf("iterations must be positive, got %v", cfg.Iterations)
	case cfg.Queue < 0:
		return cfg, errors.Errorf("queue must not be negative, got %v", cfg.Queue)
	}
	if cfg.Payload != payloadSquare && cfg.Payload != payloadCross {
		return cfg, errors.Errorf("unknown payload %q", cfg.Payload)
	}
	if cfg.Executor != executorSystem && cfg.Executor != executorPool {
		return cfg, errors.Errorf("unknown executor %q", cfg.Executor)
	}
	if cfg.Output != outputText && cfg.Output != outputYAML {
		return cfg, errors.Errorf("unknown output format %q", cfg.Output)
	}
	return cfg, nil
}
