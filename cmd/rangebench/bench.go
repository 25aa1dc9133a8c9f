package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	jww "github.com/spf13/jwalterweatherman"
	"gopkg.in/yaml.v3"

	"github.com/intel/forGoRange/executor"
	"github.com/intel/forGoRange/parallel"
	"github.com/intel/forGoRange/ranges"
)

type result struct {
	Policy       string  `yaml:"policy"`
	Slices       int     `yaml:"slices"`
	Elapsed      string  `yaml:"elapsed"`
	PerIteration string  `yaml:"per_iteration"`
	Checksum     float64 `yaml:"checksum"`
	Matches      bool    `yaml:"matches_sequential"`
}

type report struct {
	Payload    string   `yaml:"payload"`
	Executor   string   `yaml:"executor"`
	Workers    int      `yaml:"workers"`
	Size       int      `yaml:"size"`
	Iterations int      `yaml:"iterations"`
	Results    []result `yaml:"results"`
}

func run(cfg config) (*report, error) {
	var exec executor.Executor = executor.System{}
	if cfg.Executor == executorPool {
		pool := executor.NewPool(cfg.Workers, cfg.Queue)
		defer pool.Close()
		exec = pool
	}
	d := parallel.NewDispatcher(
		parallel.WithWorkers(cfg.Workers),
		parallel.WithExecutor(exec),
		parallel.WithName("rangebench"),
	)

	p := newPayload(cfg.Payload, cfg.Size)
	r := ranges.New(0, cfg.Size)

	// the sequential checksum is the reference for every other policy
	d.ForEach(parallel.Sequential, r, p.apply)
	reference := p.checksum()

	rep := &report{
		Payload:    cfg.Payload,
		Executor:   cfg.Executor,
		Workers:    d.Workers(),
		Size:       cfg.Size,
		Iterations: cfg.Iterations,
	}
	for _, policy := range cfg.Policies {
		p.reset()
		start := time.Now()
		for i := 0; i < cfg.Iterations; i++ {
			d.ForEach(policy, r, p.apply)
		}
		elapsed := time.Since(start)
		sum := p.checksum()
		res := result{
			Policy:       policy.String(),
			Slices:       d.Slices(policy),
			Elapsed:      elapsed.String(),
			PerIteration: (elapsed / time.Duration(cfg.Iterations)).String(),
			Checksum:     sum,
			Matches:      sum == reference,
		}
		jww.DEBUG.Printf("%v: %v for %v iterations", policy, elapsed, cfg.Iterations)
		if !res.Matches {
			jww.ERROR.Printf("%v checksum %v differs from sequential %v", policy, sum, reference)
		}
		rep.Results = append(rep.Results, res)
	}
	for _, res := range rep.Results {
		if !res.Matches {
			return rep, errors.Errorf("policy %v produced a different result", res.Policy)
		}
	}
	return rep, nil
}

func (rep *report) write(w io.Writer, format string) error {
	if format == outputYAML {
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(rep); err != nil {
			return errors.Wrap(err, "encoding report")
		}
		return errors.Wrap(enc.Close(), "encoding report")
	}
	fmt.Fprintf(w, "payload %v, executor %v, %v workers, %v elements, %v iterations\n",
		rep.Payload, rep.Executor, rep.Workers, rep.Size, rep.Iterations)
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "POLICY\tSLICES\tELAPSED\tPER ITERATION\tMATCHES")
	for _, res := range rep.Results {
		fmt.Fprintf(tw, "%v\t%v\t%v\t%v\t%v\n", res.Policy, res.Slices, res.Elapsed, res.PerIteration, res.Matches)
	}
	return errors.Wrap(tw.Flush(), "writing report")
}

// writeMetrics writes the metric families this module registers with the
// default Prometheus registry in the text exposition format.
func writeMetrics(w io.Writer) error {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return errors.Wrap(err, "gathering metrics")
	}
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "forgorange_") {
			continue
		}
		if _, err = expfmt.MetricFamilyToText(w, mf); err != nil {
			return errors.Wrapf(err, "writing metric family %v", mf.GetName())
		}
	}
	return nil
}
