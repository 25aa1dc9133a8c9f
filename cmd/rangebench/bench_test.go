package main

import (
	"bytes"
	"strings"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/prometheus/common/model"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/intel/forGoRange/parallel"
)

func testViper(overrides map[string]interface{}) *viper.Viper {
	v := viper.New()
	v.SetDefault("policy", allPolicies)
	v.SetDefault("workers", 3)
	v.SetDefault("size", 1000)
	v.SetDefault("iterations", 2)
	v.SetDefault("payload", payloadCross)
	v.SetDefault("executor", executorSystem)
	v.SetDefault("queue", 4)
	v.SetDefault("output", outputText)
	for k, val := range overrides {
		v.Set(k, val)
	}
	return v
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig(testViper(nil))
	require.NoError(t, err)
	require.Equal(t, []parallel.Policy{parallel.Sequential, parallel.Parallel, parallel.ParallelVector}, cfg.Policies)
	require.Equal(t, 3, cfg.Workers)

	cfg, err = loadConfig(testViper(map[string]interface{}{"policy": "parallel-vector"}))
	require.NoError(t, err)
	require.Equal(t, []parallel.Policy{parallel.ParallelVector}, cfg.Policies)
}

func TestLoadConfigInvalid(t *testing.T) {
	for _, overrides := range []map[string]interface{}{
		{"policy": "stealing"},
		{"workers": -1},
		{"size": -5},
		{"iterations": 0},
		{"queue": -1},
		{"payload": "dot"},
		{"executor": "gpu"},
		{"output": "json"},
	} {
		_, err := loadConfig(testViper(overrides))
		require.Error(t, err, "%v", overrides)
	}
}

func TestCross(t *testing.T) {
	x, y := vector{1, 0, 0}, vector{0, 1, 0}
	require.Equal(t, vector{0, 0, 1}, cross(x, y))
	require.Equal(t, vector{0, 0, -1}, cross(y, x))
	require.Equal(t, 5.0, norm(vector{3, 4, 0}))
}

func TestSquarePayload(t *testing.T) {
	p := newPayload(payloadSquare, 4).(*squarePayload)
	p.in = []float64{1, 2, 3, 4}
	for i := range p.in {
		p.apply(i)
	}
	require.Equal(t, []float64{1, 4, 9, 16}, p.out)
	require.Equal(t, 30.0, p.checksum())
	p.reset()
	require.Zero(t, p.checksum())

	cfg, err := loadConfig(testViper(map[string]interface{}{"payload": "square"}))
	require.NoError(t, err)
	require.Equal(t, payloadSquare, cfg.Payload)
	_, err = loadConfig(testViper(map[string]interface{}{"payload": "sum"}))
	require.Error(t, err)
}

func TestRunMatchesSequential(t *testing.T) {
	for _, payload := range []string{payloadSquare, payloadCross} {
		for _, exec := range []string{executorSystem, executorPool} {
			cfg, err := loadConfig(testViper(map[string]interface{}{"payload": payload, "executor": exec}))
			require.NoError(t, err)

			rep, err := run(cfg)
			require.NoError(t, err)
			require.Len(t, rep.Results, 3)
			for _, res := range rep.Results {
				require.True(t, res.Matches, "%v with %v/%v", res.Policy, payload, exec)
			}
			require.Equal(t, 1, rep.Results[0].Slices)
			require.Equal(t, 3, rep.Results[1].Slices)
		}
	}
}

func TestReportYAML(t *testing.T) {
	cfg, err := loadConfig(testViper(map[string]interface{}{"policy": "parallel", "output": outputYAML}))
	require.NoError(t, err)
	rep, err := run(cfg)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, rep.write(&buf, cfg.Output))

	var decoded report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, "parallel", decoded.Results[0].Policy)
	require.True(t, decoded.Results[0].Matches)
	require.Equal(t, 1000, decoded.Size)
}

func TestReportText(t *testing.T) {
	rep := &report{Payload: payloadSquare, Executor: executorSystem, Workers: 2, Size: 10, Iterations: 1,
		Results: []result{{Policy: "parallel", Slices: 2, Elapsed: "1ms", PerIteration: "1ms", Matches: true}}}
	var buf bytes.Buffer
	require.NoError(t, rep.write(&buf, outputText))
	require.Contains(t, buf.String(), "POLICY")
	require.Contains(t, buf.String(), "parallel")
}

func TestWriteMetrics(t *testing.T) {
	cfg, err := loadConfig(testViper(map[string]interface{}{"policy": "parallel"}))
	require.NoError(t, err)
	_, err = run(cfg)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeMetrics(&buf))
	require.Contains(t, buf.String(), "# HELP forgorange_dispatches_total")
	require.Contains(t, buf.String(), "# TYPE forgorange_dispatch_duration_seconds histogram")

	parser := expfmt.NewTextParser(model.UTF8Validation)
	families, err := parser.TextToMetricFamilies(&buf)
	require.NoError(t, err)
	for name := range families {
		require.True(t, strings.HasPrefix(name, "forgorange_"), name)
	}

	dispatches, ok := families["forgorange_dispatches_total"]
	require.True(t, ok)
	require.Equal(t, dto.MetricType_COUNTER, dispatches.GetType())
	found := false
	for _, m := range dispatches.GetMetric() {
		labels := map[string]string{}
		for _, l := range m.GetLabel() {
			labels[l.GetName()] = l.GetValue()
		}
		if labels["dispatcher"] == "rangebench" && labels["policy"] == "parallel" {
			found = true
			require.GreaterOrEqual(t, m.GetCounter().GetValue(), float64(cfg.Iterations))
		}
	}
	require.True(t, found)

	duration, ok := families["forgorange_dispatch_duration_seconds"]
	require.True(t, ok)
	require.Equal(t, dto.MetricType_HISTOGRAM, duration.GetType())
	require.NotEmpty(t, duration.GetMetric()[0].GetHistogram().GetBucket())
}
