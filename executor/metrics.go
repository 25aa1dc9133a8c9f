package executor

import "github.com/prometheus/client_golang/prometheus"

// Metric label values for the executor kind.
const (
	kindSystem = "system"
	kindInline = "inline"
	kindPool   = "pool"
)

var (
	tasksSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forgorange_executor_tasks_submitted_total",
			Help: "Total number of tasks accepted by an executor.",
		},
		[]string{"kind"},
	)

	tasksCompleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forgorange_executor_tasks_completed_total",
			Help: "Total number of tasks that finished running, including tasks that panicked.",
		},
		[]string{"kind"},
	)

	taskPanics = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "forgorange_executor_pool_task_panics_total",
			Help: "Total number of pool tasks that panicked and were recovered by a worker.",
		},
	)

	poolQueued = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "forgorange_executor_pool_queued_tasks",
			Help: "Number of tasks waiting in pool queues.",
		},
	)

	poolBusy = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "forgorange_executor_pool_busy_workers",
			Help: "Number of pool workers currently running a task.",
		},
	)
)

func init() {
	prometheus.MustRegister(tasksSubmitted)
	prometheus.MustRegister(tasksCompleted)
	prometheus.MustRegister(taskPanics)
	prometheus.MustRegister(poolQueued)
	prometheus.MustRegister(poolBusy)

	for _, kind := range []string{kindSystem, kindInline, kindPool} {
		tasksSubmitted.WithLabelValues(kind)
		tasksCompleted.WithLabelValues(kind)
	}
}
