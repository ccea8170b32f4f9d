package metrics

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	coremetrics "github.com/gridsteel/steelflex/core/metrics"
)

// PromSink records solve events in Prometheus metrics.
type PromSink struct {
	solves      *prometheus.CounterVec
	runtime     *prometheus.HistogramVec
	variables   prometheus.Gauge
	constraints prometheus.Gauge
	objective   *prometheus.GaugeVec
}

// NewPromSink registers solve metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	solves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "model_solves_total",
		Help: "Total number of model solve runs",
	}, []string{"objective", "status"})
	runtime := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "model_solve_runtime_seconds",
		Help:    "Wall-clock time spent in the solver",
		Buckets: prometheus.ExponentialBuckets(0.01, 4, 10),
	}, []string{"objective", "status"})
	variables := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "model_variables",
		Help: "Number of decision variables in the last solved model",
	})
	constraints := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "model_constraints",
		Help: "Number of constraints in the last solved model",
	})
	objective := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "model_objective_value",
		Help: "Objective value of the last solve per objective",
	}, []string{"objective"})

	if err := reg.Register(solves); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			solves = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(runtime); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			runtime = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(variables); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			variables = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(constraints); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			constraints = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(objective); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			objective = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{
		solves:      solves,
		runtime:     runtime,
		variables:   variables,
		constraints: constraints,
		objective:   objective,
	}, nil
}

// RecordSolve updates the counters and gauges for one solve run.
func (s *PromSink) RecordSolve(ev coremetrics.SolveEvent) error {
	s.solves.WithLabelValues(ev.Objective, ev.Status).Inc()
	s.runtime.WithLabelValues(ev.Objective, ev.Status).Observe(ev.Runtime.Seconds())
	s.variables.Set(float64(ev.Variables))
	s.constraints.Set(float64(ev.Constraints))
	s.objective.WithLabelValues(ev.Objective).Set(ev.ObjectiveValue)
	return nil
}

// StartPromServer starts an HTTP server exposing Prometheus metrics on the
// given address. The server runs until the provided context is canceled.
// A dedicated ServeMux is used to avoid interfering with other handlers.
func StartPromServer(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("prom server shutdown: %v", err)
		}
		cancel()
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
