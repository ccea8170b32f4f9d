// Package metrics defines the observability boundary for solve runs. Sinks
// such as the Prometheus and InfluxDB implementations under infra record one
// event per solve and can be combined with a multi-sink.
package metrics

import "time"

// SolveEvent summarizes one solver run of a constructed model.
type SolveEvent struct {
	RunID          string
	Objective      string
	Status         string
	ObjectiveValue float64
	Runtime        time.Duration
	Variables      int
	Constraints    int
	Time           time.Time
}

// Sink records solve events for observability purposes.
type Sink interface {
	RecordSolve(ev SolveEvent) error
}

// NopSink discards all events.
type NopSink struct{}

// RecordSolve implements Sink.
func (NopSink) RecordSolve(SolveEvent) error { return nil }
