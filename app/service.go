// Package app wires the configuration, input series, model construction,
// solver and result store into one runnable service.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gridsteel/steelflex/config"
	coremetrics "github.com/gridsteel/steelflex/core/metrics"
	"github.com/gridsteel/steelflex/core/results"
	"github.com/gridsteel/steelflex/core/schedule"
	"github.com/gridsteel/steelflex/core/series"
	"github.com/gridsteel/steelflex/core/solve"
	"github.com/gridsteel/steelflex/infra/logger"
	"github.com/gridsteel/steelflex/infra/metrics"
	"github.com/gridsteel/steelflex/infra/solver"
)

// Service builds and solves one plant schedule per Run call.
type Service struct {
	cfg    *config.Config
	solver solve.Solver
	store  *results.Store
	sink   coremetrics.Sink
	log    logger.Logger

	promEnabled bool
	promPort    string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sink := metrics.NewInfluxSinkWithFallback(
			cfg.Metrics.InfluxURL, cfg.Metrics.InfluxToken,
			cfg.Metrics.InfluxOrg, cfg.Metrics.InfluxBucket)
		sinks = append(sinks, sink)
	}
	var sink coremetrics.Sink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	store, err := results.NewStore(cfg.Results.Path)
	if err != nil {
		return nil, fmt.Errorf("result store: %w", err)
	}

	return &Service{
		cfg:         cfg,
		solver:      solver.NewRelaxation(),
		store:       store,
		sink:        sink,
		log:         logg,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promPort:    cfg.Metrics.PrometheusPort,
	}, nil
}

// SetSolver replaces the default solver, e.g. with an external MILP engine.
func (s *Service) SetSolver(sv solve.Solver) { s.solver = sv }

// loadSeries reads the generation and price series from disk, converts wind
// speed to farm output when configured and backfills gaps.
func (s *Service) loadSeries() (gen, price series.Series, err error) {
	sc := s.cfg.Series
	gen, err = series.LoadColumn(sc.GenerationFile, sc.GenerationColumn)
	if err != nil {
		return nil, nil, fmt.Errorf("generation series: %w", err)
	}
	if sc.Wind != nil {
		gen = series.FarmOutput(gen, series.HaliadeX12(), sc.Wind.InstalledMW)
	}
	price, err = series.LoadColumn(sc.PriceFile, sc.PriceColumn)
	if err != nil {
		return nil, nil, fmt.Errorf("price series: %w", err)
	}
	var n int
	if gen, n = gen.Backfill(); n > 0 {
		s.log.Warnf("backfilled %d missing generation values", n)
	}
	if price, n = price.Backfill(); n > 0 {
		s.log.Warnf("backfilled %d missing price values", n)
	}
	if len(gen) != len(price) {
		return nil, nil, fmt.Errorf("generation has %d steps, price has %d", len(gen), len(price))
	}
	return gen, price, nil
}

// Run constructs the model, solves it and persists the run. It returns the
// run identifier under which parameters and solution were stored.
func (s *Service) Run(ctx context.Context) (string, error) {
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	gen, price, err := s.loadSeries()
	if err != nil {
		return "", err
	}

	model, err := schedule.Build(s.cfg.Plant, gen, price, schedule.Objective(s.cfg.Objective))
	if err != nil {
		return "", fmt.Errorf("build model: %w", err)
	}
	s.log.Infof("model built: %d variables, %d constraints over %d steps",
		model.MILP.NumVars(), model.MILP.NumConstraints(), model.Sets.Horizon)

	opts := solve.Options{
		TimeLimit: time.Duration(s.cfg.Solver.TimeLimitSeconds) * time.Second,
		Gap:       s.cfg.Solver.Gap,
		Verbose:   s.cfg.Solver.Verbose,
	}
	res, err := s.solver.Solve(ctx, model.MILP, opts)
	if err != nil {
		return "", fmt.Errorf("solve: %w", err)
	}

	runID := uuid.NewString()
	ev := coremetrics.SolveEvent{
		RunID:          runID,
		Objective:      string(model.Objective),
		Status:         res.Status.String(),
		ObjectiveValue: res.Objective,
		Runtime:        res.Runtime,
		Variables:      model.MILP.NumVars(),
		Constraints:    model.MILP.NumConstraints(),
		Time:           time.Now(),
	}
	if err := s.sink.RecordSolve(ev); err != nil {
		s.log.Warnf("record solve event: %v", err)
	}

	switch res.Status {
	case solve.StatusOptimal:
		s.log.Infof("solved %s: objective %.4f in %v", model.Objective, res.Objective, res.Runtime)
	default:
		s.log.Warnf("solve finished with status %s after %v", res.Status, res.Runtime)
	}

	recs := model.ExportParameters()
	recs = append(recs, results.Record{Key: "status", Value: res.Status.String()})
	if res.Status == solve.StatusOptimal {
		recs = append(recs, results.Record{Key: "objective_value", Value: res.Objective})
		recs = append(recs, model.ExportSolution(res)...)
	}
	if err := s.store.AppendRun(runID, recs); err != nil {
		return "", fmt.Errorf("persist run: %w", err)
	}
	s.log.Infof("run %s persisted to %s", runID, s.cfg.Results.Path)
	return runID, nil
}
