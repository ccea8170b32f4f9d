package scenarios

import (
	"strings"
	"testing"

	"github.com/gridsteel/steelflex/core/schedule"
	"github.com/gridsteel/steelflex/core/series"
)

// RunScenario builds the scenario's model and checks the expectations.
func RunScenario(t *testing.T, sc *Scenario) {
	t.Helper()

	cfg := sc.Switches.Apply(basePlant())
	gen := make(series.Series, sc.Horizon)
	price := make(series.Series, sc.Horizon)
	for i := range gen {
		gen[i] = 10
		price[i] = 50
	}

	model, err := schedule.Build(cfg, gen, price, schedule.Objective(sc.Objective))
	if sc.Expected.BuildError != "" {
		if err == nil {
			t.Fatalf("scenario %s expected build error containing %q, got none", sc.Name, sc.Expected.BuildError)
		}
		if !strings.Contains(err.Error(), sc.Expected.BuildError) {
			t.Fatalf("scenario %s expected build error containing %q, got %q", sc.Name, sc.Expected.BuildError, err)
		}
		return
	}
	if err != nil {
		t.Fatalf("scenario %s: build: %v", sc.Name, err)
	}

	names := model.MILP.VarNames()
	for _, prefix := range sc.Expected.Present {
		if !hasPrefix(names, prefix) {
			t.Errorf("scenario %s: expected a variable with prefix %q", sc.Name, prefix)
		}
	}
	for _, prefix := range sc.Expected.Absent {
		if hasPrefix(names, prefix) {
			t.Errorf("scenario %s: unexpected variable with prefix %q", sc.Name, prefix)
		}
	}
}

func hasPrefix(names []string, prefix string) bool {
	for _, n := range names {
		if strings.HasPrefix(n, prefix) {
			return true
		}
	}
	return false
}
