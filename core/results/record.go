// Package results persists solved models as a flat key-value artifact: one
// record per set entry, parameter and variable value, so a stored run is
// self-describing and can be reloaded without the model that produced it.
package results

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Record is one key-value entry of a run. Keys follow the variable naming of
// the model, e.g. "power_exchange[3]" or "steel_demand_tons".
type Record struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// runRecord is the stored form of a Record, tagged with its run id.
type runRecord struct {
	Run   string `json:"run"`
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// SeriesByPrefix extracts the time series of one variable family from a
// record set: all records whose key is prefix followed by a bracketed index
// ending in a step number, ordered by that number.
func SeriesByPrefix(recs []Record, prefix string) []float64 {
	type point struct {
		step int
		val  float64
	}
	var pts []point
	for _, r := range recs {
		if !strings.HasPrefix(r.Key, prefix+"[") || !strings.HasSuffix(r.Key, "]") {
			continue
		}
		idx := r.Key[len(prefix)+1 : len(r.Key)-1]
		if comma := strings.LastIndex(idx, ","); comma >= 0 {
			idx = idx[comma+1:]
		}
		step, err := strconv.Atoi(idx)
		if err != nil {
			continue
		}
		val, ok := toFloat(r.Value)
		if !ok {
			continue
		}
		pts = append(pts, point{step: step, val: val})
	}
	sort.Slice(pts, func(i, j int) bool { return pts[i].step < pts[j].step })
	out := make([]float64, len(pts))
	for i, p := range pts {
		out[i] = p.val
	}
	return out
}

// HourlyMeans aggregates a per-step series to hourly mean values.
func HourlyMeans(vals []float64, minutesPerStep float64) ([]float64, error) {
	if minutesPerStep <= 0 || minutesPerStep > 60 {
		return nil, fmt.Errorf("minutes per step must be within (0, 60], got %v", minutesPerStep)
	}
	perHour := int(60 / minutesPerStep)
	if perHour < 1 {
		perHour = 1
	}
	var out []float64
	for start := 0; start < len(vals); start += perHour {
		end := start + perHour
		if end > len(vals) {
			end = len(vals)
		}
		sum := 0.0
		for _, v := range vals[start:end] {
			sum += v
		}
		out = append(out, sum/float64(end-start))
	}
	return out, nil
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	}
	return 0, false
}
