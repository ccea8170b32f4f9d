package results

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.jsonl")
	store, err := NewStore(path)
	require.NoError(t, err)

	require.NoError(t, store.AppendRun("run-a", []Record{
		{Key: "horizon", Value: 4},
		{Key: "power_exchange[0]", Value: 1.5},
		{Key: "power_exchange[1]", Value: -2.0},
	}))
	require.NoError(t, store.AppendRun("run-b", []Record{
		{Key: "power_exchange[0]", Value: 9.0},
	}))

	recs, err := store.Query("run-a", "")
	require.NoError(t, err)
	assert.Len(t, recs, 3)

	recs, err = store.Query("run-a", "power_exchange")
	require.NoError(t, err)
	assert.Len(t, recs, 2)

	recs, err = store.Query("run-c", "")
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestSeriesByPrefix(t *testing.T) {
	recs := []Record{
		{Key: "power_exchange[2]", Value: 3.0},
		{Key: "power_exchange[0]", Value: 1.0},
		{Key: "power_exchange[1]", Value: 2.0},
		{Key: "power_exchange_split[0]", Value: 99.0},
		{Key: "horizon", Value: 3},
	}
	got := SeriesByPrefix(recs, "power_exchange")
	assert.Equal(t, []float64{1, 2, 3}, got)
}

func TestSeriesByPrefixCompositeIndex(t *testing.T) {
	recs := []Record{
		{Key: "equipment_load_profile[EAF,1]", Value: 3.0},
		{Key: "equipment_load_profile[EAF,0]", Value: 4.0},
	}
	got := SeriesByPrefix(recs, "equipment_load_profile")
	assert.Equal(t, []float64{4, 3}, got)
}

func TestHourlyMeans(t *testing.T) {
	got, err := HourlyMeans([]float64{1, 2, 3, 4, 5, 6}, 15)
	require.NoError(t, err)
	assert.Equal(t, []float64{2.5, 5.5}, got)

	// a trailing partial hour averages over what is there
	got, err = HourlyMeans([]float64{2, 4, 6}, 30)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 6}, got)

	_, err = HourlyMeans([]float64{1}, 0)
	require.Error(t, err)
	_, err = HourlyMeans([]float64{1}, 120)
	require.Error(t, err)
}
