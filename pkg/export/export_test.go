package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/platalloc/core/assign"
	"github.com/kilianp07/platalloc/core/model"
	"github.com/kilianp07/platalloc/core/stats"
)

func sample() Result {
	trains := []model.Train{
		{ID: "A", Name: "Alpha", ScheduledArrival: 0, ScheduledDeparture: 20, DelayMinutes: 10, Status: model.StatusDelayed},
		{ID: "B", Name: "Beta", ScheduledArrival: 35, ScheduledDeparture: 50},
	}
	platforms := assign.Assign(trains, assign.DefaultWeights())
	return Result{Platforms: platforms, Report: stats.Aggregate(platforms)}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sample()))
	var out struct {
		Platforms []struct {
			ID     int `json:"id"`
			Trains []struct {
				Arrival float64 `json:"arrival"`
				Train   struct {
					ID string `json:"id"`
				} `json:"train"`
			} `json:"trains"`
		} `json:"platforms"`
		Report stats.Report `json:"report"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out.Platforms, 1)
	assert.Equal(t, "A", out.Platforms[0].Trains[0].Train.ID)
	assert.Equal(t, 10.0, out.Platforms[0].Trains[0].Arrival)
	assert.InDelta(t, 5.5, out.Report.Platforms[0].EndMetric, 1e-9)
}

func TestWriteTrainsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTrainsCSV(&buf, sample().Report.Trains))
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "absolute_reach_delay", rows[0][4])
	assert.Equal(t, []string{"A", "Alpha", "1", "10", "4.5", "4.5", "25.5", "-4.5"}, rows[1])
	assert.Equal(t, []string{"B", "Beta", "1", "0", "5.5", "0", "55.5", "5.5"}, rows[2])
}

func TestWritePlatformsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePlatformsCSV(&buf, sample().Report.Platforms))
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"1", "2", "10", "1", "5.5", "5"}, rows[1])
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	win := model.Window{Start: time.Date(2025, 1, 2, 6, 0, 0, 0, time.UTC), LengthMinutes: 240}
	require.NoError(t, WriteTable(&buf, sample(), win))
	out := buf.String()
	assert.Contains(t, out, "PLATFORM")
	assert.Contains(t, out, "06:10")
	assert.Contains(t, out, "Delayed")
	assert.Equal(t, 6, len(strings.Split(strings.TrimSpace(out), "\n")))
}
