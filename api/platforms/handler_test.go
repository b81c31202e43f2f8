package platforms

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/platalloc/core/assign"
	"github.com/kilianp07/platalloc/core/events"
	"github.com/kilianp07/platalloc/core/model"
	"github.com/kilianp07/platalloc/core/stats"
)

type staticSource struct {
	ev events.RunCompleted
	ok bool
}

func (s staticSource) Latest() (events.RunCompleted, bool) { return s.ev, s.ok }

func abcTrains() []model.Train {
	return []model.Train{
		{ID: "A", ScheduledArrival: 0, ScheduledDeparture: 30},
		{ID: "B", ScheduledArrival: 10, ScheduledDeparture: 40, DelayMinutes: 5, Status: model.StatusDelayed},
		{ID: "C", ScheduledArrival: 35, ScheduledDeparture: 60},
	}
}

func newSource() staticSource {
	run := assign.NewEngine(assign.DefaultWeights()).Run(3, abcTrains())
	return staticSource{ev: events.RunCompleted{Run: run, Report: stats.Aggregate(run.Platforms)}, ok: true}
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	h.ServeHTTP(rr, req)
	return rr
}

func TestPlatformsHandler(t *testing.T) {
	rr := serve(NewPlatformsHandler(newSource()), http.MethodGet, "/api/platforms", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	var out struct {
		ID        string `json:"id"`
		Tick      uint64 `json:"tick"`
		Platforms []struct {
			ID     int `json:"id"`
			Trains []struct {
				Train model.Train `json:"train"`
			} `json:"trains"`
		} `json:"platforms"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, uint64(3), out.Tick)
	require.Len(t, out.Platforms, 2)
	assert.Equal(t, "A", out.Platforms[0].Trains[0].Train.ID)
	assert.Equal(t, "C", out.Platforms[0].Trains[1].Train.ID)
	assert.Equal(t, "B", out.Platforms[1].Trains[0].Train.ID)
}

func TestHandlersWithoutRun(t *testing.T) {
	src := staticSource{}
	for _, h := range []http.Handler{NewPlatformsHandler(src), NewReportHandler(src), NewTrainsHandler(src)} {
		rr := serve(h, http.MethodGet, "/", "")
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	}
}

func TestHandlersRejectMethod(t *testing.T) {
	src := newSource()
	assert.Equal(t, http.StatusMethodNotAllowed, serve(NewPlatformsHandler(src), http.MethodPost, "/", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, serve(NewReportHandler(src), http.MethodDelete, "/", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, serve(NewAssignHandler(assign.DefaultWeights()), http.MethodGet, "/", "").Code)
}

func TestReportHandler(t *testing.T) {
	rr := serve(NewReportHandler(newSource()), http.MethodGet, "/api/platforms/report", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var rep stats.Report
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rep))
	require.Len(t, rep.Platforms, 2)
	assert.Len(t, rep.Trains, 3)
	assert.Equal(t, 1, rep.Summary.Delayed)
	// Platform 2 holds only B: (5 + 1) / 1.
	assert.InDelta(t, 6.0, rep.Platforms[1].EndMetric, 1e-9)
}

func TestTrainsHandler(t *testing.T) {
	src := newSource()
	rr := serve(NewTrainsHandler(src), http.MethodGet, "/api/trains", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var all []model.Train
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &all))
	assert.Len(t, all, 3)

	rr = serve(NewTrainsHandler(src), http.MethodGet, "/api/trains?status=delayed", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var delayed []model.Train
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &delayed))
	require.Len(t, delayed, 1)
	assert.Equal(t, "B", delayed[0].ID)

	rr = serve(NewTrainsHandler(src), http.MethodGet, "/api/trains?status=late", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAssignHandler(t *testing.T) {
	body := `{"trains":[
		{"id":"A","scheduled_arrival":0,"scheduled_departure":30},
		{"id":"B","scheduled_arrival":10,"scheduled_departure":40},
		{"id":"C","scheduled_arrival":35,"scheduled_departure":60}
	]}`
	rr := serve(NewAssignHandler(assign.DefaultWeights()), http.MethodPost, "/api/assign", body)
	require.Equal(t, http.StatusOK, rr.Code)
	var out struct {
		Platforms []struct {
			ID     int `json:"id"`
			Trains []struct {
				Index int `json:"index"`
			} `json:"trains"`
		} `json:"platforms"`
		Report stats.Report `json:"report"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	require.Len(t, out.Platforms, 2)
	assert.Equal(t, 0, out.Platforms[0].Trains[0].Index)
	assert.Equal(t, 2, out.Platforms[0].Trains[1].Index)
	assert.Equal(t, 1, out.Platforms[1].Trains[0].Index)
	assert.Len(t, out.Report.Trains, 3)
}

func TestAssignHandlerEmpty(t *testing.T) {
	rr := serve(NewAssignHandler(assign.DefaultWeights()), http.MethodPost, "/api/assign", `{"trains":[]}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"platforms":[]`)
}

func TestAssignHandlerPartialWeights(t *testing.T) {
	// Only load is disabled; idle gap and delayed spread keep their defaults,
	// so N avoids the platform holding the delayed train D.
	body := `{"weights":{"load":0},"trains":[
		{"id":"D","scheduled_arrival":0,"scheduled_departure":10,"status":"delayed"},
		{"id":"O","scheduled_arrival":0,"scheduled_departure":10},
		{"id":"N","scheduled_arrival":10,"scheduled_departure":20}
	]}`
	rr := serve(NewAssignHandler(assign.DefaultWeights()), http.MethodPost, "/api/assign", body)
	require.Equal(t, http.StatusOK, rr.Code)
	var out struct {
		Platforms []struct {
			Trains []struct {
				Train model.Train `json:"train"`
			} `json:"trains"`
		} `json:"platforms"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	require.Len(t, out.Platforms, 2)
	require.Len(t, out.Platforms[0].Trains, 1)
	assert.Equal(t, "D", out.Platforms[0].Trains[0].Train.ID)
	require.Len(t, out.Platforms[1].Trains, 2)
	assert.Equal(t, "N", out.Platforms[1].Trains[1].Train.ID)
}

func TestAssignRequestWeights(t *testing.T) {
	defaults := assign.DefaultWeights()
	w, err := AssignRequest{}.weights(defaults)
	require.NoError(t, err)
	assert.Equal(t, defaults, w)

	w, err = AssignRequest{Weights: json.RawMessage(`{"load":0}`)}.weights(defaults)
	require.NoError(t, err)
	assert.Equal(t, assign.Weights{IdleGap: 1.0, Load: 0, DelayedSpread: 0.5}, w)

	_, err = AssignRequest{Weights: json.RawMessage(`{"delayed_spread":-2}`)}.weights(defaults)
	assert.Error(t, err)
	_, err = AssignRequest{Weights: json.RawMessage(`[1]`)}.weights(defaults)
	assert.Error(t, err)
}

func TestAssignHandlerBadInput(t *testing.T) {
	h := NewAssignHandler(assign.DefaultWeights())
	assert.Equal(t, http.StatusBadRequest, serve(h, http.MethodPost, "/api/assign", "{").Code)
	rr := serve(h, http.MethodPost, "/api/assign", `{"trains":[],"weights":{"idle_gap":-1}}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRegister(t *testing.T) {
	mux := http.NewServeMux()
	Register(mux, newSource(), assign.DefaultWeights())
	srv := httptest.NewServer(mux)
	defer srv.Close()
	for _, p := range []string{"/api/platforms", "/api/platforms/report", "/api/trains"} {
		resp, err := http.Get(srv.URL + p)
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, p)
	}
}
