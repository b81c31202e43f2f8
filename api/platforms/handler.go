package platforms

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kilianp07/platalloc/core/assign"
	"github.com/kilianp07/platalloc/core/events"
	"github.com/kilianp07/platalloc/core/model"
	"github.com/kilianp07/platalloc/core/stats"
	"github.com/kilianp07/platalloc/pkg/export"
)

// maxBodyBytes bounds POST /api/assign payloads.
const maxBodyBytes = 1 << 20

// Source exposes the latest completed run.
type Source interface {
	Latest() (events.RunCompleted, bool)
}

// AssignRequest is the body accepted by POST /api/assign. Weights is decoded
// on top of the handler defaults, so omitted fields keep their default value.
type AssignRequest struct {
	Trains  []model.Train   `json:"trains"`
	Weights json.RawMessage `json:"weights,omitempty"`
}

// weights overlays the request weights on defaults and validates the result.
func (req AssignRequest) weights(defaults assign.Weights) (assign.Weights, error) {
	w := defaults
	if len(req.Weights) == 0 || string(req.Weights) == "null" {
		return w, nil
	}
	if err := json.Unmarshal(req.Weights, &w); err != nil {
		return defaults, fmt.Errorf("decode weights: %w", err)
	}
	if err := w.Validate(); err != nil {
		return defaults, err
	}
	return w, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func latest(w http.ResponseWriter, r *http.Request, src Source) (events.RunCompleted, bool) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return events.RunCompleted{}, false
	}
	ev, ok := src.Latest()
	if !ok {
		http.Error(w, "no assignment run yet", http.StatusServiceUnavailable)
		return events.RunCompleted{}, false
	}
	return ev, true
}

// NewPlatformsHandler serves the latest platform layout via GET /api/platforms.
func NewPlatformsHandler(src Source) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ev, ok := latest(w, r, src)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, ev.Run)
	})
}

// NewReportHandler serves the statistics of the latest run via
// GET /api/platforms/report.
func NewReportHandler(src Source) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ev, ok := latest(w, r, src)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, ev.Report)
	})
}

// NewTrainsHandler serves the snapshot the latest run was computed from via
// GET /api/trains. The optional status query filters on "delayed" or "on_time".
func NewTrainsHandler(src Source) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ev, ok := latest(w, r, src)
		if !ok {
			return
		}
		trains := make([]model.Train, 0, len(ev.Run.Trains))
		q := r.URL.Query().Get("status")
		var want model.TrainStatus
		if q != "" {
			if err := want.UnmarshalText([]byte(q)); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
		}
		for _, t := range ev.Run.Trains {
			if q != "" && t.Status != want {
				continue
			}
			trains = append(trains, t)
		}
		writeJSON(w, http.StatusOK, trains)
	})
}

// NewAssignHandler runs a one-off assignment on a posted train list via
// POST /api/assign. It does not affect the live service state.
func NewAssignHandler(defaults assign.Weights) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req AssignRequest
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err := dec.Decode(&req); err != nil {
			http.Error(w, fmt.Sprintf("decode request: %v", err), http.StatusBadRequest)
			return
		}
		weights, err := req.weights(defaults)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		platforms := assign.Assign(req.Trains, weights)
		if platforms == nil {
			platforms = []assign.Platform{}
		}
		writeJSON(w, http.StatusOK, export.Result{Platforms: platforms, Report: stats.Aggregate(platforms)})
	})
}

// Register mounts every platform endpoint on mux.
func Register(mux *http.ServeMux, src Source, defaults assign.Weights) {
	mux.Handle("/api/platforms", NewPlatformsHandler(src))
	mux.Handle("/api/platforms/report", NewReportHandler(src))
	mux.Handle("/api/trains", NewTrainsHandler(src))
	mux.Handle("/api/assign", NewAssignHandler(defaults))
}
