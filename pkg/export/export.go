// Package export renders assignment results as JSON, CSV or aligned text.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/kilianp07/platalloc/core/assign"
	"github.com/kilianp07/platalloc/core/model"
	"github.com/kilianp07/platalloc/core/stats"
)

// Result bundles the platforms of a run with their derived report.
type Result struct {
	Platforms []assign.Platform `json:"platforms"`
	Report    stats.Report      `json:"report"`
}

// WriteJSON writes the result to w as indented JSON.
func WriteJSON(w io.Writer, res Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// WriteTrainsCSV writes one row per train report.
func WriteTrainsCSV(w io.Writer, reports []stats.TrainReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"train_id", "name", "platform_id", "previous_delay",
		"absolute_reach_delay", "clamped_reach_delay", "new_reach_time", "reach_delta",
	}); err != nil {
		return err
	}
	for _, r := range reports {
		rec := []string{
			r.TrainID,
			r.Name,
			strconv.Itoa(r.PlatformID),
			formatFloat(r.PreviousDelay),
			formatFloat(r.AbsoluteReachDelay),
			formatFloat(r.ClampedReachDelay),
			formatFloat(r.NewReachTime),
			formatFloat(r.ReachDelta),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WritePlatformsCSV writes one row per platform statistic.
func WritePlatformsCSV(w io.Writer, platforms []stats.PlatformStats) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"platform_id", "total_trains", "total_delay_minutes", "delayed_count", "end_metric", "idle_minutes"}); err != nil {
		return err
	}
	for _, p := range platforms {
		rec := []string{
			strconv.Itoa(p.PlatformID),
			strconv.Itoa(p.TotalTrains),
			formatFloat(p.TotalDelayMinutes),
			strconv.Itoa(p.DelayedCount),
			formatFloat(p.EndMetric),
			formatFloat(p.IdleMinutes),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTable prints the platform layout as aligned columns. Times are
// labelled relative to the window start.
func WriteTable(w io.Writer, res Result, win model.Window) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PLATFORM\tTRAIN\tNAME\tARRIVAL\tDEPARTURE\tDELAY\tSTATUS")
	for _, p := range res.Platforms {
		for _, at := range p.Trains {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
				p.ID, at.Train.ID, at.Train.Name,
				win.Label(at.Arrival), win.Label(at.Departure),
				formatFloat(at.Train.DelayMinutes), at.Train.Status)
		}
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "PLATFORM\tTRAINS\tDELAYED\tDELAY MIN\tEND METRIC")
	for _, st := range res.Report.Platforms {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%s\t%.2f\n",
			st.PlatformID, st.TotalTrains, st.DelayedCount, formatFloat(st.TotalDelayMinutes), st.EndMetric)
	}
	return tw.Flush()
}
