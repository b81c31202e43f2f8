package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/platalloc/core/assign"
	"github.com/kilianp07/platalloc/core/delay"
	"github.com/kilianp07/platalloc/core/stats"
	"github.com/kilianp07/platalloc/core/timetable"
	"github.com/kilianp07/platalloc/pkg/export"
)

var (
	assignTimetable string
	assignFormat    string
	assignStats     bool
	assignDelays    int
)

var assignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Assign a timetable once and print the platforms",
	RunE:  runAssign,
}

func init() {
	assignCmd.Flags().StringVarP(&assignTimetable, "timetable", "t", "", "timetable file (yaml or json), defaults to the configured one")
	assignCmd.Flags().StringVarP(&assignFormat, "format", "f", "table", "output format: table, json or csv")
	assignCmd.Flags().BoolVar(&assignStats, "stats", false, "with csv, write platform statistics instead of train reports")
	assignCmd.Flags().IntVar(&assignDelays, "delays", 0, "inject this many random delays before assigning")
	rootCmd.AddCommand(assignCmd)
}

func runAssign(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ttCfg := cfg.Timetable
	if assignTimetable != "" {
		ttCfg.Path = assignTimetable
	}
	trains, err := timetable.Load(ttCfg)
	if err != nil {
		return err
	}
	if assignDelays > 0 {
		dc := cfg.Delay
		dc.DelayedPerTick = assignDelays
		trains = delay.NewGenerator(dc).Next(trains)
	}

	platforms := assign.Assign(trains, cfg.Assign.Weights)
	res := export.Result{Platforms: platforms, Report: stats.Aggregate(platforms)}
	out := cmd.OutOrStdout()
	switch assignFormat {
	case "table":
		return export.WriteTable(out, res, cfg.Window)
	case "json":
		return export.WriteJSON(out, res)
	case "csv":
		if assignStats {
			return export.WritePlatformsCSV(out, res.Report.Platforms)
		}
		return export.WriteTrainsCSV(out, res.Report.Trains)
	default:
		return fmt.Errorf("unknown format %q", assignFormat)
	}
}
