package cmd

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		assignTimetable, assignFormat, assignStats, assignDelays = "", "table", false, 0
		cfgPath = "config.yaml"
		rootCmd.PersistentFlags().Lookup("config").Changed = false
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return buf.String(), err
}

func writeTimetable(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trains.yaml")
	data := `trains:
  - {id: A, name: Alpha, scheduled_arrival: 0, scheduled_departure: 30}
  - {id: B, name: Beta, scheduled_arrival: 10, scheduled_departure: 40}
  - {id: C, name: Gamma, scheduled_arrival: 35, scheduled_departure: 60}
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestAssignJSON(t *testing.T) {
	out, err := execute(t, "assign", "--timetable", writeTimetable(t), "--format", "json")
	require.NoError(t, err)
	var res struct {
		Platforms []struct {
			ID int `json:"id"`
		} `json:"platforms"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Len(t, res.Platforms, 2)
}

func TestAssignCSV(t *testing.T) {
	out, err := execute(t, "assign", "-t", writeTimetable(t), "-f", "csv")
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewBufferString(out)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 4)

	out, err = execute(t, "assign", "-t", writeTimetable(t), "-f", "csv", "--stats")
	require.NoError(t, err)
	rows, err = csv.NewReader(bytes.NewBufferString(out)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestAssignReferenceTable(t *testing.T) {
	out, err := execute(t, "assign", "--delays", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "END METRIC")
	assert.Contains(t, out, "T1")
}

func TestAssignUnknownFormat(t *testing.T) {
	_, err := execute(t, "assign", "-t", writeTimetable(t), "-f", "xml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestAssignMissingConfig(t *testing.T) {
	_, err := execute(t, "assign", "-c", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "load config")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "platalloc dev\n", out)
}
