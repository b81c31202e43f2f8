package scenarios

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/platalloc/core/assign"
	"github.com/kilianp07/platalloc/core/model"
)

// Expected describes the layout a scenario must produce. Platforms lists
// train ids per platform in creation order. EndMetrics is keyed by
// platform id and only checked for the listed platforms.
type Expected struct {
	Platforms  [][]string      `yaml:"platforms"`
	EndMetrics map[int]float64 `yaml:"end_metrics,omitempty"`
	Delayed    *int            `yaml:"delayed,omitempty"`
}

type Scenario struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description,omitempty"`
	Trains      []model.Train   `yaml:"trains"`
	Weights     *assign.Weights `yaml:"weights,omitempty"`
	Expected    Expected        `yaml:"expected"`
}

// weights returns the scenario weights or the defaults.
func (s *Scenario) weights() assign.Weights {
	if s.Weights != nil {
		return *s.Weights
	}
	return assign.DefaultWeights()
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}
