// Package timetable loads the base train schedule from JSON or YAML files.
package timetable

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/platalloc/core/model"
)

// ErrUnknownFormat is returned for unsupported file extensions or formats.
var ErrUnknownFormat = errors.New("unsupported timetable format")

// Config locates the timetable. An empty Path selects the reference timetable.
type Config struct {
	Path string `json:"path"`
	// Strict rejects trains that fail model.Train.Validate.
	Strict bool `json:"strict"`
}

// Timetable is the on-disk document.
type Timetable struct {
	Trains []model.Train `json:"trains" yaml:"trains"`
}

// Load reads the timetable referenced by cfg.
func Load(cfg Config) ([]model.Train, error) {
	if cfg.Path == "" {
		return Reference(), nil
	}
	trains, err := LoadFile(cfg.Path)
	if err != nil {
		return nil, err
	}
	if cfg.Strict {
		if err := Validate(trains); err != nil {
			return nil, err
		}
	}
	return trains, nil
}

// LoadFile reads a timetable from a JSON or YAML file.
func LoadFile(path string) ([]model.Train, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	trains, err := Decode(f, ext)
	if err != nil {
		return nil, fmt.Errorf("timetable %s: %w", path, err)
	}
	return trains, nil
}

// Decode reads a timetable document from r in the given format.
func Decode(r io.Reader, format string) ([]model.Train, error) {
	var tt Timetable
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.NewDecoder(r).Decode(&tt); err != nil {
			return nil, err
		}
	case "json":
		if err := json.NewDecoder(r).Decode(&tt); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	return tt.Trains, nil
}

// Validate checks every train and rejects duplicate identifiers.
func Validate(trains []model.Train) error {
	seen := make(map[string]struct{}, len(trains))
	var errs []error
	for _, tr := range trains {
		if err := tr.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := seen[tr.ID]; dup {
			errs = append(errs, fmt.Errorf("%w: duplicate id %s", model.ErrInvalidTrain, tr.ID))
		}
		seen[tr.ID] = struct{}{}
	}
	return errors.Join(errs...)
}
