// Package marketdata supplies named rate schedules (rate times plus optional
// evolution times) from which evolution descriptions are built.
package marketdata

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/meenmo/marketmodel/evolution"
)

// ErrScheduleNotFound is returned when a source has no schedule of that name.
var ErrScheduleNotFound = errors.New("marketdata: schedule not found")

// Schedule is a named set of tenor boundaries and simulation steps, in years.
// Empty EvolutionTimes means one step per tenor boundary.
type Schedule struct {
	Name           string    `json:"name" yaml:"name"`
	RateTimes      []float64 `json:"rate_times" yaml:"rate_times"`
	EvolutionTimes []float64 `json:"evolution_times,omitempty" yaml:"evolution_times,omitempty"`
}

// ScheduleSource supplies schedules by name.
type ScheduleSource interface {
	Schedule(ctx context.Context, name string) (Schedule, error)
}

// MapSource is a static map-backed implementation for development/testing.
type MapSource struct {
	schedules map[string]Schedule
}

func NewMapSource(schedules ...Schedule) *MapSource {
	m := &MapSource{schedules: make(map[string]Schedule, len(schedules))}
	for _, s := range schedules {
		m.schedules[s.Name] = cloneSchedule(s)
	}
	return m
}

// LoadMapSource reads a YAML (or JSON) list of schedules from path.
func LoadMapSource(path string) (*MapSource, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schedules: %w", err)
	}
	var schedules []Schedule
	if err := yaml.Unmarshal(raw, &schedules); err != nil {
		return nil, fmt.Errorf("parse schedules %s: %w", path, err)
	}
	for i, s := range schedules {
		if s.Name == "" {
			return nil, fmt.Errorf("schedules %s: entry %d has no name", path, i)
		}
	}
	return NewMapSource(schedules...), nil
}

func (m *MapSource) Schedule(_ context.Context, name string) (Schedule, error) {
	s, ok := m.schedules[name]
	if !ok {
		return Schedule{}, fmt.Errorf("%q: %w", name, ErrScheduleNotFound)
	}
	return cloneSchedule(s), nil
}

// Describe loads a schedule and builds its evolution description.
func Describe(ctx context.Context, src ScheduleSource, name string) (*evolution.Description, error) {
	s, err := src.Schedule(ctx, name)
	if err != nil {
		return nil, err
	}
	d, err := evolution.NewDescription(s.RateTimes, s.EvolutionTimes, nil)
	if err != nil {
		return nil, fmt.Errorf("schedule %q: %w", name, err)
	}
	return d, nil
}

func cloneSchedule(s Schedule) Schedule {
	return Schedule{
		Name:           s.Name,
		RateTimes:      append([]float64(nil), s.RateTimes...),
		EvolutionTimes: append([]float64(nil), s.EvolutionTimes...),
	}
}
