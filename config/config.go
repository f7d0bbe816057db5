// Package config reads evolution input documents from JSON or YAML.
//
// A document either lists rate times directly, describes a dated schedule
// from which they are generated, or names a stored schedule. Evolution times, relevance ranges, a measure
// and numeraire vectors are optional and used by the individual CLI commands.
package config

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/meenmo/marketmodel/calendar"
	"github.com/meenmo/marketmodel/evolution"
	"github.com/meenmo/marketmodel/marketdata"
	"github.com/meenmo/marketmodel/schedule"
	"github.com/meenmo/marketmodel/utils"
)

// Format is the encoding of an input document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrInvalidInput wraps every decoding and validation failure.
var ErrInvalidInput = errors.New("config: invalid input")

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Input is one evolution document.
type Input struct {
	TaskID string `json:"task_id,omitempty" yaml:"task_id,omitempty"`

	// RateTimes are tenor boundaries in years. One of RateTimes, Schedule or
	// ScheduleName is required.
	RateTimes []float64      `json:"rate_times,omitempty" yaml:"rate_times,omitempty" validate:"required_without_all=Schedule ScheduleName"`
	Schedule  *ScheduleInput `json:"schedule,omitempty" yaml:"schedule,omitempty"`
	// ScheduleName looks the rate times up in a marketdata.ScheduleSource.
	ScheduleName string `json:"schedule_name,omitempty" yaml:"schedule_name,omitempty"`

	// EvolutionTimes overrides the default one-step-per-tenor evolution.
	EvolutionTimes []float64 `json:"evolution_times,omitempty" yaml:"evolution_times,omitempty"`
	// EvolutionStride takes every k-th rate time as a step when EvolutionTimes is empty.
	EvolutionStride int `json:"evolution_stride,omitempty" yaml:"evolution_stride,omitempty" validate:"gte=0"`

	RelevanceRates [][2]int `json:"relevance_rates,omitempty" yaml:"relevance_rates,omitempty"`

	Measure string `json:"measure,omitempty" yaml:"measure,omitempty"`
	Offset  int    `json:"offset,omitempty" yaml:"offset,omitempty" validate:"gte=0"`

	// Numeraires holds one or more numeraire vectors to check.
	Numeraires [][]int `json:"numeraires,omitempty" yaml:"numeraires,omitempty"`
}

// ScheduleInput is the document form of schedule.Spec.
type ScheduleInput struct {
	Reference string `json:"reference" yaml:"reference" validate:"required,datetime=2006-01-02"`
	Start     string `json:"start,omitempty" yaml:"start,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Tenor     string `json:"tenor" yaml:"tenor" validate:"required"`
	Periods   int    `json:"periods" yaml:"periods" validate:"required,gt=0"`
	Calendar  string `json:"calendar" yaml:"calendar" validate:"required,oneof=TARGET SGX WEEKENDS_ONLY"`
	DayCount  string `json:"day_count,omitempty" yaml:"day_count,omitempty" validate:"omitempty,oneof=ACT/360 ACT/365F 30E/360 30/360"`
	Roll      string `json:"roll,omitempty" yaml:"roll,omitempty" validate:"omitempty,oneof=FOLLOWING MODIFIED_FOLLOWING"`
}

// FormatOf picks the format from a file extension; anything but .yaml/.yml is JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads and validates every document in the file at path.
func Load(path string) ([]Input, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	inputs, _, err := Parse(raw, FormatOf(path))
	return inputs, err
}

// Parse decodes either a single document or a list of documents. isArray
// reports which form was found so callers can answer in the same shape.
func Parse(raw []byte, format Format) (inputs []Input, isArray bool, err error) {
	switch format {
	case FormatYAML:
		inputs, isArray, err = parseYAML(raw)
	case FormatJSON, "":
		inputs, isArray, err = parseJSON(raw)
	default:
		return nil, false, fmt.Errorf("unknown format %q: %w", format, ErrInvalidInput)
	}
	if err != nil {
		return nil, false, fmt.Errorf("%v: %w", err, ErrInvalidInput)
	}
	for i := range inputs {
		if err := inputs[i].Validate(); err != nil {
			return nil, false, fmt.Errorf("document %d: %w", i, err)
		}
	}
	return inputs, isArray, nil
}

func parseJSON(raw []byte) ([]Input, bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, false, errors.New("empty input")
	}
	if trimmed[0] == '[' {
		var inputs []Input
		if err := json.Unmarshal(trimmed, &inputs); err != nil {
			return nil, true, err
		}
		if len(inputs) == 0 {
			return nil, true, errors.New("empty input array")
		}
		return inputs, true, nil
	}
	var in Input
	if err := json.Unmarshal(trimmed, &in); err != nil {
		return nil, false, err
	}
	return []Input{in}, false, nil
}

func parseYAML(raw []byte) ([]Input, bool, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return nil, false, err
	}
	if len(node.Content) == 0 {
		return nil, false, errors.New("empty document")
	}
	if node.Content[0].Kind == yaml.SequenceNode {
		var inputs []Input
		if err := node.Decode(&inputs); err != nil {
			return nil, true, err
		}
		if len(inputs) == 0 {
			return nil, true, errors.New("empty input array")
		}
		return inputs, true, nil
	}
	var in Input
	if err := node.Decode(&in); err != nil {
		return nil, false, err
	}
	return []Input{in}, false, nil
}

// Validate checks struct constraints; time-structure checks are left to
// evolution.NewDescription.
func (in *Input) Validate() error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("%v: %w", err, ErrInvalidInput)
	}
	return nil
}

// Spec converts the schedule section to a schedule.Spec.
func (s *ScheduleInput) Spec() (schedule.Spec, error) {
	ref, err := utils.ParseDate(s.Reference)
	if err != nil {
		return schedule.Spec{}, err
	}
	var start = ref
	if s.Start != "" {
		if start, err = utils.ParseDate(s.Start); err != nil {
			return schedule.Spec{}, err
		}
	}
	dc, err := utils.ParseDayCount(s.DayCount)
	if err != nil {
		return schedule.Spec{}, err
	}
	return schedule.Spec{
		Reference: ref,
		Start:     start,
		Tenor:     s.Tenor,
		Periods:   s.Periods,
		Calendar:  calendar.CalendarID(s.Calendar),
		DayCount:  dc,
		Roll:      calendar.Convention(s.Roll),
	}, nil
}

// ErrNoScheduleSource is returned when a document names a schedule but no
// source was configured.
var ErrNoScheduleSource = errors.New("config: schedule_name given without a schedule source")

// Description builds the evolution description the document describes. src
// resolves ScheduleName and may be nil when no document uses one. Explicit
// rate times win over Schedule, which wins over ScheduleName.
func (in *Input) Description(ctx context.Context, src marketdata.ScheduleSource) (*evolution.Description, error) {
	rateTimes := in.RateTimes
	var storedEvolution []float64
	switch {
	case len(rateTimes) > 0:
	case in.Schedule != nil:
		spec, err := in.Schedule.Spec()
		if err != nil {
			return nil, err
		}
		if rateTimes, err = schedule.RateTimes(spec); err != nil {
			return nil, err
		}
	case in.ScheduleName != "":
		if src == nil {
			return nil, fmt.Errorf("%q: %w", in.ScheduleName, ErrNoScheduleSource)
		}
		if len(in.EvolutionTimes) == 0 && in.EvolutionStride == 0 && len(in.RelevanceRates) == 0 {
			return marketdata.Describe(ctx, src, in.ScheduleName)
		}
		s, err := src.Schedule(ctx, in.ScheduleName)
		if err != nil {
			return nil, err
		}
		rateTimes, storedEvolution = s.RateTimes, s.EvolutionTimes
	}

	evolutionTimes := in.EvolutionTimes
	if len(evolutionTimes) == 0 && in.EvolutionStride > 0 {
		var err error
		if evolutionTimes, err = schedule.EvolutionTimes(rateTimes, in.EvolutionStride); err != nil {
			return nil, err
		}
	}
	if len(evolutionTimes) == 0 {
		evolutionTimes = storedEvolution
	}

	var relevance []evolution.RatePair
	for _, r := range in.RelevanceRates {
		relevance = append(relevance, evolution.RatePair{First: r[0], Last: r[1]})
	}
	return evolution.NewDescription(rateTimes, evolutionTimes, relevance)
}

// MeasureKind parses the measure field.
func (in *Input) MeasureKind() (evolution.Measure, error) {
	if strings.TrimSpace(in.Measure) == "" {
		return "", fmt.Errorf("measure is required: %w", ErrInvalidInput)
	}
	m, err := evolution.ParseMeasure(in.Measure)
	if err != nil {
		return "", fmt.Errorf("%v: %w", err, ErrInvalidInput)
	}
	return m, nil
}
