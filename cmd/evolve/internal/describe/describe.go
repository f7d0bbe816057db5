package describe

import (
	"context"
	"fmt"
	"io"

	"github.com/meenmo/marketmodel/cmd/evolve/internal/cliutil"
	"github.com/meenmo/marketmodel/config"
	"github.com/meenmo/marketmodel/evolution"
	"github.com/meenmo/marketmodel/marketdata"
)

// Output is the JSON form of an evolution description.
type Output struct {
	TaskID            string      `json:"task_id,omitempty"`
	NumberOfRates     int         `json:"number_of_rates"`
	NumberOfSteps     int         `json:"number_of_steps"`
	RateTimes         []float64   `json:"rate_times"`
	RateTaus          []float64   `json:"rate_taus"`
	EvolutionTimes    []float64   `json:"evolution_times"`
	EffectiveStopTime [][]float64 `json:"effective_stop_time"`
	FirstAliveRate    []int       `json:"first_alive_rate"`
	RelevanceRates    [][2]int    `json:"relevance_rates"`
	Error             string      `json:"error,omitempty"`
}

func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, code, ok := cliutil.ParseFlags("describe", args, stdin, stderr, usage, nil)
	if !ok {
		return code
	}
	log := cliutil.NewLogger(stderr, opts.Verbose)

	inputs, isArray, err := cliutil.ReadInputs(stdin, opts)
	if err != nil {
		return cliutil.WriteError(stdout, err.Error())
	}
	ctx := context.Background()
	src, closeSource, err := cliutil.OpenSource(ctx, opts)
	if err != nil {
		return cliutil.WriteError(stdout, err.Error())
	}
	defer closeSource()

	hadError := false
	outputs := make([]Output, 0, len(inputs))
	for _, in := range inputs {
		out, err := process(ctx, src, in)
		if err != nil {
			hadError = true
			log.Warn("describe failed", "task_id", in.TaskID, "err", err)
			outputs = append(outputs, Output{TaskID: in.TaskID, Error: err.Error()})
			continue
		}
		log.Debug("described", "task_id", in.TaskID, "rates", out.NumberOfRates, "steps", out.NumberOfSteps)
		outputs = append(outputs, *out)
	}

	cliutil.Emit(stdout, outputs, isArray)
	if hadError {
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  evolve describe < input.json")
	fmt.Fprintln(w, "  evolve describe -input /path/to/input.yaml")
	fmt.Fprintln(w, "  evolve describe -dsn postgres://... < input.json   (resolves schedule_name)")
	fmt.Fprintln(w, "  evolve describe -schedules schedules.yaml < input.json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Read rate times (or a dated schedule) and print the derived evolution structure as JSON.")
}

func process(ctx context.Context, src marketdata.ScheduleSource, in config.Input) (*Output, error) {
	d, err := in.Description(ctx, src)
	if err != nil {
		return nil, err
	}
	return FromDescription(in.TaskID, d), nil
}

// FromDescription flattens d into its JSON form.
func FromDescription(taskID string, d *evolution.Description) *Output {
	stop := d.EffectiveStopTime()
	rows, cols := stop.Dims()
	matrix := make([][]float64, rows)
	for j := range matrix {
		matrix[j] = make([]float64, cols)
		for i := range matrix[j] {
			matrix[j][i] = stop.At(j, i)
		}
	}

	relevance := make([][2]int, 0, d.NumberOfSteps())
	for _, r := range d.RelevanceRates() {
		relevance = append(relevance, [2]int{r.First, r.Last})
	}

	return &Output{
		TaskID:            taskID,
		NumberOfRates:     d.NumberOfRates(),
		NumberOfSteps:     d.NumberOfSteps(),
		RateTimes:         d.RateTimes(),
		RateTaus:          d.RateTaus(),
		EvolutionTimes:    d.EvolutionTimes(),
		EffectiveStopTime: matrix,
		FirstAliveRate:    d.FirstAliveRate(),
		RelevanceRates:    relevance,
	}
}
