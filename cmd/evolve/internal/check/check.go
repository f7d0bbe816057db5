package check

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/meenmo/marketmodel/cmd/evolve/internal/cliutil"
	"github.com/meenmo/marketmodel/config"
	"github.com/meenmo/marketmodel/evolution"
	"github.com/meenmo/marketmodel/marketdata"
)

// Result is the verdict for one numeraire vector.
type Result struct {
	Numeraires []int  `json:"numeraires"`
	Compatible bool   `json:"compatible"`
	Measure    string `json:"measure,omitempty"`
	Offset     int    `json:"offset,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Output collects the results of one document.
type Output struct {
	TaskID  string   `json:"task_id,omitempty"`
	Results []Result `json:"results,omitempty"`
	Error   string   `json:"error,omitempty"`
}

func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var workers int
	opts, code, ok := cliutil.ParseFlags("check", args, stdin, stderr, usage, func(fs *flag.FlagSet) {
		fs.IntVar(&workers, "workers", 8, "Maximum vectors checked concurrently")
	})
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
		out, err := process(ctx, src, in, workers, log)
		if err != nil {
			hadError = true
			log.Warn("check failed", "task_id", in.TaskID, "err", err)
			outputs = append(outputs, Output{TaskID: in.TaskID, Error: err.Error()})
			continue
		}
		for _, r := range out.Results {
			if !r.Compatible {
				hadError = true
			}
		}
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
	fmt.Fprintln(w, "  evolve check [-workers n] < input.json")
	fmt.Fprintln(w, "  evolve check -input /path/to/input.yaml")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check every vector in \"numeraires\" against the described evolution and report its measure.")
	fmt.Fprintln(w, "Exits 1 if any vector is incompatible.")
}

func process(ctx context.Context, src marketdata.ScheduleSource, in config.Input, workers int, log *slog.Logger) (*Output, error) {
	if len(in.Numeraires) == 0 {
		return nil, fmt.Errorf("numeraires is required: %w", config.ErrInvalidInput)
	}
	d, err := in.Description(ctx, src)
	if err != nil {
		return nil, err
	}

	// d is immutable, so the vectors can be checked in parallel.
	results := make([]Result, len(in.Numeraires))
	var g errgroup.Group
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, nums := range in.Numeraires {
		i, nums := i, nums
		g.Go(func() error {
			results[i] = checkOne(d, nums)
			log.Debug("checked numeraires", "task_id", in.TaskID, "index", i, "compatible", results[i].Compatible)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Output{TaskID: in.TaskID, Results: results}, nil
}

func checkOne(d *evolution.Description, nums []int) Result {
	r := Result{Numeraires: nums}
	if err := evolution.CheckCompatibility(d, nums); err != nil {
		r.Error = err.Error()
		return r
	}
	r.Compatible = true
	if m, offset, ok := evolution.Identify(d, nums); ok {
		r.Measure = string(m)
		r.Offset = offset
	}
	return r
}
