package measure

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/meenmo/marketmodel/cmd/evolve/internal/cliutil"
	"github.com/meenmo/marketmodel/config"
	"github.com/meenmo/marketmodel/evolution"
	"github.com/meenmo/marketmodel/marketdata"
)

// Output is a generated numeraire assignment.
type Output struct {
	TaskID     string `json:"task_id,omitempty"`
	Measure    string `json:"measure,omitempty"`
	Offset     int    `json:"offset"`
	Numeraires []int  `json:"numeraires,omitempty"`
	Error      string `json:"error,omitempty"`
}

func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var measureFlag string
	var offsetFlag int
	opts, code, ok := cliutil.ParseFlags("measure", args, stdin, stderr, usage, func(fs *flag.FlagSet) {
		fs.StringVar(&measureFlag, "measure", "", "terminal, mm or mmplus (overrides the document)")
		fs.IntVar(&offsetFlag, "offset", -1, "money-market-plus offset (overrides the document)")
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
		if measureFlag != "" {
			in.Measure = measureFlag
		}
		if offsetFlag >= 0 {
			in.Offset = offsetFlag
		}
		out, err := process(ctx, src, in)
		if err != nil {
			hadError = true
			log.Warn("measure failed", "task_id", in.TaskID, "err", err)
			outputs = append(outputs, Output{TaskID: in.TaskID, Error: err.Error()})
			continue
		}
		log.Debug("generated numeraires", "task_id", in.TaskID, "measure", out.Measure, "offset", out.Offset)
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
	fmt.Fprintln(w, "  evolve measure [-measure terminal|mm|mmplus] [-offset k] < input.json")
	fmt.Fprintln(w, "  evolve measure -input /path/to/input.yaml")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate the numeraire vector of a measure for the described evolution.")
}

func process(ctx context.Context, src marketdata.ScheduleSource, in config.Input) (*Output, error) {
	m, err := in.MeasureKind()
	if err != nil {
		return nil, err
	}
	d, err := in.Description(ctx, src)
	if err != nil {
		return nil, err
	}
	nums, err := evolution.Numeraires(d, m, in.Offset)
	if err != nil {
		return nil, err
	}
	offset := 0
	if m == evolution.MoneyMarketPlus {
		offset = in.Offset
	}
	return &Output{TaskID: in.TaskID, Measure: string(m), Offset: offset, Numeraires: nums}, nil
}
