// Package cliutil holds the flag, input and output plumbing shared by the
// evolve subcommands.
package cliutil

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/meenmo/marketmodel/config"
	"github.com/meenmo/marketmodel/marketdata"
)

// Options are the flags every subcommand accepts.
type Options struct {
	InputPath string
	Format    config.Format
	Verbose   bool
	// DSN and SchedulesPath select where schedule_name documents are resolved.
	DSN           string
	SchedulesPath string
}

// ParseFlags parses args into Options plus whatever extra flags register adds.
// ok is false when the caller should return code immediately.
func ParseFlags(name string, args []string, stdin io.Reader, stderr io.Writer, usage func(io.Writer), register func(*flag.FlagSet)) (opts Options, code int, ok bool) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	inputPath := fs.String("input", "", "JSON or YAML input path (optional; if set, ignores stdin)")
	format := fs.String("format", "", "input format: json or yaml (default: from extension, else json)")
	dsn := fs.String("dsn", os.Getenv("EVOLVE_DSN"), "Postgres DSN resolving schedule_name (default $EVOLVE_DSN)")
	schedules := fs.String("schedules", "", "YAML or JSON file of named schedules resolving schedule_name")
	verbose := fs.Bool("v", false, "Log debug output to stderr")
	help := fs.Bool("h", false, "Show help")
	fs.BoolVar(help, "help", false, "Show help")
	if register != nil {
		register(fs)
	}

	if err := fs.Parse(args); err != nil {
		return Options{}, 2, false
	}
	if *help {
		usage(stderr)
		return Options{}, 0, false
	}

	opts = Options{
		InputPath:     strings.TrimSpace(*inputPath),
		Format:        config.Format(strings.ToLower(strings.TrimSpace(*format))),
		Verbose:       *verbose,
		DSN:           strings.TrimSpace(*dsn),
		SchedulesPath: strings.TrimSpace(*schedules),
	}
	if opts.Format == "" && opts.InputPath != "" {
		opts.Format = config.FormatOf(opts.InputPath)
	}
	if opts.InputPath == "" {
		if f, isFile := stdin.(*os.File); isFile {
			if stat, err := f.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
				usage(stderr)
				return Options{}, 2, false
			}
		}
	}
	return opts, 0, true
}

// ReadInputs reads and parses the input documents.
func ReadInputs(stdin io.Reader, opts Options) ([]config.Input, bool, error) {
	var raw []byte
	var err error
	if opts.InputPath != "" {
		raw, err = os.ReadFile(opts.InputPath)
	} else {
		raw, err = io.ReadAll(stdin)
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read input: %w", err)
	}
	return config.Parse(raw, opts.Format)
}

// OpenSource opens the schedule source selected by opts. The source is nil when
// neither -dsn nor -schedules was given. The returned close func is never nil.
func OpenSource(ctx context.Context, opts Options) (marketdata.ScheduleSource, func(), error) {
	switch {
	case opts.DSN != "" && opts.SchedulesPath != "":
		return nil, func() {}, errors.New("-dsn and -schedules are mutually exclusive")
	case opts.DSN != "":
		pg, err := marketdata.OpenPostgres(ctx, opts.DSN)
		if err != nil {
			return nil, func() {}, err
		}
		return pg, func() { pg.Close() }, nil
	case opts.SchedulesPath != "":
		m, err := marketdata.LoadMapSource(opts.SchedulesPath)
		if err != nil {
			return nil, func() {}, err
		}
		return m, func() {}, nil
	default:
		return nil, func() {}, nil
	}
}

// NewLogger logs to stderr at Info, or Debug with -v.
func NewLogger(stderr io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

// Emit writes outputs as a JSON array when the input was an array, otherwise
// the single output object.
func Emit[T any](stdout io.Writer, outputs []T, isArray bool) {
	var b []byte
	if isArray || len(outputs) != 1 {
		b, _ = json.Marshal(outputs)
	} else {
		b, _ = json.Marshal(outputs[0])
	}
	fmt.Fprintln(stdout, string(b))
}

// WriteError writes {"error": msg} and returns exit code 1.
func WriteError(stdout io.Writer, msg string) int {
	b, _ := json.Marshal(struct {
		Error string `json:"error"`
	}{msg})
	fmt.Fprintln(stdout, string(b))
	return 1
}
