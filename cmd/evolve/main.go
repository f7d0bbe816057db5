package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/meenmo/marketmodel/cmd/evolve/internal/check"
	"github.com/meenmo/marketmodel/cmd/evolve/internal/describe"
	"github.com/meenmo/marketmodel/cmd/evolve/internal/measure"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "describe":
		return describe.Run(args[1:], stdin, stdout, stderr)
	case "measure":
		return measure.Run(args[1:], stdin, stdout, stderr)
	case "check":
		return check.Run(args[1:], stdin, stdout, stderr)
	case "-h", "--help", "help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: evolve <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  describe  Derive taus, stop times and first alive rates")
	fmt.Fprintln(w, "  measure   Generate terminal / money-market / money-market-plus numeraires")
	fmt.Fprintln(w, "  check     Validate numeraire vectors and identify their measure")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run `evolve <command> -h` for command-specific help.")
}
