// Command timexpr recognizes natural-language temporal expressions in
// text and prints the resolved value of each.
//
// Usage:
//
//	timexpr [--reference YYYY-MM-DDTHH:MM:SS] [--color|--no-color] [--input TEXT | -- TEXT...]
//
// With no --input and no trailing positional text, the whole input is
// read from stdin. With --explain, setting TIMEXPR_TRACE=1 also writes
// stderr trace lines for the active rules, the per-pass node counts and
// timings, and the resolve time; without --explain it adds no output.
// Trigger-scan results and per-rule events are not traced. The variable
// never alters the result.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/az-ai-labs/timexpr"
	"github.com/az-ai-labs/timexpr/internal/xlog"
)

const defaultReference = "2013-02-12T04:30:00"

const referenceLayout = "2006-01-02T15:04:05"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("timexpr", flag.ContinueOnError)
	fs.SetOutput(stderr)

	reference := fs.String("reference", defaultReference, "reference instant, YYYY-MM-DDTHH:MM:SS")
	input := fs.String("input", "", "text to parse; reads stdin if unset and no trailing args")
	explain := fs.Bool("explain", false, "print a verbose saturation trace table")
	color := fs.Bool("color", false, "force-enable colored output")
	noColor := fs.Bool("no-color", false, "force-disable colored output")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [--reference YYYY-MM-DDTHH:MM:SS] [--color|--no-color] [--input TEXT | -- TEXT...]\n\n", fs.Name())
		fmt.Fprintf(stderr, "Recognizes dates, times, durations, holidays, and numerals in text.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	ref, err := time.Parse(referenceLayout, *reference)
	if err != nil {
		fmt.Fprintf(stderr, "timexpr: invalid --reference %q: %v\n", *reference, err)
		return 2
	}

	log := xlog.New(stderr, xlog.LevelFromEnv())
	if *color {
		log.SetColor(true)
	} else if *noColor {
		log.SetColor(false)
	}

	text, err := resolveInput(*input, fs.Args(), stdin)
	if err != nil {
		fmt.Fprintf(stderr, "timexpr: %v\n", err)
		return 2
	}

	ctx := timexpr.Context{Reference: ref}
	log.Info("parsing %d bytes with reference %s", len(text), ref.Format(referenceLayout))

	if *explain {
		return printExplain(text, ctx, log, stdout)
	}
	return printEntities(text, ctx, stdout)
}

// resolveInput chooses the text to parse: --input wins, then trailing
// positional arguments joined with spaces, then the whole of stdin.
func resolveInput(flagInput string, positional []string, stdin io.Reader) (string, error) {
	if flagInput != "" {
		return flagInput, nil
	}
	if len(positional) > 0 {
		return strings.Join(positional, " "), nil
	}
	data, err := io.ReadAll(bufio.NewReader(stdin))
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	text := strings.TrimRight(string(data), "\n")
	if text == "" {
		return "", fmt.Errorf("no input: pass --input, trailing text, or pipe stdin")
	}
	return text, nil
}

func printEntities(text string, ctx timexpr.Context, stdout io.Writer) int {
	entities, _ := timexpr.Parse(text, ctx)
	for _, e := range entities {
		fmt.Fprintln(stdout, e.String())
	}
	return 0
}

// printExplain writes the per-pass saturation trace to the logger at
// trace level and renders the resolved entities as a markdown table.
func printExplain(text string, ctx timexpr.Context, log *xlog.Logger, stdout io.Writer) int {
	v := timexpr.VerboseParse(text, ctx)

	log.Trace("active rules: %s", strings.Join(v.ActiveRules, ", "))
	log.Trace("initial regex pass: %d produced in %s", v.Metrics.Saturation.InitialRegex.Produced, v.Metrics.Saturation.InitialRegex.Duration)
	for i, pass := range v.Metrics.Saturation.Iterations {
		log.Trace("iteration %d: %d produced in %s", i+1, pass.Produced, pass.Duration)
	}
	log.Trace("resolve: %s, total: %s", v.Metrics.Resolve, v.Metrics.Total)

	var sb strings.Builder
	alignment := []tw.Align{tw.AlignNone, tw.AlignNone, tw.AlignNone, tw.AlignNone, tw.AlignNone}
	table := tablewriter.NewTable(&sb,
		tablewriter.WithRenderer(renderer.NewMarkdown()),
		tablewriter.WithAlignment(alignment),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)
	table.Header([]string{"dim", "body", "value", "span", "rule"})
	for _, e := range v.Entities {
		table.Append([]string{
			e.Name.String(),
			e.Body,
			e.Value,
			fmt.Sprintf("[%d,%d)", e.Start, e.End),
			e.Rule,
		})
	}
	table.Render()
	fmt.Fprint(stdout, sb.String())
	fmt.Fprintf(stdout, "\n_%d entities, %d candidates before filtering_\n", len(v.Entities), len(v.AllCandidates))
	return 0
}
