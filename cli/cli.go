package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/sokinpui/lnstrip/model"
)

// ErrHelp is returned when the user asked for usage.
var ErrHelp = pflag.ErrHelp

// Config holds all the command-line flag values.
type Config struct {
	Path       string
	Operation  model.Operation
	Keep       int
	Range      model.LineRange
	Strict     bool
	DryRun     bool
	Copy       bool
	Nvim       bool
	TUI        bool
	Verbose    bool
	LookupDirs []string
}

// ParseFlags parses os.Args.
func ParseFlags() (*Config, error) {
	return ParseArgs(os.Args[1:], os.Stderr)
}

// ParseArgs defines and parses command-line flags using pflag.
func ParseArgs(args []string, output io.Writer) (*Config, error) {
	cfg := &Config{}
	var deleteSpec string

	flags := pflag.NewFlagSet("lnstrip", pflag.ContinueOnError)
	flags.SetOutput(output)

	// Define flags
	flags.IntVarP(&cfg.Keep, "keep", "k", 0, "Keep only the first N lines of the file.")
	flags.StringVarP(&deleteSpec, "delete", "d", "", "Delete lines START-END (1-based, inclusive), or a single line N.")
	flags.BoolVarP(&cfg.Strict, "strict", "s", false, "Fail when the range runs past the end of the file.")
	flags.BoolVarP(&cfg.DryRun, "dry-run", "n", false, "Print what would be removed without writing the file.")
	flags.BoolVarP(&cfg.Copy, "copy", "c", false, "Copy the removed lines to the clipboard.")
	flags.BoolVar(&cfg.Nvim, "nvim", false, "Edit the file through Neovim ($NVIM or a headless instance).")
	flags.BoolVar(&cfg.TUI, "tui", false, "Show a spinner and a styled summary.")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Log each step to stderr.")
	flags.StringSliceVarP(&cfg.LookupDirs, "lookup-dir", "l", []string{}, "Directories to resolve relative paths against (default: current directory).")

	flags.Usage = func() {
		fmt.Fprintln(output, "Usage: lnstrip (-k N | -d START-END) [flags] <file>")
		fmt.Fprintln(output, "\nRemove a range of lines from a file in place and report the line counts.")
		fmt.Fprintln(output, "\nExample: lnstrip -d 646-653 pages/AddQuestionPage.tsx")
		fmt.Fprintln(output, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	// Validate mutually exclusive flags
	keepSet := flags.Changed("keep")
	deleteSet := flags.Changed("delete")
	switch {
	case keepSet && deleteSet:
		return nil, errors.New("--keep and --delete are mutually exclusive")
	case keepSet:
		if cfg.Keep < 0 {
			return nil, fmt.Errorf("--keep must not be negative, got %d", cfg.Keep)
		}
		cfg.Operation = model.OpTruncate
	case deleteSet:
		rng, err := ParseRange(deleteSpec)
		if err != nil {
			return nil, err
		}
		cfg.Operation = model.OpExcise
		cfg.Range = rng
	default:
		return nil, errors.New("one of --keep or --delete is required")
	}

	if flags.NArg() != 1 {
		return nil, fmt.Errorf("expected exactly one file argument, got %d", flags.NArg())
	}
	cfg.Path = flags.Arg(0)

	return cfg, nil
}

// ParseRange parses "START-END" or "N" into a 1-based inclusive range.
func ParseRange(spec string) (model.LineRange, error) {
	startStr, endStr, found := strings.Cut(strings.TrimSpace(spec), "-")
	if !found {
		endStr = startStr
	}
	start, err := strconv.Atoi(strings.TrimSpace(startStr))
	if err != nil {
		return model.LineRange{}, fmt.Errorf("invalid range %q: bad start: %w", spec, err)
	}
	end, err := strconv.Atoi(strings.TrimSpace(endStr))
	if err != nil {
		return model.LineRange{}, fmt.Errorf("invalid range %q: bad end: %w", spec, err)
	}
	if start < 1 || end < start {
		return model.LineRange{}, fmt.Errorf("invalid range %q: need 1 <= START <= END", spec)
	}
	return model.LineRange{Start: start, End: end}, nil
}
