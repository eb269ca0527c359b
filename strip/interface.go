package strip

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sokinpui/lnstrip/cli"
	"github.com/sokinpui/lnstrip/internal/tui"
	"github.com/sokinpui/lnstrip/internal/ui"
	"github.com/sokinpui/lnstrip/model"
)

// TruncateFile keeps the first keep lines of the file at path and returns
// the line counts. Nothing is printed.
func TruncateFile(ctx context.Context, path string, keep int) (model.Summary, error) {
	return runQuiet(ctx, &cli.Config{Path: path, Operation: model.OpTruncate, Keep: keep})
}

// ExciseFile removes lines start..end (1-based, inclusive) from the file at
// path. The removed lines are returned in the summary instead of printed.
func ExciseFile(ctx context.Context, path string, start, end int) (model.Summary, error) {
	return runQuiet(ctx, &cli.Config{
		Path:      path,
		Operation: model.OpExcise,
		Range:     model.LineRange{Start: start, End: end},
	})
}

func runQuiet(ctx context.Context, cfg *cli.Config) (model.Summary, error) {
	app, err := New(cfg, WithOutput(io.Discard))
	if err != nil {
		return model.Summary{}, fmt.Errorf("failed to initialize lnstrip app: %w", err)
	}
	defer app.Close()
	return app.Execute(ctx)
}

// Run executes cfg and prints the audit and summary to stdout, or hands
// them to the TUI when cfg.TUI is set.
func Run(ctx context.Context, cfg *cli.Config, stdout io.Writer, opts ...Option) error {
	out := stdout
	if cfg.TUI {
		out = io.Discard
	}
	app, err := New(cfg, append([]Option{WithOutput(out)}, opts...)...)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.Close()

	if cfg.TUI {
		return tui.Run(func() (model.Summary, error) { return app.Execute(ctx) }, os.Stdin, stdout)
	}

	summary, err := app.Execute(ctx)
	if err != nil {
		return err
	}
	ui.PrintSummary(stdout, summary)
	return nil
}

// Main runs cfg the way the commands do and returns the process exit code.
func Main(cfg *cli.Config) int {
	return exitCode(Run(context.Background(), cfg, os.Stdout), os.Stderr)
}

// exitCode prints err to stderr unless the TUI already showed it.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	var reported *tui.ReportedError
	if !errors.As(err, &reported) {
		ui.ErrorColor.Fprintf(stderr, "Error: %v\n", err)
	}
	var detailed *DetailedError
	if errors.As(err, &detailed) {
		fmt.Fprintf(stderr, "\n--- Stack Trace ---\n%s\n", detailed.Stack)
	}
	return 1
}
