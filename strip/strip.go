package strip

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog"

	"github.com/sokinpui/lnstrip/cli"
	"github.com/sokinpui/lnstrip/internal/clip"
	"github.com/sokinpui/lnstrip/internal/fs"
	"github.com/sokinpui/lnstrip/internal/lines"
	"github.com/sokinpui/lnstrip/internal/logger"
	"github.com/sokinpui/lnstrip/internal/nvim"
	"github.com/sokinpui/lnstrip/internal/ui"
	"github.com/sokinpui/lnstrip/model"
)

// App orchestrates a single read, slice and write of one file.
type App struct {
	cfg      *cli.Config
	store    fs.Store
	closer   io.Closer
	resolver *fs.PathResolver
	copier   clip.Copier
	log      zerolog.Logger
	out      io.Writer
	logSet   bool
}

// Option customizes an App.
type Option func(*App)

// WithStore replaces the file store.
func WithStore(s fs.Store) Option {
	return func(a *App) { a.store = s }
}

// WithOutput sets where the audit of an excision is printed. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(a *App) { a.out = w }
}

// WithLogger replaces the logger built from the config.
func WithLogger(l zerolog.Logger) Option {
	return func(a *App) {
		a.log = l
		a.logSet = true
	}
}

// WithCopier replaces the system clipboard.
func WithCopier(c clip.Copier) Option {
	return func(a *App) { a.copier = c }
}

// DetailedError enhances a standard error with a stack trace.
type DetailedError struct {
	Err   error
	Stack []byte
}

func (e *DetailedError) Error() string {
	return e.Err.Error()
}

func (e *DetailedError) Unwrap() error {
	return e.Err
}

// New creates a new App instance. With cfg.Nvim set and no store given,
// it connects to Neovim; call Close to release the connection.
func New(cfg *cli.Config, opts ...Option) (*App, error) {
	resolver, err := fs.NewPathResolver(cfg.LookupDirs)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:      cfg,
		resolver: resolver,
		out:      os.Stdout,
	}
	for _, opt := range opts {
		opt(a)
	}

	if !a.logSet {
		level := "warn"
		if cfg.Verbose {
			level = "debug"
		}
		a.log = logger.New(logger.Config{Level: level, Pretty: true})
	}
	if a.copier == nil {
		a.copier = clip.New()
	}
	if a.store == nil {
		if cfg.Nvim {
			manager, err := nvim.New()
			if err != nil {
				return nil, fmt.Errorf("failed to connect to neovim: %w", err)
			}
			a.store = manager
			a.closer = manager
		} else {
			a.store = fs.NewAFSStore()
		}
	}
	return a, nil
}

// Close releases the store, if it holds a connection.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// Execute runs the operation selected by the config.
func (a *App) Execute(ctx context.Context) (summary model.Summary, err error) {
	// Centralized panic recovery.
	defer func() {
		if r := recover(); r != nil {
			err = &DetailedError{
				Err:   fmt.Errorf("internal panic: %v", r),
				Stack: debug.Stack(),
			}
		}
	}()

	switch a.cfg.Operation {
	case model.OpTruncate:
		return a.Truncate(ctx, a.cfg.Path, a.cfg.Keep)
	case model.OpExcise:
		return a.Excise(ctx, a.cfg.Path, a.cfg.Range.Start, a.cfg.Range.End)
	default:
		return model.Summary{}, fmt.Errorf("unknown operation %q", a.cfg.Operation)
	}
}

// Truncate keeps the first keep lines of the file at path.
func (a *App) Truncate(ctx context.Context, path string, keep int) (model.Summary, error) {
	target := a.resolver.Resolve(path)
	content, err := a.read(ctx, target)
	if err != nil {
		return model.Summary{}, err
	}

	kept, removed, err := lines.Truncate(content, keep)
	if err != nil {
		return model.Summary{}, err
	}

	summary := model.Summary{
		Path:      target,
		Operation: model.OpTruncate,
		Range:     model.LineRange{Start: keep + 1, End: len(content)},
		Original:  len(content),
		Result:    len(kept),
		Removed:   removed,
		DryRun:    a.cfg.DryRun,
	}
	if err := a.commit(ctx, target, kept, summary); err != nil {
		return model.Summary{}, err
	}
	return summary, nil
}

// Excise removes lines start..end (1-based, inclusive) from the file at
// path. The removed lines are printed before the file is written.
func (a *App) Excise(ctx context.Context, path string, start, end int) (model.Summary, error) {
	target := a.resolver.Resolve(path)
	content, err := a.read(ctx, target)
	if err != nil {
		return model.Summary{}, err
	}

	rng := model.LineRange{Start: start, End: end}
	if a.cfg.Strict {
		if err := lines.CheckBounds(len(content), rng); err != nil {
			return model.Summary{}, err
		}
	}

	kept, removed, err := lines.Excise(content, start, end)
	if err != nil {
		return model.Summary{}, err
	}

	summary := model.Summary{
		Path:      target,
		Operation: model.OpExcise,
		Range:     rng,
		Original:  len(content),
		Result:    len(kept),
		Removed:   removed,
		DryRun:    a.cfg.DryRun,
	}
	ui.PrintAudit(a.out, summary)

	if err := a.commit(ctx, target, kept, summary); err != nil {
		return model.Summary{}, err
	}
	return summary, nil
}

func (a *App) read(ctx context.Context, target string) ([]string, error) {
	content, err := a.store.ReadLines(ctx, target)
	if err != nil {
		return nil, err
	}
	a.log.Debug().Str("path", target).Int("lines", len(content)).Msg("read file")
	return content, nil
}

// commit copies the removed lines if asked to and writes the kept lines back.
func (a *App) commit(ctx context.Context, target string, kept []string, summary model.Summary) error {
	a.log.Debug().
		Str("op", string(summary.Operation)).
		Int("start", summary.Range.Start).
		Int("end", summary.Range.End).
		Int("removed", summary.RemovedCount()).
		Msg("sliced lines")

	if a.cfg.Copy && len(summary.Removed) > 0 {
		if err := a.copier.Copy(clip.RemovedText(summary.Removed)); err != nil {
			a.log.Warn().Err(err).Msg("could not copy removed lines")
		} else {
			a.log.Debug().Int("lines", len(summary.Removed)).Msg("copied removed lines to clipboard")
		}
	}

	if a.cfg.DryRun {
		a.log.Debug().Str("path", target).Msg("dry run, not writing")
		return nil
	}
	if err := a.store.WriteLines(ctx, target, kept); err != nil {
		return err
	}
	a.log.Debug().Str("path", target).Int("lines", len(kept)).Msg("wrote file")
	return nil
}
