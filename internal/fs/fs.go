package fs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/viant/afs"
	"github.com/viant/afs/option"

	"github.com/sokinpui/lnstrip/internal/lines"
)

// ErrFileAccess marks a target file that is missing, unreadable or unwritable.
var ErrFileAccess = errors.New("file access error")

// Store reads and writes whole files as line sequences.
type Store interface {
	ReadLines(ctx context.Context, path string) ([]string, error)
	WriteLines(ctx context.Context, path string, content []string) error
}

// PathResolver finds absolute paths for files.
type PathResolver struct {
	lookupDirs []string
}

// NewPathResolver creates a new PathResolver.
func NewPathResolver(lookupDirs []string) (*PathResolver, error) {
	if len(lookupDirs) == 0 {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("could not get current working directory: %w", err)
		}
		return &PathResolver{lookupDirs: []string{wd}}, nil
	}

	absDirs := make([]string, 0, len(lookupDirs))
	for _, dir := range lookupDirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("invalid lookup directory '%s': %w", dir, err)
		}
		absDirs = append(absDirs, abs)
	}
	return &PathResolver{lookupDirs: absDirs}, nil
}

// Resolve returns the first existing match for path across the lookup
// directories, falling back to the first lookup directory. Absolute paths
// are returned unchanged.
func (r *PathResolver) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	for _, dir := range r.lookupDirs {
		absPath := filepath.Join(dir, path)
		if _, err := os.Stat(absPath); err == nil {
			return absPath
		}
	}
	return filepath.Join(r.lookupDirs[0], path)
}

// AFSStore is a Store backed by viant/afs.
type AFSStore struct {
	fs afs.Service
}

// NewAFSStore creates a store on the local file system.
func NewAFSStore() *AFSStore {
	return &AFSStore{fs: afs.New()}
}

// ReadLines loads the file at path. It fails with ErrFileAccess when the
// file does not exist, is a directory, or cannot be read.
func (s *AFSStore) ReadLines(ctx context.Context, path string) ([]string, error) {
	obj, err := s.fs.Object(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFileAccess, path, err)
	}
	if obj.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrFileAccess, path)
	}
	data, err := s.fs.DownloadWithURL(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrFileAccess, path, err)
	}
	return lines.Split(data), nil
}

// WriteLines truncates and rewrites the file at path in place. Symlinks are
// followed and a file that is not writable fails with ErrFileAccess.
func (s *AFSStore) WriteLines(ctx context.Context, path string, content []string) error {
	mode := os.FileMode(0644)
	if obj, err := s.fs.Object(ctx, path); err == nil {
		mode = obj.Mode().Perm()
	}
	w, err := s.fs.NewWriter(ctx, path, mode, option.OsFlag(os.O_TRUNC))
	if err != nil {
		return fmt.Errorf("%w: open %s for writing: %v", ErrFileAccess, path, err)
	}
	if _, err := io.Copy(w, bytes.NewReader(lines.Join(content))); err != nil {
		w.Close()
		return fmt.Errorf("%w: write %s: %v", ErrFileAccess, path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", ErrFileAccess, path, err)
	}
	return nil
}
