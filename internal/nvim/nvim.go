package nvim

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/neovim/go-client/nvim"

	"github.com/sokinpui/lnstrip/internal/fs"
)

// Manager handles the connection and interaction with a Neovim instance.
// It implements fs.Store on top of Neovim buffers, so a file that is open in
// the editor is edited in place and saved from there.
type Manager struct {
	nvim          *nvim.Nvim
	isSelfStarted bool
	cmd           *exec.Cmd
	socketPath    string
}

// New creates a new Neovim manager, connecting to an existing instance
// or starting a new headless one.
func New() (*Manager, error) {
	// Try to connect to a running instance first.
	for _, env := range []string{"NVIM", "NVIM_LISTEN_ADDRESS"} {
		if addr := os.Getenv(env); addr != "" {
			v, err := nvim.Dial(addr)
			if err == nil {
				return &Manager{nvim: v}, nil
			}
		}
	}

	// If that fails, start a temporary headless instance.
	tmpDir, err := os.MkdirTemp("", "lnstrip-nvim-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir for nvim: %w", err)
	}
	socketPath := filepath.Join(tmpDir, "nvim.sock")

	cmd := exec.Command("nvim", "--headless", "--clean", "--listen", socketPath)
	if err := cmd.Start(); err != nil {
		os.RemoveAll(tmpDir)
		return nil, fmt.Errorf("failed to start headless nvim: %w. Is 'nvim' in your PATH?", err)
	}

	// Wait for the socket file to appear.
	for i := 0; i < 20; i++ {
		if _, err := os.Stat(socketPath); err == nil {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	v, err := nvim.Dial(socketPath)
	if err != nil {
		cmd.Process.Kill()
		cmd.Wait()
		os.RemoveAll(tmpDir)
		return nil, fmt.Errorf("failed to connect to headless nvim: %w", err)
	}

	m := &Manager{
		nvim:          v,
		isSelfStarted: true,
		cmd:           cmd,
		socketPath:    socketPath,
	}
	m.configureTempInstance()
	return m, nil
}

func (m *Manager) configureTempInstance() {
	b := m.nvim.NewBatch()
	b.Command("set noswapfile")
	_ = b.Execute()
}

// Close disconnects from Neovim and cleans up if it was self-started.
func (m *Manager) Close() error {
	var err error
	if m.nvim != nil {
		err = m.nvim.Close()
	}
	if m.isSelfStarted && m.cmd != nil && m.cmd.Process != nil {
		if killErr := m.cmd.Process.Kill(); killErr == nil {
			m.cmd.Wait()
			os.RemoveAll(filepath.Dir(m.socketPath))
		}
	}
	return err
}

// ReadLines opens path in a buffer and returns its lines.
func (m *Manager) ReadLines(ctx context.Context, path string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", fs.ErrFileAccess, path, err)
	}
	if info, err := os.Stat(absPath); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", fs.ErrFileAccess, path, err)
	} else if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", fs.ErrFileAccess, path)
	}

	var (
		buf        nvim.Buffer
		raw        [][]byte
		eol        bool
		fileformat string
	)
	b := m.nvim.NewBatch()
	b.Command(fmt.Sprintf("edit %s", escapePath(absPath)))
	b.CurrentBuffer(&buf)
	if err := b.Execute(); err != nil {
		return nil, fmt.Errorf("%w: open %s in nvim: %v", fs.ErrFileAccess, path, err)
	}

	b = m.nvim.NewBatch()
	b.BufferLines(buf, 0, -1, true, &raw)
	b.BufferOption(buf, "endofline", &eol)
	b.BufferOption(buf, "fileformat", &fileformat)
	if err := b.Execute(); err != nil {
		return nil, fmt.Errorf("%w: read %s from nvim: %v", fs.ErrFileAccess, path, err)
	}
	return fromBufferLines(raw, eol, fileformat == "dos"), nil
}

// WriteLines replaces the buffer content for path and writes it to disk.
func (m *Manager) WriteLines(ctx context.Context, path string, content []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", fs.ErrFileAccess, path, err)
	}

	replacement, eol, dos := toBufferLines(content)
	fileformat := "unix"
	if dos {
		fileformat = "dos"
	}

	var buf nvim.Buffer
	b := m.nvim.NewBatch()
	b.Command(fmt.Sprintf("edit %s", escapePath(absPath)))
	b.CurrentBuffer(&buf)
	if err := b.Execute(); err != nil {
		return fmt.Errorf("%w: open %s in nvim: %v", fs.ErrFileAccess, path, err)
	}

	b = m.nvim.NewBatch()
	b.SetBufferLines(buf, 0, -1, true, replacement)
	b.SetBufferOption(buf, "fixendofline", false)
	b.SetBufferOption(buf, "endofline", eol)
	b.SetBufferOption(buf, "fileformat", fileformat)
	b.Command("write")
	if err := b.Execute(); err != nil {
		return fmt.Errorf("%w: write %s from nvim: %v", fs.ErrFileAccess, path, err)
	}
	return nil
}

// fromBufferLines turns buffer lines into terminated lines. Neovim reports
// an empty file as a single empty line, and strips "\r\n" from lines of a
// dos buffer.
func fromBufferLines(raw [][]byte, eol, dos bool) []string {
	if len(raw) == 1 && len(raw[0]) == 0 {
		return []string{}
	}
	term := "\n"
	if dos {
		term = "\r\n"
	}
	out := make([]string, len(raw))
	for i, l := range raw {
		out[i] = string(l) + term
	}
	if !eol && len(out) > 0 {
		last := len(out) - 1
		out[last] = strings.TrimSuffix(out[last], term)
	}
	return out
}

// toBufferLines strips terminators and reports whether the last line had
// one and whether every terminated line ends in "\r\n". Mixed files stay
// unix with "\r" kept in the line text.
func toBufferLines(content []string) (raw [][]byte, eol, dos bool) {
	eol = true
	terminated := 0
	crlf := 0
	for _, l := range content {
		if strings.HasSuffix(l, "\n") {
			terminated++
			if strings.HasSuffix(l, "\r\n") {
				crlf++
			}
		}
	}
	dos = terminated > 0 && crlf == terminated

	term := "\n"
	if dos {
		term = "\r\n"
	}
	raw = make([][]byte, len(content))
	for i, l := range content {
		trimmed := strings.TrimSuffix(l, term)
		if i == len(content)-1 && trimmed == l {
			eol = false
		}
		raw[i] = []byte(trimmed)
	}
	return raw, eol, dos
}

func escapePath(p string) string {
	r := strings.NewReplacer(" ", `\ `, "%", `\%`, "#", `\#`)
	return r.Replace(p)
}
