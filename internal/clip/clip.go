package clip

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/sokinpui/lnstrip/model"
)

// Copier places text on the system clipboard.
type Copier interface {
	Copy(text string) error
}

// SystemCopier writes to the system clipboard.
type SystemCopier struct{}

// New creates a new SystemCopier.
func New() *SystemCopier {
	return &SystemCopier{}
}

// Copy writes text to the clipboard.
func (SystemCopier) Copy(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard is not supported on this system")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to write to clipboard: %w", err)
	}
	return nil
}

// RemovedText joins removed lines back into the text they had in the file.
func RemovedText(removed []model.RemovedLine) string {
	var b strings.Builder
	for _, l := range removed {
		b.WriteString(l.Text)
	}
	return b.String()
}
