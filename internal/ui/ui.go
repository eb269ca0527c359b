package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/fatih/color"

	"github.com/sokinpui/lnstrip/model"
)

var (
	HeaderColor  = color.New(color.FgBlue, color.Bold)
	InfoColor    = color.New(color.FgCyan)
	SuccessColor = color.New(color.FgGreen)
	ErrorColor   = color.New(color.FgRed)
	LineNoColor  = color.New(color.FgYellow)
)

func Error(format string, a ...interface{}) {
	ErrorColor.Fprintf(os.Stderr, format+"\n", a...)
}

// --- Audit ---

// AuditHeader is the line printed before the removed lines of an excision.
func AuditHeader(s model.Summary) string {
	return fmt.Sprintf("Lines to DELETE (%d-%d):", s.Range.Start, s.Range.End)
}

// AuditLine formats a removed line with its original number.
func AuditLine(l model.RemovedLine) string {
	return fmt.Sprintf("%d: %s", l.Number, strings.TrimRightFunc(l.Text, unicode.IsSpace))
}

// PrintAudit lists the lines an excision is about to remove.
func PrintAudit(w io.Writer, s model.Summary) {
	HeaderColor.Fprintln(w, AuditHeader(s))
	for _, l := range s.Removed {
		LineNoColor.Fprintf(w, "%d:", l.Number)
		fmt.Fprintln(w, " "+strings.TrimRightFunc(l.Text, unicode.IsSpace))
	}
}

// --- Summaries ---

// Headline is the confirmation message for a finished operation.
func Headline(s model.Summary) string {
	prefix := "✅ "
	if s.DryRun {
		prefix = "(dry run) "
	}
	switch s.Operation {
	case model.OpTruncate:
		if s.RemovedCount() == 0 {
			return fmt.Sprintf("%sCleaned! Nothing past line %d to remove", prefix, s.Range.Start-1)
		}
		return fmt.Sprintf("%sCleaned! Removed lines %d-%d", prefix, s.Range.Start, s.Original)
	case model.OpExcise:
		return fmt.Sprintf("%sFile fixed! Lines %d-%d have been deleted.", prefix, s.Range.Start, s.Range.End)
	default:
		return prefix + "Done."
	}
}

// CountLines returns the before/after counts for a finished operation.
func CountLines(s model.Summary) []string {
	if s.Operation == model.OpExcise {
		return []string{
			fmt.Sprintf("Old line count: %d", s.Original),
			fmt.Sprintf("New line count: %d", s.Result),
		}
	}
	return []string{
		fmt.Sprintf("   Original: %d lines", s.Original),
		fmt.Sprintf("   Cleaned: %d lines", s.Result),
		fmt.Sprintf("   Removed: %d lines", s.RemovedCount()),
	}
}

// PrintSummary writes the confirmation and line counts.
func PrintSummary(w io.Writer, s model.Summary) {
	if s.Operation == model.OpExcise {
		fmt.Fprintln(w)
	}
	SuccessColor.Fprintln(w, Headline(s))
	for _, l := range CountLines(s) {
		InfoColor.Fprintln(w, l)
	}
}
