package model

// Operation names the kind of edit applied to a file.
type Operation string

const (
	OpTruncate Operation = "truncate"
	OpExcise   Operation = "excise"
)

// LineRange is a 1-based, inclusive span of lines.
type LineRange struct {
	Start int
	End   int
}

// RemovedLine is a line taken out of a file, with its original 1-based position.
type RemovedLine struct {
	Number int
	Text   string
}

// Summary holds the results of an operation for display.
type Summary struct {
	Path      string
	Operation Operation
	Range     LineRange
	Original  int
	Result    int
	Removed   []RemovedLine
	DryRun    bool
}

// RemovedCount is the number of lines the operation took out.
func (s Summary) RemovedCount() int {
	return s.Original - s.Result
}
