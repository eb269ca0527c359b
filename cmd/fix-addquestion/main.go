// Command fix-addquestion deletes the stale request-body block (lines
// 646-653) from AddQuestionPage.tsx, printing the lines it removes.
package main

import (
	"os"

	"github.com/sokinpui/lnstrip/cli"
	"github.com/sokinpui/lnstrip/model"
	"github.com/sokinpui/lnstrip/strip"
)

const target = "/pages/AddQuestionPage.tsx"

var deleteRange = model.LineRange{Start: 646, End: 653}

func main() {
	os.Exit(strip.Main(&cli.Config{
		Path:      target,
		Operation: model.OpExcise,
		Range:     deleteRange,
	}))
}
