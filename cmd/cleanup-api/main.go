// Command cleanup-api drops everything after line 1782 of lib/api.ts.
package main

import (
	"os"

	"github.com/sokinpui/lnstrip/cli"
	"github.com/sokinpui/lnstrip/model"
	"github.com/sokinpui/lnstrip/strip"
)

const (
	target = "lib/api.ts"
	keep   = 1782
)

func main() {
	os.Exit(strip.Main(&cli.Config{
		Path:      target,
		Operation: model.OpTruncate,
		Keep:      keep,
	}))
}
