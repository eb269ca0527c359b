package main

import (
	"errors"
	"os"

	"github.com/sokinpui/lnstrip/cli"
	"github.com/sokinpui/lnstrip/internal/ui"
	"github.com/sokinpui/lnstrip/strip"
)

func main() {
	cfg, err := cli.ParseFlags()
	if err != nil {
		if errors.Is(err, cli.ErrHelp) {
			return
		}
		ui.Error("Error: %v", err)
		os.Exit(2)
	}
	os.Exit(strip.Main(cfg))
}
