// Command roicalc serves the ROI calculator and runs it in the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/imgrooty/roi-calculator/internal/commands"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersion(version, commit, date)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := commands.NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
