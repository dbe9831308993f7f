package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/simonhull/firebird-suite/flugzeug/internal/commands"
	"github.com/simonhull/firebird-suite/flugzeug/internal/logging"
	"github.com/simonhull/firebird-suite/flugzeug/internal/output"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := commands.RootCmd()
	rootCmd.AddCommand(commands.NewCmd())

	err := rootCmd.ExecuteContext(ctx)
	_ = logging.Close()
	if err != nil {
		output.Error(err.Error())
		stop()
		os.Exit(1)
	}
}
