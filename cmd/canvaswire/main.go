package main

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/canvaswire/canvaswire/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "canvaswire",
		Short: "Tooling for the canvas wire protocol",
		Long: `canvaswire is the companion tool for the canvas wire protocol.

It records, inspects and replays drawing sessions, and runs the
renderer-side bridge:

  • dump    decode a capture into readable frames
  • replay  feed a capture back into a frame channel
  • demo    record a sample drawing session
  • serve   run the WebSocket bridge`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		dumpCmd(),
		replayCmd(),
		demoCmd(),
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		var ce *errors.Error
		if stderrors.As(err, &ce) {
			fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", ce.Format())
		} else {
			fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		}
		os.Exit(1)
	}
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}
