package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/canvaswire/canvaswire/internal/errors"
	"github.com/canvaswire/canvaswire/pkg/protocol"
)

func dumpCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "dump <capture>",
		Short: "Decode a capture into readable frames",
		Long: `Decode a capture file and print one line per frame.

Pass "-" to read the capture from stdin.

Examples:
  canvaswire dump session.cwf
  canvaswire demo -o - | canvaswire dump -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args[0], verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print payload bytes")

	return cmd
}

func runDump(path string, verbose bool) error {
	var rd io.Reader
	if path == "-" {
		rd = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return errors.New("E301").Wrap(err)
		}
		defer f.Close()
		rd = f
	}

	var (
		count int
		bytes int
	)
	for {
		f, err := protocol.ReadFrame(rd)
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.New("E302").
				WithDetail(fmt.Sprintf("after %d frames", count)).
				Wrap(err)
		}
		count++
		bytes += f.EncodedLen()
		if verbose {
			fmt.Printf("%5d  %-24s surface=%-3d % X\n", count, f.Op, f.Surface, f.Payload)
		} else {
			fmt.Printf("%5d  %s\n", count, f)
		}
	}

	info("%d frames, %d bytes", count, bytes)
	return nil
}
