package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/canvaswire/canvaswire/internal/config"
	"github.com/canvaswire/canvaswire/internal/errors"
	"github.com/canvaswire/canvaswire/pkg/recording"
	"github.com/canvaswire/canvaswire/pkg/transport"
)

func replayCmd() *cobra.Command {
	var (
		target string
		wsURL  string
	)

	cmd := &cobra.Command{
		Use:   "replay <capture>",
		Short: "Feed a capture back into a frame channel",
		Long: `Replay a capture file frame by frame into a renderer channel.

The target defaults to the stream path from canvaswire.json. Use --url
to replay over WebSocket instead.

Examples:
  canvaswire replay session.cwf
  canvaswire replay session.cwf --to /dev/canvas
  canvaswire replay session.cwf --url ws://localhost:8080/ws`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(args[0], target, wsURL)
		},
	}

	cmd.Flags().StringVarP(&target, "to", "t", "", "Frame channel path (default from canvaswire.json)")
	cmd.Flags().StringVarP(&wsURL, "url", "u", "", "Replay to a WebSocket endpoint instead")

	return cmd
}

func runReplay(capturePath, target, wsURL string) error {
	f, err := os.Open(capturePath)
	if err != nil {
		return errors.New("E301").Wrap(err)
	}
	defer f.Close()

	dst, err := openFrameChannel(target, wsURL)
	if err != nil {
		return err
	}
	defer dst.Close()

	n, err := recording.Replay(f, dst)
	if err != nil {
		return errors.New("E302").Wrap(err)
	}
	success("replayed %d frames", n)
	return nil
}

// openFrameChannel resolves the replay destination: an explicit WebSocket
// URL, an explicit path, or the configured stream path.
func openFrameChannel(target, wsURL string) (transport.FrameWriter, error) {
	if wsURL != "" {
		ws, err := transport.DialWS(wsURL)
		if err != nil {
			return nil, errors.New("E202").Wrap(err)
		}
		return ws, nil
	}

	if target == "" {
		cfg, err := config.Load(".")
		if err != nil {
			return nil, err
		}
		if cfg.Transport.Kind == config.KindWebSocket && cfg.Transport.URL != "" {
			ws, err := transport.DialWS(cfg.Transport.URL)
			if err != nil {
				return nil, errors.New("E202").Wrap(err)
			}
			return ws, nil
		}
		target = cfg.Transport.StreamPath
	}

	s, err := transport.OpenStream(target)
	if err != nil {
		return nil, errors.New("E201").Wrap(err)
	}
	return s, nil
}
