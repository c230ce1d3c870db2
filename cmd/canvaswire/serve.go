package main

import (
	"context"
	"os/signal"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/canvaswire/canvaswire/internal/config"
	"github.com/canvaswire/canvaswire/internal/errors"
	"github.com/canvaswire/canvaswire/pkg/bridge"
	"github.com/canvaswire/canvaswire/pkg/recording"
)

func serveCmd() *cobra.Command {
	var (
		addr       string
		captureDir string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the WebSocket bridge",
		Long: `Run the renderer-side bridge server.

Clients connect to /ws and stream drawing frames; each session is
relayed into a capture. With a capture directory or an S3 bucket
configured, finished sessions are persisted for replay.

The bridge also exposes /healthz and Prometheus metrics on /metrics.

Examples:
  canvaswire serve
  canvaswire serve --addr :9090 --captures /var/lib/canvaswire`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr, captureDir)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from canvaswire.json)")
	cmd.Flags().StringVarP(&captureDir, "captures", "c", "", "Directory to persist session captures")

	return cmd
}

func runServe(addr, captureDir string) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Bridge.Addr
	}
	if captureDir == "" {
		captureDir = cfg.Bridge.CaptureDir
	}

	opts := []bridge.Option{}
	store, err := captureStore(cfg, captureDir)
	if err != nil {
		return err
	}
	if store != nil {
		opts = append(opts, bridge.WithStore(store))
	}

	bridgeCfg := bridge.DefaultConfig()
	bridgeCfg.Addr = addr
	srv := bridge.New(bridgeCfg, opts...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	info("bridge listening on %s", addr)
	return srv.Start(ctx)
}

// captureStore picks the session store: S3 when a bucket is configured,
// disk when a directory is, nothing otherwise.
func captureStore(cfg *config.Config, captureDir string) (recording.Store, error) {
	if cfg.Bridge.S3Bucket != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
		if err != nil {
			return nil, errors.Newf(errors.CategoryConfig, "loading AWS config: %v", err)
		}
		client := s3.NewFromConfig(awsCfg)
		return recording.NewS3Store(client, cfg.Bridge.S3Bucket, cfg.Bridge.S3Prefix, 0), nil
	}
	if captureDir != "" {
		return recording.NewDiskStore(captureDir, 0)
	}
	return nil, nil
}
