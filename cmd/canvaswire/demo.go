package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/canvaswire/canvaswire/internal/errors"
	"github.com/canvaswire/canvaswire/pkg/canvas"
	"github.com/canvaswire/canvaswire/pkg/protocol"
	"github.com/canvaswire/canvaswire/pkg/recording"
)

func demoCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Record a sample drawing session",
		Long: `Draw a small sample scene and write the capture to a file.

The capture can then be inspected with dump or sent to a renderer
with replay. Pass -o - to write the capture to stdout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "demo.cwf", "Capture output path")

	return cmd
}

func runDemo(output string) error {
	rec := recording.NewRecorder()
	client := canvas.NewClient(rec)

	if err := drawDemoScene(client); err != nil {
		return err
	}

	if output == "-" {
		if _, err := os.Stdout.Write(rec.Bytes()); err != nil {
			return err
		}
		return nil
	}
	if err := os.WriteFile(output, rec.Bytes(), 0o644); err != nil {
		return errors.New("E301").Wrap(err)
	}
	success("recorded %d frames (%d bytes) to %s", rec.FrameCount(), rec.Len(), output)
	return nil
}

func drawDemoScene(client *canvas.Client) error {
	s, err := client.NewSurfaceSize(400, 300)
	if err != nil {
		return err
	}

	// Sky.
	sky := s.CreateLinearGradient(0, 0, 0, 300)
	if err := sky.AddColorStop(0, "#87ceeb"); err != nil {
		return err
	}
	if err := sky.AddColorStop(1, "#f0e68c"); err != nil {
		return err
	}
	if err := s.SetFillStyle(sky); err != nil {
		return err
	}
	if err := s.FillRect(0, 0, 400, 300); err != nil {
		return err
	}

	// Sun.
	if err := s.SetFillStyle(protocol.Color("#ffd700")); err != nil {
		return err
	}
	if err := s.BeginPath(); err != nil {
		return err
	}
	if err := s.Arc(320, 70, 40, 0, 6.2832, false); err != nil {
		return err
	}
	if err := s.Fill(); err != nil {
		return err
	}

	// Ground line.
	if err := s.SetStrokeStyle(protocol.Color("#2e8b57")); err != nil {
		return err
	}
	if err := s.SetLineWidth(4); err != nil {
		return err
	}
	if err := s.BeginPath(); err != nil {
		return err
	}
	if err := s.MoveTo(0, 250); err != nil {
		return err
	}
	if err := s.LineTo(400, 250); err != nil {
		return err
	}
	if err := s.Stroke(); err != nil {
		return err
	}

	// Caption.
	if err := s.SetFont("16px sans-serif"); err != nil {
		return err
	}
	if err := s.SetFillStyle(protocol.Color("#333333")); err != nil {
		return err
	}
	if err := s.FillText("canvaswire demo", 20, 280); err != nil {
		return err
	}

	return s.Commit()
}
