package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ryokoh/cueline/internal/editor"
	"github.com/ryokoh/cueline/internal/media"
	"github.com/ryokoh/cueline/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve [srt_file]",
	Short: "Serve an editing session over a local HTTP API",
	Long: `Start the editing server. An optional SRT file is loaded into the
session at startup; --media probes a media file for the timeline
duration.

Examples:
  cueline serve
  cueline serve talk.srt --media talk.mp4
  cueline serve talk.srt --addr 127.0.0.1:9090`,
	Args: cobra.MaximumNArgs(1),
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Listen address (default from config)")
	serveCmd.Flags().String("media", "", "Media file to probe for timeline duration")
	serveCmd.Flags().Float64("viewport", 960, "Viewport width in pixels")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	mediaPath, _ := cmd.Flags().GetString("media")
	viewport, _ := cmd.Flags().GetFloat64("viewport")

	if addr == "" {
		addr = cfg.ListenAddr
	}

	session := editor.NewSession(viewport)
	session.MinCueDuration = cfg.MinCueDuration
	session.InsertDuration = cfg.InsertDuration
	session.View.Scale = cfg.Scale

	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read subtitle file: %w", err)
		}
		session.LoadSRT(string(data))
		logger.Infow("subtitles loaded", "file", args[0], "cues", len(session.Cues))
	}

	if mediaPath != "" {
		duration, err := media.Duration(mediaPath)
		if err != nil {
			return fmt.Errorf("failed to probe media duration: %w", err)
		}
		session.SetMediaDuration(duration)
		logger.Infow("media probed", "file", mediaPath, "duration_s", duration)
	}

	srv := server.NewServer(server.ServerConfig{
		Addr:   addr,
		Editor: server.NewEditor(session),
		Logger: logger,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
