package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ryokoh/cueline/internal/media"
)

var extractCmd = &cobra.Command{
	Use:   "extract [media_file]",
	Short: "Extract audio from a media file",
	Long: `Extract the audio track from a media file, in the shape the
transcription providers expect.

Supports output formats: wav, mp3, aac.

Examples:
  cueline extract video.mp4
  cueline extract video.mp4 -o audio.mp3 -f mp3
  cueline extract video.mp4 --format wav --sample-rate 44100 --channels 2`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().
		StringP("format", "f", "mp3", "Output audio format (wav, mp3, aac)")
	extractCmd.Flags().
		IntP("sample-rate", "r", 16000, "Sample rate in Hz (e.g., 16000, 44100, 48000)")
	extractCmd.Flags().
		IntP("channels", "c", 1, "Number of audio channels (1=mono, 2=stereo)")
	extractCmd.Flags().
		StringP("bitrate", "b", "64k", "Bitrate for lossy formats (e.g., 64k, 128k)")
}

func runExtract(cmd *cobra.Command, args []string) error {
	mediaPath := args[0]

	format, _ := cmd.Flags().GetString("format")
	sampleRate, _ := cmd.Flags().GetInt("sample-rate")
	channels, _ := cmd.Flags().GetInt("channels")
	bitrate, _ := cmd.Flags().GetString("bitrate")
	outputPath, _ := cmd.Flags().GetString("output")

	validFormats := map[string]bool{
		"wav": true,
		"mp3": true,
		"aac": true,
	}
	if !validFormats[format] {
		return fmt.Errorf("invalid format %q: supported formats are wav, mp3, aac", format)
	}

	if outputPath == "" {
		outputPath = strings.TrimSuffix(mediaPath, filepath.Ext(mediaPath)) + "." + format
	}

	logger.Infow("extracting audio",
		"input", mediaPath,
		"output", outputPath,
		"format", format,
		"sample_rate", sampleRate,
		"channels", channels,
	)

	opts := media.AudioOptions{
		Format:     format,
		SampleRate: sampleRate,
		Channels:   channels,
		Bitrate:    bitrate,
	}

	if err := media.ExtractAudio(context.Background(), mediaPath, outputPath, opts); err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Audio extracted successfully: %s\n", absOutput)

	return nil
}
