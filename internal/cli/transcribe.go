package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ryokoh/cueline/internal/cue"
	"github.com/ryokoh/cueline/internal/media"
	"github.com/ryokoh/cueline/internal/transcribe"
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe [media_file]",
	Short: "Transcribe a media file into an SRT subtitle file",
	Long: `Transcribe the audio of a media file into SRT subtitles.

The default provider is a self-hosted whisper transcription service;
openai and gemini talk to the vendor APIs directly.

Examples:
  cueline transcribe lecture.mp4
  cueline transcribe lecture.mp4 -l ja --model medium
  cueline transcribe voice.mp3 --provider openai -k sk-...
  cueline transcribe talk.mkv --provider service --endpoint http://transcribe.lan:8000`,
	Args: cobra.ExactArgs(1),
	RunE: runTranscribe,
}

func init() {
	rootCmd.AddCommand(transcribeCmd)

	transcribeCmd.Flags().
		String("provider", "", "Transcription provider (service, openai, gemini)")
	transcribeCmd.Flags().
		String("endpoint", "", "Transcription service base URL")
	transcribeCmd.Flags().
		String("model", "", "Model name (whisper size or API model)")
	transcribeCmd.Flags().
		String("device", "", "Service compute device (cpu, cuda)")
	transcribeCmd.Flags().
		StringP("api-key", "k", "", "API key (or set OPENAI_API_KEY/GEMINI_API_KEY env var)")
	transcribeCmd.Flags().
		Bool("keep-audio", false, "Keep the extracted audio file next to the output")
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	mediaPath := args[0]
	ctx := context.Background()

	if _, err := os.Stat(mediaPath); os.IsNotExist(err) {
		return fmt.Errorf("media file not found: %s", mediaPath)
	}
	if !media.IsMediaFile(mediaPath) {
		return fmt.Errorf("unsupported media file: %s", mediaPath)
	}

	providerStr, _ := cmd.Flags().GetString("provider")
	endpoint, _ := cmd.Flags().GetString("endpoint")
	model, _ := cmd.Flags().GetString("model")
	device, _ := cmd.Flags().GetString("device")
	apiKey, _ := cmd.Flags().GetString("api-key")
	keepAudio, _ := cmd.Flags().GetBool("keep-audio")
	outputPath, _ := cmd.Flags().GetString("output")
	language, _ := cmd.Flags().GetString("language")

	// flags override config
	if providerStr == "" {
		providerStr = cfg.Provider
	}
	if endpoint == "" {
		endpoint = cfg.Endpoint
	}
	if model == "" {
		model = cfg.Model
	}
	if device == "" {
		device = cfg.Device
	}
	if language == "" {
		language = cfg.Language
	}

	provider := transcribe.Provider(providerStr)
	if apiKey == "" {
		switch provider {
		case transcribe.ProviderOpenAI:
			apiKey = os.Getenv("OPENAI_API_KEY")
			if apiKey == "" {
				apiKey = cfg.OpenAIKey
			}
		case transcribe.ProviderGemini:
			apiKey = os.Getenv("GEMINI_API_KEY")
			if apiKey == "" {
				apiKey = cfg.GeminiKey
			}
		}
	}

	if outputPath == "" {
		outputPath = strings.TrimSuffix(mediaPath, filepath.Ext(mediaPath)) + ".srt"
	}

	// API providers get a small mono audio file instead of full video
	uploadPath := mediaPath
	if provider != transcribe.ProviderService && media.IsVideoFile(mediaPath) {
		audioPath := strings.TrimSuffix(mediaPath, filepath.Ext(mediaPath)) + ".transcribe.mp3"
		logger.Infow("extracting audio", "input", mediaPath, "output", audioPath)
		if err := media.ExtractAudio(ctx, mediaPath, audioPath, media.DefaultAudioOptions()); err != nil {
			return err
		}
		if !keepAudio {
			defer os.Remove(audioPath)
		}
		uploadPath = audioPath
	}

	logger.Infow("starting transcription",
		"input", mediaPath,
		"provider", providerStr,
		"language", language,
		"model", model,
	)

	transcriber, err := transcribe.Factory(ctx, provider, transcribe.Options{
		Language: language,
		Model:    model,
		Device:   device,
		Endpoint: endpoint,
		APIKey:   apiKey,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to create transcriber: %w", err)
	}

	if st, ok := transcriber.(*transcribe.ServiceTranscriber); ok {
		st.OnProgress = func(p float64) {
			logger.Debugw("transcription progress", "progress", p)
		}
	}

	result, err := transcriber.Transcribe(ctx, uploadPath)
	if err != nil {
		return fmt.Errorf("transcription failed: %w", err)
	}
	if len(result.Cues) == 0 {
		return fmt.Errorf("transcription produced no cues")
	}

	if err := os.WriteFile(outputPath, []byte(cue.Serialize(result.Cues)), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Subtitles written: %s\n", absOutput)
	fmt.Printf("  Cues: %d\n", len(result.Cues))

	return nil
}
