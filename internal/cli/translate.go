package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ryokoh/cueline/internal/cue"
	"github.com/ryokoh/cueline/internal/translate"
)

var translateCmd = &cobra.Command{
	Use:   "translate [srt_file]",
	Short: "Translate subtitle text to another language using AI",
	Long: `Translate the text of an SRT file to another language, keeping all
cue numbering and timing untouched.

Examples:
  cueline translate talk.srt --target-language japanese
  cueline translate talk.srt -l english --target-language german -o talk.de.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runTranslate,
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().
		StringP("target-language", "t", "", "Target language for translation (required)")
	translateCmd.Flags().
		StringP("api-key", "k", "", "API key (or set ANTHROPIC_API_KEY env var)")
	translateCmd.Flags().
		String("model", "", "Model to use for translation")
	translateCmd.Flags().
		Int("batch-size", translate.DefaultBatchSize, "Number of cues per API request")

	_ = translateCmd.MarkFlagRequired("target-language")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	srtPath := args[0]
	ctx := context.Background()

	targetLang, _ := cmd.Flags().GetString("target-language")
	apiKey, _ := cmd.Flags().GetString("api-key")
	model, _ := cmd.Flags().GetString("model")
	batchSize, _ := cmd.Flags().GetInt("batch-size")
	outputPath, _ := cmd.Flags().GetString("output")
	inputLang, _ := cmd.Flags().GetString("language")

	data, err := os.ReadFile(srtPath)
	if err != nil {
		return fmt.Errorf("failed to read subtitle file: %w", err)
	}

	cues := cue.Parse(string(data))
	if len(cues) == 0 {
		return fmt.Errorf("subtitle file contains no cues")
	}

	if inputLang != "" && strings.EqualFold(strings.TrimSpace(inputLang), strings.TrimSpace(targetLang)) {
		return fmt.Errorf("input language %q and target language %q cannot be the same", inputLang, targetLang)
	}

	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		apiKey = cfg.AnthropicKey
	}
	if apiKey == "" {
		return fmt.Errorf("API key is required: use --api-key flag or set ANTHROPIC_API_KEY environment variable")
	}

	if model == "" {
		model = cfg.TranslateModel
	}
	if batchSize <= 0 {
		return fmt.Errorf("batch-size must be positive, got %d", batchSize)
	}

	if outputPath == "" {
		baseName := strings.TrimSuffix(srtPath, filepath.Ext(srtPath))
		outputPath = fmt.Sprintf("%s.%s.srt", baseName, targetLang)
	}

	logger.Infow("translating subtitles",
		"input", srtPath,
		"output", outputPath,
		"target_language", targetLang,
		"cues", len(cues),
	)

	translator, err := translate.NewAnthropicTranslator(apiKey, translate.Options{
		SourceLanguage: inputLang,
		TargetLanguage: targetLang,
		Model:          model,
		BatchSize:      batchSize,
	})
	if err != nil {
		return fmt.Errorf("failed to create translator: %w", err)
	}

	translated, err := translate.TranslateCues(ctx, translator, cues)
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}

	if err := os.WriteFile(outputPath, []byte(cue.Serialize(translated)), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Subtitles translated successfully: %s\n", absOutput)
	fmt.Printf("  Cues: %d\n", len(translated))
	fmt.Printf("  Target language: %s\n", targetLang)

	return nil
}
