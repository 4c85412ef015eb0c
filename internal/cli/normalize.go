package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ryokoh/cueline/internal/cue"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [srt_file]",
	Short: "Sort and renumber an SRT file",
	Long: `Normalize an SRT file: parse it (skipping malformed blocks), sort
cues by start time, renumber them sequentially, and write clean output.

Examples:
  cueline normalize messy.srt
  cueline normalize messy.srt -o clean.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runNormalize,
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	srtPath := args[0]
	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		outputPath = srtPath
	}

	data, err := os.ReadFile(srtPath)
	if err != nil {
		return fmt.Errorf("failed to read subtitle file: %w", err)
	}

	cues := cue.Parse(string(data))
	cues.SortByStart()

	if err := os.WriteFile(outputPath, []byte(cue.Serialize(cues)), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Normalized %d cues: %s\n", len(cues), absOutput)

	return nil
}
