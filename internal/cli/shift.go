package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ryokoh/cueline/internal/cue"
)

var shiftCmd = &cobra.Command{
	Use:   "shift [srt_file]",
	Short: "Shift all cue timings by a number of seconds",
	Long: `Shift every cue in an SRT file by the given number of seconds.
Negative values move cues earlier; a cue never crosses zero, its
duration is preserved instead.

Examples:
  cueline shift talk.srt --by 2.5
  cueline shift talk.srt --by -1.2 -o adjusted.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runShift,
}

func init() {
	rootCmd.AddCommand(shiftCmd)

	shiftCmd.Flags().Float64("by", 0, "Seconds to shift by (required, may be negative)")
	_ = shiftCmd.MarkFlagRequired("by")
}

func runShift(cmd *cobra.Command, args []string) error {
	srtPath := args[0]
	delta, _ := cmd.Flags().GetFloat64("by")
	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		outputPath = srtPath
	}

	data, err := os.ReadFile(srtPath)
	if err != nil {
		return fmt.Errorf("failed to read subtitle file: %w", err)
	}

	cues := cue.Parse(string(data))
	if len(cues) == 0 {
		return fmt.Errorf("subtitle file contains no cues")
	}

	for i := range cues {
		d := delta
		if cues[i].StartSeconds+d < 0 {
			d = -cues[i].StartSeconds
		}
		cues[i].SetTimeRange(cues[i].StartSeconds+d, cues[i].EndSeconds+d)
	}

	if err := os.WriteFile(outputPath, []byte(cue.Serialize(cues)), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Shifted %d cues by %+gs: %s\n", len(cues), delta, absOutput)

	return nil
}
