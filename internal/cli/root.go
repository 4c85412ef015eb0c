package cli

import (
	"github.com/spf13/cobra"

	"github.com/ryokoh/cueline/internal/config"
	"github.com/ryokoh/cueline/internal/logging"
)

var (
	verbose bool
	cfgPath string
	logger  *logging.Logger
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "cueline",
	Short: "Subtitle timeline editor and transcription frontend",
	Long: `Cueline edits SRT subtitles against a media timeline: transcribe
media through a whisper service or AI provider, adjust cue timing, and
serve an editing session over a local HTTP API.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.NewLogger(verbose)
		var err error
		cfg, err = config.Load(cfgPath)
		return err
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVar(&cfgPath, "config", "", "Config file path (default cueline.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
	rootCmd.PersistentFlags().
		StringP("language", "l", "", "Language code (e.g., en, es, fr)")
}
