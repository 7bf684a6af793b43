package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a drill round straight away",
	Example: "  vocabdrill play\n" +
		"  vocabdrill play --language spanish --level bronze --count 10",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, true)
	},
}

func init() {
	playCmd.Flags().IntP("count", "n", 0, "Words per round (default from config)")
}
