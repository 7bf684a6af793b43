package cmd

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/vocabdrill/internal/session"
	"github.com/abhisek/vocabdrill/internal/wordlist"
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the high-score table",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		list, err := rt.store.HighScoreRepo().List(cmd.Context())
		if err != nil {
			return fmt.Errorf("load high scores: %w", err)
		}
		if len(list) == 0 {
			lipgloss.Println(dimStyle.Render("No high scores yet. Finish a round to get on the board!"))
			return nil
		}

		t := newTable("#", "Score", "Accuracy", "Language", "Level", "Date")
		for i, hs := range list {
			rank := fmt.Sprint(i + 1)
			if session.IsPodium(i) {
				rank += " ★"
			}
			t.Row(
				rank,
				fmt.Sprint(hs.Score),
				fmt.Sprintf("%d%%", hs.Accuracy),
				rt.languageName(hs.Language),
				wordlist.LevelDisplayName(hs.Level),
				hs.Timestamp.Local().Format("2006-01-02 15:04"),
			)
		}
		printTable(t)
		return nil
	},
}

// languageName returns the display name for a language ID, or the ID.
func (r *runtime) languageName(id string) string {
	if l, err := r.catalog.Language(id); err == nil {
		return l.Name
	}
	return id
}
