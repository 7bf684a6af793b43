package cmd

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/vocabdrill/internal/mastery"
	"github.com/abhisek/vocabdrill/internal/screens/summary"
	"github.com/abhisek/vocabdrill/internal/session"
	"github.com/abhisek/vocabdrill/internal/spacedrep"
	"github.com/abhisek/vocabdrill/internal/wordlist"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	Long:  "Show per-level progress, level gates and the stage distribution of a language.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		lang, err := rt.language(cmd)
		if err != nil {
			return err
		}
		only, err := drillLevel(cmd)
		if err != nil {
			return err
		}

		snap, err := rt.store.ProgressRepo().Load(ctx, lang.ID)
		if err != nil {
			return fmt.Errorf("load progress: %w", err)
		}
		sched := spacedrep.NewScheduler(snap, nil)

		counts, err := rt.store.LevelRepo().Load(ctx, lang.ID)
		if err != nil {
			return fmt.Errorf("load level progress: %w", err)
		}
		progress := mastery.NewProgress(lang.ID, counts)

		heading(fmt.Sprintf("%s · suggested level %s", lang.Name,
			wordlist.LevelDisplayName(progress.SuggestedLevel())))

		t := newTable("Level", "State", "Mastered", "Words", "New", "Learning", "Avg stage", "Journey")
		for _, lv := range wordlist.AllLevels() {
			st := session.PoolStats(sched, lang.Words(lv))
			state := progress.LevelState(lv)
			t.Row(
				wordlist.LevelDisplayName(lv),
				state.Icon()+" "+state.Label(),
				fmt.Sprintf("%d/%d", progress.Count(lv), mastery.Target(lv)),
				fmt.Sprint(st.Total),
				fmt.Sprint(st.New),
				fmt.Sprint(st.InProgress),
				fmt.Sprintf("%.1f", st.AvgStage),
				fmt.Sprintf("%d%%", st.JourneyProgress),
			)
		}
		printTable(t)

		pool := lang.AllWords()
		label := "all levels"
		if only != "" {
			pool = lang.Words(only)
			label = wordlist.LevelDisplayName(only)
		}
		st := session.PoolStats(sched, pool)
		if st.Total == 0 {
			lipgloss.Println(dimStyle.Render("No words in " + label + "."))
			return nil
		}

		fmt.Println()
		heading(fmt.Sprintf("Stage distribution (%s, %s)", label, plural(st.Total, "word", "words")))
		lipgloss.Print(summary.StageHistogram(st, 60))

		keys := make([]string, 0, len(pool))
		for _, w := range pool {
			if sched.Has(w.Key()) {
				keys = append(keys, w.Key())
			}
		}
		due := sched.DueWords(keys, sched.Now())
		fmt.Println()
		lipgloss.Println(dimStyle.Render(fmt.Sprintf("%s due for review · %d mastered",
			plural(len(due), "word", "words"), st.Mastered)))
		return nil
	},
}
