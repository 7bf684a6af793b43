package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/vocabdrill/internal/lookalike"
)

var lookalikesCmd = &cobra.Command{
	Use:   "lookalikes",
	Short: "Manage curated lookalike sets used for Sound Clash distractors",
}

var lookalikesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List lookalike sets",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		origin, _ := cmd.Flags().GetString("origin")
		t := newTable("Word", "Lookalikes", "Origin")
		n := 0
		for _, e := range rt.lookalikes.Entries() {
			if origin != "" && e.Origin != origin {
				continue
			}
			t.Row(e.Word, strings.Join(e.Forms, ", "), e.Origin)
			n++
		}
		if n == 0 {
			fmt.Println("No lookalike sets found.")
			return nil
		}
		printTable(t)
		return nil
	},
}

var lookalikesGenerateCmd = &cobra.Command{
	Use:   "generate [words...]",
	Short: "Generate lookalike sets with the configured LLM",
	Long: "Generate lookalike sets for the given translations, or for every\n" +
		"translation of the selected language and level that has none yet.\n" +
		"Lookalikes are requested in the selected language (--language).",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		force, _ := cmd.Flags().GetBool("force")

		lang, err := rt.language(cmd)
		if err != nil {
			return err
		}

		words := args
		if len(words) == 0 {
			level, err := drillLevel(cmd)
			if err != nil {
				return err
			}
			pool := lang.AllWords()
			if level != "" {
				pool = lang.Words(level)
			}
			for _, w := range pool {
				words = append(words, w.Translation)
			}
		}
		if !force {
			words = rt.lookalikes.Missing(words)
		}
		if len(words) == 0 {
			fmt.Println("Every word already has a lookalike set.")
			return nil
		}

		provider, err := rt.provider(cmd)
		if err != nil {
			return err
		}
		gen := lookalike.NewGenerator(provider, lang.Name, cfg.LLM.Timeout, rt.log)

		fmt.Printf("Generating %s lookalikes for %s with %s...\n",
			lang.Name, plural(len(words), "word", "words"), provider.ModelID())
		results, err := gen.GenerateAll(ctx, words, cfg.BatchOptions())
		if err != nil && !errors.Is(err, ctx.Err()) {
			rt.log.Warn("lookalike batch stopped", zap.Error(err))
		}

		saved, saveErr := lookalike.Save(ctx, rt.store.LookalikeRepo(), rt.lookalikes, results)

		failed := 0
		for _, r := range results {
			if r.Err != nil {
				failed++
				fmt.Printf("  ✗ %-20s %v\n", r.Word, r.Err)
				continue
			}
			if len(r.Forms) > 0 {
				fmt.Printf("  ✓ %-20s %s\n", r.Word, strings.Join(r.Forms, ", "))
			}
		}
		fmt.Printf("Saved %s, %d failed.\n", plural(saved, "set", "sets"), failed)

		if saveErr != nil {
			return saveErr
		}
		return err
	},
}

func init() {
	lookalikesListCmd.Flags().String("origin", "", "Filter by origin (builtin, llm)")
	lookalikesGenerateCmd.Flags().Bool("force", false, "Regenerate sets that already exist")

	lookalikesCmd.AddCommand(lookalikesListCmd)
	lookalikesCmd.AddCommand(lookalikesGenerateCmd)
}
