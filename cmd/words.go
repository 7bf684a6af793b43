package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/vocabdrill/internal/wordlist"
)

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "List and import vocabulary",
}

var wordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List languages, or the words of one language",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		if !cmd.Flags().Changed("language") {
			t := newTable("ID", "Language", "Bronze", "Silver", "Gold", "Total")
			for _, l := range rt.catalog.Languages() {
				t.Row(l.ID, strings.TrimSpace(l.Flag+" "+l.Name),
					fmt.Sprint(len(l.Words(wordlist.LevelBronze))),
					fmt.Sprint(len(l.Words(wordlist.LevelSilver))),
					fmt.Sprint(len(l.Words(wordlist.LevelGold))),
					fmt.Sprint(l.WordCount()))
			}
			printTable(t)
			return nil
		}

		lang, err := rt.language(cmd)
		if err != nil {
			return err
		}
		only, err := drillLevel(cmd)
		if err != nil {
			return err
		}

		for _, lv := range wordlist.AllLevels() {
			if only != "" && lv != only {
				continue
			}
			words := lang.Words(lv)
			if len(words) == 0 {
				continue
			}
			heading(fmt.Sprintf("%s · %s (%s)", lang.Name, wordlist.LevelDisplayName(lv),
				plural(len(words), "word", "words")))
			t := newTable("Word", "Translation", "Pronunciation")
			for _, w := range words {
				t.Row(w.Source, w.Translation, w.Pronunciation)
			}
			printTable(t)
		}
		return nil
	},
}

var wordsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import words from a JSON word list, spreadsheet or CSV file",
	Long: "Import words into the local database. A .json file is a complete word\n" +
		"list and carries its own language and levels. A .xlsx or .csv file is\n" +
		"read by column and needs --language and --level.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if strings.EqualFold(filepath.Ext(path), ".json") {
			return importWordList(cmd, path)
		}
		return importSheet(cmd, path)
	},
}

func importWordList(cmd *cobra.Command, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()

	lang, err := wordlist.Decode(f)
	if err != nil {
		return err
	}

	rt, err := openRuntime(cmd, false)
	if err != nil {
		return err
	}
	defer rt.Close()

	total := 0
	for _, lv := range wordlist.AllLevels() {
		words := lang.Words(lv)
		if len(words) == 0 {
			continue
		}
		n, err := rt.store.VocabularyRepo().Add(cmd.Context(), lang.ID, lv, words)
		if err != nil {
			return fmt.Errorf("save %s words: %w", lv, err)
		}
		total += n
		fmt.Printf("%-7s %s added\n", wordlist.LevelDisplayName(lv), plural(n, "word", "words"))
	}
	rt.log.Info("imported word list",
		zap.String("file", path), zap.String("language", lang.ID), zap.Int("added", total))
	fmt.Printf("Imported %s into %s.\n", plural(total, "new word", "new words"), lang.Name)
	return nil
}

func importSheet(cmd *cobra.Command, path string) error {
	langID, _ := cmd.Flags().GetString("language")
	levelFlag, _ := cmd.Flags().GetString("level")
	if langID == "" || levelFlag == "" {
		return fmt.Errorf("--language and --level are required for %s files", filepath.Ext(path))
	}
	level, err := wordlist.ParseLevel(levelFlag)
	if err != nil {
		return err
	}

	ic := wordlist.DefaultImportConfig()
	ic.FilePath = path
	if v, _ := cmd.Flags().GetString("source-col"); v != "" {
		ic.SourceColumn = v
	}
	if v, _ := cmd.Flags().GetString("translation-col"); v != "" {
		ic.TranslationColumn = v
	}
	if cmd.Flags().Changed("pronunciation-col") {
		ic.PronunciationColumn, _ = cmd.Flags().GetString("pronunciation-col")
	}
	if v, _ := cmd.Flags().GetString("sheet"); v != "" {
		ic.SheetName = v
	}
	if v, _ := cmd.Flags().GetInt("start-row"); v > 0 {
		ic.StartRow = v
	}

	res, err := wordlist.Import(ic)
	if err != nil {
		return err
	}

	rt, err := openRuntime(cmd, false)
	if err != nil {
		return err
	}
	defer rt.Close()

	added, err := rt.store.VocabularyRepo().Add(cmd.Context(), langID, level, res.Words)
	if err != nil {
		return fmt.Errorf("save words: %w", err)
	}
	rt.log.Info("imported spreadsheet",
		zap.String("file", path),
		zap.String("language", langID),
		zap.String("level", string(level)),
		zap.Int("rows", res.TotalProcessed),
		zap.Int("skipped", res.Skipped),
		zap.Int("added", added),
	)

	fmt.Printf("Read %s, skipped %d, added %s to %s %s.\n",
		plural(res.TotalProcessed, "row", "rows"), res.Skipped,
		plural(added, "new word", "new words"), langID, wordlist.LevelDisplayName(level))
	for _, e := range res.Errors {
		lipgloss.Println(dimStyle.Render("  " + e))
	}
	return nil
}

func init() {
	f := wordsImportCmd.Flags()
	f.String("source-col", "", "Column holding the source word (default A)")
	f.String("translation-col", "", "Column holding the translation (default B)")
	f.String("pronunciation-col", "C", "Column holding the pronunciation; empty to skip")
	f.String("sheet", "", "Worksheet name for .xlsx files (default Sheet1)")
	f.Int("start-row", 0, "First data row, 1-based (default 2)")

	wordsCmd.AddCommand(wordsListCmd)
	wordsCmd.AddCommand(wordsImportCmd)
}
