package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/vocabdrill/internal/app"
	"github.com/abhisek/vocabdrill/internal/llm"
	"github.com/abhisek/vocabdrill/internal/logger"
	"github.com/abhisek/vocabdrill/internal/lookalike"
	"github.com/abhisek/vocabdrill/internal/screen"
	"github.com/abhisek/vocabdrill/internal/store"
	"github.com/abhisek/vocabdrill/internal/wordlist"
)

// runtime bundles the collaborators commands share.
type runtime struct {
	store      *store.Store
	log        *zap.Logger
	catalog    *wordlist.Catalog
	lookalikes *lookalike.Catalog
}

// openRuntime opens the store and loads the vocabulary and lookalike
// catalogs with everything stored in it. tui selects a logger that stays
// off the terminal.
func openRuntime(cmd *cobra.Command, tui bool) (*runtime, error) {
	ctx := cmd.Context()

	newLogger := logger.New
	if tui {
		newLogger = logger.ForTerminalUI
	}
	log, err := newLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	catalog, err := wordlist.Builtin()
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("load built-in word lists: %w", err)
	}
	entries, err := st.VocabularyRepo().All(ctx)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}
	if n := store.MergeVocabulary(catalog, entries); n > 0 {
		log.Debug("merged imported vocabulary", zap.Int("words", n))
	}

	sets, err := st.LookalikeRepo().All(ctx)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("load lookalikes: %w", err)
	}

	log.Debug("runtime ready", zap.String("db", dbPath), zap.Int("lookalike_sets", len(sets)))
	return &runtime{
		store:      st,
		log:        log,
		catalog:    catalog,
		lookalikes: lookalike.NewCatalog(sets...),
	}, nil
}

func (r *runtime) Close() {
	r.store.Close()
	_ = r.log.Sync()
}

// language resolves --language, then the configured default.
func (r *runtime) language(cmd *cobra.Command) (*wordlist.Language, error) {
	id, _ := cmd.Flags().GetString("language")
	if id == "" {
		id = cfg.Language
	}
	return r.catalog.Language(id)
}

// drillLevel resolves --level, then the configured level. Empty means the
// level is suggested from progress.
func drillLevel(cmd *cobra.Command) (wordlist.Level, error) {
	if s, _ := cmd.Flags().GetString("level"); s != "" {
		return wordlist.ParseLevel(s)
	}
	return cfg.DrillLevel(), nil
}

// env builds the screen environment for the selected language.
func (r *runtime) env(cmd *cobra.Command) (*screen.Env, error) {
	lang, err := r.language(cmd)
	if err != nil {
		return nil, err
	}
	level, err := drillLevel(cmd)
	if err != nil {
		return nil, err
	}

	count := cfg.BatchSize
	if n, _ := cmd.Flags().GetInt("count"); n > 0 {
		count = n
	}

	return &screen.Env{
		Language:   lang,
		Level:      level,
		BatchSize:  count,
		Curated:    r.lookalikes,
		Progress:   r.store.ProgressRepo(),
		HighScores: r.store.HighScoreRepo(),
		Levels:     r.store.LevelRepo(),
		Events:     r.store.EventRepo(),
		Log:        r.log,
	}, nil
}

// provider builds the configured LLM provider with request logging.
func (r *runtime) provider(cmd *cobra.Command) (llm.Provider, error) {
	p, err := llm.NewProvider(cmd.Context(), cfg.LLMConfig(), r.store.EventRepo(), r.log)
	if err != nil {
		return nil, fmt.Errorf("LLM provider not configured: %w", err)
	}
	return p, nil
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command, startRound bool) error {
	rt, err := openRuntime(cmd, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	env, err := rt.env(cmd)
	if err != nil {
		return err
	}
	rt.log.Info("starting terminal drill",
		zap.String("language", env.Language.ID),
		zap.String("level", string(env.Level)),
		zap.Int("batch_size", env.BatchSize),
	)
	return app.Run(env, startRound)
}
