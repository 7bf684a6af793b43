package session

import (
	"context"
	"fmt"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/vocabdrill/internal/mastery"
	"github.com/abhisek/vocabdrill/internal/quiz"
	"github.com/abhisek/vocabdrill/internal/router"
	"github.com/abhisek/vocabdrill/internal/screen"
	"github.com/abhisek/vocabdrill/internal/screens/summary"
	sess "github.com/abhisek/vocabdrill/internal/session"
	"github.com/abhisek/vocabdrill/internal/store"
	"github.com/abhisek/vocabdrill/internal/ui/components"
	"github.com/abhisek/vocabdrill/internal/ui/keys"
	"github.com/abhisek/vocabdrill/internal/ui/layout"
	"github.com/abhisek/vocabdrill/internal/wordlist"
)

// SessionScreen implements screen.Screen for one drill round.
type SessionScreen struct {
	env    *screen.Env
	state  *sess.SessionState
	levels *mastery.Progress

	choices components.Choices

	// gen identifies the question on screen. Timer messages carrying an
	// older value belong to a question that was answered or replaced and
	// are dropped.
	gen int

	shownAt   time.Time
	pausedAt  time.Time     // set while quit-confirm covers a question
	deadline  time.Time     // zero when untimed
	remaining time.Duration // countdown left, also kept while paused
	audioPos  int           // next playback position while paused

	showingFeedback    bool
	showingQuitConfirm bool
	errMsg             string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.HeaderProvider = (*SessionScreen)(nil)
var _ screen.EscapeHandler = (*SessionScreen)(nil)

// New creates a drill round over env's language.
func New(env *screen.Env) *SessionScreen {
	return &SessionScreen{env: env}
}

func (s *SessionScreen) Init() tea.Cmd {
	return s.initSession()
}

func (s *SessionScreen) Title() string {
	if q := s.currentQuiz(); q != nil {
		return fmt.Sprintf("Stage %d · %s", q.Stage, q.StageName)
	}
	return "Drill"
}

func (s *SessionScreen) HandlesEscape() bool {
	return s.state != nil && s.errMsg == ""
}

func (s *SessionScreen) HeaderInfo() layout.HeaderInfo {
	info := layout.HeaderInfo{Language: s.env.Language.Name}
	if s.state != nil {
		info.Level = wordlist.LevelDisplayName(s.state.Level)
		info.Mastered = sess.PoolStats(s.state.Scheduler, s.state.Pool()).Mastered
	}
	return info
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.state == nil {
		return nil
	}
	if s.showingQuitConfirm {
		return keys.Hints(keys.Default.Yes, keys.Default.No)
	}
	if s.showingFeedback {
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	}
	hints := []layout.KeyHint{
		{Key: "1-4", Description: "Answer"},
		{Key: "↑↓ Enter", Description: "Pick"},
	}
	if q := s.currentQuiz(); q != nil && q.AudioMode {
		hints = append(hints, keys.Hints(keys.Default.Replay)...)
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
}

func (s *SessionScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.state == nil {
		return renderLoading(width)
	}
	if s.showingQuitConfirm {
		return renderQuitConfirm(width)
	}
	if s.showingFeedback {
		return s.renderFeedback(width)
	}
	return s.renderQuestionView(width)
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionInitMsg:
		return s.handleInit(msg)

	case countdownTickMsg:
		return s.handleCountdownTick(msg)

	case audioStepMsg:
		return s.handleAudioStep(msg)

	case feedbackDoneMsg:
		return s, s.nextQuestion()

	case sessionEndMsg:
		return s.handleSessionEnd()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

// initSession loads progress and plans the round.
func (s *SessionScreen) initSession() tea.Cmd {
	env := s.env
	return func() tea.Msg {
		ctx := context.Background()

		scheduler, err := env.LoadScheduler(ctx)
		if err != nil {
			return sessionInitMsg{Err: fmt.Errorf("load progress: %w", err)}
		}
		levels, err := env.LoadLevels(ctx)
		if err != nil {
			return sessionInitMsg{Err: fmt.Errorf("load levels: %w", err)}
		}

		level := env.DrillLevel(levels)
		if len(env.Language.Words(level)) == 0 {
			return sessionInitMsg{Err: fmt.Errorf("no %s words for %s", wordlist.LevelDisplayName(level), env.Language.Name)}
		}

		state := sess.NewSessionState(sess.Config{
			Scheduler: scheduler,
			Assembler: quiz.NewAssembler(env.Language, level, env.Curated, env.Rand),
			BatchSize: env.BatchSize,
		})

		if env.Events != nil {
			if err := env.Events.AppendSessionEvent(ctx, store.SessionEventData{
				SessionID: state.SessionID,
				Action:    "start",
				Language:  env.Language.ID,
				Level:     string(level),
			}); err != nil {
				env.Logger().Warn("record round start", zap.Error(err))
			}
		}

		return sessionInitMsg{State: state, Levels: levels}
	}
}

func (s *SessionScreen) handleInit(msg sessionInitMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.state = msg.State
	s.levels = msg.Levels
	return s, s.nextQuestion()
}

// nextQuestion shows the next planned word, or ends the round.
func (s *SessionScreen) nextQuestion() tea.Cmd {
	s.showingFeedback = false
	q := sess.NextQuiz(s.state)
	if q == nil {
		return func() tea.Msg { return sessionEndMsg{} }
	}

	s.choices = components.NewChoices(q.Options)
	s.shownAt = s.env.Now()
	s.deadline = time.Time{}
	s.remaining = q.TimeLimit
	s.audioPos = 0
	return s.startTimers()
}

// startTimers begins a new generation of countdown and playback ticks,
// resuming from s.remaining and s.audioPos.
func (s *SessionScreen) startTimers() tea.Cmd {
	s.gen++
	q := s.state.CurrentQuiz

	var cmds []tea.Cmd
	if q.Timed() {
		s.deadline = s.env.Now().Add(s.remaining)
		cmds = append(cmds, countdownTick(s.gen))
	}
	if q.AudioMode && s.audioPos < len(q.AudioSequence) {
		gen, pos := s.gen, s.audioPos
		cmds = append(cmds, func() tea.Msg { return audioStepMsg{Gen: gen, Pos: pos} })
	}
	return tea.Batch(cmds...)
}

// stopTimers invalidates outstanding ticks.
func (s *SessionScreen) stopTimers() {
	s.gen++
	s.choices.Playing = -1
}

func (s *SessionScreen) handleCountdownTick(msg countdownTickMsg) (screen.Screen, tea.Cmd) {
	if msg.Gen != s.gen || s.currentQuiz() == nil {
		return s, nil
	}
	s.remaining = s.deadline.Sub(s.env.Now())
	if s.remaining <= 0 {
		s.remaining = 0
		return s.submitAnswer(quiz.TimeoutChoice)
	}
	return s, countdownTick(s.gen)
}

func (s *SessionScreen) handleAudioStep(msg audioStepMsg) (screen.Screen, tea.Cmd) {
	q := s.currentQuiz()
	if msg.Gen != s.gen || q == nil {
		return s, nil
	}
	if msg.Pos >= len(q.AudioSequence) {
		s.choices.Playing = -1
		s.audioPos = msg.Pos
		return s, nil
	}
	s.choices.Playing = msg.Pos
	s.audioPos = msg.Pos + 1
	return s, audioStep(s.gen, msg.Pos+1)
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	// Error state: any key goes back.
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.state == nil {
		return s, nil
	}

	if s.showingQuitConfirm {
		switch {
		case key.Matches(msg, keys.Default.Yes):
			s.showingQuitConfirm = false
			return s, func() tea.Msg { return sessionEndMsg{} }
		case key.Matches(msg, keys.Default.No):
			s.showingQuitConfirm = false
			s.resume()
			if s.currentQuiz() != nil && !s.showingFeedback {
				return s, s.startTimers()
			}
		}
		return s, nil
	}

	// Feedback: any key continues.
	if s.showingFeedback {
		if key.Matches(msg, keys.Default.Back) {
			s.showingQuitConfirm = true
			return s, nil
		}
		return s, func() tea.Msg { return feedbackDoneMsg{} }
	}

	q := s.currentQuiz()
	if q == nil {
		return s, nil
	}

	if i := keys.Default.OptionIndex(msg); i >= 0 {
		if i < len(q.Options) {
			return s.submitAnswer(i)
		}
		return s, nil
	}

	switch {
	case key.Matches(msg, keys.Default.Back):
		s.stopTimers()
		s.pausedAt = s.env.Now()
		s.showingQuitConfirm = true
	case key.Matches(msg, keys.Default.Up):
		s.choices = s.choices.Move(-1)
	case key.Matches(msg, keys.Default.Down):
		s.choices = s.choices.Move(1)
	case key.Matches(msg, keys.Default.Select):
		return s.submitAnswer(s.choices.Selected)
	case key.Matches(msg, keys.Default.Replay) && q.AudioMode:
		s.audioPos = 0
		return s, s.startTimers()
	}
	return s, nil
}

// resume moves shownAt past a quit-confirm pause so the pause does not
// count toward response time.
func (s *SessionScreen) resume() {
	if s.pausedAt.IsZero() {
		return
	}
	s.shownAt = s.shownAt.Add(s.env.Now().Sub(s.pausedAt))
	s.pausedAt = time.Time{}
}

// submitAnswer grades choice, records it and shows feedback.
func (s *SessionScreen) submitAnswer(choice int) (screen.Screen, tea.Cmd) {
	q := s.currentQuiz()
	if q == nil {
		return s, nil
	}

	s.stopTimers()
	elapsed := s.env.Now().Sub(s.shownAt)
	res := sess.HandleAnswer(s.state, choice, elapsed.Seconds())
	if res == nil {
		return s, nil
	}

	s.choices.Reveal = true
	s.choices.Correct = q.CorrectIndex
	s.choices.Chosen = choice
	s.showingFeedback = true

	if s.env.Events != nil {
		if err := s.env.Events.AppendAnswerEvent(context.Background(), store.AnswerEventData{
			SessionID: s.state.SessionID,
			WordKey:   res.Word.Key(),
			Stage:     q.Stage,
			Correct:   res.Correct,
			TimedOut:  res.TimedOut,
			TimeMs:    elapsed.Milliseconds(),
			NewStage:  res.Progress.Stage,
		}); err != nil {
			s.env.Logger().Warn("record answer", zap.String("word", res.Word.Key()), zap.Error(err))
		}
	}
	return s, nil
}

// handleSessionEnd persists the round and shows its summary.
func (s *SessionScreen) handleSessionEnd() (screen.Screen, tea.Cmd) {
	if s.state == nil {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	s.stopTimers()
	s.state.CurrentQuiz = nil
	s.state.Phase = sess.PhaseSummary

	sum := sess.BuildSummary(s.state)
	rank := s.saveRound(context.Background(), sum)

	env := s.env
	again := func() screen.Screen { return New(env) }
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{
			Screen: summary.New(env, sum, rank, s.levels, again),
		}
	}
}

// saveRound stores progress, the level counter, the high score and the end
// event. Returns the high-score rank, or -1.
func (s *SessionScreen) saveRound(ctx context.Context, sum *sess.RoundSummary) int {
	env := s.env
	log := env.Logger().With(zap.String("session", sum.SessionID))
	lang := env.Language.ID

	if env.Progress != nil {
		if err := env.Progress.Save(ctx, lang, s.state.Scheduler.SnapshotData()); err != nil {
			log.Error("save progress", zap.Error(err))
		}
	}

	s.levels.Set(sum.Level, sum.Pool.Mastered)
	if env.Levels != nil {
		if err := env.Levels.Set(ctx, lang, sum.Level, sum.Pool.Mastered); err != nil {
			log.Error("save level progress", zap.Error(err))
		}
	}

	rank := -1
	if sum.Score.Answered > 0 {
		list, err := env.LoadHighScores(ctx)
		if err != nil {
			log.Error("load high scores", zap.Error(err))
		} else {
			var updated []sess.HighScore
			updated, rank = sess.InsertHighScore(list, sum.HighScore(env.Now()))
			if rank >= 0 && env.HighScores != nil {
				if err := env.HighScores.Replace(ctx, updated); err != nil {
					log.Error("save high scores", zap.Error(err))
				}
			}
		}
	}

	if env.Events != nil {
		if err := env.Events.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID:       sum.SessionID,
			Action:          "end",
			Language:        lang,
			Level:           string(sum.Level),
			QuestionsServed: sum.Score.Answered,
			CorrectAnswers:  sum.Score.Correct,
			Score:           sum.Score.TotalScore,
			DurationSecs:    int(sum.Duration.Seconds()),
		}); err != nil {
			log.Warn("record round end", zap.Error(err))
		}
	}

	log.Info("round finished",
		zap.Int("score", sum.Score.TotalScore),
		zap.Int("answered", sum.Score.Answered),
		zap.Int("rank", rank),
	)
	return rank
}

func (s *SessionScreen) currentQuiz() *quiz.Quiz {
	if s.state == nil {
		return nil
	}
	return s.state.CurrentQuiz
}

func countdownTick(gen int) tea.Cmd {
	return tea.Tick(countdownInterval, func(time.Time) tea.Msg {
		return countdownTickMsg{Gen: gen}
	})
}

func audioStep(gen, pos int) tea.Cmd {
	return tea.Tick(AudioStepDuration, func(time.Time) tea.Msg {
		return audioStepMsg{Gen: gen, Pos: pos}
	})
}
