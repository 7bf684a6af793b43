package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/vocabdrill/internal/router"
	"github.com/abhisek/vocabdrill/internal/screen"
	"github.com/abhisek/vocabdrill/internal/screens/levels"
	"github.com/abhisek/vocabdrill/internal/screens/scores"
	sessionscreen "github.com/abhisek/vocabdrill/internal/screens/session"
	"github.com/abhisek/vocabdrill/internal/session"
	"github.com/abhisek/vocabdrill/internal/ui/components"
	"github.com/abhisek/vocabdrill/internal/ui/layout"
	"github.com/abhisek/vocabdrill/internal/wordlist"
)

// Dashboard is the learner status shown on the home screen.
type Dashboard struct {
	Level     wordlist.Level
	Mastered  int
	Total     int
	Due       int
	BestScore int
	HasBest   bool
}

type dashboardMsg struct {
	Dashboard Dashboard
	Err       error
}

// HomeScreen is the main menu.
type HomeScreen struct {
	env        *screen.Env
	menu       components.Menu
	menuLabels []string
	dash       Dashboard
	loaded     bool
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.HeaderProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(env *screen.Env) *HomeScreen {
	menuLabels := []string{"PLAY", "LEVELS", "HIGH SCORES", "QUIT"}

	items := []components.MenuItem{
		{Label: menuLabels[0], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: sessionscreen.New(env)}
			}
		}},
		{Label: menuLabels[1], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: levels.New(env)}
			}
		}},
		{Label: menuLabels[2], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: scores.New(env)}
			}
		}},
		{Label: menuLabels[3], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		env:        env,
		menu:       components.NewMenu(items),
		menuLabels: menuLabels,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadDashboard()
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardMsg:
		if msg.Err != nil {
			h.env.Logger().Warn("load dashboard", zap.Error(msg.Err))
			return h, nil
		}
		h.dash = msg.Dashboard
		h.loaded = true
		return h, nil

	case router.RootResumedMsg:
		return h, h.loadDashboard()
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := height < 24 || width < 90
	cw := contentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(h.env.Language.Name, cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(h.mascotVariant(), cw))
	}
	sections = append(sections, renderStatsBar(h.dash, cw, compact))
	if compact {
		sections = append(sections, renderMenuCompact(h.menuLabels, h.menu.Selected, cw))
	} else {
		sections = append(sections, renderMenu(h.menuLabels, h.menu.Selected, cw))
	}

	return renderCabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) HeaderInfo() layout.HeaderInfo {
	info := layout.HeaderInfo{
		Language: h.env.Language.Name,
		Mastered: h.dash.Mastered,
		Due:      h.dash.Due,
	}
	if h.loaded {
		info.Level = wordlist.LevelDisplayName(h.dash.Level)
	}
	return info
}

func (h *HomeScreen) mascotVariant() MascotVariant {
	switch {
	case h.dash.Due >= 3:
		return MascotAlert
	case h.dash.Total > 0 && h.dash.Mastered == h.dash.Total:
		return MascotCelebrating
	default:
		return MascotIdle
	}
}

// loadDashboard reads progress, level counters and the best score.
func (h *HomeScreen) loadDashboard() tea.Cmd {
	env := h.env
	return func() tea.Msg {
		d, err := LoadDashboard(context.Background(), env)
		return dashboardMsg{Dashboard: d, Err: err}
	}
}

// LoadDashboard computes the home screen status for env's language.
func LoadDashboard(ctx context.Context, env *screen.Env) (Dashboard, error) {
	sched, err := env.LoadScheduler(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	lv, err := env.LoadLevels(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	words := env.Language.AllWords()
	var seen []string
	for _, w := range words {
		if sched.Has(w.Key()) {
			seen = append(seen, w.Key())
		}
	}
	st := session.PoolStats(sched, words)

	d := Dashboard{
		Level:    env.DrillLevel(lv),
		Mastered: st.Mastered,
		Total:    st.Total,
		Due:      len(sched.DueWords(seen, sched.Now())),
	}

	list, err := env.LoadHighScores(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	if len(list) > 0 {
		d.BestScore = list[0].Score
		d.HasBest = true
	}
	return d, nil
}
