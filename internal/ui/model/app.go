package model

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/decawise/internal/apperrors"
	"github.com/palemoky/decawise/internal/game/engine"
	"github.com/palemoky/decawise/internal/logger"
	"github.com/palemoky/decawise/internal/sound"
	"github.com/palemoky/decawise/internal/storage"
	"github.com/palemoky/decawise/internal/ui/common"
)

const (
	noticeDuration = 3 * time.Second
	historyLimit   = 10
	historyTimeout = 2 * time.Second
)

// Notices shown to the players.
const (
	NoticeNoQuestions = "⚠️ No questions loaded, check the questions file"
	NoticeNoSavedGame = "No saved game to continue"
	NoticeHistoryFail = "⚠️ Could not load history"
)

// SoundPlayer plays named effects. *sound.SoundManager satisfies it.
type SoundPlayer interface {
	Init() error
	Play(name string)
	Close()
}

// App is the bubbletea model for a local game. It owns the engine; every
// input becomes an engine action.
type App struct {
	engine  *engine.Engine
	results storage.ResultStore
	sound   SoundPlayer

	pointChoices  []int
	defaultPoints int

	hasSaved bool
	cursor   int
	overlay  Overlay
	history  []*storage.GameResult
	notice   string

	keys *KeyMap
	help help.Model
	now  func() time.Time

	width  int
	height int

	// View renderer (injected to break circular import)
	viewRenderer func(Model) string

	// Key handler (injected to break circular import)
	keyHandler func(Model, tea.KeyMsg) (bool, tea.Cmd)
}

// AppOption configures an App.
type AppOption func(*App)

// WithResultHistory enables the history screen.
func WithResultHistory(rs storage.ResultStore) AppOption {
	return func(m *App) { m.results = rs }
}

// WithSound plays effects on game events.
func WithSound(sp SoundPlayer) AppOption {
	return func(m *App) { m.sound = sp }
}

// WithPointChoices sets the targets offered on the points screen and the preselected one.
func WithPointChoices(choices []int, preselect int) AppOption {
	return func(m *App) {
		if len(choices) > 0 {
			m.pointChoices = slices.Clone(choices)
		}
		if preselect > 0 {
			m.defaultPoints = preselect
		}
	}
}

// WithNow overrides the clock used for relative times.
func WithNow(now func() time.Time) AppOption {
	return func(m *App) { m.now = now }
}

// NewApp creates the model around e.
func NewApp(e *engine.Engine, opts ...AppOption) *App {
	m := &App{
		engine:        e,
		pointChoices:  []int{5, 10, 15, 20, 25, 30},
		defaultPoints: engine.DefaultPointsToWin,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *App) Init() tea.Cmd {
	if m.sound != nil {
		go func() {
			if err := m.sound.Init(); err != nil {
				logger.LogError("Sound disabled: %v", err)
			}
		}()
	}
	return m.checkSavedGame()
}

func (m *App) checkSavedGame() tea.Cmd {
	return func() tea.Msg {
		return SavedGameMsg{Exists: m.engine.HasSavedGame(context.Background())}
	}
}

// --- Model interface implementation ---

func (m *App) State() engine.GameState        { return m.engine.State() }
func (m *App) HasSavedGame() bool             { return m.hasSaved }
func (m *App) CanDraw() bool                  { return m.engine.CanDraw() }
func (m *App) Cursor() int                    { return m.cursor }
func (m *App) SetCursor(c int)                { m.cursor = c }
func (m *App) PointChoices() []int            { return m.pointChoices }
func (m *App) Overlay() Overlay               { return m.overlay }
func (m *App) SetOverlay(o Overlay)           { m.overlay = o }
func (m *App) History() []*storage.GameResult { return m.history }
func (m *App) Notice() string                 { return m.notice }
func (m *App) Keys() *KeyMap                  { return m.keys }
func (m *App) Help() *help.Model              { return &m.help }
func (m *App) Now() time.Time                 { return m.now() }
func (m *App) Width() int                     { return m.width }
func (m *App) Height() int                    { return m.height }

func (m *App) PlaySound(name string) {
	if m.sound == nil || name == "" {
		return
	}
	m.sound.Play(name)
}

// Notify shows message until the returned command fires.
func (m *App) Notify(message string) tea.Cmd {
	m.notice = message
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return ClearNoticeMsg{}
	})
}

// Dispatch forwards a to the engine and reacts to the resulting state.
func (m *App) Dispatch(a engine.Action) tea.Cmd {
	prev := m.engine.State()
	next, ok := m.engine.Dispatch(context.Background(), a)
	if !ok {
		if needsQuestion(a) && !m.engine.CanDraw() {
			return m.Notify(NoticeNoQuestions)
		}
		return nil
	}

	m.PlaySound(effectFor(prev, next, a))
	m.hasSaved = next.InGame()
	if prev.Status != next.Status {
		m.enterScreen(next.Status)
	}
	return nil
}

// Continue restores the saved game, if there is one.
func (m *App) Continue() tea.Cmd {
	_, err := m.engine.Continue(context.Background())
	if err == nil {
		m.overlay = OverlayNone
		return nil
	}
	m.hasSaved = false
	if errors.Is(err, apperrors.ErrNoSavedGame) {
		return m.Notify(NoticeNoSavedGame)
	}
	return m.Notify("⚠️ " + err.Error())
}

// LoadHistory opens the history overlay and fetches recent results.
func (m *App) LoadHistory() tea.Cmd {
	m.overlay = OverlayHistory
	if m.results == nil {
		return nil
	}
	rs := m.results
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), historyTimeout)
		defer cancel()
		results, err := rs.RecentResults(ctx, historyLimit)
		return HistoryMsg{Results: results, Err: err}
	}
}

func (m *App) enterScreen(status engine.Status) {
	m.overlay = OverlayNone
	m.cursor = 0
	if status == engine.StatusPointsSetup {
		if i := slices.Index(m.pointChoices, m.defaultPoints); i >= 0 {
			m.cursor = i
		}
	}
}

func needsQuestion(a engine.Action) bool {
	switch a.(type) {
	case engine.ChoosePoints, engine.SkipQuestion, engine.NextRound:
		return true
	}
	return false
}

// effectFor picks the sound for a transition, or "" for none.
func effectFor(prev, next engine.GameState, a engine.Action) string {
	switch {
	case next.Status == engine.StatusGameEnd && prev.Status != engine.StatusGameEnd:
		return sound.Win
	case next.Status == engine.StatusRoundEnd && prev.Status == engine.StatusPlaying:
		return sound.RoundEnd
	}
	switch a.(type) {
	case engine.SelectOption:
		return sound.Reveal
	case engine.Pass:
		return sound.Pass
	case engine.Eliminate:
		return sound.Wrong
	}
	return ""
}

// Update handles tea messages.
func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case SavedGameMsg:
		m.hasSaved = msg.Exists

	case HistoryMsg:
		if msg.Err != nil {
			logger.LogError("Error loading history: %v", msg.Err)
			return m, m.Notify(NoticeHistoryFail)
		}
		m.history = msg.Results

	case ClearNoticeMsg:
		m.notice = ""

	case tea.KeyMsg:
		if m.keyHandler != nil {
			_, cmd := m.keyHandler(m, msg)
			return m, cmd
		}
	}
	return m, nil
}

// View renders the model.
func (m *App) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	content := "View renderer not initialized"
	if m.viewRenderer != nil {
		content = m.viewRenderer(m)
	}
	return common.DocStyle.Render(content)
}

// SetViewRenderer sets the view rendering function.
func (m *App) SetViewRenderer(fn func(Model) string) {
	m.viewRenderer = fn
}

// SetKeyHandler sets the keyboard event handler function.
func (m *App) SetKeyHandler(fn func(Model, tea.KeyMsg) (bool, tea.Cmd)) {
	m.keyHandler = fn
}

// Close releases the sound device.
func (m *App) Close() {
	if m.sound != nil {
		m.sound.Close()
	}
}
