package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/flourish/internal/engine"
	"github.com/julianstephens/flourish/internal/models"
	"github.com/julianstephens/flourish/internal/storage"
	"github.com/julianstephens/flourish/internal/suggest"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateGarden
	StateHistory
	StateJournal
)

const tabCount = 3

// dailyStateMsg carries a provider-backed daily state back into the program.
// The generation counter rejects stale responses: only the answer to the most
// recent request is applied.
type dailyStateMsg struct {
	generation int
	state      models.DailyState
}

type saveErrMsg struct {
	err error
}

type Model struct {
	store     storage.Provider
	engine    *engine.Engine
	suggester suggest.Provider

	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	spinner       spinner.Model

	profile models.Profile
	daily   models.DailyState
	ledger  []models.StrengthProgress
	history []models.Activity

	cursor     int
	loading    bool
	generation int

	form        *huh.Form
	journalText string
	completing  string // activity id the journal form will complete

	errText  string
	quitting bool
	width    int
	height   int
}

func NewModel(store storage.Provider, eng *engine.Engine, suggester suggest.Provider) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		store:     store,
		engine:    eng,
		suggester: suggester,
		state:     StateToday,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		spinner:   sp,
	}

	// A corrupt store must not render as silently empty tabs; the first load
	// error is surfaced the same way Update surfaces save errors.
	var err error
	if m.profile, err = store.GetProfile(); err != nil && m.errText == "" {
		m.errText = err.Error()
	}
	if m.daily, err = store.GetDailyState(); err != nil && m.errText == "" {
		m.errText = err.Error()
	}
	if m.ledger, err = store.GetProgress(); err != nil && m.errText == "" {
		m.errText = err.Error()
	}
	if m.history, err = store.GetHistory(); err != nil && m.errText == "" {
		m.errText = err.Error()
	}

	// A stale or missing daily state is rolled over asynchronously in Init.
	if m.daily.Date != eng.Today() {
		m.loading = true
		m.generation = 1
	}

	return m
}

func (m Model) Init() tea.Cmd {
	if m.loading {
		return tea.Batch(m.spinner.Tick, m.startDayCmd(m.generation))
	}
	return nil
}

// startDayCmd seeds a fresh day off the UI goroutine. The closure snapshots
// everything it needs; the result is applied only if the generation still
// matches when it arrives.
func (m Model) startDayCmd(generation int) tea.Cmd {
	eng, profile, history := m.engine, m.profile, m.history
	return func() tea.Msg {
		state := eng.StartDay(context.Background(), profile, history)
		return dailyStateMsg{generation: generation, state: state}
	}
}

// reshuffleCmd requests a replacement set for the pending activities.
func (m Model) reshuffleCmd(generation int) tea.Cmd {
	eng, profile, state := m.engine, m.profile, m.daily
	return func() tea.Msg {
		return dailyStateMsg{generation: generation, state: eng.Reshuffle(context.Background(), profile, state)}
	}
}

func (m *Model) newJournalForm() *huh.Form {
	m.journalText = ""
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("How did it go?").
				Description("A sentence or two; leave empty to skip.").
				Value(&m.journalText),
		),
	)
}
