package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/flourish/internal/engine"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case dailyStateMsg:
		if msg.generation != m.generation {
			// A newer request is in flight; drop this answer.
			return m, nil
		}
		m.loading = false
		m.daily = msg.state
		m.clampCursor()
		if err := m.store.SaveDailyState(m.daily); err != nil {
			m.errText = err.Error()
		}
		return m, nil

	case saveErrMsg:
		m.errText = msg.err.Error()
		return m, nil
	}

	if m.state == StateJournal {
		return m.updateJournal(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Tab):
		m.state = (m.state + 1) % tabCount
		m.cursor = 0

	case key.Matches(msg, m.keys.ShiftTab):
		m.state = (m.state - 1 + tabCount) % tabCount
		m.cursor = 0

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		m.cursor++
		m.clampCursor()

	case key.Matches(msg, m.keys.Shuffle):
		if m.state == StateToday && !m.daily.Shuffled && !m.loading {
			m.loading = true
			m.generation++
			return m, tea.Batch(m.spinner.Tick, m.reshuffleCmd(m.generation))
		}

	case key.Matches(msg, m.keys.Enter):
		if m.state == StateToday && !m.loading {
			return m.openJournal()
		}
	}

	return m, nil
}

func (m Model) openJournal() (tea.Model, tea.Cmd) {
	if m.cursor >= len(m.daily.Activities) {
		return m, nil
	}
	target := m.daily.Activities[m.cursor]
	if target.Completed() {
		return m, nil
	}

	m.completing = target.ID
	m.form = m.newJournalForm()
	m.previousState = m.state
	m.state = StateJournal
	return m, m.form.Init()
}

func (m Model) updateJournal(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.state = m.previousState
		return m.completeActivity(m.completing, m.journalText)
	case huh.StateAborted:
		m.state = m.previousState
		return m, nil
	}

	return m, cmd
}

func (m Model) completeActivity(activityID, journal string) (tea.Model, tea.Cmd) {
	state, entry, err := m.engine.Complete(m.daily, activityID, journal)
	if err != nil {
		m.errText = err.Error()
		return m, nil
	}
	m.daily = state

	if err := m.store.SaveDailyState(m.daily); err != nil {
		m.errText = err.Error()
		return m, nil
	}
	if err := m.store.AppendHistory(entry); err != nil {
		m.errText = err.Error()
		return m, nil
	}
	m.history = append(m.history, entry)

	ledger, err := engine.RecordCompletion(m.ledger, entry.StrengthID)
	if err != nil {
		m.errText = err.Error()
		return m, nil
	}
	if err := m.store.SaveProgress(ledger); err != nil {
		m.errText = err.Error()
		return m, nil
	}
	m.ledger = ledger
	m.errText = ""

	return m, nil
}

func (m *Model) clampCursor() {
	max := 0
	switch m.state {
	case StateToday:
		max = len(m.daily.Activities) - 1
	case StateGarden:
		max = len(m.gardenRows()) - 1
	case StateHistory:
		max = len(m.history) - 1
	}
	if max < 0 {
		max = 0
	}
	if m.cursor > max {
		m.cursor = max
	}
}
