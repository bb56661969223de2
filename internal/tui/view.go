package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/flourish/internal/constants"
	"github.com/julianstephens/flourish/internal/engine"
	"github.com/julianstephens/flourish/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.state == StateJournal {
		return docStyle.Render(m.form.View())
	}

	var content string
	switch m.state {
	case StateToday:
		content = m.viewToday()
	case StateGarden:
		content = m.viewGarden()
	case StateHistory:
		content = m.viewHistory()
	}

	sections := []string{m.viewTabs(), content}
	if m.errText != "" {
		sections = append(sections, errorStyle.Render("Error: "+m.errText))
	}
	sections = append(sections, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Today", "Garden", "History"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewToday() string {
	if m.loading {
		return docStyle.Render(m.spinner.View() + " Gathering today's activities...")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Activities for %s\n\n", m.daily.Date)

	if len(m.daily.Activities) == 0 {
		b.WriteString(dimStyle.Render("Nothing here yet."))
		return docStyle.Render(b.String())
	}

	for i, a := range m.daily.Activities {
		cursor := "  "
		if i == m.cursor {
			cursor = selectedStyle.Render("> ")
		}

		line := fmt.Sprintf("%s (%s)", a.Title, strengthLabel(a.StrengthID))
		if a.Completed() {
			line = doneStyle.Render("✓ " + line)
		} else {
			line = pendingStyle.Render("· " + line)
		}
		b.WriteString(cursor + line + "\n")

		if i == m.cursor && a.Description != "" {
			b.WriteString(dimStyle.Render("    "+a.Description) + "\n")
		}
	}

	if !m.daily.Shuffled {
		b.WriteString("\n" + dimStyle.Render("press s to shuffle (once per day)"))
	}

	return docStyle.Render(b.String())
}

// gardenRow pairs a strength with its derived progress for display.
type gardenRow struct {
	strength models.Strength
	count    int
	info     engine.ProgressInfo
}

func (m Model) gardenRows() []gardenRow {
	tops := make(map[int]bool, len(m.profile.TopStrengths))
	for _, id := range m.profile.TopStrengths {
		tops[id] = true
	}

	var rows []gardenRow
	for _, s := range models.AllStrengths() {
		p := engine.ProgressFor(m.ledger, s.ID)
		if p.Count == 0 && !tops[s.ID] {
			continue
		}
		info, err := engine.ComputeProgress(p.Count, constants.LevelThresholds)
		if err != nil {
			continue
		}
		rows = append(rows, gardenRow{strength: s, count: p.Count, info: info})
	}
	return rows
}

func (m Model) viewGarden() string {
	rows := m.gardenRows()
	if len(rows) == 0 {
		return docStyle.Render(dimStyle.Render("Nothing planted yet. Complete an activity on the Today tab."))
	}

	var b strings.Builder
	b.WriteString("Your strength garden\n\n")
	for i, row := range rows {
		cursor := "  "
		if i == m.cursor {
			cursor = selectedStyle.Render("> ")
		}
		bar := progressBar(row.info.PercentWithinLevel, 12)
		fmt.Fprintf(&b, "%s%-22s L%-2d %s %3d%%  %d done\n",
			cursor, row.strength.Name, row.info.Level, bar, row.info.PercentWithinLevel, row.count)

		if i == m.cursor {
			b.WriteString(dimStyle.Render("    "+row.strength.Description) + "\n")
		}
	}
	return docStyle.Render(b.String())
}

func (m Model) viewHistory() string {
	if len(m.history) == 0 {
		return docStyle.Render(dimStyle.Render("No completed activities yet."))
	}

	// Newest first; the cursor walks backwards through time.
	var b strings.Builder
	b.WriteString("Completed activities\n\n")
	shown := 0
	for i := len(m.history) - 1; i >= 0 && shown < 30; i-- {
		a := m.history[i]
		cursor := "  "
		if shown == m.cursor {
			cursor = selectedStyle.Render("> ")
		}
		day := ""
		if a.CompletedAt != nil {
			day = a.CompletedAt.Local().Format(constants.DateFormat)
		}
		fmt.Fprintf(&b, "%s%s  %-22s %s\n", cursor, day, strengthLabel(a.StrengthID), a.Title)
		if shown == m.cursor && a.Journal != "" {
			b.WriteString(dimStyle.Render("    "+a.Journal) + "\n")
		}
		shown++
	}
	return docStyle.Render(b.String())
}

func strengthLabel(id int) string {
	if s, ok := models.StrengthByID(id); ok {
		return s.Name
	}
	return fmt.Sprintf("strength %d", id)
}

func progressBar(percent, width int) string {
	filled := percent * width / 100
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}
