package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/typeflow/typeflow/internal/game"
)

func (m Model) View() string {
	if m.screen == screenResults {
		if m.minimal {
			return m.minimalResultsView()
		}
		return frameStyle.Render(m.resultsView())
	}
	if m.minimal {
		return m.minimalView()
	}
	return frameStyle.Render(m.playingView())
}

// minimalView is a single uncolored line: position, then the prompt with a
// bar where the typed part ends.
func (m Model) minimalView() string {
	parts := m.state.Parts()
	return fmt.Sprintf("%d/%d %s|%s", m.state.CurrentWordIndex+1, len(m.state.Words), parts.Input, parts.Remaining)
}

func (m Model) minimalResultsView() string {
	return fmt.Sprintf("%.0f kpm %.0f%% (enter: again, esc: quit)", m.result.KPM(), m.result.Accuracy()*100)
}

func (m Model) playingView() string {
	var s strings.Builder

	w, ok := m.state.Current()
	if !ok {
		return ""
	}

	s.WriteString(titleStyle.Render("TypeFlow"))
	s.WriteString(dimStyle.Render(fmt.Sprintf("  %d/%d", m.state.CurrentWordIndex+1, len(m.state.Words))))
	s.WriteString("\n\n")

	s.WriteString(wordStyle.Render(w.Text))
	s.WriteString("\n")
	s.WriteString(readingStyle.Render(w.Reading))
	s.WriteString("\n\n")

	parts := m.state.Parts()
	s.WriteString(matchedStyle.Render(parts.Input))
	s.WriteString(remainingStyle.Render(parts.Remaining))
	s.WriteString("\n")
	s.WriteString(dimStyle.Render("> " + m.state.CurrentInput))
	if m.last == game.Rejected {
		s.WriteString(errorStyle.Render("  ✗"))
	}
	s.WriteString("\n\n")

	s.WriteString(m.progress.ViewAs(m.wordProgress()))
	s.WriteString("\n")
	s.WriteString(dimStyle.Render(fmt.Sprintf("mistakes %d  skipped %d", m.state.Mistakes, m.state.Skipped)))
	s.WriteString("\n\n")

	s.WriteString(m.help.View(m.keys))
	return s.String()
}

// wordProgress is the fraction of the session done, counting the chunks of
// the current word as a partial word.
func (m Model) wordProgress() float64 {
	total := len(m.state.Words)
	if total == 0 {
		return 1
	}
	done, chunks := m.state.Progress()
	frac := 0.0
	if chunks > 0 {
		frac = float64(done) / float64(chunks)
	}
	return (float64(m.state.CurrentWordIndex) + frac) / float64(total)
}

func (m Model) resultsView() string {
	var s strings.Builder
	r := m.result

	s.WriteString(titleStyle.Render("Results"))
	s.WriteString("\n\n")
	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Player", r.Player)
	row("Words", fmt.Sprintf("%d", r.Words))
	row("KPM", fmt.Sprintf("%.1f", r.KPM()))
	row("Accuracy", fmt.Sprintf("%.1f%%", r.Accuracy()*100))
	row("Keystrokes", fmt.Sprintf("%d", r.Keystrokes))
	row("Mistakes", fmt.Sprintf("%d", r.Mistakes))
	row("Skipped", fmt.Sprintf("%d", r.Skipped))
	row("Time", r.Duration.Round(100*time.Millisecond).String())
	s.WriteString("\n")

	switch {
	case m.saveErr != nil:
		s.WriteString(errorStyle.Render("not saved: " + m.saveErr.Error()))
	case m.saved != nil:
		s.WriteString(dimStyle.Render(fmt.Sprintf("saved as #%d", m.saved.ID)))
	}
	s.WriteString("\n\n")

	s.WriteString(m.help.View(m.keys))
	return s.String()
}
