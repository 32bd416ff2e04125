package app

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/rishabh/certdeck/internal/domain"
	"github.com/rishabh/certdeck/internal/selection"
	"github.com/rishabh/certdeck/internal/session"
	"github.com/rishabh/certdeck/internal/ui/theme"
)

// pickerModel lets the learner choose a deck and a study mode.
type pickerModel struct {
	decks    []domain.Deck
	filtered []domain.Deck
	cursor   int
	mode     selection.Mode
	filter   textinput.Model
}

func newPicker(mode selection.Mode) pickerModel {
	ti := textinput.New()
	ti.Placeholder = "filter decks"
	ti.Focus()
	return pickerModel{mode: mode, filter: ti}
}

// refilter narrows the deck list to names containing the filter text.
func (p *pickerModel) refilter() {
	query := strings.ToLower(strings.TrimSpace(p.filter.Value()))
	if query == "" {
		p.filtered = p.decks
	} else {
		p.filtered = nil
		for _, d := range p.decks {
			if strings.Contains(strings.ToLower(d.Name), query) {
				p.filtered = append(p.filtered, d)
			}
		}
	}
	if p.cursor >= len(p.filtered) {
		p.cursor = 0
	}
}

func (p pickerModel) update(msg tea.Msg, opts Options) (pickerModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "up":
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil
		case "down":
			if p.cursor < len(p.filtered)-1 {
				p.cursor++
			}
			return p, nil
		case "tab":
			p.mode = nextMode(p.mode)
			return p, nil
		case "enter":
			if len(p.filtered) == 0 {
				return p, nil
			}
			deck := p.filtered[p.cursor]
			mode := p.mode
			return p, func() tea.Msg {
				sess, err := opts.Session.Start(context.Background(), opts.LearnerID,
					session.Scope{DeckID: deck.ID}, mode)
				if err != nil {
					return errMsg{err}
				}
				return sessionStartedMsg{deck: deck, sess: sess}
			}
		}
	}

	var cmd tea.Cmd
	p.filter, cmd = p.filter.Update(msg)
	p.refilter()
	return p, cmd
}

func nextMode(m selection.Mode) selection.Mode {
	switch m {
	case selection.ModeProgressive:
		return selection.ModeRandom
	case selection.ModeRandom:
		return selection.ModeAll
	default:
		return selection.ModeProgressive
	}
}

func (p pickerModel) view(width int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Render("certdeck") + "  " +
		theme.Subtitle.Render(fmt.Sprintf("mode: %s (tab to change)", p.mode)) + "\n\n")
	b.WriteString(p.filter.View() + "\n\n")

	if len(p.filtered) == 0 {
		b.WriteString(theme.Hint.Render("no decks yet, import some with `certdeck import`"))
		return b.String()
	}

	for i, d := range p.filtered {
		line := d.Name
		if d.Description != "" {
			line += "  " + theme.Subtitle.Render(d.Description)
		}
		if i == p.cursor {
			b.WriteString(theme.Selected.Render("> "+line) + "\n")
		} else {
			b.WriteString(theme.Unselected.Render("  "+line) + "\n")
		}
	}

	b.WriteString("\n" + theme.Hint.Render("↑↓ select · Enter study · Tab mode · Ctrl+C quit"))
	return b.String()
}
