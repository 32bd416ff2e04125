// Package app is the Bubble Tea shell around the study engine: a deck
// picker, the flip-and-rate study loop, and the end-of-session summary.
package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rishabh/certdeck/internal/domain"
	"github.com/rishabh/certdeck/internal/selection"
	"github.com/rishabh/certdeck/internal/session"
	"github.com/rishabh/certdeck/internal/ui/theme"
)

// DeckLister supplies the decks shown in the picker. Implemented by
// store.DeckRepo.
type DeckLister interface {
	ListDecks(ctx context.Context) ([]domain.Deck, error)
}

// Options wires the TUI to the study engine.
type Options struct {
	LearnerID   string
	DefaultMode selection.Mode
	Session     *session.Service
	Decks       DeckLister
}

type appState int

const (
	statePicker appState = iota
	stateStudy
	stateSummary
	stateError
)

// Messages flowing between the shell and its async commands.
type (
	decksLoadedMsg    []domain.Deck
	sessionStartedMsg struct {
		deck domain.Deck
		sess *session.StudySession
	}
	cardRatedMsg    struct{}
	sessionDoneMsg  struct{ summary sessionSummary }
	errMsg          struct{ err error }
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts   Options
	state  appState
	picker pickerModel
	study  studyModel
	width  int
	height int
	err    error
}

func newAppModel(opts Options) AppModel {
	return AppModel{
		opts:   opts,
		picker: newPicker(opts.DefaultMode),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.loadDecks()
}

func (m AppModel) loadDecks() tea.Cmd {
	return func() tea.Msg {
		decks, err := m.opts.Decks.ListDecks(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return decksLoadedMsg(decks)
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case errMsg:
		m.state = stateError
		m.err = msg.err
		return m, nil

	case decksLoadedMsg:
		m.picker.decks = msg
		m.picker.refilter()
		return m, nil

	case sessionStartedMsg:
		m.state = stateStudy
		m.study = newStudy(m.opts, msg.deck, msg.sess)
		return m, nil

	case sessionDoneMsg:
		m.state = stateSummary
		m.study.summary = &msg.summary
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			switch m.state {
			case stateStudy, stateSummary, stateError:
				m.state = statePicker
				m.err = nil
				return m, m.loadDecks()
			}
			return m, tea.Quit
		}
	}

	switch m.state {
	case statePicker:
		var cmd tea.Cmd
		m.picker, cmd = m.picker.update(msg, m.opts)
		return m, cmd
	case stateStudy:
		var cmd tea.Cmd
		m.study, cmd = m.study.update(msg)
		return m, cmd
	case stateSummary:
		if key, ok := msg.(tea.KeyPressMsg); ok && key.String() == "enter" {
			m.state = statePicker
			return m, m.loadDecks()
		}
	}
	return m, nil
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	var content string
	switch m.state {
	case statePicker:
		content = m.picker.view(m.width)
	case stateStudy:
		content = m.study.view(m.width)
	case stateSummary:
		content = m.study.summaryView(m.width)
	case stateError:
		content = theme.Unknown.Render("error: ") + theme.Body.Render(m.err.Error()) + "\n\n" +
			theme.Hint.Render("Esc to go back")
	}

	v.SetContent(lipgloss.NewStyle().Padding(1, 2).Render(content))
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
