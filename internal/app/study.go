package app

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/rishabh/certdeck/internal/domain"
	"github.com/rishabh/certdeck/internal/mastery"
	"github.com/rishabh/certdeck/internal/quizstats"
	"github.com/rishabh/certdeck/internal/session"
	"github.com/rishabh/certdeck/internal/ui/components"
	"github.com/rishabh/certdeck/internal/ui/theme"
)

// sessionSummary captures the outcome of a finished study session.
type sessionSummary struct {
	Studied int
	Known   int
	Status  string
}

// studyModel runs the flip-and-rate loop over the session's cards.
// Ratings at or above the review threshold count as known; the
// self-graded tally is recorded as a deck-level quiz at the end.
type studyModel struct {
	opts     Options
	deck     domain.Deck
	cards    []domain.Card
	idx      int
	revealed bool
	known    int
	summary  *sessionSummary
}

func newStudy(opts Options, deck domain.Deck, sess *session.StudySession) studyModel {
	return studyModel{opts: opts, deck: deck, cards: sess.Cards}
}

func (s studyModel) update(msg tea.Msg) (studyModel, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	switch key.String() {
	case " ", "enter":
		if !s.revealed {
			s.revealed = true
		}
		return s, nil
	case "1", "2", "3", "4", "5":
		if !s.revealed {
			return s, nil
		}
		level := int(key.String()[0] - '0')
		return s.rate(level)
	}
	return s, nil
}

func (s studyModel) rate(level int) (studyModel, tea.Cmd) {
	card := s.cards[s.idx]
	if level >= mastery.ReviewThreshold {
		s.known++
	}

	rateCmd := func() tea.Msg {
		_, err := s.opts.Session.RecordRating(context.Background(), s.opts.LearnerID, card.ID, level)
		if err != nil {
			return errMsg{err}
		}
		return cardRatedMsg{}
	}

	s.idx++
	s.revealed = false
	if s.idx < len(s.cards) {
		return s, rateCmd
	}
	return s, tea.Sequence(rateCmd, s.finish())
}

// finish records the self-graded tally as a deck-level quiz session.
func (s studyModel) finish() tea.Cmd {
	studied := len(s.cards)
	known := s.known
	return func() tea.Msg {
		agg, err := s.opts.Session.RecordQuiz(context.Background(), s.opts.LearnerID,
			quizstats.TargetDeck, s.deck.ID, known, studied)
		if err != nil {
			return errMsg{err}
		}
		return sessionDoneMsg{summary: sessionSummary{
			Studied: studied,
			Known:   known,
			Status:  fmt.Sprintf("%.2f%% deck mastery", agg.MasteryPercentage),
		}}
	}
}

func (s studyModel) view(width int) string {
	if len(s.cards) == 0 || s.idx >= len(s.cards) {
		return theme.Hint.Render("saving session…")
	}
	card := s.cards[s.idx]

	var b strings.Builder
	b.WriteString(theme.Title.Render(s.deck.Name) + "\n")
	b.WriteString(components.ProgressBar{
		Current:   s.idx,
		Total:     len(s.cards),
		Width:     min(width-4, 60),
		ShowCount: true,
	}.View() + "\n\n")

	faceWidth := min(width-8, 72)
	b.WriteString(theme.CardFace.Width(faceWidth).Render(card.Question) + "\n\n")

	if s.revealed {
		b.WriteString(theme.CardFace.Width(faceWidth).BorderForeground(theme.Secondary).Render(card.Answer) + "\n\n")
		b.WriteString(theme.Hint.Render("rate your confidence: 1 (no idea) … 5 (nailed it)"))
	} else {
		b.WriteString(theme.Hint.Render("Space to reveal · Esc to quit session"))
	}
	return b.String()
}

func (s studyModel) summaryView(width int) string {
	if s.summary == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(theme.Title.Render("session complete") + "\n\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("cards studied: %d\n", s.summary.Studied)))
	b.WriteString(theme.Known.Render(fmt.Sprintf("known: %d", s.summary.Known)) + "  ")
	b.WriteString(theme.Unknown.Render(fmt.Sprintf("shaky: %d", s.summary.Studied-s.summary.Known)) + "\n\n")
	b.WriteString(theme.Body.Render(s.summary.Status) + "\n\n")
	b.WriteString(theme.Hint.Render("Enter to pick another deck · Ctrl+C to quit"))
	return b.String()
}
