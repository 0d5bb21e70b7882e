package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"skincare-bot/internal/domain"
)

// TranscriptStore persists console transcripts between runs.
type TranscriptStore interface {
	AppendTurn(ctx context.Context, sessionID string, turn domain.ConversationTurn) error
	GetTranscript(ctx context.Context, sessionID string, limit int) ([]domain.ConversationTurn, error)
	ClearTranscript(ctx context.Context, sessionID string) error
}

// Session is one console conversation: the displayed history plus the
// input field value. The store is optional.
type Session struct {
	id      string
	chat    *ChatService
	store   TranscriptStore
	history []domain.ConversationTurn
	input   string
}

func NewSession(id string, chat *ChatService, store TranscriptStore) (*Session, error) {
	if chat == nil {
		return nil, errors.New("usecase: chat service must not be nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("usecase: session id must not be empty")
	}
	return &Session{id: id, chat: chat, store: store}, nil
}

func (s *Session) ID() string { return s.id }

// History returns a copy of the displayed transcript.
func (s *Session) History() []domain.ConversationTurn {
	out := make([]domain.ConversationTurn, len(s.history))
	copy(out, s.history)
	return out
}

// Input is the current input field value; it is cleared after every submit.
func (s *Session) Input() string { return s.input }

// Resume loads up to limit stored turns into the displayed history.
func (s *Session) Resume(ctx context.Context, limit int) int {
	if s.store == nil {
		return 0
	}
	turns, err := s.store.GetTranscript(ctx, s.id, limit)
	if err != nil {
		slog.Warn("could not load transcript", "session", s.id, "err", err)
		return 0
	}
	s.history = turns
	return len(turns)
}

// Submit sends text and returns the new turn. ok is false for blank input.
func (s *Session) Submit(ctx context.Context, text string) (turn domain.ConversationTurn, ok bool) {
	history, input := s.chat.ChatTurn(ctx, text, s.history)
	return s.apply(ctx, history, input)
}

// QuickStart submits the start phrase.
func (s *Session) QuickStart(ctx context.Context) domain.ConversationTurn {
	history, input := s.chat.QuickStart(ctx, s.history)
	turn, _ := s.apply(ctx, history, input)
	return turn
}

// Reset empties the history and input and clears the stored transcript.
func (s *Session) Reset(ctx context.Context) {
	s.history, s.input = s.chat.Reset()
	if s.store == nil {
		return
	}
	if err := s.store.ClearTranscript(ctx, s.id); err != nil {
		slog.Warn("could not clear transcript", "session", s.id, "err", err)
	}
}

func (s *Session) apply(ctx context.Context, history []domain.ConversationTurn, input string) (domain.ConversationTurn, bool) {
	grew := len(history) > len(s.history)
	s.history, s.input = history, input
	if !grew {
		return domain.ConversationTurn{}, false
	}
	turn := history[len(history)-1]
	if s.store != nil {
		if err := s.store.AppendTurn(ctx, s.id, turn); err != nil {
			slog.Warn("could not persist turn", "session", s.id, "err", err)
		}
	}
	return turn, true
}
