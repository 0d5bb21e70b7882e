package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"skincare-bot/internal/domain"
)

// QuickStartMessage is what the start shortcut submits on the user's behalf.
const QuickStartMessage = "I need skincare advice"

const replySeparator = "\n\n"

// Sender posts one user message to the dialogue service.
type Sender interface {
	Send(ctx context.Context, sender, message string) ([]string, error)
}

// ChatService bridges user text to the dialogue service and keeps the
// transcript shape the display expects. It never returns errors: every
// failure becomes a reply string.
type ChatService struct {
	client   Sender
	senderID string
}

func NewChatService(client Sender, senderID string) (*ChatService, error) {
	if client == nil {
		return nil, errors.New("usecase: dialogue client must not be nil")
	}
	senderID = strings.TrimSpace(senderID)
	if senderID == "" {
		return nil, errors.New("usecase: sender id must not be empty")
	}
	return &ChatService{client: client, senderID: senderID}, nil
}

// SendMessage returns the dialogue service's text replies, or exactly one
// synthetic reply describing why none could be fetched.
func (s *ChatService) SendMessage(ctx context.Context, text string) []string {
	replies, err := s.client.Send(ctx, s.senderID, text)
	if err == nil {
		return replies
	}

	if status, ok := upstreamStatusCode(err); ok {
		slog.Warn("dialogue service returned error status", "status", status)
		return []string{fmt.Sprintf("Error: Server returned status code %d", status)}
	}
	slog.Warn("dialogue service unreachable", "err", err)
	return []string{fmt.Sprintf("Connection error: %v", err)}
}

// ChatTurn submits text and returns the history with the new turn appended
// plus the cleared input value. Blank input leaves history untouched.
func (s *ChatService) ChatTurn(ctx context.Context, text string, history []domain.ConversationTurn) ([]domain.ConversationTurn, string) {
	if strings.TrimSpace(text) == "" {
		return history, ""
	}
	replies := s.SendMessage(ctx, text)

	next := make([]domain.ConversationTurn, len(history), len(history)+1)
	copy(next, history)
	next = append(next, domain.ConversationTurn{
		UserText: text,
		BotText:  strings.Join(replies, replySeparator),
	})
	return next, ""
}

// QuickStart opens a consultation as if the user typed the start phrase.
func (s *ChatService) QuickStart(ctx context.Context, history []domain.ConversationTurn) ([]domain.ConversationTurn, string) {
	return s.ChatTurn(ctx, QuickStartMessage, history)
}

// Reset returns an empty history and input field.
func (s *ChatService) Reset() ([]domain.ConversationTurn, string) {
	return nil, ""
}

type httpStatusCoder interface {
	HTTPStatusCode() int
}

func upstreamStatusCode(err error) (int, bool) {
	var statusErr httpStatusCoder
	if !errors.As(err, &statusErr) {
		return 0, false
	}
	return statusErr.HTTPStatusCode(), true
}
