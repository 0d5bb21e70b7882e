package usecase

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"skincare-bot/internal/domain"
	"skincare-bot/internal/integrations/dialogue"
)

type stubSender struct {
	replies []string
	err     error
	calls   int
	sender  string
	message string
}

func (s *stubSender) Send(_ context.Context, sender, message string) ([]string, error) {
	s.calls++
	s.sender = sender
	s.message = message
	return s.replies, s.err
}

func newTestChat(t *testing.T, client Sender) *ChatService {
	t.Helper()
	svc, err := NewChatService(client, "console_user")
	require.NoError(t, err)
	return svc
}

func TestNewChatService_ValidatesDependencies(t *testing.T) {
	_, err := NewChatService(nil, "console_user")
	require.Error(t, err)

	_, err = NewChatService(&stubSender{}, "  ")
	require.Error(t, err)
}

func TestSendMessage_ReturnsReplies(t *testing.T) {
	client := &stubSender{replies: []string{"Hi!", "What is your skin type?"}}
	svc := newTestChat(t, client)

	out := svc.SendMessage(context.Background(), "hello")
	require.Equal(t, []string{"Hi!", "What is your skin type?"}, out)
	require.Equal(t, "console_user", client.sender)
	require.Equal(t, "hello", client.message)
}

func TestSendMessage_StatusErrorBecomesReply(t *testing.T) {
	svc := newTestChat(t, &stubSender{err: &dialogue.HTTPStatusError{StatusCode: http.StatusBadGateway}})
	out := svc.SendMessage(context.Background(), "hello")
	require.Equal(t, []string{"Error: Server returned status code 502"}, out)
}

func TestSendMessage_TransportErrorBecomesReply(t *testing.T) {
	svc := newTestChat(t, &stubSender{err: errors.New("dial tcp 127.0.0.1:5005: connect: connection refused")})
	out := svc.SendMessage(context.Background(), "hello")
	require.Len(t, out, 1)
	require.Contains(t, out[0], "Connection error: ")
	require.Contains(t, out[0], "connection refused")
}

func TestSendMessage_Simulated500(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := dialogue.NewClient(dialogue.WithBaseURL(srv.URL))
	out := newTestChat(t, client).SendMessage(context.Background(), "hello")
	require.Len(t, out, 1)
	require.Contains(t, out[0], "500")
}

func TestSendMessage_UnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := srv.URL
	srv.Close()

	client := dialogue.NewClient(
		dialogue.WithBaseURL(base),
		dialogue.WithHTTPClient(&http.Client{Timeout: time.Second}),
	)
	out := newTestChat(t, client).SendMessage(context.Background(), "hello")
	require.Len(t, out, 1)
	require.Contains(t, out[0], "Connection error")
}

func TestSendMessage_ConnectionErrorHidesToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := srv.URL
	srv.Close()

	client := dialogue.NewClient(dialogue.WithBaseURL(base), dialogue.WithToken("SUPERSECRET"))
	out := newTestChat(t, client).SendMessage(context.Background(), "hello")
	require.Len(t, out, 1)
	require.Contains(t, out[0], "Connection error")
	require.NotContains(t, out[0], "SUPERSECRET")
}

func TestSendMessage_NoContentIsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := dialogue.NewClient(dialogue.WithBaseURL(srv.URL))
	out := newTestChat(t, client).SendMessage(context.Background(), "hello")
	require.Equal(t, []string{"Error: Server returned status code 204"}, out)
}

func TestChatTurn_BlankInputIsNoop(t *testing.T) {
	client := &stubSender{replies: []string{"unused"}}
	svc := newTestChat(t, client)
	history := []domain.ConversationTurn{{UserText: "hi", BotText: "Hello!"}}

	for _, in := range []string{"", "   ", "\n\t"} {
		out, input := svc.ChatTurn(context.Background(), in, history)
		require.Equal(t, history, out)
		require.Empty(t, input)
	}
	require.Zero(t, client.calls)
}

func TestChatTurn_AppendsJoinedReplies(t *testing.T) {
	svc := newTestChat(t, &stubSender{replies: []string{"Great!", "How old are you?"}})
	history := []domain.ConversationTurn{{UserText: "hi", BotText: "Hello!"}}

	out, input := svc.ChatTurn(context.Background(), "oily", history)
	require.Empty(t, input)
	require.Equal(t, []domain.ConversationTurn{
		{UserText: "hi", BotText: "Hello!"},
		{UserText: "oily", BotText: "Great!\n\nHow old are you?"},
	}, out)
	require.Len(t, history, 1)
}

func TestChatTurn_DoesNotWriteCallerBackingArray(t *testing.T) {
	svc := newTestChat(t, &stubSender{replies: []string{"b"}})
	backing := make([]domain.ConversationTurn, 1, 4)
	backing[0] = domain.ConversationTurn{UserText: "first"}

	_, _ = svc.ChatTurn(context.Background(), "second", backing)
	require.Equal(t, domain.ConversationTurn{}, backing[:2][1])
}

func TestChatTurn_ErrorReplyIsStillAppended(t *testing.T) {
	svc := newTestChat(t, &stubSender{err: &dialogue.HTTPStatusError{StatusCode: 500}})
	out, _ := svc.ChatTurn(context.Background(), "hello", nil)
	require.Equal(t, []domain.ConversationTurn{
		{UserText: "hello", BotText: "Error: Server returned status code 500"},
	}, out)
}

func TestChatTurn_NoTextRepliesGivesEmptyBotText(t *testing.T) {
	svc := newTestChat(t, &stubSender{replies: []string{}})
	out, _ := svc.ChatTurn(context.Background(), "hello", nil)
	require.Len(t, out, 1)
	require.Empty(t, out[0].BotText)
}

func TestQuickStart_SendsStartPhrase(t *testing.T) {
	client := &stubSender{replies: []string{"Let's begin."}}
	svc := newTestChat(t, client)

	out, input := svc.QuickStart(context.Background(), nil)
	require.Empty(t, input)
	require.Equal(t, QuickStartMessage, client.message)
	require.Equal(t, "I need skincare advice", out[0].UserText)
}

func TestReset_ReturnsEmptyState(t *testing.T) {
	svc := newTestChat(t, &stubSender{})
	history, input := svc.Reset()
	require.Empty(t, history)
	require.Empty(t, input)
}
