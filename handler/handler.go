// Package handler serves the dialogue service's custom action webhook.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"skincare-bot/internal/domain"
	"skincare-bot/internal/usecase"
)

const correlationHeader = "X-Correlation-Id"

type ActionRunner interface {
	Run(ctx context.Context, call usecase.ActionCall) (usecase.ActionResult, error)
	Names() []string
}

// actionRequest is the subset of the action call payload the server reads.
type actionRequest struct {
	NextAction string `json:"next_action"`
	SenderID   string `json:"sender_id"`
	Tracker    struct {
		SenderID string         `json:"sender_id"`
		Slots    map[string]any `json:"slots"`
	} `json:"tracker"`
	Version string `json:"version,omitempty"`
}

type actionResponse struct {
	Events    []map[string]any  `json:"events"`
	Responses []domain.BotReply `json:"responses"`
}

type errorResponse struct {
	Error      string `json:"error"`
	ActionName string `json:"action_name,omitempty"`
}

type actionInfo struct {
	Name string `json:"name"`
}

type Handler struct {
	actions ActionRunner
}

func NewHandler(actions ActionRunner) (*Handler, error) {
	if actions == nil {
		return nil, errors.New("handler: action runner must not be nil")
	}
	return &Handler{actions: actions}, nil
}

// Handle routes an API Gateway proxy request. Errors are always rendered
// into the response; the returned error is reserved for the Lambda runtime.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	corrID := headerValue(req.Headers, correlationHeader)
	if corrID == "" {
		corrID = newCorrelationID()
	}
	logger := slog.With("correlation_id", corrID)

	path := strings.TrimRight(req.Path, "/")
	switch {
	case req.HTTPMethod == http.MethodGet && strings.HasSuffix(path, "/health"):
		return respond(http.StatusOK, corrID, map[string]string{"status": "ok"}), nil
	case req.HTTPMethod == http.MethodGet && strings.HasSuffix(path, "/actions"):
		names := h.actions.Names()
		out := make([]actionInfo, 0, len(names))
		for _, n := range names {
			out = append(out, actionInfo{Name: n})
		}
		return respond(http.StatusOK, corrID, out), nil
	case req.HTTPMethod == http.MethodPost && strings.HasSuffix(path, "/webhook"):
		return h.runAction(ctx, logger, corrID, req.Body), nil
	default:
		return respond(http.StatusNotFound, corrID, errorResponse{Error: "not found"}), nil
	}
}

func (h *Handler) runAction(ctx context.Context, logger *slog.Logger, corrID, body string) events.APIGatewayProxyResponse {
	var in actionRequest
	if err := json.Unmarshal([]byte(body), &in); err != nil {
		logger.Warn("invalid action request body", "err", err)
		return respond(http.StatusBadRequest, corrID, errorResponse{Error: string(usecase.ErrorInvalidInput)})
	}

	senderID := in.SenderID
	if senderID == "" {
		senderID = in.Tracker.SenderID
	}
	out, err := h.actions.Run(ctx, usecase.ActionCall{
		NextAction: in.NextAction,
		SenderID:   senderID,
		Slots:      in.Tracker.Slots,
	})
	if err != nil {
		status, payload := mapError(in.NextAction, err)
		logger.Warn("action failed", "action", in.NextAction, "status", status, "err", err)
		return respond(status, corrID, payload)
	}

	logger.Info("action completed", "action", in.NextAction, "responses", len(out.Responses))
	return respond(http.StatusOK, corrID, actionResponse{
		Events:    nonNilEvents(out.Events),
		Responses: out.Responses,
	})
}

func mapError(action string, err error) (int, errorResponse) {
	var ucErr *usecase.Error
	if !errors.As(err, &ucErr) {
		return http.StatusInternalServerError, errorResponse{Error: string(usecase.ErrorInternal), ActionName: action}
	}
	switch ucErr.Code {
	case usecase.ErrorInvalidInput:
		return http.StatusBadRequest, errorResponse{Error: string(ucErr.Code), ActionName: action}
	case usecase.ErrorUnknownAction:
		return http.StatusNotFound, errorResponse{
			Error:      "No registered action found for name '" + action + "'.",
			ActionName: action,
		}
	default:
		return http.StatusInternalServerError, errorResponse{Error: string(usecase.ErrorInternal), ActionName: action}
	}
}

func respond(status int, corrID string, payload any) events.APIGatewayProxyResponse {
	body, err := json.Marshal(payload)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"error":"INTERNAL_ERROR"}`)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":    "application/json",
			correlationHeader: corrID,
		},
		Body: string(body),
	}
}

func headerValue(headers map[string]string, name string) string {
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func nonNilEvents(ev []map[string]any) []map[string]any {
	if ev == nil {
		return []map[string]any{}
	}
	return ev
}

var newCorrelationID = func() string {
	return uuid.NewString()
}
