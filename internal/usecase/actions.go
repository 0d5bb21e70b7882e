package usecase

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"skincare-bot/internal/domain"
	"skincare-bot/internal/routine"
)

const ActionGenerateRoutine = "action_generate_skincare_routine"

// Slot names filled by the dialogue service.
const (
	SlotSkinType   = "skin_type"
	SlotAge        = "age"
	SlotSkinIssues = "skin_issues"
)

// ActionCall is one request from the dialogue service to run a custom action.
type ActionCall struct {
	NextAction string
	SenderID   string
	Slots      map[string]any
}

// ActionResult carries the messages to utter and tracker events to apply.
type ActionResult struct {
	Events    []map[string]any
	Responses []domain.BotReply
}

type actionFunc func(ctx context.Context, call ActionCall) (ActionResult, error)

// ActionService dispatches action calls by name.
type ActionService struct {
	actions map[string]actionFunc
}

func NewActionService() *ActionService {
	return &ActionService{
		actions: map[string]actionFunc{
			ActionGenerateRoutine: generateRoutine,
		},
	}
}

// Names lists registered actions in stable order.
func (s *ActionService) Names() []string {
	names := make([]string, 0, len(s.actions))
	for name := range s.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *ActionService) Run(ctx context.Context, call ActionCall) (ActionResult, error) {
	name := strings.TrimSpace(call.NextAction)
	if name == "" {
		return ActionResult{}, newError(ErrorInvalidInput, "missing_action_name", nil)
	}
	action, ok := s.actions[name]
	if !ok {
		return ActionResult{}, newError(ErrorUnknownAction, name, nil)
	}
	return action(ctx, call)
}

func generateRoutine(_ context.Context, call ActionCall) (ActionResult, error) {
	profile := domain.NewSkinProfile(
		slotString(call.Slots, SlotSkinType),
		slotString(call.Slots, SlotAge),
		slotString(call.Slots, SlotSkinIssues),
	)
	r := routine.GenerateFor(profile)

	slog.Info("generated routine",
		"sender", call.SenderID,
		"skin_type", profile.SkinType,
		"age", profile.AgeBracket,
		"morning_steps", len(r.Morning),
		"evening_steps", len(r.Evening),
	)

	return ActionResult{
		Events:    []map[string]any{},
		Responses: []domain.BotReply{{Text: routine.FormatMessage(profile, r)}},
	}, nil
}

// slotString treats missing, null and non-text slot values as empty. List
// slots are joined so keyword matching still sees every entry.
func slotString(slots map[string]any, name string) string {
	switch v := slots[name].(type) {
	case string:
		return v
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				parts = append(parts, strings.TrimSpace(s))
			}
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}
