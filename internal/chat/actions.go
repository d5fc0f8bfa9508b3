package chat

import (
	"context"
	"fmt"
	"strings"
)

// ActionType identifies a platform action the assistant can trigger.
type ActionType string

const (
	ActionNavigate  ActionType = "navigate"
	ActionFilter    ActionType = "filter"
	ActionQuery     ActionType = "query"
	ActionGenerate  ActionType = "generate"
	ActionVisualize ActionType = "visualize"
)

// Action is one platform action extracted from an assistant reply.
type Action struct {
	Type        ActionType        `json:"type"`
	Payload     map[string]string `json:"payload"`
	Description string            `json:"description"`
}

const (
	actionOpen  = "[ACTION:"
	actionClose = ']'
)

// ParseActions extracts [ACTION:type:payload] markers from an assistant
// reply. Unknown action types and unterminated markers are skipped; the
// surrounding text is never an error.
func ParseActions(message string) []Action {
	var actions []Action

	rest := message
	for {
		start := strings.Index(rest, actionOpen)
		if start < 0 {
			return actions
		}
		rest = rest[start+len(actionOpen):]

		end := strings.IndexByte(rest, actionClose)
		if end < 0 {
			return actions
		}
		marker := rest[:end]
		rest = rest[end+1:]

		kind, payload, ok := strings.Cut(marker, ":")
		if !ok || payload == "" {
			continue
		}
		if a, ok := buildAction(ActionType(kind), payload); ok {
			actions = append(actions, a)
		}
	}
}

func buildAction(kind ActionType, data string) (Action, bool) {
	switch kind {
	case ActionNavigate:
		return Action{
			Type:        ActionNavigate,
			Payload:     map[string]string{"page": data},
			Description: "Navigate to " + data,
		}, true
	case ActionFilter:
		name, value, ok := strings.Cut(data, "=")
		if !ok {
			return Action{}, false
		}
		return Action{
			Type:        ActionFilter,
			Payload:     map[string]string{"type": name, "value": value},
			Description: fmt.Sprintf("Filter by %s: %s", name, value),
		}, true
	case ActionGenerate:
		return Action{
			Type:        ActionGenerate,
			Payload:     map[string]string{"type": data},
			Description: "Generate " + data,
		}, true
	case ActionQuery:
		return Action{
			Type:        ActionQuery,
			Payload:     map[string]string{"query": data},
			Description: "Query " + data + " data",
		}, true
	}
	return Action{}, false
}

// StripActions removes action markers from a reply, leaving the prose.
func StripActions(message string) string {
	var b strings.Builder
	rest := message
	for {
		start := strings.Index(rest, actionOpen)
		if start < 0 {
			b.WriteString(rest)
			return strings.TrimSpace(b.String())
		}
		end := strings.IndexByte(rest[start:], actionClose)
		if end < 0 {
			b.WriteString(rest)
			return strings.TrimSpace(b.String())
		}
		b.WriteString(rest[:start])
		rest = rest[start+end+1:]
	}
}

// HandlerFunc executes one action payload.
type HandlerFunc func(ctx context.Context, payload map[string]string) error

// Handlers holds the registered executors per action type. Nil fields mean
// the action is not supported in this deployment.
type Handlers struct {
	Navigate  HandlerFunc
	Filter    HandlerFunc
	Query     HandlerFunc
	Generate  HandlerFunc
	Visualize HandlerFunc
}

func (h Handlers) forType(t ActionType) HandlerFunc {
	switch t {
	case ActionNavigate:
		return h.Navigate
	case ActionFilter:
		return h.Filter
	case ActionQuery:
		return h.Query
	case ActionGenerate:
		return h.Generate
	case ActionVisualize:
		return h.Visualize
	}
	return nil
}

// ActionResult reports the outcome of executing one action.
type ActionResult struct {
	Action  Action `json:"action"`
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ExecuteActions runs each action through its handler in order. A failing
// action does not stop the rest; the returned bool is true only when every
// action succeeded.
func ExecuteActions(ctx context.Context, actions []Action, handlers Handlers) (bool, []ActionResult) {
	results := make([]ActionResult, 0, len(actions))
	allOK := true

	for _, action := range actions {
		handler := handlers.forType(action.Type)
		if handler == nil {
			allOK = false
			results = append(results, ActionResult{
				Action:  action,
				Message: fmt.Sprintf("action %q not supported", action.Type),
			})
			continue
		}
		if err := handler(ctx, action.Payload); err != nil {
			allOK = false
			results = append(results, ActionResult{
				Action:  action,
				Message: "failed to execute: " + err.Error(),
			})
			continue
		}
		results = append(results, ActionResult{
			Action:  action,
			Success: true,
			Message: action.Description,
		})
	}

	return allOK, results
}
