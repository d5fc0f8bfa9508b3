package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/ainavigator/navigator-server/internal/assessment"
	"github.com/ainavigator/navigator-server/internal/chat"
)

type chatRequestBody struct {
	Message     string            `json:"message"`
	History     []chat.Message    `json:"history,omitempty"`
	CurrentPage string            `json:"currentPage,omitempty"`
	UserName    string            `json:"userName,omitempty"`
	Filters     map[string]string `json:"filters,omitempty"`
}

// chat answers one assistant turn. With ?stream=1 the reply is sent as
// server-sent events: "data:" events per delta, then one "done" event with
// the extracted metadata.
func (h *Handlers) chat(w http.ResponseWriter, r *http.Request) {
	if h.assistant == nil {
		writeError(w, http.StatusServiceUnavailable, "chat is not configured")
		return
	}

	var body chatRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), chatRequestTimeout)
	defer cancel()

	req := chat.Request{
		Message: body.Message,
		History: body.History,
		Context: h.chatContext(ctx, companyID(ctx), body),
	}

	if r.URL.Query().Get("stream") == "1" {
		h.streamChat(w, ctx, req)
		return
	}

	resp, err := h.assistant.Respond(ctx, req)
	if err != nil {
		h.handleError(w, ctx, "chat", err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) streamChat(w http.ResponseWriter, ctx context.Context, req chat.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	resp, err := h.assistant.Stream(ctx, req, func(delta string) error {
		payload, err := json.Marshal(map[string]string{"delta": delta})
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	})
	if err != nil {
		// Status line is already written; report the failure in-band.
		h.logger.Error("chat stream failed", zap.Error(err))
		fmt.Fprintf(w, "event: error\ndata: {\"error\":\"stream failed\"}\n\n")
		flusher.Flush()
		return
	}

	meta, err := json.Marshal(map[string]any{
		"actions":     resp.Actions,
		"suggestions": resp.Suggestions,
		"confidence":  resp.Confidence,
	})
	if err != nil {
		h.logger.Error("chat metadata encode failed", zap.Error(err))
		return
	}
	fmt.Fprintf(w, "event: done\ndata: %s\n\n", meta)
	flusher.Flush()
}

// chatContext assembles the prompt context from the caller's session plus a
// best-effort load of the company's current results. Analytics failures
// degrade to a data-free conversation rather than failing the turn.
func (h *Handlers) chatContext(ctx context.Context, company string, body chatRequestBody) chat.Context {
	chatCtx := chat.Context{
		CurrentPage:   body.CurrentPage,
		UserName:      body.UserName,
		Organization:  company,
		ActiveFilters: body.Filters,
	}

	filters := assessment.Filters{
		Region:     body.Filters["region"],
		Department: body.Filters["department"],
		Role:       body.Filters["role"],
		AgeGroup:   body.Filters["ageGroup"],
	}

	if heatmap, err := h.insights.SentimentOverview(ctx, company, filters); err != nil {
		h.logger.Warn("chat context: sentiment load failed", zap.Error(err))
	} else if heatmap.Stats.TotalRespondents > 0 {
		chatCtx.Sentiment = &heatmap
	}

	if capability, err := h.insights.CapabilityOverview(ctx, company, filters); err != nil {
		h.logger.Warn("chat context: capability load failed", zap.Error(err))
	} else if len(capability.Dimensions) > 0 {
		chatCtx.Capability = &capability
	}

	return chatCtx
}
