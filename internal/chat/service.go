// Package chat provides the conversational assistant: prompt construction
// from assessment results, OpenAI completion calls, and parsing of in-band
// action markers out of the model's replies.
package chat

import (
	"context"
	"errors"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const (
	historyLimit = 15

	temperature      = 0.7
	maxTokens        = 2500
	presencePenalty  = 0.6
	frequencyPenalty = 0.3
)

// ErrNoChoices reports a completion response without any choices.
var ErrNoChoices = errors.New("completion returned no choices")

// Message is one turn of the conversation history.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request carries one user turn plus its session context.
type Request struct {
	Message string    `json:"message"`
	History []Message `json:"history,omitempty"`
	Context Context   `json:"-"`
}

// Response is the assistant's reply with extracted metadata.
type Response struct {
	Message     string   `json:"message"`
	Actions     []Action `json:"actions,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
	Confidence  float64  `json:"confidence"`
	TokensUsed  int      `json:"tokensUsed,omitempty"`
}

// CompletionStream yields streamed completion chunks until io.EOF.
type CompletionStream interface {
	Recv() (openai.ChatCompletionStreamResponse, error)
	Close() error
}

// CompletionClient is the slice of the OpenAI API the chat service uses.
type CompletionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
	CreateChatCompletionStream(ctx context.Context, req openai.ChatCompletionRequest) (CompletionStream, error)
}

type openAIClient struct {
	inner *openai.Client
}

func (c openAIClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return c.inner.CreateChatCompletion(ctx, req)
}

func (c openAIClient) CreateChatCompletionStream(ctx context.Context, req openai.ChatCompletionRequest) (CompletionStream, error) {
	return c.inner.CreateChatCompletionStream(ctx, req)
}

// Service runs assistant conversations against a completion backend.
type Service struct {
	client CompletionClient
	model  string
	logger *zap.Logger
}

// NewService creates a chat service on an injected completion client.
func NewService(client CompletionClient, model string, logger *zap.Logger) *Service {
	if client == nil {
		panic("client must not be nil")
	}
	if model == "" {
		model = openai.GPT4o
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}
	return &Service{client: client, model: model, logger: logger}
}

// NewOpenAIService creates a chat service backed by the OpenAI API.
func NewOpenAIService(apiKey, model string, logger *zap.Logger) *Service {
	return NewService(openAIClient{inner: openai.NewClient(apiKey)}, model, logger)
}

// Respond runs one completion turn and extracts actions, suggestions and a
// confidence estimate from the reply.
func (s *Service) Respond(ctx context.Context, req Request) (Response, error) {
	resp, err := s.client.CreateChatCompletion(ctx, s.completionRequest(req, false))
	if err != nil {
		return Response{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Response{}, ErrNoChoices
	}

	content := resp.Choices[0].Message.Content
	out := s.buildResponse(req, content)
	out.TokensUsed = resp.Usage.TotalTokens

	s.logger.Info("chat turn completed",
		zap.Int("tokens", out.TokensUsed),
		zap.Int("actions", len(out.Actions)))

	return out, nil
}

// Stream runs one completion turn, forwarding each content delta to onDelta
// as it arrives. The returned Response carries the full reply and the same
// metadata Respond extracts; onDelta returning an error aborts the stream.
func (s *Service) Stream(ctx context.Context, req Request, onDelta func(delta string) error) (Response, error) {
	stream, err := s.client.CreateChatCompletionStream(ctx, s.completionRequest(req, true))
	if err != nil {
		return Response{}, fmt.Errorf("open chat stream: %w", err)
	}
	defer stream.Close()

	var full []byte
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Response{}, fmt.Errorf("read chat stream: %w", err)
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		full = append(full, delta...)
		if err := onDelta(delta); err != nil {
			return Response{}, fmt.Errorf("forward chat delta: %w", err)
		}
	}

	return s.buildResponse(req, string(full)), nil
}

// buildResponse strips the action markers out of the displayed message;
// the parsed actions carry them structurally.
func (s *Service) buildResponse(req Request, content string) Response {
	return Response{
		Message:     StripActions(content),
		Actions:     ParseActions(content),
		Suggestions: req.Context.SmartSuggestions(req.Message),
		Confidence:  req.Context.Confidence(),
	}
}

func (s *Service) completionRequest(req Request, stream bool) openai.ChatCompletionRequest {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.History)+4)
	messages = append(messages,
		openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
		openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.Context.ContextMessage()},
	)
	if summary := req.Context.DataSummary(); summary != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: summary,
		})
	}

	history := req.History
	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}
	for _, m := range history {
		messages = append(messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Message,
	})

	return openai.ChatCompletionRequest{
		Model:            s.model,
		Messages:         messages,
		Temperature:      temperature,
		MaxTokens:        maxTokens,
		PresencePenalty:  presencePenalty,
		FrequencyPenalty: frequencyPenalty,
		Stream:           stream,
	}
}
