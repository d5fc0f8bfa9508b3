package mocks

import (
	"context"
	"errors"
	"io"

	openai "github.com/sashabaranov/go-openai"

	"github.com/ainavigator/navigator-server/internal/chat"
)

// MockCompletionClient is a mock implementation of the CompletionClient
// interface for testing the chat service.
type MockCompletionClient struct {
	CreateChatCompletionFunc       func(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
	CreateChatCompletionStreamFunc func(ctx context.Context, req openai.ChatCompletionRequest) (chat.CompletionStream, error)
}

// CreateChatCompletion implements the CompletionClient interface
func (m *MockCompletionClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if m.CreateChatCompletionFunc != nil {
		return m.CreateChatCompletionFunc(ctx, req)
	}
	return openai.ChatCompletionResponse{}, errors.New("CreateChatCompletionFunc not implemented")
}

// CreateChatCompletionStream implements the CompletionClient interface
func (m *MockCompletionClient) CreateChatCompletionStream(ctx context.Context, req openai.ChatCompletionRequest) (chat.CompletionStream, error) {
	if m.CreateChatCompletionStreamFunc != nil {
		return m.CreateChatCompletionStreamFunc(ctx, req)
	}
	return nil, errors.New("CreateChatCompletionStreamFunc not implemented")
}

// ScriptedStream replays a fixed sequence of content deltas and then io.EOF.
type ScriptedStream struct {
	Deltas []string
	Err    error

	next   int
	Closed bool
}

// Recv implements the CompletionStream interface
func (s *ScriptedStream) Recv() (openai.ChatCompletionStreamResponse, error) {
	if s.next >= len(s.Deltas) {
		if s.Err != nil {
			return openai.ChatCompletionStreamResponse{}, s.Err
		}
		return openai.ChatCompletionStreamResponse{}, io.EOF
	}
	delta := s.Deltas[s.next]
	s.next++
	return openai.ChatCompletionStreamResponse{
		Choices: []openai.ChatCompletionStreamChoice{
			{Delta: openai.ChatCompletionStreamChoiceDelta{Content: delta}},
		},
	}, nil
}

// Close implements the CompletionStream interface
func (s *ScriptedStream) Close() error {
	s.Closed = true
	return nil
}
