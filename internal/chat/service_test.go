package chat_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ainavigator/navigator-server/internal/assessment"
	"github.com/ainavigator/navigator-server/internal/chat"
	"github.com/ainavigator/navigator-server/internal/chat/mocks"
)

func heatmapFixture(t *testing.T) *assessment.HeatmapResult {
	t.Helper()
	result := assessment.CalculateSentimentHeatmap([]assessment.SentimentRespondent{
		{Scores: map[assessment.SentimentField]float64{
			"sentiment_1": 1.2,
			"sentiment_2": 1.8,
		}},
	}, assessment.Filters{})
	return &result
}

func TestRespond(t *testing.T) {
	var captured openai.ChatCompletionRequest
	client := &mocks.MockCompletionClient{
		CreateChatCompletionFunc: func(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
			captured = req
			return openai.ChatCompletionResponse{
				Choices: []openai.ChatCompletionChoice{
					{Message: openai.ChatCompletionMessage{Content: "On it. [ACTION:navigate:dashboard]"}},
				},
				Usage: openai.Usage{TotalTokens: 321},
			}, nil
		},
	}
	svc := chat.NewService(client, "gpt-4o", zap.NewNop())

	resp, err := svc.Respond(context.Background(), chat.Request{
		Message: "take me to the dashboard",
		Context: chat.Context{CurrentPage: "/dashboard", Sentiment: heatmapFixture(t)},
	})
	require.NoError(t, err)

	assert.Equal(t, "On it.", resp.Message)
	require.Len(t, resp.Actions, 1)
	assert.Equal(t, chat.ActionNavigate, resp.Actions[0].Type)
	assert.Equal(t, 321, resp.TokensUsed)
	assert.InDelta(t, 0.7, resp.Confidence, 1e-9)
	assert.NotEmpty(t, resp.Suggestions)

	// system prompt, context message, data summary, then the user turn
	require.Len(t, captured.Messages, 4)
	assert.Equal(t, openai.ChatMessageRoleSystem, captured.Messages[0].Role)
	assert.Contains(t, captured.Messages[1].Content, "CURRENT SESSION CONTEXT")
	assert.Contains(t, captured.Messages[2].Content, "DATA INSIGHTS SUMMARY")
	assert.Equal(t, "take me to the dashboard", captured.Messages[3].Content)
	assert.Equal(t, float32(0.7), captured.Temperature)
	assert.Equal(t, 2500, captured.MaxTokens)
	assert.False(t, captured.Stream)
}

func TestRespondWithoutDataSkipsSummary(t *testing.T) {
	var captured openai.ChatCompletionRequest
	client := &mocks.MockCompletionClient{
		CreateChatCompletionFunc: func(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
			captured = req
			return openai.ChatCompletionResponse{
				Choices: []openai.ChatCompletionChoice{
					{Message: openai.ChatCompletionMessage{Content: "Upload data first."}},
				},
			}, nil
		},
	}
	svc := chat.NewService(client, "", zap.NewNop())

	resp, err := svc.Respond(context.Background(), chat.Request{Message: "what do we know?"})
	require.NoError(t, err)
	assert.Empty(t, resp.Actions)
	assert.InDelta(t, 0.5, resp.Confidence, 1e-9)

	require.Len(t, captured.Messages, 3)
	for _, m := range captured.Messages {
		assert.NotContains(t, m.Content, "DATA INSIGHTS SUMMARY")
	}
}

func TestRespondTrimsHistory(t *testing.T) {
	var captured openai.ChatCompletionRequest
	client := &mocks.MockCompletionClient{
		CreateChatCompletionFunc: func(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
			captured = req
			return openai.ChatCompletionResponse{
				Choices: []openai.ChatCompletionChoice{
					{Message: openai.ChatCompletionMessage{Content: "ok"}},
				},
			}, nil
		},
	}
	svc := chat.NewService(client, "gpt-4o", zap.NewNop())

	history := make([]chat.Message, 40)
	for i := range history {
		history[i] = chat.Message{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("turn %d", i)}
	}

	_, err := svc.Respond(context.Background(), chat.Request{Message: "latest", History: history})
	require.NoError(t, err)

	// 2 system messages + 15 history turns + the user turn
	require.Len(t, captured.Messages, 18)
	assert.Equal(t, "turn 25", captured.Messages[2].Content)
	assert.Equal(t, "turn 39", captured.Messages[16].Content)
}

func TestRespondErrors(t *testing.T) {
	t.Run("api error is wrapped", func(t *testing.T) {
		client := &mocks.MockCompletionClient{
			CreateChatCompletionFunc: func(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
				return openai.ChatCompletionResponse{}, errors.New("rate limited")
			},
		}
		svc := chat.NewService(client, "gpt-4o", zap.NewNop())

		_, err := svc.Respond(context.Background(), chat.Request{Message: "hi"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rate limited")
	})

	t.Run("empty choices", func(t *testing.T) {
		client := &mocks.MockCompletionClient{
			CreateChatCompletionFunc: func(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
				return openai.ChatCompletionResponse{}, nil
			},
		}
		svc := chat.NewService(client, "gpt-4o", zap.NewNop())

		_, err := svc.Respond(context.Background(), chat.Request{Message: "hi"})
		assert.ErrorIs(t, err, chat.ErrNoChoices)
	})
}

func TestStream(t *testing.T) {
	stream := &mocks.ScriptedStream{Deltas: []string{"Filtering now. ", "[ACTION:filter:", "region=EU]"}}
	client := &mocks.MockCompletionClient{
		CreateChatCompletionStreamFunc: func(ctx context.Context, req openai.ChatCompletionRequest) (chat.CompletionStream, error) {
			assert.True(t, req.Stream)
			return stream, nil
		},
	}
	svc := chat.NewService(client, "gpt-4o", zap.NewNop())

	var deltas []string
	resp, err := svc.Stream(context.Background(), chat.Request{Message: "only EU please"}, func(delta string) error {
		deltas = append(deltas, delta)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Filtering now. ", "[ACTION:filter:", "region=EU]"}, deltas)
	assert.Equal(t, "Filtering now.", resp.Message)
	require.Len(t, resp.Actions, 1)
	assert.Equal(t, chat.ActionFilter, resp.Actions[0].Type)
	assert.Equal(t, "EU", resp.Actions[0].Payload["value"])
	assert.True(t, stream.Closed)
}

func TestStreamDeltaAbort(t *testing.T) {
	stream := &mocks.ScriptedStream{Deltas: []string{"a", "b", "c"}}
	client := &mocks.MockCompletionClient{
		CreateChatCompletionStreamFunc: func(ctx context.Context, req openai.ChatCompletionRequest) (chat.CompletionStream, error) {
			return stream, nil
		},
	}
	svc := chat.NewService(client, "gpt-4o", zap.NewNop())

	var seen int
	_, err := svc.Stream(context.Background(), chat.Request{Message: "hi"}, func(delta string) error {
		seen++
		if seen == 2 {
			return errors.New("client went away")
		}
		return nil
	})
	require.Error(t, err)
	assert.Equal(t, 2, seen)
	assert.True(t, stream.Closed)
}
