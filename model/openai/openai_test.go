package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/nanoagent/core"
	"github.com/hupe1980/nanoagent/model"
)

const toolCallCompletion = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1,
  "model": "gpt-4.1-mini",
  "choices": [{
    "index": 0,
    "finish_reason": "tool_calls",
    "message": {
      "role": "assistant",
      "content": null,
      "tool_calls": [{
        "id": "call_001",
        "type": "function",
        "function": {"name": "generate_password", "arguments": "{\"length\": 16}"}
      }]
    }
  }],
  "usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
}`

func newTestServer(t *testing.T, body string, captured *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(raw, captured))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestModel_GenerateToolCall(t *testing.T) {
	var captured map[string]any
	srv := newTestServer(t, toolCallCompletion, &captured)

	m := NewModel(func(o *Options) {
		o.APIKey = "test-key"
		o.BaseURL = srv.URL
	})

	maxTokens := 500
	resp, err := model.Collect(context.Background(), m, model.Request{
		Instructions: "You are a helpful password generator assistant.",
		Contents:     []core.Content{core.NewTextContent(core.RoleUser, "Generate a password")},
		Tools: []model.ToolDefinition{
			model.NewFunctionDefinition("generate_password", "Generate a password", map[string]any{"type": "object"}),
		},
		MaxTokens: maxTokens,
	})
	require.NoError(t, err)

	calls := resp.Content.FunctionCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, core.FunctionCall{ID: "call_001", Name: "generate_password", Arguments: `{"length": 16}`}, calls[0])
	assert.Equal(t, "tool_calls", resp.FinishReason)
	require.NotNil(t, resp.Usage)
	assert.Equal(t, 15, resp.Usage.TotalTokens)

	assert.Equal(t, DefaultModel, captured["model"])
	assert.EqualValues(t, maxTokens, captured["max_tokens"])
	msgs := captured["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "user", msgs[1].(map[string]any)["role"])
	tools := captured["tools"].([]any)
	require.Len(t, tools, 1)
}

func TestBuildMessages_ToolResultsFollowCalls(t *testing.T) {
	req := model.Request{
		Contents: []core.Content{
			core.NewTextContent(core.RoleUser, "go"),
			{Role: core.RoleAssistant, Parts: []core.Part{
				core.FunctionCallPart{FunctionCall: core.FunctionCall{ID: "a", Name: "generate_password", Arguments: "{}"}},
				core.FunctionCallPart{FunctionCall: core.FunctionCall{ID: "b", Name: "check_password_strength", Arguments: "{}"}},
			}},
			core.NewFunctionResponseContent("a", "generate_password", "pw"),
			core.NewFunctionResponseContent("b", "check_password_strength", "{}"),
		},
	}

	responses, order := collectToolResponses(req)
	assert.Equal(t, []string{"a", "b"}, order)

	msgs := buildMessages(req, responses, order)
	require.Len(t, msgs, 4)
	assert.NotNil(t, msgs[0].OfUser)
	assert.NotNil(t, msgs[1].OfAssistant)
	require.NotNil(t, msgs[2].OfTool)
	assert.Equal(t, "a", msgs[2].OfTool.ToolCallID)
	require.NotNil(t, msgs[3].OfTool)
	assert.Equal(t, "b", msgs[3].OfTool.ToolCallID)
}

func TestModel_Info(t *testing.T) {
	m := NewModel(func(o *Options) { o.Model = "gpt-x"; o.APIKey = "k" })
	assert.Equal(t, model.Info{Name: "gpt-x", Provider: "openai", SupportsTools: true}, m.Info())
}
