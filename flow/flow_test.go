package flow

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/nanoagent/core"
	"github.com/hupe1980/nanoagent/model"
	"github.com/hupe1980/nanoagent/password"
	"github.com/hupe1980/nanoagent/tool"
)

// MockModelImpl for testing model interaction
type MockModelImpl struct{ mock.Mock }

func (m *MockModelImpl) Generate(ctx context.Context, req model.Request) (<-chan model.Response, <-chan error) {
	args := m.Called(ctx, req)

	respCh := make(chan model.Response, 1)
	errCh := make(chan error, 1)

	if err := args.Error(1); err != nil {
		errCh <- err
	} else {
		respCh <- args.Get(0).(model.Response)
	}

	close(respCh)
	close(errCh)

	return respCh, errCh
}

func (m *MockModelImpl) Info() model.Info { return model.Info{Name: "mock-impl", Provider: "mock"} }

func TestSingle_Run(t *testing.T) {
	m := &MockModelImpl{}
	m.On("Generate", mock.Anything, mock.MatchedBy(func(req model.Request) bool {
		return req.Instructions == BasicInstructions &&
			req.MaxTokens == BasicMaxTokens &&
			len(req.Contents) == 1 &&
			req.Contents[0].Text() == "make one"
	})).Return(model.TextResponse("Here you go"), nil)

	var out bytes.Buffer
	res, err := NewSingle(m, func(o *Options) { o.Transcript = &out }).Run(context.Background(), "make one")
	require.NoError(t, err)

	assert.Equal(t, "Here you go", res.Text)
	assert.Equal(t, 1, res.Iterations)
	require.Len(t, res.Contents, 2)
	assert.Contains(t, out.String(), "NANOAGENT LEVEL 1: Basic One-Shot Agent")
	assert.Contains(t, out.String(), "User: make one")
	assert.Contains(t, out.String(), "Agent: Here you go")
	m.AssertExpectations(t)
}

func TestSingle_ModelError(t *testing.T) {
	m := &MockModelImpl{}
	boom := errors.New("boom")
	m.On("Generate", mock.Anything, mock.Anything).Return(model.Response{}, boom)

	_, err := NewSingle(m).Run(context.Background(), "x")
	assert.ErrorIs(t, err, boom)
}

func TestSingle_MockMode(t *testing.T) {
	var out bytes.Buffer
	res, err := NewSingle(NewBasicMockModel(&out), func(o *Options) { o.Transcript = &out }).Run(context.Background(), "pw please")
	require.NoError(t, err)

	assert.Equal(t, BasicMockAnswer, res.Text)
	assert.Contains(t, res.Text, "Kj9#mPx2$vNq8&Lw")
	assert.Contains(t, out.String(), "[MOCK MODE] Would send to LLM:")
	assert.Contains(t, out.String(), "  System: You are a helpful assistant that generates secure passwords.\n")
	assert.Contains(t, out.String(), "  User: pw please")
}

func TestMockScenario(t *testing.T) {
	assert.Equal(t, ScenarioCheck, MockScenario("Please CHECK my password"))
	assert.Equal(t, ScenarioGenerate, MockScenario("Generate one"))
}

func TestToolLoop_MockGenerate(t *testing.T) {
	var out bytes.Buffer
	reg := tool.NewPasswordRegistry(password.Generator{})

	res, err := NewToolLoop(NewToolMockModel("Generate a password", &out), reg, func(o *Options) {
		o.Transcript = &out
	}).Run(context.Background(), "Generate a password")
	require.NoError(t, err)

	assert.Equal(t, 2, res.Iterations)
	assert.False(t, res.Exhausted)
	require.Len(t, res.Calls, 1)
	assert.Equal(t, tool.GeneratePasswordName, res.Calls[0].Call.Name)
	assert.Equal(t, "call_001", res.Calls[0].Call.ID)
	assert.Len(t, res.Calls[0].Result, 16)
	assert.Contains(t, res.Text, "Here's your secure password: `"+res.Calls[0].Result+"`")

	transcript := out.String()
	assert.Contains(t, transcript, "[MOCK MODE] Would send to LLM with tools:")
	assert.Contains(t, transcript, "  Tools: generate_password, check_password_strength, generate_multiple_passwords")
	assert.Contains(t, transcript, "[Agent is using tools...]")
	assert.Contains(t, transcript, "  → Calling generate_password(")
}

func TestToolLoop_MockCheck(t *testing.T) {
	reg := tool.NewPasswordRegistry(password.Generator{})

	res, err := NewToolLoop(NewToolMockModel("check password123", nil), reg).Run(context.Background(), "check password123")
	require.NoError(t, err)

	require.Len(t, res.Calls, 1)
	assert.Equal(t, tool.CheckPasswordStrengthName, res.Calls[0].Call.Name)
	assert.Contains(t, res.Text, `"strength":"weak"`)
	assert.Contains(t, res.Text, `"score":"2/5"`)
}

func TestToolLoop_ConversationShape(t *testing.T) {
	m := model.NewMockModel("scripted", "mock")
	m.Enqueue(
		model.ToolCallResponse(
			core.FunctionCall{ID: "a", Name: "nope", Arguments: "{}"},
			core.FunctionCall{ID: "b", Name: tool.GeneratePasswordName, Arguments: `{"length": 500}`},
			core.FunctionCall{ID: "c", Name: tool.GeneratePasswordName, Arguments: `{not json`},
		),
		model.TextResponse("done"),
	)

	res, err := NewToolLoop(m, tool.NewPasswordRegistry(password.Generator{})).Run(context.Background(), "go")
	require.NoError(t, err)
	assert.Equal(t, "done", res.Text)

	require.Len(t, res.Calls, 3)
	assert.Equal(t, "Error: Unknown tool 'nope'", res.Calls[0].Result)
	assert.True(t, strings.HasPrefix(res.Calls[1].Result, "Error executing generate_password: "), res.Calls[1].Result)
	assert.True(t, strings.HasPrefix(res.Calls[2].Result, "Error executing generate_password: invalid arguments"), res.Calls[2].Result)

	reqs := m.Requests()
	require.Len(t, reqs, 2)
	assert.Len(t, reqs[0].Tools, 3)
	assert.Equal(t, DefaultToolInstructions, reqs[1].Instructions)

	second := reqs[1].Contents
	require.Len(t, second, 5)
	assert.Equal(t, core.RoleUser, second[0].Role)
	assert.Equal(t, core.RoleAssistant, second[1].Role)
	for i, id := range []string{"a", "b", "c"} {
		frs := second[2+i].FunctionResponses()
		require.Len(t, frs, 1)
		assert.Equal(t, core.RoleTool, second[2+i].Role)
		assert.Equal(t, id, frs[0].ID)
	}
}

func TestToolLoop_IterationCap(t *testing.T) {
	m := model.NewMockModel("looping", "mock")
	for range DefaultMaxIterations + 2 {
		m.Enqueue(model.ToolCallResponse(core.FunctionCall{Name: tool.CheckPasswordStrengthName, Arguments: `{"password":"x"}`}))
	}

	res, err := NewToolLoop(m, tool.NewPasswordRegistry(password.Generator{})).Run(context.Background(), "loop")
	require.NoError(t, err)

	assert.True(t, res.Exhausted)
	assert.Equal(t, DefaultMaxIterations, res.Iterations)
	assert.Len(t, res.Calls, DefaultMaxIterations)
	assert.Empty(t, res.Text)
	assert.Len(t, m.Requests(), DefaultMaxIterations)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 3))
	assert.Equal(t, "ab...", Truncate("abc", 2))
}
