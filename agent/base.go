package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/hupe1980/nanoagent/core"
	"github.com/hupe1980/nanoagent/logging"
	"github.com/hupe1980/nanoagent/model"
	"github.com/hupe1980/nanoagent/password"
	"github.com/hupe1980/nanoagent/tool"
)

// ErrModelNotConfigured is returned by CallLLM when the agent is not mocked
// and has no model to delegate to.
var ErrModelNotConfigured = errors.New("agent: model not configured (set credentials or use mock mode)")

// Agent is the capability shared by the pipeline specialists.
type Agent interface {
	// Role returns the immutable role tag.
	Role() core.Role
	// SystemPrompt returns the fixed prompt used when delegating to the model.
	SystemPrompt() string
	// MockResponse returns the canned text served in mock mode.
	MockResponse() string
	// Process reads the fields owned by earlier stages, writes its own field
	// and appends a handoff message. The returned context is actx.
	Process(ctx context.Context, actx *core.AgentContext) (*core.AgentContext, error)
}

// Options configure an agent.
type Options struct {
	// Mock makes CallLLM return the canned response without a model.
	Mock bool
	// Model is the external model collaborator, required unless Mock is set.
	Model model.Model
	// MaxTokens caps each completion; 0 keeps the provider default.
	MaxTokens int
	// Temperature overrides the provider default when non-nil.
	Temperature *float64
	// Tools backs the tool invocations of Implementer and Tester; the
	// password registry over crypto/rand when nil.
	Tools *tool.Registry
	// Logger receives structured records; NoOpLogger when nil.
	Logger logging.Logger
	// Transcript receives the "  [ROLE] message" console lines; discarded when nil.
	Transcript io.Writer
}

func newOptions(optFns []func(o *Options)) Options {
	var opts Options
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	if opts.Transcript == nil {
		opts.Transcript = io.Discard
	}
	if opts.Tools == nil {
		opts.Tools = tool.NewPasswordRegistry(password.Generator{})
	}
	return opts
}

// BaseAgent holds the identity and collaborators common to all agents. Embed
// it and implement Process to satisfy Agent.
type BaseAgent struct {
	role         core.Role
	systemPrompt string
	mockResponse string
	opts         Options
	logger       logging.Logger
}

// NewBaseAgent constructs a BaseAgent. The logger is scoped with
// component=<role>.
func NewBaseAgent(role core.Role, systemPrompt, mockResponse string, optFns ...func(o *Options)) BaseAgent {
	opts := newOptions(optFns)
	return BaseAgent{
		role:         role,
		systemPrompt: systemPrompt,
		mockResponse: mockResponse,
		opts:         opts,
		logger:       logging.With(opts.Logger, "component", role.String()),
	}
}

// Role returns the role tag.
func (b *BaseAgent) Role() core.Role { return b.role }

// SystemPrompt returns the fixed system prompt.
func (b *BaseAgent) SystemPrompt() string { return b.systemPrompt }

// MockResponse returns the canned mock-mode text.
func (b *BaseAgent) MockResponse() string { return b.mockResponse }

// IsMock reports whether the agent runs without a model.
func (b *BaseAgent) IsMock() bool { return b.opts.Mock }

// Logger returns the role scoped logger.
func (b *BaseAgent) Logger() logging.Logger { return b.logger }

// CallLLM sends the system prompt plus contents to the model and returns the
// answer text. In mock mode the canned response is returned and no external
// service is contacted.
func (b *BaseAgent) CallLLM(ctx context.Context, contents []core.Content) (string, error) {
	if b.opts.Mock {
		b.logger.Debug("agent.llm.mock", "role", b.role.String())
		return b.mockResponse, nil
	}
	if b.opts.Model == nil {
		return "", ErrModelNotConfigured
	}

	start := time.Now()
	b.logger.Info("agent.llm.call", "model", b.opts.Model.Info().Name, "messages", len(contents)+1)

	resp, err := model.Collect(ctx, b.opts.Model, model.Request{
		Instructions: b.systemPrompt,
		Contents:     contents,
		MaxTokens:    b.opts.MaxTokens,
		Temperature:  b.opts.Temperature,
	})
	if err != nil {
		b.logger.Error("agent.llm.error", "error", err.Error())
		return "", fmt.Errorf("%s: model call failed: %w", b.role, err)
	}

	b.logger.Info("agent.llm.done", "duration_ms", time.Since(start).Milliseconds())

	return resp.Content.Text(), nil
}

// Log writes "  [ROLE] message" to the transcript and a structured record to
// the logger. It never touches the context.
func (b *BaseAgent) Log(message string) {
	fmt.Fprintf(b.opts.Transcript, "  [%s] %s\n", b.role.Label(), message)
	b.logger.Info("agent.log", "message", message)
}

// callTool runs a registered tool with the agent's role as caller.
func (b *BaseAgent) callTool(ctx context.Context, name string, args map[string]any) (any, error) {
	t, ok := b.opts.Tools.Get(name)
	if !ok {
		return nil, tool.NewToolError(name, fmt.Sprintf("unknown tool '%s'", name), tool.CodeUnknownTool)
	}
	return t.Call(core.NewToolContext(ctx, b.role.String(), model.NewCallID(), b.logger), args)
}

// MaskPassword keeps the first four characters and replaces the rest with
// '*'. Passwords of four characters or fewer are returned unchanged.
func MaskPassword(pw string) string {
	r := []rune(pw)
	if len(r) <= 4 {
		return pw
	}
	masked := make([]rune, len(r))
	copy(masked, r[:4])
	for i := 4; i < len(r); i++ {
		masked[i] = '*'
	}
	return string(masked)
}
