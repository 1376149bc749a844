package core

import (
	"context"

	"github.com/hupe1980/nanoagent/logging"
)

// ToolContext provides a constrained surface for tool implementations: the
// caller's context.Context for cancellation, the function call identifier
// correlating model request and tool execution, and a logger.
type ToolContext struct {
	ctx            context.Context
	functionCallID string
	agentName      string
	logger         logging.Logger
}

// NewToolContext constructs a tool context. A nil logger is replaced by a
// NoOpLogger.
func NewToolContext(ctx context.Context, agentName, functionCallID string, logger logging.Logger) *ToolContext {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &ToolContext{
		ctx:            ctx,
		functionCallID: functionCallID,
		agentName:      agentName,
		logger:         logger,
	}
}

// Context returns the context associated with the tool invocation.
func (tc *ToolContext) Context() context.Context { return tc.ctx }

// FunctionCallID returns the function call ID associated with the tool invocation.
func (tc *ToolContext) FunctionCallID() string { return tc.functionCallID }

// AgentName returns the name of the agent or flow executing the tool.
func (tc *ToolContext) AgentName() string { return tc.agentName }

// Logger returns the logger associated with the tool invocation.
func (tc *ToolContext) Logger() logging.Logger { return tc.logger }
