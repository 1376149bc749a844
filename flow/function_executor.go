package flow

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/hupe1980/nanoagent/core"
	"github.com/hupe1980/nanoagent/logging"
	"github.com/hupe1980/nanoagent/tool"
)

// FunctionExecutor executes a batch of function/tool calls and returns one
// response per call in the original order. Implementations must:
//   - Never panic (recover internally and report an error-kind result)
//   - Return exactly one FunctionResponse per incoming FunctionCall
//   - Stop executing further calls once ctx is canceled
type FunctionExecutor interface {
	Execute(ctx context.Context, agentName string, registry *tool.Registry, fnCalls []core.FunctionCall, logger logging.Logger) []core.FunctionResponse
}

// FunctionExecutorConfig configures the default executor.
type FunctionExecutorConfig struct {
	LogStartEvents bool // log a start line per function
}

// sequentialFunctionExecutor is the default implementation. Calls run one at a
// time in the order the model issued them.
type sequentialFunctionExecutor struct {
	cfg FunctionExecutorConfig
}

// NewFunctionExecutor constructs a new executor with the given config.
func NewFunctionExecutor(cfg FunctionExecutorConfig) FunctionExecutor {
	return &sequentialFunctionExecutor{cfg: cfg}
}

func (e *sequentialFunctionExecutor) Execute(
	ctx context.Context,
	agentName string,
	registry *tool.Registry,
	fnCalls []core.FunctionCall,
	logger logging.Logger,
) []core.FunctionResponse {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}

	responses := make([]core.FunctionResponse, 0, len(fnCalls))
	batchStart := time.Now()

	for _, fc := range fnCalls {
		if err := ctx.Err(); err != nil {
			responses = append(responses, core.FunctionResponse{
				ID:       fc.ID,
				Name:     fc.Name,
				Response: tool.ExecutionErrorResult(fc.Name, err),
			})
			continue
		}

		if e.cfg.LogStartEvents {
			logger.Info("agent.function.start", "agent", agentName, "function", fc.Name, "function_call_id", fc.ID)
		}

		start := time.Now()
		var result string
		func() { // panic safety
			defer func() {
				if r := recover(); r != nil {
					result = tool.ExecutionErrorResult(fc.Name, panicError(r))
					logger.Error("agent.function.panic", "agent", agentName, "function", fc.Name, "recover", r)
				}
			}()
			toolCtx := core.NewToolContext(ctx, agentName, fc.ID, logger)
			result = executeTool(registry, toolCtx, fc.Name, fc.Arguments)
		}()

		logger.Info(
			"agent.function.executed",
			"agent", agentName,
			"function", fc.Name,
			"duration_ms", time.Since(start).Milliseconds(),
		)

		responses = append(responses, core.FunctionResponse{ID: fc.ID, Name: fc.Name, Response: result})
	}

	logger.Debug(
		"agent.functions.batch.complete",
		"agent", agentName,
		"count", len(fnCalls),
		"duration_ms", time.Since(batchStart).Milliseconds(),
	)

	return responses
}

// panicError converts a recovered panic value to an error.
func panicError(r any) error { return &panicErr{val: r, stack: debug.Stack()} }

type panicErr struct {
	val   any
	stack []byte
}

func (p *panicErr) Error() string { return fmt.Sprintf("panic recovered: %v", p.val) }

// executeTool centralizes argument decoding, tool lookup and execution.
func executeTool(registry *tool.Registry, toolCtx *core.ToolContext, toolName, args string) string {
	if _, ok := registry.Get(toolName); !ok {
		return tool.UnknownToolResult(toolName)
	}

	argMap := map[string]any{}
	if args != "" {
		if err := json.Unmarshal([]byte(args), &argMap); err != nil {
			return tool.ExecutionErrorResult(toolName, &tool.ToolError{
				Tool:    toolName,
				Message: fmt.Sprintf("invalid arguments: %v", err),
				Code:    tool.CodeInvalidArguments,
			})
		}
	}

	return registry.Execute(toolCtx, toolName, argMap)
}
