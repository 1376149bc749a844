package flow

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/nanoagent/core"
	"github.com/hupe1980/nanoagent/model"
	"github.com/hupe1980/nanoagent/tool"
)

// DefaultToolInstructions is the system prompt used when no instructions file is given.
const DefaultToolInstructions = "You are a helpful password generator assistant."

// DefaultToolPrompt is used by the CLI when no prompt is given.
const DefaultToolPrompt = "Generate a secure 16-character password for my email account"

const toolAgentName = "password_assistant"

// ToolLoop is the tool-calling flow.
type ToolLoop struct {
	model    model.Model
	registry *tool.Registry
	opts     Options
}

// NewToolLoop creates a tool-calling flow advertising every tool in registry.
func NewToolLoop(m model.Model, registry *tool.Registry, optFns ...func(o *Options)) *ToolLoop {
	opts := Options{
		Instructions:  DefaultToolInstructions,
		MaxIterations: DefaultMaxIterations,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	opts.normalize()
	return &ToolLoop{model: m, registry: registry, opts: opts}
}

// ToolDefinitions converts the registry into model tool descriptors.
func ToolDefinitions(registry *tool.Registry) []model.ToolDefinition {
	tools := registry.Tools()
	defs := make([]model.ToolDefinition, 0, len(tools))
	for _, t := range tools {
		defs = append(defs, model.NewFunctionDefinition(t.Name(), t.Description(), t.Parameters()))
	}
	return defs
}

// Run drives the loop: request, execute tool calls, append results, repeat.
func (f *ToolLoop) Run(ctx context.Context, prompt string) (*Result, error) {
	w := f.opts.Transcript
	logger := f.opts.Logger

	Banner(w, "NANOAGENT LEVEL 2: Agent with Tool Calling")
	fmt.Fprintf(w, "\nUser: %s\n", prompt)
	fmt.Fprint(w, "\nAgent thinking (with tools available)...\n\n")

	contents := []core.Content{core.NewTextContent(core.RoleUser, prompt)}
	defs := ToolDefinitions(f.registry)
	result := &Result{}

	for result.Iterations < f.opts.MaxIterations {
		result.Iterations++

		logger.Debug("flow.tool_loop.request", "iteration", result.Iterations, "messages", len(contents)+1)

		resp, err := model.Collect(ctx, f.model, model.Request{
			Instructions: f.opts.Instructions,
			Contents:     contents,
			Tools:        defs,
			MaxTokens:    f.opts.MaxTokens,
		})
		if err != nil {
			logger.Error("flow.tool_loop.error", "iteration", result.Iterations, "error", err.Error())
			return nil, fmt.Errorf("model call failed: %w", err)
		}

		calls := resp.Content.FunctionCalls()
		if len(calls) == 0 {
			result.Text = resp.Content.Text()
			result.Contents = append(contents, resp.Content)
			fmt.Fprintf(w, "Agent: %s\n", result.Text)
			fmt.Fprintf(w, "\n%s\n\n", Rule("="))
			return result, nil
		}

		fmt.Fprintln(w, "[Agent is using tools...]")
		for _, fc := range calls {
			fmt.Fprintf(w, "  → Calling %s(%s)\n", fc.Name, fc.Arguments)
		}

		responses := f.opts.Executor.Execute(ctx, toolAgentName, f.registry, calls, logger)

		contents = append(contents, resp.Content)
		for i, fr := range responses {
			fmt.Fprintf(w, "  ← Result: %s\n", Truncate(fr.Response, 100))
			result.Calls = append(result.Calls, ToolCallRecord{Call: calls[i], Result: fr.Response})
			contents = append(contents, core.NewFunctionResponseContent(fr.ID, fr.Name, fr.Response))
		}
	}

	logger.Warn("flow.tool_loop.max_iterations", "iterations", result.Iterations)

	result.Exhausted = true
	result.Contents = contents
	fmt.Fprintf(w, "Agent stopped after %d iterations without a final answer.\n", result.Iterations)
	fmt.Fprintf(w, "\n%s\n\n", Rule("="))

	return result, nil
}

// ToolNames lists the registry's tools for transcript previews.
func ToolNames(registry *tool.Registry) string {
	return strings.Join(registry.Names(), ", ")
}
