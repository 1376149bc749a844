package tool

import (
	"encoding/json"
	"fmt"

	"github.com/hupe1980/nanoagent/core"
)

// Registry holds tools by name and remembers registration order so tool
// definitions are advertised to the model deterministically.
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry creates a registry containing tools.
func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		r.Register(t)
	}
	return r
}

// Register adds t, replacing any tool with the same name.
func (r *Registry) Register(t Tool) {
	if _, exists := r.tools[t.Name()]; !exists {
		r.order = append(r.order, t.Name())
	}
	r.tools[t.Name()] = t
}

// Get looks up a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Tools returns the registered tools in registration order.
func (r *Registry) Tools() []Tool {
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Execute runs the named tool and renders the outcome as the result string
// handed back to the model. Failures never abort the caller; they surface as
// "Error: ..." text so the conversation can continue.
func (r *Registry) Execute(toolCtx *core.ToolContext, name string, args map[string]any) string {
	t, ok := r.Get(name)
	if !ok {
		return UnknownToolResult(name)
	}

	result, err := t.Call(toolCtx, args)
	if err != nil {
		return ExecutionErrorResult(name, err)
	}

	return FormatResult(result)
}

// UnknownToolResult is the result string for a call naming an unregistered tool.
func UnknownToolResult(name string) string {
	return fmt.Sprintf("Error: Unknown tool '%s'", name)
}

// ExecutionErrorResult is the result string for a failed tool call.
func ExecutionErrorResult(name string, err error) string {
	return fmt.Sprintf("Error executing %s: %s", name, ErrorMessage(err))
}

// FormatResult renders a tool result: strings verbatim, everything else as JSON.
func FormatResult(result any) string {
	switch v := result.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Sprint(result)
	}
	return string(raw)
}
