// Package flow provides the single-agent execution flows of nanoagent.
//
// Single sends one request and returns the model's text. ToolLoop advertises
// the password tools, executes the calls the model emits and feeds their
// results back until the model answers without tool calls or the iteration
// cap is reached. Both flows write a human readable transcript to an optional
// io.Writer and structured records to a logging.Logger.
package flow

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/hupe1980/nanoagent/core"
	"github.com/hupe1980/nanoagent/logging"
)

// DefaultMaxIterations bounds the tool-calling loop.
const DefaultMaxIterations = 5

// Flow runs one user prompt to a final answer.
type Flow interface {
	Run(ctx context.Context, prompt string) (*Result, error)
}

// ToolCallRecord pairs an executed call with its rendered result.
type ToolCallRecord struct {
	Call   core.FunctionCall
	Result string
}

// Result is the outcome of a flow run.
type Result struct {
	// Text is the final assistant answer, empty when the iteration cap was hit.
	Text string
	// Iterations counts model requests.
	Iterations int
	// Calls lists every executed tool call in execution order.
	Calls []ToolCallRecord
	// Contents is the full conversation sent in the last request plus the final answer.
	Contents []core.Content
	// Exhausted reports that the loop stopped at the iteration cap.
	Exhausted bool
}

// Options configure a flow.
type Options struct {
	// Instructions is the system prompt.
	Instructions string
	// MaxTokens caps each completion; 0 keeps the model default.
	MaxTokens int
	// MaxIterations bounds the tool loop; values < 1 select DefaultMaxIterations.
	MaxIterations int
	// Logger receives structured records; NoOpLogger when nil.
	Logger logging.Logger
	// Transcript receives the console transcript; discarded when nil.
	Transcript io.Writer
	// Executor runs tool calls; a sequential executor when nil.
	Executor FunctionExecutor
}

func (o *Options) normalize() {
	if o.Logger == nil {
		o.Logger = logging.NoOpLogger{}
	}
	if o.Transcript == nil {
		o.Transcript = io.Discard
	}
	if o.MaxIterations < 1 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.Executor == nil {
		o.Executor = NewFunctionExecutor(FunctionExecutorConfig{})
	}
}

// Rule is the horizontal rule used by transcripts.
func Rule(ch string) string { return strings.Repeat(ch, 60) }

// Banner writes the framed title that opens and closes every transcript.
func Banner(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n%s\n%s\n", Rule("="), title, Rule("="))
}

// Truncate shortens s to n runes followed by "..." when longer.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
