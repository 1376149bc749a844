package flow

import (
	"context"
	"fmt"

	"github.com/hupe1980/nanoagent/core"
	"github.com/hupe1980/nanoagent/model"
)

// BasicInstructions is the system prompt of the single-shot flow.
const BasicInstructions = "You are a helpful assistant that generates secure passwords. " +
	"Always explain the password composition and security features."

// BasicMaxTokens caps the single-shot completion.
const BasicMaxTokens = 500

// DefaultBasicPrompt is used by the CLI when no prompt is given.
const DefaultBasicPrompt = "Generate a secure password with 16 characters including uppercase, lowercase, numbers, and symbols"

// Single is the one-shot flow: one system prompt, one user prompt, one answer.
type Single struct {
	model model.Model
	opts  Options
}

// NewSingle creates a single-shot flow over m.
func NewSingle(m model.Model, optFns ...func(o *Options)) *Single {
	opts := Options{
		Instructions: BasicInstructions,
		MaxTokens:    BasicMaxTokens,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	opts.normalize()
	return &Single{model: m, opts: opts}
}

// Run sends prompt and returns the model's text.
func (f *Single) Run(ctx context.Context, prompt string) (*Result, error) {
	w := f.opts.Transcript

	Banner(w, "NANOAGENT LEVEL 1: Basic One-Shot Agent")
	fmt.Fprintf(w, "\nUser: %s\n", prompt)
	fmt.Fprint(w, "\nAgent thinking...\n\n")

	contents := []core.Content{core.NewTextContent(core.RoleUser, prompt)}

	f.opts.Logger.Info("flow.single.request", "model", f.model.Info().Name, "max_tokens", f.opts.MaxTokens)

	resp, err := model.Collect(ctx, f.model, model.Request{
		Instructions: f.opts.Instructions,
		Contents:     contents,
		MaxTokens:    f.opts.MaxTokens,
	})
	if err != nil {
		f.opts.Logger.Error("flow.single.error", "error", err.Error())
		return nil, fmt.Errorf("model call failed: %w", err)
	}

	text := resp.Content.Text()

	fmt.Fprintf(w, "Agent: %s\n", text)
	fmt.Fprintf(w, "\n%s\n\n", Rule("="))

	return &Result{
		Text:       text,
		Iterations: 1,
		Contents:   append(contents, resp.Content),
	}, nil
}
