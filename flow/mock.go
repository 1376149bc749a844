package flow

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/MakeNowJust/heredoc/v2"

	"github.com/hupe1980/nanoagent/core"
	"github.com/hupe1980/nanoagent/model"
	"github.com/hupe1980/nanoagent/tool"
)

// BasicMockAnswer is the canned single-shot answer used in mock mode.
var BasicMockAnswer = strings.TrimSpace(heredoc.Doc(`
	Here's a secure 16-character password: ` + "`Kj9#mPx2$vNq8&Lw`" + `

	This password includes:
	- Uppercase letters (K, P, N, L)
	- Lowercase letters (j, m, x, v, q, w)
	- Numbers (9, 2, 8)
	- Special characters (#, $, &)

	The password has high entropy and would take centuries to crack with current technology.
`))

// Mock scenarios of the tool-calling flow.
const (
	ScenarioGenerate = "generate"
	ScenarioCheck    = "check"
)

type toolScenario struct {
	call  core.FunctionCall
	final string
}

var toolScenarios = map[string]toolScenario{
	ScenarioGenerate: {
		call: core.FunctionCall{
			ID:        "call_001",
			Name:      tool.GeneratePasswordName,
			Arguments: `{"length": 16, "include_uppercase": true, "include_lowercase": true, "include_numbers": true, "include_symbols": true}`,
		},
		final: strings.TrimSpace(heredoc.Doc(`
			Here's your secure password: ` + "`{tool_result}`" + `

			**Password Analysis:**
			- Length: 16 characters ✓
			- Contains uppercase letters ✓
			- Contains lowercase letters ✓
			- Contains numbers ✓
			- Contains special symbols ✓

			This password has high entropy and would take centuries to crack with current brute-force methods.
		`)),
	},
	ScenarioCheck: {
		call: core.FunctionCall{
			ID:        "call_002",
			Name:      tool.CheckPasswordStrengthName,
			Arguments: `{"password": "password123"}`,
		},
		final: strings.TrimSpace(heredoc.Doc(`
			**Password Strength Analysis:**

			{tool_result}

			**Recommendations:**
			1. Add uppercase letters (A-Z)
			2. Add special symbols (!@#$%^&*)
			3. Increase length to at least 16 characters
			4. Avoid common words like "password"

			Would you like me to generate a stronger password for you?
		`)),
	},
}

// MockScenario picks "check" when prompt mentions checking, else "generate".
func MockScenario(prompt string) string {
	if strings.Contains(strings.ToLower(prompt), "check") {
		return ScenarioCheck
	}
	return ScenarioGenerate
}

// NewBasicMockModel returns a model that previews the request on w and
// answers with BasicMockAnswer.
func NewBasicMockModel(w io.Writer) model.Model {
	if w == nil {
		w = io.Discard
	}
	return &previewModel{
		next: func(req model.Request) model.Response {
			fmt.Fprint(w, "\n[MOCK MODE] Would send to LLM:\n")
			fmt.Fprintf(w, "  System: %s\n", firstSentence(req.Instructions))
			if n := len(req.Contents); n > 0 {
				fmt.Fprintf(w, "  User: %s\n", req.Contents[n-1].Text())
			}
			fmt.Fprintln(w)
			return model.TextResponse(BasicMockAnswer)
		},
	}
}

// NewToolMockModel returns a scripted model for the tool-calling flow. The
// first request is answered with the scenario's tool call; later requests get
// the scenario's final text with the first tool result substituted.
func NewToolMockModel(prompt string, w io.Writer) model.Model {
	if w == nil {
		w = io.Discard
	}
	sc := toolScenarios[MockScenario(prompt)]
	first := true

	return &previewModel{
		next: func(req model.Request) model.Response {
			if first {
				first = false
				names := make([]string, 0, len(req.Tools))
				for _, t := range req.Tools {
					names = append(names, t.Function.Name)
				}
				fmt.Fprint(w, "\n[MOCK MODE] Would send to LLM with tools:\n")
				fmt.Fprintf(w, "  Messages: %d messages\n", len(req.Contents)+1)
				fmt.Fprintf(w, "  Tools: %s\n", strings.Join(names, ", "))
				return model.ToolCallResponse(sc.call)
			}
			return model.TextResponse(strings.ReplaceAll(sc.final, "{tool_result}", firstToolResult(req.Contents)))
		},
	}
}

func firstToolResult(contents []core.Content) string {
	for _, c := range contents {
		if frs := c.FunctionResponses(); len(frs) > 0 {
			return frs[0].Response
		}
	}
	return ""
}

func firstSentence(s string) string {
	if i := strings.Index(s, ". "); i >= 0 {
		return s[:i+1]
	}
	return s
}

// previewModel answers every request synchronously via next.
type previewModel struct {
	mu   sync.Mutex
	next func(req model.Request) model.Response
}

func (m *previewModel) Generate(ctx context.Context, req model.Request) (<-chan model.Response, <-chan error) {
	respCh := make(chan model.Response, 1)
	errCh := make(chan error, 1)
	defer close(respCh)
	defer close(errCh)

	if err := ctx.Err(); err != nil {
		errCh <- err
		return respCh, errCh
	}

	m.mu.Lock()
	respCh <- m.next(req)
	m.mu.Unlock()

	return respCh, errCh
}

func (m *previewModel) Info() model.Info {
	return model.Info{Name: "mock", Provider: "mock", SupportsTools: true}
}
