package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/hupe1980/nanoagent/core"
	"github.com/hupe1980/nanoagent/password"
	"github.com/hupe1980/nanoagent/tool"
)

// ImplementationNotes is recorded with every generated password.
const ImplementationNotes = "Generated using cryptographically secure random"

var lengthPattern = regexp.MustCompile(`(?i)length[:\s]+(\d+)`)

// Implementer executes the plan by calling the generate_password tool.
type Implementer struct {
	BaseAgent
}

// NewImplementer creates an Implementer.
func NewImplementer(optFns ...func(o *Options)) *Implementer {
	return &Implementer{BaseAgent: NewBaseAgent(core.RoleImplementer, ImplementerPrompt, ImplementerMockResponse, optFns...)}
}

// ParsePlan derives the generation options from plan text. Only the first
// "length: N" match is honored; the character classes always stay enabled.
// An empty plan or a missing match yields password.DefaultOptions. A length
// too large for an int becomes math.MaxInt so the tool rejects it.
func ParsePlan(plan string) password.Options {
	opts := password.DefaultOptions()

	m := lengthPattern.FindStringSubmatch(plan)
	if m == nil {
		return opts
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		// digits only, so the sole failure is ErrRange
		n = math.MaxInt
	}
	opts.Length = n
	return opts
}

// Process generates a password from actx.Plan and hands off to the Tester.
// When the tool rejects the derived options, Implementation stays nil and
// the handoff message carries the error.
func (i *Implementer) Process(ctx context.Context, actx *core.AgentContext) (*core.AgentContext, error) {
	i.Log("Executing implementation plan...")

	cfg := ParsePlan(actx.Plan)
	i.Log("Generating password with config: " + formatConfig(cfg))

	pw, err := i.generate(ctx, cfg)
	if err != nil {
		i.Log("Password generation failed: " + tool.ErrorMessage(err))
		actx.AddMessage(core.NewAgentMessage(
			core.RoleImplementer,
			core.RoleTester,
			"Password generation failed. Handing off to tester for validation.",
			map[string]any{"config": cfg, "error": tool.ErrorMessage(err)},
		))
		return actx, nil
	}

	impl := &core.Implementation{
		Config:   cfg,
		Password: pw,
		Notes:    ImplementationNotes,
	}
	actx.Implementation = impl
	actx.AddMessage(core.NewAgentMessage(
		core.RoleImplementer,
		core.RoleTester,
		"Password generated. Handing off to tester for validation.",
		map[string]any{"implementation": *impl},
	))

	i.Log("Password generated: " + MaskPassword(pw))
	i.Log("Handing off to Tester for validation.")

	return actx, nil
}

func (i *Implementer) generate(ctx context.Context, cfg password.Options) (string, error) {
	out, err := i.callTool(ctx, tool.GeneratePasswordName, map[string]any{
		"length":            cfg.Length,
		"include_uppercase": cfg.IncludeUppercase,
		"include_lowercase": cfg.IncludeLowercase,
		"include_numbers":   cfg.IncludeNumbers,
		"include_symbols":   cfg.IncludeSymbols,
	})
	if err != nil {
		return "", err
	}

	pw, ok := out.(string)
	if !ok {
		return "", fmt.Errorf("unexpected %s result %T", tool.GeneratePasswordName, out)
	}
	if pw == password.NoCharacterClassResult {
		return "", password.ErrNoCharacterClass
	}
	return pw, nil
}

func formatConfig(cfg password.Options) string {
	b, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Sprintf("%+v", cfg)
	}
	return string(b)
}
