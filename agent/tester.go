package agent

import (
	"context"
	"fmt"

	"github.com/hupe1980/nanoagent/core"
	"github.com/hupe1980/nanoagent/password"
	"github.com/hupe1980/nanoagent/tool"
)

// NoPasswordReason is the FAIL reason when nothing was generated.
const NoPasswordReason = "No password generated"

// Tester validates the generated password and issues the verdict.
type Tester struct {
	BaseAgent
}

// NewTester creates a Tester.
func NewTester(optFns ...func(o *Options)) *Tester {
	return &Tester{BaseAgent: NewBaseAgent(core.RoleTester, TesterPrompt, TesterMockResponse, optFns...)}
}

// VerdictFor maps a strength label to the verdict: PASS for strong and
// very_strong, FAIL otherwise.
func VerdictFor(s password.Strength) core.Verdict {
	if s == password.StrengthStrong || s == password.StrengthVeryStrong {
		return core.VerdictPass
	}
	return core.VerdictFail
}

// Process writes actx.TestResults. Without an implementation it records a
// FAIL verdict and returns without a handoff message.
func (t *Tester) Process(ctx context.Context, actx *core.AgentContext) (*core.AgentContext, error) {
	t.Log("Validating generated password...")

	if actx.Implementation == nil {
		t.Log("ERROR: No implementation to test!")
		actx.TestResults = &core.TestResults{
			Verdict: core.VerdictFail,
			Reason:  NoPasswordReason,
		}
		return actx, nil
	}

	report, err := t.check(ctx, actx.Implementation.Password)
	if err != nil {
		return actx, err
	}

	results := &core.TestResults{
		PasswordTested:  MaskPassword(actx.Implementation.Password),
		Strength:        &report,
		Verdict:         VerdictFor(report.Strength),
		Recommendations: report.Recommendations,
	}
	actx.TestResults = results
	actx.AddMessage(core.NewAgentMessage(
		core.RoleTester,
		core.RoleCoordinator,
		fmt.Sprintf("Validation complete. Verdict: %s", results.Verdict),
		map[string]any{"test_results": *results},
	))

	t.Log(fmt.Sprintf("Validation complete. Strength: %s, Verdict: %s", report.Strength, results.Verdict))

	return actx, nil
}

func (t *Tester) check(ctx context.Context, pw string) (password.Report, error) {
	out, err := t.callTool(ctx, tool.CheckPasswordStrengthName, map[string]any{"password": pw})
	if err != nil {
		return password.Report{}, fmt.Errorf("%s: %w", tool.CheckPasswordStrengthName, err)
	}

	report, ok := out.(password.Report)
	if !ok {
		return password.Report{}, fmt.Errorf("unexpected %s result %T", tool.CheckPasswordStrengthName, out)
	}
	return report, nil
}
