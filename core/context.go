package core

import (
	"slices"

	"github.com/hupe1980/nanoagent/password"
)

// Verdict is the Tester's binary judgment.
type Verdict string

// Verdict values.
const (
	VerdictPass Verdict = "PASS"
	VerdictFail Verdict = "FAIL"
)

// Implementation is the Implementer's contribution to the context.
type Implementation struct {
	Config   password.Options `json:"config"`
	Password string           `json:"password"`
	Notes    string           `json:"notes"`
}

// TestResults is the Tester's contribution to the context. Strength is nil
// and Reason is set when there was nothing to test.
type TestResults struct {
	PasswordTested  string           `json:"password_tested,omitempty"`
	Strength        *password.Report `json:"strength,omitempty"`
	Verdict         Verdict          `json:"verdict"`
	Reason          string           `json:"reason,omitempty"`
	Recommendations []string         `json:"recommendations,omitempty"`
}

// AgentContext is the single unit of shared state of one pipeline run.
//
// Fields are populated strictly in pipeline order: Plan by the Planner,
// Implementation by the Implementer, TestResults by the Tester and
// FinalResponse by the orchestrator. A stage owns the context exclusively
// while it runs, so no locking is performed.
type AgentContext struct {
	userRequest string
	history     []AgentMessage

	Plan           string
	Implementation *Implementation
	TestResults    *TestResults
	FinalResponse  string
}

// NewAgentContext creates the context for a user request.
func NewAgentContext(userRequest string) *AgentContext {
	return &AgentContext{userRequest: userRequest}
}

// UserRequest returns the request the run was created for.
func (c *AgentContext) UserRequest() string { return c.userRequest }

// HasPlan reports whether the Planner produced a non-empty plan.
func (c *AgentContext) HasPlan() bool { return c.Plan != "" }

// AddMessage appends a handoff message to the history.
func (c *AgentContext) AddMessage(m AgentMessage) {
	c.history = append(c.history, m)
}

// History returns a copy of the handoff history in append order.
func (c *AgentContext) History() []AgentMessage {
	return slices.Clone(c.history)
}
