package agent

import (
	"context"

	"github.com/hupe1980/nanoagent/core"
)

// Planner turns the user request into a structured plan.
type Planner struct {
	BaseAgent
}

// NewPlanner creates a Planner.
func NewPlanner(optFns ...func(o *Options)) *Planner {
	return &Planner{BaseAgent: NewBaseAgent(core.RolePlanner, PlannerPrompt, PlannerMockResponse, optFns...)}
}

// Process stores the model's plan in actx.Plan and hands off to the
// Implementer. A failed model call is returned unchanged; the context is
// left without a plan.
func (p *Planner) Process(ctx context.Context, actx *core.AgentContext) (*core.AgentContext, error) {
	p.Log("Analyzing user requirements...")

	plan, err := p.CallLLM(ctx, []core.Content{
		core.NewTextContent(core.RoleUser, "Create a plan for: "+actx.UserRequest()),
	})
	if err != nil {
		return actx, err
	}

	actx.Plan = plan
	actx.AddMessage(core.NewAgentMessage(
		core.RolePlanner,
		core.RoleImplementer,
		"Plan created. Handing off to implementer.",
		map[string]any{"plan": plan},
	))

	p.Log("Plan created. Handing off to Implementer.")

	return actx, nil
}
