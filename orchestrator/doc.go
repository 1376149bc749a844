// Package orchestrator runs the Level 3 pipeline: Planner, Implementer and
// Tester over one shared core.AgentContext, strictly in that order.
//
// The orchestrator is a fixed state machine
//
//	PLANNING -> IMPLEMENTING -> TESTING -> DONE
//
// with no branching, retries or skipping. A stage that leaves its field
// unset is not corrected here; downstream stages handle the gap themselves
// and the final response falls back to a fixed failure text.
//
// Usage:
//
//	orch := orchestrator.New(func(o *orchestrator.Options) {
//		o.Mock = true
//		o.Transcript = os.Stdout
//	})
//	actx, err := orch.Run(ctx, "Generate a password for my bank")
//	fmt.Println(actx.FinalResponse)
package orchestrator
