// Package agent contains the three specialist agents of the Level 3 pipeline
// and the plumbing they share.
//
// Every agent has a fixed role tag and system prompt, consumes the shared
// *core.AgentContext, mutates the field it owns and appends one handoff
// message:
//
//  1. Planner asks the model for a structured plan (Context.Plan)
//  2. Implementer derives a password configuration from the plan and calls
//     the generate_password tool (Context.Implementation)
//  3. Tester runs check_password_strength on the result and issues a
//     PASS/FAIL verdict (Context.TestResults)
//
// Only the Planner talks to the model. In mock mode BaseAgent.CallLLM returns
// the agent's canned response and no client is needed.
//
// Agents are not safe for concurrent use on the same context; the
// orchestrator runs them strictly one after another.
package agent
