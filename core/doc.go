// Package core defines the shared data model of nanoagent:
//
//   - Role-tagged Content made of polymorphic Parts (text, function call,
//     function response) exchanged with language models
//   - AgentContext, the single mutable record threaded through the
//     Planner, Implementer and Tester stages
//   - AgentMessage, the immutable handoff record appended to the context
//     history
//   - ToolContext, the narrow surface handed to tool implementations
//
// The package has no knowledge of concrete models, tools or agents, which
// keeps it importable from every other package without cycles.
package core
