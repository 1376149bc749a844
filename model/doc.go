// Package model defines the provider-agnostic abstractions and concrete
// helpers for interacting with language models inside nanoagent.
//
// Core goals:
//   - Keep generation behind a single channel based interface
//   - Normalize tool / function call representation (ToolDefinition, core.FunctionCall)
//   - Keep request/response shapes minimal and transport independent
//   - Facilitate lightweight mocking for tests and mock mode (MockModel)
//
// Providers (OpenAI, Anthropic) implement the Model interface from this
// package so flows and agents remain decoupled from vendor SDKs.
package model
