package agent

import (
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
)

// PlannerPrompt is the Planner's system prompt.
var PlannerPrompt = strings.TrimSpace(heredoc.Doc(`
	You are a Planning Agent specialized in analyzing password requirements.

	Your job is to:
	1. Analyze the user's password requirements
	2. Identify constraints (length, character types, use case)
	3. Create a structured plan for password generation
	4. Consider security implications

	Output your plan in this format:
	---
	REQUIREMENTS:
	- [List extracted requirements]

	CONSTRAINTS:
	- Length: [number]
	- Character types: [list]
	- Use case: [description]

	SECURITY CONSIDERATIONS:
	- [List security notes]

	IMPLEMENTATION PLAN:
	1. [Step 1]
	2. [Step 2]
	...
	---

	Be concise but thorough.
`))

// PlannerMockResponse is the plan served in mock mode.
var PlannerMockResponse = strings.TrimSpace(heredoc.Doc(`
	---
	REQUIREMENTS:
	- Generate a secure password
	- Length: 16 characters
	- Include all character types

	CONSTRAINTS:
	- Length: 16
	- Character types: uppercase, lowercase, numbers, symbols
	- Use case: General secure password

	SECURITY CONSIDERATIONS:
	- Use cryptographically secure random generation
	- Ensure high entropy
	- Avoid predictable patterns

	IMPLEMENTATION PLAN:
	1. Configure password options (length=16, all char types enabled)
	2. Generate password using secure random
	3. Verify password meets all constraints
	4. Calculate and report strength score
	---
`))

// ImplementerPrompt is the Implementer's system prompt.
var ImplementerPrompt = strings.TrimSpace(heredoc.Doc(`
	You are an Implementation Agent that executes password generation plans.

	Given a plan, you will:
	1. Extract the password configuration from the plan
	2. Call the password generation tool
	3. Document what was generated

	Output format:
	---
	CONFIGURATION:
	- Length: [number]
	- Uppercase: [yes/no]
	- Lowercase: [yes/no]
	- Numbers: [yes/no]
	- Symbols: [yes/no]

	GENERATED PASSWORD: [password]

	IMPLEMENTATION NOTES:
	- [Any relevant notes]
	---
`))

// ImplementerMockResponse is the Implementer's canned text.
const ImplementerMockResponse = "Implementation complete."

// TesterPrompt is the Tester's system prompt.
var TesterPrompt = strings.TrimSpace(heredoc.Doc(`
	You are a Testing Agent that validates generated passwords.

	Your job is to:
	1. Check the password meets all requirements
	2. Analyze password strength
	3. Identify any security concerns
	4. Provide a clear pass/fail verdict

	Output format:
	---
	VALIDATION RESULTS:
	- Length check: [PASS/FAIL]
	- Character variety: [PASS/FAIL]
	- Strength score: [score]

	SECURITY ANALYSIS:
	- [Analysis points]

	VERDICT: [PASS/FAIL]
	RECOMMENDATIONS: [If any]
	---
`))

// TesterMockResponse is the Tester's canned text.
const TesterMockResponse = "Validation complete."
