package orchestrator

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/hupe1980/nanoagent/core"
	"github.com/hupe1980/nanoagent/internal/util"
	"github.com/hupe1980/nanoagent/password"
)

// FailureResponse is returned when the run produced no password or no
// test results.
const FailureResponse = "Failed to generate password. Please try again."

const finalResponseTemplate = "🔐 **Generated Password**: `{{.Password}}`" + `

**Validation Results**:
- Strength: {{upper .Strength}}
- Score: {{.Score}}
- Verdict: {{if .Pass}}✅{{else}}❌{{end}} {{.Verdict}}

**Security Checks**:
- Length ({{.Length}} chars): {{check .Checks.LengthOK}}
- Uppercase: {{check .Checks.HasUppercase}}
- Lowercase: {{check .Checks.HasLowercase}}
- Numbers: {{check .Checks.HasNumbers}}
- Symbols: {{check .Checks.HasSymbols}}
{{- if .Recommendations}}

**Recommendations**:
{{- range .Recommendations}}
- {{.}}
{{- end}}
{{- end}}`

type finalResponseView struct {
	Password        string
	Length          int
	Strength        string
	Score           string
	Verdict         string
	Pass            bool
	Checks          password.Checks
	Recommendations []string
}

// RenderFinalResponse derives the user facing answer from a finished
// context. Missing implementation or test results yield FailureResponse.
func RenderFinalResponse(actx *core.AgentContext) (string, error) {
	impl, res := actx.Implementation, actx.TestResults
	if impl == nil || res == nil || res.Strength == nil {
		return FailureResponse, nil
	}

	return util.RenderTemplate(finalResponseTemplate, finalResponseView{
		Password:        impl.Password,
		Length:          utf8.RuneCountInString(impl.Password),
		Strength:        string(res.Strength.Strength),
		Score:           res.Strength.Score,
		Verdict:         string(res.Verdict),
		Pass:            res.Verdict == core.VerdictPass,
		Checks:          res.Strength.Checks,
		Recommendations: res.Recommendations,
	})
}

// WriteHistory writes one indented line per handoff message.
func WriteHistory(w io.Writer, history []core.AgentMessage) {
	for _, m := range history {
		fmt.Fprintf(w, "  %s\n", m)
	}
}
