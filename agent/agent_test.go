package agent

import (
	"bytes"
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/nanoagent/core"
	"github.com/hupe1980/nanoagent/model"
	"github.com/hupe1980/nanoagent/password"
)

func TestMaskPassword(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"abcdefgh", "abcd****"},
		{"abcde", "abcd*"},
		{"abcd", "abcd"},
		{"ab", "ab"},
		{"", ""},
		{"äöüßxy", "äöüß**"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MaskPassword(tt.in), tt.in)
	}
}

func TestParsePlan(t *testing.T) {
	tests := []struct {
		name string
		plan string
		want int
	}{
		{"mock plan", PlannerMockResponse, 16},
		{"explicit", "CONSTRAINTS:\n- Length: 32", 32},
		{"case insensitive", "LENGTH 20", 20},
		{"first match wins", "length: 24\nlength: 40", 24},
		{"empty plan", "", password.DefaultLength},
		{"no match", "length=12", password.DefaultLength},
		{"overflow", "Length: 99999999999999999999", math.MaxInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePlan(tt.plan)
			assert.Equal(t, tt.want, got.Length)
			assert.True(t, got.IncludeUppercase)
			assert.True(t, got.IncludeLowercase)
			assert.True(t, got.IncludeNumbers)
			assert.True(t, got.IncludeSymbols)
		})
	}
}

func TestParsePlan_IgnoresClassHints(t *testing.T) {
	got := ParsePlan("Length: 20\nSymbols: no\nUppercase: no")
	assert.Equal(t, 20, got.Length)
	assert.True(t, got.IncludeSymbols)
	assert.True(t, got.IncludeUppercase)
}

func TestPlanner_Process_Mock(t *testing.T) {
	var transcript bytes.Buffer
	p := NewPlanner(func(o *Options) {
		o.Mock = true
		o.Transcript = &transcript
	})

	actx := core.NewAgentContext("Generate a password for my bank")
	out, err := p.Process(context.Background(), actx)
	require.NoError(t, err)

	assert.Same(t, actx, out)
	assert.Equal(t, PlannerMockResponse, actx.Plan)

	history := actx.History()
	require.Len(t, history, 1)
	assert.Equal(t, core.RolePlanner, history[0].From)
	assert.Equal(t, core.RoleImplementer, history[0].To)
	assert.Equal(t, "Plan created. Handing off to implementer.", history[0].Content)
	assert.Equal(t, PlannerMockResponse, history[0].Metadata["plan"])

	assert.Contains(t, transcript.String(), "  [PLANNER] Analyzing user requirements...\n")
	assert.Contains(t, transcript.String(), "  [PLANNER] Plan created. Handing off to Implementer.\n")
}

func TestPlanner_Process_Model(t *testing.T) {
	m := model.NewMockModel("test-model", "mock")
	m.Enqueue(model.TextResponse("CONSTRAINTS:\n- Length: 24"))

	p := NewPlanner(func(o *Options) { o.Model = m })

	actx := core.NewAgentContext("a long one")
	_, err := p.Process(context.Background(), actx)
	require.NoError(t, err)

	assert.Equal(t, "CONSTRAINTS:\n- Length: 24", actx.Plan)

	reqs := m.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, PlannerPrompt, reqs[0].Instructions)
	require.Len(t, reqs[0].Contents, 1)
	assert.Equal(t, core.RoleUser, reqs[0].Contents[0].Role)
	assert.Equal(t, "Create a plan for: a long one", reqs[0].Contents[0].Text())
}

func TestPlanner_Process_NoModel(t *testing.T) {
	p := NewPlanner()

	actx := core.NewAgentContext("anything")
	_, err := p.Process(context.Background(), actx)

	require.ErrorIs(t, err, ErrModelNotConfigured)
	assert.False(t, actx.HasPlan())
	assert.Empty(t, actx.History())
}

func TestBaseAgent_CallLLM_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := NewBaseAgent(core.RolePlanner, "prompt", "mock", func(o *Options) {
		o.Model = model.NewMockModel("test-model", "mock")
	})

	_, err := b.CallLLM(ctx, []core.Content{core.NewTextContent(core.RoleUser, "hi")})
	require.ErrorIs(t, err, context.Canceled)
}

func TestBaseAgent_CallLLM_MockSkipsModel(t *testing.T) {
	m := model.NewMockModel("test-model", "mock")
	b := NewBaseAgent(core.RoleTester, "prompt", "canned", func(o *Options) {
		o.Mock = true
		o.Model = m
	})

	text, err := b.CallLLM(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "canned", text)
	assert.Empty(t, m.Requests())
}

func TestImplementer_Process(t *testing.T) {
	var transcript bytes.Buffer
	impl := NewImplementer(func(o *Options) { o.Transcript = &transcript })

	actx := core.NewAgentContext("req")
	actx.Plan = "CONSTRAINTS:\n- Length: 24"

	_, err := impl.Process(context.Background(), actx)
	require.NoError(t, err)

	require.NotNil(t, actx.Implementation)
	assert.Len(t, actx.Implementation.Password, 24)
	assert.Equal(t, 24, actx.Implementation.Config.Length)
	assert.Equal(t, ImplementationNotes, actx.Implementation.Notes)

	history := actx.History()
	require.Len(t, history, 1)
	assert.Equal(t, core.RoleImplementer, history[0].From)
	assert.Equal(t, core.RoleTester, history[0].To)
	assert.Equal(t, *actx.Implementation, history[0].Metadata["implementation"])

	out := transcript.String()
	assert.Contains(t, out, "  [IMPLEMENTER] Executing implementation plan...")
	assert.Contains(t, out, "  [IMPLEMENTER] Password generated: "+MaskPassword(actx.Implementation.Password))
	assert.NotContains(t, out, actx.Implementation.Password)
}

func TestImplementer_Process_NoPlan(t *testing.T) {
	impl := NewImplementer()

	actx := core.NewAgentContext("req")
	_, err := impl.Process(context.Background(), actx)
	require.NoError(t, err)

	require.NotNil(t, actx.Implementation)
	assert.Equal(t, password.DefaultOptions(), actx.Implementation.Config)
	assert.Len(t, actx.Implementation.Password, password.DefaultLength)
	for _, r := range actx.Implementation.Password {
		assert.Contains(t, password.DefaultOptions().Charset(), string(r))
	}
}

func TestImplementer_Process_RejectedLength(t *testing.T) {
	impl := NewImplementer()

	actx := core.NewAgentContext("req")
	actx.Plan = "Length: 500"

	_, err := impl.Process(context.Background(), actx)
	require.NoError(t, err)

	assert.Nil(t, actx.Implementation)

	history := actx.History()
	require.Len(t, history, 1)
	assert.Contains(t, history[0].Metadata["error"], "parameter validation failed")
}

func TestImplementer_Process_OverflowingLength(t *testing.T) {
	impl := NewImplementer()

	actx := core.NewAgentContext("req")
	actx.Plan = "CONSTRAINTS:\n- Length: 99999999999999999999"

	_, err := impl.Process(context.Background(), actx)
	require.NoError(t, err)

	assert.Nil(t, actx.Implementation)

	history := actx.History()
	require.Len(t, history, 1)
	assert.Contains(t, history[0].Metadata["error"], "parameter validation failed")

	_, err = NewTester().Process(context.Background(), actx)
	require.NoError(t, err)
	assert.Equal(t, core.VerdictFail, actx.TestResults.Verdict)
}

func TestTester_Process_NoImplementation(t *testing.T) {
	var transcript bytes.Buffer
	tester := NewTester(func(o *Options) { o.Transcript = &transcript })

	actx := core.NewAgentContext("req")
	_, err := tester.Process(context.Background(), actx)
	require.NoError(t, err)

	require.NotNil(t, actx.TestResults)
	assert.Equal(t, core.VerdictFail, actx.TestResults.Verdict)
	assert.Equal(t, NoPasswordReason, actx.TestResults.Reason)
	assert.Nil(t, actx.TestResults.Strength)
	assert.Empty(t, actx.History())
	assert.Contains(t, transcript.String(), "  [TESTER] ERROR: No implementation to test!")
}

func TestTester_Process(t *testing.T) {
	tests := []struct {
		name     string
		password string
		strength password.Strength
		verdict  core.Verdict
		recs     int
	}{
		{"very strong", "Abcdefgh1234!xyz", password.StrengthVeryStrong, core.VerdictPass, 0},
		{"strong", "abcdefgh1234!xyz", password.StrengthStrong, core.VerdictPass, 1},
		{"weak", "password123", password.StrengthWeak, core.VerdictFail, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actx := core.NewAgentContext("req")
			actx.Implementation = &core.Implementation{Password: tt.password}

			_, err := NewTester().Process(context.Background(), actx)
			require.NoError(t, err)

			res := actx.TestResults
			require.NotNil(t, res)
			require.NotNil(t, res.Strength)
			assert.Equal(t, tt.strength, res.Strength.Strength)
			assert.Equal(t, tt.verdict, res.Verdict)
			assert.Equal(t, MaskPassword(tt.password), res.PasswordTested)
			assert.Len(t, res.Recommendations, tt.recs)

			history := actx.History()
			require.Len(t, history, 1)
			assert.Equal(t, core.RoleTester, history[0].From)
			assert.Equal(t, core.RoleCoordinator, history[0].To)
			assert.Equal(t, "Validation complete. Verdict: "+string(tt.verdict), history[0].Content)
		})
	}
}

func TestVerdictFor(t *testing.T) {
	assert.Equal(t, core.VerdictFail, VerdictFor(password.StrengthWeak))
	assert.Equal(t, core.VerdictFail, VerdictFor(password.StrengthMedium))
	assert.Equal(t, core.VerdictPass, VerdictFor(password.StrengthStrong))
	assert.Equal(t, core.VerdictPass, VerdictFor(password.StrengthVeryStrong))
}

func TestAgents_SatisfyInterface(t *testing.T) {
	for _, a := range []Agent{NewPlanner(), NewImplementer(), NewTester()} {
		assert.NotEmpty(t, a.SystemPrompt(), a.Role())
		assert.NotEmpty(t, a.MockResponse(), a.Role())
	}
}
