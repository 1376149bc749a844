package orchestrator

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/nanoagent/agent"
	"github.com/hupe1980/nanoagent/core"
	"github.com/hupe1980/nanoagent/flow"
	"github.com/hupe1980/nanoagent/logging"
	"github.com/hupe1980/nanoagent/model"
	"github.com/hupe1980/nanoagent/tool"
)

// DefaultPrompt is used by the CLI when no request is given.
const DefaultPrompt = "Generate a highly secure password for my banking application"

// Options configure an Orchestrator and the agents it creates.
type Options struct {
	// Mock runs every agent on its canned response.
	Mock bool
	// Model is shared by all agents; required unless Mock is set.
	Model model.Model
	// MaxTokens caps each completion; 0 keeps the provider default.
	MaxTokens int
	// Temperature overrides the provider default when non-nil.
	Temperature *float64
	// Tools backs the Implementer and Tester tool calls.
	Tools *tool.Registry
	// Logger receives structured records; NoOpLogger when nil.
	Logger logging.Logger
	// Transcript receives the console transcript; discarded when nil.
	Transcript io.Writer
	// OnStageChange is invoked synchronously on every stage transition.
	OnStageChange func(from, to Stage)
}

type step struct {
	stage  Stage
	header string
	agent  agent.Agent
}

// Orchestrator coordinates the three agents over one context per run.
type Orchestrator struct {
	opts  Options
	steps []step

	mu    sync.Mutex
	stage Stage
}

// New creates an Orchestrator with a Planner, Implementer and Tester built
// from the options.
func New(optFns ...func(o *Options)) *Orchestrator {
	opts := newOptions(optFns)

	agentOpts := func(o *agent.Options) {
		o.Mock = opts.Mock
		o.Model = opts.Model
		o.MaxTokens = opts.MaxTokens
		o.Temperature = opts.Temperature
		o.Tools = opts.Tools
		o.Logger = opts.Logger
		o.Transcript = opts.Transcript
	}

	return newOrchestrator(opts,
		agent.NewPlanner(agentOpts),
		agent.NewImplementer(agentOpts),
		agent.NewTester(agentOpts),
	)
}

// NewWithAgents creates an Orchestrator over caller supplied agents. Agent
// related options (Mock, Model, Tools) are ignored.
func NewWithAgents(planner, implementer, tester agent.Agent, optFns ...func(o *Options)) *Orchestrator {
	return newOrchestrator(newOptions(optFns), planner, implementer, tester)
}

func newOptions(optFns []func(o *Options)) Options {
	var opts Options
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	if opts.Transcript == nil {
		opts.Transcript = io.Discard
	}
	return opts
}

func newOrchestrator(opts Options, planner, implementer, tester agent.Agent) *Orchestrator {
	return &Orchestrator{
		opts: opts,
		steps: []step{
			{stage: StagePlanning, header: "📋 PHASE 1: PLANNING", agent: planner},
			{stage: StageImplementing, header: "🔧 PHASE 2: IMPLEMENTATION", agent: implementer},
			{stage: StageTesting, header: "🧪 PHASE 3: TESTING", agent: tester},
		},
		stage: StagePlanning,
	}
}

// Stage returns the stage of the current or most recent run.
func (o *Orchestrator) Stage() Stage {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.stage
}

func (o *Orchestrator) setStage(s Stage) {
	o.mu.Lock()
	from := o.stage
	o.stage = s
	o.mu.Unlock()

	if o.opts.OnStageChange != nil && from != s {
		o.opts.OnStageChange(from, s)
	}
}

// Run executes the pipeline for request and returns the terminal context
// with FinalResponse set. A stage error ends the run immediately; the
// partially filled context is returned together with the error and the
// orchestrator stays in the failing stage.
func (o *Orchestrator) Run(ctx context.Context, request string) (*core.AgentContext, error) {
	w := o.opts.Transcript
	logger := logging.With(o.opts.Logger, "component", "orchestrator", "run_id", uuid.NewString())
	start := time.Now()

	flow.Banner(w, "NANOAGENT LEVEL 3: Multi-Agent Orchestration")
	fmt.Fprintf(w, "\nUser Request: %s\n", request)
	fmt.Fprintf(w, "\n%s\nORCHESTRATION PIPELINE\n%s\n\n", flow.Rule("-"), flow.Rule("-"))

	actx := core.NewAgentContext(request)
	o.setStage(StagePlanning)

	for _, s := range o.steps {
		logger.Info("orchestrator.stage.start", "stage", s.stage.String(), "agent", s.agent.Role().String())

		fmt.Fprintln(w, s.header)

		next, err := s.agent.Process(ctx, actx)
		if err != nil {
			logger.Error("orchestrator.stage.error", "stage", s.stage.String(), "error", err.Error())
			return actx, fmt.Errorf("%s stage failed: %w", s.stage, err)
		}
		if next != nil {
			actx = next
		}

		fmt.Fprintln(w)
		o.setStage(s.stage.next())
	}

	final, err := RenderFinalResponse(actx)
	if err != nil {
		return actx, fmt.Errorf("render final response: %w", err)
	}
	actx.FinalResponse = final

	fmt.Fprintf(w, "%s\nMESSAGE HISTORY (Agent Handoffs)\n%s\n", flow.Rule("-"), flow.Rule("-"))
	WriteHistory(w, actx.History())
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s\nFINAL RESPONSE\n%s\n", flow.Rule("="), flow.Rule("="))
	fmt.Fprintln(w, final)
	fmt.Fprintf(w, "\n%s\n\n", flow.Rule("="))

	verdict := ""
	if actx.TestResults != nil {
		verdict = string(actx.TestResults.Verdict)
	}
	logger.Info("orchestrator.run.done",
		"verdict", verdict,
		"messages", len(actx.History()),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return actx, nil
}
