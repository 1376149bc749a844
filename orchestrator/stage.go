package orchestrator

// Stage is the position of a run in the pipeline.
type Stage int

// Pipeline stages in execution order.
const (
	StagePlanning Stage = iota
	StageImplementing
	StageTesting
	StageDone
)

// String returns the upper case stage name.
func (s Stage) String() string {
	switch s {
	case StagePlanning:
		return "PLANNING"
	case StageImplementing:
		return "IMPLEMENTING"
	case StageTesting:
		return "TESTING"
	case StageDone:
		return "DONE"
	default:
		return "UNKNOWN"
	}
}

// next returns the successor stage; DONE is terminal.
func (s Stage) next() Stage {
	if s >= StageDone {
		return StageDone
	}
	return s + 1
}
