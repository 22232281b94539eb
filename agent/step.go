package agent

// StepStatus tracks the lifecycle of a thinking step.
type StepStatus string

const (
	StepPending StepStatus = "pending"
	StepRunning StepStatus = "running"
	StepDone    StepStatus = "done"
	StepError   StepStatus = "error"
)

// Step is a user-visible progress event recorded while a request is
// processed. Steps are append-only: once recorded they are never mutated.
type Step struct {
	Message string     `json:"message"`
	Status  StepStatus `json:"status"`
}

// StepSink consumes steps as they are recorded (streaming, logging, UI).
type StepSink interface {
	Emit(Step)
}

// StepSinkFunc adapts a function to a StepSink.
type StepSinkFunc func(Step)

func (f StepSinkFunc) Emit(s Step) { f(s) }
