// Package coordinator runs the console's sequential multi-record saves as
// explicit sagas. The property-assignment upsert loop and the order-item
// creation loop both persist one record per step against the backend; there
// is no transaction around them and no compensation — whatever succeeded
// before a failing step stays persisted. What the coordinator adds over a
// bare loop is a per-step report the caller can surface (and, later, retry
// from) plus a durable audit trail of every transition.
package coordinator

import (
	"context"
	"log/slog"

	"github.com/erfansky/Dressmaking/internal/coordinator/sagalog"
)

// Step is a single unit of work in a saga. Execute must be safe to call
// exactly once per run.
type Step interface {
	Name() string
	Execute(ctx context.Context) error
}

// StepStatus is the outcome of one step within a run.
type StepStatus string

const (
	StepDone    StepStatus = "done"
	StepFailed  StepStatus = "failed"
	StepSkipped StepStatus = "skipped"
)

// StepResult records the outcome of one step.
type StepResult struct {
	Name   string     `json:"name"`
	Status StepStatus `json:"status"`
	Error  string     `json:"error,omitempty"`
}

// Report is the partial-result view of one saga run. Execution stops at the
// first failure; steps after it are marked skipped so a caller can offer a
// retry of exactly the unfinished subset.
type Report struct {
	SagaID string       `json:"saga_id"`
	Steps  []StepResult `json:"steps"`
}

// Succeeded reports whether every step completed.
func (r *Report) Succeeded() bool {
	for _, s := range r.Steps {
		if s.Status != StepDone {
			return false
		}
	}
	return true
}

// FirstFailure returns the failed step, if any.
func (r *Report) FirstFailure() (StepResult, bool) {
	for _, s := range r.Steps {
		if s.Status == StepFailed {
			return s, true
		}
	}
	return StepResult{}, false
}

// Remaining lists the names of steps that did not complete (failed or
// skipped), in execution order.
func (r *Report) Remaining() []string {
	var out []string
	for _, s := range r.Steps {
		if s.Status != StepDone {
			out = append(out, s.Name)
		}
	}
	return out
}

// Orchestrator executes a collection of Steps sequentially.
type Orchestrator struct {
	sagaID  string
	steps   []Step
	repo    sagalog.Repository // nil-safe: audit logging skipped if nil
	payload string
}

// NewOrchestrator builds a saga for the given steps. sagaID is the business
// identifier the audit rows are keyed on (an order id, or a synthetic id for
// assignment saves). payload is the JSON-serialised input, stored once on
// the STARTED row.
func NewOrchestrator(sagaID string, steps []Step, repo sagalog.Repository, payload string) *Orchestrator {
	return &Orchestrator{sagaID: sagaID, steps: steps, repo: repo, payload: payload}
}

// Run executes the steps in order, stopping at the first failure. It always
// returns a complete Report; the error is the failing step's error, nil on
// full success.
func (o *Orchestrator) Run(ctx context.Context) (*Report, error) {
	report := &Report{SagaID: o.sagaID, Steps: make([]StepResult, 0, len(o.steps))}

	o.log(ctx, sagalog.NewEntry(ctx, o.sagaID, sagalog.StatusStarted, "", o.payload, nil))

	var failed error
	for _, step := range o.steps {
		if failed != nil {
			report.Steps = append(report.Steps, StepResult{Name: step.Name(), Status: StepSkipped})
			continue
		}

		slog.InfoContext(ctx, "executing saga step", "saga_id", o.sagaID, "step", step.Name())
		if err := step.Execute(ctx); err != nil {
			slog.ErrorContext(ctx, "saga step failed", "saga_id", o.sagaID, "step", step.Name(), "error", err)
			report.Steps = append(report.Steps, StepResult{Name: step.Name(), Status: StepFailed, Error: err.Error()})
			o.log(ctx, sagalog.NewEntry(ctx, o.sagaID, sagalog.StatusFailed, step.Name(), "", []string{err.Error()}))
			failed = err
			continue
		}

		report.Steps = append(report.Steps, StepResult{Name: step.Name(), Status: StepDone})
		o.log(ctx, sagalog.NewEntry(ctx, o.sagaID, sagalog.StatusStepDone, step.Name(), "", nil))
	}

	if failed == nil {
		last := ""
		if n := len(o.steps); n > 0 {
			last = o.steps[n-1].Name()
		}
		o.log(ctx, sagalog.NewEntry(ctx, o.sagaID, sagalog.StatusCompleted, last, "", nil))
		slog.InfoContext(ctx, "saga completed", "saga_id", o.sagaID, "steps", len(o.steps))
	}

	return report, failed
}

func (o *Orchestrator) log(ctx context.Context, entry *sagalog.SagaLog) {
	if o.repo == nil {
		return
	}
	if err := o.repo.Save(ctx, entry); err != nil {
		slog.ErrorContext(ctx, "failed to persist saga log entry", "saga_id", o.sagaID, "error", err)
	}
}
