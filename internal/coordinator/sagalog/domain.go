// Package sagalog defines the domain types for the saga audit log.
//
// The console's multi-record saves (property upserts, order-item creation)
// run against a backend that offers no transactions spanning several
// records, so a failure midway leaves earlier records persisted. The log is
// a durable trail of every transition a save went through. It serves two
// purposes:
//
//  1. Observability: a query shows exactly how far a save got and which
//     step failed, correlated with the distributed trace via trace_id.
//
//  2. Follow-up: the FAILED row names the step that broke, so staff can see
//     which records of a partial save still need attention.
package sagalog

import "time"

// Status represents the lifecycle state of a saga execution.
type Status string

const (
	StatusStarted   Status = "STARTED"
	StatusStepDone  Status = "STEP_DONE"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
)

// SagaLog is a single row in the saga_logs table.
// It captures a point-in-time snapshot of a saga execution.
type SagaLog struct {
	// SagaID is the unique identifier for this saga execution.
	// The order id for composition saves, a synthetic id for assignment
	// saves, so the log can be joined with business data.
	SagaID string

	// Status is the current lifecycle state.
	Status Status

	// CurrentStep is the name of the step that was just executed or failed.
	CurrentStep string

	// Payload is the JSON-serialised input that started the saga.
	// Stored once at creation so a partial save can be inspected later.
	Payload string

	// ErrorMessages accumulates failure details, one per failed step.
	// Stored as a JSON array: ["create order item ...: ..."]
	ErrorMessages string

	// TraceID is the W3C trace ID extracted from the OpenTelemetry span that
	// was active when this log entry was written.
	TraceID string

	// SpanID is the specific span within the trace.
	SpanID string

	// UpdatedAt is the wall-clock time of this log entry.
	UpdatedAt time.Time
}
