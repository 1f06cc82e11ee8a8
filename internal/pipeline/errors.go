package pipeline

import "fmt"

// PipelineCancelledError reports a run aborted by context cancellation or
// deadline. Partial results are discarded; none are returned with it.
type PipelineCancelledError struct {
	RunID  string
	Reason error
}

func (e *PipelineCancelledError) Error() string {
	return fmt.Sprintf("pipeline run %s cancelled: %v", e.RunID, e.Reason)
}

func (e *PipelineCancelledError) Unwrap() error { return e.Reason }
