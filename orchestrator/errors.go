package orchestrator

import "fmt"

// HopLimitError reports that a turn was aborted because the model kept
// requesting tools past the configured hop ceiling. The session stays usable
// for the next turn.
type HopLimitError struct {
	Hops int
}

func (e *HopLimitError) Error() string {
	return fmt.Sprintf("hop limit exceeded after %d rounds without a final answer", e.Hops)
}

// EndpointError reports that the model endpoint failed for an entire turn,
// after all retry attempts were exhausted. No partial hop is committed to
// durable history.
type EndpointError struct {
	Attempts int
	Err      error
}

func (e *EndpointError) Error() string {
	return fmt.Sprintf("model endpoint failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *EndpointError) Unwrap() error { return e.Err }
