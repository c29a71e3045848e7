package oracle

import "fmt"

// ValidationError reports that the oracle returned structurally invalid
// output on every attempt of the retry budget. It is not recoverable
// locally and must not be treated as any classification status.
type ValidationError struct {
	Attempts int
	LastErr  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("oracle returned invalid output after %d attempts: %v", e.Attempts, e.LastErr)
}

func (e *ValidationError) Unwrap() error { return e.LastErr }

// TimeoutError reports that the oracle call did not complete within the
// configured deadline, even after retries. Routed identically to a
// retry-exhausted ValidationError: neither produces a status.
type TimeoutError struct {
	Attempts int
	LastErr  error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("oracle call timed out after %d attempts: %v", e.Attempts, e.LastErr)
}

func (e *TimeoutError) Unwrap() error { return e.LastErr }
