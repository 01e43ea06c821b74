package gateway

import "fmt"

// ProgrammerError means a caller violated a gateway precondition. It is
// raised before any network I/O and should never be shown to the user as a
// recoverable condition.
type ProgrammerError struct {
	Reason string
}

func (e *ProgrammerError) Error() string {
	return "gateway misuse: " + e.Reason
}

// NetworkError covers transport-level failures and non-success HTTP statuses.
// Call sites convert it to a user notice; it never crashes the app.
type NetworkError struct {
	Status  int    // 0 for transport failures
	Message string // server-provided message when present
	cause   error
}

func (e *NetworkError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.cause != nil {
		return fmt.Sprintf("request failed: %v", e.cause)
	}
	return fmt.Sprintf("API request failed: %d", e.Status)
}

func (e *NetworkError) Unwrap() error { return e.cause }
