package bookstack

import "fmt"

// TransportError indicates the API was unreachable or kept returning a
// non-JSON response after all retry attempts were exhausted. During the
// snapshot fetch phase this is fatal to the run.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("bookstack: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MutationError indicates a create or update call did not return a usable
// resource ID. It is isolated per item and never aborts a run.
type MutationError struct {
	Op  string
	Err error
}

func (e *MutationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("bookstack: %s: response carried no id", e.Op)
	}
	return fmt.Sprintf("bookstack: %s: %v", e.Op, e.Err)
}

func (e *MutationError) Unwrap() error {
	return e.Err
}
