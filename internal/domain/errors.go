package domain

import "fmt"

// ValidationError marks malformed or empty caller input. Handlers surface it
// as a 400-class response; retrying without changing the input cannot succeed.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	return e.Detail
}

// PersistenceError marks a failed write to the backing store. The computed
// payload is lost unless the caller retries the whole operation.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
