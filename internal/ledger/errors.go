package ledger

import "fmt"

// ValidationError reports input that breaks a ledger rule, such as a
// blank activity name or a malformed import document.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

// NotFoundError reports an activity id that no longer resolves.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("activity %q not found", e.ID)
}

// StorageError wraps a failed persistence call.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Result is what persistence calls hand back to the engine. A failed write
// never stops the timer; callers surface Err to the user instead.
type Result struct {
	Success bool
	Err     error
}

// OK is the successful Result.
func OK() Result { return Result{Success: true} }

// Failed wraps err as a StorageError result.
func Failed(op string, err error) Result {
	return Result{Err: &StorageError{Op: op, Err: err}}
}
