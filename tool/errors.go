package tool

import "fmt"

// NotFoundError indicates the agent requested a tool the host never
// advertised.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("tool not found: %s", e.Name)
}

// AlreadyRegisteredError indicates a duplicate registration attempt.
type AlreadyRegisteredError struct {
	Name string
}

func (e *AlreadyRegisteredError) Error() string {
	return fmt.Sprintf("tool already registered: %s", e.Name)
}
