package cmd

import "fmt"

// Exit codes returned by Execute.
const (
	ExitSuccess = 0
	ExitGeneric = 1
	ExitUsage   = 2
)

// ExitError carries a specific process exit code through cobra's RunE chain.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// NewExitError creates an ExitError with a formatted message.
func NewExitError(code int, format string, args ...any) *ExitError {
	return &ExitError{Code: code, Message: fmt.Sprintf(format, args...)}
}
