package model

import (
	"fmt"
	"runtime"
	"strings"
)

// ConfigurationError is raised synchronously during setup: unknown feature,
// empty feature list, invalid guard mode, or raise-mode drift. It is the only
// error kind that aborts application boot.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string { return e.Message }

// NewConfigurationError builds a ConfigurationError with a formatted message.
func NewConfigurationError(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Message: fmt.Sprintf(format, args...)}
}

// ExecutionError wraps a backend failure during DDL execution. It carries the
// original error's type name and message plus a short stack excerpt captured
// at wrap time, so partial-apply state is always visible to the operator.
type ExecutionError struct {
	Statement string // the statement that failed, truncated for display
	Err       error
	stack     string
}

// NewExecutionError captures the current call stack and wraps err.
func NewExecutionError(statement string, err error) *ExecutionError {
	return &ExecutionError{
		Statement: truncate(statement, 200),
		Err:       err,
		stack:     stackExcerpt(2, 4),
	}
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("ddl execution failed: %T: %v (statement: %s)\n%s",
		e.Err, e.Err, e.Statement, e.stack)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// stackExcerpt returns up to max frames above skip, one "file:line func" per line.
func stackExcerpt(skip, max int) string {
	pcs := make([]uintptr, max)
	n := runtime.Callers(skip+1, pcs)
	if n == 0 {
		return ""
	}
	frames := runtime.CallersFrames(pcs[:n])
	var b strings.Builder
	for {
		f, more := frames.Next()
		fmt.Fprintf(&b, "  %s:%d %s\n", f.File, f.Line, f.Function)
		if !more {
			break
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
