// Package errors provides structured error types for clipforge operations.
package errors

import (
	"errors"
	"fmt"
	"os/exec"
)

// ErrorKind represents the category of an error.
type ErrorKind int

const (
	// KindIO represents I/O errors.
	KindIO ErrorKind = iota
	// KindPath represents path-related errors.
	KindPath
	// KindCommand represents external command execution errors.
	KindCommand
	// KindDecode represents source decode errors (unreadable file, unknown
	// frame rate). Callers fall back to duration-only detection.
	KindDecode
	// KindProbe represents ffprobe execution or output parsing errors.
	KindProbe
	// KindTrim represents a failure of the mandatory trim stage. Fatal.
	KindTrim
	// KindStage represents a non-fatal transform stage failure or timeout.
	KindStage
	// KindNoFilesFound represents no suitable video files found.
	KindNoFilesFound
	// KindCancelled represents user-cancelled operations.
	KindCancelled
)

// String returns a string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "I/O error"
	case KindPath:
		return "Path error"
	case KindCommand:
		return "Command error"
	case KindDecode:
		return "Decode error"
	case KindProbe:
		return "Probe error"
	case KindTrim:
		return "Trim failure"
	case KindStage:
		return "Stage failure"
	case KindNoFilesFound:
		return "No files found"
	case KindCancelled:
		return "Operation cancelled"
	default:
		return "Unknown error"
	}
}

// CommandErrorKind represents the type of command error.
type CommandErrorKind int

const (
	// CommandStart means the command failed to start.
	CommandStart CommandErrorKind = iota
	// CommandWait means waiting for the command failed.
	CommandWait
	// CommandFailed means the command returned non-zero exit status.
	CommandFailed
	// CommandTimeout means the command exceeded its wall-clock deadline.
	CommandTimeout
)

// CommandError represents an error from executing an external command.
type CommandError struct {
	Command    string
	Kind       CommandErrorKind
	ExitCode   int
	Stderr     string
	Underlying error
}

func (e *CommandError) Error() string {
	switch e.Kind {
	case CommandStart:
		return fmt.Sprintf("failed to execute %s: %v", e.Command, e.Underlying)
	case CommandWait:
		return fmt.Sprintf("failed to wait for %s: %v", e.Command, e.Underlying)
	case CommandTimeout:
		return fmt.Sprintf("command %s timed out: %v", e.Command, e.Underlying)
	case CommandFailed:
		if e.Stderr != "" {
			return fmt.Sprintf("command %s failed with exit code %d: %s", e.Command, e.ExitCode, e.Stderr)
		}
		return fmt.Sprintf("command %s failed with exit code %d", e.Command, e.ExitCode)
	default:
		return fmt.Sprintf("command %s error: %v", e.Command, e.Underlying)
	}
}

func (e *CommandError) Unwrap() error {
	return e.Underlying
}

// CoreError is the main error type for clipforge operations.
type CoreError struct {
	Kind       ErrorKind
	Message    string
	Underlying error
}

func (e *CoreError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *CoreError) Unwrap() error {
	return e.Underlying
}

// Is reports whether target matches this error's kind.
func (e *CoreError) Is(target error) bool {
	t, ok := target.(*CoreError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// NewIOError creates a new I/O error.
func NewIOError(message string, underlying error) *CoreError {
	return &CoreError{Kind: KindIO, Message: message, Underlying: underlying}
}

// NewPathError creates a new path-related error.
func NewPathError(message string) *CoreError {
	return &CoreError{Kind: KindPath, Message: message}
}

// NewCommandError creates a new command execution error.
func NewCommandError(cmd string, kind CommandErrorKind, underlying error) *CoreError {
	cmdErr := &CommandError{
		Command:    cmd,
		Kind:       kind,
		Underlying: underlying,
	}
	return &CoreError{Kind: KindCommand, Message: cmdErr.Error(), Underlying: cmdErr}
}

// NewCommandStartError creates an error for when a command fails to start.
func NewCommandStartError(cmd string, err error) *CoreError {
	return NewCommandError(cmd, CommandStart, err)
}

// NewCommandFailedError creates an error for when a command returns non-zero exit status.
func NewCommandFailedError(cmd string, exitCode int, stderr string) *CoreError {
	cmdErr := &CommandError{
		Command:  cmd,
		Kind:     CommandFailed,
		ExitCode: exitCode,
		Stderr:   stderr,
	}
	return &CoreError{Kind: KindCommand, Message: cmdErr.Error(), Underlying: cmdErr}
}

// NewCommandTimeoutError creates an error for when a command exceeds its deadline.
func NewCommandTimeoutError(cmd string, err error) *CoreError {
	return NewCommandError(cmd, CommandTimeout, err)
}

// NewDecodeError creates a new source decode error.
func NewDecodeError(message string, underlying error) *CoreError {
	return &CoreError{Kind: KindDecode, Message: message, Underlying: underlying}
}

// NewProbeError creates a new probe execution or parsing error.
func NewProbeError(message string, underlying error) *CoreError {
	return &CoreError{Kind: KindProbe, Message: message, Underlying: underlying}
}

// NewTrimError creates a new fatal trim stage error.
func NewTrimError(message string, underlying error) *CoreError {
	return &CoreError{Kind: KindTrim, Message: message, Underlying: underlying}
}

// NewStageError creates a new non-fatal transform stage error.
func NewStageError(stage, message string, underlying error) *CoreError {
	return &CoreError{
		Kind:       KindStage,
		Message:    fmt.Sprintf("%s: %s", stage, message),
		Underlying: underlying,
	}
}

// NewNoFilesFoundError creates an error for when no video files are found.
func NewNoFilesFoundError(dir string) *CoreError {
	return &CoreError{Kind: KindNoFilesFound, Message: fmt.Sprintf("no suitable video files found in %s", dir)}
}

// NewCancelledError creates an error for user-cancelled operations.
func NewCancelledError() *CoreError {
	return &CoreError{Kind: KindCancelled, Message: "operation was cancelled by the user"}
}

// IsKind checks if the error has the specified kind.
func IsKind(err error, kind ErrorKind) bool {
	var coreErr *CoreError
	if errors.As(err, &coreErr) {
		return coreErr.Kind == kind
	}
	return false
}

// IsDecode checks if the error is a source decode error.
func IsDecode(err error) bool {
	return IsKind(err, KindDecode)
}

// IsTrim checks if the error is a fatal trim failure.
func IsTrim(err error) bool {
	return IsKind(err, KindTrim)
}

// IsStage checks if the error is a non-fatal stage failure.
func IsStage(err error) bool {
	return IsKind(err, KindStage)
}

// IsCancelled checks if the error is a cancellation error.
func IsCancelled(err error) bool {
	return IsKind(err, KindCancelled)
}

// IsNoFilesFound checks if the error is a no-files-found error.
func IsNoFilesFound(err error) bool {
	return IsKind(err, KindNoFilesFound)
}

// WrapExecError wraps an exec.ExitError into a CoreError.
func WrapExecError(cmd string, err error, stderr string) *CoreError {
	if exitErr, ok := err.(*exec.ExitError); ok {
		return NewCommandFailedError(cmd, exitErr.ExitCode(), stderr)
	}
	return NewCommandStartError(cmd, err)
}
