package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind     ErrorKind
		expected string
	}{
		{KindIO, "I/O error"},
		{KindPath, "Path error"},
		{KindCommand, "Command error"},
		{KindDecode, "Decode error"},
		{KindProbe, "Probe error"},
		{KindTrim, "Trim failure"},
		{KindStage, "Stage failure"},
		{KindNoFilesFound, "No files found"},
		{KindCancelled, "Operation cancelled"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("ErrorKind.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCoreErrorError(t *testing.T) {
	// Test error with underlying error
	underlying := errors.New("underlying error")
	err := &CoreError{
		Kind:       KindDecode,
		Message:    "cannot open source",
		Underlying: underlying,
	}

	got := err.Error()
	expected := "Decode error: cannot open source: underlying error"
	if got != expected {
		t.Errorf("CoreError.Error() = %v, want %v", got, expected)
	}

	// Test error without underlying error
	err2 := &CoreError{
		Kind:    KindPath,
		Message: "not a directory",
	}

	got2 := err2.Error()
	expected2 := "Path error: not a directory"
	if got2 != expected2 {
		t.Errorf("CoreError.Error() = %v, want %v", got2, expected2)
	}
}

func TestCoreErrorUnwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := &CoreError{
		Kind:       KindIO,
		Message:    "test",
		Underlying: underlying,
	}

	if err.Unwrap() != underlying {
		t.Error("Unwrap() should return underlying error")
	}
}

func TestCoreErrorIs(t *testing.T) {
	err1 := &CoreError{Kind: KindTrim, Message: "test1"}
	err2 := &CoreError{Kind: KindTrim, Message: "test2"}
	err3 := &CoreError{Kind: KindStage, Message: "test3"}

	if !errors.Is(err1, err2) {
		t.Error("errors with the same kind should match")
	}
	if errors.Is(err1, err3) {
		t.Error("errors with different kinds should not match")
	}
	if errors.Is(err1, errors.New("plain")) {
		t.Error("plain errors should not match")
	}
}

func TestIsKindThroughWrapping(t *testing.T) {
	base := NewTrimError("trim exploded", errors.New("exit status 1"))
	wrapped := fmt.Errorf("processing input.mp4: %w", base)

	if !IsTrim(wrapped) {
		t.Error("IsTrim() should see through fmt.Errorf wrapping")
	}
	if IsStage(wrapped) {
		t.Error("IsStage() should be false for a trim error")
	}
}

func TestStageErrorMessage(t *testing.T) {
	err := NewStageError("reframe", "encode failed", errors.New("exit status 1"))
	expected := "Stage failure: reframe: encode failed: exit status 1"
	if err.Error() != expected {
		t.Errorf("NewStageError().Error() = %v, want %v", err.Error(), expected)
	}
}

func TestCommandErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      *CommandError
		expected string
	}{
		{
			name:     "failed with stderr",
			err:      &CommandError{Command: "ffmpeg", Kind: CommandFailed, ExitCode: 1, Stderr: "boom"},
			expected: "command ffmpeg failed with exit code 1: boom",
		},
		{
			name:     "failed without stderr",
			err:      &CommandError{Command: "ffmpeg", Kind: CommandFailed, ExitCode: 2},
			expected: "command ffmpeg failed with exit code 2",
		},
		{
			name:     "start failure",
			err:      &CommandError{Command: "ffprobe", Kind: CommandStart, Underlying: errors.New("not found")},
			expected: "failed to execute ffprobe: not found",
		},
		{
			name:     "timeout",
			err:      &CommandError{Command: "ffmpeg", Kind: CommandTimeout, Underlying: errors.New("context deadline exceeded")},
			expected: "command ffmpeg timed out: context deadline exceeded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("CommandError.Error() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestWrapExecError(t *testing.T) {
	err := WrapExecError("ffmpeg", errors.New("not an exit error"), "")
	if !IsKind(err, KindCommand) {
		t.Error("WrapExecError() should produce a command error")
	}

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatal("expected a wrapped CommandError")
	}
	if cmdErr.Kind != CommandStart {
		t.Errorf("expected CommandStart for non-exit errors, got %v", cmdErr.Kind)
	}
}
