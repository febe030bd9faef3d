// Package ffmpeg wraps the external ffmpeg binary behind small, composable
// command builders and a blocking executor.
package ffmpeg

import (
	"context"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/clipforge/clipforge/internal/errors"
	"github.com/clipforge/clipforge/internal/logging"
)

// stderrTailBytes bounds how much ffmpeg stderr is kept for error reporting.
const stderrTailBytes = 4096

// Executor runs ffmpeg commands synchronously.
type Executor struct {
	logger zerolog.Logger
}

// NewExecutor creates an executor logging under the ffmpeg component.
func NewExecutor() *Executor {
	return &Executor{logger: logging.WithComponent("ffmpeg")}
}

// Run executes ffmpeg with the given arguments and blocks until completion
// or the timeout elapses. Stderr is captured for diagnostics.
func (e *Executor) Run(ctx context.Context, timeout time.Duration, args []string) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	full := append([]string{"-y", "-hide_banner", "-loglevel", "error"}, args...)

	e.logger.Debug().Strs("args", full).Msg("executing ffmpeg")

	cmd := exec.CommandContext(ctx, "ffmpeg", full...)

	var stderr strings.Builder
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			e.logger.Warn().Dur("elapsed", elapsed).Msg("ffmpeg timed out")
			return errors.NewCommandTimeoutError("ffmpeg", ctx.Err())
		}
		if ctx.Err() == context.Canceled {
			return errors.NewCancelledError()
		}
		tail := stderrTail(stderr.String())
		e.logger.Error().Str("stderr", tail).Msg("ffmpeg failed")
		return errors.WrapExecError("ffmpeg", err, tail)
	}

	e.logger.Debug().Dur("elapsed", elapsed).Msg("ffmpeg completed")
	return nil
}

// Pipe is a running ffmpeg process streaming rawvideo to stdout.
type Pipe struct {
	Stdout io.ReadCloser
	cmd    *exec.Cmd
	stderr *strings.Builder
}

// StartPipe launches ffmpeg with stdout available for streaming reads. The
// caller must drain Stdout and then call Close.
func (e *Executor) StartPipe(ctx context.Context, args []string) (*Pipe, error) {
	full := append([]string{"-hide_banner", "-loglevel", "error"}, args...)

	e.logger.Debug().Strs("args", full).Msg("starting ffmpeg pipe")

	cmd := exec.CommandContext(ctx, "ffmpeg", full...)

	var stderr strings.Builder
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errors.NewCommandStartError("ffmpeg", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, errors.NewCommandStartError("ffmpeg", err)
	}

	return &Pipe{Stdout: stdout, cmd: cmd, stderr: &stderr}, nil
}

// Close reaps the child process. Safe to call after a partial read; a decode
// error is returned when the process exited non-zero.
func (p *Pipe) Close() error {
	_ = p.Stdout.Close()
	if err := p.cmd.Wait(); err != nil {
		return errors.WrapExecError("ffmpeg", err, stderrTail(p.stderr.String()))
	}
	return nil
}

func stderrTail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > stderrTailBytes {
		s = s[len(s)-stderrTailBytes:]
	}
	return s
}
