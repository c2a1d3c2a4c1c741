package metadata

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
)

const (
	// MetadataArg is the single argument that asks an agent for its metadata.
	MetadataArg = "meta-data"

	// DefaultMaxOutput caps captured agent output at 16 MiB.
	DefaultMaxOutput = 16 << 20

	readChunk = 4096
)

// Runner runs an external command and captures its standard output.
type Runner interface {
	Capture(ctx context.Context, path string, args ...string) ([]byte, error)
}

// ExecRunner runs commands as local subprocesses. Standard input and error
// are connected to the null device; standard output goes through a pipe that
// is drained to end of stream before the process is waited on.
type ExecRunner struct {
	// MaxOutput bounds the captured output in bytes. Zero means DefaultMaxOutput.
	MaxOutput int64
}

// Capture implements Runner. The exit status of the command is ignored; a
// command that exits non-zero after printing is still captured. When ctx is
// done the process is killed and the pending read is interrupted.
func (r *ExecRunner) Capture(ctx context.Context, path string, args ...string) ([]byte, error) {
	limit := r.MaxOutput
	if limit <= 0 {
		limit = DefaultMaxOutput
	}

	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, errors.Wrap(err, "creating output pipe")
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = nil
	cmd.Stderr = nil
	cmd.Stdout = pw

	if err := cmd.Start(); err != nil {
		return nil, errors.CombineErrors(
			errors.Wrapf(err, "starting %s", path),
			errors.CombineErrors(pr.Close(), pw.Close()),
		)
	}
	// Only the child holds the write end now, so EOF follows its exit.
	_ = pw.Close()

	stop := context.AfterFunc(ctx, func() { _ = pr.SetReadDeadline(time.Now()) })
	data, readErr := readPipe(pr, limit)
	stop()
	_ = pr.Close()

	if readErr != nil && cmd.Process != nil {
		_ = cmd.Process.Kill()
	}
	waitErr := cmd.Wait()

	if readErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			if errors.Is(ctxErr, context.DeadlineExceeded) {
				return nil, errors.Wrapf(ErrTimeout, "running %s", path)
			}
			return nil, errors.Wrapf(ctxErr, "running %s", path)
		}
		return nil, errors.Wrapf(readErr, "reading output of %s", path)
	}
	if _, exited := waitErr.(*exec.ExitError); waitErr != nil && !exited {
		return nil, errors.Wrapf(waitErr, "waiting for %s", path)
	}
	return data, nil
}

// readPipe reads r to end of stream into a growing buffer of at most limit
// bytes. Interrupted reads are retried; any other read error ends the
// capture.
func readPipe(r io.Reader, limit int64) ([]byte, error) {
	var buf bytes.Buffer
	chunk := make([]byte, readChunk)
	for {
		n, err := r.Read(chunk)
		if n > 0 {
			if int64(buf.Len())+int64(n) > limit {
				return nil, ErrOutputTooLarge
			}
			buf.Write(chunk[:n])
		}
		switch {
		case err == nil:
		case err == io.EOF:
			return buf.Bytes(), nil
		case errors.Is(err, syscall.EINTR):
		default:
			return nil, err
		}
	}
}
