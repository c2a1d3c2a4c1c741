package metadata

import (
	"context"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// DefaultTimeout bounds a single agent invocation.
const DefaultTimeout = 30 * time.Second

// Extractor produces the metadata document of one candidate file.
type Extractor struct {
	Runner Runner
	// Timeout bounds each agent invocation. Zero disables the bound.
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewExtractor returns an Extractor running agents as subprocesses.
func NewExtractor(timeout time.Duration, maxOutput int64, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{
		Runner:  &ExecRunner{MaxOutput: maxOutput},
		Timeout: timeout,
		Logger:  logger,
	}
}

// Extract returns the parsed metadata of path. With raw set the file itself
// is parsed; otherwise path is run with MetadataArg and its output parsed.
func (e *Extractor) Extract(ctx context.Context, path string, raw bool) (*Document, error) {
	var (
		data []byte
		err  error
	)
	if raw {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", path)
		}
	} else {
		data, err = e.capture(ctx, path)
		if err != nil {
			return nil, err
		}
		if len(data) == 0 {
			return nil, errors.Wrapf(ErrEmptyOutput, "running %s", path)
		}
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "metadata of %s", path)
	}
	return doc, nil
}

func (e *Extractor) capture(ctx context.Context, path string) ([]byte, error) {
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	runner := e.Runner
	if runner == nil {
		runner = &ExecRunner{}
	}
	e.logger().Debug("running agent", zap.String("path", path), zap.Duration("timeout", e.Timeout))
	return runner.Capture(ctx, path, MetadataArg)
}

func (e *Extractor) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}
