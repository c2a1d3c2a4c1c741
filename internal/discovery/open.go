package discovery

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/hugovk/clufter/internal/platform"
)

// ruleDir is an opened rule directory.
type ruleDir struct {
	path     string
	entries  []os.DirEntry
	glob     []string
	fallback bool
}

// open reads the configured rule directory and, in raw-metadata mode, globs
// its bundled metadata files. When that fails in raw-metadata mode, the
// directory holding the running executable is used instead. Spawn mode has
// no fallback: that directory holds the running binary itself.
func (d *Discoverer) open() (*ruleDir, error) {
	dir, err := d.openPrimary()
	if err == nil {
		return dir, nil
	}
	if !d.opts.RawMetadata {
		return nil, errors.Mark(errors.Wrapf(err, "opening rule directory %s", d.opts.Dir), ErrNoRuleDirectory)
	}

	d.logger.Debug("rule directory unusable, trying executable directory",
		zap.String("dir", d.opts.Dir), zap.Error(err))

	self, linkErr := platform.ResolveLinkChain(d.opts.SelfPath, d.opts.MaxHops)
	if linkErr != nil {
		return nil, errors.Mark(errors.CombineErrors(err, linkErr), ErrNoRuleDirectory)
	}
	fallback := filepath.Dir(self)
	entries, readErr := os.ReadDir(fallback)
	if readErr != nil {
		return nil, errors.Mark(errors.CombineErrors(err, readErr), ErrNoRuleDirectory)
	}
	return &ruleDir{path: fallback, entries: entries, fallback: true}, nil
}

func (d *Discoverer) openPrimary() (*ruleDir, error) {
	entries, err := os.ReadDir(d.opts.Dir)
	if err != nil {
		return nil, err
	}
	dir := &ruleDir{path: d.opts.Dir, entries: entries}
	if !d.opts.RawMetadata {
		return dir, nil
	}

	// Bundled metadata is named after its agent: <agent>.sh.<ext>.
	pattern := filepath.Join(d.opts.Dir, "*.sh."+d.opts.MetadataExt)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "globbing %s", pattern)
	}
	if len(matches) == 0 {
		return nil, errors.Newf("no files match %s", pattern)
	}
	dir.glob = matches
	return dir, nil
}
