package discovery

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/hugovk/clufter/internal/metadata"
	"github.com/hugovk/clufter/internal/platform"
	"github.com/hugovk/clufter/internal/rules"
)

// DefaultMetadataExt is the extension of pre-rendered metadata files.
const DefaultMetadataExt = "metadata"

// ErrNoRuleDirectory is returned when neither the configured rule directory
// nor the fallback next to the running executable can be read.
var ErrNoRuleDirectory = errors.New("no usable rule directory")

// Options configure a discovery pass.
type Options struct {
	// Dir is the rule directory to scan.
	Dir string
	// RawMetadata selects pre-rendered metadata files instead of executables.
	RawMetadata bool
	// MetadataExt is the extension, without dot, of pre-rendered metadata files.
	MetadataExt string
	// SelfPath is the link resolved to find the fallback directory.
	SelfPath string
	// MaxHops bounds the links followed from SelfPath.
	MaxHops int
}

func (o Options) withDefaults() Options {
	// Agents run by path; a relative directory would leave bare names that
	// exec resolves through $PATH.
	if abs, err := filepath.Abs(o.Dir); err == nil && o.Dir != "" {
		o.Dir = abs
	}
	if o.MetadataExt == "" {
		o.MetadataExt = DefaultMetadataExt
	}
	if o.SelfPath == "" {
		o.SelfPath = platform.SelfExe
	}
	if o.MaxHops <= 0 {
		o.MaxHops = platform.MaxHops
	}
	return o
}

// Extractor produces the metadata document of a candidate file.
type Extractor interface {
	Extract(ctx context.Context, path string, raw bool) (*metadata.Document, error)
}

// Result describes a completed discovery pass.
type Result struct {
	Dir        string // directory actually scanned
	Fallback   bool   // Dir came from the running executable
	Candidates int    // files handed to the extractor
	Skipped    int    // entries filtered out by name, type, or mode
	Failed     int    // candidates whose metadata could not be extracted
	Added      int    // rules committed to the catalog
	Rejected   int    // rules discarded by validation or as duplicates
}

// Discoverer runs discovery passes.
type Discoverer struct {
	opts      Options
	extractor Extractor
	builder   *rules.Builder
	logger    *zap.Logger
}

// New returns a Discoverer. A nil logger discards diagnostics.
func New(opts Options, extractor Extractor, logger *zap.Logger) *Discoverer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Discoverer{
		opts:      opts.withDefaults(),
		extractor: extractor,
		builder:   rules.NewBuilder(logger),
		logger:    logger,
	}
}

// Discover scans the rule directory once and loads every rule it finds into
// catalog. It succeeds whenever the scan completes, whether or not any rule
// was produced. Directory entries are visited in name order; in raw-metadata
// mode the files matched by the metadata glob are visited last, in glob order.
func (d *Discoverer) Discover(ctx context.Context, catalog *rules.Catalog) (*Result, error) {
	dir, err := d.open()
	if err != nil {
		return nil, err
	}

	res := &Result{Dir: dir.path, Fallback: dir.fallback}
	deferred := make(map[string]bool, len(dir.glob))
	for _, p := range dir.glob {
		deferred[p] = true
	}

	for _, e := range dir.entries {
		if err := ctx.Err(); err != nil {
			return res, errors.Wrap(err, "discovery interrupted")
		}
		d.consider(ctx, catalog, res, dir.path, e.Name(), deferred)
	}
	for _, p := range dir.glob {
		if err := ctx.Err(); err != nil {
			return res, errors.Wrap(err, "discovery interrupted")
		}
		d.consider(ctx, catalog, res, dir.path, filepath.Base(p), nil)
	}

	d.logger.Debug("discovery complete",
		zap.String("dir", res.Dir),
		zap.Int("candidates", res.Candidates),
		zap.Int("rules", res.Added))
	return res, nil
}

// consider filters one directory entry and loads it if eligible. Entries
// listed in deferred are left for the glob pass.
func (d *Discoverer) consider(ctx context.Context, catalog *rules.Catalog, res *Result, dir, name string, deferred map[string]bool) {
	if skipName(name) {
		res.Skipped++
		return
	}

	ext := filepath.Ext(name)
	if hasRPMExt(ext) {
		d.logger.Warn("ignoring file with bad extension",
			zap.String("path", filepath.Join(dir, name)), zap.String("ext", ext))
		res.Skipped++
		return
	}

	path := filepath.Join(dir, name)
	if d.opts.RawMetadata {
		if ext != "."+d.opts.MetadataExt {
			res.Skipped++
			return
		}
		if deferred[path] {
			return
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		d.logger.Debug("cannot stat candidate", zap.String("path", path), zap.Error(err))
		res.Skipped++
		return
	}
	if info.IsDir() || (!d.opts.RawMetadata && !platform.IsExecutable(info.Mode())) {
		res.Skipped++
		return
	}

	res.Candidates++
	doc, err := d.extractor.Extract(ctx, path, d.opts.RawMetadata)
	if err != nil {
		d.logger.Warn("metadata extraction failed", zap.String("path", path), zap.Error(err))
		res.Failed++
		return
	}
	report := d.builder.Build(doc, path, catalog)
	res.Added += report.Added
	res.Rejected += report.Rejected
}

// skipName reports backup files and hidden files.
func skipName(name string) bool {
	return name == "" || strings.HasSuffix(name, "~") || strings.HasPrefix(name, ".")
}

// hasRPMExt reports package manager leftovers such as .rpmnew and .rpmsave.
func hasRPMExt(ext string) bool {
	return len(ext) >= 4 && strings.EqualFold(ext[:4], ".rpm")
}
