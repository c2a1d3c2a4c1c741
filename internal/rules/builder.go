package rules

import (
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/hugovk/clufter/internal/metadata"
)

const (
	// ReservedType may not be used as a resource type name.
	ReservedType = "action"

	agentElement = "resource-agent"
	vendorTag    = "rgmanager"
)

// BuildReport summarizes what one document contributed to a catalog.
type BuildReport struct {
	Added    int
	Rejected int
}

// Builder turns metadata documents into catalog rules.
type Builder struct {
	logger *zap.Logger
}

// NewBuilder returns a Builder logging to logger, or nowhere when nil.
func NewBuilder(logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{logger: logger}
}

// Build reads resource-agent[1], resource-agent[2], ... from doc until one has
// no name, and commits a rule for each into catalog. A rule that fails
// validation, or whose type is already cataloged, is discarded without
// affecting the others. The reserved type name ends processing of doc.
func (b *Builder) Build(doc *metadata.Document, agent string, catalog *Catalog) BuildReport {
	var report BuildReport
	for i := 1; ; i++ {
		base := metadata.Root(agentElement, i)
		typeName, ok := doc.Value(base.Attr("name"))
		if !ok {
			return report
		}
		if strings.EqualFold(typeName, ReservedType) {
			b.logger.Error("discarding resource rule",
				zap.String("path", agent), zap.Error(errors.Wrapf(ErrReservedType, "%q", typeName)))
			report.Rejected++
			return report
		}

		rr, err := b.rule(doc, base, typeName, agent)
		if err != nil {
			b.logger.Error("discarding resource rule", zap.String("path", agent), zap.Error(err))
			rr.Release()
			report.Rejected++
			continue
		}
		if err := catalog.Add(rr); err != nil {
			b.logger.Error("discarding resource rule", zap.String("path", agent), zap.Error(err))
			rr.Release()
			report.Rejected++
			continue
		}
		report.Added++
	}
}

// rule builds one rule from the resource-agent element at base. On error the
// partially populated rule is returned so the caller can release it.
func (b *Builder) rule(doc *metadata.Document, base metadata.Path, typeName, agent string) (*ResourceRule, error) {
	rr := NewRule(typeName, agent)

	if v, ok := doc.Value(base.Attr("version")); ok {
		rr.Version = v
		if rr.SemVer() == nil {
			b.logger.Debug("resource agent version is not semantic",
				zap.String("type", typeName), zap.String("version", v))
		}
	}

	special := base.Child("special", 0).Where("tag", vendorTag)
	attrs := special.Child("attributes", 0)
	if v, ok := doc.Value(attrs.Attr("maxinstances")); ok {
		rr.SetMaxInstances(atoi(v))
	}
	if v, ok := doc.Value(attrs.Attr("init_on_add")); ok {
		rr.Flags.InitOnAdd = atoi(v) != 0
	}
	if v, ok := doc.Value(attrs.Attr("destroy_on_delete")); ok {
		rr.Flags.DestroyOnDelete = atoi(v) != 0
	}

	collectChildTypes(doc, special, rr, b.logger)
	collectActions(doc, base.Child("actions", 0), rr, b.logger)
	if err := collectAttributes(doc, base.Child("parameters", 0), rr, b.logger); err != nil {
		return rr, errors.Wrapf(err, "loading %s", agent)
	}
	return rr, nil
}
