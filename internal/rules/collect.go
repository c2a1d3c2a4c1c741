package rules

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/hugovk/clufter/internal/duration"
	"github.com/hugovk/clufter/internal/metadata"
)

// collectChildTypes reads child[1], child[2], ... under base until one has no
// type. Duplicate child types are skipped.
func collectChildTypes(doc *metadata.Document, base metadata.Path, rr *ResourceRule, log *zap.Logger) {
	for i := 1; ; i++ {
		child := base.Child("child", i)
		name, ok := doc.Value(child.Attr("type"))
		if !ok {
			return
		}

		ct := ChildType{Name: name}
		if v, ok := doc.Value(child.Attr("start")); ok {
			ct.StartLevel = atoi(v)
		}
		if v, ok := doc.Value(child.Attr("stop")); ok {
			ct.StopLevel = atoi(v)
		}
		if v, ok := doc.Value(child.Attr("forbid")); ok {
			ct.Forbid = atoi(v) != 0
		}

		if err := rr.ChildTypes.Append(ct); err != nil {
			log.Warn("ignoring duplicate child type",
				zap.String("type", rr.Type), zap.String("child", name))
		}
	}
}

// collectActions reads action[1], action[2], ... under base until one has no
// name. Depth is only read for status and monitor checks.
func collectActions(doc *metadata.Document, base metadata.Path, rr *ResourceRule, log *zap.Logger) {
	for i := 1; ; i++ {
		action := base.Child("action", i)
		name, ok := doc.Value(action.Attr("name"))
		if !ok {
			return
		}

		spec := ActionSpec{Name: name}
		if v, ok := doc.Value(action.Attr("timeout")); ok {
			spec.Timeout = duration.Seconds(v)
		}
		if v, ok := doc.Value(action.Attr("interval")); ok {
			spec.Interval = duration.Seconds(v)
		}
		if name == "status" || name == "monitor" {
			if v, ok := doc.Value(action.Attr("depth")); ok {
				spec.Depth = max(atoi(v), 0)
			}
		}

		replaced, err := rr.Actions.Upsert(spec)
		if err != nil {
			log.Warn("ignoring action", zap.String("type", rr.Type), zap.Error(err))
			continue
		}
		for _, old := range replaced {
			log.Info("replacing action",
				zap.String("type", rr.Type),
				zap.String("action", name),
				zap.Int("depth", old.Depth),
				zap.Int("old_timeout", old.Timeout),
				zap.Int("timeout", spec.Timeout),
				zap.Int("old_interval", old.Interval),
				zap.Int("interval", spec.Interval))
		}
	}
}

// collectAttributes reads parameter[1], parameter[2], ... under base until one
// has no name. A second primary attribute, or an inherited attribute that is
// also primary, unique, or required, fails the whole rule. A primary flag
// counts even on a parameter later dropped as a duplicate name.
func collectAttributes(doc *metadata.Document, base metadata.Path, rr *ResourceRule, log *zap.Logger) error {
	var primary string
	for i := 1; ; i++ {
		param := base.Child("parameter", i)
		name, ok := doc.Value(param.Attr("name"))
		if !ok {
			return nil
		}

		attr := Attribute{Name: name}
		if v, ok := doc.Value(param.Child("content", 0).Attr("default")); ok {
			attr.Value = &v
		}

		flag := func(key string) bool {
			v, ok := doc.Value(param.Attr(key))
			return ok && truthy(v)
		}
		attr.Flags.Required = flag("required")
		attr.Flags.Unique = flag("unique")
		attr.Flags.Primary = flag("primary")
		attr.Flags.Reconfig = flag("reconfig")

		// The inherit value names the source, possibly empty; it supersedes
		// any default.
		if src, ok := doc.Value(param.Attr("inherit")); ok {
			attr.Flags.Inherit = true
			attr.Value = &src
		}

		if attr.Flags.Primary {
			if primary != "" {
				return errors.Wrapf(ErrMultiplePrimary, "resource type %s: attribute %q conflicts with %q",
					rr.Type, name, primary)
			}
			primary = name
		}

		if err := rr.Attributes.Insert(attr); err != nil {
			if errors.Is(err, ErrExists) {
				log.Warn("ignoring duplicate attribute",
					zap.String("type", rr.Type), zap.String("attribute", name))
				continue
			}
			return errors.Wrapf(err, "resource type %s", rr.Type)
		}
	}
}
