package rules

import (
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"
)

// Unspecified marks an action field an upsert should leave unchanged.
const Unspecified = -1

// RuleFlags are the lifecycle capabilities of a resource type.
type RuleFlags struct {
	InitOnAdd       bool `json:"init_on_add" yaml:"init_on_add"`
	DestroyOnDelete bool `json:"destroy_on_delete" yaml:"destroy_on_delete"`
}

// AttrFlags are the capabilities of a single resource attribute.
type AttrFlags struct {
	Required bool `json:"required,omitempty" yaml:"required,omitempty"`
	Unique   bool `json:"unique,omitempty" yaml:"unique,omitempty"`
	Primary  bool `json:"primary,omitempty" yaml:"primary,omitempty"`
	Reconfig bool `json:"reconfig,omitempty" yaml:"reconfig,omitempty"`
	Inherit  bool `json:"inherit,omitempty" yaml:"inherit,omitempty"`
}

// Validate reports an inherited attribute that also claims to be required,
// primary, or unique.
func (f AttrFlags) Validate() error {
	if f.Inherit && (f.Required || f.Primary || f.Unique) {
		return ErrInheritConflict
	}
	return nil
}

// String lists the set flags, comma separated.
func (f AttrFlags) String() string {
	var names []string
	for _, flag := range []struct {
		set  bool
		name string
	}{
		{f.Primary, "primary"},
		{f.Required, "required"},
		{f.Unique, "unique"},
		{f.Reconfig, "reconfig"},
		{f.Inherit, "inherit"},
	} {
		if flag.set {
			names = append(names, flag.name)
		}
	}
	return strings.Join(names, ",")
}

// Attribute is a configurable parameter of a resource type.
type Attribute struct {
	Name string `json:"name" yaml:"name"`
	// Value is the default value, or the inherited source when Flags.Inherit
	// is set. Nil when neither was declared.
	Value *string   `json:"value,omitempty" yaml:"value,omitempty"`
	Flags AttrFlags `json:"flags" yaml:"flags"`
}

// Key implements Keyed.
func (a Attribute) Key() string { return a.Name }

// Action is a lifecycle operation of a resource type. Depth only matters for
// status and monitor checks.
type Action struct {
	Name     string `json:"name" yaml:"name"`
	Depth    int    `json:"depth" yaml:"depth"`
	Timeout  int    `json:"timeout" yaml:"timeout"`
	Interval int    `json:"interval" yaml:"interval"`
	// LastRun belongs to whatever schedules the action; it is zero here.
	LastRun time.Time `json:"-" yaml:"-"`
}

// Key implements Keyed. Actions sharing a name are told apart by depth.
func (a Action) Key() string { return a.Name + "@" + strconv.Itoa(a.Depth) }

// ChildType is a resource type permitted (or forbidden) beneath another.
type ChildType struct {
	Name          string `json:"name" yaml:"name"`
	StartLevel    int    `json:"start_level" yaml:"start_level"`
	StopLevel     int    `json:"stop_level" yaml:"stop_level"`
	Forbid        bool   `json:"forbid,omitempty" yaml:"forbid,omitempty"`
	InlineDefined bool   `json:"inline_defined,omitempty" yaml:"inline_defined,omitempty"`
}

// Key implements Keyed.
func (c ChildType) Key() string { return c.Name }

// Attributes keeps the primary attribute, if any, in the first position.
type Attributes struct {
	Store[Attribute]
}

// Insert appends attr unless its name is taken. A primary attribute is
// swapped into the first position; a second primary is rejected.
func (a *Attributes) Insert(attr Attribute) error {
	if err := attr.Flags.Validate(); err != nil {
		return errors.Wrapf(err, "attribute %q", attr.Name)
	}
	if attr.Flags.Primary {
		if p, ok := a.Primary(); ok {
			return errors.Wrapf(ErrMultiplePrimary, "attribute %q conflicts with %q", attr.Name, p.Name)
		}
	}
	if err := a.Append(attr); err != nil {
		return errors.Wrapf(err, "attribute %q", attr.Name)
	}
	if attr.Flags.Primary {
		a.MoveToFront(a.Len() - 1)
	}
	return nil
}

// Primary returns the primary attribute.
func (a *Attributes) Primary() (Attribute, bool) {
	if a.Len() > 0 && a.At(0).Flags.Primary {
		return a.At(0), true
	}
	return Attribute{}, false
}

// Actions is the action list of a rule, updated with Upsert.
type Actions struct {
	Store[Action]
}

// ActionSpec is an upsert request. Depth, Timeout and Interval are either
// non-negative or Unspecified.
type ActionSpec struct {
	Name     string
	Depth    int
	Timeout  int
	Interval int
}

// Upsert overwrites the non-negative fields of every stored action with the
// same name whose depth equals spec.Depth, where an Unspecified depth matches
// every depth. The prior state of each overwritten action is returned. When
// nothing matches, a new action is appended; that requires every field of
// spec to be set.
//
// An Unspecified depth therefore folds onto all existing checks of that
// name, leaving a single effective configuration for them.
func (a *Actions) Upsert(spec ActionSpec) ([]Action, error) {
	if spec.Name == "" {
		return nil, errors.Wrap(ErrInvalidAction, "missing name")
	}
	if spec.Depth < 0 && spec.Timeout < 0 && spec.Interval < 0 {
		return nil, errors.Wrapf(ErrInvalidAction, "action %q sets no field", spec.Name)
	}

	var replaced []Action
	a.UpdateFunc(func(act *Action) bool {
		if act.Name != spec.Name || (spec.Depth != act.Depth && spec.Depth != Unspecified) {
			return false
		}
		replaced = append(replaced, *act)
		if spec.Timeout >= 0 {
			act.Timeout = spec.Timeout
		}
		if spec.Interval >= 0 {
			act.Interval = spec.Interval
		}
		return true
	})
	if len(replaced) > 0 {
		return replaced, nil
	}

	if spec.Depth < 0 || spec.Timeout < 0 || spec.Interval < 0 {
		return nil, errors.Wrapf(ErrInvalidAction, "new action %q needs depth, timeout and interval", spec.Name)
	}
	return nil, a.Append(Action{
		Name:     spec.Name,
		Depth:    spec.Depth,
		Timeout:  spec.Timeout,
		Interval: spec.Interval,
	})
}

// ChildTypes is the child-type list of a rule.
type ChildTypes struct {
	Store[ChildType]
}

// ResourceRule is the validated schema of one resource type.
type ResourceRule struct {
	Type         string    `json:"type" yaml:"type"`
	Agent        string    `json:"agent" yaml:"agent"`
	Version      string    `json:"version,omitempty" yaml:"version,omitempty"`
	Flags        RuleFlags `json:"flags" yaml:"flags"`
	MaxInstances int       `json:"max_instances" yaml:"max_instances"`

	Attributes Attributes `json:"-" yaml:"-"`
	Actions    Actions    `json:"-" yaml:"-"`
	ChildTypes ChildTypes `json:"-" yaml:"-"`
}

// NewRule returns an empty rule with both lifecycle flags set.
func NewRule(typeName, agent string) *ResourceRule {
	return &ResourceRule{
		Type:  typeName,
		Agent: agent,
		Flags: RuleFlags{InitOnAdd: true, DestroyOnDelete: true},
	}
}

// Key implements Keyed.
func (r *ResourceRule) Key() string { return r.Type }

// SetMaxInstances stores n, clamped to zero.
func (r *ResourceRule) SetMaxInstances(n int) {
	r.MaxInstances = max(n, 0)
}

// SemVer parses Version leniently. It returns nil when the version is absent
// or not a semantic version.
func (r *ResourceRule) SemVer() *semver.Version {
	if r.Version == "" {
		return nil
	}
	v, err := semver.NewVersion(strings.TrimPrefix(r.Version, "v"))
	if err != nil {
		return nil
	}
	return v
}

// Release empties every collection owned by the rule.
func (r *ResourceRule) Release() {
	r.Attributes.Drain(nil)
	r.Actions.Drain(nil)
	r.ChildTypes.Drain(nil)
}
