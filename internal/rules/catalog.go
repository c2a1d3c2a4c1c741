package rules

import (
	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"
)

// Catalog is the set of resource rules built by discovery. It has a single
// writer while it is loaded; afterwards it is read-only and may be shared.
type Catalog struct {
	rules Store[*ResourceRule]
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{}
}

// Add commits rule. A rule whose type is already present is rejected and the
// catalog keeps the first one.
func (c *Catalog) Add(rule *ResourceRule) error {
	if err := c.rules.Append(rule); err != nil {
		return errors.Wrapf(ErrDuplicateRule, "storing %s", rule.Type)
	}
	return nil
}

// Get returns the rule for a resource type.
func (c *Catalog) Get(typeName string) (*ResourceRule, bool) {
	return c.rules.Get(typeName)
}

// Len returns the number of rules.
func (c *Catalog) Len() int { return c.rules.Len() }

// Rules returns the rules in commit order.
func (c *Catalog) Rules() []*ResourceRule { return c.rules.Items() }

// Matching returns the rules whose version satisfies constraint. Rules
// without a semantic version never match.
func (c *Catalog) Matching(constraint *semver.Constraints) []*ResourceRule {
	var out []*ResourceRule
	for _, r := range c.rules.Items() {
		if v := r.SemVer(); v != nil && constraint.Check(v) {
			out = append(out, r)
		}
	}
	return out
}

// Destroy releases every rule and leaves the catalog empty.
func (c *Catalog) Destroy() {
	c.rules.Drain(func(r *ResourceRule) { r.Release() })
}

// RuleView is a flattened, serializable copy of a rule.
type RuleView struct {
	Type         string      `json:"type" yaml:"type"`
	Agent        string      `json:"agent" yaml:"agent"`
	Version      string      `json:"version,omitempty" yaml:"version,omitempty"`
	Flags        RuleFlags   `json:"flags" yaml:"flags"`
	MaxInstances int         `json:"max_instances" yaml:"max_instances"`
	Attributes   []Attribute `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Actions      []Action    `json:"actions,omitempty" yaml:"actions,omitempty"`
	ChildTypes   []ChildType `json:"child_types,omitempty" yaml:"child_types,omitempty"`
}

// View returns a serializable copy of r.
func (r *ResourceRule) View() RuleView {
	return RuleView{
		Type:         r.Type,
		Agent:        r.Agent,
		Version:      r.Version,
		Flags:        r.Flags,
		MaxInstances: r.MaxInstances,
		Attributes:   r.Attributes.Items(),
		Actions:      r.Actions.Items(),
		ChildTypes:   r.ChildTypes.Items(),
	}
}
