package metadata

import (
	"strconv"
	"strings"
)

// step selects same-named elements, optionally filtered by an attribute
// value, then optionally by 1-based position among the survivors of each
// parent.
type step struct {
	name      string
	index     int
	predAttr  string
	predValue string
}

func (s step) pick(candidates []*Node) []*Node {
	var out []*Node
	pos := 0
	for _, n := range candidates {
		if n.Name != s.name {
			continue
		}
		if s.predAttr != "" {
			if v, ok := n.Attr(s.predAttr); !ok || v != s.predValue {
				continue
			}
		}
		pos++
		if s.index > 0 && pos != s.index {
			continue
		}
		out = append(out, n)
	}
	return out
}

// Path addresses elements, and optionally one attribute, of a Document.
// Paths are immutable; every builder method returns a new Path, so a shared
// base can be extended freely.
type Path struct {
	steps []step
	attr  string
}

// Root starts a path at the top-level elements named name. An index of 0
// selects all of them; otherwise index is 1-based.
func Root(name string, index int) Path {
	return Path{steps: []step{{name: name, index: index}}}
}

// Child descends to the children named name of every selected element.
func (p Path) Child(name string, index int) Path {
	steps := make([]step, len(p.steps), len(p.steps)+1)
	copy(steps, p.steps)
	return Path{steps: append(steps, step{name: name, index: index})}
}

// Where keeps only the elements of the last step whose attribute attr equals
// value. The filter applies before the step's index.
func (p Path) Where(attr, value string) Path {
	if len(p.steps) == 0 {
		return p
	}
	steps := make([]step, len(p.steps))
	copy(steps, p.steps)
	last := &steps[len(steps)-1]
	last.predAttr, last.predValue = attr, value
	return Path{steps: steps, attr: p.attr}
}

// Attr addresses the attribute name on the selected elements.
func (p Path) Attr(name string) Path {
	return Path{steps: p.steps, attr: name}
}

// String renders p in XPath notation, for diagnostics.
func (p Path) String() string {
	var b strings.Builder
	for _, s := range p.steps {
		b.WriteByte('/')
		b.WriteString(s.name)
		if s.predAttr != "" {
			b.WriteString(`[@` + s.predAttr + `="` + s.predValue + `"]`)
		}
		if s.index > 0 {
			b.WriteString("[" + strconv.Itoa(s.index) + "]")
		}
	}
	if p.attr != "" {
		b.WriteString("/@" + p.attr)
	}
	return b.String()
}
