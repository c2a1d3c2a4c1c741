package metadata

import (
	"bytes"
	"encoding/xml"
	"io"

	"github.com/cockroachdb/errors"
	"golang.org/x/text/encoding/htmlindex"
)

// Node is an element of a parsed metadata document. Text content is not kept;
// the metadata schema carries everything of interest in attributes.
type Node struct {
	Name     string
	Attrs    map[string]string
	Children []*Node
}

// Attr returns the value of an attribute of n.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.Attrs[name]
	return v, ok
}

// Document is a parsed metadata document. It is safe for concurrent reads.
type Document struct {
	roots []*Node
}

// charsetReader decodes documents that declare a non-UTF-8 encoding, such as
// ISO-8859-1.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, errors.Wrapf(err, "unsupported encoding %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}

// Parse builds a Document from raw XML.
func Parse(data []byte) (*Document, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = true
	dec.CharsetReader = charsetReader

	doc := &Document{}
	var stack []*Node
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Mark(errors.Wrap(err, "parsing metadata"), ErrMalformed)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Name: t.Name.Local, Attrs: make(map[string]string, len(t.Attr))}
			for _, a := range t.Attr {
				n.Attrs[a.Name.Local] = a.Value
			}
			if len(stack) == 0 {
				doc.roots = append(doc.roots, n)
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		}
	}

	if len(doc.roots) == 0 {
		return nil, errors.Wrap(ErrMalformed, "no root element")
	}
	return doc, nil
}

// Roots returns the top-level elements.
func (d *Document) Roots() []*Node { return d.roots }

// Select returns the elements addressed by the element steps of p.
func (d *Document) Select(p Path) []*Node {
	if len(p.steps) == 0 {
		return nil
	}
	nodes := p.steps[0].pick(d.roots)
	for _, s := range p.steps[1:] {
		var next []*Node
		for _, n := range nodes {
			next = append(next, s.pick(n.Children)...)
		}
		nodes = next
		if len(nodes) == 0 {
			break
		}
	}
	return nodes
}

// Value returns the attribute addressed by p. It reports false unless exactly
// one element matches and carries the attribute: an ambiguous path yields
// nothing rather than an arbitrary pick.
func (d *Document) Value(p Path) (string, bool) {
	if p.attr == "" {
		return "", false
	}
	var (
		value string
		found int
	)
	for _, n := range d.Select(p) {
		if v, ok := n.Attr(p.attr); ok {
			value = v
			found++
		}
	}
	if found != 1 {
		return "", false
	}
	return value, true
}

// Has reports whether p addresses at least one element, or, for an attribute
// path, at least one element carrying the attribute.
func (d *Document) Has(p Path) bool {
	for _, n := range d.Select(p) {
		if p.attr == "" {
			return true
		}
		if _, ok := n.Attr(p.attr); ok {
			return true
		}
	}
	return false
}
