// Package markup reads declarative lattice documents: a fixed-schema
// XML dialect describing body trees with composite elements. Parsing
// keeps source line numbers so every validation error points at the
// offending element.
package markup

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Node is one parsed element. Attribute order is not preserved;
// duplicate attributes are a parse error.
type Node struct {
	Name     string
	Attrs    map[string]string
	Children []*Node
	Line     int
}

// Attr returns the attribute value and whether it is present.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.Attrs[name]
	return v, ok
}

// First returns the first child with the given element name, nil if
// absent.
func (n *Node) First(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// All returns every child with the given element name, in document
// order.
func (n *Node) All(name string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// ParseNodes reads an XML document into a node tree rooted at the single
// top-level element.
func ParseNodes(r io.Reader) (*Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("markup: read document: %w", err)
	}
	lines := buildLineIndex(data)

	dec := xml.NewDecoder(bytes.NewReader(data))
	var root *Node
	var stack []*Node

	for {
		// The offset before the token points into the element start.
		line := lines.at(dec.InputOffset())
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("markup: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{
				Name:  t.Name.Local,
				Attrs: make(map[string]string, len(t.Attr)),
				Line:  line,
			}
			for _, a := range t.Attr {
				if _, dup := n.Attrs[a.Name.Local]; dup {
					return nil, errAt(n, "duplicate attribute %q", a.Name.Local)
				}
				n.Attrs[a.Name.Local] = a.Value
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errAt(n, "multiple root elements")
				}
				root = n
			} else {
				p := stack[len(stack)-1]
				p.Children = append(p.Children, n)
			}
			stack = append(stack, n)

		case xml.EndElement:
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) > 0 && len(strings.TrimSpace(string(t))) > 0 {
				return nil, errAt(stack[len(stack)-1],
					"unexpected text content in element %q", stack[len(stack)-1].Name)
			}
		}
	}
	if root == nil {
		return nil, &Error{Msg: "empty document"}
	}
	return root, nil
}

// lineIndex maps byte offsets to 1-based line numbers.
type lineIndex []int64 // offset of the first byte of each line

func buildLineIndex(data []byte) lineIndex {
	idx := lineIndex{0}
	for i, b := range data {
		if b == '\n' {
			idx = append(idx, int64(i+1))
		}
	}
	return idx
}

// at returns the 1-based line containing byte offset off.
func (idx lineIndex) at(off int64) int {
	return sort.Search(len(idx), func(i int) bool { return idx[i] > off })
}
