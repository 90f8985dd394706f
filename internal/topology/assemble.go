package topology

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/sigreer/scsitree/internal/ordered"
)

// Layout selects how children sit next to attributes in the output
type Layout string

const (
	// LayoutFlat inlines children as siblings of the attributes, keyed by
	// name. This is the shape earlier tools emitted.
	LayoutFlat Layout = "flat"
	// LayoutNested keeps attributes and children under separate keys
	LayoutNested Layout = "nested"
)

// ParseLayout validates a layout name
func ParseLayout(s string) (Layout, error) {
	switch l := Layout(s); l {
	case LayoutFlat, LayoutNested:
		return l, nil
	}
	return "", fmt.Errorf("unknown layout %q (want %s or %s)", s, LayoutFlat, LayoutNested)
}

// Assembler turns nodes into ordered maps ready for encoding
type Assembler struct {
	layout Layout
	log    logrus.FieldLogger
}

// NewAssembler creates an assembler for layout. An empty layout means flat.
func NewAssembler(layout Layout, log logrus.FieldLogger) *Assembler {
	if layout == "" {
		layout = LayoutFlat
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Assembler{layout: layout, log: log}
}

// Assemble converts n and its subtree
func (a *Assembler) Assemble(n *Node) *ordered.Map {
	if a.layout == LayoutNested {
		return a.nest(n)
	}
	return a.flatten(n)
}

// Attributes returns only the attribute map of n
func (a *Assembler) Attributes(n *Node) *ordered.Map {
	m := ordered.New()
	for _, attr := range n.Attributes {
		m.Set(attr.Name, attr.Value)
	}
	return m
}

func (a *Assembler) flatten(n *Node) *ordered.Map {
	m := a.Attributes(n)
	for _, c := range n.Children {
		if m.Set(c.Name, a.flatten(c)) {
			a.log.WithFields(logrus.Fields{"path": n.DevicePath, "key": c.Name}).
				Warn("Child name shadows an attribute or sibling")
		}
	}
	return m
}

func (a *Assembler) nest(n *Node) *ordered.Map {
	children := ordered.New()
	for _, c := range n.Children {
		if children.Set(c.Name, a.nest(c)) {
			a.log.WithFields(logrus.Fields{"path": n.DevicePath, "key": c.Name}).
				Warn("Duplicate child name")
		}
	}

	m := ordered.New()
	m.Set("kind", n.Kind.String())
	m.Set("attributes", a.Attributes(n))
	m.Set("children", children)
	return m
}
