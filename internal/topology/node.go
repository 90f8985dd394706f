package topology

// Attribute is one named value of a node; Value is nil when the file was
// missing, unreadable or empty.
type Attribute struct {
	Name  string
	Value *string
}

// Node is one discovered sysfs object
type Node struct {
	Kind       Kind
	Name       string
	DevicePath string
	DataPath   string
	Attributes []Attribute
	Children   []*Node
}

// Attr returns the value of the named attribute
func (n *Node) Attr(name string) (*string, bool) {
	for _, a := range n.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return nil, false
}

// Visit calls fn for n and every descendant, depth first
func (n *Node) Visit(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Visit(fn)
	}
}
