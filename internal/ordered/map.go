// Package ordered provides an insertion-ordered string-keyed map that
// serializes to JSON and YAML in key order.
package ordered

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Map keeps keys in insertion order. Values are typically *string, int,
// or nested *Map.
type Map struct {
	keys   []string
	values map[string]interface{}
}

// New creates an empty map
func New() *Map {
	return &Map{values: make(map[string]interface{})}
}

// Set stores value under key. A new key is appended; an existing key keeps
// its position and reports true.
func (m *Map) Set(key string, value interface{}) (replaced bool) {
	if _, ok := m.values[key]; ok {
		m.values[key] = value
		return true
	}
	m.keys = append(m.keys, key)
	m.values[key] = value
	return false
}

// Get returns the value stored under key
func (m *Map) Get(key string) (interface{}, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns a copy of the keys in order
func (m *Map) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Len returns the number of keys
func (m *Map) Len() int {
	return len(m.keys)
}

// Sorted returns a deep copy with keys sorted at every nesting level
func (m *Map) Sorted() *Map {
	out := New()
	keys := m.Keys()
	sort.Strings(keys)
	for _, k := range keys {
		v := m.values[k]
		if sub, ok := v.(*Map); ok {
			v = sub.Sorted()
		}
		out.Set(k, v)
	}
	return out
}

// MarshalJSON writes the object with keys in order
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML builds a mapping node so the encoder keeps key order
func (m *Map) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range m.keys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
		valNode := &yaml.Node{}
		if err := valNode.Encode(m.values[k]); err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		node.Content = append(node.Content, keyNode, valNode)
	}
	return node, nil
}
