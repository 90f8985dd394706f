package ordered

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func strPtr(s string) *string { return &s }

func sample() *Map {
	lun := New()
	lun.Set("vendor", strPtr("SEAGATE"))
	lun.Set("wwid", nil)

	m := New()
	m.Set("state", strPtr("running"))
	m.Set("0:0:0:0", lun)
	m.Set("count", 1)
	return m
}

func TestMap_SetKeepsPosition(t *testing.T) {
	m := New()
	assert.False(t, m.Set("b", 1))
	assert.False(t, m.Set("a", 2))
	assert.True(t, m.Set("b", 3))

	assert.Equal(t, []string{"b", "a"}, m.Keys())
	v, ok := m.Get("b")
	require.True(t, ok)
	assert.Equal(t, 3, v)
	assert.Equal(t, 2, m.Len())
}

func TestMap_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(sample())
	require.NoError(t, err)
	assert.Equal(t, `{"state":"running","0:0:0:0":{"vendor":"SEAGATE","wwid":null},"count":1}`, string(out))
}

func TestMap_Sorted(t *testing.T) {
	out, err := json.Marshal(sample().Sorted())
	require.NoError(t, err)
	assert.Equal(t, `{"0:0:0:0":{"vendor":"SEAGATE","wwid":null},"count":1,"state":"running"}`, string(out))
}

func TestMap_MarshalYAML(t *testing.T) {
	out, err := yaml.Marshal(sample())
	require.NoError(t, err)

	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal(out, &doc))
	require.Len(t, doc.Content, 1)
	root := doc.Content[0]
	require.Equal(t, yaml.MappingNode, root.Kind)

	var keys []string
	for i := 0; i < len(root.Content); i += 2 {
		keys = append(keys, root.Content[i].Value)
	}
	assert.Equal(t, []string{"state", "0:0:0:0", "count"}, keys)

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	lun, ok := decoded["0:0:0:0"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "SEAGATE", lun["vendor"])
	assert.Nil(t, lun["wwid"])
	assert.Equal(t, 1, decoded["count"])
}
