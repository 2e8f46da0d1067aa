package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type summary struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

func (s summary) TableData() Data {
	return Data{Headers: []string{"Name", "Count"}, Rows: [][]string{{s.Name, "2"}}}
}

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"table", "JSON", " yaml ", ""} {
		_, err := ParseFormat(in)
		assert.NoError(t, err, in)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestDetectFormat_Explicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
}

func TestFormatters(t *testing.T) {
	data := summary{Name: "acme", Count: 2}

	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(FormatJSON).Format(&buf, data))
		assert.JSONEq(t, `{"name":"acme","count":2}`, buf.String())
	})

	t.Run("YAML", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(FormatYAML).Format(&buf, data))
		assert.Contains(t, buf.String(), "name: acme")
		assert.Contains(t, buf.String(), "count: 2")
	})

	t.Run("Table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(FormatTable).Format(&buf, data))
		out := buf.String()
		assert.Contains(t, strings.ToUpper(out), "NAME")
		assert.Contains(t, out, "acme")
	})

	t.Run("Table falls back to JSON", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(FormatTable).Format(&buf, map[string]int{"a": 1}))
		assert.JSONEq(t, `{"a":1}`, buf.String())
	})
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	err := RenderTable(&buf, Data{
		Headers: []string{"column", "manual", "automated"},
		Rows:    [][]string{{"Net billed", "float64", "object"}},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Net billed")
	assert.Contains(t, buf.String(), "float64")
}
