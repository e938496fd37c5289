package manifest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pcb-inspector/internal/domain/entity"
)

func TestFormatFromFilename(t *testing.T) {
	require.Equal(t, FormatJSON, FormatFromFilename("board.json"))
	require.Equal(t, FormatYAML, FormatFromFilename("board.YAML"))
	require.Equal(t, FormatYAML, FormatFromFilename("dir/board.yml"))
	require.Equal(t, FormatJSON, FormatFromFilename("board"))
}

func TestParseJSON(t *testing.T) {
	data := []byte(`[
		{"name": "R1", "x": 0.5, "y": 0.5, "w": 0.1, "h": 0.1},
		{"name": "C7", "x": 0.25, "y": 0.75, "w": 0.05, "h": 0.08}
	]`)

	m, err := Parse(data, FormatJSON)
	require.NoError(t, err)
	require.Equal(t, entity.Manifest{
		{Name: "R1", X: 0.5, Y: 0.5, W: 0.1, H: 0.1},
		{Name: "C7", X: 0.25, Y: 0.75, W: 0.05, H: 0.08},
	}, m)
}

func TestParseYAML(t *testing.T) {
	data := []byte(`
- name: U1
  x: 0.3
  y: 0.4
  w: 0.2
  h: 0.1
- name: U1
  x: 0.7
  y: 0.4
  w: 0.2
  h: 0.1
`)

	m, err := ParseFile("parts.yaml", data)
	require.NoError(t, err)
	require.Len(t, m, 2)
	require.Equal(t, "U1", m[1].Name)
	require.Equal(t, 0.7, m[1].X)
}

func TestParseIgnoresExtraKeys(t *testing.T) {
	m, err := Parse([]byte(`[{"name": "R1", "x": 0.5, "y": 0.5, "w": 0.1, "h": 0.1, "ref": "10k"}]`), FormatJSON)
	require.NoError(t, err)
	require.Equal(t, entity.Manifest{{Name: "R1", X: 0.5, Y: 0.5, W: 0.1, H: 0.1}}, m)

	m, err = Parse([]byte("- {name: R1, x: 0.5, y: 0.5, w: 0.1, h: 0.1, ref: 10k}"), FormatYAML)
	require.NoError(t, err)
	require.Len(t, m, 1)
}

func TestParseZeroCenterIsAccepted(t *testing.T) {
	m, err := Parse([]byte(`[{"name": "J1", "x": 0, "y": 0, "w": 0.1, "h": 0.1}]`), FormatJSON)
	require.NoError(t, err)
	require.Equal(t, 0.0, m[0].X)
}

func TestParseErrors(t *testing.T) {
	tests := map[string]struct {
		data   string
		format Format
	}{
		"broken json":        {`[{"name": "R1",`, FormatJSON},
		"object not list":    {`{"name": "R1"}`, FormatJSON},
		"empty list":         {`[]`, FormatJSON},
		"missing name":       {`[{"x": 0.5, "y": 0.5, "w": 0.1, "h": 0.1}]`, FormatJSON},
		"missing x json":     {`[{"name": "R1", "y": 0.5, "w": 0.1, "h": 0.1}]`, FormatJSON},
		"missing y json":     {`[{"name": "R1", "x": 0.5, "w": 0.1, "h": 0.1}]`, FormatJSON},
		"missing x and y":    {`[{"name": "R1", "w": 0.1, "h": 0.1}]`, FormatJSON},
		"missing size":       {`[{"name": "R1", "x": 0.5, "y": 0.5}]`, FormatJSON},
		"out of range":       {`[{"name": "R1", "x": 1.5, "y": 0.5, "w": 0.1, "h": 0.1}]`, FormatJSON},
		"missing x yaml":     {"- {name: R1, y: 0.5, w: 0.1, h: 0.1}", FormatYAML},
		"missing y yaml":     {"- {name: R1, x: 0.5, w: 0.1, h: 0.1}", FormatYAML},
		"broken yaml":        {"- name: [", FormatYAML},
		"unsupported format": {`[]`, Format("xml")},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			require.ErrorIs(t, err, entity.ErrInvalidManifest)
		})
	}
}

func TestParseNamesMissingField(t *testing.T) {
	_, err := Parse([]byte(`[
		{"name": "R1", "x": 0.5, "y": 0.5, "w": 0.1, "h": 0.1},
		{"name": "C2", "x": 0.5, "w": 0.1, "h": 0.1}
	]`), FormatJSON)
	require.ErrorIs(t, err, entity.ErrInvalidManifest)
	require.Contains(t, err.Error(), "entry 1")
	require.Contains(t, err.Error(), `"y"`)
}
