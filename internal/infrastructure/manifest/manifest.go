// Package manifest разбирает списки компонентов платы из JSON и YAML.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"pcb-inspector/internal/domain/entity"
)

// Format формат файла манифеста
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromFilename определяет формат по расширению, по умолчанию JSON.
func FormatFromFilename(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// record запись в том виде, в каком она пришла в файле.
// Указатели отличают отсутствующее поле от нулевого значения.
type record struct {
	Name string   `json:"name" yaml:"name"`
	X    *float64 `json:"x" yaml:"x"`
	Y    *float64 `json:"y" yaml:"y"`
	W    *float64 `json:"w" yaml:"w"`
	H    *float64 `json:"h" yaml:"h"`
}

func (r record) spec() (entity.ComponentSpec, error) {
	fields := []struct {
		key string
		val *float64
	}{{"x", r.X}, {"y", r.Y}, {"w", r.W}, {"h", r.H}}
	for _, f := range fields {
		if f.val == nil {
			return entity.ComponentSpec{}, fmt.Errorf("%w: component %q has no %q", entity.ErrInvalidManifest, r.Name, f.key)
		}
	}
	return entity.ComponentSpec{Name: r.Name, X: *r.X, Y: *r.Y, W: *r.W, H: *r.H}, nil
}

// Parse разбирает манифест и проверяет каждую запись.
// Посторонние ключи в записях игнорируются.
func Parse(data []byte, format Format) (entity.Manifest, error) {
	var records []record

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("%w: %v", entity.ErrInvalidManifest, err)
		}
	case FormatJSON:
		if err := json.NewDecoder(bytes.NewReader(data)).Decode(&records); err != nil {
			return nil, fmt.Errorf("%w: %v", entity.ErrInvalidManifest, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", entity.ErrInvalidManifest, format)
	}

	m := make(entity.Manifest, 0, len(records))
	for i, r := range records {
		spec, err := r.spec()
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		m = append(m, spec)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// ParseFile разбирает манифест, определяя формат по имени файла.
func ParseFile(name string, data []byte) (entity.Manifest, error) {
	return Parse(data, FormatFromFilename(name))
}
