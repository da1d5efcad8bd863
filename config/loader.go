package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ParseError reports a malformed configuration file.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing config %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load reads a configuration file, picking the parser from the extension
// (.toml, .yaml, .yml). A missing file is not an error: the returned config
// holds the defaults.
func Load(path string) (EditorConfig, error) {
	cfg := DefaultConfig()

	table, err := LoadTable(path)
	if err != nil {
		return cfg, err
	}
	cfg.Apply(table)
	return cfg, nil
}

// LoadTable reads a configuration file into a plain table. Returns a nil
// table for a missing file.
func LoadTable(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var table map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &table)
	default:
		err = toml.Unmarshal(data, &table)
	}
	if err != nil {
		return nil, &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	return normalizeTable(table), nil
}

// Save writes the configuration, picking the encoder from the extension.
func Save(path string, cfg EditorConfig) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(cfg.Table())
	default:
		data, err = toml.Marshal(cfg.Table())
	}
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// normalizeTable brings YAML's int/interface shapes in line with what Apply
// expects (int64 numbers, []any pairs).
func normalizeTable(table map[string]any) map[string]any {
	if table == nil {
		return nil
	}
	out := make(map[string]any, len(table))
	for k, v := range table {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch n := v.(type) {
	case int:
		return int64(n)
	case uint64:
		return int64(n)
	case float32:
		return float64(n)
	case []any:
		out := make([]any, len(n))
		for i, item := range n {
			out[i] = normalizeValue(item)
		}
		return out
	default:
		return v
	}
}
