// Package formats provides pluggable level-plan file parsers.
package formats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tile-platformer/internal/games/platformer"
)

// planFile is the on-disk structure of a single plan.
type planFile struct {
	ID       string                          `yaml:"id" toml:"id" json:"id"`
	Name     string                          `yaml:"name" toml:"name" json:"name"`
	Rows     []string                        `yaml:"rows" toml:"rows" json:"rows"`
	Symbols  map[string]platformer.ActorType `yaml:"symbols,omitempty" toml:"symbols,omitempty" json:"symbols,omitempty"`
	Metadata map[string]string               `yaml:"metadata,omitempty" toml:"metadata,omitempty" json:"metadata,omitempty"`
}

// Level represents a parsed plan ready for use.
type Level struct {
	ID       string
	Name     string
	Rows     []string
	Symbols  platformer.SymbolMap
	Metadata map[string]string
}

// ParseYAML parses a YAML plan file.
func ParseYAML(data []byte) ([]Level, error) {
	var pf planFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	lvl, err := pf.level()
	if err != nil {
		return nil, err
	}
	return []Level{lvl}, nil
}

// ParseTOML parses a TOML plan file.
func ParseTOML(data []byte) ([]Level, error) {
	var pf planFile
	if _, err := toml.Decode(string(data), &pf); err != nil {
		return nil, fmt.Errorf("toml decode: %w", err)
	}
	lvl, err := pf.level()
	if err != nil {
		return nil, err
	}
	return []Level{lvl}, nil
}

// ParseJSON parses a JSON plan file. Besides a single plan object, a bare
// array of row arrays is accepted and yields one unnamed plan per entry.
func ParseJSON(data []byte) ([]Level, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var plans [][]string
		if err := json.Unmarshal(trimmed, &plans); err != nil {
			return nil, fmt.Errorf("json unmarshal: %w", err)
		}
		out := make([]Level, len(plans))
		for i, rows := range plans {
			out[i] = Level{Rows: rows}
		}
		return out, nil
	}

	var pf planFile
	if err := json.Unmarshal(trimmed, &pf); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	lvl, err := pf.level()
	if err != nil {
		return nil, err
	}
	return []Level{lvl}, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".toml", ".json"}
}

func (pf planFile) level() (Level, error) {
	symbols, err := ParseSymbols(pf.Symbols)
	if err != nil {
		return Level{}, err
	}
	return Level{
		ID:       pf.ID,
		Name:     pf.Name,
		Rows:     pf.Rows,
		Symbols:  symbols,
		Metadata: pf.Metadata,
	}, nil
}

// ParseSymbols converts a symbol table keyed by strings, as written in
// plan and config files, to a SymbolMap. Each key must be exactly one
// character.
func ParseSymbols(raw map[string]platformer.ActorType) (platformer.SymbolMap, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(platformer.SymbolMap, len(raw))
	for key, t := range raw {
		if utf8.RuneCountInString(key) != 1 {
			return nil, fmt.Errorf("symbol %q must be a single character", key)
		}
		r, _ := utf8.DecodeRuneInString(key)
		out[r] = t
	}
	return out, nil
}

