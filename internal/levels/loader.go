// Package levels provides level-plan loading for the platformer.
// This package depends on platformer but platformer does not depend on levels.
package levels

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/vovakirdan/tile-platformer/internal/games/platformer"
	"github.com/vovakirdan/tile-platformer/internal/levels/formats"
)

// Plan represents a complete level-plan definition.
type Plan struct {
	ID       string
	Name     string
	Rows     []string
	Symbols  platformer.SymbolMap // Overrides on top of the campaign symbols
	Metadata map[string]string
	FilePath string
}

// Size returns the plan width (longest row) and height.
func (p Plan) Size() (w, h int) {
	for _, row := range p.Rows {
		if n := len([]rune(row)); n > w {
			w = n
		}
	}
	return w, len(p.Rows)
}

// Stage converts the plan into a campaign stage.
func (p Plan) Stage() platformer.Stage {
	return platformer.Stage{ID: p.ID, Rows: p.Rows, Symbols: p.Symbols}
}

// Stages converts plans into campaign stages, keeping their order.
func Stages(plans []Plan) []platformer.Stage {
	out := make([]platformer.Stage, len(plans))
	for i, p := range plans {
		out[i] = p.Stage()
	}
	return out
}

// Loader handles loading plans from a directory tree.
type Loader struct {
	FS   fs.FS
	Root string
}

// NewLoader creates a loader over any file system, e.g. an embed.FS.
func NewLoader(fsys fs.FS, root string) *Loader {
	if root == "" {
		root = "."
	}
	return &Loader{FS: fsys, Root: root}
}

// NewDirLoader creates a loader for a directory on disk.
func NewDirLoader(dir string) *Loader {
	return NewLoader(os.DirFS(dir), ".")
}

// Files returns every supported plan file under Root in lexical order.
func (l *Loader) Files() ([]string, error) {
	var files []string

	err := fs.WalkDir(l.FS, l.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if IsPlanFile(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	return files, nil
}

// LoadAll loads every plan under Root. Files that fail to parse are
// skipped. Returns plans sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Plan, error) {
	files, err := l.Files()
	if err != nil {
		return nil, err
	}

	var plans []Plan
	for _, f := range files {
		loaded, err := l.LoadFile(f)
		if err != nil {
			// Skip invalid files
			continue
		}
		plans = append(plans, loaded...)
	}

	sort.SliceStable(plans, func(i, j int) bool {
		return plans[i].ID < plans[j].ID
	})

	return plans, nil
}

// LoadFile loads all plans in a single file. Plans without an ID are named
// after the file; files holding several such plans get a numeric suffix.
func (l *Loader) LoadFile(p string) ([]Plan, error) {
	data, err := fs.ReadFile(l.FS, p)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", p, err)
	}

	ext := strings.ToLower(path.Ext(p))
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return nil, fmt.Errorf("parsing file %s: %w", p, err)
	}

	base := strings.TrimSuffix(path.Base(p), path.Ext(p))
	plans := make([]Plan, len(parsed))
	for i, lvl := range parsed {
		id := lvl.ID
		if id == "" {
			id = base
			if len(parsed) > 1 {
				id = fmt.Sprintf("%s-%02d", base, i+1)
			}
		}
		name := lvl.Name
		if name == "" {
			name = id
		}
		plans[i] = Plan{
			ID:       id,
			Name:     name,
			Rows:     lvl.Rows,
			Symbols:  lvl.Symbols,
			Metadata: lvl.Metadata,
			FilePath: p,
		}
	}

	return plans, nil
}

// LoadByID loads a specific plan by ID.
func (l *Loader) LoadByID(id string) (Plan, error) {
	plans, err := l.LoadAll()
	if err != nil {
		return Plan{}, err
	}

	for _, p := range plans {
		if p.ID == id {
			return p, nil
		}
	}

	return Plan{}, fmt.Errorf("level not found: %s", id)
}

// ListIDs returns all plan IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	plans, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(plans))
	for i, p := range plans {
		ids[i] = p.ID
	}
	return ids, nil
}

// IsPlanFile reports whether the path has a supported plan extension.
func IsPlanFile(p string) bool {
	ext := strings.ToLower(path.Ext(p))
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) ([]formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	case ".toml":
		return formats.ParseTOML(data)
	case ".json":
		return formats.ParseJSON(data)
	default:
		return nil, fmt.Errorf("unsupported extension: %s", ext)
	}
}
