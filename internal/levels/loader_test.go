package levels

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/vovakirdan/tile-platformer/internal/games/platformer"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"campaign/01-intro.yaml": {Data: []byte(`
id: intro
name: Intro
rows:
  - "      "
  - "  o   "
  - "  @   "
  - "xxxxxx"
metadata:
  author: test
`)},
		"campaign/02-rain.toml": {Data: []byte(`
id = "rain"
name = "Rain"
rows = [
  " v    ",
  " *    ",
  " @    ",
  "xxx!xx",
]

[symbols]
"*" = "coin"
`)},
		"campaign/03-classic.json": {Data: []byte(`[
  ["  o ", " @  ", "xxxx"],
  ["o   ", "@   ", "x!!x"]
]`)},
		"campaign/04-named.json": {Data: []byte(`{"id": "named", "rows": [" o", " @", "xx"]}`)},
		"campaign/broken.yaml":   {Data: []byte("rows: [unterminated")},
		"campaign/notes.txt":     {Data: []byte("not a plan")},
	}
}

func TestLoaderFiles(t *testing.T) {
	loader := NewLoader(testFS(), "campaign")

	files, err := loader.Files()
	if err != nil {
		t.Fatalf("Files() failed: %v", err)
	}
	if len(files) != 5 {
		t.Errorf("expected 5 plan files, got %d: %v", len(files), files)
	}
	for _, f := range files {
		if filepath.Ext(f) == ".txt" {
			t.Errorf("unsupported file listed: %s", f)
		}
	}
}

func TestLoaderLoadAll(t *testing.T) {
	loader := NewLoader(testFS(), "campaign")

	plans, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	// broken.yaml is skipped; the JSON array yields two plans.
	if len(plans) != 5 {
		t.Fatalf("expected 5 plans, got %d", len(plans))
	}

	// Should be sorted by ID
	for i := 1; i < len(plans); i++ {
		if plans[i-1].ID >= plans[i].ID {
			t.Errorf("plans not sorted: %s >= %s", plans[i-1].ID, plans[i].ID)
		}
	}
}

func TestLoaderLoadYAML(t *testing.T) {
	loader := NewLoader(testFS(), "campaign")

	plan, err := loader.LoadByID("intro")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}

	if plan.Name != "Intro" {
		t.Errorf("expected Name 'Intro', got %q", plan.Name)
	}
	if w, h := plan.Size(); w != 6 || h != 4 {
		t.Errorf("expected 6x4, got %dx%d", w, h)
	}
	if plan.Metadata["author"] != "test" {
		t.Errorf("expected author metadata, got %v", plan.Metadata)
	}
	if plan.FilePath != "campaign/01-intro.yaml" {
		t.Errorf("unexpected file path %q", plan.FilePath)
	}
}

func TestLoaderLoadTOMLSymbols(t *testing.T) {
	loader := NewLoader(testFS(), "campaign")

	plan, err := loader.LoadByID("rain")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}

	if plan.Symbols['*'] != platformer.ActorCoin {
		t.Errorf("expected '*' to map to coin, got %v", plan.Symbols)
	}
	if len(plan.Rows) != 4 || plan.Rows[3] != "xxx!xx" {
		t.Errorf("unexpected rows %q", plan.Rows)
	}
}

func TestLoaderJSONArrayIDs(t *testing.T) {
	loader := NewLoader(testFS(), "campaign")

	ids, err := loader.ListIDs()
	if err != nil {
		t.Fatalf("ListIDs failed: %v", err)
	}

	expected := []string{"03-classic-01", "03-classic-02", "intro", "named", "rain"}
	if len(ids) != len(expected) {
		t.Fatalf("ListIDs() = %v, expected %v", ids, expected)
	}
	for i := range expected {
		if ids[i] != expected[i] {
			t.Errorf("ListIDs()[%d] = %q, expected %q", i, ids[i], expected[i])
		}
	}
}

func TestLoaderLoadFileErrors(t *testing.T) {
	loader := NewLoader(testFS(), "campaign")

	if _, err := loader.LoadFile("campaign/broken.yaml"); err == nil {
		t.Error("expected parse error for broken.yaml")
	}
	if _, err := loader.LoadFile("campaign/missing.yaml"); err == nil {
		t.Error("expected read error for missing file")
	}
	if _, err := loader.LoadByID("nope"); err == nil {
		t.Error("expected error for unknown ID")
	}
}

func TestLoaderBadSymbolKey(t *testing.T) {
	fsys := fstest.MapFS{
		"bad.yaml": {Data: []byte("id: bad\nrows: ['@']\nsymbols:\n  ab: coin\n")},
	}
	if _, err := NewLoader(fsys, ".").LoadFile("bad.yaml"); err == nil {
		t.Error("expected error for multi-character symbol")
	}

	fsys = fstest.MapFS{
		"bad.yaml": {Data: []byte("id: bad\nrows: ['@']\nsymbols:\n  a: dragon\n")},
	}
	if _, err := NewLoader(fsys, ".").LoadFile("bad.yaml"); err == nil {
		t.Error("expected error for unknown actor type")
	}
}

func TestDirLoader(t *testing.T) {
	dir := t.TempDir()
	data := []byte("id: disk\nrows:\n  - ' o'\n  - ' @'\n  - 'xx'\n")
	if err := os.WriteFile(filepath.Join(dir, "disk.yaml"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	plans, err := NewDirLoader(dir).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(plans) != 1 || plans[0].ID != "disk" {
		t.Errorf("unexpected plans %+v", plans)
	}
}

func TestStages(t *testing.T) {
	plans, err := NewLoader(testFS(), "campaign").LoadAll()
	if err != nil {
		t.Fatal(err)
	}

	stages := Stages(plans)
	if len(stages) != len(plans) {
		t.Fatalf("expected %d stages, got %d", len(plans), len(stages))
	}
	for i := range plans {
		if stages[i].ID != plans[i].ID {
			t.Errorf("stage %d ID = %q, expected %q", i, stages[i].ID, plans[i].ID)
		}
	}
}

func TestValidate(t *testing.T) {
	symbols := platformer.DefaultSymbols()

	tests := []struct {
		name     string
		plan     Plan
		expected []error
	}{
		{
			name: "playable",
			plan: Plan{ID: "ok", Rows: []string{"  o ", "  @ ", "xxxx"}},
		},
		{
			name:     "empty",
			plan:     Plan{ID: "empty"},
			expected: []error{ErrNoRows},
		},
		{
			name:     "no player",
			plan:     Plan{ID: "np", Rows: []string{" o", "xx"}},
			expected: []error{ErrNoPlayer},
		},
		{
			name:     "two players",
			plan:     Plan{ID: "tp", Rows: []string{" o  ", " @ @", "xxxx"}},
			expected: []error{ErrManyPlayers},
		},
		{
			name:     "no coins",
			plan:     Plan{ID: "nc", Rows: []string{"    ", " @  ", "xxxx"}},
			expected: []error{ErrNoCoins},
		},
		{
			name:     "spawn in top row",
			plan:     Plan{ID: "top", Rows: []string{" @ o", "xxxx"}},
			expected: []error{ErrSpawnBlocked},
		},
		{
			name:     "spawn over lava",
			plan:     Plan{ID: "lava", Rows: []string{"   o", " @  ", " !  ", "xxxx"}},
			expected: nil,
		},
		{
			name:     "spawn beside wall overlap",
			plan:     Plan{ID: "wall", Rows: []string{" x o", " @  ", "xxxx"}},
			expected: []error{ErrSpawnBlocked},
		},
		{
			name: "plan symbol override",
			plan: Plan{ID: "sym", Rows: []string{" * ", " @ ", "xxx"}, Symbols: platformer.SymbolMap{'*': platformer.ActorCoin}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.plan.Validate(symbols)
			if len(tc.expected) == 0 {
				if err != nil {
					t.Errorf("Validate() = %v, expected nil", err)
				}
				return
			}
			for _, want := range tc.expected {
				if !errors.Is(err, want) {
					t.Errorf("Validate() = %v, expected %v", err, want)
				}
			}
		})
	}
}

func TestWatcherReportsPlanChanges(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	// Non-plan files are filtered out.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dir, "level.yaml")
	if err := os.WriteFile(target, []byte("rows: ['@']\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-w.Events:
		if name != target {
			t.Errorf("event for %q, expected %q", name, target)
		}
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watcher event")
	}
}
