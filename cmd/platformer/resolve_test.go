package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tile-platformer/internal/games/platformer"
	"github.com/vovakirdan/tile-platformer/internal/levels"
	"github.com/vovakirdan/tile-platformer/internal/registry"
)

func writePlan(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestResolveBuiltinCampaign(t *testing.T) {
	c, err := resolveCampaign("classic")
	require.NoError(t, err)
	assert.Equal(t, "classic", c.ID)
	assert.NotEmpty(t, c.Plans)
}

func TestResolveDirectoryAndFile(t *testing.T) {
	dir := t.TempDir()
	writePlan(t, dir, "a.yaml", "id: a\nrows: [' o', ' @', 'xx']\n")
	file := writePlan(t, dir, "b.toml", "id = \"b\"\nrows = [\" o\", \" @\", \"xx\"]\n")

	c, err := resolveCampaign(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(dir), c.ID)
	require.Len(t, c.Plans, 2)
	assert.Equal(t, "a", c.Plans[0].ID)
	assert.Equal(t, "b", c.Plans[1].ID)

	c, err = resolveCampaign(file)
	require.NoError(t, err)
	require.Len(t, c.Plans, 1)
	assert.Equal(t, "b", c.Plans[0].ID)
}

func TestResolveErrors(t *testing.T) {
	_, err := resolveCampaign(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	_, err = resolveCampaign(t.TempDir())
	assert.Error(t, err, "empty directory has no plans")
}

func TestSelectPlan(t *testing.T) {
	plans := []levels.Plan{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	got, idx, err := selectPlan(plans, "b")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)

	_, _, err = selectPlan(plans, "z")
	assert.Error(t, err)
}

func TestCheckPlansCountsFailures(t *testing.T) {
	plans := []levels.Plan{
		{ID: "good", Rows: []string{" o", " @", "xx"}},
		{ID: "no-coin", Rows: []string{"  ", " @", "xx"}},
	}

	var out bytes.Buffer
	failed := checkPlans(&out, DefaultTheme(), plans, platformer.DefaultSymbols())

	assert.Equal(t, 1, failed)
	assert.Contains(t, out.String(), "good")
	assert.Contains(t, out.String(), "no-coin")
	assert.Contains(t, out.String(), "no coins")
}

func TestCheckPlansOutput(t *testing.T) {
	tests := []struct {
		name   string
		plans  []levels.Plan
		failed int
		want   []string
		absent []string
	}{
		{
			name:   "all valid",
			plans:  []levels.Plan{{ID: "first", Rows: []string{" o", " @", "xx"}}},
			want:   []string{"ok", "first"},
			absent: []string{"no coins"},
		},
		{
			name:   "no player",
			plans:  []levels.Plan{{ID: "empty", Rows: []string{" o", "  ", "xx"}}},
			failed: 1,
			want:   []string{"empty", "no player"},
		},
		{
			name:   "nothing to check",
			plans:  nil,
			failed: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			failed := checkPlans(&out, DefaultTheme(), tc.plans, platformer.DefaultSymbols())

			assert.Equal(t, tc.failed, failed)
			for _, w := range tc.want {
				assert.Contains(t, out.String(), w)
			}
			for _, a := range tc.absent {
				assert.NotContains(t, out.String(), a)
			}
		})
	}
}

func TestPrintCampaignResult(t *testing.T) {
	campaign := registry.Campaign{ID: "demo", Title: "Demo"}

	tests := []struct {
		name string
		res  platformer.CampaignResult
		want []string
	}{
		{
			name: "completed",
			res: platformer.CampaignResult{
				Results: []platformer.LevelResult{
					{LevelID: "01-intro", Attempt: 1, Outcome: platformer.OutcomeWon, Ticks: 2},
				},
				Completed: true,
				LivesLeft: 3,
			},
			want: []string{"Demo (seed 42)", "01-intro", "won", "Campaign completed", "3 lives left"},
		},
		{
			name: "out of lives",
			res: platformer.CampaignResult{
				Results: []platformer.LevelResult{
					{LevelID: "02-pit", Attempt: 1, Outcome: platformer.OutcomeLost, Ticks: 9, CoinsLeft: 1},
					{LevelID: "02-pit", Attempt: 2, Outcome: platformer.OutcomeTimeout, Ticks: 600, CoinsLeft: 1},
				},
			},
			want: []string{"02-pit", "lost", "timeout", "600", "Out of lives"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			printCampaignResult(&out, DefaultTheme(), campaign, tc.res, 42)

			for _, w := range tc.want {
				assert.Contains(t, out.String(), w)
			}
			assert.Equal(t, len(tc.res.Results), strings.Count(out.String(), tc.res.Results[0].LevelID))
		})
	}
}

func TestRenderPlanKeepsLayout(t *testing.T) {
	plan := levels.Plan{Rows: []string{" o* ", " @  ", "xx!x"}, Symbols: platformer.SymbolMap{'*': platformer.ActorCoin}}

	rendered := DefaultTheme().RenderPlan(plan, platformer.DefaultSymbols())

	lines := strings.Split(strings.TrimSuffix(rendered, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "*")
	assert.Contains(t, lines[1], "@")
	assert.Contains(t, lines[2], "!")
}
