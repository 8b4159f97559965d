package platformer

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tile-platformer/internal/core"
)

// winnable has a coin right above the player's spawn.
var winnable = Stage{ID: "win", Rows: []string{
	" o  ",
	" @  ",
	"xxxx",
}}

// deadly drops fire rain on the player.
var deadly = Stage{ID: "die", Rows: []string{
	" v  ",
	"    ",
	" @ o",
	"xxxx",
}}

func TestRunCampaignCompletes(t *testing.T) {
	cfg := CampaignConfig{Runtime: testConfig(), Lives: 2}

	res, err := RunCampaign(context.Background(), []Stage{winnable, winnable}, cfg, nil)
	require.NoError(t, err)

	assert.True(t, res.Completed)
	assert.Equal(t, 2, res.LivesLeft)
	require.Len(t, res.Results, 2)
	for _, r := range res.Results {
		assert.Equal(t, OutcomeWon, r.Outcome)
		assert.Equal(t, 1, r.Attempt)
		assert.Equal(t, 0, r.CoinsLeft)
		assert.Equal(t, 2, r.Ticks, "won on the first tick, finished on the next")
	}
}

func TestRunCampaignRetriesUntilOutOfLives(t *testing.T) {
	cfg := CampaignConfig{Runtime: testConfig(), Lives: 3}

	res, err := RunCampaign(context.Background(), []Stage{winnable, deadly, winnable}, cfg, nil)
	require.NoError(t, err)

	assert.False(t, res.Completed)
	assert.Equal(t, 0, res.LivesLeft)
	require.Len(t, res.Results, 4)
	assert.Equal(t, "win", res.Results[0].LevelID)
	for i, r := range res.Results[1:] {
		assert.Equal(t, "die", r.LevelID)
		assert.Equal(t, i+1, r.Attempt)
		assert.Equal(t, OutcomeLost, r.Outcome)
	}
}

func TestRunCampaignTimeoutCostsALife(t *testing.T) {
	stuck := Stage{ID: "stuck", Rows: []string{"   o", " @  ", "xxxx"}}
	rt := testConfig()
	rt.MaxTicks = 5

	res, err := RunCampaign(context.Background(), []Stage{stuck}, CampaignConfig{Runtime: rt, Lives: 1}, nil)
	require.NoError(t, err)
	require.Len(t, res.Results, 1)
	assert.Equal(t, OutcomeTimeout, res.Results[0].Outcome)
	assert.False(t, res.Completed)
}

func TestRunCampaignStageSymbols(t *testing.T) {
	// '*' is only a coin in this stage.
	stage := Stage{
		ID:      "custom",
		Rows:    []string{" *  ", " @  ", "xxxx"},
		Symbols: SymbolMap{'*': ActorCoin},
	}

	res, err := RunCampaign(context.Background(), []Stage{stage}, CampaignConfig{Runtime: testConfig()}, nil)
	require.NoError(t, err)
	assert.True(t, res.Completed)
	assert.Equal(t, DefaultLives, res.LivesLeft)
}

func TestRunCampaignHazardScale(t *testing.T) {
	var seen []int
	cfg := CampaignConfig{
		Runtime: testConfig(),
		HazardScale: func(index int) float64 {
			seen = append(seen, index)
			return 1
		},
	}

	_, err := RunCampaign(context.Background(), []Stage{winnable, winnable}, cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, seen)
}

func TestRunCampaignRejectsNonFiniteHazardScale(t *testing.T) {
	cfg := CampaignConfig{
		Runtime:     testConfig(),
		HazardScale: func(int) float64 { return math.NaN() },
	}

	_, err := RunCampaign(context.Background(), []Stage{winnable}, cfg, nil)
	require.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestRunCampaignCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RunCampaign(ctx, []Stage{winnable}, CampaignConfig{Runtime: testConfig()}, nil)
	require.ErrorIs(t, err, context.Canceled)
}
