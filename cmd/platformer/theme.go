package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tile-platformer/internal/games/platformer"
	"github.com/vovakirdan/tile-platformer/internal/levels"
)

// Theme contains the styles used for terminal output.
type Theme struct {
	Title lipgloss.Style
	Label lipgloss.Style
	Dim   lipgloss.Style

	// Outcomes
	Won     lipgloss.Style
	Lost    lipgloss.Style
	Timeout lipgloss.Style

	// Plan cells
	Wall     lipgloss.Style
	Lava     lipgloss.Style
	Player   lipgloss.Style
	Coin     lipgloss.Style
	Fireball lipgloss.Style
	Empty    lipgloss.Style
}

// DefaultTheme returns the default output theme.
func DefaultTheme() Theme {
	return Theme{
		Title: lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		Label: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Dim:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),

		Won:     lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		Lost:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Timeout: lipgloss.NewStyle().Foreground(lipgloss.Color("226")),

		Wall:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		Lava:     lipgloss.NewStyle().Foreground(lipgloss.Color("202")),
		Player:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		Coin:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Fireball: lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
		Empty:    lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
	}
}

// Outcome renders a level or campaign outcome.
func (t Theme) Outcome(o platformer.Outcome) string {
	switch o {
	case platformer.OutcomeWon:
		return t.Won.Render(string(o))
	case platformer.OutcomeLost:
		return t.Lost.Render(string(o))
	default:
		return t.Timeout.Render(string(o))
	}
}

// Check renders a validation verdict.
func (t Theme) Check(ok bool) string {
	if ok {
		return t.Won.Render("ok")
	}
	return t.Lost.Render("FAIL")
}

// RenderPlan draws a plan with each cell styled by what it spawns.
func (t Theme) RenderPlan(p levels.Plan, symbols platformer.SymbolMap) string {
	symbols = symbols.Merge(p.Symbols)

	var b strings.Builder
	for _, row := range p.Rows {
		for _, ch := range row {
			b.WriteString(t.cellStyle(ch, symbols).Render(string(ch)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (t Theme) cellStyle(ch rune, symbols platformer.SymbolMap) lipgloss.Style {
	switch ch {
	case platformer.WallSymbol:
		return t.Wall
	case platformer.LavaSymbol:
		return t.Lava
	}

	actor, ok := symbols[ch]
	if !ok {
		return t.Empty
	}
	switch actor {
	case platformer.ActorPlayer:
		return t.Player
	case platformer.ActorCoin:
		return t.Coin
	case platformer.ActorFireball, platformer.ActorHorizontalFireball,
		platformer.ActorVerticalFireball, platformer.ActorFireRain:
		return t.Fireball
	default:
		return t.Label
	}
}
