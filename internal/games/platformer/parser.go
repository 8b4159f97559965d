package platformer

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tile-platformer/internal/core"
)

// Structural plan symbols.
const (
	WallSymbol = 'x'
	LavaSymbol = '!'
)

// SymbolMap maps a plan character to the actor type it spawns.
type SymbolMap map[rune]ActorType

// DefaultSymbols returns the stock symbol table.
func DefaultSymbols() SymbolMap {
	return SymbolMap{
		'@': ActorPlayer,
		'o': ActorCoin,
		'=': ActorHorizontalFireball,
		'|': ActorVerticalFireball,
		'v': ActorFireRain,
	}
}

// Clone returns an independent copy of the map.
func (m SymbolMap) Clone() SymbolMap {
	out := make(SymbolMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Merge returns a copy of m with overrides applied on top.
func (m SymbolMap) Merge(overrides SymbolMap) SymbolMap {
	out := m.Clone()
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// Parser turns text plans into levels.
type Parser struct {
	symbols SymbolMap
	tuning  Tuning
	rng     *rand.Rand
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithSeed makes spawned actors deterministic.
func WithSeed(seed int64) ParserOption {
	return func(p *Parser) {
		p.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand shares an existing random source.
func WithRand(rng *rand.Rand) ParserOption {
	return func(p *Parser) {
		p.rng = rng
	}
}

// WithTuning overrides the actor constants.
func WithTuning(t Tuning) ParserOption {
	return func(p *Parser) {
		p.tuning = t
	}
}

// NewParser creates a parser for the given symbol table.
func NewParser(symbols SymbolMap, opts ...ParserOption) *Parser {
	p := &Parser{
		symbols: symbols.Clone(),
		tuning:  DefaultTuning(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.rng == nil {
		p.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return p
}

// Parse builds a level from plan rows.
func (p *Parser) Parse(rows []string) *Level {
	return NewLevel(p.CreateGrid(rows), p.CreateActors(rows))
}

// CreateGrid maps plan rows to grid cells. Row lengths are kept as-is.
func (p *Parser) CreateGrid(rows []string) Grid {
	grid := make(Grid, len(rows))
	for y, line := range rows {
		runes := []rune(line)
		grid[y] = make([]Kind, len(runes))
		for x, ch := range runes {
			grid[y][x] = cellKind(ch)
		}
	}
	return grid
}

// CreateActors spawns an actor for every mapped symbol, scanning rows top
// to bottom and left to right. Unknown symbols are ignored.
func (p *Parser) CreateActors(rows []string) []*Actor {
	env := SpawnEnv{Rand: p.rng, Tuning: p.tuning}

	var actors []*Actor
	for y, line := range rows {
		for x, ch := range []rune(line) {
			if cellKind(ch) != KindEmpty {
				continue
			}
			t, ok := p.symbols[ch]
			if !ok {
				continue
			}
			if a := Spawn(t, core.V(float64(x), float64(y)), env); a != nil {
				actors = append(actors, a)
			}
		}
	}
	return actors
}

func cellKind(ch rune) Kind {
	switch ch {
	case WallSymbol:
		return KindWall
	case LavaSymbol:
		return KindLava
	default:
		return KindEmpty
	}
}
