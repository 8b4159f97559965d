package levels

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tile-platformer/internal/games/platformer"
)

// Plan problems reported by Validate.
var (
	ErrNoRows        = errors.New("plan has no rows")
	ErrNoPlayer      = errors.New("plan has no player")
	ErrManyPlayers   = errors.New("plan has more than one player")
	ErrNoCoins       = errors.New("plan has no coins and can never be won")
	ErrSpawnBlocked  = errors.New("player spawn overlaps an obstacle")
	ErrUnknownSymbol = errors.New("plan maps a symbol to an unknown actor type")
)

// Validate checks that the plan can be played with the given campaign
// symbols. All problems are returned joined; nil means the plan is fine.
func (p Plan) Validate(symbols platformer.SymbolMap) error {
	if len(p.Rows) == 0 {
		return fmt.Errorf("%s: %w", p.ID, ErrNoRows)
	}

	merged := symbols.Merge(p.Symbols)
	var problems []error

	for sym, t := range merged {
		if t.String() == "unknown" {
			problems = append(problems, fmt.Errorf("%s: symbol %q: %w", p.ID, sym, ErrUnknownSymbol))
		}
	}

	lvl := platformer.NewParser(merged, platformer.WithSeed(1)).Parse(p.Rows)

	var players, coins int
	for _, a := range lvl.Actors() {
		switch a.Kind() {
		case platformer.KindPlayer:
			players++
		case platformer.KindCoin:
			coins++
		}
	}

	switch {
	case players == 0:
		problems = append(problems, fmt.Errorf("%s: %w", p.ID, ErrNoPlayer))
	case players > 1:
		problems = append(problems, fmt.Errorf("%s: %d players: %w", p.ID, players, ErrManyPlayers))
	}

	if coins == 0 {
		problems = append(problems, fmt.Errorf("%s: %w", p.ID, ErrNoCoins))
	}

	if player := lvl.Player(); player != nil {
		obstacle, err := lvl.ObstacleAt(player.Pos(), player.Size())
		if err == nil && obstacle != platformer.KindEmpty {
			problems = append(problems, fmt.Errorf("%s: %s at %v: %w", p.ID, obstacle, player.Pos(), ErrSpawnBlocked))
		}
	}

	return errors.Join(problems...)
}
