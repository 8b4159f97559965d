package platformer

import (
	"fmt"

	"github.com/vovakirdan/tile-platformer/internal/core"
)

// Grid is the static level geometry indexed [row][col], i.e. [y][x].
// Rows may differ in length; cells past the end of a row are empty.
type Grid [][]Kind

// Status is the outcome state of a level.
type Status int

const (
	StatusInProgress Status = iota
	StatusWon
	StatusLost
)

func (s Status) String() string {
	switch s {
	case StatusInProgress:
		return "in_progress"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Level owns the grid and the ordered actor list and tracks win/lose state.
type Level struct {
	grid        Grid
	width       int
	height      int
	actors      []*Actor
	player      *Actor
	status      Status
	finishDelay float64
}

// NewLevel creates a level from a grid and its initial actors.
// The actor slice is copied; the level owns its own list.
func NewLevel(grid Grid, actors []*Actor) *Level {
	l := &Level{
		grid:        grid,
		height:      len(grid),
		actors:      make([]*Actor, 0, len(actors)),
		status:      StatusInProgress,
		finishDelay: 1,
	}

	for _, row := range grid {
		if len(row) > l.width {
			l.width = len(row)
		}
	}

	for _, a := range actors {
		if a == nil {
			continue
		}
		l.actors = append(l.actors, a)
		if l.player == nil && a.kind == KindPlayer {
			l.player = a
		}
	}

	return l
}

// Width returns the length of the longest grid row.
func (l *Level) Width() int { return l.width }

// Height returns the number of grid rows.
func (l *Level) Height() int { return l.height }

// Player returns the player actor, or nil if the level has none.
func (l *Level) Player() *Actor { return l.player }

// Status returns the current outcome state.
func (l *Level) Status() Status { return l.status }

// FinishDelay returns the remaining grace period after the outcome.
func (l *Level) FinishDelay() float64 { return l.finishDelay }

// Actors returns a copy of the actor list in order.
func (l *Level) Actors() []*Actor {
	out := make([]*Actor, len(l.actors))
	copy(out, l.actors)
	return out
}

// Cell returns the grid kind at column x, row y. Anything outside the
// grid, or past the end of a short row, is empty.
func (l *Level) Cell(x, y int) Kind {
	if y < 0 || y >= len(l.grid) {
		return KindEmpty
	}
	row := l.grid[y]
	if x < 0 || x >= len(row) {
		return KindEmpty
	}
	return row[x]
}

// IsFinished returns true once the outcome is decided and the grace
// period has run out.
func (l *Level) IsFinished() bool {
	return l.status != StatusInProgress && l.finishDelay < 0
}

// AdvanceFinish counts down the grace period by one tick once the
// outcome is decided. Drivers call it once per tick.
func (l *Level) AdvanceFinish() {
	if l.status != StatusInProgress {
		l.finishDelay--
	}
}

// ActorAt returns the first actor, in list order, that intersects q.
// q itself is skipped. Returns nil if nothing intersects.
func (l *Level) ActorAt(q *Actor) (*Actor, error) {
	if q == nil {
		return nil, fmt.Errorf("platformer: actorAt needs an actor: %w", core.ErrInvalidArgument)
	}
	for _, a := range l.actors {
		if a == q {
			continue
		}
		if a.Rect().Intersects(q.Rect()) {
			return a, nil
		}
	}
	return nil, nil
}

// ObstacleAt classifies the cells a rectangle of the given size at pos
// would cover. Leaving the grid left, right or through the top is a wall;
// falling out the bottom is lava. Inside the grid the first wall or lava
// cell in row-major order wins; KindEmpty means the area is clear.
func (l *Level) ObstacleAt(pos, size core.Vector) (Kind, error) {
	if !pos.Valid() || !size.Valid() {
		return KindEmpty, fmt.Errorf("platformer: obstacleAt needs position and size vectors: %w", core.ErrInvalidArgument)
	}

	r := core.NewRect(pos, size)
	if r.Left() < 0 || r.Right() > float64(l.width) || r.Top() < 0 {
		return KindWall, nil
	}
	if r.Bottom() > float64(l.height) {
		return KindLava, nil
	}

	left, top, right, bottom := r.CellSpan()

	for y := top; y < bottom; y++ {
		for x := left; x < right; x++ {
			if cell := l.Cell(x, y); cell.IsObstacle() {
				return cell, nil
			}
		}
	}
	return KindEmpty, nil
}

// RemoveActor removes a from the actor list. Unknown actors are ignored.
func (l *Level) RemoveActor(a *Actor) {
	for i, candidate := range l.actors {
		if candidate == a {
			l.actors = append(l.actors[:i], l.actors[i+1:]...)
			return
		}
	}
}

// NoMoreActors returns true if no actor of the given kind remains.
func (l *Level) NoMoreActors(kind Kind) bool {
	for _, a := range l.actors {
		if a.kind == kind {
			return false
		}
	}
	return true
}

// PlayerTouched applies the effect of the player touching something.
// Lava or a fireball loses the level. Touching a coin collects it, and
// collecting the last coin wins. Nothing changes once the outcome is
// decided.
func (l *Level) PlayerTouched(kind Kind, touched *Actor) {
	if l.status != StatusInProgress {
		return
	}

	switch kind {
	case KindLava, KindFireball:
		l.status = StatusLost
	case KindCoin:
		if touched == nil || touched.kind != KindCoin {
			return
		}
		l.RemoveActor(touched)
		if l.NoMoreActors(KindCoin) {
			l.status = StatusWon
		}
	}
}
