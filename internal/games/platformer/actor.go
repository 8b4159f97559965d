// Package platformer implements the tile-based platformer simulation:
// actors, the level grid with its win/lose state, the text plan parser and
// a headless session driver.
package platformer

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tile-platformer/internal/core"
)

// Kind identifies what an actor or grid cell is.
type Kind string

const (
	KindEmpty    Kind = ""         // No obstacle
	KindWall     Kind = "wall"     // Solid grid cell
	KindLava     Kind = "lava"     // Deadly grid cell
	KindActor    Kind = "actor"    // Plain actor with no behaviour
	KindPlayer   Kind = "player"   // The player
	KindCoin     Kind = "coin"     // Collectible; all collected wins the level
	KindFireball Kind = "fireball" // Moving hazard
)

// IsObstacle returns true for the grid kinds that block movement.
func (k Kind) IsObstacle() bool {
	return k == KindWall || k == KindLava
}

// motion selects how a fireball reacts to an obstacle.
type motion int

const (
	motionNone   motion = iota
	motionBounce        // reverse velocity
	motionReset         // teleport back to spawn
)

// Actor is a positioned, sized rectangle with a velocity.
// Kind-specific state lives alongside the shared geometry and Act
// dispatches on the kind. Vectors are held by value.
type Actor struct {
	kind  Kind
	pos   core.Vector
	size  core.Vector
	speed core.Vector

	// Coin
	startPos    core.Vector
	phase       float64
	springSpeed float64
	springDist  float64

	// Fireball
	motion  motion
	initPos core.Vector
}

// NewActor creates a plain actor. It fails with core.ErrType if any of the
// vectors is not finite.
func NewActor(pos, size, speed core.Vector) (*Actor, error) {
	if !pos.Valid() || !size.Valid() || !speed.Valid() {
		return nil, fmt.Errorf("platformer: actor position, size and speed must be vectors: %w", core.ErrType)
	}
	return &Actor{kind: KindActor, pos: pos, size: size, speed: speed}, nil
}

// DefaultActor returns a plain actor at the origin with unit size.
func DefaultActor() *Actor {
	return &Actor{kind: KindActor, size: core.V(1, 1)}
}

// Kind returns the actor kind.
func (a *Actor) Kind() Kind { return a.kind }

// Pos returns the top-left corner.
func (a *Actor) Pos() core.Vector { return a.pos }

// Size returns the actor dimensions.
func (a *Actor) Size() core.Vector { return a.size }

// Speed returns the current velocity.
func (a *Actor) Speed() core.Vector { return a.speed }

// SetPos moves the actor. Used by drivers that move the player.
func (a *Actor) SetPos(pos core.Vector) { a.pos = pos }

// Rect returns the bounding box.
func (a *Actor) Rect() core.Rect { return core.NewRect(a.pos, a.size) }

func (a *Actor) Left() float64   { return a.pos.X }
func (a *Actor) Top() float64    { return a.pos.Y }
func (a *Actor) Right() float64  { return a.pos.X + a.size.X }
func (a *Actor) Bottom() float64 { return a.pos.Y + a.size.Y }

// IsIntersecting reports whether two actors overlap by a positive area.
// An actor never intersects itself and actors sharing only an edge do not
// intersect. A nil actor is rejected with core.ErrInvalidArgument.
func (a *Actor) IsIntersecting(other *Actor) (bool, error) {
	if a == nil || other == nil {
		return false, fmt.Errorf("platformer: intersection test needs two actors: %w", core.ErrInvalidArgument)
	}
	if a == other {
		return false, nil
	}
	return a.Rect().Intersects(other.Rect()), nil
}

// Act advances the actor by step units of simulated time.
// Players and plain actors do not move on their own. An error means the
// actor could not move, for example a fireball with a non-finite speed.
func (a *Actor) Act(step float64, lvl *Level) error {
	switch a.kind {
	case KindCoin:
		a.spring(step)
	case KindFireball:
		return a.fly(step, lvl)
	}
	return nil
}

// spring bobs a coin around its start position.
func (a *Actor) spring(step float64) {
	a.phase += a.springSpeed * step
	a.pos = a.startPos.Plus(core.V(0, math.Sin(a.phase)*a.springDist))
}

// NextPosition returns where the actor would be after step units of time.
func (a *Actor) NextPosition(step float64) core.Vector {
	return a.pos.Plus(a.speed.Times(step))
}

// fly moves a fireball unless the next position is blocked.
func (a *Actor) fly(step float64, lvl *Level) error {
	next := a.NextPosition(step)
	if lvl != nil {
		obstacle, err := lvl.ObstacleAt(next, a.size)
		if err != nil {
			return fmt.Errorf("platformer: %s cannot move: %w", a, err)
		}
		if obstacle.IsObstacle() {
			a.handleObstacle()
			return nil
		}
	}
	a.pos = next
	return nil
}

func (a *Actor) handleObstacle() {
	switch a.motion {
	case motionReset:
		a.pos = a.initPos
	default:
		a.speed = a.speed.Times(-1)
	}
}

func (a *Actor) String() string {
	return fmt.Sprintf("%s@%v", a.kind, a.pos)
}
