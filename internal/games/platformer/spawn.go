package platformer

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/tile-platformer/internal/core"
)

// Coin spring defaults.
const (
	DefaultSpringSpeed = 8.0
	DefaultSpringDist  = 0.07
)

// Tuning holds the adjustable actor constants.
type Tuning struct {
	SpringSpeed float64 // Coin bob phase advance per unit of time
	SpringDist  float64 // Coin bob amplitude
	HazardScale float64 // Multiplier for fireball launch speeds
}

// DefaultTuning returns the stock actor constants.
func DefaultTuning() Tuning {
	return Tuning{
		SpringSpeed: DefaultSpringSpeed,
		SpringDist:  DefaultSpringDist,
		HazardScale: 1.0,
	}
}

// Validate rejects tunings with non-finite values.
func (t Tuning) Validate() error {
	for _, v := range []float64{t.SpringSpeed, t.SpringDist, t.HazardScale} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("platformer: tuning values must be finite, got %+v: %w", t, core.ErrInvalidArgument)
		}
	}
	return nil
}

// SpawnEnv is handed to factories when the parser instantiates an actor.
type SpawnEnv struct {
	Rand   *rand.Rand
	Tuning Tuning
}

// ActorType names a constructor in the factory table.
type ActorType int

const (
	ActorPlain ActorType = iota
	ActorPlayer
	ActorCoin
	ActorFireball
	ActorHorizontalFireball
	ActorVerticalFireball
	ActorFireRain
)

var actorTypeNames = map[ActorType]string{
	ActorPlain:              "plain",
	ActorPlayer:             "player",
	ActorCoin:               "coin",
	ActorFireball:           "fireball",
	ActorHorizontalFireball: "horizontal_fireball",
	ActorVerticalFireball:   "vertical_fireball",
	ActorFireRain:           "fire_rain",
}

// String returns the configuration name of the actor type.
func (t ActorType) String() string {
	if name, ok := actorTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseActorType resolves a configuration name.
func ParseActorType(name string) (ActorType, error) {
	for t, n := range actorTypeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("platformer: unknown actor type %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (t ActorType) MarshalText() ([]byte, error) {
	if _, ok := actorTypeNames[t]; !ok {
		return nil, fmt.Errorf("platformer: unknown actor type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so actor types can be
// written by name in YAML, TOML and JSON files.
func (t *ActorType) UnmarshalText(text []byte) error {
	parsed, err := ParseActorType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Factory creates an actor spawned at a grid cell.
type Factory func(pos core.Vector, env SpawnEnv) *Actor

var factories = map[ActorType]Factory{
	ActorPlain: func(pos core.Vector, _ SpawnEnv) *Actor {
		return &Actor{kind: KindActor, pos: pos, size: core.V(1, 1)}
	},
	ActorPlayer: func(pos core.Vector, _ SpawnEnv) *Actor {
		return NewPlayer(pos)
	},
	ActorCoin: newCoin,
	ActorFireball: func(pos core.Vector, _ SpawnEnv) *Actor {
		return NewFireball(pos, core.Vector{})
	},
	ActorHorizontalFireball: func(pos core.Vector, env SpawnEnv) *Actor {
		return NewFireball(pos, core.V(2, 0).Times(env.Tuning.HazardScale))
	},
	ActorVerticalFireball: func(pos core.Vector, env SpawnEnv) *Actor {
		return NewFireball(pos, core.V(0, 2).Times(env.Tuning.HazardScale))
	},
	ActorFireRain: func(pos core.Vector, env SpawnEnv) *Actor {
		a := NewFireRain(pos)
		a.speed = a.speed.Times(env.Tuning.HazardScale)
		return a
	},
}

// Spawn instantiates an actor of the given type.
// Returns nil for types without a factory. A zero Tuning means defaults.
func Spawn(t ActorType, pos core.Vector, env SpawnEnv) *Actor {
	f, ok := factories[t]
	if !ok {
		return nil
	}
	if env.Tuning == (Tuning{}) {
		env.Tuning = DefaultTuning()
	}
	return f(pos, env)
}

// NewPlayer creates the player for the spawn cell at pos.
// The player is taller than a cell, so it is lifted by half a cell.
func NewPlayer(pos core.Vector) *Actor {
	return &Actor{
		kind: KindPlayer,
		pos:  pos.Plus(core.V(0, -0.5)),
		size: core.V(0.8, 1.5),
	}
}

// NewCoin creates a coin for the spawn cell at pos with default tuning.
// rng seeds the bob phase; nil uses the global source.
func NewCoin(pos core.Vector, rng *rand.Rand) *Actor {
	return newCoin(pos, SpawnEnv{Rand: rng, Tuning: DefaultTuning()})
}

func newCoin(pos core.Vector, env SpawnEnv) *Actor {
	var r float64
	if env.Rand != nil {
		r = env.Rand.Float64()
	} else {
		r = rand.Float64()
	}
	start := pos.Plus(core.V(0.2, 0.1))
	return &Actor{
		kind:        KindCoin,
		pos:         start,
		size:        core.V(0.6, 0.6),
		startPos:    start,
		phase:       r * 2 * math.Pi,
		springSpeed: env.Tuning.SpringSpeed,
		springDist:  env.Tuning.SpringDist,
	}
}

// NewFireball creates a bouncing fireball.
func NewFireball(pos, speed core.Vector) *Actor {
	return &Actor{
		kind:   KindFireball,
		pos:    pos,
		size:   core.V(1, 1),
		speed:  speed,
		motion: motionBounce,
	}
}

// NewHorizontalFireball creates a fireball bouncing left and right.
func NewHorizontalFireball(pos core.Vector) *Actor {
	return NewFireball(pos, core.V(2, 0))
}

// NewVerticalFireball creates a fireball bouncing up and down.
func NewVerticalFireball(pos core.Vector) *Actor {
	return NewFireball(pos, core.V(0, 2))
}

// NewFireRain creates a falling fireball that restarts from its spawn
// point whenever it hits an obstacle.
func NewFireRain(pos core.Vector) *Actor {
	a := NewFireball(pos, core.V(0, 3))
	a.motion = motionReset
	a.initPos = pos
	return a
}
