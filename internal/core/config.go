package core

// MaxSubSteps caps how many sub-steps a single tick is split into.
const MaxSubSteps = 1024

// RuntimeConfig contains configuration passed to a simulation at start.
// The driver uses it to pace ticks and for deterministic spawning.
type RuntimeConfig struct {
	TimeStep float64 // Simulated time per tick
	MaxStep  float64 // Largest sub-step handed to actors in one Act call
	MaxTicks int     // Ticks before an undecided level times out (0 = no limit)
	Seed     int64   // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		TimeStep: 1.0 / 60.0,
		MaxStep:  0.05,
		MaxTicks: 3600, // one minute at 60 ticks per second
		Seed:     0,    // 0 means use current time in the CLI layer
	}
}
