package platformer

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tile-platformer/internal/core"
)

// Outcome is how a simulated level ended.
type Outcome string

const (
	OutcomeWon     Outcome = "won"
	OutcomeLost    Outcome = "lost"
	OutcomeTimeout Outcome = "timeout" // tick limit hit before an outcome
)

// StepResult is returned by Session.Step after each tick.
type StepResult struct {
	Tick     int
	Status   Status
	Finished bool
	Err      error // first actor that failed to act during the tick
}

// Result summarises a finished session.
type Result struct {
	Outcome   Outcome
	Status    Status
	Ticks     int
	CoinsLeft int
}

// Session drives a level tick by tick: actors act, then the player's
// touches are resolved against the grid and the other actors.
type Session struct {
	level  *Level
	cfg    core.RuntimeConfig
	logger *log.Logger
	tick   int
}

// NewSession creates a driver for lvl. A nil logger discards output.
func NewSession(lvl *Level, cfg core.RuntimeConfig, logger *log.Logger) *Session {
	def := core.DefaultConfig()
	if cfg.TimeStep <= 0 {
		cfg.TimeStep = def.TimeStep
	}
	if cfg.MaxStep <= 0 {
		cfg.MaxStep = def.MaxStep
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Session{level: lvl, cfg: cfg, logger: logger}
}

// Level returns the driven level.
func (s *Session) Level() *Level { return s.level }

// Tick returns the number of ticks simulated so far.
func (s *Session) Tick() int { return s.tick }

// Step advances the simulation by one tick of step units of time. The
// tick is split into equal sub-steps no longer than MaxStep, up to
// core.MaxSubSteps of them; past that the sub-steps grow instead.
func (s *Session) Step(step float64) StepResult {
	if !(step > 0) || math.IsInf(step, 0) {
		return s.stepResult()
	}
	s.tick++

	var actErr error
	n := subSteps(step, s.cfg.MaxStep)
	sub := step / float64(n)
	for i := 0; i < n; i++ {
		for _, a := range s.level.Actors() {
			if err := a.Act(sub, s.level); err != nil && actErr == nil {
				actErr = err
			}
		}
		s.resolvePlayer()
	}

	s.level.AdvanceFinish()
	r := s.stepResult()
	r.Err = actErr
	return r
}

// subSteps returns how many pieces step is cut into.
func subSteps(step, maxStep float64) int {
	n := math.Ceil(step / maxStep)
	if !(n >= 1) {
		return 1
	}
	if n > core.MaxSubSteps {
		return core.MaxSubSteps
	}
	return int(n)
}

func (s *Session) stepResult() StepResult {
	return StepResult{
		Tick:     s.tick,
		Status:   s.level.Status(),
		Finished: s.level.IsFinished(),
	}
}

// resolvePlayer reports every touch of the player to the level.
func (s *Session) resolvePlayer() {
	p := s.level.Player()
	if p == nil || s.level.Status() != StatusInProgress {
		return
	}

	if obstacle, err := s.level.ObstacleAt(p.Pos(), p.Size()); err == nil && obstacle == KindLava {
		s.touch(KindLava, nil)
	}

	for _, a := range s.level.Actors() {
		if hit, err := p.IsIntersecting(a); err == nil && hit {
			s.touch(a.Kind(), a)
		}
	}
}

func (s *Session) touch(kind Kind, a *Actor) {
	before := s.level.Status()
	s.level.PlayerTouched(kind, a)
	s.logger.Debug("player touched", "tick", s.tick, "kind", kind)

	if after := s.level.Status(); after != before {
		s.logger.Info("level decided", "tick", s.tick, "status", after)
	}
}

// MovePlayer moves the player by delta unless a wall is in the way.
// Moving into lava is allowed and loses the level. The returned kind is
// the obstacle found at the destination.
func (s *Session) MovePlayer(delta core.Vector) (Kind, error) {
	p := s.level.Player()
	if p == nil {
		return KindEmpty, fmt.Errorf("platformer: level has no player: %w", core.ErrInvalidArgument)
	}
	if s.level.Status() != StatusInProgress {
		return KindEmpty, nil
	}

	next := p.Pos().Plus(delta)
	obstacle, err := s.level.ObstacleAt(next, p.Size())
	if err != nil {
		return KindEmpty, err
	}

	switch obstacle {
	case KindWall:
		return obstacle, nil
	case KindLava:
		p.SetPos(next)
		s.touch(KindLava, nil)
		return obstacle, nil
	}

	p.SetPos(next)
	return obstacle, nil
}

// Run steps the level until it is finished, the tick limit is reached or
// ctx is cancelled.
func (s *Session) Run(ctx context.Context) (Result, error) {
	for {
		if err := ctx.Err(); err != nil {
			return s.result(), err
		}

		r := s.Step(s.cfg.TimeStep)
		if r.Err != nil {
			s.logger.Error("actor failed", "tick", r.Tick, "error", r.Err)
			return s.result(), r.Err
		}
		if r.Finished {
			break
		}
		if s.cfg.MaxTicks > 0 && s.tick >= s.cfg.MaxTicks {
			s.logger.Debug("tick limit reached", "ticks", s.tick)
			break
		}
	}

	res := s.result()
	s.logger.Info("session finished", "outcome", res.Outcome, "ticks", res.Ticks, "coins_left", res.CoinsLeft)
	return res, nil
}

func (s *Session) result() Result {
	res := Result{
		Status: s.level.Status(),
		Ticks:  s.tick,
	}
	for _, a := range s.level.Actors() {
		if a.Kind() == KindCoin {
			res.CoinsLeft++
		}
	}

	switch res.Status {
	case StatusWon:
		res.Outcome = OutcomeWon
	case StatusLost:
		res.Outcome = OutcomeLost
	default:
		res.Outcome = OutcomeTimeout
	}
	return res
}
