// Package radar holds the proximity roster and the nudge state machine that
// runs over it.
package radar

import (
	"fmt"
	"math"
	"sync"

	"NudgePrototype/internal/apperr"
	"NudgePrototype/internal/models"
	"NudgePrototype/internal/simulation"
)

var ErrUserNotFound = fmt.Errorf("radar: user %w", apperr.ErrNotFound)

// RosterConfig shapes generation and nudge sampling.
type RosterConfig struct {
	MinUsers    int
	MaxUsers    int
	MinDistance float64
	MaxDistance float64
	AngleJitter float64
	// AckProbability is the chance a peer has already nudged when the viewer nudges.
	AckProbability float64
	// PeerNudgeProbability seeds users as TheyNudged at generation time.
	PeerNudgeProbability float64
}

func DefaultRosterConfig() RosterConfig {
	return RosterConfig{
		MinUsers:       3,
		MaxUsers:       8,
		MinDistance:    50,
		MaxDistance:    170,
		AngleJitter:    0.5,
		AckProbability: 0.3,
	}
}

// Roster is the in-memory set of simulated nearby users. Every per-user
// read-modify-write goes through its mutex.
type Roster struct {
	mu    sync.Mutex
	rng   simulation.Rand
	cfg   RosterConfig
	order []string
	users map[string]*models.SimulatedUser
}

// NudgeResult describes the outcome of SendNudge.
type NudgeResult struct {
	User    models.SimulatedUser `json:"user"`
	Changed bool                 `json:"changed"`
	Mutual  bool                 `json:"mutual"`
}

// GenerateRoster places MinUsers..MaxUsers users around the centre.
func GenerateRoster(rng simulation.Rand, cfg RosterConfig) *Roster {
	if cfg.MinUsers <= 0 {
		cfg.MinUsers = 1
	}
	if cfg.MaxUsers < cfg.MinUsers {
		cfg.MaxUsers = cfg.MinUsers
	}
	n := cfg.MinUsers + rng.IntN(cfg.MaxUsers-cfg.MinUsers+1)

	r := &Roster{
		rng:   rng,
		cfg:   cfg,
		order: make([]string, 0, n),
		users: make(map[string]*models.SimulatedUser, n),
	}
	for i := 0; i < n; i++ {
		angle := (math.Pi*2*float64(i))/float64(n) + rng.Float64()*cfg.AngleJitter
		distance := cfg.MinDistance + rng.Float64()*(cfg.MaxDistance-cfg.MinDistance)
		u := &models.SimulatedUser{
			ID: fmt.Sprintf("user-%d", i),
			Position: models.Position{
				X: math.Cos(angle) * distance,
				Y: math.Sin(angle) * distance,
			},
			DistanceBand: int(math.Floor(distance/10)) * 10,
		}
		if cfg.PeerNudgeProbability > 0 && rng.Float64() < cfg.PeerNudgeProbability {
			u.NudgeState = models.NudgeTheyNudged
		}
		r.order = append(r.order, u.ID)
		r.users[u.ID] = u
	}
	return r
}

// NewRoster builds a roster from explicit users, mostly for tests and replays.
func NewRoster(rng simulation.Rand, cfg RosterConfig, users ...models.SimulatedUser) *Roster {
	r := &Roster{
		rng:   rng,
		cfg:   cfg,
		order: make([]string, 0, len(users)),
		users: make(map[string]*models.SimulatedUser, len(users)),
	}
	for _, u := range users {
		r.order = append(r.order, u.ID)
		r.users[u.ID] = &u
	}
	return r
}

func (r *Roster) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}

// Users returns a copy in generation order.
func (r *Roster) Users() []models.SimulatedUser {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.SimulatedUser, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.users[id])
	}
	return out
}

func (r *Roster) Get(id string) (models.SimulatedUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return models.SimulatedUser{}, fmt.Errorf("%w: %s", ErrUserNotFound, id)
	}
	return *u, nil
}

// SendNudge sets the viewer's nudge on id and samples whether the peer has
// already nudged back. Repeated calls once nudged are no-ops.
func (r *Roster) SendNudge(id string) (NudgeResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return NudgeResult{}, fmt.Errorf("%w: %s", ErrUserNotFound, id)
	}
	if u.NudgeState.YouNudged() {
		return NudgeResult{User: *u, Mutual: u.ChatUnlocked()}, nil
	}

	next := u.NudgeState.WithYou()
	if !next.TheyNudged() && r.rng.Float64() < r.cfg.AckProbability {
		next = next.WithThem()
	}
	u.NudgeState = next
	return NudgeResult{User: *u, Changed: true, Mutual: u.ChatUnlocked()}, nil
}

// ReceiveNudge records the peer nudging the viewer.
func (r *Roster) ReceiveNudge(id string) (NudgeResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return NudgeResult{}, fmt.Errorf("%w: %s", ErrUserNotFound, id)
	}
	if u.NudgeState.TheyNudged() {
		return NudgeResult{User: *u, Mutual: u.ChatUnlocked()}, nil
	}
	u.NudgeState = u.NudgeState.WithThem()
	return NudgeResult{User: *u, Changed: true, Mutual: u.ChatUnlocked()}, nil
}

// Jitter moves every user by up to step/2 per axis. Nudge state is untouched.
func (r *Roster) Jitter(step float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.order {
		u := r.users[id]
		u.Position.X += (r.rng.Float64() - 0.5) * step
		u.Position.Y += (r.rng.Float64() - 0.5) * step
	}
}
