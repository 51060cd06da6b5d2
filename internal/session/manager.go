package session

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"NudgePrototype/internal/ambient"
	"NudgePrototype/internal/chat"
	"NudgePrototype/internal/router"
	"NudgePrototype/internal/simulation"
)

// MetricsRecorder is a Recorder that also tracks how many sessions are live.
type MetricsRecorder interface {
	Recorder
	SetActiveSessions(n int)
}

// Store is the journal backend. Entries are dropped when a session closes.
type Store interface {
	Journal
	DeleteSession(ctx context.Context, sessionID string) (int64, error)
}

type ManagerOptions struct {
	Config Config
	// Seed fixes every session's random source; 0 draws a new seed per session.
	Seed      uint64
	Scheduler chat.Scheduler
	Prober    ambient.Prober
	Metrics   MetricsRecorder
	Store     Store
	Logger    *zap.Logger
	Now       func() time.Time
}

// Info is the listing view of a session.
type Info struct {
	ID         string        `json:"id"`
	Screen     router.Screen `json:"screen"`
	LastActive time.Time     `json:"lastActive"`
}

// Manager holds the live viewer sessions.
type Manager struct {
	opts ManagerOptions

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager(opts ManagerOptions) *Manager {
	if opts.Metrics == nil {
		opts.Metrics = nopRecorder{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Manager{
		opts:     opts,
		sessions: make(map[string]*Session),
	}
}

// Create starts a new session on the welcome screen.
func (m *Manager) Create() *Session {
	id := uuid.New().String()
	deps := Deps{
		Rand:      simulation.NewRand(m.opts.Seed),
		Scheduler: m.opts.Scheduler,
		Prober:    m.opts.Prober,
		Recorder:  m.opts.Metrics,
		Logger:    m.opts.Logger,
		Now:       m.opts.Now,
	}
	if m.opts.Store != nil {
		deps.Journal = m.opts.Store
	}
	s := New(id, m.opts.Config, deps)

	m.mu.Lock()
	m.sessions[id] = s
	n := len(m.sessions)
	m.mu.Unlock()

	m.opts.Metrics.SetActiveSessions(n)
	m.opts.Logger.Info("session created", zap.String("sessionID", id))
	return s
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// Close ends the session and removes its journal.
func (m *Manager) Close(ctx context.Context, id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	n := len(m.sessions)
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	m.opts.Metrics.SetActiveSessions(n)
	s.Close()

	if m.opts.Store != nil {
		deleted, err := m.opts.Store.DeleteSession(ctx, id)
		if err != nil {
			return fmt.Errorf("delete journal of %s: %w", id, err)
		}
		m.opts.Logger.Info("session closed", zap.String("sessionID", id), zap.Int64("journalEntries", deleted))
		return nil
	}
	m.opts.Logger.Info("session closed", zap.String("sessionID", id))
	return nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// List returns the live sessions, most recently active first.
func (m *Manager) List() []Info {
	m.mu.RLock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.RUnlock()

	out := make([]Info, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, Info{ID: s.ID(), Screen: s.Screen(), LastActive: s.LastActive()})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastActive.Equal(out[j].LastActive) {
			return out[i].ID < out[j].ID
		}
		return out[i].LastActive.After(out[j].LastActive)
	})
	return out
}

// Reap closes sessions idle for longer than idle and returns how many it closed.
func (m *Manager) Reap(ctx context.Context, idle time.Duration) int {
	cutoff := m.opts.Now().Add(-idle)

	m.mu.RLock()
	var stale []string
	for id, s := range m.sessions {
		if s.LastActive().Before(cutoff) {
			stale = append(stale, id)
		}
	}
	m.mu.RUnlock()

	reaped := 0
	for _, id := range stale {
		if err := m.Close(ctx, id); err != nil {
			m.opts.Logger.Warn("reap session failed", zap.String("sessionID", id), zap.Error(err))
			continue
		}
		reaped++
	}
	return reaped
}

// RunReaper reaps idle sessions every interval until ctx is done.
func (m *Manager) RunReaper(ctx context.Context, interval, idle time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := m.Reap(ctx, idle); n > 0 {
				m.opts.Logger.Info("reaped idle sessions", zap.Int("count", n))
			}
		}
	}
}

// Shutdown closes every session.
func (m *Manager) Shutdown(ctx context.Context) {
	m.mu.RLock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.RUnlock()

	for _, id := range ids {
		if err := m.Close(ctx, id); err != nil {
			m.opts.Logger.Warn("close session failed", zap.String("sessionID", id), zap.Error(err))
		}
	}
}
