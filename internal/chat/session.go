// Package chat holds the ephemeral conversation owned by the chat screen,
// including the simulated peer reply.
package chat

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"NudgePrototype/internal/apperr"
	"NudgePrototype/internal/models"
	"NudgePrototype/internal/simulation"
)

var (
	ErrEmptyMessage  = fmt.Errorf("chat: empty message: %w", apperr.ErrInvalidInput)
	ErrSessionClosed = fmt.Errorf("chat: session closed: %w", apperr.ErrConflict)
)

type Options struct {
	Rand          simulation.Rand
	Scheduler     Scheduler
	Now           func() time.Time
	ReplyMinDelay time.Duration
	ReplyMaxDelay time.Duration
	// OnMessage is called for every simulated reply that is delivered.
	// It runs on the scheduler's goroutine without the session lock held.
	OnMessage func(models.ChatMessage)
	// OnCancel is called when a scheduled reply is dropped before delivery.
	OnCancel func()
}

// Session is one conversation with a simulated peer.
type Session struct {
	mu       sync.Mutex
	peerID   string
	peerName string
	opts     Options
	messages []models.ChatMessage
	pending  Timer
	// generation identifies the currently scheduled reply
	generation uint64
	closed     bool
}

func New(peerID, peerName string, opts Options) *Session {
	if opts.Rand == nil {
		opts.Rand = simulation.NewRand(0)
	}
	if opts.Scheduler == nil {
		opts.Scheduler = WallScheduler()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ReplyMinDelay == 0 && opts.ReplyMaxDelay == 0 {
		opts.ReplyMinDelay, opts.ReplyMaxDelay = time.Second, 3*time.Second
	}
	if opts.ReplyMaxDelay < opts.ReplyMinDelay {
		opts.ReplyMaxDelay = opts.ReplyMinDelay
	}

	s := &Session{
		peerID:   peerID,
		peerName: peerName,
		opts:     opts,
	}
	s.messages = append(s.messages, models.ChatMessage{
		ID:        uuid.New().String(),
		Text:      simulation.ChatGreeting,
		Sender:    models.SenderThem,
		Timestamp: opts.Now().Add(-time.Minute),
	})
	return s
}

func (s *Session) PeerID() string   { return s.peerID }
func (s *Session) PeerName() string { return s.peerName }

// Messages returns a copy of the transcript.
func (s *Session) Messages() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ChatMessage(nil), s.messages...)
}

// Pending reports whether a reply is scheduled.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// Send appends the viewer's message and schedules one simulated reply.
// A newer send supersedes a reply that has not fired yet.
func (s *Session) Send(text string) (models.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return models.ChatMessage{}, ErrEmptyMessage
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return models.ChatMessage{}, ErrSessionClosed
	}
	msg := models.ChatMessage{
		ID:        uuid.New().String(),
		Text:      text,
		Sender:    models.SenderYou,
		Timestamp: s.opts.Now(),
	}
	s.messages = append(s.messages, msg)

	superseded := s.stopPendingLocked()
	s.generation++
	gen := s.generation
	delay := s.replyDelay()
	s.pending = s.opts.Scheduler.AfterFunc(delay, func() { s.deliver(gen) })
	s.mu.Unlock()

	if superseded && s.opts.OnCancel != nil {
		s.opts.OnCancel()
	}
	return msg, nil
}

// Close tears the conversation down. A reply that has not fired is dropped.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	cancelled := s.stopPendingLocked()
	s.mu.Unlock()

	if cancelled && s.opts.OnCancel != nil {
		s.opts.OnCancel()
	}
}

func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Session) deliver(gen uint64) {
	s.mu.Lock()
	if s.closed || gen != s.generation || s.pending == nil {
		s.mu.Unlock()
		return
	}
	s.pending = nil
	reply := models.ChatMessage{
		ID:        uuid.New().String(),
		Text:      simulation.ChatReply(s.opts.Rand),
		Sender:    models.SenderThem,
		Timestamp: s.opts.Now(),
	}
	s.messages = append(s.messages, reply)
	s.mu.Unlock()

	if s.opts.OnMessage != nil {
		s.opts.OnMessage(reply)
	}
}

// stopPendingLocked reports whether a scheduled reply was dropped.
func (s *Session) stopPendingLocked() bool {
	if s.pending == nil {
		return false
	}
	s.pending.Stop()
	s.pending = nil
	return true
}

func (s *Session) replyDelay() time.Duration {
	spread := s.opts.ReplyMaxDelay - s.opts.ReplyMinDelay
	return s.opts.ReplyMinDelay + time.Duration(s.opts.Rand.Float64()*float64(spread))
}
