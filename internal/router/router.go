// Package router tracks which top-level screen is active and the transient
// state that belongs to it.
package router

import (
	"fmt"

	"NudgePrototype/internal/apperr"
	"NudgePrototype/internal/chat"
	"NudgePrototype/internal/models"
)

type Screen int

const (
	ScreenWelcome Screen = iota
	ScreenRadar
	ScreenChat
	ScreenProfile
)

func (s Screen) String() string {
	switch s {
	case ScreenWelcome:
		return "welcome"
	case ScreenRadar:
		return "radar"
	case ScreenChat:
		return "chat"
	case ScreenProfile:
		return "profile"
	default:
		return fmt.Sprintf("Screen(%d)", int(s))
	}
}

func (s Screen) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Screen) UnmarshalText(b []byte) error {
	for _, screen := range []Screen{ScreenWelcome, ScreenRadar, ScreenChat, ScreenProfile} {
		if screen.String() == string(b) {
			*s = screen
			return nil
		}
	}
	return fmt.Errorf("unknown screen %q", string(b))
}

var ErrInvalidTransition = fmt.Errorf("router: invalid screen transition: %w", apperr.ErrConflict)

// Router is a depth-1 screen stack. It is not safe for concurrent use; the
// owning session serialises access.
type Router struct {
	screen  Screen
	popover *models.MiniProfile
	profile *models.FullProfile
	chat    *chat.Session
}

func New() *Router { return &Router{screen: ScreenWelcome} }

func (r *Router) Screen() Screen { return r.screen }

func (r *Router) Popover() (models.MiniProfile, bool) {
	if r.popover == nil {
		return models.MiniProfile{}, false
	}
	return *r.popover, true
}

func (r *Router) Profile() (models.FullProfile, bool) {
	if r.profile == nil {
		return models.FullProfile{}, false
	}
	return *r.profile, true
}

func (r *Router) Chat() *chat.Session { return r.chat }

// SelectedUser is the user the active chat or profile belongs to.
func (r *Router) SelectedUser() string {
	switch {
	case r.chat != nil:
		return r.chat.PeerID()
	case r.profile != nil:
		return r.profile.ID
	case r.popover != nil:
		return r.popover.ID
	}
	return ""
}

func (r *Router) transitionErr(action string) error {
	return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, action, r.screen)
}

// Start leaves the welcome screen.
func (r *Router) Start() error {
	if r.screen != ScreenWelcome {
		return r.transitionErr("start")
	}
	r.screen = ScreenRadar
	return nil
}

// OpenPopover shows the inline mini profile. It replaces any open popover.
func (r *Router) OpenPopover(p models.MiniProfile) error {
	if r.screen != ScreenRadar {
		return r.transitionErr("open popover")
	}
	r.popover = &p
	return nil
}

// UpdatePopover refreshes the open popover in place.
func (r *Router) UpdatePopover(p models.MiniProfile) {
	if r.popover != nil && r.popover.ID == p.ID {
		r.popover = &p
	}
}

// UpdateProfile refreshes the open profile in place.
func (r *Router) UpdateProfile(p models.FullProfile) {
	if r.profile != nil && r.profile.ID == p.ID {
		r.profile = &p
	}
}

func (r *Router) ClosePopover() {
	r.popover = nil
}

// OpenChat moves to the chat screen. The caller checks that chat is unlocked.
func (r *Router) OpenChat(s *chat.Session) error {
	if r.screen != ScreenRadar || s == nil {
		return r.transitionErr("open chat")
	}
	r.popover = nil
	r.chat = s
	r.screen = ScreenChat
	return nil
}

// OpenProfile moves from an open popover to the full profile screen.
func (r *Router) OpenProfile(p models.FullProfile) error {
	if r.screen != ScreenRadar || r.popover == nil {
		return r.transitionErr("view profile")
	}
	r.popover = nil
	r.profile = &p
	r.screen = ScreenProfile
	return nil
}

// Back returns to the radar and clears every piece of per-screen state.
func (r *Router) Back() error {
	if r.screen != ScreenChat && r.screen != ScreenProfile {
		return r.transitionErr("back")
	}
	r.reset()
	r.screen = ScreenRadar
	return nil
}

// Close drops all transient state, closing an open chat.
func (r *Router) Close() {
	r.reset()
}

func (r *Router) reset() {
	if r.chat != nil {
		r.chat.Close()
	}
	r.chat = nil
	r.profile = nil
	r.popover = nil
}
