package router

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NudgePrototype/internal/apperr"
	"NudgePrototype/internal/chat"
	"NudgePrototype/internal/models"
)

type noopTimer struct{ stopped *bool }

func (t noopTimer) Stop() bool {
	*t.stopped = true
	return true
}

type holdScheduler struct {
	stopped bool
	fire    func()
}

func (h *holdScheduler) AfterFunc(_ time.Duration, f func()) chat.Timer {
	h.fire = f
	return noopTimer{stopped: &h.stopped}
}

func TestStartOnlyFromWelcome(t *testing.T) {
	r := New()
	assert.Equal(t, ScreenWelcome, r.Screen())
	require.NoError(t, r.Start())
	assert.Equal(t, ScreenRadar, r.Screen())

	err := r.Start()
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestPopoverIsRadarSubstate(t *testing.T) {
	r := New()
	assert.ErrorIs(t, r.OpenPopover(models.MiniProfile{ID: "user-1"}), ErrInvalidTransition)

	require.NoError(t, r.Start())
	require.NoError(t, r.OpenPopover(models.MiniProfile{ID: "user-1"}))
	assert.Equal(t, ScreenRadar, r.Screen())
	p, ok := r.Popover()
	require.True(t, ok)
	assert.Equal(t, "user-1", p.ID)
	assert.Equal(t, "user-1", r.SelectedUser())

	r.UpdatePopover(models.MiniProfile{ID: "user-1", YouNudged: true})
	p, _ = r.Popover()
	assert.True(t, p.YouNudged)

	r.UpdatePopover(models.MiniProfile{ID: "user-2"})
	p, _ = r.Popover()
	assert.Equal(t, "user-1", p.ID)

	r.ClosePopover()
	_, ok = r.Popover()
	assert.False(t, ok)
}

func TestProfileRequiresPopover(t *testing.T) {
	r := New()
	require.NoError(t, r.Start())
	assert.ErrorIs(t, r.OpenProfile(models.FullProfile{}), ErrInvalidTransition)

	require.NoError(t, r.OpenPopover(models.MiniProfile{ID: "user-4"}))
	require.NoError(t, r.OpenProfile(models.FullProfile{MiniProfile: models.MiniProfile{ID: "user-4"}}))
	assert.Equal(t, ScreenProfile, r.Screen())
	_, ok := r.Popover()
	assert.False(t, ok)

	r.UpdateProfile(models.FullProfile{MiniProfile: models.MiniProfile{ID: "user-9", YouNudged: true}})
	full, _ := r.Profile()
	assert.False(t, full.YouNudged)
	r.UpdateProfile(models.FullProfile{MiniProfile: models.MiniProfile{ID: "user-4", YouNudged: true}})
	full, _ = r.Profile()
	assert.True(t, full.YouNudged)

	require.NoError(t, r.Back())
	assert.Equal(t, ScreenRadar, r.Screen())
	_, ok = r.Profile()
	assert.False(t, ok)
	assert.Empty(t, r.SelectedUser())
}

func TestBackFromChatClosesSession(t *testing.T) {
	sched := &holdScheduler{}
	var delivered []models.ChatMessage
	s := chat.New("user-2", "Casey", chat.Options{
		Scheduler: sched,
		OnMessage: func(m models.ChatMessage) { delivered = append(delivered, m) },
	})

	r := New()
	require.NoError(t, r.Start())
	require.NoError(t, r.OpenPopover(models.MiniProfile{ID: "user-9"}))
	require.NoError(t, r.OpenChat(s))
	assert.Equal(t, ScreenChat, r.Screen())
	_, ok := r.Popover()
	assert.False(t, ok)

	_, err := s.Send("hey")
	require.NoError(t, err)

	require.NoError(t, r.Back())
	assert.Nil(t, r.Chat())
	assert.True(t, s.Closed())
	assert.True(t, sched.stopped)

	// reply fires after navigation: nothing is delivered
	sched.fire()
	assert.Empty(t, delivered)
}

func TestBackOnlyFromChatOrProfile(t *testing.T) {
	r := New()
	assert.ErrorIs(t, r.Back(), ErrInvalidTransition)
	require.NoError(t, r.Start())
	assert.ErrorIs(t, r.Back(), ErrInvalidTransition)
	assert.ErrorIs(t, r.OpenChat(nil), ErrInvalidTransition)
}

func TestScreenText(t *testing.T) {
	b, err := ScreenProfile.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "profile", string(b))
	assert.Equal(t, "Screen(7)", Screen(7).String())

	var decoded struct {
		Screen Screen `json:"screen"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"screen":"chat"}`), &decoded))
	assert.Equal(t, ScreenChat, decoded.Screen)

	out, err := json.Marshal(decoded)
	require.NoError(t, err)
	assert.JSONEq(t, `{"screen":"chat"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"screen":"lobby"}`), &decoded))
}
