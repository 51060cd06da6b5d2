package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NudgePrototype/internal/ambient"
	"NudgePrototype/internal/apperr"
	"NudgePrototype/internal/chat"
	"NudgePrototype/internal/maps"
	"NudgePrototype/internal/models"
	"NudgePrototype/internal/observability"
	"NudgePrototype/internal/radar"
	"NudgePrototype/internal/router"
	"NudgePrototype/internal/simulation"
	"NudgePrototype/internal/simulation/simtest"
)

type fakeTimer struct {
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

// fakeScheduler keeps callbacks until fire, ignoring Stop like a timer that
// already started running.
type fakeScheduler struct {
	mu    sync.Mutex
	funcs []func()
}

func (s *fakeScheduler) AfterFunc(_ time.Duration, f func()) chat.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.funcs = append(s.funcs, f)
	return &fakeTimer{}
}

func (s *fakeScheduler) fire() {
	s.mu.Lock()
	funcs := s.funcs
	s.funcs = nil
	s.mu.Unlock()
	for _, f := range funcs {
		f()
	}
}

type fakeRecorder struct {
	mu        sync.Mutex
	nudges    map[string]int
	messages  map[string]int
	cancelled int
	rosters   []int
	active    int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{nudges: map[string]int{}, messages: map[string]int{}}
}

func (r *fakeRecorder) NudgeSent(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nudges[outcome]++
}

func (r *fakeRecorder) ChatMessage(sender string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages[sender]++
}

func (r *fakeRecorder) ReplyCancelled() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancelled++
}

func (r *fakeRecorder) RosterGenerated(size int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rosters = append(r.rosters, size)
}

func (r *fakeRecorder) SetActiveSessions(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active = n
}

type fakeJournal struct {
	mu      sync.Mutex
	records []models.Record
	deleted []string
	err     error
}

func (j *fakeJournal) Record(_ context.Context, r models.Record) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.err != nil {
		return j.err
	}
	j.records = append(j.records, r)
	return nil
}

func (j *fakeJournal) DeleteSession(_ context.Context, sessionID string) (int64, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.deleted = append(j.deleted, sessionID)
	kept := j.records[:0]
	for _, r := range j.records {
		if r.SessionID != sessionID {
			kept = append(kept, r)
		}
	}
	n := int64(len(j.records) - len(kept))
	j.records = kept
	return n, nil
}

func (j *fakeJournal) recordsFor(sessionID string) []models.Record {
	j.mu.Lock()
	defer j.mu.Unlock()
	var out []models.Record
	for _, r := range j.records {
		if r.SessionID == sessionID {
			out = append(out, r)
		}
	}
	return out
}

func (j *fakeJournal) kinds() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]string, 0, len(j.records))
	for _, r := range j.records {
		out = append(out, r.Kind)
	}
	return out
}

type stubProber struct{ err error }

func (p stubProber) Probe(context.Context, maps.LatLng) error { return p.err }

// testConfig keeps the radar timers from firing during a test.
func testConfig(ack float64) Config {
	cfg := DefaultConfig()
	cfg.Roster.MinUsers = 3
	cfg.Roster.MaxUsers = 3
	cfg.Roster.AckProbability = ack
	cfg.JitterInterval = time.Hour
	cfg.CompassInterval = time.Hour
	cfg.StatusInterval = time.Hour
	cfg.WindowFlickerInterval = time.Hour
	cfg.Buildings = 4
	return cfg
}

type harness struct {
	s       *Session
	sched   *fakeScheduler
	rec     *fakeRecorder
	journal *fakeJournal
}

func newHarness(t *testing.T, cfg Config) *harness {
	t.Helper()
	h := &harness{
		sched:   &fakeScheduler{},
		rec:     newFakeRecorder(),
		journal: &fakeJournal{},
	}
	h.s = New("s-1", cfg, Deps{
		Rand:      &simtest.Rand{Floats: []float64{0.5}},
		Scheduler: h.sched,
		Recorder:  h.rec,
		Journal:   h.journal,
	})
	t.Cleanup(h.s.Close)
	return h
}

func nextEvent(t *testing.T, ch <-chan Event, typ string) Event {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case e, ok := <-ch:
			require.True(t, ok, "event stream closed while waiting for %s", typ)
			if e.Type == typ {
				return e
			}
		case <-timeout:
			t.Fatalf("no %s event", typ)
		}
	}
}

func TestStartGeneratesRoster(t *testing.T) {
	h := newHarness(t, testConfig(0))
	ctx := context.Background()

	snap := h.s.Snapshot()
	assert.Equal(t, router.ScreenWelcome, snap.Screen)
	assert.Empty(t, snap.Users)
	assert.Len(t, snap.Skyline.Buildings, 4)

	require.NoError(t, h.s.Start(ctx))
	snap = h.s.Snapshot()
	assert.Equal(t, router.ScreenRadar, snap.Screen)
	assert.Len(t, snap.Users, 3)
	for _, u := range snap.Users {
		assert.Equal(t, models.NudgeNone, u.NudgeState)
	}
	assert.Equal(t, []int{3}, h.rec.rosters)

	err := h.s.Start(ctx)
	assert.ErrorIs(t, err, router.ErrInvalidTransition)
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestActionsBeforeStartAreRejected(t *testing.T) {
	h := newHarness(t, testConfig(0))
	ctx := context.Background()

	_, err := h.s.SelectUser(ctx, "user-0")
	assert.ErrorIs(t, err, router.ErrInvalidTransition)
	_, err = h.s.Nudge(ctx, "user-0")
	assert.ErrorIs(t, err, router.ErrInvalidTransition)
	_, err = h.s.SendMessage(ctx, "hi")
	assert.ErrorIs(t, err, ErrNoChat)
	assert.ErrorIs(t, h.s.Back(ctx), router.ErrInvalidTransition)
}

func TestSelectLockedUserOpensPopover(t *testing.T) {
	h := newHarness(t, testConfig(0))
	ctx := context.Background()
	require.NoError(t, h.s.Start(ctx))

	sel, err := h.s.SelectUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, router.ScreenRadar, sel.Screen)
	require.NotNil(t, sel.Popover)
	assert.Equal(t, "user-1", sel.Popover.ID)
	assert.Equal(t, simulation.NameFor("user-1"), sel.Popover.Name)
	assert.Nil(t, sel.Chat)

	_, err = h.s.SelectUser(ctx, "user-99")
	assert.ErrorIs(t, err, radar.ErrUserNotFound)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	require.NoError(t, h.s.ClosePopover())
	assert.Nil(t, h.s.Snapshot().Popover)
}

func TestNudgeRefreshesPopover(t *testing.T) {
	h := newHarness(t, testConfig(0))
	ctx := context.Background()
	require.NoError(t, h.s.Start(ctx))
	_, err := h.s.SelectUser(ctx, "user-0")
	require.NoError(t, err)

	res, err := h.s.Nudge(ctx, "user-0")
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.False(t, res.Mutual)
	assert.Equal(t, models.NudgeYouNudged, res.User.NudgeState)

	pop := h.s.Snapshot().Popover
	require.NotNil(t, pop)
	assert.True(t, pop.YouNudged)
	assert.False(t, pop.HasNudged)

	res, err = h.s.Nudge(ctx, "user-0")
	require.NoError(t, err)
	assert.False(t, res.Changed)

	_, err = h.s.Nudge(ctx, "ghost")
	assert.ErrorIs(t, err, radar.ErrUserNotFound)
	assert.Len(t, h.s.Users(), 3)

	assert.Equal(t, 1, h.rec.nudges[observability.OutcomeYouNudged])
	assert.Equal(t, 1, h.rec.nudges[observability.OutcomeNoop])
	assert.Equal(t, 1, h.rec.nudges[observability.OutcomeNotFound])
}

func TestOpenChatRequiresMutualNudge(t *testing.T) {
	h := newHarness(t, testConfig(0))
	ctx := context.Background()
	require.NoError(t, h.s.Start(ctx))

	_, err := h.s.OpenChat(ctx, "user-0")
	assert.ErrorIs(t, err, ErrChatLocked)
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.Equal(t, router.ScreenRadar, h.s.Screen())
}

func TestMutualNudgeUnlocksChat(t *testing.T) {
	h := newHarness(t, testConfig(1))
	ctx := context.Background()
	require.NoError(t, h.s.Start(ctx))

	res, err := h.s.Nudge(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, res.Mutual)
	assert.Equal(t, 1, h.rec.nudges[observability.OutcomeMutual])

	sel, err := h.s.SelectUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, router.ScreenChat, sel.Screen)
	require.NotNil(t, sel.Chat)
	assert.Equal(t, "user-1", sel.Chat.PeerID)
	assert.Equal(t, simulation.NameFor("user-1"), sel.Chat.PeerName)
	require.Len(t, sel.Chat.Messages, 1)
	assert.Equal(t, simulation.ChatGreeting, sel.Chat.Messages[0].Text)

	assert.Contains(t, h.journal.kinds(), models.RecordMutual)
}

func TestSendMessageSchedulesReply(t *testing.T) {
	h := newHarness(t, testConfig(1))
	ctx := context.Background()
	events, cancel := h.s.Subscribe(64)
	defer cancel()

	require.NoError(t, h.s.Start(ctx))
	_, err := h.s.Nudge(ctx, "user-2")
	require.NoError(t, err)
	_, err = h.s.OpenChat(ctx, "user-2")
	require.NoError(t, err)

	_, err = h.s.SendMessage(ctx, "   ")
	assert.ErrorIs(t, err, chat.ErrEmptyMessage)

	msg, err := h.s.SendMessage(ctx, "hi there")
	require.NoError(t, err)
	assert.Equal(t, models.SenderYou, msg.Sender)

	view, err := h.s.Chat()
	require.NoError(t, err)
	assert.True(t, view.Pending)

	h.sched.fire()

	view, err = h.s.Chat()
	require.NoError(t, err)
	require.Len(t, view.Messages, 3)
	assert.Equal(t, models.SenderThem, view.Messages[2].Sender)
	assert.False(t, view.Pending)

	sent := nextEvent(t, events, EventChatMessage).Payload.(ChatMessageEvent)
	assert.Equal(t, models.SenderYou, sent.Message.Sender)
	reply := nextEvent(t, events, EventChatMessage).Payload.(ChatMessageEvent)
	assert.Equal(t, models.SenderThem, reply.Message.Sender)
	assert.Equal(t, "user-2", reply.PeerID)

	assert.Equal(t, 1, h.rec.messages[string(models.SenderYou)])
	assert.Equal(t, 1, h.rec.messages[string(models.SenderThem)])
	assert.Contains(t, h.journal.kinds(), models.RecordChatReply)
}

func TestBackBeforeReplyDropsIt(t *testing.T) {
	h := newHarness(t, testConfig(1))
	ctx := context.Background()
	events, cancel := h.s.Subscribe(64)
	defer cancel()

	require.NoError(t, h.s.Start(ctx))
	_, err := h.s.Nudge(ctx, "user-0")
	require.NoError(t, err)
	_, err = h.s.OpenChat(ctx, "user-0")
	require.NoError(t, err)
	_, err = h.s.SendMessage(ctx, "see you")
	require.NoError(t, err)

	require.NoError(t, h.s.Back(ctx))
	h.sched.fire()

	snap := h.s.Snapshot()
	assert.Equal(t, router.ScreenRadar, snap.Screen)
	assert.Nil(t, snap.Chat)
	assert.Nil(t, snap.Popover)
	for _, u := range snap.Users {
		assert.Equal(t, models.NudgeNone, u.NudgeState, "roster is regenerated on return")
	}
	assert.Equal(t, 1, h.rec.cancelled)
	assert.Equal(t, 0, h.rec.messages[string(models.SenderThem)])
	assert.Len(t, h.rec.rosters, 2)

	cancel()
	for e := range events {
		if e.Type == EventChatMessage {
			assert.NotEqual(t, models.SenderThem, e.Payload.(ChatMessageEvent).Message.Sender)
		}
	}
}

func TestProfileFlow(t *testing.T) {
	h := newHarness(t, testConfig(0))
	ctx := context.Background()
	require.NoError(t, h.s.Start(ctx))

	_, err := h.s.ViewProfile(ctx)
	assert.ErrorIs(t, err, router.ErrInvalidTransition)

	_, err = h.s.SelectUser(ctx, "user-2")
	require.NoError(t, err)
	full, err := h.s.ViewProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user-2", full.ID)
	assert.Equal(t, simulation.BioFor(full.Name), full.Bio)
	assert.Equal(t, router.ScreenProfile, h.s.Screen())

	_, err = h.s.Nudge(ctx, "user-2")
	require.NoError(t, err)
	profile := h.s.Snapshot().Profile
	require.NotNil(t, profile)
	assert.True(t, profile.YouNudged)

	require.NoError(t, h.s.Back(ctx))
	snap := h.s.Snapshot()
	assert.Equal(t, router.ScreenRadar, snap.Screen)
	assert.Nil(t, snap.Profile)
}

func TestRadarTimersStopWhenLeavingRadar(t *testing.T) {
	cfg := testConfig(0)
	cfg.JitterInterval = 5 * time.Millisecond
	cfg.CompassInterval = 5 * time.Millisecond
	cfg.StatusInterval = 5 * time.Millisecond
	cfg.WindowFlickerInterval = 5 * time.Millisecond

	s := New("s-timers", cfg, Deps{Rand: simulation.NewRand(7)})
	defer s.Close()
	events, cancel := s.Subscribe(1024)
	defer cancel()
	ctx := context.Background()

	require.NoError(t, s.Start(ctx))
	heading := nextEvent(t, events, EventHeading).Payload.(float64)
	assert.InDelta(t, radar.DefaultHeadingStep, heading, 1e-9)
	nextEvent(t, events, EventStatus)
	nextEvent(t, events, EventSkyline)

	_, err := s.SelectUser(ctx, "user-0")
	require.NoError(t, err)
	_, err = s.ViewProfile(ctx)
	require.NoError(t, err)

	for {
		e := nextEvent(t, events, EventScreen)
		if e.Payload.(ScreenChange).Screen == router.ScreenProfile {
			break
		}
	}
	headingAtExit := s.Snapshot().Heading

	quiet := time.After(60 * time.Millisecond)
	for done := false; !done; {
		select {
		case e := <-events:
			switch e.Type {
			case EventRoster, EventHeading, EventStatus, EventSkyline:
				t.Fatalf("radar event %s after leaving radar", e.Type)
			}
		case <-quiet:
			done = true
		}
	}
	assert.Equal(t, headingAtExit, s.Snapshot().Heading)
}

func TestBackdrop(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(0)

	s := New("s-map", cfg, Deps{Prober: stubProber{}})
	defer s.Close()
	b, err := s.Backdrop(ctx, &ambient.DeviceLocation{Lat: 1.5, Lng: 2.5})
	require.NoError(t, err)
	assert.Equal(t, ambient.BackdropMap, b.Mode)
	assert.Equal(t, maps.LatLng{Lat: 1.5, Lng: 2.5}, b.Center)
	assert.Equal(t, &b, s.Snapshot().Backdrop)

	denied, err := s.Backdrop(ctx, &ambient.DeviceLocation{Denied: true})
	require.NoError(t, err)
	assert.Equal(t, cfg.DefaultCenter, denied.Center)
	assert.NotEmpty(t, denied.Reason)

	down := New("s-down", cfg, Deps{Prober: stubProber{err: maps.ErrUnavailable}})
	defer down.Close()
	b, err = down.Backdrop(ctx, &ambient.DeviceLocation{Lat: 1, Lng: 1})
	require.NoError(t, err)
	assert.Equal(t, ambient.BackdropFallback, b.Mode)

	none := New("s-none", cfg, Deps{})
	defer none.Close()
	b, err = none.Backdrop(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, ambient.BackdropFallback, b.Mode)
}

func TestCloseReleasesSubscribersAndRejectsActions(t *testing.T) {
	h := newHarness(t, testConfig(1))
	ctx := context.Background()
	events, cancel := h.s.Subscribe(64)
	defer cancel()

	require.NoError(t, h.s.Start(ctx))
	_, err := h.s.Nudge(ctx, "user-0")
	require.NoError(t, err)
	_, err = h.s.OpenChat(ctx, "user-0")
	require.NoError(t, err)
	_, err = h.s.SendMessage(ctx, "bye")
	require.NoError(t, err)

	h.s.Close()
	h.sched.fire()
	assert.Equal(t, 1, h.rec.cancelled)
	assert.Equal(t, 0, h.rec.messages[string(models.SenderThem)])

	for range events {
	}
	assert.ErrorIs(t, h.s.Start(ctx), ErrClosed)
	_, err = h.s.Backdrop(ctx, nil)
	assert.ErrorIs(t, err, ErrClosed)
	h.s.Close()
}

func TestJournalFailureDoesNotFailAction(t *testing.T) {
	h := newHarness(t, testConfig(0))
	h.journal.err = errors.New("disk full")
	require.NoError(t, h.s.Start(context.Background()))
	assert.Empty(t, h.journal.kinds())
}
