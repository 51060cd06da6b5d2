// Package session owns one viewer's state: the roster, the active screen,
// the open chat and the cosmetic radar timers. Every logical action goes
// through the session mutex.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"NudgePrototype/internal/ambient"
	"NudgePrototype/internal/apperr"
	"NudgePrototype/internal/chat"
	"NudgePrototype/internal/maps"
	"NudgePrototype/internal/models"
	"NudgePrototype/internal/observability"
	"NudgePrototype/internal/radar"
	"NudgePrototype/internal/router"
	"NudgePrototype/internal/simulation"
)

var (
	ErrChatLocked      = fmt.Errorf("session: chat locked until both users nudge: %w", apperr.ErrConflict)
	ErrNoChat          = fmt.Errorf("session: no open chat: %w", apperr.ErrConflict)
	ErrClosed          = fmt.Errorf("session: closed: %w", apperr.ErrConflict)
	ErrSessionNotFound = fmt.Errorf("session %w", apperr.ErrNotFound)
)

const journalTimeout = 2 * time.Second

// Recorder receives engine metrics.
type Recorder interface {
	NudgeSent(outcome string)
	ChatMessage(sender string)
	ReplyCancelled()
	RosterGenerated(size int)
}

// Journal stores the action history of a session.
type Journal interface {
	Record(ctx context.Context, r models.Record) error
}

type Config struct {
	Roster radar.RosterConfig

	JitterInterval  time.Duration
	JitterStep      float64
	CompassInterval time.Duration
	CompassStep     float64

	StatusInterval        time.Duration
	Uptime                float64
	WindowFlickerInterval time.Duration
	WindowFlickerChance   float64
	Buildings             int

	ReplyMinDelay time.Duration
	ReplyMaxDelay time.Duration

	DefaultCenter maps.LatLng
	Zoom          int
}

func DefaultConfig() Config {
	return Config{
		Roster:                radar.DefaultRosterConfig(),
		JitterInterval:        3 * time.Second,
		JitterStep:            4,
		CompassInterval:       5 * time.Second,
		CompassStep:           radar.DefaultHeadingStep,
		StatusInterval:        5 * time.Second,
		Uptime:                0.9,
		WindowFlickerInterval: 3 * time.Second,
		WindowFlickerChance:   0.3,
		Buildings:             16,
		ReplyMinDelay:         time.Second,
		ReplyMaxDelay:         3 * time.Second,
		DefaultCenter:         maps.LatLng{Lat: 37.7749, Lng: -122.4194},
		Zoom:                  16,
	}
}

// Deps are the collaborators of a session. Nil fields get working defaults,
// except Prober: without one the backdrop always falls back.
type Deps struct {
	Rand      simulation.Rand
	Scheduler chat.Scheduler
	Prober    ambient.Prober
	Recorder  Recorder
	Journal   Journal
	Logger    *zap.Logger
	Now       func() time.Time
}

// ScreenChange is the payload of a screen event.
type ScreenChange struct {
	Screen router.Screen `json:"screen"`
	UserID string        `json:"userId,omitempty"`
}

// ChatMessageEvent is the payload of a chat.message event.
type ChatMessageEvent struct {
	PeerID  string             `json:"peerId"`
	Message models.ChatMessage `json:"message"`
}

type ChatView struct {
	PeerID   string               `json:"peerId"`
	PeerName string               `json:"peerName"`
	Messages []models.ChatMessage `json:"messages"`
	Pending  bool                 `json:"pending"`
}

// Selection is what tapping a radar dot produced: a popover or a chat.
type Selection struct {
	Screen  router.Screen       `json:"screen"`
	Popover *models.MiniProfile `json:"popover,omitempty"`
	Chat    *ChatView           `json:"chat,omitempty"`
}

// Snapshot is everything a client needs to draw the current screen.
type Snapshot struct {
	SessionID string                 `json:"sessionId"`
	Screen    router.Screen          `json:"screen"`
	Heading   float64                `json:"heading"`
	Users     []models.SimulatedUser `json:"users"`
	Popover   *models.MiniProfile    `json:"popover,omitempty"`
	Profile   *models.FullProfile    `json:"profile,omitempty"`
	Chat      *ChatView              `json:"chat,omitempty"`
	Status    ambient.StatusBar      `json:"status"`
	Skyline   ambient.Skyline        `json:"skyline"`
	Backdrop  *ambient.Backdrop      `json:"backdrop,omitempty"`
}

type Session struct {
	id        string
	cfg       Config
	rng       simulation.Rand
	scheduler chat.Scheduler
	prober    ambient.Prober
	recorder  Recorder
	journal   Journal
	logger    *zap.Logger
	now       func() time.Time
	events    *broker

	mu          sync.Mutex
	roster      *radar.Roster
	heading     float64
	router      *router.Router
	status      ambient.StatusBar
	skyline     ambient.Skyline
	backdrop    *ambient.Backdrop
	radarCancel context.CancelFunc
	tasks       sync.WaitGroup
	writes      sync.WaitGroup
	lastActive  time.Time
	watchers    int
	closed      bool
}

// New builds a session on the welcome screen.
func New(id string, cfg Config, deps Deps) *Session {
	if deps.Rand == nil {
		deps.Rand = simulation.NewRand(0)
	}
	if deps.Scheduler == nil {
		deps.Scheduler = chat.WallScheduler()
	}
	if deps.Recorder == nil {
		deps.Recorder = nopRecorder{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	return &Session{
		id:         id,
		cfg:        cfg,
		rng:        deps.Rand,
		scheduler:  deps.Scheduler,
		prober:     deps.Prober,
		recorder:   deps.Recorder,
		journal:    deps.Journal,
		logger:     deps.Logger,
		now:        deps.Now,
		events:     newBroker(),
		router:     router.New(),
		status:     ambient.NewStatusBar(deps.Rand),
		skyline:    ambient.NewSkyline(deps.Rand, cfg.Buildings),
		lastActive: deps.Now(),
	}
}

func (s *Session) ID() string { return s.id }

// LastActive is the time of the last action. A session with an open
// subscription counts as active now.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watchers > 0 {
		return s.now()
	}
	return s.lastActive
}

func (s *Session) Screen() router.Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.router.Screen()
}

// Subscribe streams session events until cancel is called or the session closes.
func (s *Session) Subscribe(buf int) (<-chan Event, func()) {
	s.mu.Lock()
	s.watchers++
	s.lastActive = s.now()
	s.mu.Unlock()

	ch, unsubscribe := s.events.subscribe(buf)
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			unsubscribe()
			s.mu.Lock()
			s.watchers--
			s.lastActive = s.now()
			s.mu.Unlock()
		})
	}
}

// Start leaves the welcome screen for the radar.
func (s *Session) Start(ctx context.Context) error {
	var recs []models.Record
	defer func() { s.writeJournal(ctx, recs) }()
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.activeLocked(); err != nil {
		return err
	}
	if err := s.router.Start(); err != nil {
		return err
	}
	s.enterRadarLocked()
	recs = append(recs, s.record(models.RecordScreen, "", router.ScreenRadar.String()))
	return nil
}

// SelectUser opens the chat when id is unlocked, otherwise the popover.
func (s *Session) SelectUser(ctx context.Context, id string) (Selection, error) {
	var recs []models.Record
	defer func() { s.writeJournal(ctx, recs) }()
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.activeLocked(); err != nil {
		return Selection{}, err
	}
	if err := s.requireRadarLocked("select user"); err != nil {
		return Selection{}, err
	}
	u, err := s.roster.Get(id)
	if err != nil {
		return Selection{}, err
	}

	if u.ChatUnlocked() {
		view, err := s.openChatLocked(u)
		if err != nil {
			return Selection{}, err
		}
		recs = append(recs, s.record(models.RecordScreen, id, router.ScreenChat.String()))
		return Selection{Screen: router.ScreenChat, Chat: view}, nil
	}

	mini := simulation.MiniProfileFor(s.rng, u)
	if err := s.router.OpenPopover(mini); err != nil {
		return Selection{}, err
	}
	recs = append(recs, s.record(models.RecordPopover, id, mini.Name))
	return Selection{Screen: router.ScreenRadar, Popover: &mini}, nil
}

// OpenChat moves to the chat with id. Only a mutual nudge unlocks it.
func (s *Session) OpenChat(ctx context.Context, id string) (ChatView, error) {
	var recs []models.Record
	defer func() { s.writeJournal(ctx, recs) }()
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.activeLocked(); err != nil {
		return ChatView{}, err
	}
	if err := s.requireRadarLocked("open chat"); err != nil {
		return ChatView{}, err
	}
	u, err := s.roster.Get(id)
	if err != nil {
		return ChatView{}, err
	}
	if !u.ChatUnlocked() {
		return ChatView{}, fmt.Errorf("%w: %s", ErrChatLocked, id)
	}
	view, err := s.openChatLocked(u)
	if err != nil {
		return ChatView{}, err
	}
	recs = append(recs, s.record(models.RecordScreen, id, router.ScreenChat.String()))
	return *view, nil
}

// Nudge sends the viewer's nudge to id from the radar or the full profile.
func (s *Session) Nudge(ctx context.Context, id string) (radar.NudgeResult, error) {
	var recs []models.Record
	defer func() { s.writeJournal(ctx, recs) }()
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.activeLocked(); err != nil {
		return radar.NudgeResult{}, err
	}
	screen := s.router.Screen()
	if s.roster == nil || (screen != router.ScreenRadar && screen != router.ScreenProfile) {
		return radar.NudgeResult{}, fmt.Errorf("%w: nudge from %s", router.ErrInvalidTransition, screen)
	}

	res, err := s.roster.SendNudge(id)
	if err != nil {
		s.recorder.NudgeSent(observability.OutcomeNotFound)
		return radar.NudgeResult{}, err
	}
	switch {
	case !res.Changed:
		s.recorder.NudgeSent(observability.OutcomeNoop)
	case res.Mutual:
		s.recorder.NudgeSent(observability.OutcomeMutual)
	default:
		s.recorder.NudgeSent(observability.OutcomeYouNudged)
	}
	if !res.Changed {
		return res, nil
	}

	s.refreshSelectedLocked(res.User)
	s.publish(EventNudge, res)
	recs = append(recs, s.record(models.RecordNudge, id, res.User.NudgeState.String()))
	if res.Mutual {
		s.logger.Info("mutual nudge", zap.String("sessionID", s.id), zap.String("userID", id))
		recs = append(recs, s.record(models.RecordMutual, id, ""))
	}
	return res, nil
}

// ViewProfile expands the open popover into the full profile screen.
func (s *Session) ViewProfile(ctx context.Context) (models.FullProfile, error) {
	var recs []models.Record
	defer func() { s.writeJournal(ctx, recs) }()
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.activeLocked(); err != nil {
		return models.FullProfile{}, err
	}
	mini, ok := s.router.Popover()
	if !ok {
		return models.FullProfile{}, fmt.Errorf("%w: view profile without popover", router.ErrInvalidTransition)
	}
	full := simulation.FullProfileFor(s.rng, mini)
	if err := s.router.OpenProfile(full); err != nil {
		return models.FullProfile{}, err
	}
	s.stopRadarLocked()
	s.publishScreenLocked()
	recs = append(recs, s.record(models.RecordScreen, mini.ID, router.ScreenProfile.String()))
	return full, nil
}

func (s *Session) ClosePopover() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.activeLocked(); err != nil {
		return err
	}
	s.router.ClosePopover()
	return nil
}

// SendMessage posts the viewer's message in the open chat and schedules a reply.
func (s *Session) SendMessage(ctx context.Context, text string) (models.ChatMessage, error) {
	var recs []models.Record
	defer func() { s.writeJournal(ctx, recs) }()
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.activeLocked(); err != nil {
		return models.ChatMessage{}, err
	}
	c := s.router.Chat()
	if c == nil {
		return models.ChatMessage{}, ErrNoChat
	}
	msg, err := c.Send(text)
	if err != nil {
		return models.ChatMessage{}, err
	}
	s.recorder.ChatMessage(string(models.SenderYou))
	s.publish(EventChatMessage, ChatMessageEvent{PeerID: c.PeerID(), Message: msg})
	recs = append(recs, s.record(models.RecordChatSent, c.PeerID(), msg.Text))
	return msg, nil
}

// Chat returns the open conversation.
func (s *Session) Chat() (ChatView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.router.Chat()
	if c == nil {
		return ChatView{}, ErrNoChat
	}
	return *viewOf(c), nil
}

// Back returns from chat or profile to a freshly generated radar. A pending
// chat reply is dropped.
func (s *Session) Back(ctx context.Context) error {
	var recs []models.Record
	defer func() { s.writeJournal(ctx, recs) }()
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.activeLocked(); err != nil {
		return err
	}
	if err := s.router.Back(); err != nil {
		return err
	}
	s.enterRadarLocked()
	recs = append(recs, s.record(models.RecordScreen, "", router.ScreenRadar.String()))
	return nil
}

// Backdrop decides between the live map and the fallback for loc. It probes
// the map service outside the session lock and never fails on its account.
func (s *Session) Backdrop(ctx context.Context, loc *ambient.DeviceLocation) (ambient.Backdrop, error) {
	s.mu.Lock()
	if err := s.activeLocked(); err != nil {
		s.mu.Unlock()
		return ambient.Backdrop{}, err
	}
	s.mu.Unlock()

	b := ambient.ResolveBackdrop(ctx, s.prober, loc, s.cfg.DefaultCenter, s.cfg.Zoom)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ambient.Backdrop{}, ErrClosed
	}
	s.backdrop = &b
	s.publish(EventBackdrop, b)
	s.mu.Unlock()

	if b.Mode == ambient.BackdropFallback {
		s.logger.Debug("backdrop fallback", zap.String("sessionID", s.id), zap.String("reason", b.Reason))
	}
	s.writeJournal(ctx, []models.Record{s.record(models.RecordBackdrop, "", b.Mode)})
	return b, nil
}

// Users is the current roster, empty before the radar was entered.
func (s *Session) Users() []models.SimulatedUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.roster == nil {
		return []models.SimulatedUser{}
	}
	return s.roster.Users()
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		SessionID: s.id,
		Screen:    s.router.Screen(),
		Heading:   s.heading,
		Users:     []models.SimulatedUser{},
		Status:    s.status,
		Skyline:   s.skyline,
		Backdrop:  s.backdrop,
	}
	if s.roster != nil {
		snap.Users = s.roster.Users()
	}
	if p, ok := s.router.Popover(); ok {
		snap.Popover = &p
	}
	if p, ok := s.router.Profile(); ok {
		snap.Profile = &p
	}
	if c := s.router.Chat(); c != nil {
		snap.Chat = viewOf(c)
	}
	return snap
}

// Close stops every timer and drops a pending reply. It returns once in-flight
// journal writes are done; later writes are dropped. Subscribers are released.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.stopRadarLocked()
	s.router.Close()
	s.mu.Unlock()

	s.tasks.Wait()
	s.writes.Wait()
	s.events.close()
}

func (s *Session) activeLocked() error {
	if s.closed {
		return ErrClosed
	}
	s.lastActive = s.now()
	return nil
}

func (s *Session) requireRadarLocked(action string) error {
	if screen := s.router.Screen(); screen != router.ScreenRadar || s.roster == nil {
		return fmt.Errorf("%w: %s from %s", router.ErrInvalidTransition, action, screen)
	}
	return nil
}

// enterRadarLocked mounts the radar: a fresh roster and a new timer group.
func (s *Session) enterRadarLocked() {
	s.roster = radar.GenerateRoster(s.rng, s.cfg.Roster)
	s.recorder.RosterGenerated(s.roster.Len())
	s.startRadarLocked()
	s.publishScreenLocked()
	s.publish(EventRoster, s.roster.Users())
}

func (s *Session) openChatLocked(u models.SimulatedUser) (*ChatView, error) {
	c := chat.New(u.ID, simulation.NameFor(u.ID), s.chatOptions(u.ID))
	if err := s.router.OpenChat(c); err != nil {
		c.Close()
		return nil, err
	}
	s.stopRadarLocked()
	s.publishScreenLocked()
	return viewOf(c), nil
}

func (s *Session) chatOptions(peerID string) chat.Options {
	return chat.Options{
		Rand:          s.rng,
		Scheduler:     s.scheduler,
		Now:           s.now,
		ReplyMinDelay: s.cfg.ReplyMinDelay,
		ReplyMaxDelay: s.cfg.ReplyMaxDelay,
		// runs on the timer goroutine without the chat lock held
		OnMessage: func(m models.ChatMessage) {
			s.recorder.ChatMessage(string(m.Sender))
			s.publish(EventChatMessage, ChatMessageEvent{PeerID: peerID, Message: m})

			ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
			defer cancel()
			s.writeJournal(ctx, []models.Record{s.record(models.RecordChatReply, peerID, m.Text)})
		},
		OnCancel: s.recorder.ReplyCancelled,
	}
}

// refreshSelectedLocked keeps the popover or profile flags in step with u.
func (s *Session) refreshSelectedLocked(u models.SimulatedUser) {
	if p, ok := s.router.Popover(); ok && p.ID == u.ID {
		p.HasNudged = u.NudgeState.TheyNudged()
		p.YouNudged = u.NudgeState.YouNudged()
		s.router.UpdatePopover(p)
	}
	if p, ok := s.router.Profile(); ok && p.ID == u.ID {
		p.HasNudged = u.NudgeState.TheyNudged()
		p.YouNudged = u.NudgeState.YouNudged()
		s.router.UpdateProfile(p)
	}
}

func (s *Session) startRadarLocked() {
	s.stopRadarLocked()
	ctx, cancel := context.WithCancel(context.Background())
	s.radarCancel = cancel

	runEvery(ctx, &s.tasks, s.cfg.JitterInterval, func() {
		s.tick(ctx, func() Event {
			s.roster.Jitter(s.cfg.JitterStep)
			return s.event(EventRoster, s.roster.Users())
		})
	})
	runEvery(ctx, &s.tasks, s.cfg.CompassInterval, func() {
		s.tick(ctx, func() Event {
			s.heading = radar.RotateHeading(s.heading, s.cfg.CompassStep)
			return s.event(EventHeading, s.heading)
		})
	})
	runEvery(ctx, &s.tasks, s.cfg.StatusInterval, func() {
		s.tick(ctx, func() Event {
			s.status = s.status.Flicker(s.rng, s.cfg.Uptime)
			return s.event(EventStatus, s.status)
		})
	})
	runEvery(ctx, &s.tasks, s.cfg.WindowFlickerInterval, func() {
		s.tick(ctx, func() Event {
			s.skyline = s.skyline.Flicker(s.rng, s.cfg.WindowFlickerChance)
			return s.event(EventSkyline, s.skyline)
		})
	})
}

func (s *Session) stopRadarLocked() {
	if s.radarCancel != nil {
		s.radarCancel()
		s.radarCancel = nil
	}
}

// tick applies one timer step unless its radar group was torn down meanwhile.
func (s *Session) tick(ctx context.Context, step func() Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ctx.Err() != nil || s.closed {
		return
	}
	s.events.publish(step())
}

func (s *Session) publishScreenLocked() {
	s.publish(EventScreen, ScreenChange{Screen: s.router.Screen(), UserID: s.router.SelectedUser()})
}

func (s *Session) event(typ string, payload any) Event {
	return Event{Type: typ, Payload: payload, At: s.now()}
}

func (s *Session) publish(typ string, payload any) {
	s.events.publish(s.event(typ, payload))
}

func (s *Session) record(kind, userID, detail string) models.Record {
	return models.Record{
		SessionID: s.id,
		UserID:    userID,
		Kind:      kind,
		Detail:    detail,
		CreatedAt: s.now(),
	}
}

// writeJournal is best effort; failures are logged. Must be called without s.mu.
func (s *Session) writeJournal(ctx context.Context, recs []models.Record) {
	if s.journal == nil || len(recs) == 0 {
		return
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.writes.Add(1)
	s.mu.Unlock()
	defer s.writes.Done()

	for _, r := range recs {
		if err := s.journal.Record(ctx, r); err != nil {
			s.logger.Warn("journal write failed",
				zap.String("sessionID", s.id),
				zap.String("kind", r.Kind),
				zap.Error(err))
		}
	}
}

func viewOf(c *chat.Session) *ChatView {
	return &ChatView{
		PeerID:   c.PeerID(),
		PeerName: c.PeerName(),
		Messages: c.Messages(),
		Pending:  c.Pending(),
	}
}

type nopRecorder struct{}

func (nopRecorder) NudgeSent(string)      {}
func (nopRecorder) ChatMessage(string)    {}
func (nopRecorder) ReplyCancelled()       {}
func (nopRecorder) RosterGenerated(int)   {}
func (nopRecorder) SetActiveSessions(int) {}
