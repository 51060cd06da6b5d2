package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"NudgePrototype/internal/apperr"
	"NudgePrototype/internal/middleware"
	"NudgePrototype/internal/session"
)

const (
	eventBuffer    = 64
	maxCommandSize = 4096
	writeWait      = 5 * time.Second

	eventSnapshot = "snapshot"
	eventResult   = "result"
	eventError    = "error"
)

var errTooManyNudges = errors.New("too many requests")

// Command is a client instruction received over the WebSocket.
type Command struct {
	Type   string `json:"type"`
	UserID string `json:"userId,omitempty"`
	Text   string `json:"text,omitempty"`
}

// manageEventStream pumps session events to conn and client commands into
// the session until either side goes away. Nudges draw from the same
// per-session bucket as the HTTP nudge route.
func manageEventStream(parentCtx context.Context, conn *websocket.Conn, s *session.Session, nudges *middleware.NudgeLimits, logger *zap.Logger) {
	defer conn.Close()
	logger = logger.With(zap.String("sessionID", s.ID()))

	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	// subscribe before the snapshot so nothing falls between them
	events, unsubscribe := s.Subscribe(eventBuffer)
	defer unsubscribe()
	replies := make(chan session.Event, 16)

	var wg sync.WaitGroup
	wg.Add(2)

	// Client -> Server, 읽기 전담
	go func() {
		defer wg.Done()
		defer cancel()
		clientReadPump(ctx, conn, s, nudges, replies, logger)
	}()

	// Server -> Client, 쓰기 전담
	go func() {
		defer wg.Done()
		defer cancel()
		clientWritePump(ctx, conn, s.Snapshot(), events, replies, logger)
	}()

	<-ctx.Done()
	// unblocks a pending ReadMessage
	conn.Close()
	wg.Wait()
	logger.Info("websocket session ended")
}

func clientReadPump(ctx context.Context, conn *websocket.Conn, s *session.Session, nudges *middleware.NudgeLimits, replies chan<- session.Event, logger *zap.Logger) {
	conn.SetReadLimit(maxCommandSize)
	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("clientReadPump(): read failed", zap.Error(err))
			}
			return
		}
		if messageType != websocket.TextMessage {
			logger.Debug("clientReadPump(): unsupported message type", zap.Int("type", messageType))
			continue
		}

		var cmd Command
		reply := session.Event{Type: eventResult, At: time.Now()}
		if err := json.Unmarshal(message, &cmd); err != nil {
			reply.Type, reply.Payload = eventError, ErrorResponse{Error: "malformed command"}
		} else if payload, err := dispatch(ctx, s, nudges, cmd); err != nil {
			reply.Type, reply.Payload = eventError, ErrorResponse{Error: err.Error()}
		} else {
			reply.Payload = payload
		}

		select {
		case replies <- reply:
		case <-ctx.Done():
			return
		}
	}
}

func dispatch(ctx context.Context, s *session.Session, nudges *middleware.NudgeLimits, cmd Command) (any, error) {
	switch cmd.Type {
	case "start":
		if err := s.Start(ctx); err != nil {
			return nil, err
		}
		return s.Snapshot(), nil
	case "nudge":
		if nudges != nil && !nudges.AllowSession(s.ID()) {
			return nil, errTooManyNudges
		}
		return s.Nudge(ctx, cmd.UserID)
	case "select":
		return s.SelectUser(ctx, cmd.UserID)
	case "profile":
		return s.ViewProfile(ctx)
	case "chat":
		return s.SendMessage(ctx, cmd.Text)
	case "back":
		if err := s.Back(ctx); err != nil {
			return nil, err
		}
		return s.Snapshot(), nil
	default:
		return nil, fmt.Errorf("%w: unknown command %q", apperr.ErrInvalidInput, cmd.Type)
	}
}

func clientWritePump(ctx context.Context, conn *websocket.Conn, snapshot session.Snapshot, events <-chan session.Event, replies <-chan session.Event, logger *zap.Logger) {
	write := func(e session.Event) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(e); err != nil {
			logger.Debug("clientWritePump(): write failed", zap.Error(err))
			return false
		}
		return true
	}

	if !write(session.Event{Type: eventSnapshot, Payload: snapshot, At: time.Now()}) {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				// session closed
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"),
					time.Now().Add(writeWait))
				return
			}
			if !write(e) {
				return
			}
		case e := <-replies:
			if !write(e) {
				return
			}
		}
	}
}
