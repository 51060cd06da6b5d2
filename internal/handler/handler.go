/**
* Name: 			handler.go
* Description: 		Gin HTTP 핸들러 공통 구조체, 응답 타입, 에러 매핑
 */
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"NudgePrototype/internal/apperr"
	"NudgePrototype/internal/auth"
	"NudgePrototype/internal/middleware"
	"NudgePrototype/internal/models"
	"NudgePrototype/internal/session"
)

// HistoryStore reads a session's journal.
type HistoryStore interface {
	RecordsBySession(ctx context.Context, sessionID string, limit int) ([]models.Record, error)
}

// Handler serves the HTTP and WebSocket surface of the session engine.
type Handler struct {
	sessions *session.Manager
	signer   *auth.Signer
	history  HistoryStore
	logger   *zap.Logger
	nudges   *middleware.NudgeLimits
}

func New(sessions *session.Manager, signer *auth.Signer, history HistoryStore, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		sessions: sessions,
		signer:   signer,
		history:  history,
		logger:   logger,
	}
}

type ErrorResponse struct {
	Error string `json:"error" example:"에러 원인 및 설명"`
}

// /session 응답
type SessionResponse struct {
	SessionID string `json:"sessionId" example:"3f2a9c1e-7b4d-4e0a-9d61-0c2f5a8b1e77"`
	Token     string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

type RosterResponse struct {
	Users []models.SimulatedUser `json:"users"`
}

type SendMessageRequest struct {
	Text string `json:"text" example:"Hi! Coffee sometime?"`
}

// 세션 기록 목록 응답 (Wrapper)
type HistoryResponse struct {
	History []models.Record `json:"history"`
}

// statusFor maps an error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperr.ErrExternalServiceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("sessionID", c.GetString(middleware.SessionIDKey)),
			zap.Error(err))
		c.JSON(status, ErrorResponse{Error: "Internal server error"})
		return
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

// currentSession resolves the session named by the validated token.
func (h *Handler) currentSession(c *gin.Context) (*session.Session, bool) {
	s, err := h.sessions.Get(c.GetString(middleware.SessionIDKey))
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	return s, true
}
