/**
* Name: 			auth_handler.go
* Description: 		세션 발급과 종료
* Workflow: 		POST /session 으로 세션 생성 및 토큰 발급, DELETE /api/session 으로 종료
 */
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"NudgePrototype/internal/middleware"
)

// CreateSession godoc
// @Summary      세션 생성
// @Description  새 뷰어 세션을 만들고 세션 토큰을 발급합니다. 세션은 Welcome 화면에서 시작합니다.
// @Description  토큰은 로그인이 아닌 세션 핸들입니다.
// @Tags         Session
// @Produce      json
// @Success      201 {object} handler.SessionResponse
// @Failure      500 {object} handler.ErrorResponse
// @Router       /session [post]
func (h *Handler) CreateSession(c *gin.Context) {
	s := h.sessions.Create()

	token, err := h.signer.GenerateToken(s.ID())
	if err != nil {
		_ = h.sessions.Close(c.Request.Context(), s.ID())
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, SessionResponse{SessionID: s.ID(), Token: token})
}

// DeleteSession godoc
// @Summary      세션 종료
// @Description  세션을 종료합니다. 예약된 채팅 답장은 취소되고 세션 기록은 삭제됩니다.
// @Tags         Session
// @Security     BearerAuth
// @Success      204
// @Failure      401 {object} handler.ErrorResponse
// @Failure      404 {object} handler.ErrorResponse
// @Router       /api/session [delete]
func (h *Handler) DeleteSession(c *gin.Context) {
	id := c.GetString(middleware.SessionIDKey)
	if err := h.sessions.Close(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	h.logger.Info("session deleted by client", zap.String("sessionID", id))
	c.Status(http.StatusNoContent)
}

// ListSessions godoc
// @Summary      세션 목록 (운영용)
// @Description  메모리에 있는 세션을 최근 활동 순으로 반환합니다.
// @Tags         Admin
// @Produce      json
// @Param        X-Admin-Key header string false "운영 키 (설정된 경우 필수)"
// @Success      200 {array}  session.Info
// @Failure      403 {object} handler.ErrorResponse
// @Router       /admin/sessions [get]
func (h *Handler) ListSessions(c *gin.Context) {
	c.JSON(http.StatusOK, h.sessions.List())
}
