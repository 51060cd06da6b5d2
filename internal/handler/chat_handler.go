package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"NudgePrototype/internal/apperr"
)

// GetChat godoc
// @Summary      채팅 내용 조회
// @Tags         Chat
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} session.ChatView
// @Failure      409 {object} handler.ErrorResponse "열린 채팅 없음"
// @Router       /api/chat [get]
func (h *Handler) GetChat(c *gin.Context) {
	s, ok := h.currentSession(c)
	if !ok {
		return
	}
	view, err := s.Chat()
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SendMessage godoc
// @Summary      메시지 보내기
// @Description  메시지를 추가하고 1~3초 뒤 상대의 답장을 예약합니다. 답장 전에 다시 보내면 이전 답장은 취소됩니다.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body handler.SendMessageRequest true "메시지"
// @Success      201 {object} models.ChatMessage
// @Failure      400 {object} handler.ErrorResponse "빈 메시지"
// @Failure      409 {object} handler.ErrorResponse "열린 채팅 없음"
// @Router       /api/chat/messages [post]
func (h *Handler) SendMessage(c *gin.Context) {
	s, ok := h.currentSession(c)
	if !ok {
		return
	}
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, fmt.Errorf("%w: %v", apperr.ErrInvalidInput, err))
		return
	}
	msg, err := s.SendMessage(c.Request.Context(), req.Text)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}
