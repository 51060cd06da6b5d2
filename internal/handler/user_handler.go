/**
* Name: 			user_handler.go
* Description: 		레이더 화면 핸들러
* Workflow: 		시작, 로스터 조회, 사용자 선택, 넛지, 팝오버, 프로필, 뒤로가기
 */
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetState godoc
// @Summary      현재 화면 상태
// @Description  현재 화면, 로스터, 팝오버/프로필/채팅, 상태 표시줄, 스카이라인, 배경을 한 번에 반환합니다.
// @Tags         Radar
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} session.Snapshot
// @Failure      401 {object} handler.ErrorResponse
// @Failure      404 {object} handler.ErrorResponse
// @Router       /api/state [get]
func (h *Handler) GetState(c *gin.Context) {
	s, ok := h.currentSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

// Start godoc
// @Summary      레이더 시작
// @Description  Welcome 화면에서 레이더로 이동하며 새 로스터를 생성합니다.
// @Tags         Radar
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} session.Snapshot
// @Failure      409 {object} handler.ErrorResponse "Welcome 화면이 아님"
// @Router       /api/start [post]
func (h *Handler) Start(c *gin.Context) {
	s, ok := h.currentSession(c)
	if !ok {
		return
	}
	if err := s.Start(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

// GetRoster godoc
// @Summary      주변 사용자 목록
// @Tags         Radar
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} handler.RosterResponse
// @Router       /api/roster [get]
func (h *Handler) GetRoster(c *gin.Context) {
	s, ok := h.currentSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, RosterResponse{Users: s.Users()})
}

// SelectUser godoc
// @Summary      레이더 점 선택
// @Description  채팅이 열린 사용자면 채팅 화면으로, 아니면 미니 프로필 팝오버를 엽니다.
// @Tags         Radar
// @Produce      json
// @Security     BearerAuth
// @Param        id  path     string  true  "사용자 ID (예: user-3)"
// @Success      200 {object} session.Selection
// @Failure      404 {object} handler.ErrorResponse "없는 사용자"
// @Failure      409 {object} handler.ErrorResponse "레이더 화면이 아님"
// @Router       /api/users/{id}/select [post]
func (h *Handler) SelectUser(c *gin.Context) {
	s, ok := h.currentSession(c)
	if !ok {
		return
	}
	sel, err := s.SelectUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sel)
}

// NudgeUser godoc
// @Summary      넛지 보내기
// @Description  사용자에게 넛지를 보냅니다. 이미 보낸 경우 변화 없음(changed=false). 상대가 이미 넛지했다면 mutual이 되어 채팅이 열립니다.
// @Tags         Radar
// @Produce      json
// @Security     BearerAuth
// @Param        id  path     string  true  "사용자 ID"
// @Success      200 {object} radar.NudgeResult
// @Failure      404 {object} handler.ErrorResponse "없는 사용자"
// @Failure      409 {object} handler.ErrorResponse "레이더/프로필 화면이 아님"
// @Failure      429 {object} handler.ErrorResponse "요청 과다"
// @Router       /api/users/{id}/nudge [post]
func (h *Handler) NudgeUser(c *gin.Context) {
	s, ok := h.currentSession(c)
	if !ok {
		return
	}
	res, err := s.Nudge(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// OpenChat godoc
// @Summary      채팅 열기
// @Tags         Chat
// @Produce      json
// @Security     BearerAuth
// @Param        id  path     string  true  "사용자 ID"
// @Success      200 {object} session.ChatView
// @Failure      409 {object} handler.ErrorResponse "상호 넛지 전"
// @Router       /api/users/{id}/chat [post]
func (h *Handler) OpenChat(c *gin.Context) {
	s, ok := h.currentSession(c)
	if !ok {
		return
	}
	view, err := s.OpenChat(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ClosePopover godoc
// @Summary      팝오버 닫기
// @Tags         Radar
// @Security     BearerAuth
// @Success      204
// @Router       /api/popover/close [post]
func (h *Handler) ClosePopover(c *gin.Context) {
	s, ok := h.currentSession(c)
	if !ok {
		return
	}
	if err := s.ClosePopover(); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ViewProfile godoc
// @Summary      전체 프로필 보기
// @Description  열린 팝오버의 사용자를 전체 프로필 화면으로 엽니다.
// @Tags         Profile
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} models.FullProfile
// @Failure      409 {object} handler.ErrorResponse "열린 팝오버 없음"
// @Router       /api/profile [post]
func (h *Handler) ViewProfile(c *gin.Context) {
	s, ok := h.currentSession(c)
	if !ok {
		return
	}
	full, err := s.ViewProfile(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, full)
}

// Back godoc
// @Summary      레이더로 돌아가기
// @Description  채팅 또는 프로필에서 레이더로 돌아갑니다. 로스터는 새로 생성되고 대기 중인 답장은 취소됩니다.
// @Tags         Radar
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} session.Snapshot
// @Failure      409 {object} handler.ErrorResponse "채팅/프로필 화면이 아님"
// @Router       /api/back [post]
func (h *Handler) Back(c *gin.Context) {
	s, ok := h.currentSession(c)
	if !ok {
		return
	}
	if err := s.Back(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}
