package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"NudgePrototype/internal/ambient"
	"NudgePrototype/internal/apperr"
	"NudgePrototype/internal/simulation"
)

type ThemesResponse struct {
	Default string             `json:"default" example:"classic"`
	Themes  []simulation.Theme `json:"themes"`
}

// Backdrop godoc
// @Summary      지도 배경 결정
// @Description  기기 위치로 지도 배경을 사용할지 대체 배경을 사용할지 결정합니다.
// @Description  위치 거부, 지도 서비스 장애는 실패가 아니라 fallback 모드로 응답합니다. 바디를 생략하면 위치를 모르는 것으로 처리합니다.
// @Tags         Ambient
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ambient.DeviceLocation false "기기 위치 또는 {\"denied\": true}"
// @Success      200 {object} ambient.Backdrop
// @Failure      400 {object} handler.ErrorResponse
// @Router       /api/backdrop [post]
func (h *Handler) Backdrop(c *gin.Context) {
	s, ok := h.currentSession(c)
	if !ok {
		return
	}

	var loc *ambient.DeviceLocation
	var body ambient.DeviceLocation
	if err := c.ShouldBindJSON(&body); err == nil {
		loc = &body
	} else if !errors.Is(err, io.EOF) {
		h.fail(c, fmt.Errorf("%w: %v", apperr.ErrInvalidInput, err))
		return
	}

	b, err := s.Backdrop(c.Request.Context(), loc)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// GetThemes godoc
// @Summary      테마 목록
// @Tags         Ambient
// @Produce      json
// @Success      200 {object} handler.ThemesResponse
// @Router       /themes [get]
func (h *Handler) GetThemes(c *gin.Context) {
	c.JSON(http.StatusOK, ThemesResponse{Default: simulation.DefaultThemeKey, Themes: simulation.Themes()})
}

// GetTheme godoc
// @Summary      테마 조회
// @Tags         Ambient
// @Produce      json
// @Param        key path     string true "테마 키 (예: classic)"
// @Success      200 {object} simulation.Theme
// @Failure      404 {object} handler.ErrorResponse
// @Router       /themes/{key} [get]
func (h *Handler) GetTheme(c *gin.Context) {
	theme, ok := simulation.GetTheme(c.Param("key"))
	if !ok {
		h.fail(c, fmt.Errorf("theme %q %w", c.Param("key"), apperr.ErrNotFound))
		return
	}
	c.JSON(http.StatusOK, theme)
}

// Healthz godoc
// @Summary      헬스 체크
// @Tags         Ops
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /healthz [get]
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": h.sessions.Len()})
}
