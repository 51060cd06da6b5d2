package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"NudgePrototype/internal/middleware"
	"NudgePrototype/internal/models"
)

const defaultHistoryLimit = 50

// GetHistory godoc
// @Summary      세션 기록 조회
// @Description  현재 세션의 화면 이동, 넛지, 채팅 기록을 최신순으로 반환합니다. 세션이 종료되면 기록도 삭제됩니다.
// @Tags         History
// @Produce      json
// @Security     BearerAuth
// @Param        limit query    int false "최대 개수 (기본 50)"
// @Success      200 {object} handler.HistoryResponse
// @Failure      400 {object} handler.ErrorResponse
// @Failure      401 {object} handler.ErrorResponse
// @Failure      500 {object} handler.ErrorResponse
// @Router       /api/history [get]
func (h *Handler) GetHistory(c *gin.Context) {
	if _, ok := h.currentSession(c); !ok {
		return
	}

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = n
	}

	if h.history == nil {
		c.JSON(http.StatusOK, HistoryResponse{History: []models.Record{}})
		return
	}
	records, err := h.history.RecordsBySession(c.Request.Context(), c.GetString(middleware.SessionIDKey), limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	if records == nil {
		records = []models.Record{}
	}
	c.JSON(http.StatusOK, HistoryResponse{History: records})
}
