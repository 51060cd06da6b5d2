package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Upgrade HTTP connection to WebSocket
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleSessionStream godoc
// @Summary      세션 이벤트 WebSocket 연결
// @Description  세션 이벤트(roster, heading, status, skyline, nudge, screen, chat.message, backdrop)를 JSON으로 스트리밍합니다.
// @Description  연결 직후 현재 상태를 snapshot 이벤트로 한 번 보냅니다.
// @Description  <br>
// @Description  **참고: 이것은 표준 HTTP API가 아닙니다.**
// @Description  클라이언트는 `ws://` 또는 `wss://` 스킴을 사용하여 이 엔드포인트에 연결해야 합니다.
// @Description  인증은 HTTP Header가 아닌 **쿼리 파라미터('token')**를 통해 수행됩니다.
// @Description  클라이언트 명령: `{"type":"nudge","userId":"user-1"}`, `{"type":"select","userId":"user-1"}`, `{"type":"chat","text":"hi"}`, `{"type":"back"}`
// @Tags         WebSocket (Session)
// @Param        token    query     string  true  "POST /session 으로 발급받은 세션 토큰"
// @Success      101      {string}  string  "101 Switching Protocols (WebSocket으로 프로토콜 전환 성공)"
// @Failure      401      {object}  handler.ErrorResponse "토큰 누락 또는 유효하지 않은 토큰"
// @Failure      404      {object}  handler.ErrorResponse "종료된 세션"
// @Router       /ws/session [get]
func (h *Handler) HandleSessionStream(c *gin.Context) {
	// URL Query 파라미터로 토큰 검증
	claims, err := h.signer.ValidateToken(c.Query("token"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid token"})
		return
	}
	s, err := h.sessions.Get(claims.SessionID)
	if err != nil {
		h.fail(c, err)
		return
	}

	// WebSocket 연결 업그레이드
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.String("sessionID", s.ID()), zap.Error(err))
		return
	}
	h.logger.Info("websocket connected", zap.String("sessionID", s.ID()))

	manageEventStream(c.Request.Context(), conn, s, h.nudges, h.logger)
}
