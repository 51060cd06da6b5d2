package models

import "time"

// 세션 저널 기록 종류
const (
	RecordScreen    = "screen"
	RecordNudge     = "nudge"
	RecordMutual    = "mutual"
	RecordChatSent  = "chat_sent"
	RecordChatReply = "chat_reply"
	RecordPopover   = "popover"
	RecordBackdrop  = "backdrop"
)

type Record struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	UserID    string    `json:"userId,omitempty"`
	Kind      string    `json:"kind"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
