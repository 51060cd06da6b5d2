package models

import "time"

type Sender string

const (
	SenderYou  Sender = "you"
	SenderThem Sender = "them"
)

type ChatMessage struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}
