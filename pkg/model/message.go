package model

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one entry of a conversation log. Text is mutable only while
// Streaming is true and only by the request that owns the message; once the
// stream ends (or fails) the message is frozen.
type ChatMessage struct {
	Role      Role
	Text      string
	CreatedAt time.Time
	Streaming bool
}
