package model

import "time"

// Profile is the single persisted identity record. Its presence gates the
// dashboard operations; its contents are otherwise opaque to the core.
type Profile struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	UpdatedAt time.Time `json:"updated_at"`
}
