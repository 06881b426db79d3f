package entities

import "time"

type ProfileEntity struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username,omitempty"`
	Role      string    `json:"role"`
	Demo      bool      `json:"demo"`
	CreatedAt time.Time `json:"created_at"`
}

type SessionEntity struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	User      ProfileEntity `json:"user"`
}
