package assets

import "time"

// User is the authenticated administrator profile persisted alongside the
// session token.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// Session is the client-held proof of authentication. Exactly one session
// may be active per console process.
type Session struct {
	User      User
	Token     string
	CreatedAt time.Time
}

// Summary is the derived read-only dashboard aggregate. It is recomputed
// server-side on each fetch and never cached by the client.
type Summary struct {
	CharacterCount int `json:"character_count"`
	PetCount       int `json:"pet_count"`
	VehicleCount   int `json:"vehicle_count"`
}
