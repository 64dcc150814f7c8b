package user

import (
	"time"

	"github.com/seogenix/backend/internal/domain/plan"
)

// User is an account. Exactly one plan tier is active per account at any
// time; the tier is resolved against the plan catalog at request time.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name,omitempty"`
	Tier         plan.Tier `json:"tier"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

// Preferences is the per-account UI preference record. Dismissal flags live
// here instead of in ambient browser storage so they survive across devices.
type Preferences struct {
	UserID          int64     `json:"user_id"`
	DismissedHints  []string  `json:"dismissed_hints"`
	WeeklyDigest    bool      `json:"weekly_digest"`
	UpdatedAt       time.Time `json:"updated_at,omitempty"`
}
