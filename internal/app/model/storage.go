package model

import "time"

// Credential is the single persisted token+user pair. The table holds at most
// one row so both halves are always written and removed together.
type Credential struct {
	ID        uint      `gorm:"primaryKey"`
	Token     string    `gorm:"type:text;not null"`
	UserJSON  string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// VisitorMarker records that a unique_visitor event was already emitted for a
// website within one browsing session. Markers are never cleared by the agent.
type VisitorMarker struct {
	SessionID string    `gorm:"primaryKey;size:64"`
	WebsiteID string    `gorm:"primaryKey;size:64"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
