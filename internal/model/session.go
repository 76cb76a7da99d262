package model

import "time"

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
)

// UserInfo identifies who is taking the assessment
type UserInfo struct {
	Name         string `json:"name" bson:"name"`
	Organization string `json:"organization" bson:"organization"`
	Role         string `json:"role,omitempty" bson:"role,omitempty"`
	Email        string `json:"email,omitempty" bson:"email,omitempty"`
}

// Session is one assessment run. Responses and Comments grow while the
// session is active and are frozen once the status flips to completed.
// Scores are never stored here; they are recomputed from Responses on demand.
type Session struct {
	ID          string            `json:"id" bson:"_id"`
	User        UserInfo          `json:"user" bson:"user"`
	Status      SessionStatus     `json:"status" bson:"status"`
	Responses   map[string]Answer `json:"responses" bson:"responses"` // question ID -> answer
	Comments    map[string]string `json:"comments" bson:"comments"`   // question ID -> free text
	StartedAt   time.Time         `json:"startedAt" bson:"startedAt"`
	CompletedAt *time.Time        `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
	LastUpdated time.Time         `json:"lastUpdated" bson:"lastUpdated"`
}

// IsCompleted reports whether the session is read-only
func (s *Session) IsCompleted() bool {
	return s.Status == SessionCompleted
}
