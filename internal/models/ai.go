package models

import "time"

// AICache stores one generated response per prompt hash so identical planner
// requests skip the text-generation call entirely.
type AICache struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PromptHash string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"prompt_hash"`
	Response   string    `gorm:"type:text;not null" json:"response"`
	CreatedAt  time.Time `json:"created_at"`
}

// AILog records one text-generation invocation, including whether the raw
// output needed repair and whether the synthetic fallback was used.
type AILog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Kind       string    `gorm:"type:varchar(24);not null" json:"kind"`
	Prompt     string    `gorm:"type:text" json:"prompt"`
	Repaired   bool      `gorm:"not null;default:false" json:"repaired"`
	Fallback   bool      `gorm:"not null;default:false" json:"fallback"`
	DurationMs int64     `json:"duration_ms"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
