package models

import "time"

// Scan is one persisted classification result, owned by exactly one user.
// Read-only after creation except for deletion.
type Scan struct {
	ID         string    `json:"id"`
	UserID     int       `json:"user_id"`
	Diagnosis  string    `json:"diagnosis"`
	Label      string    `json:"label"`
	Confidence float64   `json:"confidence"`
	Severity   string    `json:"severity"`
	Advice     string    `json:"advice"`
	IsSafe     bool      `json:"is_safe"`
	ImagePath  string    `json:"image,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
