package models

import "time"

// Sample represents the outcome of a single probe attempt. Failures are
// carried as values: Success is false and Error holds the reason. RTT is
// only meaningful when Success is true.
type Sample struct {
	Timestamp time.Time `json:"timestamp"`
	Target    string    `json:"target"`
	Success   bool      `json:"success"`
	RTT       float64   `json:"rtt_ms"` // milliseconds
	Error     string    `json:"error,omitempty"`
}
