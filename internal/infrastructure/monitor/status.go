package monitor

import "time"

type Status struct {
	Backend   string    `json:"backend"`
	Storage   bool      `json:"storage"`
	Dirty     bool      `json:"dirty"`
	LastError string    `json:"last_error,omitempty"`
	LastCheck time.Time `json:"last_check"`
}
