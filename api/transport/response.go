package transport

import (
	"encoding/json"
	"time"
)

// Envelope wraps every API response, success or error.
type Envelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Error  interface{} `json:"error,omitempty"`
	Meta   interface{} `json:"meta,omitempty"`
}

// ListMeta accompanies task collections.
type ListMeta struct {
	Count    int  `json:"count"`
	Filtered bool `json:"filtered"`
}

// DrainMeta accompanies a notification drain.
type DrainMeta struct {
	Count   int `json:"count"`
	Dropped int `json:"dropped"`
}

// DeleteResult reports whether a delete removed anything. Deleting an
// unknown id is not an error.
type DeleteResult struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// HealthReport is the body of the health endpoint.
type HealthReport struct {
	Timestamp time.Time     `json:"timestamp"`
	Storage   StorageHealth `json:"storage"`
}

type StorageHealth struct {
	Backend   string    `json:"backend"`
	Online    bool      `json:"online"`
	Dirty     bool      `json:"dirty"`
	Error     string    `json:"error,omitempty"`
	LastCheck time.Time `json:"lastCheck"`
}

// NewSuccess returns a success envelope.
func NewSuccess(data interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "success",
		Data:   data,
		Meta:   meta,
	}
}

// NewError returns an error envelope; code is a domain error code or DEGRADED.
func NewError(code string, err interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "error",
		Code:   code,
		Error:  err,
		Meta:   meta,
	}
}

// String is for logging only.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}
