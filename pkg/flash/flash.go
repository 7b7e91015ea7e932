package flash

import (
	"errors"
	"net/http"
)

// Errors.
var (
	// ErrNotConfigured is returned when flash functionality is used but no
	// store was configured on the adapter.
	ErrNotConfigured = errors.New("flash: not configured")

	// ErrEmpty is returned by Pull when nothing was flashed.
	ErrEmpty = errors.New("flash: empty")
)

// Message levels for one-time notifications.
const (
	LevelSuccess = "success"
	LevelError   = "error"
	LevelWarning = "warning"
	LevelInfo    = "info"
)

// Message is a one-time notification surfaced to the client through the
// reserved "flash" prop.
type Message struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

// Data is everything flashed between two requests: validation errors keyed
// by field, and notification messages. It feeds the reserved "errors" and
// "flash" props on the next render.
type Data struct {
	Errors   map[string]string `json:"errors,omitempty"`
	Messages []Message         `json:"messages,omitempty"`
}

// IsZero reports whether there is nothing to deliver.
func (d Data) IsZero() bool {
	return len(d.Errors) == 0 && len(d.Messages) == 0
}

// Store persists flash data across the POST -> redirect -> GET cycle.
// Implementations decide where the data lives (cookie, Redis, session);
// Pull must delete what it returns so data is delivered exactly once.
type Store interface {
	// Flash stores data for the client's next request, merging with any
	// data already pending.
	Flash(w http.ResponseWriter, r *http.Request, data Data) error

	// Pull returns pending data and removes it.
	// Returns ErrEmpty when nothing was flashed.
	Pull(w http.ResponseWriter, r *http.Request) (Data, error)
}

// merge combines pending data with new data; new errors win per key and
// messages append.
func merge(pending, next Data) Data {
	out := Data{
		Errors:   make(map[string]string, len(pending.Errors)+len(next.Errors)),
		Messages: append(append([]Message{}, pending.Messages...), next.Messages...),
	}
	for k, v := range pending.Errors {
		out.Errors[k] = v
	}
	for k, v := range next.Errors {
		out.Errors[k] = v
	}
	return out
}
