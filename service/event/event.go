package event

import (
	"time"

	"github.com/viant/gridgate/internal/clock"
)

// Event types
const (
	TypeJobState     = "job.state"
	TypeSessionBuilt = "session.built"
)

// Context carries event correlation data
type Context struct {
	InfrastructureID string `json:"infrastructureID,omitempty"`
	TaskID           string `json:"taskID,omitempty"`
	SessionID        string `json:"sessionID,omitempty"`
	JobID            string `json:"jobID,omitempty"`
	EventType        string `json:"eventType"`
	Service          string `json:"service,omitempty"`
	Method           string `json:"method,omitempty"`
	TimeTakenMs      int    `json:"timeTakenMs,omitempty"`
}

type Event[T any] struct {
	Context   *Context               `json:"context"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata"`
	Data      T                      `json:"data"`
}

func NewEvent[T any](context *Context, data T) *Event[T] {
	return &Event[T]{
		Context:   context,
		CreatedAt: clock.Now(),
		Metadata:  make(map[string]interface{}),
		Data:      data,
	}
}
