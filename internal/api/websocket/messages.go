package websocket

import (
	"time"

	"github.com/fortuna/prepstats/internal/stats"
)

// Client message types
const (
	MessageTypeSearch    = "search"
	MessageTypeView      = "view"
	MessageTypeHeartbeat = "heartbeat"
)

// Server message types
const (
	MessageTypeRecords    = "records"
	MessageTypeSubmission = "submission"
	MessageTypeError      = "error"
)

// ClientMessage is sent by the portal. A search carries the filter fields
// inline; a view message changes only how the last fetched rows are shown.
type ClientMessage struct {
	Type string `json:"type"`
	stats.Filter

	Click    string `json:"click,omitempty"`
	Page     int    `json:"page,omitempty"`
	PageSize int    `json:"page_size,omitempty"`
	Advanced *bool  `json:"advanced,omitempty"`
}

// ServerMessage is pushed to the portal.
type ServerMessage struct {
	Type      string      `json:"type"`
	RequestID uint64      `json:"request_id,omitempty"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// ErrorMessage is the payload of an error message.
type ErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
