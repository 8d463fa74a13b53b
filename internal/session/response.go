package session

import "time"

// Action names one of the four lifecycle operations.
type Action string

const (
	ActionInit      Action = "init"
	ActionExtend    Action = "extend"
	ActionValidate  Action = "validate"
	ActionTerminate Action = "terminate"
)

// State is the session state as observed by callers. EXPIRED subsumes
// both "row exists but past the window" and "row absent".
type State string

const (
	StateActive  State = "ACTIVE"
	StateExpired State = "EXPIRED"
)

// Args carries the caller-supplied arguments of a lifecycle operation.
type Args struct {
	SessionID   string `json:"sessionId,omitempty"`
	SessionData string `json:"sessionData,omitempty"`
	UserID      string `json:"userId,omitempty"`
}

// Request is the logical inbound request delivered by the transport.
type Request struct {
	Action Action `json:"action,omitempty"`
	Args   Args   `json:"args,omitempty"`
}

// Payload is the success payload of a lifecycle outcome. Empty fields
// are omitted on the wire.
type Payload struct {
	SessionID      string     `json:"sessionId,omitempty"`
	Message        string     `json:"message,omitempty"`
	State          State      `json:"state,omitempty"`
	LoginTimestamp *time.Time `json:"loginTimestamp,omitempty"`
	UserID         string     `json:"userId,omitempty"`
}

// Outcome is the structured result of a lifecycle operation: a success
// payload, or an error. Failed outcomes on a known session still echo
// its id in the payload.
type Outcome struct {
	Action  Action
	Payload *Payload
	Err     *OpError
}

// Response is the external response shape. Failures ride in-band in the
// error/errorCode fields; the transport always answers HTTP 200.
type Response struct {
	Action    Action   `json:"action,omitempty"`
	Payload   *Payload `json:"payload,omitempty"`
	Error     string   `json:"error,omitempty"`
	ErrorCode int      `json:"errorCode,omitempty"`
}

// Response renders the outcome into the external response shape.
func (o Outcome) Response() Response {
	resp := Response{
		Action:  o.Action,
		Payload: o.Payload,
	}
	if o.Err != nil {
		resp.Error = o.Err.Message
		resp.ErrorCode = o.Err.Code
	}
	return resp
}
