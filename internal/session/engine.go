package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"session-service/internal/logger"
)

// Engine orchestrates the four lifecycle operations against a Store and
// the expiry policy. It holds no per-session state between calls: every
// operation re-reads from the store, at most one read then at most one
// write. Concurrent operations on the same id are not serialized here;
// the store's row-level atomicity is the only protection.
type Engine struct {
	store  Store
	ids    IDGenerator
	clock  Clock
	window time.Duration
}

// NewEngine builds an engine over the given store with the given
// inactivity window, using the system clock and UUID identifiers.
func NewEngine(store Store, window time.Duration) *Engine {
	return &Engine{
		store:  store,
		ids:    NewID,
		clock:  SystemClock(),
		window: window,
	}
}

// Do dispatches one lifecycle operation.
func (e *Engine) Do(ctx context.Context, action Action, args Args) Outcome {
	switch action {
	case ActionInit:
		return e.Init(ctx, args)
	case ActionExtend:
		return e.Extend(ctx, args)
	case ActionValidate:
		return e.Validate(ctx, args)
	case ActionTerminate:
		return e.Terminate(ctx, args)
	default:
		return Outcome{
			Action: action,
			Err: &OpError{
				Code:    CodeInvalidAction,
				Message: fmt.Sprintf("Invalid action: %s", action),
			},
		}
	}
}

// Init creates a new session for the given user. The caller is not told
// a state: a just-created session's ACTIVE-ness is not asserted.
func (e *Engine) Init(ctx context.Context, args Args) Outcome {
	if args.UserID == "" {
		return Outcome{
			Action: ActionInit,
			Err: &OpError{
				Code:    CodeMissingUserID,
				Message: "Can not create session, no userId passed",
			},
		}
	}

	now := e.clock.Now()
	s := Session{
		SessionID:      e.ids(),
		UserID:         args.UserID,
		SessionData:    args.SessionData,
		LoginTimestamp: now,
	}

	if err := e.store.Create(ctx, s); err != nil {
		return e.databaseError(ActionInit, "", err)
	}

	return Outcome{
		Action: ActionInit,
		Payload: &Payload{
			SessionID:      s.SessionID,
			LoginTimestamp: &now,
			UserID:         s.UserID,
		},
	}
}

// Extend refreshes an active session's last-activity timestamp. An absent
// row fails with EXTEND_SESSION_NOT_FOUND; a row past the window fails
// with EXTEND_SESSION_EXPIRED and is left in place (lazy cleanup happens
// only via Terminate).
func (e *Engine) Extend(ctx context.Context, args Args) Outcome {
	if args.SessionID == "" {
		return Outcome{
			Action: ActionExtend,
			Err: &OpError{
				Code:    CodeMissingSessionID,
				Message: "Can not extend session, no sessionId passed",
			},
		}
	}

	found, err := e.store.FindByID(ctx, args.SessionID)
	if err != nil {
		return e.databaseError(ActionExtend, args.SessionID, err)
	}
	if found == nil {
		return e.extendNotFound(args.SessionID)
	}

	now := e.clock.Now()
	if Expired(found.LoginTimestamp, now, e.window) {
		msg := fmt.Sprintf("Can not extend session %s, the session has expired", args.SessionID)
		logger.Error(msg, nil)
		return Outcome{
			Action:  ActionExtend,
			Payload: &Payload{SessionID: args.SessionID},
			Err: &OpError{
				Code:    CodeExtendSessionExpired,
				Message: msg,
			},
		}
	}

	err = e.store.Update(ctx, args.SessionID, Patch{LoginTimestamp: &now})
	if errors.Is(err, ErrNotFound) {
		// A concurrent terminate won the race between our read and
		// this write. The session is gone; report not-found.
		return e.extendNotFound(args.SessionID)
	}
	if err != nil {
		return e.databaseError(ActionExtend, args.SessionID, err)
	}

	return Outcome{
		Action: ActionExtend,
		Payload: &Payload{
			SessionID:      args.SessionID,
			LoginTimestamp: &now,
			UserID:         found.UserID,
		},
	}
}

func (e *Engine) extendNotFound(sessionID string) Outcome {
	msg := fmt.Sprintf("Can not extend session %s, session was not found, please relogin", sessionID)
	logger.Error(msg, nil)
	return Outcome{
		Action:  ActionExtend,
		Payload: &Payload{SessionID: sessionID},
		Err: &OpError{
			Code:    CodeExtendSessionNotFound,
			Message: msg,
		},
	}
}

// Validate reports the session's state without mutating anything. It
// never returns a hard error for a missing or unknown id, only
// state=EXPIRED: an absent row and an expired row are the same thing to
// a caller deciding whether a login is still good.
func (e *Engine) Validate(ctx context.Context, args Args) Outcome {
	payload := &Payload{SessionID: args.SessionID}
	out := Outcome{Action: ActionValidate, Payload: payload}

	if args.SessionID == "" {
		payload.State = StateExpired
		return out
	}

	found, err := e.store.FindByID(ctx, args.SessionID)
	if err != nil {
		return e.databaseError(ActionValidate, args.SessionID, err)
	}
	if found == nil || Expired(found.LoginTimestamp, e.clock.Now(), e.window) {
		payload.State = StateExpired
		return out
	}

	payload.State = StateActive
	return out
}

// Terminate deletes the session row. Terminating an absent or already
// expired session is not an error, only an informational message;
// calling Terminate twice on the same id always lands the second call
// on the not-found branch.
func (e *Engine) Terminate(ctx context.Context, args Args) Outcome {
	if args.SessionID == "" {
		return Outcome{
			Action: ActionTerminate,
			Err: &OpError{
				Code:    CodeMissingSessionID,
				Message: "Can not terminate session, no sessionId passed",
			},
		}
	}

	found, err := e.store.FindByID(ctx, args.SessionID)
	if err != nil {
		return e.databaseError(ActionTerminate, args.SessionID, err)
	}
	if found == nil {
		logger.Error(fmt.Sprintf("Can not terminate session %s, session was not found.", args.SessionID), nil)
		return Outcome{
			Action: ActionTerminate,
			Payload: &Payload{
				Message: "Session was not found, nothing to terminate. This is not considered to be an error.",
			},
		}
	}

	if Expired(found.LoginTimestamp, e.clock.Now(), e.window) {
		logger.Info(fmt.Sprintf("Can not terminate session %s, session has already expired.", args.SessionID), nil)
		if err := e.store.Delete(ctx, args.SessionID); err != nil {
			return e.databaseError(ActionTerminate, args.SessionID, err)
		}
		return Outcome{
			Action: ActionTerminate,
			Payload: &Payload{
				Message: "Session has expired prior to termination request. This is not considered to be an error.",
			},
		}
	}

	if err := e.store.Delete(ctx, args.SessionID); err != nil {
		return e.databaseError(ActionTerminate, args.SessionID, err)
	}

	return Outcome{
		Action:  ActionTerminate,
		Payload: &Payload{SessionID: args.SessionID},
	}
}

// databaseError logs the full store fault and hands the caller a
// sanitized message with the generic database error code. The target
// sessionID, when known, is echoed in the payload.
func (e *Engine) databaseError(action Action, sessionID string, err error) Outcome {
	logger.Error("store operation failed", map[string]any{
		"action": string(action),
		"error":  err.Error(),
	})
	out := Outcome{
		Action: action,
		Err: &OpError{
			Code:    CodeDatabaseError,
			Message: fmt.Sprintf("Database error: %s", err.Error()),
		},
	}
	if sessionID != "" {
		out.Payload = &Payload{SessionID: sessionID}
	}
	return out
}
