package network

import (
	"context"
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/ratel-online/assistant/model"
)

var codec = jsoniter.ConfigCompatibleWithStandardLibrary

// Engine is the remote rules and recommendation engine. It is the sole
// arbiter of legality; nothing is validated on this side.
type Engine interface {
	Start(ctx context.Context, req model.StartRequest) (*model.Envelope, error)
	Act(ctx context.Context, gameID string, req model.ActionRequest) (*model.Envelope, error)
	Undo(ctx context.Context, gameID string) (*model.Envelope, error)
	State(ctx context.Context, gameID string) (*model.Envelope, error)
}

// ValidationError is returned when the engine rejects an action as illegal.
// Reconciliation holds the pre-attempt envelope when the engine sent one.
type ValidationError struct {
	Reason         string
	Reconciliation *model.Envelope
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// RejectedError is a failure reply that carries a reason but no validation
// verdict: unknown game, bad start form, nothing to undo.
type RejectedError struct {
	Op     string
	Status int
	Reason string
}

func (e *RejectedError) Error() string {
	return e.Reason
}

// TransportError covers failed round trips and replies that cannot be read.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

var (
	errMalformed     = errors.New("malformed reply")
	errMissingGameID = errors.New("reply carries no game_id")
)

// decode classifies a reply body into an envelope or one of the errors above.
func decode(op, gameID string, status int, body []byte) (*model.Envelope, error) {
	if status >= 200 && status < 300 {
		env := &model.Envelope{}
		if err := codec.Unmarshal(body, env); err != nil {
			return nil, &TransportError{Op: op, Err: err}
		}
		if env.OK {
			if env.State == nil {
				return nil, &TransportError{Op: op, Err: errMalformed}
			}
			if env.GameID == "" {
				env.GameID = gameID
			}
			// A start reply is the only source of the session id.
			if env.GameID == "" {
				return nil, &TransportError{Op: op, Err: errMissingGameID}
			}
			return env, nil
		}
	}
	failure := &model.Failure{}
	if err := codec.Unmarshal(body, failure); err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("status %d: %w", status, err)}
	}
	if failure.IsValidation() {
		return nil, &ValidationError{
			Reason:         failure.ValidationError,
			Reconciliation: failure.Reconciliation(gameID),
		}
	}
	if failure.Message != "" {
		return nil, &RejectedError{Op: op, Status: status, Reason: failure.Message}
	}
	return nil, &TransportError{Op: op, Err: fmt.Errorf("status %d: %w", status, errMalformed)}
}
