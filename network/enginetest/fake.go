// Package enginetest provides a scripted in-memory network.Engine.
package enginetest

import (
	"context"
	"fmt"
	"sync"

	"github.com/ratel-online/assistant/model"
)

type Call struct {
	Op     string
	GameID string
	Start  model.StartRequest
	Action model.ActionRequest
}

type reply struct {
	env *model.Envelope
	err error
}

// Fake returns queued replies in order and records every call. Gate, when
// set, blocks each call until a value is received from it.
type Fake struct {
	lock    sync.Mutex
	calls   []Call
	replies []reply
	Gate    chan struct{}
}

func New() *Fake {
	return &Fake{}
}

func (f *Fake) Reply(env *model.Envelope) *Fake {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.replies = append(f.replies, reply{env: env})
	return f
}

func (f *Fake) Fail(err error) *Fake {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.replies = append(f.replies, reply{err: err})
	return f
}

func (f *Fake) Calls() []Call {
	f.lock.Lock()
	defer f.lock.Unlock()
	return append([]Call{}, f.calls...)
}

func (f *Fake) Start(ctx context.Context, req model.StartRequest) (*model.Envelope, error) {
	return f.next(ctx, Call{Op: "start", Start: req})
}

func (f *Fake) Act(ctx context.Context, gameID string, req model.ActionRequest) (*model.Envelope, error) {
	return f.next(ctx, Call{Op: "action", GameID: gameID, Action: req})
}

func (f *Fake) Undo(ctx context.Context, gameID string) (*model.Envelope, error) {
	return f.next(ctx, Call{Op: "undo", GameID: gameID})
}

func (f *Fake) State(ctx context.Context, gameID string) (*model.Envelope, error) {
	return f.next(ctx, Call{Op: "state", GameID: gameID})
}

func (f *Fake) next(ctx context.Context, call Call) (*model.Envelope, error) {
	f.lock.Lock()
	f.calls = append(f.calls, call)
	gate := f.Gate
	f.lock.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.lock.Lock()
	defer f.lock.Unlock()
	if len(f.replies) == 0 {
		return nil, fmt.Errorf("enginetest: no reply queued for %s", call.Op)
	}
	r := f.replies[0]
	f.replies = f.replies[1:]
	return r.env, r.err
}

// Envelope builds a success envelope for a user seated as role.
func Envelope(gameID, role string, needUserAction bool, recommendation string) *model.Envelope {
	env := &model.Envelope{
		OK:     true,
		GameID: gameID,
		State: &model.GameState{
			UserRole:               role,
			ActingRole:             role,
			MyHandText:             "3456789TJQKA2",
			ThreeLandlordCardsText: "QXD",
			NumCardsLeft:           map[string]int{"landlord": 20, "landlord_down": 17, "landlord_up": 17},
			NeedUserAction:         needUserAction,
			ActionLog:              []model.ActionLogEntry{},
		},
		NeedUserAction:    needUserAction,
		HasRecommendation: true,
	}
	if recommendation != "" {
		env.Recommendation = &model.Recommendation{Text: recommendation}
	}
	return env
}
