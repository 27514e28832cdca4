package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ratel-online/assistant/consts"
	"github.com/ratel-online/assistant/i18n"
	"github.com/ratel-online/assistant/input"
	"github.com/ratel-online/assistant/model"
	"github.com/ratel-online/assistant/network"
	"github.com/ratel-online/assistant/render"
	"github.com/ratel-online/assistant/store"
	"github.com/ratel-online/core/log"
)

type Options struct {
	Formatter i18n.Formatter
	// RequestTimeout bounds each engine call. Zero means no timeout.
	RequestTimeout time.Duration
	// GuardOutstanding refuses a second action while one is in flight.
	GuardOutstanding bool
}

// Context is everything a session operation reads or writes. It is owned by
// the Session and never shared through package state.
type Context struct {
	Engine network.Engine
	Store  *store.Store
	Input  *input.Buffer
}

// Session is the lifecycle controller: start, undo, refresh and reset. Action
// submission lives in protocol.go.
type Session struct {
	*Context

	timeout     time.Duration
	guard       bool
	outstanding int32
}

func NewSession(engine network.Engine, opts Options) *Session {
	return &Session{
		Context: &Context{
			Engine: engine,
			Store:  store.New(opts.Formatter),
			Input:  input.NewBuffer(),
		},
		timeout: opts.RequestTimeout,
		guard:   opts.GuardOutstanding,
	}
}

type StartRequest struct {
	Role          string
	Hand          string
	LandlordCards string
	InputMode     consts.InputMode
}

func (s *Session) Phase() consts.StateID {
	if !s.Store.Active() {
		return consts.StateUnconfigured
	}
	if s.Store.Concluded() {
		return consts.StateConcluded
	}
	return consts.StateActive
}

func (s *Session) RenderModel() render.Model {
	return render.Build(s.Store, s.Input)
}

// Start opens a new session. On failure the session stays unconfigured and
// the engine's reason is shown.
func (s *Session) Start(ctx context.Context, req StartRequest) error {
	mode := req.InputMode
	if mode == "" {
		mode = s.Input.Mode()
	}
	if err := s.Input.Select(mode); err != nil {
		s.Store.SetMessage(fmt.Sprintf(consts.MsgStartFailed, err.Error()))
		return err
	}
	body := model.StartRequest{
		Role:          strings.TrimSpace(req.Role),
		MyHand:        strings.TrimSpace(req.Hand),
		LandlordCards: strings.TrimSpace(req.LandlordCards),
		InputMode:     string(mode),
	}
	generation := s.Store.Generation()
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	env, err := s.Engine.Start(ctx, body)
	if err != nil {
		log.Errorf("start role=%s failed: %v\n", body.Role, err)
		s.Store.SetMessageIfCurrent(generation, fmt.Sprintf(consts.MsgStartFailed, reason(err)))
		return err
	}
	if s.Store.Open(generation, env) {
		log.Infof("game %s started, role=%s input_mode=%s\n", env.GameID, body.Role, body.InputMode)
	}
	return nil
}

// Undo asks the engine to roll back the last action and applies the reply as
// a fresh envelope. Pending input is left alone.
func (s *Session) Undo(ctx context.Context) error {
	return s.reload(ctx, "undo", consts.MsgUndoFailed, s.Engine.Undo)
}

// Refresh re-reads the current envelope from the engine.
func (s *Session) Refresh(ctx context.Context) error {
	return s.reload(ctx, "refresh", consts.MsgRefreshFailed, s.Engine.State)
}

func (s *Session) reload(ctx context.Context, op, failed string, call func(context.Context, string) (*model.Envelope, error)) error {
	gameID := s.Store.GameID()
	if gameID == "" {
		s.Store.SetMessage(consts.MsgStartFirst)
		return consts.ErrorsNoActiveSession
	}
	generation := s.Store.Generation()
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	env, err := call(ctx, gameID)
	if err != nil {
		log.Errorf("%s game=%s failed: %v\n", op, gameID, err)
		s.Store.SetMessageIfCurrent(generation, fmt.Sprintf(failed, reason(err)))
		return err
	}
	if s.Store.ApplyIfCurrent(generation, env, false) {
		log.Infof("%s game=%s\n", op, gameID)
	}
	return nil
}

// Reset abandons the session locally. The engine is not contacted; its side
// of the session is left to expire.
func (s *Session) Reset() {
	gameID := s.Store.GameID()
	s.Store.Clear()
	s.Input.Clear()
	s.Store.SetMessage(consts.MsgReconfigure)
	if gameID != "" {
		log.Infof("game %s abandoned\n", gameID)
	}
}

func (s *Session) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(ctx, s.timeout)
	}
	return ctx, func() {}
}

// reason picks the text shown for a failed engine call.
func reason(err error) string {
	var rejected *network.RejectedError
	if errors.As(err, &rejected) {
		return rejected.Reason
	}
	var invalid *network.ValidationError
	if errors.As(err, &invalid) {
		return invalid.Reason
	}
	return err.Error()
}
