package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/ratel-online/assistant/consts"
	"github.com/ratel-online/assistant/model"
	"github.com/ratel-online/assistant/network"
	"github.com/ratel-online/assistant/rank"
	"github.com/ratel-online/core/log"
)

// Submit sends the pending input of the active mode.
func (s *Session) Submit(ctx context.Context) error {
	if s.Input.Mode() == consts.InputModeClick {
		return s.SubmitTally(ctx, s.Input.Tally)
	}
	raw := strings.TrimSpace(s.Input.Text())
	if raw == "" {
		s.Store.SetMessage(consts.MsgEmptyAction)
		return consts.ErrorsEmptyAction
	}
	return s.SubmitText(ctx, raw, consts.SourceText)
}

// Pass sends PASS, attributed to the active mode.
func (s *Session) Pass(ctx context.Context) error {
	return s.SubmitText(ctx, consts.Pass, string(s.Input.Mode()))
}

// UseRecommendation replays the current recommendation as the next action.
// It is only offered on the user's turn; a recommendation kept from an earlier
// envelope is not replayed otherwise.
func (s *Session) UseRecommendation(ctx context.Context) error {
	rec := s.Store.RecommendationText()
	if !s.Store.RecommendationAvailable() || rec == "" {
		s.Store.SetMessage(consts.MsgNoRecommendation)
		return consts.ErrorsNoRecommendation
	}
	return s.SubmitText(ctx, rec, consts.SourceRecommend)
}

func (s *Session) SubmitText(ctx context.Context, text, sourceMode string) error {
	return s.submit(ctx, model.TextAction(text, sourceMode), text)
}

func (s *Session) SubmitTally(ctx context.Context, tally *rank.Tally) error {
	return s.submit(ctx, model.CountsAction(tally.Counts(), consts.SourceClick), rank.Serialize(tally))
}

// submit runs one action through the engine. A success clears both input
// buffers; a validation failure keeps them for correction and reconciles the
// store without replacing the error message.
func (s *Session) submit(ctx context.Context, req model.ActionRequest, display string) error {
	gameID := s.Store.GameID()
	if gameID == "" {
		s.Store.SetMessage(consts.MsgStartFirst)
		return consts.ErrorsNoActiveSession
	}
	if s.guard {
		if !atomic.CompareAndSwapInt32(&s.outstanding, 0, 1) {
			return consts.ErrorsActionOutstanding
		}
		defer atomic.StoreInt32(&s.outstanding, 0)
	}

	generation := s.Store.Generation()
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	env, err := s.Engine.Act(ctx, gameID, req)
	if err != nil {
		return s.rejected(generation, gameID, display, req.SourceMode, err)
	}
	if !s.Store.ApplyIfCurrent(generation, env, false) {
		return nil
	}
	s.Input.Clear()
	log.Infof("game=%s action=%s source_mode=%s\n", gameID, display, req.SourceMode)
	return nil
}

func (s *Session) rejected(generation uint64, gameID, display, sourceMode string, err error) error {
	var invalid *network.ValidationError
	if errors.As(err, &invalid) {
		log.Infof("game=%s invalid action=%s source_mode=%s: %s\n", gameID, display, sourceMode, invalid.Reason)
		if invalid.Reconciliation != nil {
			s.Store.ApplyIfCurrent(generation, invalid.Reconciliation, true)
		}
		s.Store.SetMessageIfCurrent(generation, fmt.Sprintf(consts.MsgInvalidAction, invalid.Reason))
		return err
	}
	log.Errorf("game=%s action=%s source_mode=%s failed: %v\n", gameID, display, sourceMode, err)
	s.Store.SetMessageIfCurrent(generation, fmt.Sprintf(consts.MsgSubmitFailed, err.Error()))
	return err
}
