package store_test

import (
	"testing"

	"github.com/ratel-online/assistant/consts"
	"github.com/ratel-online/assistant/i18n"
	"github.com/ratel-online/assistant/model"
	"github.com/ratel-online/assistant/store"
	"github.com/stretchr/testify/require"
)

func envelope(needUserAction bool, rec string) *model.Envelope {
	env := &model.Envelope{
		OK:     true,
		GameID: "g1",
		State: &model.GameState{
			UserRole:       consts.RoleLandlordDown,
			ActingRole:     consts.RoleLandlordDown,
			NeedUserAction: needUserAction,
			ActionLog:      []model.ActionLogEntry{},
		},
		NeedUserAction:    needUserAction,
		HasRecommendation: true,
	}
	if rec != "" {
		env.Recommendation = &model.Recommendation{Text: rec}
	}
	return env
}

// opened returns a store holding the session g1 and an apply helper for
// replies to it.
func opened(t *testing.T, formatter i18n.Formatter, first *model.Envelope) (*store.Store, func(*model.Envelope, bool)) {
	s := store.New(formatter)
	require.True(t, s.Open(s.Generation(), first))
	return s, func(env *model.Envelope, preserveMessage bool) {
		require.True(t, s.ApplyIfCurrent(s.Generation(), env, preserveMessage))
	}
}

func TestApplyDerivesStatusMessage(t *testing.T) {
	s, apply := opened(t, nil, envelope(true, "33"))
	require.Equal(t, consts.MsgYourTurn, s.Message())

	apply(envelope(false, ""), false)
	require.Equal(t, consts.MsgWaitingOpponents, s.Message())

	over := envelope(false, "")
	winner := "farmer"
	over.State.GameOver = true
	over.State.Winner = &winner
	apply(over, false)
	require.Equal(t, "Game over. Winner: farmer", s.Message())
	require.True(t, s.Concluded())
}

func TestApplyPreservingMessage(t *testing.T) {
	s, apply := opened(t, nil, envelope(false, ""))
	s.SetMessage("Invalid action: PASS")

	apply(envelope(true, "3"), true)
	require.Equal(t, "Invalid action: PASS", s.Message())
	require.True(t, s.State().NeedUserAction)
	require.Equal(t, "3", s.RecommendationText())
}

func TestRecommendationKeptWhenEnvelopeOmitsIt(t *testing.T) {
	s, apply := opened(t, nil, envelope(true, "KK"))

	partial := envelope(true, "")
	partial.HasRecommendation = false
	apply(partial, false)
	require.Equal(t, "KK", s.RecommendationText())
	require.True(t, s.RecommendationAvailable())

	apply(envelope(true, ""), false)
	require.Empty(t, s.RecommendationText())
	require.False(t, s.RecommendationAvailable())
}

func TestRecommendationErrorReplacesRecommendation(t *testing.T) {
	s, apply := opened(t, nil, envelope(true, "KK"))

	failed := envelope(true, "")
	reason := "No legal actions available."
	failed.RecommendationError = &reason
	apply(failed, false)
	require.Empty(t, s.RecommendationText())
	require.Equal(t, reason, s.RecommendationError())
}

func TestRecommendationRequiresUserAction(t *testing.T) {
	s, _ := opened(t, nil, envelope(false, "KK"))
	require.Equal(t, "KK", s.RecommendationText())
	require.False(t, s.RecommendationAvailable())
}

func TestStaleEnvelopeIsDropped(t *testing.T) {
	s, _ := opened(t, nil, envelope(true, ""))
	generation := s.Generation()
	s.Clear()

	require.False(t, s.ApplyIfCurrent(generation, envelope(true, "3"), false))
	require.False(t, s.SetMessageIfCurrent(generation, "late"))
	require.Nil(t, s.State())
	require.False(t, s.Active())
	require.Equal(t, consts.MsgYourTurn, s.Message())
}

func TestShouldWarnOnLeave(t *testing.T) {
	s := store.New(nil)
	require.False(t, s.ShouldWarnOnLeave())
	require.True(t, s.Open(s.Generation(), envelope(true, "")))
	require.True(t, s.ShouldWarnOnLeave())

	over := envelope(false, "")
	over.State.GameOver = true
	require.True(t, s.ApplyIfCurrent(s.Generation(), over, false))
	require.False(t, s.ShouldWarnOnLeave())
}

func TestMessagesAreFormatted(t *testing.T) {
	s, _ := opened(t, i18n.NewVocabulary(i18n.Chinese), envelope(true, ""))
	require.Equal(t, "轮到你出牌。", s.Message())
}

func TestOpenRequiresGameID(t *testing.T) {
	s := store.New(nil)
	env := envelope(true, "")
	env.GameID = ""

	require.False(t, s.Open(s.Generation(), env))
	require.False(t, s.Active())
	require.Nil(t, s.State())
	require.False(t, s.ShouldWarnOnLeave())
}

func TestOpenAfterClearIsDropped(t *testing.T) {
	s := store.New(nil)
	generation := s.Generation()
	s.Clear()

	require.False(t, s.Open(generation, envelope(true, "")))
	require.False(t, s.Active())
}
