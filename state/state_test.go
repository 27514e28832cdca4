package state_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/ratel-online/assistant/consts"
	"github.com/ratel-online/assistant/model"
	"github.com/ratel-online/assistant/network/enginetest"
	"github.com/ratel-online/assistant/render"
	"github.com/ratel-online/assistant/service"
	"github.com/ratel-online/assistant/state"
	"github.com/stretchr/testify/require"
)

const startLine = "start landlord 3456789TJQKA2 QXD\n"

func run(t *testing.T, fake *enginetest.Fake, script string) (*service.Session, string) {
	s := service.NewSession(fake, service.Options{})
	out := &bytes.Buffer{}
	client := state.NewClient(context.Background(), s, render.NewTerminal(out, false))
	require.NoError(t, client.Run(strings.NewReader(script)))
	return s, out.String()
}

func TestQuitWithoutGame(t *testing.T) {
	fake := enginetest.New()
	_, out := run(t, fake, "quit\nstart landlord 3 4\n")
	require.Empty(t, fake.Calls())
	require.NotContains(t, out, consts.MsgLeaveWarning)
}

func TestQuitDuringGameNeedsConfirmation(t *testing.T) {
	fake := enginetest.New().Reply(enginetest.Envelope("g1", consts.RoleLandlord, true, ""))
	s, out := run(t, fake, startLine+"quit\nquit\n33\n")

	require.Equal(t, 1, strings.Count(out, consts.MsgLeaveWarning))
	require.Len(t, fake.Calls(), 1)
	require.Equal(t, consts.StateActive, s.Phase())
}

func TestOtherCommandCancelsConfirmation(t *testing.T) {
	fake := enginetest.New().Reply(enginetest.Envelope("g1", consts.RoleLandlord, true, ""))
	_, out := run(t, fake, startLine+"quit\nshow\nquit\nquit\n")
	require.Equal(t, 2, strings.Count(out, consts.MsgLeaveWarning))
}

func TestEndOfInputWarnsDuringGame(t *testing.T) {
	fake := enginetest.New().Reply(enginetest.Envelope("g1", consts.RoleLandlord, true, ""))
	_, out := run(t, fake, startLine)
	require.Equal(t, 1, strings.Count(out, consts.MsgLeaveWarning))
}

func TestQuitAfterGameOver(t *testing.T) {
	over := enginetest.Envelope("g1", consts.RoleLandlord, false, "")
	over.State.GameOver = true
	fake := enginetest.New().
		Reply(enginetest.Envelope("g1", consts.RoleLandlord, true, "")).
		Reply(over)
	s, out := run(t, fake, startLine+"2\nquit\n")

	require.Equal(t, consts.StateConcluded, s.Phase())
	require.NotContains(t, out, consts.MsgLeaveWarning)
}

func TestGameCommands(t *testing.T) {
	fake := enginetest.New().
		Reply(enginetest.Envelope("g1", consts.RoleLandlord, true, "44")).
		Reply(enginetest.Envelope("g1", consts.RoleLandlord, true, "44")).
		Reply(enginetest.Envelope("g1", consts.RoleLandlord, true, ""))
	script := startLine +
		"mode click\n+ 3\n+ 3\n- 3\n+ t\nsubmit\n" +
		"mode text\nrecommend\n" +
		"+ Z\nrestart\nquit\n"
	s, out := run(t, fake, script)

	calls := fake.Calls()
	require.Len(t, calls, 3)
	require.Equal(t, consts.SourceClick, calls[1].Action.SourceMode)
	require.Equal(t, consts.SourceRecommend, calls[2].Action.SourceMode)
	require.Contains(t, out, "Preview  : 310\n")
	require.Contains(t, out, consts.ErrorsUnknownRank.Error())
	require.Equal(t, consts.StateUnconfigured, s.Phase())
	require.Equal(t, consts.MsgReconfigure, s.Store.Message())
	require.NotContains(t, out, consts.MsgLeaveWarning)
}

func TestStartFailureStaysOnSetup(t *testing.T) {
	fake := enginetest.New().Fail(&consts.Error{Msg: "bad hand"})
	s, out := run(t, fake, startLine+"pass\nquit\n")

	require.Len(t, fake.Calls(), 1)
	require.Equal(t, consts.StateUnconfigured, s.Phase())
	require.Contains(t, out, "Start failed: bad hand")
	require.Contains(t, out, consts.ErrorsInputInvalid.Error())
}

func TestStartAsksForSpacedCards(t *testing.T) {
	fake := enginetest.New().Reply(enginetest.Envelope("g1", consts.RoleLandlord, true, ""))
	s, out := run(t, fake, "start landlord\n3 4 5 6 7 8 9 10 J Q K A 2\nQ X D\nquit\nquit\n")

	calls := fake.Calls()
	require.Len(t, calls, 1)
	require.Equal(t, consts.RoleLandlord, calls[0].Start.Role)
	require.Equal(t, "3 4 5 6 7 8 9 10 J Q K A 2", calls[0].Start.MyHand)
	require.Equal(t, "Q X D", calls[0].Start.LandlordCards)
	require.Contains(t, out, consts.MsgAskHand)
	require.Contains(t, out, consts.MsgAskLandlordCards)
	require.NotContains(t, out, consts.MsgAskRole)
	require.Equal(t, consts.StateActive, s.Phase())
}

func TestStartAsksForRole(t *testing.T) {
	fake := enginetest.New().Reply(enginetest.Envelope("g1", consts.RoleLandlordUp, true, ""))
	_, out := run(t, fake, "start\nlandlord_up\n3 3 4\n10 J Q\n")

	calls := fake.Calls()
	require.Len(t, calls, 1)
	require.Equal(t, model.StartRequest{
		Role:          consts.RoleLandlordUp,
		MyHand:        "3 3 4",
		LandlordCards: "10 J Q",
		InputMode:     "text",
	}, calls[0].Start)
	require.Contains(t, out, consts.MsgAskRole)
}

func TestStartWithSeparators(t *testing.T) {
	fake := enginetest.New().Reply(enginetest.Envelope("g1", consts.RoleLandlordDown, true, ""))
	_, out := run(t, fake, "start landlord 3 4 5 Q X D\nstart landlord_down | 3 4 5 6 7 | Q X D\n")

	calls := fake.Calls()
	require.Len(t, calls, 1)
	require.Equal(t, consts.RoleLandlordDown, calls[0].Start.Role)
	require.Equal(t, "3 4 5 6 7", calls[0].Start.MyHand)
	require.Equal(t, "Q X D", calls[0].Start.LandlordCards)
	require.Equal(t, 1, strings.Count(out, consts.MsgStartUsage))
}
