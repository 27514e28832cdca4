package render

import (
	"fmt"

	"github.com/ratel-online/assistant/consts"
	"github.com/ratel-online/assistant/input"
	"github.com/ratel-online/assistant/store"
)

type RoleCount struct {
	Role  string
	Cards int
}

// Model is a plain snapshot of everything the session displays. Presenters
// consume it and never reach into the store.
type Model struct {
	Screen consts.StateID
	Phase  consts.StateID

	GameID        string
	ActingRole    string
	UserRole      string
	BombNum       int
	MyHand        string
	LandlordCards string
	CardsLeft     []RoleCount

	Recommendation    string
	UseRecommendation bool
	History           []string
	Message           string

	Mode       consts.InputMode
	TextPanel  bool
	ClickPanel bool
	Text       string
	Tally      []int
	Preview    string

	WarnOnLeave bool
}

func Build(s *store.Store, in *input.Buffer) Model {
	f := s.Formatter()
	m := Model{
		Screen:      consts.StateSetup,
		Phase:       consts.StateUnconfigured,
		Message:     s.Message(),
		Mode:        in.Mode(),
		Text:        in.Text(),
		Tally:       in.Tally.Slice(),
		Preview:     in.Preview(),
		WarnOnLeave: s.ShouldWarnOnLeave(),
	}
	m.TextPanel, m.ClickPanel = in.Panels()

	state := s.State()
	if !s.Active() || state == nil {
		return m
	}
	m.Screen = consts.StateGame
	m.Phase = consts.StateActive
	if state.GameOver {
		m.Phase = consts.StateConcluded
	}
	m.GameID = s.GameID()
	m.ActingRole = f.Format(state.ActingRole)
	m.UserRole = f.Format(state.UserRole)
	m.BombNum = state.BombNum
	m.MyHand = state.MyHandText
	m.LandlordCards = state.ThreeLandlordCardsText
	for _, role := range consts.Roles {
		m.CardsLeft = append(m.CardsLeft, RoleCount{Role: f.Format(role), Cards: state.CardsLeft(role)})
	}

	if rec := s.RecommendationText(); rec != "" {
		m.Recommendation = f.Format(rec)
	} else if reason := s.RecommendationError(); reason != "" {
		m.Recommendation = f.Format(fmt.Sprintf(consts.MsgUnavailable, reason))
	} else {
		m.Recommendation = "-"
	}
	m.UseRecommendation = s.RecommendationAvailable()

	for _, item := range state.ActionLog {
		m.History = append(m.History, f.Format(fmt.Sprintf("%d. %s: %s", item.Step, item.Actor, item.Text)))
	}
	if len(m.History) == 0 {
		m.History = []string{f.Format(consts.MsgNoActions)}
	}
	return m
}
