package model

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type ActionLogEntry struct {
	Step  int    `json:"step"`
	Actor string `json:"actor"`
	Text  string `json:"text"`
}

// GameState is the client-held copy of the engine's game state. It is replaced
// wholesale on every engine response and never edited locally.
type GameState struct {
	UserRole               string            `json:"user_role"`
	ActingRole             string            `json:"acting_role"`
	MyHandText             string            `json:"my_hand_text"`
	ThreeLandlordCardsText string            `json:"three_landlord_cards_text"`
	NumCardsLeft           map[string]int    `json:"num_cards_left_dict"`
	PlayedCardsText        map[string]string `json:"played_cards_text,omitempty"`
	LastMoveText           map[string]string `json:"last_move_dict_text,omitempty"`
	ActionSeqText          []string          `json:"card_play_action_seq_text,omitempty"`
	BombNum                int               `json:"bomb_num"`
	LastPid                string            `json:"last_pid,omitempty"`
	GameOver               bool              `json:"game_over"`
	Winner                 *string           `json:"winner"`
	NeedUserAction         bool              `json:"need_user_action"`
	ActionLog              []ActionLogEntry  `json:"action_log"`
}

func (s *GameState) WinnerName() string {
	if s == nil || s.Winner == nil {
		return ""
	}
	return *s.Winner
}

func (s *GameState) CardsLeft(role string) int {
	if s == nil {
		return 0
	}
	return s.NumCardsLeft[role]
}

type Recommendation struct {
	Text string `json:"text"`
}

// Envelope is the unit of synchronization with the engine.
type Envelope struct {
	OK                  bool            `json:"ok"`
	GameID              string          `json:"game_id"`
	State               *GameState      `json:"state"`
	NeedUserAction      bool            `json:"need_user_action"`
	Recommendation      *Recommendation `json:"recommendation"`
	RecommendationError *string         `json:"recommendation_error"`

	// HasRecommendation is set when the engine sent either recommendation field,
	// even as null. Envelopes without it keep the previous recommendation.
	HasRecommendation bool `json:"-"`
}

func (e *Envelope) UnmarshalJSON(data []byte) error {
	type envelope Envelope
	var raw envelope
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	present, err := hasRecommendation(data)
	if err != nil {
		return err
	}
	*e = Envelope(raw)
	e.HasRecommendation = present
	e.normalize()
	return nil
}

func (e *Envelope) RecommendationText() string {
	if e == nil || e.Recommendation == nil {
		return ""
	}
	return e.Recommendation.Text
}

// normalize keeps at most one of recommendation and recommendation error.
func (e *Envelope) normalize() {
	if e.Recommendation != nil {
		e.RecommendationError = nil
	}
}

// Failure is the body of a rejected engine request.
type Failure struct {
	OK                  bool            `json:"ok"`
	Message             string          `json:"error"`
	ValidationError     string          `json:"validation_error"`
	State               *GameState      `json:"state"`
	Recommendation      *Recommendation `json:"recommendation"`
	RecommendationError *string         `json:"recommendation_error"`

	HasRecommendation bool `json:"-"`
}

func (f *Failure) UnmarshalJSON(data []byte) error {
	type failure Failure
	var raw failure
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	present, err := hasRecommendation(data)
	if err != nil {
		return err
	}
	*f = Failure(raw)
	f.HasRecommendation = present
	return nil
}

func (f *Failure) IsValidation() bool {
	return f.ValidationError != ""
}

func (f *Failure) Reason() string {
	if f.ValidationError != "" {
		return f.ValidationError
	}
	return f.Message
}

// Reconciliation returns the pre-attempt envelope carried by a validation
// failure, or nil when the engine sent no state.
func (f *Failure) Reconciliation(gameID string) *Envelope {
	if f == nil || f.State == nil {
		return nil
	}
	env := &Envelope{
		OK:                  true,
		GameID:              gameID,
		State:               f.State,
		NeedUserAction:      f.State.NeedUserAction,
		Recommendation:      f.Recommendation,
		RecommendationError: f.RecommendationError,
		HasRecommendation:   f.HasRecommendation,
	}
	env.normalize()
	return env
}

func hasRecommendation(data []byte) (bool, error) {
	fields := map[string]jsoniter.RawMessage{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return false, err
	}
	_, rec := fields["recommendation"]
	_, recErr := fields["recommendation_error"]
	return rec || recErr, nil
}

type StartRequest struct {
	Role          string `json:"role"`
	MyHand        string `json:"my_hand"`
	LandlordCards string `json:"landlord_cards"`
	InputMode     string `json:"input_mode"`
}

type ClickAction struct {
	Counts map[string]int `json:"counts"`
}

// ActionRequest carries either a text action or a ClickAction.
type ActionRequest struct {
	Action     interface{} `json:"action"`
	SourceMode string      `json:"source_mode"`
}

func TextAction(text, sourceMode string) ActionRequest {
	return ActionRequest{Action: text, SourceMode: sourceMode}
}

func CountsAction(counts map[string]int, sourceMode string) ActionRequest {
	return ActionRequest{Action: ClickAction{Counts: counts}, SourceMode: sourceMode}
}
