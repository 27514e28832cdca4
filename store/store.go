package store

import (
	"fmt"
	"sync"

	"github.com/ratel-online/assistant/consts"
	"github.com/ratel-online/assistant/i18n"
	"github.com/ratel-online/assistant/model"
	"github.com/ratel-online/core/log"
)

// Store is the single slot holding the current server-confirmed envelope.
// Applications are last-write-wins.
type Store struct {
	lock      sync.RWMutex
	formatter i18n.Formatter

	gameID            string
	state             *model.GameState
	recommendation    *model.Recommendation
	recommendationErr *string
	message           string

	// generation changes whenever a session begins or is abandoned, so replies
	// that outlive their session can be recognized.
	generation uint64
}

func New(formatter i18n.Formatter) *Store {
	if formatter == nil {
		formatter = i18n.Identity
	}
	return &Store{formatter: formatter}
}

func (s *Store) Formatter() i18n.Formatter {
	return s.formatter
}

func (s *Store) Generation() uint64 {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.generation
}

// Open begins a session from a start reply, unless the store moved on since
// generation was read. A reply without a session id opens nothing.
func (s *Store) Open(generation uint64, env *model.Envelope) bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	if generation != s.generation || env == nil || env.State == nil || env.GameID == "" {
		return false
	}
	s.reset()
	s.gameID = env.GameID
	s.apply(env, false)
	return true
}

// Clear abandons the current session. Nothing is sent to the engine.
func (s *Store) Clear() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.reset()
}

func (s *Store) reset() {
	s.generation++
	s.gameID = ""
	s.state = nil
	s.recommendation = nil
	s.recommendationErr = nil
}

// ApplyIfCurrent applies env only while generation is still current. A stale
// reply is dropped and false is returned.
//
// The game state is replaced. The recommendation pair is only replaced when
// the envelope carried it. Unless preserveMessage is set the status message is
// derived from the new state.
func (s *Store) ApplyIfCurrent(generation uint64, env *model.Envelope, preserveMessage bool) bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	if generation != s.generation {
		log.Infof("drop stale envelope, generation %d != %d\n", generation, s.generation)
		return false
	}
	s.apply(env, preserveMessage)
	return true
}

func (s *Store) apply(env *model.Envelope, preserveMessage bool) {
	if env == nil || env.State == nil {
		return
	}
	s.state = env.State
	if env.GameID != "" {
		s.gameID = env.GameID
	}
	if env.HasRecommendation {
		s.recommendation = env.Recommendation
		s.recommendationErr = env.RecommendationError
		if s.recommendation != nil {
			s.recommendationErr = nil
		}
	}
	if !preserveMessage {
		s.message = s.formatter.Format(statusMessage(s.state))
	}
}

func statusMessage(state *model.GameState) string {
	if state.GameOver {
		return fmt.Sprintf(consts.MsgGameOver, state.WinnerName())
	}
	if state.NeedUserAction {
		return consts.MsgYourTurn
	}
	return consts.MsgWaitingOpponents
}

func (s *Store) SetMessage(msg string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.message = s.formatter.Format(msg)
}

// SetMessageIfCurrent sets msg only while generation is still current.
func (s *Store) SetMessageIfCurrent(generation uint64, msg string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	if generation != s.generation {
		return false
	}
	s.message = s.formatter.Format(msg)
	return true
}

func (s *Store) Message() string {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.message
}

func (s *Store) GameID() string {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.gameID
}

func (s *Store) State() *model.GameState {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.state
}

// Active reports whether a session id is held.
func (s *Store) Active() bool {
	return s.GameID() != ""
}

func (s *Store) Concluded() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.state != nil && s.state.GameOver
}

// RecommendationText returns the current recommendation, or "" when none.
func (s *Store) RecommendationText() string {
	s.lock.RLock()
	defer s.lock.RUnlock()
	if s.recommendation == nil {
		return ""
	}
	return s.recommendation.Text
}

func (s *Store) RecommendationError() string {
	s.lock.RLock()
	defer s.lock.RUnlock()
	if s.recommendationErr == nil {
		return ""
	}
	return *s.recommendationErr
}

// RecommendationAvailable enables the use-recommendation control.
func (s *Store) RecommendationAvailable() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.state != nil && s.state.NeedUserAction && s.recommendation != nil
}

// ShouldWarnOnLeave is true while a game is held and not over.
func (s *Store) ShouldWarnOnLeave() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.state != nil && !s.state.GameOver
}
