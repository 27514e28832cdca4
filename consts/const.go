package consts

import "time"

type StateID int

const (
	_ StateID = iota
	StateUnconfigured
	StateActive
	StateConcluded
)

// Terminal driver screens.
const (
	_ StateID = iota + 10
	StateSetup
	StateGame
)

var StateNames = map[StateID]string{
	StateUnconfigured: "Unconfigured",
	StateActive:       "Active",
	StateConcluded:    "Concluded",
	StateSetup:        "Setup",
	StateGame:         "Game",
}

type InputMode string

const (
	InputModeText  InputMode = "text"
	InputModeClick InputMode = "click"
)

// Source modes reported to the engine with each action.
const (
	SourceText      = "text"
	SourceClick     = "click"
	SourceRecommend = "recommend"
)

const (
	RoleLandlord     = "landlord"
	RoleLandlordDown = "landlord_down"
	RoleLandlordUp   = "landlord_up"

	Pass = "PASS"

	DefaultEngineURL = "http://127.0.0.1:7860"
	DefaultTransport = "http"
	DefaultLanguage  = "en"

	DialTimeout = 5 * time.Second
)

// Ranks lists every rank label in strict rank order, jokers last.
var Ranks = []string{"3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A", "2", "X", "D"}

var Roles = []string{RoleLandlord, RoleLandlordDown, RoleLandlordUp}

// Status messages. They pass through the session formatter before display.
const (
	MsgGameOver         = "Game over. Winner: %s"
	MsgYourTurn         = "Your turn."
	MsgWaitingOpponents = "Please input opponents' action."
	MsgStartFirst       = "Please start a game first."
	MsgEmptyAction      = "Enter an action, or click PASS."
	MsgNoRecommendation = "No recommendation available."
	MsgInvalidAction    = "Invalid action: %s"
	MsgSubmitFailed     = "Submit failed: %s. Please submit again."
	MsgStartFailed      = "Start failed: %s"
	MsgUndoFailed       = "Undo failed: %s"
	MsgRefreshFailed    = "Refresh failed: %s"
	MsgReconfigure      = "Please reconfigure the opening hand."
	MsgLeaveWarning     = "A game is in progress. Type quit again to leave."
	MsgNoActions        = "No actions yet"
	MsgUnavailable      = "Unavailable: %s"
	MsgAskRole          = "Role:"
	MsgAskHand          = "Your hand:"
	MsgAskLandlordCards = "Landlord cards:"
	MsgStartUsage       = "Type start <role> and enter the cards when asked, or separate them with |."
)

type Error struct {
	Code int
	Msg  string
	Exit bool
}

func (e Error) Error() string {
	return e.Msg
}

func NewErr(code int, exit bool, msg string) Error {
	return Error{Code: code, Exit: exit, Msg: msg}
}

var (
	ErrorsExist             = NewErr(1, true, "Exist. ")
	ErrorsChanClosed        = NewErr(1, true, "Chan closed. ")
	ErrorsInputInvalid      = NewErr(1, false, "Input invalid. ")
	ErrorsNoActiveSession   = NewErr(2, false, "No active session. ")
	ErrorsEmptyAction       = NewErr(2, false, "Empty action. ")
	ErrorsNoRecommendation  = NewErr(2, false, "No recommendation. ")
	ErrorsUnknownRank       = NewErr(3, false, "Unknown rank. ")
	ErrorsInputModeInvalid  = NewErr(3, false, "Input mode invalid. ")
	ErrorsActionOutstanding = NewErr(4, false, "An action is already outstanding. ")
	ErrorsTransportInvalid  = NewErr(5, true, "Transport invalid. ")
)
