package entity

// Outcome is the state of a game derived from its board.
type Outcome uint8

const (
	InProgress Outcome = iota
	XWins
	OWins
	Draw
)

const (
	StatusInProgress = "in_progress"
	StatusXWins      = "x_wins"
	StatusOWins      = "o_wins"
	StatusDraw       = "draw"
)

func (that Outcome) String() string {
	switch that {
	case XWins:
		return StatusXWins
	case OWins:
		return StatusOWins
	case Draw:
		return StatusDraw
	default:
		return StatusInProgress
	}
}

func (that Outcome) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that Outcome) IsFinished() bool {
	return that != InProgress
}

// Solution is the optimal move for a position together with its minimax value
// from X's point of view.
type Solution struct {
	Board  Board  `json:"board"`
	Player Player `json:"player"`
	Move   Move   `json:"move"`
	Value  int    `json:"value"`
}

// Turn is the result of a human move followed by the bot's reply, if the game
// was still running.
type Turn struct {
	Board   Board   `json:"board"`
	BotMove *Move   `json:"bot_move"`
	Outcome Outcome `json:"outcome"`
}
