package game

import "fmt"

// Status is the turn phase of a round. It only advances forward
// through the sequence below; only a new game resets it.
type Status string

const (
	StatusPlayer1Turn Status = "PLAYER_1_TURN"
	StatusPlayer2Turn Status = "PLAYER_2_TURN"
	StatusDealerTurn  Status = "DEALER_TURN"
	StatusGameOver    Status = "GAME_OVER"
)

// ParseStatus maps a persisted status name back to a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPlayer1Turn, StatusPlayer2Turn, StatusDealerTurn, StatusGameOver:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Result is a player's outcome against the dealer.
type Result string

const (
	ResultPending Result = "PENDING"
	ResultWin     Result = "WIN"
	ResultLoss    Result = "LOSS"
	ResultBust    Result = "BUST"
	ResultPush    Result = "PUSH"
)

// ParseResult maps a persisted result name back to a Result.
func ParseResult(s string) (Result, error) {
	switch Result(s) {
	case ResultPending, ResultWin, ResultLoss, ResultBust, ResultPush:
		return Result(s), nil
	}
	return "", fmt.Errorf("unknown result %q", s)
}

// Move history tokens. The history is append-only within a round and
// resets to a single NEW_GAME entry when a round starts.
const (
	MoveNewGame     = "NEW_GAME"
	MoveP1Hit       = "P1_HIT"
	MoveP1Bust      = "P1_BUST"
	MoveP1Stand     = "P1_STAND"
	MoveP2Hit       = "P2_HIT"
	MoveP2Bust      = "P2_BUST"
	MoveP2Stand     = "P2_STAND"
	MoveDealerTurn  = "DEALER_TURN"
	MoveDealerHit   = "DEALER_HIT"
	MoveDealerStand = "DEALER_STAND"
	MoveGameOver    = "GAME_OVER"
)

// Round is the full persisted state of one blackjack round. Player 2
// fields are meaningful only in two-player mode. Scores are snapshots
// derived with HandValue. The shoe itself is never part of a Round.
type Round struct {
	IsTwoPlayerMode bool `json:"isTwoPlayerMode"`

	Player1Hand []Card `json:"player1Hand"`
	Player2Hand []Card `json:"player2Hand"`
	DealerHand  []Card `json:"dealerHand"`

	Player1Score int `json:"player1Score"`
	Player2Score int `json:"player2Score"`
	DealerScore  int `json:"dealerScore"`

	Status        Status `json:"gameStatus"`
	Player1Result Result `json:"player1Result"`
	Player2Result Result `json:"player2Result"`

	TimeElapsed int64    `json:"timeElapsed"`
	MoveHistory []string `json:"moveHistory"`
	Tag         string   `json:"tag"`
}

// Clone returns a deep copy so the live round and published snapshots
// never alias hand or history slices.
func (r Round) Clone() Round {
	out := r
	out.Player1Hand = append([]Card(nil), r.Player1Hand...)
	out.Player2Hand = append([]Card(nil), r.Player2Hand...)
	out.DealerHand = append([]Card(nil), r.DealerHand...)
	out.MoveHistory = append([]string(nil), r.MoveHistory...)
	return out
}

// Equal compares two rounds field by field, treating nil and empty
// slices as the same.
func (r Round) Equal(o Round) bool {
	if r.IsTwoPlayerMode != o.IsTwoPlayerMode ||
		r.Player1Score != o.Player1Score ||
		r.Player2Score != o.Player2Score ||
		r.DealerScore != o.DealerScore ||
		r.Status != o.Status ||
		r.Player1Result != o.Player1Result ||
		r.Player2Result != o.Player2Result ||
		r.TimeElapsed != o.TimeElapsed ||
		r.Tag != o.Tag {
		return false
	}
	if !handsEqual(r.Player1Hand, o.Player1Hand) ||
		!handsEqual(r.Player2Hand, o.Player2Hand) ||
		!handsEqual(r.DealerHand, o.DealerHand) {
		return false
	}
	if len(r.MoveHistory) != len(o.MoveHistory) {
		return false
	}
	for i := range r.MoveHistory {
		if r.MoveHistory[i] != o.MoveHistory[i] {
			return false
		}
	}
	return true
}

func handsEqual(a, b []Card) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
