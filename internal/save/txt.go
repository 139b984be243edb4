package save

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jask/blackjack/internal/game"
)

// Line format: one key=value per scalar field, hands joined as
// RANK_SUIT,RANK_SUIT, history comma-joined. Decoding is deliberately
// lossy: a missing or unreadable field takes its default (false, 0,
// initial enum value, empty) rather than failing, so a corrupt save
// can come back as a mostly empty round.

func encodeTXT(r game.Round) ([]byte, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "isTwoPlayerMode=%t\n", r.IsTwoPlayerMode)
	fmt.Fprintf(&b, "gameStatus=%s\n", r.Status)
	fmt.Fprintf(&b, "timeElapsed=%d\n", r.TimeElapsed)
	fmt.Fprintf(&b, "player1Score=%d\n", r.Player1Score)
	fmt.Fprintf(&b, "player2Score=%d\n", r.Player2Score)
	fmt.Fprintf(&b, "dealerScore=%d\n", r.DealerScore)
	fmt.Fprintf(&b, "player1Hand=%s\n", encodeHandTXT(r.Player1Hand))
	fmt.Fprintf(&b, "player2Hand=%s\n", encodeHandTXT(r.Player2Hand))
	fmt.Fprintf(&b, "dealerHand=%s\n", encodeHandTXT(r.DealerHand))
	fmt.Fprintf(&b, "player1Result=%s\n", r.Player1Result)
	fmt.Fprintf(&b, "player2Result=%s\n", r.Player2Result)
	fmt.Fprintf(&b, "moveHistory=%s\n", strings.Join(r.MoveHistory, ","))
	fmt.Fprintf(&b, "tag=%s\n", r.Tag)
	return []byte(b.String()), nil
}

// txtKeys is the recognized field vocabulary. Decoding requires at
// least one known key so arbitrary text is not accepted as an (empty)
// round by the import fallback.
var txtKeys = map[string]bool{
	"isTwoPlayerMode": true, "gameStatus": true, "timeElapsed": true,
	"player1Score": true, "player2Score": true, "dealerScore": true,
	"player1Hand": true, "player2Hand": true, "dealerHand": true,
	"player1Result": true, "player2Result": true,
	"moveHistory": true, "tag": true,
}

func decodeTXT(data []byte) (game.Round, error) {
	fields := map[string]string{}
	recognized := 0
	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		fields[key] = value
		if txtKeys[key] {
			recognized++
		}
	}
	if recognized == 0 {
		return game.Round{}, fmt.Errorf("decode txt: no recognized fields")
	}

	r := game.Round{
		IsTwoPlayerMode: fields["isTwoPlayerMode"] == "true",
		Status:          statusOrDefault(fields["gameStatus"]),
		TimeElapsed:     int64OrZero(fields["timeElapsed"]),
		Player1Score:    atoiOrZero(fields["player1Score"]),
		Player2Score:    atoiOrZero(fields["player2Score"]),
		DealerScore:     atoiOrZero(fields["dealerScore"]),
		Player1Hand:     decodeHandTXT(fields["player1Hand"]),
		Player2Hand:     decodeHandTXT(fields["player2Hand"]),
		DealerHand:      decodeHandTXT(fields["dealerHand"]),
		Player1Result:   resultOrDefault(fields["player1Result"]),
		Player2Result:   resultOrDefault(fields["player2Result"]),
		Tag:             fields["tag"],
	}
	if h := strings.TrimSpace(fields["moveHistory"]); h != "" {
		for _, m := range strings.Split(h, ",") {
			if m != "" {
				r.MoveHistory = append(r.MoveHistory, m)
			}
		}
	}
	return r, nil
}

func encodeHandTXT(hand []game.Card) string {
	parts := make([]string, len(hand))
	for i, c := range hand {
		parts[i] = string(c.Rank) + "_" + string(c.Suit)
	}
	return strings.Join(parts, ",")
}

// decodeHandTXT parses RANK_SUIT pairs, dropping entries it cannot
// read.
func decodeHandTXT(s string) []game.Card {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var hand []game.Card
	for _, part := range strings.Split(s, ",") {
		rankName, suitName, ok := strings.Cut(part, "_")
		if !ok {
			continue
		}
		rank, err := game.ParseRank(rankName)
		if err != nil {
			continue
		}
		suit, err := game.ParseSuit(suitName)
		if err != nil {
			continue
		}
		hand = append(hand, game.Card{Rank: rank, Suit: suit})
	}
	return hand
}

func statusOrDefault(s string) game.Status {
	if st, err := game.ParseStatus(s); err == nil {
		return st
	}
	return game.StatusPlayer1Turn
}

func resultOrDefault(s string) game.Result {
	if res, err := game.ParseResult(s); err == nil {
		return res
	}
	return game.ResultPending
}

func atoiOrZero(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}

func int64OrZero(s string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return v
}
