package save

import (
	"encoding/json"
	"fmt"

	"github.com/jask/blackjack/internal/game"
)

// encodeJSON renders a round as an indented JSON object with one named
// field per Round field and card objects carrying rank/suit names.
func encodeJSON(r game.Round) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return data, nil
}

// decodeJSON parses a JSON save. Unknown extra fields are tolerated
// for forward compatibility; enum and card names are checked strictly
// so non-save JSON is rejected rather than silently accepted.
func decodeJSON(data []byte) (game.Round, error) {
	var r game.Round
	if err := json.Unmarshal(data, &r); err != nil {
		return game.Round{}, fmt.Errorf("decode json: %w", err)
	}
	applyRoundDefaults(&r)
	if err := validateRound(r); err != nil {
		return game.Round{}, fmt.Errorf("decode json: %w", err)
	}
	return r, nil
}

// applyRoundDefaults fills absent enum fields with their initial-state
// values, mirroring the other codecs' defaulting.
func applyRoundDefaults(r *game.Round) {
	if r.Status == "" {
		r.Status = game.StatusPlayer1Turn
	}
	if r.Player1Result == "" {
		r.Player1Result = game.ResultPending
	}
	if r.Player2Result == "" {
		r.Player2Result = game.ResultPending
	}
}

// validateRound rejects rounds whose enum or card spellings do not
// match the persisted vocabulary.
func validateRound(r game.Round) error {
	if _, err := game.ParseStatus(string(r.Status)); err != nil {
		return err
	}
	if _, err := game.ParseResult(string(r.Player1Result)); err != nil {
		return err
	}
	if _, err := game.ParseResult(string(r.Player2Result)); err != nil {
		return err
	}
	for _, hand := range [][]game.Card{r.Player1Hand, r.Player2Hand, r.DealerHand} {
		for _, c := range hand {
			if _, err := game.ParseRank(string(c.Rank)); err != nil {
				return err
			}
			if _, err := game.ParseSuit(string(c.Suit)); err != nil {
				return err
			}
		}
	}
	return nil
}
