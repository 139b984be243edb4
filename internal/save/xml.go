package save

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jask/blackjack/internal/game"
)

// encodeXML renders a round as a <gameState> tree: one element per
// scalar field, hands as containers of <card><rank/><suit/></card>,
// and the move history as repeated <move> elements.
func encodeXML(r game.Round) ([]byte, error) {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")

	root := xml.StartElement{Name: xml.Name{Local: "gameState"}}
	if err := enc.EncodeToken(root); err != nil {
		return nil, fmt.Errorf("encode xml: %w", err)
	}

	leaves := []struct {
		name string
		text string
	}{
		{"isTwoPlayerMode", strconv.FormatBool(r.IsTwoPlayerMode)},
		{"gameStatus", string(r.Status)},
		{"timeElapsed", strconv.FormatInt(r.TimeElapsed, 10)},
		{"player1Score", strconv.Itoa(r.Player1Score)},
		{"player2Score", strconv.Itoa(r.Player2Score)},
		{"dealerScore", strconv.Itoa(r.DealerScore)},
		{"player1Result", string(r.Player1Result)},
		{"player2Result", string(r.Player2Result)},
		{"tag", r.Tag},
	}
	for _, l := range leaves {
		if err := writeLeaf(enc, l.name, l.text); err != nil {
			return nil, err
		}
	}

	hands := []struct {
		name string
		hand []game.Card
	}{
		{"player1Hand", r.Player1Hand},
		{"player2Hand", r.Player2Hand},
		{"dealerHand", r.DealerHand},
	}
	for _, h := range hands {
		if err := writeHand(enc, h.name, h.hand); err != nil {
			return nil, err
		}
	}

	history := xml.StartElement{Name: xml.Name{Local: "moveHistory"}}
	if err := enc.EncodeToken(history); err != nil {
		return nil, fmt.Errorf("encode xml: %w", err)
	}
	for _, m := range r.MoveHistory {
		if err := writeLeaf(enc, "move", m); err != nil {
			return nil, err
		}
	}
	if err := enc.EncodeToken(history.End()); err != nil {
		return nil, fmt.Errorf("encode xml: %w", err)
	}

	if err := enc.EncodeToken(root.End()); err != nil {
		return nil, fmt.Errorf("encode xml: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return nil, fmt.Errorf("encode xml: %w", err)
	}
	return buf.Bytes(), nil
}

func writeLeaf(enc *xml.Encoder, name, text string) error {
	start := xml.StartElement{Name: xml.Name{Local: name}}
	if err := enc.EncodeToken(start); err != nil {
		return fmt.Errorf("encode xml %s: %w", name, err)
	}
	if err := enc.EncodeToken(xml.CharData(text)); err != nil {
		return fmt.Errorf("encode xml %s: %w", name, err)
	}
	if err := enc.EncodeToken(start.End()); err != nil {
		return fmt.Errorf("encode xml %s: %w", name, err)
	}
	return nil
}

func writeHand(enc *xml.Encoder, name string, hand []game.Card) error {
	start := xml.StartElement{Name: xml.Name{Local: name}}
	if err := enc.EncodeToken(start); err != nil {
		return fmt.Errorf("encode xml %s: %w", name, err)
	}
	for _, c := range hand {
		card := xml.StartElement{Name: xml.Name{Local: "card"}}
		if err := enc.EncodeToken(card); err != nil {
			return fmt.Errorf("encode xml %s: %w", name, err)
		}
		if err := writeLeaf(enc, "rank", string(c.Rank)); err != nil {
			return err
		}
		if err := writeLeaf(enc, "suit", string(c.Suit)); err != nil {
			return err
		}
		if err := enc.EncodeToken(card.End()); err != nil {
			return fmt.Errorf("encode xml %s: %w", name, err)
		}
	}
	if err := enc.EncodeToken(start.End()); err != nil {
		return fmt.Errorf("encode xml %s: %w", name, err)
	}
	return nil
}

// decodeXML parses a save in a single forward token pass. It tracks
// the currently open hand container and a pending rank, pairing rank
// and suit into a Card when both have been seen inside a <card>.
func decodeXML(data []byte) (game.Round, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	r := game.Round{
		Status:        game.StatusPlayer1Turn,
		Player1Result: game.ResultPending,
		Player2Result: game.ResultPending,
	}

	sawRoot := false
	currentTag := ""
	var currentHand *[]game.Card
	var pendingRank *game.Rank

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return game.Round{}, fmt.Errorf("decode xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			currentTag = t.Name.Local
			switch currentTag {
			case "gameState":
				sawRoot = true
			case "player1Hand":
				currentHand = &r.Player1Hand
			case "player2Hand":
				currentHand = &r.Player2Hand
			case "dealerHand":
				currentHand = &r.DealerHand
			}
		case xml.CharData:
			text := string(t)
			if strings.TrimSpace(text) == "" && currentTag != "tag" && currentTag != "move" {
				continue
			}
			if err := applyXMLField(&r, currentTag, text, currentHand, &pendingRank); err != nil {
				return game.Round{}, fmt.Errorf("decode xml: %w", err)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "player1Hand", "player2Hand", "dealerHand":
				currentHand = nil
			}
			currentTag = ""
		}
	}

	if !sawRoot {
		return game.Round{}, fmt.Errorf("decode xml: missing gameState root")
	}
	return r, nil
}

func applyXMLField(r *game.Round, tag, text string, hand *[]game.Card, pendingRank **game.Rank) error {
	switch tag {
	case "isTwoPlayerMode":
		v, err := strconv.ParseBool(text)
		if err != nil {
			return fmt.Errorf("isTwoPlayerMode: %w", err)
		}
		r.IsTwoPlayerMode = v
	case "gameStatus":
		s, err := game.ParseStatus(text)
		if err != nil {
			return err
		}
		r.Status = s
	case "timeElapsed":
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return fmt.Errorf("timeElapsed: %w", err)
		}
		r.TimeElapsed = v
	case "player1Score":
		v, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			return fmt.Errorf("player1Score: %w", err)
		}
		r.Player1Score = v
	case "player2Score":
		v, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			return fmt.Errorf("player2Score: %w", err)
		}
		r.Player2Score = v
	case "dealerScore":
		v, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			return fmt.Errorf("dealerScore: %w", err)
		}
		r.DealerScore = v
	case "player1Result":
		res, err := game.ParseResult(text)
		if err != nil {
			return err
		}
		r.Player1Result = res
	case "player2Result":
		res, err := game.ParseResult(text)
		if err != nil {
			return err
		}
		r.Player2Result = res
	case "move":
		r.MoveHistory = append(r.MoveHistory, text)
	case "tag":
		r.Tag = text
	case "rank":
		rank, err := game.ParseRank(text)
		if err != nil {
			return err
		}
		*pendingRank = &rank
	case "suit":
		if *pendingRank != nil && hand != nil {
			suit, err := game.ParseSuit(text)
			if err != nil {
				return err
			}
			*hand = append(*hand, game.Card{Rank: **pendingRank, Suit: suit})
			*pendingRank = nil
		}
	}
	return nil
}
