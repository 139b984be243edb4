package save

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/blackjack/internal/game"
)

func sampleRound() game.Round {
	return game.Round{
		IsTwoPlayerMode: true,
		Player1Hand: []game.Card{
			{Rank: game.RankAce, Suit: game.SuitSpades},
			{Rank: game.RankKing, Suit: game.SuitHearts},
		},
		Player2Hand: []game.Card{
			{Rank: game.RankSeven, Suit: game.SuitClubs},
			{Rank: game.RankNine, Suit: game.SuitDiamonds},
		},
		DealerHand: []game.Card{
			{Rank: game.RankTen, Suit: game.SuitClubs},
			{Rank: game.RankSix, Suit: game.SuitHearts},
			{Rank: game.RankFive, Suit: game.SuitSpades},
		},
		Player1Score:  21,
		Player2Score:  16,
		DealerScore:   21,
		Status:        game.StatusGameOver,
		Player1Result: game.ResultPush,
		Player2Result: game.ResultLoss,
		TimeElapsed:   73,
		MoveHistory:   []string{"NEW_GAME", "P1_STAND", "P2_HIT", "P2_STAND", "DEALER_TURN", "DEALER_HIT", "DEALER_STAND", "GAME_OVER"},
		Tag:           "tense finish",
	}
}

func TestRoundTripAllFormats(t *testing.T) {
	t.Parallel()

	rounds := map[string]game.Round{
		"full":  sampleRound(),
		"fresh": {Status: game.StatusPlayer1Turn, Player1Result: game.ResultPending, Player2Result: game.ResultPending, MoveHistory: []string{"NEW_GAME"}},
		"single player": {
			Player1Hand:   []game.Card{{Rank: game.RankTwo, Suit: game.SuitClubs}, {Rank: game.RankThree, Suit: game.SuitClubs}},
			Player1Score:  5,
			DealerScore:   17,
			DealerHand:    []game.Card{{Rank: game.RankTen, Suit: game.SuitSpades}, {Rank: game.RankSeven, Suit: game.SuitSpades}},
			Status:        game.StatusPlayer1Turn,
			Player1Result: game.ResultPending,
			Player2Result: game.ResultPending,
			MoveHistory:   []string{"NEW_GAME"},
		},
	}

	for name, r := range rounds {
		for _, f := range Formats {
			t.Run(name+"/"+string(f), func(t *testing.T) {
				data, err := Encode(r, f)
				require.NoError(t, err)
				got, err := Decode(data, f)
				require.NoError(t, err)
				require.True(t, r.Equal(got), "round trip mismatch in %s:\nwant %+v\ngot  %+v", f, r, got)
			})
		}
	}
}

func TestJSONDecodeToleratesUnknownFields(t *testing.T) {
	t.Parallel()

	data, err := Encode(sampleRound(), FormatJSON)
	require.NoError(t, err)
	patched := strings.Replace(string(data), "{", "{\n  \"futureField\": 42,", 1)
	got, err := Decode([]byte(patched), FormatJSON)
	require.NoError(t, err)
	require.True(t, sampleRound().Equal(got))
}

func TestJSONDecodeRejectsBadEnum(t *testing.T) {
	t.Parallel()

	data, err := Encode(sampleRound(), FormatJSON)
	require.NoError(t, err)
	patched := strings.Replace(string(data), "GAME_OVER", "INTERMISSION", 1)
	_, err = Decode([]byte(patched), FormatJSON)
	require.Error(t, err)
}

func TestXMLDecodeRejectsNonSaveXML(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte("<html><body>hi</body></html>"), FormatXML)
	require.Error(t, err)
}

func TestXMLDecodeRejectsMalformedScore(t *testing.T) {
	t.Parallel()

	data, err := Encode(sampleRound(), FormatXML)
	require.NoError(t, err)
	patched := strings.Replace(string(data), "<dealerScore>21</dealerScore>", "<dealerScore>twenty-one</dealerScore>", 1)
	require.NotEqual(t, string(data), patched)
	_, err = Decode([]byte(patched), FormatXML)
	require.Error(t, err)
}

func TestTXTDecodeDefaultsMissingFields(t *testing.T) {
	t.Parallel()

	got, err := Decode([]byte("isTwoPlayerMode=false\nplayer1Score=12\n"), FormatTXT)
	require.NoError(t, err)
	require.False(t, got.IsTwoPlayerMode)
	require.Equal(t, 12, got.Player1Score)
	require.Equal(t, game.StatusPlayer1Turn, got.Status)
	require.Equal(t, game.ResultPending, got.Player1Result)
	require.Equal(t, game.ResultPending, got.Player2Result)
	require.Empty(t, got.Player1Hand)
	require.Empty(t, got.MoveHistory)
	require.Zero(t, got.TimeElapsed)
	require.Empty(t, got.Tag)
}

func TestTXTDecodeSkipsMalformedCards(t *testing.T) {
	t.Parallel()

	got, err := Decode([]byte("player1Hand=ACE_SPADES,garbage,KING_HEARTS,QUEEN_MOON\n"), FormatTXT)
	require.NoError(t, err)
	require.Equal(t, []game.Card{
		{Rank: game.RankAce, Suit: game.SuitSpades},
		{Rank: game.RankKing, Suit: game.SuitHearts},
	}, got.Player1Hand)
}

func TestTXTDecodeRejectsUnrecognizedContent(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte("just some prose\nno fields here\n"), FormatTXT)
	require.Error(t, err)
}

func TestSniffOrdering(t *testing.T) {
	t.Parallel()

	r := sampleRound()

	for _, f := range Formats {
		data, err := Encode(r, f)
		require.NoError(t, err)
		got, err := Sniff(string(data))
		require.NoError(t, err, "sniff %s", f)
		require.True(t, r.Equal(got), "sniff %s mismatch", f)
	}
}

func TestSniffLineFormatFallback(t *testing.T) {
	t.Parallel()

	content := "isTwoPlayerMode=false\ngameStatus=GAME_OVER\nplayer1Score=20\ndealerScore=19\nplayer1Result=WIN\n"
	got, err := Sniff(content)
	require.NoError(t, err)
	require.Equal(t, game.StatusGameOver, got.Status)
	require.Equal(t, game.ResultWin, got.Player1Result)
	require.Equal(t, 20, got.Player1Score)
}

func TestSniffExhaustion(t *testing.T) {
	t.Parallel()

	_, err := Sniff("{this is not json, xml, or a save}")
	require.Error(t, err)
	_, err = Sniff("   ")
	require.Error(t, err)
}

func TestFormatExtensions(t *testing.T) {
	t.Parallel()

	require.Equal(t, ".json", FormatJSON.Extension())
	require.Equal(t, ".xml", FormatXML.Extension())
	require.Equal(t, ".txt", FormatTXT.Extension())

	f, err := FormatForFilename("g1.xml")
	require.NoError(t, err)
	require.Equal(t, FormatXML, f)
	_, err = FormatForFilename("g1.sav")
	require.Error(t, err)

	f, err = ParseFormat("txt")
	require.NoError(t, err)
	require.Equal(t, FormatTXT, f)
}
