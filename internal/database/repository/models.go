package repository

import "time"

// RoundRecord is one finished round in the archive.
type RoundRecord struct {
	ID              string
	Mode            string // "1 Player" or "2 Players"
	Player1Result   string
	Player2Result   string
	Player1Score    int
	Player2Score    int
	DealerScore     int
	DurationSeconds int64
	FinishedAt      time.Time
}

// Summary aggregates archived rounds from player 1's side of the table.
type Summary struct {
	TotalRounds int
	Wins        int
	Losses      int
	Busts       int
	Pushes      int
	DealerBusts int
}
