package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/blackjack/internal/database"
)

func openTestDB(t *testing.T) *RoundRepo {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	migrations, err := filepath.Abs("../migrations")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(dbPath, migrations))

	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRoundRepo(db)
}

func TestInsertListSummarize(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	repo := openTestDB(t)

	base := database.Now()
	recs := []RoundRecord{
		{Mode: "1 Player", Player1Result: "WIN", Player2Result: "PENDING", Player1Score: 20, DealerScore: 19, DurationSeconds: 41, FinishedAt: base.Add(-2 * time.Minute)},
		{Mode: "1 Player", Player1Result: "BUST", Player2Result: "PENDING", Player1Score: 24, DealerScore: 23, DurationSeconds: 12, FinishedAt: base.Add(-time.Minute)},
		{Mode: "2 Players", Player1Result: "PUSH", Player2Result: "LOSS", Player1Score: 18, Player2Score: 15, DealerScore: 18, DurationSeconds: 77, FinishedAt: base},
	}
	for _, rec := range recs {
		id, err := repo.Insert(ctx, rec)
		require.NoError(t, err)
		require.NotEmpty(t, id)
	}

	got, err := repo.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, "PUSH", got[0].Player1Result) // newest first
	require.Equal(t, "WIN", got[2].Player1Result)

	sum, err := repo.Summarize(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, sum.TotalRounds)
	require.Equal(t, 1, sum.Wins)
	require.Equal(t, 1, sum.Busts)
	require.Equal(t, 1, sum.Pushes)
	require.Equal(t, 1, sum.DealerBusts)
	require.Equal(t, 0, sum.Losses)
}
