// Package session owns the live round: it serializes every mutation
// through the turn state machine and delegates persistence to the
// save store.
package session

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/jask/blackjack/internal/database/repository"
	"github.com/jask/blackjack/internal/game"
	"github.com/jask/blackjack/internal/save"
)

// Controller exposes the command surface the UI consumes. One
// controller owns one Round and one Deck; all mutations, including
// the background dealer and timer tasks, go through its mutex, and
// out-of-turn commands are rejected by the status check rather than
// an external lock.
type Controller struct {
	Store   *save.Store
	Archive *repository.RoundRepo // optional round archive
	Log     *slog.Logger

	// Deck may be preset (e.g. a stacked deck); NewGame creates one
	// on first use otherwise.
	Deck *game.Deck

	// DealerDelay paces dealer draws, TimerTick drives the elapsed
	// counter. Zero values mean one second. Pacing is a UX contract,
	// not a correctness requirement; tests shrink both.
	DealerDelay time.Duration
	TimerTick   time.Duration

	// PersistFormat, when set, writes the preferred format through to
	// the preference store.
	PersistFormat func(save.Format) error

	mu           sync.Mutex
	round        game.Round
	preferred    save.Format
	timerCancel  context.CancelFunc
	dealerCancel context.CancelFunc
}

// New returns a controller saving in the given format until told
// otherwise.
func New(store *save.Store, preferred save.Format) *Controller {
	return &Controller{Store: store, preferred: preferred}
}

// NewGame abandons any round in progress, deals a fresh one and
// restarts the elapsed-time counter.
func (c *Controller) NewGame(twoPlayer bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopTimerLocked()
	c.stopDealerLocked()
	c.ensureDeckLocked()
	c.Deck.Shuffle()

	r := game.Round{
		IsTwoPlayerMode: twoPlayer,
		Player1Hand:     c.Deck.DrawHand(),
		DealerHand:      c.Deck.DrawHand(),
		Status:          game.StatusPlayer1Turn,
		Player1Result:   game.ResultPending,
		Player2Result:   game.ResultPending,
		MoveHistory:     []string{game.MoveNewGame},
	}
	r.Player1Score = game.HandValue(r.Player1Hand)
	r.DealerScore = game.HandValue(r.DealerHand)
	if twoPlayer {
		r.Player2Hand = c.Deck.DrawHand()
		r.Player2Score = game.HandValue(r.Player2Hand)
	}

	c.round = r
	c.startTimerLocked()
}

// Hit draws one card for whichever player holds the turn. Out of
// turn, it is a silent no-op.
func (c *Controller) Hit() {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.round.Status {
	case game.StatusPlayer1Turn:
		c.hitLocked(&c.round.Player1Hand, &c.round.Player1Score, &c.round.Player1Result,
			game.MoveP1Hit, game.MoveP1Bust)
	case game.StatusPlayer2Turn:
		c.hitLocked(&c.round.Player2Hand, &c.round.Player2Score, &c.round.Player2Result,
			game.MoveP2Hit, game.MoveP2Bust)
	case game.StatusDealerTurn, game.StatusGameOver:
		// ignored
	}
}

func (c *Controller) hitLocked(hand *[]game.Card, score *int, result *game.Result, hitTok, bustTok string) {
	*hand = append(*hand, c.Deck.Draw())
	*score = game.HandValue(*hand)
	c.round.MoveHistory = append(c.round.MoveHistory, hitTok)
	if game.Busted(*score) {
		*result = game.ResultBust
		c.round.MoveHistory = append(c.round.MoveHistory, bustTok)
		c.standLocked() // bust ends the turn
	}
}

// Stand ends the current player's turn, handing off to player 2 or
// the dealer. Out of turn, it is a silent no-op — including while the
// dealer is mid-sequence.
func (c *Controller) Stand() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.standLocked()
}

func (c *Controller) standLocked() {
	switch c.round.Status {
	case game.StatusPlayer1Turn:
		c.round.MoveHistory = append(c.round.MoveHistory, game.MoveP1Stand)
		if c.round.IsTwoPlayerMode && c.round.Player2Result == game.ResultPending {
			c.round.Status = game.StatusPlayer2Turn
		} else {
			c.beginDealerLocked()
		}
	case game.StatusPlayer2Turn:
		c.round.MoveHistory = append(c.round.MoveHistory, game.MoveP2Stand)
		c.beginDealerLocked()
	case game.StatusDealerTurn, game.StatusGameOver:
		// ignored
	}
}

// beginDealerLocked reveals the dealer's true score and starts the
// paced auto-play task. Like the timer, the task carries a
// cancellation handle so a new game or load that lands mid-sequence
// kills the stale loop rather than letting it adopt the next round.
func (c *Controller) beginDealerLocked() {
	c.round.Status = game.StatusDealerTurn
	c.round.DealerScore = game.HandValue(c.round.DealerHand)
	c.round.MoveHistory = append(c.round.MoveHistory, game.MoveDealerTurn)

	ctx, cancel := context.WithCancel(context.Background())
	c.dealerCancel = cancel
	go c.runDealer(ctx)
}

// runDealer draws to 17, stands, waits one more pacing interval, then
// settles. Every step rechecks both the context and the status before
// touching the round.
func (c *Controller) runDealer(ctx context.Context) {
	delay := c.dealerDelay()

	for {
		c.mu.Lock()
		if ctx.Err() != nil || c.round.Status != game.StatusDealerTurn {
			c.mu.Unlock()
			return
		}
		if !game.DealerMustHit(game.HandValue(c.round.DealerHand)) {
			c.round.MoveHistory = append(c.round.MoveHistory, game.MoveDealerStand)
			c.mu.Unlock()
			break
		}
		c.mu.Unlock()

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}

		c.mu.Lock()
		if ctx.Err() != nil || c.round.Status != game.StatusDealerTurn {
			c.mu.Unlock()
			return
		}
		c.round.DealerHand = append(c.round.DealerHand, c.Deck.Draw())
		c.round.DealerScore = game.HandValue(c.round.DealerHand)
		c.round.MoveHistory = append(c.round.MoveHistory, game.MoveDealerHit)
		c.mu.Unlock()
	}

	select {
	case <-ctx.Done():
		return
	case <-time.After(delay):
	}

	c.mu.Lock()
	if ctx.Err() == nil && c.round.Status == game.StatusDealerTurn {
		c.settleLocked()
	}
	c.mu.Unlock()
}

// settleLocked resolves both players against the dealer, ends the
// round and stops the clock. Busts are sticky.
func (c *Controller) settleLocked() {
	dealerScore := game.HandValue(c.round.DealerHand)
	dealerBusted := game.Busted(dealerScore)
	c.round.DealerScore = dealerScore

	c.round.Player1Result = game.Settle(c.round.Player1Score, c.round.Player1Result, dealerScore, dealerBusted)
	if c.round.IsTwoPlayerMode {
		c.round.Player2Result = game.Settle(c.round.Player2Score, c.round.Player2Result, dealerScore, dealerBusted)
	}

	c.round.Status = game.StatusGameOver
	c.round.MoveHistory = append(c.round.MoveHistory, game.MoveGameOver)
	c.stopTimerLocked()
	c.stopDealerLocked()
	c.archiveLocked()
}

// archiveLocked records the finished round, best effort: archive
// failures are logged, never surfaced to the game.
func (c *Controller) archiveLocked() {
	if c.Archive == nil {
		return
	}
	rec := repository.RoundRecord{
		Mode:            game.ModeLabel(c.round.IsTwoPlayerMode),
		Player1Result:   string(c.round.Player1Result),
		Player2Result:   string(c.round.Player2Result),
		Player1Score:    c.round.Player1Score,
		Player2Score:    c.round.Player2Score,
		DealerScore:     c.round.DealerScore,
		DurationSeconds: c.round.TimeElapsed,
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := c.Archive.Insert(ctx, rec); err != nil {
			c.logger().Warn("archive round", "err", err)
		}
	}()
}

// Save snapshots the live round under the user's tag and writes it in
// the preferred format. The tag exists only on the saved copy.
func (c *Controller) Save(filename, tag string) bool {
	c.mu.Lock()
	r := c.round.Clone()
	r.Tag = tag
	f := c.preferred
	c.mu.Unlock()

	if f == "" {
		f = save.FormatJSON
	}
	if err := c.Store.Save(r, filename, f); err != nil {
		c.logger().Error("save round", "file", filename, "err", err)
		return false
	}
	return true
}

// Load replaces the live round with a saved one. False means missing
// or unreadable; the live round is untouched in that case.
func (c *Controller) Load(filename string) bool {
	r, ok := c.Store.Load(filename)
	if !ok {
		return false
	}
	c.replaceRound(r)
	return true
}

// ImportExternal replaces the live round with format-sniffed external
// content.
func (c *Controller) ImportExternal(content string) bool {
	r, ok := c.Store.Import(content)
	if !ok {
		return false
	}
	c.replaceRound(r)
	return true
}

// replaceRound swaps in a loaded round wholesale and restarts the
// elapsed-time counter, unless the round is already over and there is
// nothing left to time. Subsequent draws come from the existing shoe;
// the shoe is never part of a save.
func (c *Controller) replaceRound(r game.Round) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopTimerLocked()
	c.stopDealerLocked()
	c.ensureDeckLocked()
	c.round = r.Clone()
	if c.round.Status != game.StatusGameOver {
		c.startTimerLocked()
	}
}

// ExportSaved copies a save's exact stored bytes to a destination of
// the caller's choosing. Failure is reported, never fatal.
func (c *Controller) ExportSaved(filename string, dst io.Writer) bool {
	content, ok := c.Store.RawContent(filename)
	if !ok {
		return false
	}
	if err := c.Store.Export(content, dst); err != nil {
		c.logger().Error("export save", "file", filename, "err", err)
		return false
	}
	return true
}

// SetPreferredFormat switches the save format and writes the choice
// through to the preference store when one is wired.
func (c *Controller) SetPreferredFormat(f save.Format) {
	c.mu.Lock()
	c.preferred = f
	c.mu.Unlock()

	if c.PersistFormat != nil {
		if err := c.PersistFormat(f); err != nil {
			c.logger().Warn("persist preferred format", "format", f, "err", err)
		}
	}
}

// PreferredFormat returns the current save format.
func (c *Controller) PreferredFormat() save.Format {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.preferred == "" {
		return save.FormatJSON
	}
	return c.preferred
}

// ListSaves returns the save index, newest first.
func (c *Controller) ListSaves() []save.Metadata {
	return c.Store.List()
}

// SuggestSave proposes the nearest known save filename, for load
// misses.
func (c *Controller) SuggestSave(filename string) (string, bool) {
	return c.Store.Closest(filename)
}

// Round returns a snapshot copy of the live round; callers never see
// later mutations through it.
func (c *Controller) Round() game.Round {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.round.Clone()
}

// DealerVisibleScore is the dealer score a player may see: during
// player turns only the second dealt card counts (the first stays
// face down), afterwards the true score. Display-only; the persisted
// dealer score is always the true full-hand value.
func (c *Controller) DealerVisibleScore() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.round.Status {
	case game.StatusPlayer1Turn, game.StatusPlayer2Turn:
		if len(c.round.DealerHand) >= 2 {
			return c.round.DealerHand[1].Rank.Value()
		}
		return 0
	case game.StatusDealerTurn, game.StatusGameOver:
	}
	return game.HandValue(c.round.DealerHand)
}

// timer plumbing. The counter is cancelled exactly once per round: on
// new game before a fresh one starts, and at settlement.

func (c *Controller) startTimerLocked() {
	ctx, cancel := context.WithCancel(context.Background())
	c.timerCancel = cancel
	tick := c.timerTick()

	go func() {
		t := time.NewTicker(tick)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				c.mu.Lock()
				if c.round.Status != game.StatusGameOver {
					c.round.TimeElapsed++
				}
				c.mu.Unlock()
			}
		}
	}()
}

func (c *Controller) stopTimerLocked() {
	if c.timerCancel != nil {
		c.timerCancel()
		c.timerCancel = nil
	}
}

func (c *Controller) stopDealerLocked() {
	if c.dealerCancel != nil {
		c.dealerCancel()
		c.dealerCancel = nil
	}
}

func (c *Controller) ensureDeckLocked() {
	if c.Deck == nil {
		c.Deck = game.NewDeck()
	}
}

func (c *Controller) dealerDelay() time.Duration {
	if c.DealerDelay > 0 {
		return c.DealerDelay
	}
	return time.Second
}

func (c *Controller) timerTick() time.Duration {
	if c.TimerTick > 0 {
		return c.TimerTick
	}
	return time.Second
}

func (c *Controller) logger() *slog.Logger {
	if c.Log != nil {
		return c.Log
	}
	return slog.Default()
}
