package services

import (
	"context"
	"encoding/json"
	"math/rand"

	"bigwin-backend/internal/models"
)

const (
	WinProbability = 0.45
	WinMultiplier  = 2
)

type WagerResult struct {
	Win        bool
	Prize      int64
	StarsAfter int64
}

// WagerEngine settles fixed-odds wagers. All four games share the same
// settlement: win with probability 0.45, prize 2x the bet on a win, nothing
// on a loss. The games differ only in the label written to counters and the
// ledger.
type WagerEngine struct {
	store       AccountStore
	broadcaster Broadcaster

	// winDraw returns a uniform value in [0,1); a draw below WinProbability
	// is a win.
	winDraw func() float64
}

func NewWagerEngine(store AccountStore, broadcaster Broadcaster) *WagerEngine {
	return &WagerEngine{
		store:       store,
		broadcaster: broadcaster,
		winDraw:     rand.Float64,
	}
}

// Play validates and settles a wager. The balance check and the returned
// stars_after both use the snapshot read before the account is ensured, so a
// brand-new account always fails with insufficient funds on its first bet.
func (e *WagerEngine) Play(ctx context.Context, id, game string, bet int64) (*WagerResult, error) {
	if !models.IsValidGame(game) {
		return nil, ErrUnknownGame
	}
	if bet <= 0 {
		return nil, ErrInvalidBet
	}

	preStars, _, err := e.store.GetStars(id)
	if err != nil {
		return nil, err
	}

	if _, err := e.store.EnsureAccount(id, "", ""); err != nil {
		return nil, err
	}

	if preStars < bet {
		return nil, ErrInsufficientFunds
	}

	win := e.winDraw() < WinProbability
	var prize int64
	if win {
		prize = bet * WinMultiplier
	}
	delta := prize - bet

	// The entry's "win" field carries the numeric prize; see models.WagerEntry.
	entry, err := json.Marshal(models.WagerEntry{
		TS:   models.NowISO(),
		Game: game,
		Bet:  bet,
		Win:  prize,
	})
	if err != nil {
		return nil, err
	}

	if err := e.store.ApplyWager(id, game, delta, entry); err != nil {
		return nil, err
	}

	if e.broadcaster != nil {
		e.broadcaster.BroadcastWager(id, game, bet, prize, win)
	}

	return &WagerResult{
		Win:        win,
		Prize:      prize,
		StarsAfter: preStars + delta,
	}, nil
}
