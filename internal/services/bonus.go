package services

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"bigwin-backend/internal/models"
)

const (
	BonusCooldownSeconds = 86400
	BonusMinAmount       = 5
	BonusMaxAmount       = 15
)

type BonusResult struct {
	Granted   bool
	Amount    int64
	WaitHours int
}

// BonusEngine grants the daily bonus behind a 24-hour cooldown.
type BonusEngine struct {
	store       AccountStore
	broadcaster Broadcaster

	// drawAmount returns a uniform value in [BonusMinAmount, BonusMaxAmount].
	drawAmount func() int64
}

func NewBonusEngine(store AccountStore, broadcaster Broadcaster) *BonusEngine {
	return &BonusEngine{
		store:       store,
		broadcaster: broadcaster,
		drawAmount: func() int64 {
			return BonusMinAmount + rand.Int63n(BonusMaxAmount-BonusMinAmount+1)
		},
	}
}

// Claim grants the bonus if the cooldown has elapsed. A claim inside the
// cooldown window is not an error: it returns Granted=false with the
// remaining wait rounded up to whole hours. A stored timestamp that cannot
// be parsed is treated as no cooldown at all, so the claim goes through.
func (e *BonusEngine) Claim(ctx context.Context, id string) (*BonusResult, error) {
	if _, err := e.store.EnsureAccount(id, "", ""); err != nil {
		return nil, err
	}

	last, err := e.store.GetLastBonusTS(id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if last != "" {
		if lastAt, perr := models.ParseISO(last); perr == nil {
			elapsed := now.Sub(lastAt).Seconds()
			if elapsed < BonusCooldownSeconds {
				hours := int((BonusCooldownSeconds-elapsed)/3600) + 1
				return &BonusResult{Granted: false, WaitHours: hours}, nil
			}
		}
	}

	amount := e.drawAmount()
	ts := now.Format(time.RFC3339Nano)

	entry, err := json.Marshal(models.BonusEntry{TS: ts, Game: models.GameBonus, Prize: amount})
	if err != nil {
		return nil, err
	}

	if err := e.store.ApplyBonus(id, amount, ts, entry); err != nil {
		return nil, err
	}

	if e.broadcaster != nil {
		e.broadcaster.BroadcastBonus(id, amount)
	}

	return &BonusResult{Granted: true, Amount: amount}, nil
}
