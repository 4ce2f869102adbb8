package models

import (
	"encoding/json"
	"time"
)

const (
	GameDice    = "dice"
	GameDarts   = "darts"
	GameBowling = "bowling"
	GameSlots   = "slots"
	GameBonus   = "bonus"
)

// GameNames are the playable wager games; "bonus" is a ledger label only.
var GameNames = []string{GameDice, GameDarts, GameBowling, GameSlots}

func IsValidGame(game string) bool {
	for _, g := range GameNames {
		if g == game {
			return true
		}
	}
	return false
}

const DefaultName = "Unknown"

// Account is the wire shape of a user document. History entries are kept as
// raw JSON so the stored shape is returned verbatim.
type Account struct {
	Name        string            `json:"name"`
	Stars       int64             `json:"stars"`
	Language    string            `json:"language"`
	ReferredBy  *string           `json:"referred_by"`
	Referrals   []string          `json:"referrals"`
	History     []json.RawMessage `json:"history"`
	Games       map[string]int64  `json:"games"`
	GamesTotal  int64             `json:"games_total"`
	Joined      string            `json:"joined"`
	LastBonusTS string            `json:"last_bonus_ts,omitempty"`
}

func NewAccount(name string) *Account {
	if name == "" {
		name = DefaultName
	}

	games := make(map[string]int64, len(GameNames))
	for _, g := range GameNames {
		games[g] = 0
	}

	return &Account{
		Name:      name,
		Stars:     0,
		Language:  "es",
		Referrals: []string{},
		History:   []json.RawMessage{},
		Games:     games,
		Joined:    NowISO(),
	}
}

// BonusEntry is the ledger record of a daily bonus grant.
type BonusEntry struct {
	TS    string `json:"ts"`
	Game  string `json:"game"`
	Prize int64  `json:"prize"`
}

// WagerEntry is the ledger record of a settled wager. The "win" field carries
// the numeric prize (0 on loss), not a boolean; the field name is part of the
// wire contract and must not change.
type WagerEntry struct {
	TS   string `json:"ts"`
	Game string `json:"game"`
	Bet  int64  `json:"bet"`
	Win  int64  `json:"win"`
}

// RankingRow is one leaderboard position.
type RankingRow struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Stars int64  `json:"stars"`
}

func NowISO() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// ParseISO accepts the timestamps this service writes as well as plain
// RFC3339 values written by older deployments.
func ParseISO(ts string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return time.Parse(time.RFC3339, ts)
	}
	return t, nil
}
