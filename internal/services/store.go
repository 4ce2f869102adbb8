package services

import (
	"encoding/json"

	"bigwin-backend/internal/models"
)

// AccountStore is the slice of the document store the engines need. The
// Apply* methods must commit all of their writes atomically; validation
// happens before they are called and nothing is committed on failure.
type AccountStore interface {
	EnsureAccount(id, name, referrer string) (created bool, err error)
	GetAccount(id string) (*models.Account, bool, error)
	GetStars(id string) (int64, bool, error)
	GetLastBonusTS(id string) (string, error)
	ApplyBonus(id string, amount int64, ts string, entry []byte) error
	ApplyWager(id, game string, delta int64, entry []byte) error
	GetRanking(limit int64) ([]models.RankingRow, error)
	GetHistory(id string) ([]json.RawMessage, error)
	GetReferrals(id string) ([]string, error)
}

// Broadcaster receives settled events for the live feed. Implementations
// must not block.
type Broadcaster interface {
	BroadcastBonus(userID string, amount int64)
	BroadcastWager(userID, game string, bet, prize int64, win bool)
}
