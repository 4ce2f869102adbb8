package services

import (
	"context"
	"encoding/json"

	"bigwin-backend/internal/models"
)

// QueryService serves the read-only projections: leaderboard, per-user
// history and referrals. None of its methods create or mutate accounts.
type QueryService struct {
	store       AccountStore
	refLinkBase string
}

func NewQueryService(store AccountStore, refLinkBase string) *QueryService {
	return &QueryService{
		store:       store,
		refLinkBase: refLinkBase,
	}
}

// Ranking returns up to limit accounts ordered by stars descending.
func (s *QueryService) Ranking(ctx context.Context, limit int64) ([]models.RankingRow, error) {
	return s.store.GetRanking(limit)
}

// History returns the full ledger for an account in insertion order. A
// never-seen id yields an empty history, not an error.
func (s *QueryService) History(ctx context.Context, id string) ([]json.RawMessage, error) {
	return s.store.GetHistory(id)
}

// Referrals returns the referred ids plus the share link. The link is
// derived from the id alone and is returned whether or not the account
// exists.
func (s *QueryService) Referrals(ctx context.Context, id string) ([]string, string, error) {
	refs, err := s.store.GetReferrals(id)
	if err != nil {
		return nil, "", err
	}
	return refs, s.RefLink(id), nil
}

func (s *QueryService) RefLink(id string) string {
	return s.refLinkBase + id
}
