package services

import (
	"encoding/json"
	"errors"
	"sort"

	"bigwin-backend/internal/models"
)

// fakeStore is an in-memory AccountStore for engine tests. It counts the
// mutating calls so tests can assert that failed validations commit nothing.
type fakeStore struct {
	accounts map[string]*fakeAccount

	ensureCalls int
	bonusCalls  int
	wagerCalls  int

	failAll bool
}

type fakeAccount struct {
	name        string
	stars       int64
	lastBonusTS string
	games       map[string]int64
	gamesTotal  int64
	history     [][]byte
	referrals   []string
	referredBy  string
	joined      string
}

func newFakeStore() *fakeStore {
	return &fakeStore{accounts: make(map[string]*fakeAccount)}
}

var errFakeStore = errors.New("store unreachable")

func (s *fakeStore) seed(id string, stars int64) *fakeAccount {
	acct := &fakeAccount{
		name:   models.DefaultName,
		stars:  stars,
		games:  map[string]int64{"dice": 0, "darts": 0, "bowling": 0, "slots": 0},
		joined: models.NowISO(),
	}
	s.accounts[id] = acct
	return acct
}

func (s *fakeStore) EnsureAccount(id, name, referrer string) (bool, error) {
	if s.failAll {
		return false, errFakeStore
	}
	s.ensureCalls++

	if _, ok := s.accounts[id]; ok {
		return false, nil
	}

	acct := s.seed(id, 0)
	if name != "" {
		acct.name = name
	}
	if referrer != "" && referrer != id {
		acct.referredBy = referrer
		if ref, ok := s.accounts[referrer]; ok {
			ref.referrals = append(ref.referrals, id)
		}
	}
	return true, nil
}

func (s *fakeStore) GetAccount(id string) (*models.Account, bool, error) {
	if s.failAll {
		return nil, false, errFakeStore
	}

	acct, ok := s.accounts[id]
	if !ok {
		return nil, false, nil
	}

	out := &models.Account{
		Name:        acct.name,
		Stars:       acct.stars,
		Language:    "es",
		Referrals:   append([]string{}, acct.referrals...),
		History:     []json.RawMessage{},
		Games:       acct.games,
		GamesTotal:  acct.gamesTotal,
		Joined:      acct.joined,
		LastBonusTS: acct.lastBonusTS,
	}
	if acct.referredBy != "" {
		ref := acct.referredBy
		out.ReferredBy = &ref
	}
	for _, entry := range acct.history {
		out.History = append(out.History, json.RawMessage(entry))
	}
	return out, true, nil
}

func (s *fakeStore) GetStars(id string) (int64, bool, error) {
	if s.failAll {
		return 0, false, errFakeStore
	}
	acct, ok := s.accounts[id]
	if !ok {
		return 0, false, nil
	}
	return acct.stars, true, nil
}

func (s *fakeStore) GetLastBonusTS(id string) (string, error) {
	if s.failAll {
		return "", errFakeStore
	}
	if acct, ok := s.accounts[id]; ok {
		return acct.lastBonusTS, nil
	}
	return "", nil
}

func (s *fakeStore) ApplyBonus(id string, amount int64, ts string, entry []byte) error {
	if s.failAll {
		return errFakeStore
	}
	s.bonusCalls++

	acct := s.accounts[id]
	acct.stars += amount
	acct.lastBonusTS = ts
	acct.history = append(acct.history, entry)
	return nil
}

func (s *fakeStore) ApplyWager(id, game string, delta int64, entry []byte) error {
	if s.failAll {
		return errFakeStore
	}
	s.wagerCalls++

	acct := s.accounts[id]
	acct.stars += delta
	acct.gamesTotal++
	acct.games[game]++
	acct.history = append(acct.history, entry)
	return nil
}

func (s *fakeStore) GetRanking(limit int64) ([]models.RankingRow, error) {
	if s.failAll {
		return nil, errFakeStore
	}

	rows := make([]models.RankingRow, 0, len(s.accounts))
	for id, acct := range s.accounts {
		rows = append(rows, models.RankingRow{ID: id, Name: acct.name, Stars: acct.stars})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Stars > rows[j].Stars })
	if int64(len(rows)) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (s *fakeStore) GetHistory(id string) ([]json.RawMessage, error) {
	if s.failAll {
		return nil, errFakeStore
	}

	history := []json.RawMessage{}
	if acct, ok := s.accounts[id]; ok {
		for _, entry := range acct.history {
			history = append(history, json.RawMessage(entry))
		}
	}
	return history, nil
}

func (s *fakeStore) GetReferrals(id string) ([]string, error) {
	if s.failAll {
		return nil, errFakeStore
	}
	if acct, ok := s.accounts[id]; ok {
		return append([]string{}, acct.referrals...), nil
	}
	return []string{}, nil
}
