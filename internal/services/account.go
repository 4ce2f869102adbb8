package services

import (
	"context"
	"fmt"

	"bigwin-backend/internal/models"
)

// AccountService owns account lifecycle: every endpoint goes through Ensure
// before touching balances, so an account always exists by the time an
// engine mutates it.
type AccountService struct {
	store AccountStore
}

func NewAccountService(store AccountStore) *AccountService {
	return &AccountService{store: store}
}

// Ensure creates the account with zeroed defaults on first contact and
// returns the current document. An existing account is never modified; name
// and referrer only take effect on creation.
func (s *AccountService) Ensure(ctx context.Context, id, name, referrer string) (*models.Account, error) {
	if _, err := s.store.EnsureAccount(id, name, referrer); err != nil {
		return nil, err
	}

	account, ok, err := s.store.GetAccount(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("account %s not readable after ensure", id)
	}

	return account, nil
}
