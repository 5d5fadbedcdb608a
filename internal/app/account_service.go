package app

import (
	"microblog/internal/model"
)

// AccountStore is the persistence seam for accounts. Implementations
// own all validation (blank username, password length, uniqueness) and
// report every failure as nil.
type AccountStore interface {
	ListAll() []model.Account
	Register(candidate model.Account) *model.Account
	Authenticate(candidate model.Account) *model.Account
}

// AccountService is a pass-through facade over an AccountStore; it
// exists so the HTTP layer never depends on a concrete store.
type AccountService struct {
	store AccountStore
}

func NewAccountService(store AccountStore) *AccountService {
	return &AccountService{store: store}
}

func (s *AccountService) ListAll() []model.Account {
	return s.store.ListAll()
}

func (s *AccountService) Register(candidate model.Account) *model.Account {
	return s.store.Register(candidate)
}

func (s *AccountService) Authenticate(candidate model.Account) *model.Account {
	return s.store.Authenticate(candidate)
}
