package repository

import (
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"microblog/internal/model"
)

const minPasswordLen = 4

// AccountRepository owns validation and persistence for accounts.
// Validation failures, lookup misses and storage errors all surface as
// a nil result; storage errors are additionally logged here, callers
// never see them.
type AccountRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewAccountRepository(db *gorm.DB, log *zap.Logger) *AccountRepository {
	return &AccountRepository{db: db, log: log}
}

func (r *AccountRepository) ListAll() []model.Account {
	accounts := []model.Account{}
	if err := r.db.Order("account_id").Find(&accounts).Error; err != nil {
		r.log.Warn("list accounts failed", zap.Error(err))
		return []model.Account{}
	}
	return accounts
}

// Register persists the candidate if its username is non-blank, its
// password long enough, and no account with that username exists yet.
// The pre-insert lookup gives the common duplicate its answer without
// an error round-trip; the unique index on username is what actually
// decides a concurrent duplicate race — the losing insert fails with a
// duplicate-key error and surfaces as absent, never an overwrite.
func (r *AccountRepository) Register(candidate model.Account) *model.Account {
	if !validCredentialShape(candidate) {
		return nil
	}

	var created *model.Account
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Account
		err := tx.Where("username = ?", candidate.Username).First(&existing).Error
		if err == nil {
			// username taken
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		account := model.Account{
			Username: candidate.Username,
			Password: candidate.Password,
		}
		if err := tx.Create(&account).Error; err != nil {
			return err
		}
		created = &account
		return nil
	})
	if err != nil {
		r.log.Warn("register account failed",
			zap.String("username", candidate.Username),
			zap.Error(err))
		return nil
	}
	return created
}

// Authenticate resolves an account by exact username and password
// equality. Read-only.
func (r *AccountRepository) Authenticate(candidate model.Account) *model.Account {
	if !validCredentialShape(candidate) {
		return nil
	}

	var account model.Account
	err := r.db.
		Where("username = ? AND password = ?", candidate.Username, candidate.Password).
		First(&account).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Warn("authenticate account failed",
				zap.String("username", candidate.Username),
				zap.Error(err))
		}
		return nil
	}
	return &account
}

func validCredentialShape(a model.Account) bool {
	if strings.TrimSpace(a.Username) == "" {
		return false
	}
	return len(a.Password) >= minPasswordLen
}
