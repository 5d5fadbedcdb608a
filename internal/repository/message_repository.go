package repository

import (
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"microblog/internal/model"
)

const maxMessageTextLen = 255

// MessageRepository owns validation and persistence for messages. Same
// absent-result contract as AccountRepository: nil (or an empty slice)
// for validation failure, missing rows and storage errors alike.
type MessageRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewMessageRepository(db *gorm.DB, log *zap.Logger) *MessageRepository {
	return &MessageRepository{db: db, log: log}
}

func (r *MessageRepository) ListAll() []model.Message {
	messages := []model.Message{}
	if err := r.db.Order("message_id").Find(&messages).Error; err != nil {
		r.log.Warn("list messages failed", zap.Error(err))
		return []model.Message{}
	}
	return messages
}

// Create persists the candidate if its text is valid and its author
// exists. The existence check and the insert share one transaction.
// TimePostedEpoch is taken verbatim from the candidate, never
// server-generated.
func (r *MessageRepository) Create(candidate model.Message) *model.Message {
	if !validMessageText(candidate.MessageText) {
		return nil
	}

	var created *model.Message
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var authors int64
		if err := tx.Model(&model.Account{}).
			Where("account_id = ?", candidate.PostedBy).
			Count(&authors).Error; err != nil {
			return err
		}
		if authors == 0 {
			return nil
		}

		message := model.Message{
			PostedBy:        candidate.PostedBy,
			MessageText:     candidate.MessageText,
			TimePostedEpoch: candidate.TimePostedEpoch,
		}
		if err := tx.Create(&message).Error; err != nil {
			return err
		}
		created = &message
		return nil
	})
	if err != nil {
		r.log.Warn("create message failed",
			zap.Uint("posted_by", candidate.PostedBy),
			zap.Error(err))
		return nil
	}
	return created
}

func (r *MessageRepository) Get(id uint) *model.Message {
	var message model.Message
	err := r.db.First(&message, id).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Warn("get message failed", zap.Uint("message_id", id), zap.Error(err))
		}
		return nil
	}
	return &message
}

// Delete removes the message and returns it as it existed before
// removal. Deleting an id that does not exist is a no-op reporting
// absence, so repeated deletes converge to nil. The target is resolved
// with a locking read so a concurrent delete of the same row waits and
// then observes the removal instead of a stale snapshot.
func (r *MessageRepository) Delete(id uint) *model.Message {
	var deleted *model.Message
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var message model.Message
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&message, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := tx.Delete(&model.Message{}, id).Error; err != nil {
			return err
		}
		deleted = &message
		return nil
	})
	if err != nil {
		r.log.Warn("delete message failed", zap.Uint("message_id", id), zap.Error(err))
		return nil
	}
	return deleted
}

// Update replaces only the message text; author and timestamp stay
// untouched. The target is resolved fresh with a locking read, so a
// concurrent delete either waits behind this transaction or has
// already removed the row and the update consistently yields nil; the
// merged row is re-fetched before returning.
func (r *MessageRepository) Update(targetID uint, patch model.Message) *model.Message {
	if !validMessageText(patch.MessageText) {
		return nil
	}

	var updated *model.Message
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var target model.Message
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&target, targetID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := tx.Model(&model.Message{}).
			Where("message_id = ?", targetID).
			Update("message_text", patch.MessageText).Error; err != nil {
			return err
		}

		var merged model.Message
		if err := tx.First(&merged, targetID).Error; err != nil {
			return err
		}
		updated = &merged
		return nil
	})
	if err != nil {
		r.log.Warn("update message failed", zap.Uint("message_id", targetID), zap.Error(err))
		return nil
	}
	return updated
}

func (r *MessageRepository) ListByAuthor(authorID uint) []model.Message {
	messages := []model.Message{}
	if err := r.db.
		Where("posted_by = ?", authorID).
		Order("message_id").
		Find(&messages).Error; err != nil {
		r.log.Warn("list messages by author failed",
			zap.Uint("posted_by", authorID),
			zap.Error(err))
		return []model.Message{}
	}
	return messages
}

func validMessageText(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	return len(text) <= maxMessageTextLen
}
