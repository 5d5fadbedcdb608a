package app

import (
	"context"

	"go.uber.org/zap"

	"microblog/internal/model"
)

// Message lifecycle event actions, as published after successful
// mutations.
const (
	EventMessageCreated = "created"
	EventMessageUpdated = "updated"
	EventMessageDeleted = "deleted"
)

// MessageStore is the persistence seam for messages. Implementations
// own validation and report every failure as nil or an empty slice.
type MessageStore interface {
	ListAll() []model.Message
	Create(candidate model.Message) *model.Message
	Get(id uint) *model.Message
	Delete(id uint) *model.Message
	Update(targetID uint, patch model.Message) *model.Message
	ListByAuthor(authorID uint) []model.Message
}

// TimelineCache fronts per-author listings. A nil cache disables
// caching entirely.
type TimelineCache interface {
	GetTimeline(ctx context.Context, authorID uint) ([]model.Message, bool, error)
	SetTimeline(ctx context.Context, authorID uint, messages []model.Message) error
	DeleteTimeline(ctx context.Context, authorID uint) error
}

// EventPublisher emits message lifecycle events. A nil publisher
// disables publication.
type EventPublisher interface {
	Publish(ctx context.Context, action string, msg model.Message) error
}

// MessageService passes every call through to its store unchanged.
// Around successful mutations it additionally invalidates the author
// timeline cache and publishes a lifecycle event; both are best-effort
// and never change the business outcome.
type MessageService struct {
	store  MessageStore
	cache  TimelineCache
	events EventPublisher
	log    *zap.Logger
}

func NewMessageService(store MessageStore, cache TimelineCache, events EventPublisher, log *zap.Logger) *MessageService {
	if log == nil {
		log = zap.NewNop()
	}
	return &MessageService{
		store:  store,
		cache:  cache,
		events: events,
		log:    log,
	}
}

func (s *MessageService) ListAll() []model.Message {
	return s.store.ListAll()
}

func (s *MessageService) Create(ctx context.Context, candidate model.Message) *model.Message {
	created := s.store.Create(candidate)
	if created == nil {
		return nil
	}
	s.invalidateTimeline(ctx, created.PostedBy)
	s.publish(ctx, EventMessageCreated, *created)
	return created
}

func (s *MessageService) Get(id uint) *model.Message {
	return s.store.Get(id)
}

func (s *MessageService) Delete(ctx context.Context, id uint) *model.Message {
	deleted := s.store.Delete(id)
	if deleted == nil {
		return nil
	}
	s.invalidateTimeline(ctx, deleted.PostedBy)
	s.publish(ctx, EventMessageDeleted, *deleted)
	return deleted
}

func (s *MessageService) Update(ctx context.Context, targetID uint, patch model.Message) *model.Message {
	updated := s.store.Update(targetID, patch)
	if updated == nil {
		return nil
	}
	s.invalidateTimeline(ctx, updated.PostedBy)
	s.publish(ctx, EventMessageUpdated, *updated)
	return updated
}

func (s *MessageService) ListByAuthor(ctx context.Context, authorID uint) []model.Message {
	if s.cache != nil {
		cached, hit, err := s.cache.GetTimeline(ctx, authorID)
		if err != nil {
			s.log.Debug("timeline cache read failed", zap.Uint("author_id", authorID), zap.Error(err))
		} else if hit {
			return cached
		}
	}

	messages := s.store.ListByAuthor(authorID)
	if s.cache != nil {
		if err := s.cache.SetTimeline(ctx, authorID, messages); err != nil {
			s.log.Debug("timeline cache write failed", zap.Uint("author_id", authorID), zap.Error(err))
		}
	}
	return messages
}

func (s *MessageService) invalidateTimeline(ctx context.Context, authorID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteTimeline(ctx, authorID); err != nil {
		s.log.Debug("timeline cache invalidate failed", zap.Uint("author_id", authorID), zap.Error(err))
	}
}

func (s *MessageService) publish(ctx context.Context, action string, msg model.Message) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, action, msg); err != nil {
		s.log.Warn("publish message event failed",
			zap.String("action", action),
			zap.Uint("message_id", msg.ID),
			zap.Error(err))
	}
}
