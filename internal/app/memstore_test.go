package app

import (
	"context"
	"strings"

	"microblog/internal/model"
)

// In-memory stores implementing the same absent-result contract as the
// gorm-backed repositories, so services can be exercised without a
// database.

type memAccountStore struct {
	nextID   uint
	accounts []model.Account
}

func (s *memAccountStore) ListAll() []model.Account {
	return append([]model.Account{}, s.accounts...)
}

func (s *memAccountStore) Register(candidate model.Account) *model.Account {
	if !memCredentialShapeOK(candidate) {
		return nil
	}
	for _, a := range s.accounts {
		if a.Username == candidate.Username {
			return nil
		}
	}
	s.nextID++
	account := model.Account{ID: s.nextID, Username: candidate.Username, Password: candidate.Password}
	s.accounts = append(s.accounts, account)
	return &account
}

func (s *memAccountStore) Authenticate(candidate model.Account) *model.Account {
	if !memCredentialShapeOK(candidate) {
		return nil
	}
	for _, a := range s.accounts {
		if a.Username == candidate.Username && a.Password == candidate.Password {
			found := a
			return &found
		}
	}
	return nil
}

func memCredentialShapeOK(a model.Account) bool {
	return strings.TrimSpace(a.Username) != "" && len(a.Password) >= 4
}

type memMessageStore struct {
	authors  *memAccountStore
	nextID   uint
	messages []model.Message

	listByAuthorCalls int
}

func (s *memMessageStore) ListAll() []model.Message {
	return append([]model.Message{}, s.messages...)
}

func (s *memMessageStore) Create(candidate model.Message) *model.Message {
	if !memTextOK(candidate.MessageText) {
		return nil
	}
	if !s.authorExists(candidate.PostedBy) {
		return nil
	}
	s.nextID++
	message := model.Message{
		ID:              s.nextID,
		PostedBy:        candidate.PostedBy,
		MessageText:     candidate.MessageText,
		TimePostedEpoch: candidate.TimePostedEpoch,
	}
	s.messages = append(s.messages, message)
	return &message
}

func (s *memMessageStore) Get(id uint) *model.Message {
	for _, m := range s.messages {
		if m.ID == id {
			found := m
			return &found
		}
	}
	return nil
}

func (s *memMessageStore) Delete(id uint) *model.Message {
	for i, m := range s.messages {
		if m.ID == id {
			deleted := m
			s.messages = append(s.messages[:i], s.messages[i+1:]...)
			return &deleted
		}
	}
	return nil
}

func (s *memMessageStore) Update(targetID uint, patch model.Message) *model.Message {
	if !memTextOK(patch.MessageText) {
		return nil
	}
	for i, m := range s.messages {
		if m.ID == targetID {
			s.messages[i].MessageText = patch.MessageText
			merged := s.messages[i]
			return &merged
		}
	}
	return nil
}

func (s *memMessageStore) ListByAuthor(authorID uint) []model.Message {
	s.listByAuthorCalls++
	result := []model.Message{}
	for _, m := range s.messages {
		if m.PostedBy == authorID {
			result = append(result, m)
		}
	}
	return result
}

func (s *memMessageStore) authorExists(id uint) bool {
	if s.authors == nil {
		return false
	}
	for _, a := range s.authors.accounts {
		if a.ID == id {
			return true
		}
	}
	return false
}

func memTextOK(text string) bool {
	return strings.TrimSpace(text) != "" && len(text) <= 255
}

// recordingCache is a TimelineCache fake tracking invalidations and
// serving a primed timeline.
type recordingCache struct {
	timelines   map[uint][]model.Message
	invalidated []uint
	setCalls    int
}

func newRecordingCache() *recordingCache {
	return &recordingCache{timelines: map[uint][]model.Message{}}
}

func (c *recordingCache) GetTimeline(_ context.Context, authorID uint) ([]model.Message, bool, error) {
	cached, ok := c.timelines[authorID]
	return cached, ok, nil
}

func (c *recordingCache) SetTimeline(_ context.Context, authorID uint, messages []model.Message) error {
	c.setCalls++
	c.timelines[authorID] = messages
	return nil
}

func (c *recordingCache) DeleteTimeline(_ context.Context, authorID uint) error {
	c.invalidated = append(c.invalidated, authorID)
	delete(c.timelines, authorID)
	return nil
}

type recordedEvent struct {
	action string
	msg    model.Message
}

type recordingPublisher struct {
	events []recordedEvent
}

func (p *recordingPublisher) Publish(_ context.Context, action string, msg model.Message) error {
	p.events = append(p.events, recordedEvent{action: action, msg: msg})
	return nil
}
