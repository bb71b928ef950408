package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	uuid "github.com/google/uuid"

	"github.com/rumonkh0/quizbackend/internal/core/domain"
	"github.com/rumonkh0/quizbackend/internal/core/port"
	"github.com/rumonkh0/quizbackend/internal/repository"
)

var (
	// ErrTopicNotFound indicates the topic does not exist.
	ErrTopicNotFound = errors.New("topic not found")
	// ErrTopicNameTaken indicates another topic already uses the name.
	ErrTopicNameTaken = errors.New("topic name already exists")
)

// TopicService handles topic management.
type TopicService struct {
	topics port.TopicRepository
}

// NewTopicService constructs a topic service.
func NewTopicService(topics port.TopicRepository) *TopicService {
	return &TopicService{topics: topics}
}

// Create stores a new topic. Name is required and unique.
func (s *TopicService) Create(ctx context.Context, name, description string, createdBy *string) (domain.Topic, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Topic{}, ErrMissingFields
	}

	now := time.Now().UTC()
	topic := domain.Topic{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.topics.Create(ctx, topic); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.Topic{}, ErrTopicNameTaken
		}
		return domain.Topic{}, fmt.Errorf("create topic: %w", err)
	}

	return topic, nil
}

// GetByID returns a single topic.
func (s *TopicService) GetByID(ctx context.Context, id string) (*domain.Topic, error) {
	topic, err := s.topics.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTopicNotFound
		}
		return nil, fmt.Errorf("get topic: %w", err)
	}
	return topic, nil
}

// List returns all topics.
func (s *TopicService) List(ctx context.Context) ([]domain.Topic, error) {
	topics, err := s.topics.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	return topics, nil
}

// Update applies a partial update to name and description.
func (s *TopicService) Update(ctx context.Context, id string, name, description *string) (*domain.Topic, error) {
	topic, err := s.topics.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTopicNotFound
		}
		return nil, fmt.Errorf("get topic: %w", err)
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, ErrMissingFields
		}
		topic.Name = trimmed
	}
	if description != nil {
		topic.Description = strings.TrimSpace(*description)
	}
	topic.UpdatedAt = time.Now().UTC()

	if err := s.topics.Update(ctx, *topic); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrTopicNameTaken
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTopicNotFound
		}
		return nil, fmt.Errorf("update topic: %w", err)
	}

	return topic, nil
}

// Delete removes the topic and all of its modules, returning the number of
// modules removed alongside.
func (s *TopicService) Delete(ctx context.Context, id string) (int64, error) {
	deleted, err := s.topics.DeleteCascade(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrTopicNotFound
		}
		return 0, fmt.Errorf("delete topic: %w", err)
	}
	return deleted, nil
}
