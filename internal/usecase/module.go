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

// ErrModuleNotFound indicates the module does not exist.
var ErrModuleNotFound = errors.New("module not found")

// ModuleInput carries the fields for creating a module.
type ModuleInput struct {
	TopicID   string
	Name      string
	Content   string
	SortOrder int
	QuizID    *string
	CreatedBy *string
}

// ModuleUpdate carries the partial-update fields for a module. A non-nil
// QuizID pointing at an empty string clears the quiz link.
type ModuleUpdate struct {
	Name      *string
	Content   *string
	SortOrder *int
	QuizID    *string
}

// ModuleService handles learning module management.
type ModuleService struct {
	modules port.ModuleRepository
	topics  port.TopicRepository
	quizzes port.QuizRepository
}

// NewModuleService constructs a module service.
func NewModuleService(modules port.ModuleRepository, topics port.TopicRepository, quizzes port.QuizRepository) *ModuleService {
	return &ModuleService{modules: modules, topics: topics, quizzes: quizzes}
}

// Create stores a new module after validating its topic and optional quiz
// reference.
func (s *ModuleService) Create(ctx context.Context, input ModuleInput) (domain.Module, error) {
	input.TopicID = strings.TrimSpace(input.TopicID)
	input.Name = strings.TrimSpace(input.Name)

	if input.TopicID == "" || input.Name == "" || strings.TrimSpace(input.Content) == "" {
		return domain.Module{}, ErrMissingFields
	}

	if _, err := s.topics.GetByID(ctx, input.TopicID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Module{}, ErrTopicNotFound
		}
		return domain.Module{}, fmt.Errorf("check topic: %w", err)
	}

	quizID, err := s.resolveQuizRef(ctx, input.QuizID)
	if err != nil {
		return domain.Module{}, err
	}

	now := time.Now().UTC()
	module := domain.Module{
		ID:        uuid.NewString(),
		TopicID:   input.TopicID,
		Name:      input.Name,
		Content:   input.Content,
		SortOrder: input.SortOrder,
		QuizID:    quizID,
		CreatedBy: input.CreatedBy,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.modules.Create(ctx, module); err != nil {
		return domain.Module{}, fmt.Errorf("create module: %w", err)
	}

	return module, nil
}

// GetByID returns a single module.
func (s *ModuleService) GetByID(ctx context.Context, id string) (*domain.Module, error) {
	module, err := s.modules.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrModuleNotFound
		}
		return nil, fmt.Errorf("get module: %w", err)
	}
	return module, nil
}

// ListByTopic returns the topic's modules in display order.
func (s *ModuleService) ListByTopic(ctx context.Context, topicID string) ([]domain.Module, error) {
	if _, err := s.topics.GetByID(ctx, topicID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTopicNotFound
		}
		return nil, fmt.Errorf("check topic: %w", err)
	}

	modules, err := s.modules.ListByTopic(ctx, topicID)
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	return modules, nil
}

// Update applies a partial update to a module.
func (s *ModuleService) Update(ctx context.Context, id string, update ModuleUpdate) (*domain.Module, error) {
	module, err := s.modules.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrModuleNotFound
		}
		return nil, fmt.Errorf("get module: %w", err)
	}

	if update.Name != nil {
		trimmed := strings.TrimSpace(*update.Name)
		if trimmed == "" {
			return nil, ErrMissingFields
		}
		module.Name = trimmed
	}
	if update.Content != nil {
		module.Content = *update.Content
	}
	if update.SortOrder != nil {
		module.SortOrder = *update.SortOrder
	}
	if update.QuizID != nil {
		quizID, err := s.resolveQuizRef(ctx, update.QuizID)
		if err != nil {
			return nil, err
		}
		module.QuizID = quizID
	}
	module.UpdatedAt = time.Now().UTC()

	if err := s.modules.Update(ctx, *module); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrModuleNotFound
		}
		return nil, fmt.Errorf("update module: %w", err)
	}

	return module, nil
}

// Delete removes a module.
func (s *ModuleService) Delete(ctx context.Context, id string) error {
	if err := s.modules.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrModuleNotFound
		}
		return fmt.Errorf("delete module: %w", err)
	}
	return nil
}

// resolveQuizRef normalizes an optional quiz reference. An empty value clears
// the link; a non-empty value must name an existing quiz.
func (s *ModuleService) resolveQuizRef(ctx context.Context, ref *string) (*string, error) {
	if ref == nil {
		return nil, nil
	}

	quizID := strings.TrimSpace(*ref)
	if quizID == "" {
		return nil, nil
	}

	if _, err := s.quizzes.GetByID(ctx, quizID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("check quiz: %w", err)
	}

	return &quizID, nil
}
