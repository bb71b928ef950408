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

// ErrQuizNotFound indicates the quiz does not exist.
var ErrQuizNotFound = errors.New("quiz not found")

// QuizUpdate carries the partial-update fields for a quiz.
type QuizUpdate struct {
	Title        *string
	Description  *string
	TimerSeconds *int
}

// QuizService handles quizzes and quiz attempts.
type QuizService struct {
	quizzes port.QuizRepository
}

// NewQuizService constructs a quiz service.
func NewQuizService(quizzes port.QuizRepository) *QuizService {
	return &QuizService{quizzes: quizzes}
}

// Create stores a new quiz. Title is required.
func (s *QuizService) Create(ctx context.Context, title, description string, timerSeconds int, createdBy *string) (domain.Quiz, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Quiz{}, ErrMissingFields
	}

	quiz := domain.Quiz{
		ID:           uuid.NewString(),
		Title:        title,
		Description:  strings.TrimSpace(description),
		TimerSeconds: timerSeconds,
		CreatedBy:    createdBy,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.quizzes.Create(ctx, quiz); err != nil {
		return domain.Quiz{}, fmt.Errorf("create quiz: %w", err)
	}

	return quiz, nil
}

// GetByID returns a single quiz.
func (s *QuizService) GetByID(ctx context.Context, id string) (*domain.Quiz, error) {
	quiz, err := s.quizzes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("get quiz: %w", err)
	}
	return quiz, nil
}

// List returns all quizzes.
func (s *QuizService) List(ctx context.Context) ([]domain.Quiz, error) {
	quizzes, err := s.quizzes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	return quizzes, nil
}

// AdminList returns every quiz with its attempt total.
func (s *QuizService) AdminList(ctx context.Context) ([]domain.QuizOverview, error) {
	overviews, err := s.quizzes.ListWithAttemptCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list quiz overviews: %w", err)
	}
	return overviews, nil
}

// Update applies a partial update to a quiz.
func (s *QuizService) Update(ctx context.Context, id string, update QuizUpdate) (*domain.Quiz, error) {
	quiz, err := s.quizzes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("get quiz: %w", err)
	}

	if update.Title != nil {
		trimmed := strings.TrimSpace(*update.Title)
		if trimmed == "" {
			return nil, ErrMissingFields
		}
		quiz.Title = trimmed
	}
	if update.Description != nil {
		quiz.Description = strings.TrimSpace(*update.Description)
	}
	if update.TimerSeconds != nil {
		quiz.TimerSeconds = *update.TimerSeconds
	}

	if err := s.quizzes.Update(ctx, *quiz); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("update quiz: %w", err)
	}

	return quiz, nil
}

// Delete removes a quiz.
func (s *QuizService) Delete(ctx context.Context, id string) error {
	if err := s.quizzes.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrQuizNotFound
		}
		return fmt.Errorf("delete quiz: %w", err)
	}
	return nil
}

// Attempt records a quiz attempt for the account. Repeat attempts at the same
// quiz are allowed.
func (s *QuizService) Attempt(ctx context.Context, accountID, quizID string, score int) (domain.QuizAttempt, error) {
	if accountID == "" || strings.TrimSpace(quizID) == "" {
		return domain.QuizAttempt{}, ErrMissingFields
	}

	if _, err := s.quizzes.GetByID(ctx, quizID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.QuizAttempt{}, ErrQuizNotFound
		}
		return domain.QuizAttempt{}, fmt.Errorf("check quiz: %w", err)
	}

	attempt := domain.QuizAttempt{
		ID:        uuid.NewString(),
		AccountID: accountID,
		QuizID:    quizID,
		Score:     score,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.quizzes.CreateAttempt(ctx, attempt); err != nil {
		return domain.QuizAttempt{}, fmt.Errorf("create attempt: %w", err)
	}

	return attempt, nil
}

// ListAttempts returns the account's attempts, newest first.
func (s *QuizService) ListAttempts(ctx context.Context, accountID string) ([]domain.QuizAttempt, error) {
	attempts, err := s.quizzes.ListAttemptsByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	return attempts, nil
}

// ListQuizAttempts returns every attempt recorded against the quiz, newest
// first. The quiz must exist.
func (s *QuizService) ListQuizAttempts(ctx context.Context, quizID string) ([]domain.QuizAttempt, error) {
	if _, err := s.quizzes.GetByID(ctx, quizID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("check quiz: %w", err)
	}

	attempts, err := s.quizzes.ListAttemptsByQuiz(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("list quiz attempts: %w", err)
	}
	return attempts, nil
}
