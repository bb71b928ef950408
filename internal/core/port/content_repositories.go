package port

import (
	"context"

	"github.com/rumonkh0/quizbackend/internal/core/domain"
)

// TopicRepository persists topics.
type TopicRepository interface {
	Create(ctx context.Context, topic domain.Topic) error
	GetByID(ctx context.Context, id string) (*domain.Topic, error)
	List(ctx context.Context) ([]domain.Topic, error)
	Update(ctx context.Context, topic domain.Topic) error
	// DeleteCascade removes the topic together with all of its modules in a
	// single transaction and returns the number of modules deleted.
	DeleteCascade(ctx context.Context, id string) (int64, error)
}

// ModuleRepository persists modules.
type ModuleRepository interface {
	Create(ctx context.Context, module domain.Module) error
	GetByID(ctx context.Context, id string) (*domain.Module, error)
	ListByTopic(ctx context.Context, topicID string) ([]domain.Module, error)
	Update(ctx context.Context, module domain.Module) error
	Delete(ctx context.Context, id string) error
}

// QuizRepository persists quizzes and quiz attempts.
type QuizRepository interface {
	Create(ctx context.Context, quiz domain.Quiz) error
	GetByID(ctx context.Context, id string) (*domain.Quiz, error)
	List(ctx context.Context) ([]domain.Quiz, error)
	// ListWithAttemptCounts returns every quiz with its recorded attempt
	// total, for the administrative listing.
	ListWithAttemptCounts(ctx context.Context) ([]domain.QuizOverview, error)
	Update(ctx context.Context, quiz domain.Quiz) error
	Delete(ctx context.Context, id string) error
	CreateAttempt(ctx context.Context, attempt domain.QuizAttempt) error
	// AttemptedQuizIDs returns the distinct quiz identifiers the account has
	// attempted, oldest first. Returns an empty slice when there are none.
	AttemptedQuizIDs(ctx context.Context, accountID string) ([]string, error)
	ListAttemptsByAccount(ctx context.Context, accountID string) ([]domain.QuizAttempt, error)
	ListAttemptsByQuiz(ctx context.Context, quizID string) ([]domain.QuizAttempt, error)
}
