package postgres

import "github.com/jackc/pgx/v5/pgxpool"

// Repositories groups concrete PostgreSQL repository implementations.
type Repositories struct {
	Accounts *AccountRepository
	Topics   *TopicRepository
	Modules  *ModuleRepository
	Quizzes  *QuizRepository
}

// NewRepositories wires all repositories backed by the provided pool.
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Accounts: NewAccountRepository(pool),
		Topics:   NewTopicRepository(pool),
		Modules:  NewModuleRepository(pool),
		Quizzes:  NewQuizRepository(pool),
	}
}
