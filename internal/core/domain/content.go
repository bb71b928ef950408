package domain

import "time"

// Topic groups an ordered set of learning modules under a unique name.
type Topic struct {
	ID          string
	Name        string
	Description string
	CreatedBy   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Module is a unit of learning content within a topic. QuizID is an
// explicit nullable reference: nil means the module has no quiz attached.
type Module struct {
	ID        string
	TopicID   string
	Name      string
	Content   string
	SortOrder int
	QuizID    *string
	CreatedBy *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Quiz is an assessment optionally linked from a module.
type Quiz struct {
	ID           string
	Title        string
	Description  string
	TimerSeconds int
	CreatedBy    *string
	CreatedAt    time.Time
}

// QuizOverview is the administrative view of a quiz: the quiz itself plus
// how many attempts have been recorded against it.
type QuizOverview struct {
	Quiz
	AttemptCount int64
}

// QuizAttempt records one account's attempt at a quiz.
type QuizAttempt struct {
	ID        string
	AccountID string
	QuizID    string
	Score     int
	CreatedAt time.Time
}
