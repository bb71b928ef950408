package handlers

import (
	"time"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func successResponse(message string, data any) Response {
	return Response{Success: true, Message: message, Data: data}
}

func errorResponse(message string) Response {
	return Response{Success: false, Error: message}
}

// RegisterRequest defines the payload for the register endpoint.
type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Role            string `json:"role"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserSummary describes the account view returned on login.
type UserSummary struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Username         string    `json:"username"`
	Role             string    `json:"role"`
	CreatedAt        time.Time `json:"createdAt"`
	AttemptedQuizzes []string  `json:"attemptedQuizzes"`
}

// LoginData carries the session token and account view of a successful login.
type LoginData struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

// TopicRequest defines the payload for creating a topic.
type TopicRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// TopicUpdateRequest defines the partial-update payload for a topic.
type TopicUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// TopicView is the API representation of a topic.
type TopicView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ModuleRequest defines the payload for creating a module.
type ModuleRequest struct {
	TopicID   string  `json:"topicId"`
	Name      string  `json:"name"`
	Content   string  `json:"content"`
	SortOrder int     `json:"sortOrder"`
	QuizID    *string `json:"quizId"`
}

// ModuleUpdateRequest defines the partial-update payload for a module. An
// empty quizId clears the quiz link.
type ModuleUpdateRequest struct {
	Name      *string `json:"name"`
	Content   *string `json:"content"`
	SortOrder *int    `json:"sortOrder"`
	QuizID    *string `json:"quizId"`
}

// ModuleView is the API representation of a module.
type ModuleView struct {
	ID        string    `json:"id"`
	TopicID   string    `json:"topicId"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	SortOrder int       `json:"sortOrder"`
	QuizID    *string   `json:"quizId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// QuizRequest defines the payload for creating a quiz.
type QuizRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	TimerSeconds int    `json:"timerSeconds"`
}

// QuizView is the API representation of a quiz.
type QuizView struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	TimerSeconds int       `json:"timerSeconds"`
	CreatedAt    time.Time `json:"createdAt"`
}

// QuizUpdateRequest defines the partial-update payload for a quiz.
type QuizUpdateRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	TimerSeconds *int    `json:"timerSeconds"`
}

// AdminQuizView extends QuizView with the recorded attempt total.
type AdminQuizView struct {
	QuizView
	AttemptCount int64 `json:"attemptCount"`
}

// AttemptRequest defines the payload for recording a quiz attempt.
type AttemptRequest struct {
	Score int `json:"score"`
}

// AttemptView is the API representation of a quiz attempt.
type AttemptView struct {
	ID        string    `json:"id"`
	QuizID    string    `json:"quizId"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"createdAt"`
}

// AdminAttemptView is the administrative representation of a quiz attempt,
// carrying the attempting account.
type AdminAttemptView struct {
	ID        string    `json:"id"`
	AccountID string    `json:"accountId"`
	QuizID    string    `json:"quizId"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"createdAt"`
}

// HealthResponse reports service liveness.
type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}
