package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/rumonkh0/quizbackend/internal/core/domain"
	"github.com/rumonkh0/quizbackend/internal/core/port"
	"github.com/rumonkh0/quizbackend/internal/repository"
)

var quizColumns = []string{
	"id",
	"title",
	"description",
	"timer_seconds",
	"created_by",
	"created_at",
}

// QuizRepository implements port.QuizRepository using PostgreSQL.
type QuizRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewQuizRepository constructs a repository backed by any executor that
// satisfies pgExecutor.
func NewQuizRepository(exec pgExecutor) *QuizRepository {
	return &QuizRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new quiz row.
func (r *QuizRepository) Create(ctx context.Context, quiz domain.Quiz) error {
	stmt, args, err := r.builder.Insert("edu.quizzes").
		Columns(quizColumns...).
		Values(
			quiz.ID,
			quiz.Title,
			quiz.Description,
			quiz.TimerSeconds,
			nullable(quiz.CreatedBy),
			quiz.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert quiz sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert quiz: %w", mapWriteError(err))
	}

	return nil
}

// GetByID retrieves a quiz by identifier.
func (r *QuizRepository) GetByID(ctx context.Context, id string) (*domain.Quiz, error) {
	stmt, args, err := r.builder.
		Select(quizColumns...).
		From("edu.quizzes").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select quiz sql: %w", err)
	}

	quiz, err := scanQuiz(r.exec.QueryRow(ctx, stmt, args...).Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan quiz: %w", err)
	}
	return quiz, nil
}

// List returns all quizzes, newest first.
func (r *QuizRepository) List(ctx context.Context) ([]domain.Quiz, error) {
	stmt, args, err := r.builder.
		Select(quizColumns...).
		From("edu.quizzes").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list quizzes sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query quizzes: %w", err)
	}
	defer rows.Close()

	quizzes := make([]domain.Quiz, 0)
	for rows.Next() {
		quiz, err := scanQuiz(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan quiz: %w", err)
		}
		quizzes = append(quizzes, *quiz)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quizzes: %w", err)
	}

	return quizzes, nil
}

// ListWithAttemptCounts returns every quiz joined with its attempt total,
// newest first. Quizzes without attempts count zero.
func (r *QuizRepository) ListWithAttemptCounts(ctx context.Context) ([]domain.QuizOverview, error) {
	stmt, args, err := r.builder.
		Select(
			"q.id", "q.title", "q.description", "q.timer_seconds", "q.created_by", "q.created_at",
			"COUNT(a.id)",
		).
		From("edu.quizzes q").
		LeftJoin("edu.quiz_attempts a ON a.quiz_id = q.id").
		GroupBy("q.id", "q.title", "q.description", "q.timer_seconds", "q.created_by", "q.created_at").
		OrderBy("q.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list quiz overviews sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query quiz overviews: %w", err)
	}
	defer rows.Close()

	overviews := make([]domain.QuizOverview, 0)
	for rows.Next() {
		var (
			overview  domain.QuizOverview
			createdBy sql.NullString
		)
		if err := rows.Scan(
			&overview.ID,
			&overview.Title,
			&overview.Description,
			&overview.TimerSeconds,
			&createdBy,
			&overview.CreatedAt,
			&overview.AttemptCount,
		); err != nil {
			return nil, fmt.Errorf("scan quiz overview: %w", err)
		}
		if createdBy.Valid {
			val := createdBy.String
			overview.CreatedBy = &val
		}
		overviews = append(overviews, overview)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quiz overviews: %w", err)
	}

	return overviews, nil
}

// Update rewrites the editable columns of an existing quiz.
func (r *QuizRepository) Update(ctx context.Context, quiz domain.Quiz) error {
	stmt, args, err := r.builder.Update("edu.quizzes").
		Set("title", quiz.Title).
		Set("description", quiz.Description).
		Set("timer_seconds", quiz.TimerSeconds).
		Where(squirrel.Eq{"id": quiz.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update quiz sql: %w", err)
	}

	ct, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update quiz: %w", mapWriteError(err))
	}

	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes a quiz by identifier.
func (r *QuizRepository) Delete(ctx context.Context, id string) error {
	stmt, args, err := r.builder.Delete("edu.quizzes").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete quiz sql: %w", err)
	}

	ct, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("delete quiz: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// CreateAttempt records a quiz attempt. Repeat attempts are allowed.
func (r *QuizRepository) CreateAttempt(ctx context.Context, attempt domain.QuizAttempt) error {
	stmt, args, err := r.builder.Insert("edu.quiz_attempts").
		Columns("id", "account_id", "quiz_id", "score", "created_at").
		Values(attempt.ID, attempt.AccountID, attempt.QuizID, attempt.Score, attempt.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert quiz attempt sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert quiz attempt: %w", mapWriteError(err))
	}

	return nil
}

// AttemptedQuizIDs returns the distinct quizzes the account has attempted,
// oldest attempt first.
func (r *QuizRepository) AttemptedQuizIDs(ctx context.Context, accountID string) ([]string, error) {
	stmt, args, err := r.builder.
		Select("quiz_id").
		From("edu.quiz_attempts").
		Where(squirrel.Eq{"account_id": accountID}).
		GroupBy("quiz_id").
		OrderBy("MIN(created_at) ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select attempted quizzes sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempted quizzes: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan attempted quiz id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempted quizzes: %w", err)
	}

	return ids, nil
}

// ListAttemptsByAccount returns the account's attempts, newest first.
func (r *QuizRepository) ListAttemptsByAccount(ctx context.Context, accountID string) ([]domain.QuizAttempt, error) {
	stmt, args, err := r.builder.
		Select("id", "account_id", "quiz_id", "score", "created_at").
		From("edu.quiz_attempts").
		Where(squirrel.Eq{"account_id": accountID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list quiz attempts sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query quiz attempts: %w", err)
	}
	defer rows.Close()

	attempts := make([]domain.QuizAttempt, 0)
	for rows.Next() {
		var attempt domain.QuizAttempt
		if err := rows.Scan(
			&attempt.ID,
			&attempt.AccountID,
			&attempt.QuizID,
			&attempt.Score,
			&attempt.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan quiz attempt: %w", err)
		}
		attempts = append(attempts, attempt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quiz attempts: %w", err)
	}

	return attempts, nil
}

// ListAttemptsByQuiz returns every attempt recorded against the quiz,
// newest first.
func (r *QuizRepository) ListAttemptsByQuiz(ctx context.Context, quizID string) ([]domain.QuizAttempt, error) {
	stmt, args, err := r.builder.
		Select("id", "account_id", "quiz_id", "score", "created_at").
		From("edu.quiz_attempts").
		Where(squirrel.Eq{"quiz_id": quizID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list quiz attempts sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query quiz attempts: %w", err)
	}
	defer rows.Close()

	attempts := make([]domain.QuizAttempt, 0)
	for rows.Next() {
		var attempt domain.QuizAttempt
		if err := rows.Scan(
			&attempt.ID,
			&attempt.AccountID,
			&attempt.QuizID,
			&attempt.Score,
			&attempt.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan quiz attempt: %w", err)
		}
		attempts = append(attempts, attempt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quiz attempts: %w", err)
	}

	return attempts, nil
}

func scanQuiz(scan func(dest ...any) error) (*domain.Quiz, error) {
	var (
		quiz      domain.Quiz
		createdBy sql.NullString
	)
	if err := scan(
		&quiz.ID,
		&quiz.Title,
		&quiz.Description,
		&quiz.TimerSeconds,
		&createdBy,
		&quiz.CreatedAt,
	); err != nil {
		return nil, err
	}

	if createdBy.Valid {
		val := createdBy.String
		quiz.CreatedBy = &val
	}
	return &quiz, nil
}

var _ port.QuizRepository = (*QuizRepository)(nil)
