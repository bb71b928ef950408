package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/rumonkh0/quizbackend/internal/core/domain"
	"github.com/rumonkh0/quizbackend/internal/core/port"
	"github.com/rumonkh0/quizbackend/internal/repository"
)

var moduleColumns = []string{
	"id",
	"topic_id",
	"name",
	"content",
	"sort_order",
	"quiz_id",
	"created_by",
	"created_at",
	"updated_at",
}

// ModuleRepository implements port.ModuleRepository using PostgreSQL.
type ModuleRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewModuleRepository constructs a repository backed by any executor that
// satisfies pgExecutor.
func NewModuleRepository(exec pgExecutor) *ModuleRepository {
	return &ModuleRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new module row.
func (r *ModuleRepository) Create(ctx context.Context, module domain.Module) error {
	stmt, args, err := r.builder.Insert("edu.modules").
		Columns(moduleColumns...).
		Values(
			module.ID,
			module.TopicID,
			module.Name,
			module.Content,
			module.SortOrder,
			nullable(module.QuizID),
			nullable(module.CreatedBy),
			module.CreatedAt,
			module.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert module sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert module: %w", mapWriteError(err))
	}

	return nil
}

// GetByID retrieves a module by identifier.
func (r *ModuleRepository) GetByID(ctx context.Context, id string) (*domain.Module, error) {
	stmt, args, err := r.builder.
		Select(moduleColumns...).
		From("edu.modules").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select module sql: %w", err)
	}

	row := r.exec.QueryRow(ctx, stmt, args...)
	module, err := scanModule(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan module: %w", err)
	}
	return module, nil
}

// ListByTopic returns the topic's modules ordered for display: by sort_order,
// then by creation time.
func (r *ModuleRepository) ListByTopic(ctx context.Context, topicID string) ([]domain.Module, error) {
	stmt, args, err := r.builder.
		Select(moduleColumns...).
		From("edu.modules").
		Where(squirrel.Eq{"topic_id": topicID}).
		OrderBy("sort_order ASC", "created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list modules sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query modules: %w", err)
	}
	defer rows.Close()

	modules := make([]domain.Module, 0)
	for rows.Next() {
		module, err := scanModule(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan module: %w", err)
		}
		modules = append(modules, *module)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate modules: %w", err)
	}

	return modules, nil
}

// Update persists content fields, including clearing or re-pointing the quiz
// reference.
func (r *ModuleRepository) Update(ctx context.Context, module domain.Module) error {
	stmt, args, err := r.builder.Update("edu.modules").
		Set("name", module.Name).
		Set("content", module.Content).
		Set("sort_order", module.SortOrder).
		Set("quiz_id", nullable(module.QuizID)).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": module.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update module sql: %w", err)
	}

	ct, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update module: %w", mapWriteError(err))
	}

	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes a module by identifier.
func (r *ModuleRepository) Delete(ctx context.Context, id string) error {
	stmt, args, err := r.builder.Delete("edu.modules").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete module sql: %w", err)
	}

	ct, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("delete module: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func scanModule(scan func(dest ...any) error) (*domain.Module, error) {
	var (
		module    domain.Module
		quizID    sql.NullString
		createdBy sql.NullString
	)
	if err := scan(
		&module.ID,
		&module.TopicID,
		&module.Name,
		&module.Content,
		&module.SortOrder,
		&quizID,
		&createdBy,
		&module.CreatedAt,
		&module.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if quizID.Valid {
		val := quizID.String
		module.QuizID = &val
	}
	if createdBy.Valid {
		val := createdBy.String
		module.CreatedBy = &val
	}
	return &module, nil
}

func nullable(ref *string) any {
	if ref != nil && *ref != "" {
		return *ref
	}
	return nil
}

var _ port.ModuleRepository = (*ModuleRepository)(nil)
