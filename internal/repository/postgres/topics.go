package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rumonkh0/quizbackend/internal/core/domain"
	"github.com/rumonkh0/quizbackend/internal/core/port"
	"github.com/rumonkh0/quizbackend/internal/repository"
)

var topicColumns = []string{
	"id",
	"name",
	"description",
	"created_by",
	"created_at",
	"updated_at",
}

// TopicRepository implements port.TopicRepository using PostgreSQL.
type TopicRepository struct {
	pool    *pgxpool.Pool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewTopicRepository constructs a repository backed by any executor that
// satisfies pgExecutor. Cascading deletes require a pool-backed instance.
func NewTopicRepository(exec pgExecutor) *TopicRepository {
	repo := &TopicRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
	if pool, ok := exec.(*pgxpool.Pool); ok {
		repo.pool = pool
	}
	return repo
}

// Create inserts a new topic. A duplicate name surfaces as
// *repository.DuplicateKeyError.
func (r *TopicRepository) Create(ctx context.Context, topic domain.Topic) error {
	var createdBy any
	if topic.CreatedBy != nil && *topic.CreatedBy != "" {
		createdBy = *topic.CreatedBy
	}

	stmt, args, err := r.builder.Insert("edu.topics").
		Columns(topicColumns...).
		Values(topic.ID, topic.Name, topic.Description, createdBy, topic.CreatedAt, topic.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert topic sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert topic: %w", mapWriteError(err))
	}

	return nil
}

// GetByID retrieves a topic by identifier.
func (r *TopicRepository) GetByID(ctx context.Context, id string) (*domain.Topic, error) {
	stmt, args, err := r.builder.
		Select(topicColumns...).
		From("edu.topics").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select topic sql: %w", err)
	}

	topic, err := scanTopic(r.exec.QueryRow(ctx, stmt, args...))
	if err != nil {
		return nil, err
	}
	return topic, nil
}

// List returns all topics ordered by name.
func (r *TopicRepository) List(ctx context.Context) ([]domain.Topic, error) {
	stmt, args, err := r.builder.
		Select(topicColumns...).
		From("edu.topics").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list topics sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query topics: %w", err)
	}
	defer rows.Close()

	topics := make([]domain.Topic, 0)
	for rows.Next() {
		topic, err := scanTopicRow(rows)
		if err != nil {
			return nil, err
		}
		topics = append(topics, *topic)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate topics: %w", err)
	}

	return topics, nil
}

// Update persists name and description changes.
func (r *TopicRepository) Update(ctx context.Context, topic domain.Topic) error {
	stmt, args, err := r.builder.Update("edu.topics").
		Set("name", topic.Name).
		Set("description", topic.Description).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": topic.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update topic sql: %w", err)
	}

	ct, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update topic: %w", mapWriteError(err))
	}

	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// DeleteCascade removes the topic and all of its modules in one transaction,
// returning the number of modules deleted. Modules go first so referential
// integrity holds at every point.
func (r *TopicRepository) DeleteCascade(ctx context.Context, id string) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("delete topic: transactional delete requires a pool-backed repository")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin delete topic tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	modStmt, modArgs, err := r.builder.Delete("edu.modules").
		Where(squirrel.Eq{"topic_id": id}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete modules sql: %w", err)
	}

	modTag, err := tx.Exec(ctx, modStmt, modArgs...)
	if err != nil {
		return 0, fmt.Errorf("delete topic modules: %w", err)
	}

	topicStmt, topicArgs, err := r.builder.Delete("edu.topics").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete topic sql: %w", err)
	}

	topicTag, err := tx.Exec(ctx, topicStmt, topicArgs...)
	if err != nil {
		return 0, fmt.Errorf("delete topic: %w", err)
	}

	if topicTag.RowsAffected() == 0 {
		return 0, repository.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit delete topic tx: %w", err)
	}

	return modTag.RowsAffected(), nil
}

func scanTopic(row pgx.Row) (*domain.Topic, error) {
	var (
		topic     domain.Topic
		createdBy sql.NullString
	)
	if err := row.Scan(
		&topic.ID,
		&topic.Name,
		&topic.Description,
		&createdBy,
		&topic.CreatedAt,
		&topic.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan topic: %w", err)
	}

	if createdBy.Valid {
		val := createdBy.String
		topic.CreatedBy = &val
	}
	return &topic, nil
}

func scanTopicRow(rows pgx.Rows) (*domain.Topic, error) {
	var (
		topic     domain.Topic
		createdBy sql.NullString
	)
	if err := rows.Scan(
		&topic.ID,
		&topic.Name,
		&topic.Description,
		&createdBy,
		&topic.CreatedAt,
		&topic.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("scan topic: %w", err)
	}

	if createdBy.Valid {
		val := createdBy.String
		topic.CreatedBy = &val
	}
	return &topic, nil
}

var _ port.TopicRepository = (*TopicRepository)(nil)
