package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisekadhikari/burningsawals/internal/database"
	"github.com/abhisekadhikari/burningsawals/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type QuestionTypeRepository struct {
	pool *pgxpool.Pool
}

func NewQuestionTypeRepository(db *database.DB) *QuestionTypeRepository {
	return &QuestionTypeRepository{pool: db.Pool}
}

func scanQuestionTypeRow(scanner rowScanner) (*models.QuestionType, error) {
	var qt models.QuestionType
	err := scanner.Scan(&qt.ID, &qt.Name, &qt.CreatedAt, &qt.UpdatedAt)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	return &qt, nil
}

func scanQuestionTypeRows(rows pgx.Rows) ([]*models.QuestionType, error) {
	defer rows.Close()

	types := make([]*models.QuestionType, 0)
	for rows.Next() {
		qt, err := scanQuestionTypeRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan question type: %w", err)
		}
		types = append(types, qt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating question type rows: %w", err)
	}

	return types, nil
}

func (r *QuestionTypeRepository) List(ctx context.Context) ([]*models.QuestionType, error) {
	query := `SELECT id, name, created_at, updated_at FROM question_types ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query question types: %w", err)
	}

	return scanQuestionTypeRows(rows)
}

func (r *QuestionTypeRepository) GetByID(ctx context.Context, id string) (*models.QuestionType, error) {
	query := `SELECT id, name, created_at, updated_at FROM question_types WHERE id = $1`
	return scanQuestionTypeRow(r.pool.QueryRow(ctx, query, id))
}

func (r *QuestionTypeRepository) Create(ctx context.Context, name string) (*models.QuestionType, error) {
	now := time.Now()

	query := `
		INSERT INTO question_types (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, created_at, updated_at
	`

	return scanQuestionTypeRow(r.pool.QueryRow(ctx, query, uuid.New().String(), name, now, now))
}

func (r *QuestionTypeRepository) Update(ctx context.Context, id, name string) (*models.QuestionType, error) {
	query := `
		UPDATE question_types SET name = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, name, created_at, updated_at
	`

	return scanQuestionTypeRow(r.pool.QueryRow(ctx, query, name, id))
}

func (r *QuestionTypeRepository) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM question_types WHERE id = $1`, id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
