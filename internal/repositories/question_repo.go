package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisekadhikari/burningsawals/internal/database"
	"github.com/abhisekadhikari/burningsawals/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type QuestionRepository struct {
	db *database.DB
}

func NewQuestionRepository(db *database.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

const questionSelect = `
	SELECT q.id, q.title, q.created_by, q.created_at, q.updated_at,
		COALESCE(array_agg(DISTINCT qg.genre_id::text) FILTER (WHERE qg.genre_id IS NOT NULL), '{}'),
		COALESCE(array_agg(DISTINCT qqt.question_type_id::text) FILTER (WHERE qqt.question_type_id IS NOT NULL), '{}')
	FROM questions q
	LEFT JOIN question_genres qg ON qg.question_id = q.id
	LEFT JOIN question_question_types qqt ON qqt.question_id = q.id
`

func scanQuestionRow(scanner rowScanner) (*models.Question, error) {
	var q models.Question
	err := scanner.Scan(
		&q.ID, &q.Title, &q.CreatedBy, &q.CreatedAt, &q.UpdatedAt,
		&q.GenreIDs, &q.QuestionTypeIDs,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	return &q, nil
}

func scanQuestionRows(rows pgx.Rows) ([]*models.Question, error) {
	defer rows.Close()

	questions := make([]*models.Question, 0)
	for rows.Next() {
		q, err := scanQuestionRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating question rows: %w", err)
	}

	return questions, nil
}

func (r *QuestionRepository) GetByID(ctx context.Context, id string) (*models.Question, error) {
	query := questionSelect + ` WHERE q.id = $1 GROUP BY q.id`
	return scanQuestionRow(r.db.Pool.QueryRow(ctx, query, id))
}

// List returns questions newest first, optionally filtered by genre
func (r *QuestionRepository) List(ctx context.Context, genreID string, limit, offset int) ([]*models.Question, error) {
	query := questionSelect
	args := []any{}

	if genreID != "" {
		query += ` WHERE q.id IN (SELECT question_id FROM question_genres WHERE genre_id = $1)`
		args = append(args, genreID)
	}

	query += fmt.Sprintf(` GROUP BY q.id ORDER BY q.created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}

	return scanQuestionRows(rows)
}

// Create inserts the question and its genre/type links in one transaction
func (r *QuestionRepository) Create(ctx context.Context, question *models.Question) (*models.Question, error) {
	question.ID = uuid.New().String()

	now := time.Now()
	question.CreatedAt = now
	question.UpdatedAt = now

	err := r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO questions (id, title, created_by, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
			question.ID, question.Title, question.CreatedBy, question.CreatedAt, question.UpdatedAt,
		)
		if err != nil {
			return database.MapPostgresError(err)
		}

		return insertQuestionLinks(ctx, tx, question)
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, question.ID)
}

// Update replaces the title and link sets in one transaction
func (r *QuestionRepository) Update(ctx context.Context, question *models.Question) (*models.Question, error) {
	err := r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		result, err := tx.Exec(ctx,
			`UPDATE questions SET title = $1, updated_at = NOW() WHERE id = $2`,
			question.Title, question.ID,
		)
		if err != nil {
			return database.MapPostgresError(err)
		}
		if result.RowsAffected() == 0 {
			return models.ErrNotFound
		}

		if _, err := tx.Exec(ctx, `DELETE FROM question_genres WHERE question_id = $1`, question.ID); err != nil {
			return database.MapPostgresError(err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM question_question_types WHERE question_id = $1`, question.ID); err != nil {
			return database.MapPostgresError(err)
		}

		return insertQuestionLinks(ctx, tx, question)
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, question.ID)
}

func insertQuestionLinks(ctx context.Context, tx pgx.Tx, question *models.Question) error {
	for _, genreID := range question.GenreIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO question_genres (question_id, genre_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			question.ID, genreID,
		)
		if err != nil {
			return database.MapPostgresError(err)
		}
	}

	for _, typeID := range question.QuestionTypeIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO question_question_types (question_id, question_type_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			question.ID, typeID,
		)
		if err != nil {
			return database.MapPostgresError(err)
		}
	}

	return nil
}

func (r *QuestionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
