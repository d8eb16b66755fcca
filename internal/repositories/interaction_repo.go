package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisekadhikari/burningsawals/internal/database"
	"github.com/abhisekadhikari/burningsawals/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InteractionRepository struct {
	pool *pgxpool.Pool
}

func NewInteractionRepository(db *database.DB) *InteractionRepository {
	return &InteractionRepository{pool: db.Pool}
}

// Upsert records a user's reaction to a question. A repeated reaction from
// the same user replaces the previous one.
func (r *InteractionRepository) Upsert(ctx context.Context, questionID, userID, reaction string) (*models.Interaction, error) {
	now := time.Now()

	query := `
		INSERT INTO interactions (id, question_id, user_id, type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (question_id, user_id)
		DO UPDATE SET type = EXCLUDED.type, updated_at = EXCLUDED.updated_at
		RETURNING id, question_id, user_id, type, created_at, updated_at
	`

	var interaction models.Interaction
	err := r.pool.QueryRow(ctx, query,
		uuid.New().String(), questionID, userID, reaction, now, now,
	).Scan(
		&interaction.ID, &interaction.QuestionID, &interaction.UserID,
		&interaction.Type, &interaction.CreatedAt, &interaction.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &interaction, nil
}

// Remove deletes a user's reaction to a question
func (r *InteractionRepository) Remove(ctx context.Context, questionID, userID string) error {
	query := `DELETE FROM interactions WHERE question_id = $1 AND user_id = $2`

	result, err := r.pool.Exec(ctx, query, questionID, userID)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

// Counts aggregates reactions for a single question
func (r *InteractionRepository) Counts(ctx context.Context, questionID string) (*models.ReactionCounts, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE type = 'like'),
			COUNT(*) FILTER (WHERE type = 'super_like'),
			COUNT(*) FILTER (WHERE type = 'dislike')
		FROM interactions
		WHERE question_id = $1
	`

	counts := &models.ReactionCounts{QuestionID: questionID}
	err := r.pool.QueryRow(ctx, query, questionID).Scan(&counts.Likes, &counts.SuperLikes, &counts.Dislikes)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return counts, nil
}

// TopQuestions returns question IDs ranked by how many reactions of the given
// type they carry.
func (r *InteractionRepository) TopQuestions(ctx context.Context, reaction string, limit int) ([]*models.ReactionCounts, error) {
	query := `
		SELECT question_id,
			COUNT(*) FILTER (WHERE type = 'like'),
			COUNT(*) FILTER (WHERE type = 'super_like'),
			COUNT(*) FILTER (WHERE type = 'dislike')
		FROM interactions
		GROUP BY question_id
		ORDER BY COUNT(*) FILTER (WHERE type = $1) DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, reaction, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top questions: %w", err)
	}
	defer rows.Close()

	results := make([]*models.ReactionCounts, 0)
	for rows.Next() {
		counts := &models.ReactionCounts{}
		if err := rows.Scan(&counts.QuestionID, &counts.Likes, &counts.SuperLikes, &counts.Dislikes); err != nil {
			return nil, fmt.Errorf("failed to scan reaction counts: %w", err)
		}
		results = append(results, counts)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reaction rows: %w", err)
	}

	return results, nil
}
