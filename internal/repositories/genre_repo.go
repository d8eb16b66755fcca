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

type GenreRepository struct {
	pool *pgxpool.Pool
}

func NewGenreRepository(db *database.DB) *GenreRepository {
	return &GenreRepository{pool: db.Pool}
}

func scanGenreRow(scanner rowScanner) (*models.Genre, error) {
	var genre models.Genre
	err := scanner.Scan(&genre.ID, &genre.Name, &genre.CreatedAt, &genre.UpdatedAt)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	return &genre, nil
}

func scanGenreRows(rows pgx.Rows) ([]*models.Genre, error) {
	defer rows.Close()

	genres := make([]*models.Genre, 0)
	for rows.Next() {
		genre, err := scanGenreRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, genre)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating genre rows: %w", err)
	}

	return genres, nil
}

func (r *GenreRepository) List(ctx context.Context) ([]*models.Genre, error) {
	query := `SELECT id, name, created_at, updated_at FROM genres ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query genres: %w", err)
	}

	return scanGenreRows(rows)
}

func (r *GenreRepository) GetByID(ctx context.Context, id string) (*models.Genre, error) {
	query := `SELECT id, name, created_at, updated_at FROM genres WHERE id = $1`
	return scanGenreRow(r.pool.QueryRow(ctx, query, id))
}

func (r *GenreRepository) Create(ctx context.Context, name string) (*models.Genre, error) {
	now := time.Now()

	query := `
		INSERT INTO genres (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, created_at, updated_at
	`

	return scanGenreRow(r.pool.QueryRow(ctx, query, uuid.New().String(), name, now, now))
}

func (r *GenreRepository) Update(ctx context.Context, id, name string) (*models.Genre, error) {
	query := `
		UPDATE genres SET name = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, name, created_at, updated_at
	`

	return scanGenreRow(r.pool.QueryRow(ctx, query, name, id))
}

func (r *GenreRepository) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM genres WHERE id = $1`, id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
