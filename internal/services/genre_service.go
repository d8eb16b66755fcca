package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/abhisekadhikari/burningsawals/internal/models"
)

// GenreRepository defines the interface for genre persistence
type GenreRepository interface {
	List(ctx context.Context) ([]*models.Genre, error)
	GetByID(ctx context.Context, id string) (*models.Genre, error)
	Create(ctx context.Context, name string) (*models.Genre, error)
	Update(ctx context.Context, id, name string) (*models.Genre, error)
	Delete(ctx context.Context, id string) error
}

type GenreService struct {
	repo   GenreRepository
	logger *slog.Logger
}

func NewGenreService(repo GenreRepository, logger *slog.Logger) *GenreService {
	return &GenreService{repo: repo, logger: logger}
}

func (s *GenreService) List(ctx context.Context) ([]*models.Genre, error) {
	return s.repo.List(ctx)
}

func (s *GenreService) Get(ctx context.Context, id string) (*models.Genre, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *GenreService) Create(ctx context.Context, name string) (*models.Genre, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.ErrBadRequest
	}

	genre, err := s.repo.Create(ctx, name)
	if err != nil {
		return nil, err
	}

	s.logger.Info("genre created", slog.String("genre_id", genre.ID), slog.String("name", genre.Name))
	return genre, nil
}

func (s *GenreService) Update(ctx context.Context, id, name string) (*models.Genre, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.ErrBadRequest
	}

	return s.repo.Update(ctx, id, name)
}

func (s *GenreService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
