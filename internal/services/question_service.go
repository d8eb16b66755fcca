package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/abhisekadhikari/burningsawals/internal/models"
)

// QuestionRepository defines the interface for question persistence
type QuestionRepository interface {
	GetByID(ctx context.Context, id string) (*models.Question, error)
	List(ctx context.Context, genreID string, limit, offset int) ([]*models.Question, error)
	Create(ctx context.Context, question *models.Question) (*models.Question, error)
	Update(ctx context.Context, question *models.Question) (*models.Question, error)
	Delete(ctx context.Context, id string) error
}

const (
	defaultQuestionPageSize = 20
	maxQuestionPageSize     = 100
)

type QuestionService struct {
	repo   QuestionRepository
	logger *slog.Logger
}

func NewQuestionService(repo QuestionRepository, logger *slog.Logger) *QuestionService {
	return &QuestionService{repo: repo, logger: logger}
}

func (s *QuestionService) Get(ctx context.Context, id string) (*models.Question, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *QuestionService) List(ctx context.Context, genreID string, limit, offset int) ([]*models.Question, error) {
	if limit <= 0 || limit > maxQuestionPageSize {
		limit = defaultQuestionPageSize
	}
	if offset < 0 {
		offset = 0
	}

	return s.repo.List(ctx, genreID, limit, offset)
}

func (s *QuestionService) Create(ctx context.Context, title, createdBy string, genreIDs, typeIDs []string) (*models.Question, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, models.ErrBadRequest
	}

	question, err := s.repo.Create(ctx, &models.Question{
		Title:           title,
		CreatedBy:       createdBy,
		GenreIDs:        genreIDs,
		QuestionTypeIDs: typeIDs,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("question created",
		slog.String("question_id", question.ID),
		slog.String("created_by", createdBy))

	return question, nil
}

func (s *QuestionService) Update(ctx context.Context, id, title string, genreIDs, typeIDs []string) (*models.Question, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, models.ErrBadRequest
	}

	return s.repo.Update(ctx, &models.Question{
		ID:              id,
		Title:           title,
		GenreIDs:        genreIDs,
		QuestionTypeIDs: typeIDs,
	})
}

func (s *QuestionService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
