package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/abhisekadhikari/burningsawals/internal/models"
)

// QuestionTypeRepository defines the interface for question type persistence
type QuestionTypeRepository interface {
	List(ctx context.Context) ([]*models.QuestionType, error)
	GetByID(ctx context.Context, id string) (*models.QuestionType, error)
	Create(ctx context.Context, name string) (*models.QuestionType, error)
	Update(ctx context.Context, id, name string) (*models.QuestionType, error)
	Delete(ctx context.Context, id string) error
}

type QuestionTypeService struct {
	repo   QuestionTypeRepository
	logger *slog.Logger
}

func NewQuestionTypeService(repo QuestionTypeRepository, logger *slog.Logger) *QuestionTypeService {
	return &QuestionTypeService{repo: repo, logger: logger}
}

func (s *QuestionTypeService) List(ctx context.Context) ([]*models.QuestionType, error) {
	return s.repo.List(ctx)
}

func (s *QuestionTypeService) Get(ctx context.Context, id string) (*models.QuestionType, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *QuestionTypeService) Create(ctx context.Context, name string) (*models.QuestionType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.ErrBadRequest
	}

	qt, err := s.repo.Create(ctx, name)
	if err != nil {
		return nil, err
	}

	s.logger.Info("question type created", slog.String("question_type_id", qt.ID), slog.String("name", qt.Name))
	return qt, nil
}

func (s *QuestionTypeService) Update(ctx context.Context, id, name string) (*models.QuestionType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.ErrBadRequest
	}

	return s.repo.Update(ctx, id, name)
}

func (s *QuestionTypeService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
