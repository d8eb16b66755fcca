package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/abhisekadhikari/burningsawals/internal/models"
)

// InteractionRepository defines the interface for reaction persistence
type InteractionRepository interface {
	Upsert(ctx context.Context, questionID, userID, reaction string) (*models.Interaction, error)
	Remove(ctx context.Context, questionID, userID string) error
	Counts(ctx context.Context, questionID string) (*models.ReactionCounts, error)
	TopQuestions(ctx context.Context, reaction string, limit int) ([]*models.ReactionCounts, error)
}

const (
	defaultTopQuestions = 10
	maxTopQuestions     = 50
)

type InteractionService struct {
	repo      InteractionRepository
	questions QuestionRepository
	logger    *slog.Logger
}

func NewInteractionService(repo InteractionRepository, questions QuestionRepository, logger *slog.Logger) *InteractionService {
	return &InteractionService{repo: repo, questions: questions, logger: logger}
}

// React places or replaces a user's reaction to a question
func (s *InteractionService) React(ctx context.Context, questionID, userID, reaction string) (*models.Interaction, error) {
	if !models.ValidReaction(reaction) {
		return nil, models.ErrBadRequest
	}

	if _, err := s.questions.GetByID(ctx, questionID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	interaction, err := s.repo.Upsert(ctx, questionID, userID, reaction)
	if err != nil {
		return nil, err
	}

	s.logger.Info("reaction recorded",
		slog.String("question_id", questionID),
		slog.String("user_id", userID),
		slog.String("type", reaction))

	return interaction, nil
}

// Unreact removes a user's reaction from a question
func (s *InteractionService) Unreact(ctx context.Context, questionID, userID string) error {
	return s.repo.Remove(ctx, questionID, userID)
}

// Counts aggregates reactions for one question
func (s *InteractionService) Counts(ctx context.Context, questionID string) (*models.ReactionCounts, error) {
	if _, err := s.questions.GetByID(ctx, questionID); err != nil {
		return nil, err
	}
	return s.repo.Counts(ctx, questionID)
}

// TopQuestions ranks questions by reaction volume of the given type
func (s *InteractionService) TopQuestions(ctx context.Context, reaction string, limit int) ([]*models.ReactionCounts, error) {
	if reaction == "" {
		reaction = models.ReactionLike
	}
	if !models.ValidReaction(reaction) {
		return nil, models.ErrBadRequest
	}
	if limit <= 0 || limit > maxTopQuestions {
		limit = defaultTopQuestions
	}

	return s.repo.TopQuestions(ctx, reaction, limit)
}
