package services

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisekadhikari/burningsawals/internal/models"
)

func TestQuestionService_Create_Success(t *testing.T) {
	mockRepo := &MockQuestionRepository{
		CreateFunc: func(ctx context.Context, question *models.Question) (*models.Question, error) {
			question.ID = "q_1"
			return question, nil
		},
	}

	svc := NewQuestionService(mockRepo, slog.Default())

	question, err := svc.Create(context.Background(), "  Mountains or beaches?  ", "user_123",
		[]string{"g_1"}, []string{"t_1"})

	require.NoError(t, err)
	assert.Equal(t, "Mountains or beaches?", question.Title)
	assert.Equal(t, "user_123", question.CreatedBy)
	assert.Equal(t, []string{"g_1"}, question.GenreIDs)
}

func TestQuestionService_Create_EmptyTitle(t *testing.T) {
	svc := NewQuestionService(&MockQuestionRepository{}, slog.Default())

	question, err := svc.Create(context.Background(), "   ", "user_123", nil, nil)

	assert.ErrorIs(t, err, models.ErrBadRequest)
	assert.Nil(t, question)
}

func TestQuestionService_List_ClampsPaging(t *testing.T) {
	mockRepo := &MockQuestionRepository{
		ListFunc: func(ctx context.Context, genreID string, limit, offset int) ([]*models.Question, error) {
			assert.Equal(t, defaultQuestionPageSize, limit)
			assert.Equal(t, 0, offset)
			return []*models.Question{}, nil
		},
	}

	svc := NewQuestionService(mockRepo, slog.Default())

	_, err := svc.List(context.Background(), "", 0, -5)
	assert.NoError(t, err)

	_, err = svc.List(context.Background(), "", maxQuestionPageSize+1, -1)
	assert.NoError(t, err)
}

func TestQuestionService_List_GenreFilterPassesThrough(t *testing.T) {
	mockRepo := &MockQuestionRepository{
		ListFunc: func(ctx context.Context, genreID string, limit, offset int) ([]*models.Question, error) {
			assert.Equal(t, "g_1", genreID)
			return []*models.Question{{ID: "q_1"}}, nil
		},
	}

	svc := NewQuestionService(mockRepo, slog.Default())

	questions, err := svc.List(context.Background(), "g_1", 10, 0)

	require.NoError(t, err)
	assert.Len(t, questions, 1)
}

func TestQuestionService_Update_EmptyTitle(t *testing.T) {
	svc := NewQuestionService(&MockQuestionRepository{}, slog.Default())

	question, err := svc.Update(context.Background(), "q_1", "", nil, nil)

	assert.ErrorIs(t, err, models.ErrBadRequest)
	assert.Nil(t, question)
}

func TestQuestionService_Get_NotFound(t *testing.T) {
	svc := NewQuestionService(&MockQuestionRepository{}, slog.Default())

	question, err := svc.Get(context.Background(), "q_missing")

	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Nil(t, question)
}
