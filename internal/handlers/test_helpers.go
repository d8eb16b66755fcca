package handlers

import (
	"context"

	"github.com/abhisekadhikari/burningsawals/internal/auth"
	"github.com/abhisekadhikari/burningsawals/internal/models"
	"github.com/abhisekadhikari/burningsawals/internal/services"
)

// MockAuthService implements AuthServiceInterface for testing
type MockAuthService struct {
	SendOTPFunc         func(ctx context.Context, phoneNumber, clientIP string) (*services.IssueResult, error)
	VerifyOTPFunc       func(ctx context.Context, phoneNumber, code, userName, clientIP string) (*services.AuthResponse, error)
	LoginWithGoogleFunc func(ctx context.Context, profile *auth.GoogleUser) (*services.AuthResponse, error)
	MeFunc              func(ctx context.Context, userID string) (*models.User, error)
}

func (m *MockAuthService) SendOTP(ctx context.Context, phoneNumber, clientIP string) (*services.IssueResult, error) {
	if m.SendOTPFunc != nil {
		return m.SendOTPFunc(ctx, phoneNumber, clientIP)
	}
	return &services.IssueResult{OTPID: "otp_123"}, nil
}

func (m *MockAuthService) VerifyOTP(ctx context.Context, phoneNumber, code, userName, clientIP string) (*services.AuthResponse, error) {
	if m.VerifyOTPFunc != nil {
		return m.VerifyOTPFunc(ctx, phoneNumber, code, userName, clientIP)
	}
	return nil, models.ErrInvalidOTP
}

func (m *MockAuthService) LoginWithGoogle(ctx context.Context, profile *auth.GoogleUser) (*services.AuthResponse, error) {
	if m.LoginWithGoogleFunc != nil {
		return m.LoginWithGoogleFunc(ctx, profile)
	}
	return nil, models.ErrInternalServer
}

func (m *MockAuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	if m.MeFunc != nil {
		return m.MeFunc(ctx, userID)
	}
	return nil, models.ErrNotFound
}

// MockGenreService implements GenreServiceInterface for testing
type MockGenreService struct {
	ListFunc   func(ctx context.Context) ([]*models.Genre, error)
	GetFunc    func(ctx context.Context, id string) (*models.Genre, error)
	CreateFunc func(ctx context.Context, name string) (*models.Genre, error)
	UpdateFunc func(ctx context.Context, id, name string) (*models.Genre, error)
	DeleteFunc func(ctx context.Context, id string) error
}

func (m *MockGenreService) List(ctx context.Context) ([]*models.Genre, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []*models.Genre{}, nil
}

func (m *MockGenreService) Get(ctx context.Context, id string) (*models.Genre, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockGenreService) Create(ctx context.Context, name string) (*models.Genre, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, name)
	}
	return nil, models.ErrInternalServer
}

func (m *MockGenreService) Update(ctx context.Context, id, name string) (*models.Genre, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, name)
	}
	return nil, models.ErrInternalServer
}

func (m *MockGenreService) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockInteractionService implements InteractionServiceInterface for testing
type MockInteractionService struct {
	ReactFunc        func(ctx context.Context, questionID, userID, reaction string) (*models.Interaction, error)
	UnreactFunc      func(ctx context.Context, questionID, userID string) error
	CountsFunc       func(ctx context.Context, questionID string) (*models.ReactionCounts, error)
	TopQuestionsFunc func(ctx context.Context, reaction string, limit int) ([]*models.ReactionCounts, error)
}

func (m *MockInteractionService) React(ctx context.Context, questionID, userID, reaction string) (*models.Interaction, error) {
	if m.ReactFunc != nil {
		return m.ReactFunc(ctx, questionID, userID, reaction)
	}
	return nil, models.ErrInternalServer
}

func (m *MockInteractionService) Unreact(ctx context.Context, questionID, userID string) error {
	if m.UnreactFunc != nil {
		return m.UnreactFunc(ctx, questionID, userID)
	}
	return nil
}

func (m *MockInteractionService) Counts(ctx context.Context, questionID string) (*models.ReactionCounts, error) {
	if m.CountsFunc != nil {
		return m.CountsFunc(ctx, questionID)
	}
	return nil, models.ErrNotFound
}

func (m *MockInteractionService) TopQuestions(ctx context.Context, reaction string, limit int) ([]*models.ReactionCounts, error) {
	if m.TopQuestionsFunc != nil {
		return m.TopQuestionsFunc(ctx, reaction, limit)
	}
	return []*models.ReactionCounts{}, nil
}
