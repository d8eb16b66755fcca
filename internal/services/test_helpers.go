package services

import (
	"context"
	"time"

	"github.com/abhisekadhikari/burningsawals/internal/models"
)

// MockOTPRepository implements OTPRepository for testing
type MockOTPRepository struct {
	CreateFunc              func(ctx context.Context, record *models.OTPRecord) (*models.OTPRecord, error)
	GetLatestActiveFunc     func(ctx context.Context, phoneNumber string) (*models.OTPRecord, error)
	IncrementAttemptsFunc   func(ctx context.Context, id string) (int, error)
	ConsumeFunc             func(ctx context.Context, id string) error
	DeleteFunc              func(ctx context.Context, id string) error
	CleanupExpiredFunc      func(ctx context.Context) (int64, error)
	CountIssuedSinceFunc    func(ctx context.Context, phoneNumber string, since time.Time) (int, error)
	CountExhaustedSinceFunc func(ctx context.Context, phoneNumber string, since time.Time) (int, error)
}

func (m *MockOTPRepository) Create(ctx context.Context, record *models.OTPRecord) (*models.OTPRecord, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, record)
	}
	return nil, models.ErrInternalServer
}

func (m *MockOTPRepository) GetLatestActive(ctx context.Context, phoneNumber string) (*models.OTPRecord, error) {
	if m.GetLatestActiveFunc != nil {
		return m.GetLatestActiveFunc(ctx, phoneNumber)
	}
	return nil, models.ErrNotFound
}

func (m *MockOTPRepository) IncrementAttempts(ctx context.Context, id string) (int, error) {
	if m.IncrementAttemptsFunc != nil {
		return m.IncrementAttemptsFunc(ctx, id)
	}
	return 0, nil
}

func (m *MockOTPRepository) Consume(ctx context.Context, id string) error {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, id)
	}
	return nil
}

func (m *MockOTPRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockOTPRepository) CleanupExpired(ctx context.Context) (int64, error) {
	if m.CleanupExpiredFunc != nil {
		return m.CleanupExpiredFunc(ctx)
	}
	return 0, nil
}

func (m *MockOTPRepository) CountIssuedSince(ctx context.Context, phoneNumber string, since time.Time) (int, error) {
	if m.CountIssuedSinceFunc != nil {
		return m.CountIssuedSinceFunc(ctx, phoneNumber, since)
	}
	return 0, nil
}

func (m *MockOTPRepository) CountExhaustedSince(ctx context.Context, phoneNumber string, since time.Time) (int, error) {
	if m.CountExhaustedSinceFunc != nil {
		return m.CountExhaustedSinceFunc(ctx, phoneNumber, since)
	}
	return 0, nil
}

// MockUserRepository implements UserRepository for testing
type MockUserRepository struct {
	GetByIDFunc           func(ctx context.Context, id string) (*models.User, error)
	GetByPhoneFunc        func(ctx context.Context, phoneNumber string) (*models.User, error)
	GetByEmailFunc        func(ctx context.Context, email string) (*models.User, error)
	CreateFunc            func(ctx context.Context, user *models.User) (*models.User, error)
	MarkPhoneVerifiedFunc func(ctx context.Context, id string) (*models.User, error)
	TouchLoginFunc        func(ctx context.Context, id string) (*models.User, error)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) GetByPhone(ctx context.Context, phoneNumber string) (*models.User, error) {
	if m.GetByPhoneFunc != nil {
		return m.GetByPhoneFunc(ctx, phoneNumber)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil, models.ErrInternalServer
}

func (m *MockUserRepository) MarkPhoneVerified(ctx context.Context, id string) (*models.User, error) {
	if m.MarkPhoneVerifiedFunc != nil {
		return m.MarkPhoneVerifiedFunc(ctx, id)
	}
	return nil, models.ErrInternalServer
}

func (m *MockUserRepository) TouchLogin(ctx context.Context, id string) (*models.User, error) {
	if m.TouchLoginFunc != nil {
		return m.TouchLoginFunc(ctx, id)
	}
	return nil, models.ErrInternalServer
}

// MockSMSSender implements SMSSender for testing
type MockSMSSender struct {
	SendFunc func(ctx context.Context, phoneNumber, message string) error
}

func (m *MockSMSSender) Send(ctx context.Context, phoneNumber, message string) error {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, phoneNumber, message)
	}
	return nil
}

// MockOTPFlow implements OTPFlow for testing
type MockOTPFlow struct {
	IssueFunc  func(ctx context.Context, phoneNumber string) (*IssueResult, error)
	VerifyFunc func(ctx context.Context, phoneNumber, code, userName string) (*VerifyResult, error)
}

func (m *MockOTPFlow) Issue(ctx context.Context, phoneNumber string) (*IssueResult, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, phoneNumber)
	}
	return &IssueResult{OTPID: "otp_123"}, nil
}

func (m *MockOTPFlow) Verify(ctx context.Context, phoneNumber, code, userName string) (*VerifyResult, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, phoneNumber, code, userName)
	}
	return nil, models.ErrInvalidOTP
}

// MockTokenIssuer implements TokenIssuer for testing
type MockTokenIssuer struct {
	IssueFunc func(userID, phoneNumber, email string) (string, error)
}

func (m *MockTokenIssuer) Issue(userID, phoneNumber, email string) (string, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(userID, phoneNumber, email)
	}
	return "token_" + userID, nil
}

// MockRequestGuard implements RequestGuard for testing
type MockRequestGuard struct {
	AllowSendFunc      func(ctx context.Context, ip, phoneNumber string) bool
	AllowVerifyFunc    func(ctx context.Context, ip, phoneNumber string) bool
	CheckSuspicionFunc func(ctx context.Context, phoneNumber string) *SuspicionReport
}

func (m *MockRequestGuard) AllowSend(ctx context.Context, ip, phoneNumber string) bool {
	if m.AllowSendFunc != nil {
		return m.AllowSendFunc(ctx, ip, phoneNumber)
	}
	return true
}

func (m *MockRequestGuard) AllowVerify(ctx context.Context, ip, phoneNumber string) bool {
	if m.AllowVerifyFunc != nil {
		return m.AllowVerifyFunc(ctx, ip, phoneNumber)
	}
	return true
}

func (m *MockRequestGuard) CheckSuspicion(ctx context.Context, phoneNumber string) *SuspicionReport {
	if m.CheckSuspicionFunc != nil {
		return m.CheckSuspicionFunc(ctx, phoneNumber)
	}
	return &SuspicionReport{PhoneNumber: phoneNumber}
}

// MockQuestionRepository implements QuestionRepository for testing
type MockQuestionRepository struct {
	GetByIDFunc func(ctx context.Context, id string) (*models.Question, error)
	ListFunc    func(ctx context.Context, genreID string, limit, offset int) ([]*models.Question, error)
	CreateFunc  func(ctx context.Context, question *models.Question) (*models.Question, error)
	UpdateFunc  func(ctx context.Context, question *models.Question) (*models.Question, error)
	DeleteFunc  func(ctx context.Context, id string) error
}

func (m *MockQuestionRepository) GetByID(ctx context.Context, id string) (*models.Question, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockQuestionRepository) List(ctx context.Context, genreID string, limit, offset int) ([]*models.Question, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, genreID, limit, offset)
	}
	return []*models.Question{}, nil
}

func (m *MockQuestionRepository) Create(ctx context.Context, question *models.Question) (*models.Question, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, question)
	}
	return nil, models.ErrInternalServer
}

func (m *MockQuestionRepository) Update(ctx context.Context, question *models.Question) (*models.Question, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, question)
	}
	return nil, models.ErrInternalServer
}

func (m *MockQuestionRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockInteractionRepository implements InteractionRepository for testing
type MockInteractionRepository struct {
	UpsertFunc       func(ctx context.Context, questionID, userID, reaction string) (*models.Interaction, error)
	RemoveFunc       func(ctx context.Context, questionID, userID string) error
	CountsFunc       func(ctx context.Context, questionID string) (*models.ReactionCounts, error)
	TopQuestionsFunc func(ctx context.Context, reaction string, limit int) ([]*models.ReactionCounts, error)
}

func (m *MockInteractionRepository) Upsert(ctx context.Context, questionID, userID, reaction string) (*models.Interaction, error) {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, questionID, userID, reaction)
	}
	return nil, models.ErrInternalServer
}

func (m *MockInteractionRepository) Remove(ctx context.Context, questionID, userID string) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, questionID, userID)
	}
	return nil
}

func (m *MockInteractionRepository) Counts(ctx context.Context, questionID string) (*models.ReactionCounts, error) {
	if m.CountsFunc != nil {
		return m.CountsFunc(ctx, questionID)
	}
	return nil, models.ErrNotFound
}

func (m *MockInteractionRepository) TopQuestions(ctx context.Context, reaction string, limit int) ([]*models.ReactionCounts, error) {
	if m.TopQuestionsFunc != nil {
		return m.TopQuestionsFunc(ctx, reaction, limit)
	}
	return []*models.ReactionCounts{}, nil
}

// NewTestPhoneUser creates a phone-verified identity for tests
func NewTestPhoneUser(id, phone, name string) *models.User {
	now := time.Now()
	return &models.User{
		ID:              id,
		PhoneNumber:     &phone,
		UserName:        name,
		AuthProvider:    models.AuthProviderPhone,
		IsPhoneVerified: true,
		LastLoginAt:     &now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// NewTestGoogleUser creates a Google-backed identity for tests
func NewTestGoogleUser(id, email, name string) *models.User {
	now := time.Now()
	return &models.User{
		ID:           id,
		Email:        &email,
		UserName:     name,
		AuthProvider: models.AuthProviderGoogle,
		LastLoginAt:  &now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NewTestOTPRecord creates an active OTP record for tests
func NewTestOTPRecord(id, phone string, hash, salt []byte) *models.OTPRecord {
	return &models.OTPRecord{
		ID:          id,
		PhoneNumber: phone,
		CodeHash:    hash,
		Salt:        salt,
		Attempts:    0,
		MaxAttempts: models.OTPMaxAttempts,
		ExpiresAt:   time.Now().Add(models.OTPExpiry),
		CreatedAt:   time.Now(),
	}
}
