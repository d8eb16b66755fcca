package services

import (
	"context"
	"log/slog"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisekadhikari/burningsawals/internal/auth"
	"github.com/abhisekadhikari/burningsawals/internal/models"
)

var codePattern = regexp.MustCompile(`[0-9]{6}`)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"plain ten digits", "9876543210", "9876543210", false},
		{"plus country code", "+919876543210", "9876543210", false},
		{"bare country code", "919876543210", "9876543210", false},
		{"leading zero", "09876543210", "9876543210", false},
		{"spaces and dashes", "+91 98765-43210", "9876543210", false},
		{"leading five", "5876543210", "", true},
		{"too short", "987654321", "", true},
		{"too long", "98765432101", "", true},
		{"letters", "98765abcde", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhone(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, models.ErrInvalidPhoneFormat)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOTPService_Issue_Success(t *testing.T) {
	var created *models.OTPRecord
	var sentMessage string

	mockOTPRepo := &MockOTPRepository{
		CreateFunc: func(ctx context.Context, record *models.OTPRecord) (*models.OTPRecord, error) {
			record.ID = "otp_123"
			created = record
			return record, nil
		},
	}
	mockSMS := &MockSMSSender{
		SendFunc: func(ctx context.Context, phoneNumber, message string) error {
			sentMessage = message
			return nil
		},
	}

	svc := NewOTPService(mockOTPRepo, &MockUserRepository{}, mockSMS, slog.Default())

	result, err := svc.Issue(context.Background(), "+919876543210")

	require.NoError(t, err)
	assert.Equal(t, "otp_123", result.OTPID)

	require.NotNil(t, created)
	assert.Equal(t, "9876543210", created.PhoneNumber)
	assert.Equal(t, models.OTPMaxAttempts, created.MaxAttempts)
	assert.NotEmpty(t, created.CodeHash)
	assert.Len(t, created.Salt, 16)

	// The dispatched code must match the stored digest
	code := codePattern.FindString(sentMessage)
	require.Len(t, code, 6)
	match, err := auth.VerifyOTP(code, created.Salt, created.CodeHash)
	require.NoError(t, err)
	assert.True(t, match)
}

func TestOTPService_Issue_InvalidPhone(t *testing.T) {
	svc := NewOTPService(&MockOTPRepository{}, &MockUserRepository{}, &MockSMSSender{}, slog.Default())

	result, err := svc.Issue(context.Background(), "12345")

	assert.ErrorIs(t, err, models.ErrInvalidPhoneFormat)
	assert.Nil(t, result)
}

func TestOTPService_Issue_DispatchFailureRollsBack(t *testing.T) {
	deleted := ""

	mockOTPRepo := &MockOTPRepository{
		CreateFunc: func(ctx context.Context, record *models.OTPRecord) (*models.OTPRecord, error) {
			record.ID = "otp_undeliverable"
			return record, nil
		},
		DeleteFunc: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	mockSMS := &MockSMSSender{
		SendFunc: func(ctx context.Context, phoneNumber, message string) error {
			return assert.AnError
		},
	}

	svc := NewOTPService(mockOTPRepo, &MockUserRepository{}, mockSMS, slog.Default())

	issueResult, err := svc.Issue(context.Background(), "9876543210")

	assert.ErrorIs(t, err, models.ErrDispatchFailed)
	assert.Nil(t, issueResult)
	assert.Equal(t, "otp_undeliverable", deleted)
}

func TestOTPService_Verify_Success_NewUser(t *testing.T) {
	salt, err := auth.GenerateSalt()
	require.NoError(t, err)
	hash, err := auth.HashOTP("482913", salt)
	require.NoError(t, err)

	record := NewTestOTPRecord("otp_123", "9876543210", hash, salt)
	consumed := false

	mockOTPRepo := &MockOTPRepository{
		GetLatestActiveFunc: func(ctx context.Context, phoneNumber string) (*models.OTPRecord, error) {
			return record, nil
		},
		ConsumeFunc: func(ctx context.Context, id string) error {
			consumed = true
			return nil
		},
	}
	mockUserRepo := &MockUserRepository{
		CreateFunc: func(ctx context.Context, user *models.User) (*models.User, error) {
			user.ID = "user_new"
			return user, nil
		},
	}

	svc := NewOTPService(mockOTPRepo, mockUserRepo, &MockSMSSender{}, slog.Default())

	result, err := svc.Verify(context.Background(), "9876543210", "482913", "")

	require.NoError(t, err)
	assert.True(t, consumed)
	assert.True(t, result.IsNewUser)
	assert.Equal(t, "user_new", result.User.ID)
	assert.Equal(t, "User_9876543210", result.User.UserName)
	assert.True(t, result.User.IsPhoneVerified)
}

func TestOTPService_Verify_Success_ExistingUser(t *testing.T) {
	salt, err := auth.GenerateSalt()
	require.NoError(t, err)
	hash, err := auth.HashOTP("482913", salt)
	require.NoError(t, err)

	existing := NewTestPhoneUser("user_123", "9876543210", "Asha")

	mockOTPRepo := &MockOTPRepository{
		GetLatestActiveFunc: func(ctx context.Context, phoneNumber string) (*models.OTPRecord, error) {
			return NewTestOTPRecord("otp_123", phoneNumber, hash, salt), nil
		},
	}
	mockUserRepo := &MockUserRepository{
		GetByPhoneFunc: func(ctx context.Context, phoneNumber string) (*models.User, error) {
			return existing, nil
		},
		MarkPhoneVerifiedFunc: func(ctx context.Context, id string) (*models.User, error) {
			return existing, nil
		},
	}

	svc := NewOTPService(mockOTPRepo, mockUserRepo, &MockSMSSender{}, slog.Default())

	result, err := svc.Verify(context.Background(), "9876543210", "482913", "ignored")

	require.NoError(t, err)
	assert.False(t, result.IsNewUser)
	assert.Equal(t, "user_123", result.User.ID)
	assert.Equal(t, "Asha", result.User.UserName)
}

func TestOTPService_Verify_WrongCodeIncrementsAttempts(t *testing.T) {
	salt, err := auth.GenerateSalt()
	require.NoError(t, err)
	hash, err := auth.HashOTP("482913", salt)
	require.NoError(t, err)

	incremented := false

	mockOTPRepo := &MockOTPRepository{
		GetLatestActiveFunc: func(ctx context.Context, phoneNumber string) (*models.OTPRecord, error) {
			return NewTestOTPRecord("otp_123", phoneNumber, hash, salt), nil
		},
		IncrementAttemptsFunc: func(ctx context.Context, id string) (int, error) {
			incremented = true
			return 1, nil
		},
	}

	svc := NewOTPService(mockOTPRepo, &MockUserRepository{}, &MockSMSSender{}, slog.Default())

	result, err := svc.Verify(context.Background(), "9876543210", "000000", "")

	assert.ErrorIs(t, err, models.ErrInvalidOTP)
	assert.Nil(t, result)
	assert.True(t, incremented)
}

func TestOTPService_Verify_AttemptBudgetBoundary(t *testing.T) {
	salt, err := auth.GenerateSalt()
	require.NoError(t, err)
	hash, err := auth.HashOTP("482913", salt)
	require.NoError(t, err)

	// One stateful record: five wrong guesses spend the budget, after which
	// even the correct code is refused.
	record := NewTestOTPRecord("otp_123", "9876543210", hash, salt)

	mockOTPRepo := &MockOTPRepository{
		GetLatestActiveFunc: func(ctx context.Context, phoneNumber string) (*models.OTPRecord, error) {
			snapshot := *record
			return &snapshot, nil
		},
		IncrementAttemptsFunc: func(ctx context.Context, id string) (int, error) {
			record.Attempts++
			return record.Attempts, nil
		},
	}

	svc := NewOTPService(mockOTPRepo, &MockUserRepository{}, &MockSMSSender{}, slog.Default())

	for i := 0; i < models.OTPMaxAttempts; i++ {
		_, err := svc.Verify(context.Background(), "9876543210", "000000", "")
		assert.ErrorIs(t, err, models.ErrInvalidOTP)
	}

	result, err := svc.Verify(context.Background(), "9876543210", "482913", "")

	assert.ErrorIs(t, err, models.ErrAttemptsExceeded)
	assert.Nil(t, result)
}

func TestOTPService_Verify_NoActiveRecord(t *testing.T) {
	svc := NewOTPService(&MockOTPRepository{}, &MockUserRepository{}, &MockSMSSender{}, slog.Default())

	result, err := svc.Verify(context.Background(), "9876543210", "123456", "")

	assert.ErrorIs(t, err, models.ErrInvalidOrExpiredOTP)
	assert.Nil(t, result)
}

func TestOTPService_Verify_MalformedCode(t *testing.T) {
	svc := NewOTPService(&MockOTPRepository{}, &MockUserRepository{}, &MockSMSSender{}, slog.Default())

	_, err := svc.Verify(context.Background(), "9876543210", "12345", "")
	assert.ErrorIs(t, err, models.ErrInvalidOTPFormat)

	_, err = svc.Verify(context.Background(), "9876543210", "12a456", "")
	assert.ErrorIs(t, err, models.ErrInvalidOTPFormat)
}

func TestOTPService_Verify_ConsumeRaceLoses(t *testing.T) {
	salt, err := auth.GenerateSalt()
	require.NoError(t, err)
	hash, err := auth.HashOTP("482913", salt)
	require.NoError(t, err)

	mockOTPRepo := &MockOTPRepository{
		GetLatestActiveFunc: func(ctx context.Context, phoneNumber string) (*models.OTPRecord, error) {
			return NewTestOTPRecord("otp_123", phoneNumber, hash, salt), nil
		},
		ConsumeFunc: func(ctx context.Context, id string) error {
			// Another verification consumed the record first
			return models.ErrInvalidOrExpiredOTP
		},
	}

	svc := NewOTPService(mockOTPRepo, &MockUserRepository{}, &MockSMSSender{}, slog.Default())

	result, err := svc.Verify(context.Background(), "9876543210", "482913", "")

	assert.ErrorIs(t, err, models.ErrInvalidOrExpiredOTP)
	assert.Nil(t, result)
}

func TestOTPService_Verify_IdentityConflictFallsBack(t *testing.T) {
	salt, err := auth.GenerateSalt()
	require.NoError(t, err)
	hash, err := auth.HashOTP("482913", salt)
	require.NoError(t, err)

	racer := NewTestPhoneUser("user_racer", "9876543210", "Racer")
	lookups := 0

	mockOTPRepo := &MockOTPRepository{
		GetLatestActiveFunc: func(ctx context.Context, phoneNumber string) (*models.OTPRecord, error) {
			return NewTestOTPRecord("otp_123", phoneNumber, hash, salt), nil
		},
	}
	mockUserRepo := &MockUserRepository{
		GetByPhoneFunc: func(ctx context.Context, phoneNumber string) (*models.User, error) {
			lookups++
			if lookups == 1 {
				return nil, models.ErrNotFound
			}
			return racer, nil
		},
		CreateFunc: func(ctx context.Context, user *models.User) (*models.User, error) {
			return nil, models.ErrConflict
		},
		MarkPhoneVerifiedFunc: func(ctx context.Context, id string) (*models.User, error) {
			return racer, nil
		},
	}

	svc := NewOTPService(mockOTPRepo, mockUserRepo, &MockSMSSender{}, slog.Default())

	result, err := svc.Verify(context.Background(), "9876543210", "482913", "")

	require.NoError(t, err)
	assert.False(t, result.IsNewUser)
	assert.Equal(t, "user_racer", result.User.ID)
}

func TestOTPService_Cleanup(t *testing.T) {
	mockOTPRepo := &MockOTPRepository{
		CleanupExpiredFunc: func(ctx context.Context) (int64, error) {
			return 7, nil
		},
	}

	svc := NewOTPService(mockOTPRepo, &MockUserRepository{}, &MockSMSSender{}, slog.Default())

	deleted, err := svc.Cleanup(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(7), deleted)
}
