package services

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisekadhikari/burningsawals/internal/auth"
	"github.com/abhisekadhikari/burningsawals/internal/models"
)

func newAuthServiceForTest(otp OTPFlow, users UserRepository, tokens TokenIssuer, guard RequestGuard) *AuthService {
	return NewAuthService(otp, users, tokens, guard, slog.Default())
}

func TestAuthService_SendOTP_Success(t *testing.T) {
	mockFlow := &MockOTPFlow{
		IssueFunc: func(ctx context.Context, phoneNumber string) (*IssueResult, error) {
			assert.Equal(t, "9876543210", phoneNumber)
			return &IssueResult{OTPID: "otp_123"}, nil
		},
	}

	svc := newAuthServiceForTest(mockFlow, &MockUserRepository{}, &MockTokenIssuer{}, &MockRequestGuard{})

	result, err := svc.SendOTP(context.Background(), "+919876543210", "203.0.113.7")

	require.NoError(t, err)
	assert.Equal(t, "otp_123", result.OTPID)
}

func TestAuthService_SendOTP_InvalidPhone(t *testing.T) {
	svc := newAuthServiceForTest(&MockOTPFlow{}, &MockUserRepository{}, &MockTokenIssuer{}, &MockRequestGuard{})

	result, err := svc.SendOTP(context.Background(), "12345", "203.0.113.7")

	assert.ErrorIs(t, err, models.ErrInvalidPhoneFormat)
	assert.Nil(t, result)
}

func TestAuthService_SendOTP_RateLimited(t *testing.T) {
	issued := false
	mockFlow := &MockOTPFlow{
		IssueFunc: func(ctx context.Context, phoneNumber string) (*IssueResult, error) {
			issued = true
			return &IssueResult{OTPID: "otp_123"}, nil
		},
	}
	mockGuard := &MockRequestGuard{
		AllowSendFunc: func(ctx context.Context, ip, phoneNumber string) bool {
			return false
		},
	}

	svc := newAuthServiceForTest(mockFlow, &MockUserRepository{}, &MockTokenIssuer{}, mockGuard)

	result, err := svc.SendOTP(context.Background(), "9876543210", "203.0.113.7")

	assert.ErrorIs(t, err, models.ErrRateLimitExceeded)
	assert.Nil(t, result)
	assert.False(t, issued)
}

func TestAuthService_VerifyOTP_Success(t *testing.T) {
	user := NewTestPhoneUser("user_123", "9876543210", "Asha")
	mockFlow := &MockOTPFlow{
		VerifyFunc: func(ctx context.Context, phoneNumber, code, userName string) (*VerifyResult, error) {
			return &VerifyResult{User: user, IsNewUser: true}, nil
		},
	}
	mockTokens := &MockTokenIssuer{
		IssueFunc: func(userID, phoneNumber, email string) (string, error) {
			assert.Equal(t, "user_123", userID)
			assert.Equal(t, "9876543210", phoneNumber)
			return "signed.encrypted.token", nil
		},
	}

	svc := newAuthServiceForTest(mockFlow, &MockUserRepository{}, mockTokens, &MockRequestGuard{})

	resp, err := svc.VerifyOTP(context.Background(), "9876543210", "482913", "Asha", "203.0.113.7")

	require.NoError(t, err)
	assert.Equal(t, "signed.encrypted.token", resp.Token)
	assert.Equal(t, "user_123", resp.User.UserID)
	assert.True(t, resp.User.IsNewUser)
	require.NotNil(t, resp.User.PhoneNumber)
	assert.Equal(t, "9876543210", *resp.User.PhoneNumber)
}

func TestAuthService_VerifyOTP_RateLimited(t *testing.T) {
	mockGuard := &MockRequestGuard{
		AllowVerifyFunc: func(ctx context.Context, ip, phoneNumber string) bool {
			return false
		},
	}

	svc := newAuthServiceForTest(&MockOTPFlow{}, &MockUserRepository{}, &MockTokenIssuer{}, mockGuard)

	resp, err := svc.VerifyOTP(context.Background(), "9876543210", "482913", "", "203.0.113.7")

	assert.ErrorIs(t, err, models.ErrRateLimitExceeded)
	assert.Nil(t, resp)
}

func TestAuthService_VerifyOTP_WrongCodePropagates(t *testing.T) {
	mockFlow := &MockOTPFlow{
		VerifyFunc: func(ctx context.Context, phoneNumber, code, userName string) (*VerifyResult, error) {
			return nil, models.ErrInvalidOTP
		},
	}

	svc := newAuthServiceForTest(mockFlow, &MockUserRepository{}, &MockTokenIssuer{}, &MockRequestGuard{})

	resp, err := svc.VerifyOTP(context.Background(), "9876543210", "000000", "", "203.0.113.7")

	assert.ErrorIs(t, err, models.ErrInvalidOTP)
	assert.Nil(t, resp)
}

func TestAuthService_VerifyOTP_TokenFailure(t *testing.T) {
	mockFlow := &MockOTPFlow{
		VerifyFunc: func(ctx context.Context, phoneNumber, code, userName string) (*VerifyResult, error) {
			return &VerifyResult{User: NewTestPhoneUser("user_123", phoneNumber, "Asha")}, nil
		},
	}
	mockTokens := &MockTokenIssuer{
		IssueFunc: func(userID, phoneNumber, email string) (string, error) {
			return "", assert.AnError
		},
	}

	svc := newAuthServiceForTest(mockFlow, &MockUserRepository{}, mockTokens, &MockRequestGuard{})

	resp, err := svc.VerifyOTP(context.Background(), "9876543210", "482913", "", "203.0.113.7")

	assert.ErrorIs(t, err, models.ErrInternalServer)
	assert.Nil(t, resp)
}

func TestAuthService_LoginWithGoogle_NewUser(t *testing.T) {
	mockUsers := &MockUserRepository{
		CreateFunc: func(ctx context.Context, user *models.User) (*models.User, error) {
			user.ID = "user_google"
			return user, nil
		},
	}

	svc := newAuthServiceForTest(&MockOTPFlow{}, mockUsers, &MockTokenIssuer{}, &MockRequestGuard{})

	resp, err := svc.LoginWithGoogle(context.Background(), &auth.GoogleUser{
		ID:    "google_1",
		Email: "asha@example.com",
		Name:  "Asha",
	})

	require.NoError(t, err)
	assert.True(t, resp.User.IsNewUser)
	assert.Equal(t, "user_google", resp.User.UserID)
	assert.Equal(t, "Asha", resp.User.UserName)
	require.NotNil(t, resp.User.Email)
	assert.Equal(t, "asha@example.com", *resp.User.Email)
}

func TestAuthService_LoginWithGoogle_ExistingUser(t *testing.T) {
	existing := NewTestGoogleUser("user_123", "asha@example.com", "Asha")
	mockUsers := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return existing, nil
		},
		TouchLoginFunc: func(ctx context.Context, id string) (*models.User, error) {
			return existing, nil
		},
	}

	svc := newAuthServiceForTest(&MockOTPFlow{}, mockUsers, &MockTokenIssuer{}, &MockRequestGuard{})

	resp, err := svc.LoginWithGoogle(context.Background(), &auth.GoogleUser{
		Email: "asha@example.com",
		Name:  "Asha",
	})

	require.NoError(t, err)
	assert.False(t, resp.User.IsNewUser)
	assert.Equal(t, "user_123", resp.User.UserID)
}

func TestAuthService_LoginWithGoogle_ConflictFallsBack(t *testing.T) {
	racer := NewTestGoogleUser("user_racer", "asha@example.com", "Asha")
	lookups := 0

	mockUsers := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			lookups++
			if lookups == 1 {
				return nil, models.ErrNotFound
			}
			return racer, nil
		},
		CreateFunc: func(ctx context.Context, user *models.User) (*models.User, error) {
			return nil, models.ErrConflict
		},
	}

	svc := newAuthServiceForTest(&MockOTPFlow{}, mockUsers, &MockTokenIssuer{}, &MockRequestGuard{})

	resp, err := svc.LoginWithGoogle(context.Background(), &auth.GoogleUser{Email: "asha@example.com"})

	require.NoError(t, err)
	assert.False(t, resp.User.IsNewUser)
	assert.Equal(t, "user_racer", resp.User.UserID)
}

func TestAuthService_LoginWithGoogle_FallsBackToEmailName(t *testing.T) {
	mockUsers := &MockUserRepository{
		CreateFunc: func(ctx context.Context, user *models.User) (*models.User, error) {
			user.ID = "user_google"
			return user, nil
		},
	}

	svc := newAuthServiceForTest(&MockOTPFlow{}, mockUsers, &MockTokenIssuer{}, &MockRequestGuard{})

	resp, err := svc.LoginWithGoogle(context.Background(), &auth.GoogleUser{Email: "asha@example.com"})

	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", resp.User.UserName)
}

func TestAuthService_Me(t *testing.T) {
	user := NewTestPhoneUser("user_123", "9876543210", "Asha")
	mockUsers := &MockUserRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			if id == "user_123" {
				return user, nil
			}
			return nil, models.ErrNotFound
		},
	}

	svc := newAuthServiceForTest(&MockOTPFlow{}, mockUsers, &MockTokenIssuer{}, &MockRequestGuard{})

	got, err := svc.Me(context.Background(), "user_123")
	require.NoError(t, err)
	assert.Equal(t, "user_123", got.ID)

	_, err = svc.Me(context.Background(), "user_missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
