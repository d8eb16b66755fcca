package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/abhisekadhikari/burningsawals/internal/auth"
	"github.com/abhisekadhikari/burningsawals/internal/models"
	pkglogger "github.com/abhisekadhikari/burningsawals/pkg/logger"
)

// OTPFlow is the issue/verify capability consumed by the auth orchestrator
type OTPFlow interface {
	Issue(ctx context.Context, phoneNumber string) (*IssueResult, error)
	Verify(ctx context.Context, phoneNumber, code, userName string) (*VerifyResult, error)
}

// TokenIssuer signs and encrypts the bearer token for an identity
type TokenIssuer interface {
	Issue(userID, phoneNumber, email string) (string, error)
}

// RequestGuard gates requests before they reach the OTP core
type RequestGuard interface {
	AllowSend(ctx context.Context, ip, phoneNumber string) bool
	AllowVerify(ctx context.Context, ip, phoneNumber string) bool
	CheckSuspicion(ctx context.Context, phoneNumber string) *SuspicionReport
}

// AuthService orchestrates the authentication flows: abuse gating, OTP
// issue/verify, identity upsert and token issuance.
type AuthService struct {
	otp    OTPFlow
	users  UserRepository
	tokens TokenIssuer
	guard  RequestGuard
	logger *slog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(otp OTPFlow, users UserRepository, tokens TokenIssuer, guard RequestGuard, logger *slog.Logger) *AuthService {
	return &AuthService{
		otp:    otp,
		users:  users,
		tokens: tokens,
		guard:  guard,
		logger: logger,
	}
}

// AuthResponse is returned to the client after a successful authentication
type AuthResponse struct {
	Token string    `json:"token"`
	User  *AuthUser `json:"user"`
}

// AuthUser is the client-facing identity subset
type AuthUser struct {
	UserID      string  `json:"user_id"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Email       *string `json:"email,omitempty"`
	UserName    string  `json:"user_name"`
	IsNewUser   bool    `json:"is_new_user"`
}

// SendOTP gates and issues a verification code
func (s *AuthService) SendOTP(ctx context.Context, phoneNumber, clientIP string) (*IssueResult, error) {
	phone, err := NormalizePhone(phoneNumber)
	if err != nil {
		return nil, err
	}

	if !s.guard.AllowSend(ctx, clientIP, phone) {
		return nil, models.ErrRateLimitExceeded
	}

	result, err := s.otp.Issue(ctx, phone)
	if err != nil {
		return nil, err
	}

	s.scanSuspicion(phone)
	return result, nil
}

// VerifyOTP gates and verifies a code, then issues a bearer token
func (s *AuthService) VerifyOTP(ctx context.Context, phoneNumber, code, userName, clientIP string) (*AuthResponse, error) {
	phone, err := NormalizePhone(phoneNumber)
	if err != nil {
		return nil, err
	}

	if !s.guard.AllowVerify(ctx, clientIP, phone) {
		return nil, models.ErrRateLimitExceeded
	}

	result, err := s.otp.Verify(ctx, phone, code, userName)
	if err != nil {
		s.scanSuspicion(phone)
		return nil, err
	}

	return s.respondFor(result.User, result.IsNewUser)
}

// LoginWithGoogle upserts the identity from a verified Google profile and
// issues a bearer token.
func (s *AuthService) LoginWithGoogle(ctx context.Context, profile *auth.GoogleUser) (*AuthResponse, error) {
	existing, err := s.users.GetByEmail(ctx, profile.Email)
	if err == nil {
		updated, err := s.users.TouchLogin(ctx, existing.ID)
		if err != nil {
			s.logger.Error("failed to update google identity",
				slog.String("user_id", existing.ID),
				slog.Any("error", err))
			return nil, models.ErrInternalServer
		}
		return s.respondFor(updated, false)
	}

	if !errors.Is(err, models.ErrNotFound) {
		s.logger.Error("failed to look up google identity",
			slog.String("email", pkglogger.SanitizedEmail(profile.Email)),
			slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	userName := profile.Name
	if userName == "" {
		userName = profile.Email
	}

	now := time.Now()
	created, err := s.users.Create(ctx, &models.User{
		Email:        &profile.Email,
		UserName:     userName,
		AuthProvider: models.AuthProviderGoogle,
		LastLoginAt:  &now,
	})
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			racer, getErr := s.users.GetByEmail(ctx, profile.Email)
			if getErr != nil {
				return nil, models.ErrInternalServer
			}
			return s.respondFor(racer, false)
		}
		s.logger.Error("failed to create google identity",
			slog.String("email", pkglogger.SanitizedEmail(profile.Email)),
			slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return s.respondFor(created, true)
}

// Me resolves the identity behind a set of token claims
func (s *AuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *AuthService) respondFor(user *models.User, isNew bool) (*AuthResponse, error) {
	var phone, email string
	if user.PhoneNumber != nil {
		phone = *user.PhoneNumber
	}
	if user.Email != nil {
		email = *user.Email
	}

	token, err := s.tokens.Issue(user.ID, phone, email)
	if err != nil {
		s.logger.Error("failed to issue token",
			slog.String("user_id", user.ID),
			slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return &AuthResponse{
		Token: token,
		User: &AuthUser{
			UserID:      user.ID,
			PhoneNumber: user.PhoneNumber,
			Email:       user.Email,
			UserName:    user.UserName,
			IsNewUser:   isNew,
		},
	}, nil
}

// scanSuspicion runs the flag-only heuristic off the request path
func (s *AuthService) scanSuspicion(phone string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.guard.CheckSuspicion(ctx, phone)
	}()
}
