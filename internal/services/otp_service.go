package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/abhisekadhikari/burningsawals/internal/auth"
	"github.com/abhisekadhikari/burningsawals/internal/models"
	pkglogger "github.com/abhisekadhikari/burningsawals/pkg/logger"
)

// OTPRepository defines the interface for OTP record persistence
type OTPRepository interface {
	Create(ctx context.Context, record *models.OTPRecord) (*models.OTPRecord, error)
	GetLatestActive(ctx context.Context, phoneNumber string) (*models.OTPRecord, error)
	IncrementAttempts(ctx context.Context, id string) (int, error)
	Consume(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	CleanupExpired(ctx context.Context) (int64, error)
	CountIssuedSince(ctx context.Context, phoneNumber string, since time.Time) (int, error)
	CountExhaustedSince(ctx context.Context, phoneNumber string, since time.Time) (int, error)
}

// UserRepository defines the interface for identity persistence
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByPhone(ctx context.Context, phoneNumber string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	MarkPhoneVerified(ctx context.Context, id string) (*models.User, error)
	TouchLogin(ctx context.Context, id string) (*models.User, error)
}

var (
	// Domestic mobile numbers: 10 digits, leading digit 6-9.
	phonePattern = regexp.MustCompile(`^[6-9][0-9]{9}$`)
	otpPattern   = regexp.MustCompile(`^[0-9]{6}$`)
)

// NormalizePhone reduces a submitted phone number to the canonical 10-digit
// domestic form, stripping a +91/91/0 prefix and separator characters.
func NormalizePhone(input string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')':
			return -1
		}
		return r
	}, strings.TrimSpace(input))

	switch {
	case strings.HasPrefix(cleaned, "+91"):
		cleaned = cleaned[3:]
	case len(cleaned) == 12 && strings.HasPrefix(cleaned, "91"):
		cleaned = cleaned[2:]
	case len(cleaned) == 11 && strings.HasPrefix(cleaned, "0"):
		cleaned = cleaned[1:]
	}

	if !phonePattern.MatchString(cleaned) {
		return "", models.ErrInvalidPhoneFormat
	}

	return cleaned, nil
}

// OTPService issues and verifies one-time passcodes
type OTPService struct {
	otpRepo  OTPRepository
	userRepo UserRepository
	sms      SMSSender
	logger   *slog.Logger
}

// NewOTPService creates a new OTPService
func NewOTPService(otpRepo OTPRepository, userRepo UserRepository, sms SMSSender, logger *slog.Logger) *OTPService {
	return &OTPService{
		otpRepo:  otpRepo,
		userRepo: userRepo,
		sms:      sms,
		logger:   logger,
	}
}

// IssueResult carries the opaque record identifier back to the caller. The
// plaintext code is only dispatched, never returned.
type IssueResult struct {
	OTPID string
}

// VerifyResult reports the resolved identity after a successful verification
type VerifyResult struct {
	User      *models.User
	IsNewUser bool
}

// Issue generates, persists and dispatches a fresh code for a phone number.
// If dispatch fails the just-created record is rolled back so no
// verifiable-but-undeliverable code stays active.
func (s *OTPService) Issue(ctx context.Context, phoneNumber string) (*IssueResult, error) {
	phone, err := NormalizePhone(phoneNumber)
	if err != nil {
		return nil, err
	}

	code, err := generateCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate otp: %w", err)
	}

	salt, err := auth.GenerateSalt()
	if err != nil {
		return nil, err
	}

	hash, err := auth.HashOTP(code, salt)
	if err != nil {
		return nil, err
	}

	record, err := s.otpRepo.Create(ctx, &models.OTPRecord{
		PhoneNumber: phone,
		CodeHash:    hash,
		Salt:        salt,
		Attempts:    0,
		MaxAttempts: models.OTPMaxAttempts,
		ExpiresAt:   time.Now().Add(models.OTPExpiry),
	})
	if err != nil {
		s.logger.Error("failed to persist otp record",
			slog.String("phone", pkglogger.SanitizedPhone(phone)),
			slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	message := fmt.Sprintf("Your BurningSawals verification code is %s. It expires in 10 minutes.", code)
	if err := s.sms.Send(ctx, phone, message); err != nil {
		s.logger.Error("otp dispatch failed, rolling back record",
			slog.String("phone", pkglogger.SanitizedPhone(phone)),
			slog.Any("error", err))

		if delErr := s.otpRepo.Delete(ctx, record.ID); delErr != nil {
			s.logger.Error("failed to roll back undeliverable otp record",
				slog.String("otp_id", record.ID),
				slog.Any("error", delErr))
		}

		return nil, models.ErrDispatchFailed
	}

	s.logger.Info("otp issued",
		slog.String("otp_id", record.ID),
		slog.String("phone", pkglogger.SanitizedPhone(phone)))

	return &IssueResult{OTPID: record.ID}, nil
}

// Verify checks a submitted code against the newest active record for the
// phone number and resolves the user identity on success.
func (s *OTPService) Verify(ctx context.Context, phoneNumber, code, userName string) (*VerifyResult, error) {
	phone, err := NormalizePhone(phoneNumber)
	if err != nil {
		return nil, err
	}

	if !otpPattern.MatchString(code) {
		return nil, models.ErrInvalidOTPFormat
	}

	record, err := s.otpRepo.GetLatestActive(ctx, phone)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrInvalidOrExpiredOTP
		}
		s.logger.Error("failed to look up otp record",
			slog.String("phone", pkglogger.SanitizedPhone(phone)),
			slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if record.AttemptsExhausted() {
		return nil, models.ErrAttemptsExceeded
	}

	match, err := auth.VerifyOTP(code, record.Salt, record.CodeHash)
	if err != nil {
		return nil, models.ErrInternalServer
	}

	if !match {
		if _, err := s.otpRepo.IncrementAttempts(ctx, record.ID); err != nil && !errors.Is(err, models.ErrNotFound) {
			s.logger.Error("failed to increment otp attempts",
				slog.String("otp_id", record.ID),
				slog.Any("error", err))
		}
		return nil, models.ErrInvalidOTP
	}

	// Conditional update on consumed_at; a concurrent verify that lost the
	// race gets ErrInvalidOrExpiredOTP here rather than a duplicate success.
	if err := s.otpRepo.Consume(ctx, record.ID); err != nil {
		if errors.Is(err, models.ErrInvalidOrExpiredOTP) {
			return nil, err
		}
		s.logger.Error("failed to consume otp record",
			slog.String("otp_id", record.ID),
			slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	result, err := s.upsertIdentity(ctx, phone, userName)
	if err != nil {
		return nil, err
	}

	s.logger.Info("otp verified",
		slog.String("otp_id", record.ID),
		slog.String("phone", pkglogger.SanitizedPhone(phone)),
		slog.Bool("is_new_user", result.IsNewUser))

	return result, nil
}

func (s *OTPService) upsertIdentity(ctx context.Context, phone, userName string) (*VerifyResult, error) {
	existing, err := s.userRepo.GetByPhone(ctx, phone)
	if err == nil {
		updated, err := s.userRepo.MarkPhoneVerified(ctx, existing.ID)
		if err != nil {
			s.logger.Error("failed to update verified identity",
				slog.String("user_id", existing.ID),
				slog.Any("error", err))
			return nil, models.ErrInternalServer
		}
		return &VerifyResult{User: updated, IsNewUser: false}, nil
	}

	if !errors.Is(err, models.ErrNotFound) {
		s.logger.Error("failed to look up identity",
			slog.String("phone", pkglogger.SanitizedPhone(phone)),
			slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if userName == "" {
		userName = "User_" + phone
	}

	now := time.Now()
	created, err := s.userRepo.Create(ctx, &models.User{
		PhoneNumber:     &phone,
		UserName:        userName,
		AuthProvider:    models.AuthProviderPhone,
		IsPhoneVerified: true,
		LastLoginAt:     &now,
	})
	if err != nil {
		// A concurrent first verification can win the insert; fall back to
		// updating the identity it created.
		if errors.Is(err, models.ErrConflict) {
			racer, getErr := s.userRepo.GetByPhone(ctx, phone)
			if getErr != nil {
				return nil, models.ErrInternalServer
			}
			updated, updErr := s.userRepo.MarkPhoneVerified(ctx, racer.ID)
			if updErr != nil {
				return nil, models.ErrInternalServer
			}
			return &VerifyResult{User: updated, IsNewUser: false}, nil
		}

		s.logger.Error("failed to create identity",
			slog.String("phone", pkglogger.SanitizedPhone(phone)),
			slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return &VerifyResult{User: created, IsNewUser: true}, nil
}

// Cleanup removes expired records; run periodically by the background manager
func (s *OTPService) Cleanup(ctx context.Context) (int64, error) {
	return s.otpRepo.CleanupExpired(ctx)
}

// generateCode draws a uniformly random zero-padded numeric code
func generateCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < models.OTPLength; i++ {
		max.Mul(max, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%0*d", models.OTPLength, n), nil
}
