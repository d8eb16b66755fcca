package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	pkglogger "github.com/abhisekadhikari/burningsawals/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// AbuseGuardConfig holds the per-key window limits for the OTP endpoints
type AbuseGuardConfig struct {
	SendLimit    int
	SendWindow   time.Duration
	VerifyLimit  int
	VerifyWindow time.Duration
}

// Suspicion thresholds over the rolling hour (spec'd heuristics; flag-only)
const (
	suspicionWindow         = time.Hour
	suspicionIssuanceLimit  = 10
	suspicionExhaustedLimit = 3
)

// slidingWindowScript trims entries older than the window, counts the rest,
// and admits the request atomically.
var slidingWindowScript = redis.NewScript(`
	local key = KEYS[1]
	local now = tonumber(ARGV[1])
	local window_start = tonumber(ARGV[2])
	local limit = tonumber(ARGV[3])
	local ttl = tonumber(ARGV[4])

	redis.call('ZREMRANGEBYSCORE', key, '-inf', window_start)

	local count = redis.call('ZCARD', key)
	if count >= limit then
		return 0
	end

	redis.call('ZADD', key, now, now .. '-' .. math.random(1000000))
	redis.call('EXPIRE', key, ttl)
	return 1
`)

// AbuseGuard rate limits the OTP endpoints per (client IP, phone number) pair
// and computes the suspicious-activity heuristic. Both mechanisms are
// advisory gates around the OTP core, not part of its contract.
type AbuseGuard struct {
	client  *redis.Client
	otpRepo OTPRepository
	config  AbuseGuardConfig
	logger  *slog.Logger
}

// NewAbuseGuard creates a new AbuseGuard
func NewAbuseGuard(client *redis.Client, otpRepo OTPRepository, config AbuseGuardConfig, logger *slog.Logger) *AbuseGuard {
	return &AbuseGuard{
		client:  client,
		otpRepo: otpRepo,
		config:  config,
		logger:  logger,
	}
}

// AllowSend gates an OTP issuance request
func (g *AbuseGuard) AllowSend(ctx context.Context, ip, phoneNumber string) bool {
	key := fmt.Sprintf("otp_send:%s:%s", ip, phoneNumber)
	return g.allow(ctx, key, g.config.SendLimit, g.config.SendWindow)
}

// AllowVerify gates an OTP verification request
func (g *AbuseGuard) AllowVerify(ctx context.Context, ip, phoneNumber string) bool {
	key := fmt.Sprintf("otp_verify:%s:%s", ip, phoneNumber)
	return g.allow(ctx, key, g.config.VerifyLimit, g.config.VerifyWindow)
}

func (g *AbuseGuard) allow(ctx context.Context, key string, limit int, window time.Duration) bool {
	now := time.Now().UnixMilli()
	windowStart := now - window.Milliseconds()
	ttl := int(window.Seconds()) + 1

	admitted, err := slidingWindowScript.Run(ctx, g.client, []string{key}, now, windowStart, limit, ttl).Int()
	if err != nil {
		// Fail open for availability: a cache outage should not lock out
		// legitimate users. Limit-exceeded decisions still fail closed.
		g.logger.Error("rate limit check failed", slog.String("key", key), slog.Any("error", err))
		return true
	}

	if admitted == 0 {
		g.logger.Warn("otp rate limit exceeded", slog.String("key", key), slog.Int("limit", limit))
		return false
	}

	return true
}

// SuspicionReport is the outcome of the on-demand heuristic scan
type SuspicionReport struct {
	PhoneNumber string
	Flagged     bool
	Reasons     []string
}

// CheckSuspicion scans the last rolling hour of OTP activity for a phone
// number. It only flags and logs; it never blocks the request.
func (g *AbuseGuard) CheckSuspicion(ctx context.Context, phoneNumber string) *SuspicionReport {
	report := &SuspicionReport{PhoneNumber: phoneNumber}
	since := time.Now().Add(-suspicionWindow)

	issued, err := g.otpRepo.CountIssuedSince(ctx, phoneNumber, since)
	if err != nil {
		g.logger.Error("failed to count recent issuances",
			slog.String("phone", pkglogger.SanitizedPhone(phoneNumber)),
			slog.Any("error", err))
		return report
	}
	if issued > suspicionIssuanceLimit {
		report.Flagged = true
		report.Reasons = append(report.Reasons,
			fmt.Sprintf("%d otp issuances in the last hour", issued))
	}

	exhausted, err := g.otpRepo.CountExhaustedSince(ctx, phoneNumber, since)
	if err != nil {
		g.logger.Error("failed to count exhausted records",
			slog.String("phone", pkglogger.SanitizedPhone(phoneNumber)),
			slog.Any("error", err))
		return report
	}
	if exhausted > suspicionExhaustedLimit {
		report.Flagged = true
		report.Reasons = append(report.Reasons,
			fmt.Sprintf("%d records with exhausted attempts in the last hour", exhausted))
	}

	if report.Flagged {
		g.logger.Warn("suspicious otp activity",
			slog.String("phone", pkglogger.SanitizedPhone(phoneNumber)),
			slog.Any("reasons", report.Reasons))
	}

	return report
}
