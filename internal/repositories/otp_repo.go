package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisekadhikari/burningsawals/internal/database"
	"github.com/abhisekadhikari/burningsawals/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OTPRepository handles OTP record data access
type OTPRepository struct {
	pool *pgxpool.Pool
}

// NewOTPRepository creates a new OTPRepository
func NewOTPRepository(db *database.DB) *OTPRepository {
	return &OTPRepository{pool: db.Pool}
}

// rowScanner interface for scanning rows (supports both single row and multiple rows)
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOTPRow(row rowScanner) (*models.OTPRecord, error) {
	var record models.OTPRecord
	var consumedAt *time.Time

	err := row.Scan(
		&record.ID, &record.PhoneNumber, &record.CodeHash, &record.Salt,
		&record.Attempts, &record.MaxAttempts,
		&record.ExpiresAt, &consumedAt, &record.CreatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	record.ConsumedAt = consumedAt
	return &record, nil
}

// Create persists a new OTP record with a zero attempt counter
func (r *OTPRepository) Create(ctx context.Context, record *models.OTPRecord) (*models.OTPRecord, error) {
	record.ID = uuid.New().String()
	record.CreatedAt = time.Now()

	query := `
		INSERT INTO otp_records (id, phone_number, code_hash, salt, attempts, max_attempts, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, phone_number, code_hash, salt, attempts, max_attempts, expires_at, consumed_at, created_at
	`

	created, err := scanOTPRow(r.pool.QueryRow(ctx, query,
		record.ID, record.PhoneNumber, record.CodeHash, record.Salt,
		record.Attempts, record.MaxAttempts, record.ExpiresAt, record.CreatedAt,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create otp record: %w", err)
	}

	return created, nil
}

// GetLatestActive returns the most recently created unconsumed, unexpired
// record for a phone number.
func (r *OTPRepository) GetLatestActive(ctx context.Context, phoneNumber string) (*models.OTPRecord, error) {
	query := `
		SELECT id, phone_number, code_hash, salt, attempts, max_attempts, expires_at, consumed_at, created_at
		FROM otp_records
		WHERE phone_number = $1 AND consumed_at IS NULL AND expires_at > NOW()
		ORDER BY created_at DESC
		LIMIT 1
	`

	return scanOTPRow(r.pool.QueryRow(ctx, query, phoneNumber))
}

// IncrementAttempts bumps the attempt counter after a failed comparison. The
// counter is bounded by max_attempts in SQL so it can never exceed the budget
// in storage.
func (r *OTPRepository) IncrementAttempts(ctx context.Context, id string) (int, error) {
	query := `
		UPDATE otp_records
		SET attempts = attempts + 1
		WHERE id = $1 AND attempts < max_attempts
		RETURNING attempts
	`

	var attempts int
	if err := r.pool.QueryRow(ctx, query, id).Scan(&attempts); err != nil {
		return 0, database.MapPostgresError(err)
	}

	return attempts, nil
}

// Consume marks a record as spent. The update is conditional on
// consumed_at IS NULL and the affected-row count is checked, so of two racing
// verifications only one can win; the loser sees ErrInvalidOrExpiredOTP.
func (r *OTPRepository) Consume(ctx context.Context, id string) error {
	query := `
		UPDATE otp_records
		SET consumed_at = NOW()
		WHERE id = $1 AND consumed_at IS NULL AND expires_at > NOW()
	`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to consume otp record: %w", err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrInvalidOrExpiredOTP
	}

	return nil
}

// Delete removes a record, used to roll back persistence when dispatch fails
func (r *OTPRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM otp_records WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete otp record: %w", err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

// CleanupExpired deletes records whose expiry has passed
func (r *OTPRepository) CleanupExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM otp_records WHERE expires_at < NOW()`

	result, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup expired otp records: %w", err)
	}

	return result.RowsAffected(), nil
}

// CountIssuedSince counts issuances for a phone number after the given time
func (r *OTPRepository) CountIssuedSince(ctx context.Context, phoneNumber string, since time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM otp_records WHERE phone_number = $1 AND created_at > $2`

	var count int
	if err := r.pool.QueryRow(ctx, query, phoneNumber, since).Scan(&count); err != nil {
		return 0, database.MapPostgresError(err)
	}

	return count, nil
}

// CountExhaustedSince counts distinct records that burned their whole attempt
// budget after the given time.
func (r *OTPRepository) CountExhaustedSince(ctx context.Context, phoneNumber string, since time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM otp_records
		WHERE phone_number = $1 AND created_at > $2 AND attempts >= max_attempts
	`

	var count int
	if err := r.pool.QueryRow(ctx, query, phoneNumber, since).Scan(&count); err != nil {
		return 0, database.MapPostgresError(err)
	}

	return count, nil
}
