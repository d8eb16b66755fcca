package repositories

import (
	"context"
	"time"

	"github.com/abhisekadhikari/burningsawals/internal/database"
	"github.com/abhisekadhikari/burningsawals/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{pool: db.Pool}
}

const userColumns = `id, phone_number, email, user_name, auth_provider, is_phone_verified, last_login_at, created_at, updated_at`

func scanUserRow(scanner rowScanner) (*models.User, error) {
	var user models.User
	var phoneNumber, email *string
	var lastLoginAt *time.Time

	err := scanner.Scan(
		&user.ID, &phoneNumber, &email, &user.UserName, &user.AuthProvider,
		&user.IsPhoneVerified, &lastLoginAt,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	user.PhoneNumber = phoneNumber
	user.Email = email
	user.LastLoginAt = lastLoginAt

	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUserRow(r.pool.QueryRow(ctx, query, id))
}

func (r *UserRepository) GetByPhone(ctx context.Context, phoneNumber string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE phone_number = $1`
	return scanUserRow(r.pool.QueryRow(ctx, query, phoneNumber))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUserRow(r.pool.QueryRow(ctx, query, email))
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	user.ID = uuid.New().String()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
		INSERT INTO users (id, phone_number, email, user_name, auth_provider, is_phone_verified, last_login_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + userColumns

	created, err := scanUserRow(r.pool.QueryRow(ctx, query,
		user.ID, user.PhoneNumber, user.Email, user.UserName, user.AuthProvider,
		user.IsPhoneVerified, user.LastLoginAt, user.CreatedAt, user.UpdatedAt,
	))
	if err != nil {
		return nil, err
	}

	return created, nil
}

// MarkPhoneVerified records a successful verification login for an existing
// phone identity.
func (r *UserRepository) MarkPhoneVerified(ctx context.Context, id string) (*models.User, error) {
	query := `
		UPDATE users
		SET is_phone_verified = TRUE, last_login_at = NOW(), updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	return scanUserRow(r.pool.QueryRow(ctx, query, id))
}

// TouchLogin updates last_login_at for an existing identity
func (r *UserRepository) TouchLogin(ctx context.Context, id string) (*models.User, error) {
	query := `
		UPDATE users
		SET last_login_at = NOW(), updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	return scanUserRow(r.pool.QueryRow(ctx, query, id))
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM users WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
