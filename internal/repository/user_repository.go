package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"learnhub/internal/domain"
	"learnhub/internal/repository/models"
	"learnhub/internal/util"

	"github.com/jmoiron/sqlx"
)

// UserDatabaseAdapter implements domain.UserRepository using sqlx.DB.
type UserDatabaseAdapter struct {
	db *sqlx.DB
}

// NewUserDatabaseAdapter creates a new instance of UserDatabaseAdapter.
func NewUserDatabaseAdapter(db *sqlx.DB) domain.UserRepository {
	return &UserDatabaseAdapter{db: db}
}

const userColumns = `
	id "id",
	google_id "google_id",
	email "email",
	name "name",
	role "role",
	profile_picture_url "profile_picture_url",
	encrypted_access_token "encrypted_access_token",
	encrypted_refresh_token "encrypted_refresh_token",
	created_at "created_at",
	updated_at "updated_at",
	deleted_at "deleted_at"`

// GetUserByID implements domain.UserRepository.
func (a *UserDatabaseAdapter) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	exec := GetExecutor(ctx, a.db)

	var m models.User
	query := `SELECT ` + userColumns + `
	FROM users
	WHERE id = :1
	AND deleted_at IS NULL`

	err := exec.GetContext(ctx, &m, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}
	return toDomainUser(&m), nil
}

// GetUserByGoogleID implements domain.UserRepository.
func (a *UserDatabaseAdapter) GetUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	exec := GetExecutor(ctx, a.db)

	var m models.User
	query := `SELECT ` + userColumns + `
	FROM users
	WHERE google_id = :1
	AND deleted_at IS NULL`

	err := exec.GetContext(ctx, &m, query, googleID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by google ID: %w", err)
	}
	return toDomainUser(&m), nil
}

// CreateUser implements domain.UserRepository.
func (a *UserDatabaseAdapter) CreateUser(ctx context.Context, user *domain.User) error {
	exec := GetExecutor(ctx, a.db)

	now := time.Now()
	if user.ID == "" {
		user.ID = util.NewULID()
	}
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `INSERT INTO users (
		id, google_id, email, name, role, profile_picture_url,
		encrypted_access_token, encrypted_refresh_token, created_at, updated_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8, :9, :10
	)`

	_, err := exec.ExecContext(ctx, query,
		user.ID,
		user.GoogleID,
		user.Email,
		util.StringToNullString(user.Name),
		user.Role,
		util.StringToNullString(user.ProfilePictureURL),
		util.StringToNullString(user.EncryptedAccessToken),
		util.StringToNullString(user.EncryptedRefreshToken),
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// UpdateUser implements domain.UserRepository.
func (a *UserDatabaseAdapter) UpdateUser(ctx context.Context, user *domain.User) error {
	exec := GetExecutor(ctx, a.db)

	user.UpdatedAt = time.Now()

	query := `UPDATE users
	SET email = :1,
		name = :2,
		role = :3,
		profile_picture_url = :4,
		encrypted_access_token = :5,
		encrypted_refresh_token = :6,
		updated_at = :7
	WHERE id = :8
	AND deleted_at IS NULL`

	result, err := exec.ExecContext(ctx, query,
		user.Email,
		util.StringToNullString(user.Name),
		user.Role,
		util.StringToNullString(user.ProfilePictureURL),
		util.StringToNullString(user.EncryptedAccessToken),
		util.StringToNullString(user.EncryptedRefreshToken),
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", user.ID, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if rows == 0 {
		return domain.NewNotFoundError(fmt.Sprintf("user not found: %s", user.ID))
	}
	return nil
}

// CountUsers implements domain.UserRepository.
func (a *UserDatabaseAdapter) CountUsers(ctx context.Context) (int, error) {
	exec := GetExecutor(ctx, a.db)

	var count int
	query := `SELECT COUNT(*) FROM users WHERE deleted_at IS NULL`
	if err := exec.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func toDomainUser(m *models.User) *domain.User {
	if m == nil {
		return nil
	}
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}
	return &domain.User{
		ID:                    m.ID,
		GoogleID:              m.GoogleID,
		Email:                 m.Email,
		Name:                  util.NullStringToString(m.Name),
		Role:                  m.Role,
		ProfilePictureURL:     util.NullStringToString(m.ProfilePictureURL),
		EncryptedAccessToken:  util.NullStringToString(m.EncryptedAccessToken),
		EncryptedRefreshToken: util.NullStringToString(m.EncryptedRefreshToken),
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
		DeletedAt:             deletedAt,
	}
}
