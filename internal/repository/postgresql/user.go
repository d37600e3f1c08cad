package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

const userColumns = `id, email, full_name, password_hash, role, created_at, updated_at`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	var role string
	if err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.PasswordHash, &role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return user.User{}, err
	}
	u.Role = user.Role(role)
	return u, nil
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`

	u, err := scanUser(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	return u, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return u, nil
}

// ListByRole implements user.UserRepository.
func (r *userRepositoryImpl) ListByRole(ctx context.Context, role user.Role) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY id`

	rows, err := q.Query(ctx, query, string(role))
	if err != nil {
		return nil, fmt.Errorf("failed to list users by role: %w", err)
	}
	defer rows.Close()

	users := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Create implements user.UserRepository. An existing email is left as is.
func (r *userRepositoryImpl) Create(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := q.Exec(ctx, query, u.ID, u.Email, u.FullName, u.PasswordHash, string(u.Role), u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return user.User{}, user.ErrEmailTaken
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}
