package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Innovatorone/InnoBOOKweb/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// Authenticate checks phone and password with the authenticate_user
// database function.
func (r *UserRepository) Authenticate(ctx context.Context, phone, password string) (model.User, error) {
	const query = `
		SELECT user_id, user_name, user_avatar, user_type, user_plan, user_email, user_phone
		FROM authenticate_user($1, $2)`

	var user model.User
	err := r.db.QueryRow(ctx, query, phone, password).Scan(
		&user.ID, &user.Name, &user.Avatar, &user.Type, &user.Plan, &user.Email, &user.Phone,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrInvalidCredentials
		}
		return model.User{}, fmt.Errorf("failed to authenticate user: %w", err)
	}

	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, params model.SignUpParams) (uuid.UUID, error) {
	const query = `SELECT create_user_with_phone($1, $2, $3, $4)`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query, params.Phone, params.Password, params.Name, params.Avatar).Scan(&id)
	if err != nil {
		if pgCode(err) == codeUniqueViolation {
			return uuid.Nil, model.ErrAlreadyExists
		}
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}

	return id, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	const query = `
		SELECT id, name, phone, email, avatar, type, plan, last_login, created_at
		FROM users WHERE id = $1`

	var user model.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Phone, &user.Email, &user.Avatar,
		&user.Type, &user.Plan, &user.LastLogin, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	const query = `UPDATE users SET last_login = $2 WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
