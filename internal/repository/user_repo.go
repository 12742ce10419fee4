package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"farmstead/internal/model"
	"farmstead/pkg/apierror"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (model.User, error) {
	return r.scanOne(ctx,
		`SELECT id, name, email, password_hash, phone, location, avatar, role, settings, join_date
		 FROM users WHERE id = $1`, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (model.User, error) {
	return r.scanOne(ctx,
		`SELECT id, name, email, password_hash, phone, location, avatar, role, settings, join_date
		 FROM users WHERE lower(email) = lower($1)`, strings.TrimSpace(email))
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE lower(email) = lower($1))`,
		strings.TrimSpace(email)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}
	return exists, nil
}

func (r *UserRepository) Create(ctx context.Context, u model.User) error {
	settings, err := json.Marshal(u.Settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash, phone, location, avatar, role, settings, join_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Phone, u.Location, u.Avatar, u.Role, settings, u.JoinDate)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, u model.User) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET name = $2, phone = $3, location = $4, avatar = $5 WHERE id = $1`,
		u.ID, u.Name, u.Phone, u.Location, u.Avatar)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apierror.NotFound("User not found", u.ID)
	}
	return nil
}

func (r *UserRepository) UpdateSettings(ctx context.Context, userID string, settings model.Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET settings = $2 WHERE id = $1`, userID, raw)
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apierror.NotFound("User not found", userID)
	}
	return nil
}

func (r *UserRepository) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM users ORDER BY join_date`)
	if err != nil {
		return nil, fmt.Errorf("list user ids: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *UserRepository) scanOne(ctx context.Context, query string, arg any) (model.User, error) {
	var (
		u   model.User
		raw []byte
	)
	err := r.pool.QueryRow(ctx, query, arg).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone, &u.Location,
			&u.Avatar, &u.Role, &raw, &u.JoinDate)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, apierror.New("NOT_FOUND", "User not found", "", http.StatusNotFound)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user: %w", err)
	}

	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &u.Settings); err != nil {
			return model.User{}, fmt.Errorf("decode settings: %w", err)
		}
	}
	return u, nil
}
