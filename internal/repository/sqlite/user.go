package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/seogenix/backend/internal/domain/plan"
	"github.com/seogenix/backend/internal/domain/user"
	"github.com/seogenix/backend/internal/pkg/errors"
)

// UserRepository implements user.Repository.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	query := `
		INSERT INTO users (email, password_hash, full_name, tier, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		u.Email, u.PasswordHash, u.FullName, string(u.Tier), now.Unix(), now.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create user", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return errors.DatabaseError("Failed to get user ID", err)
	}
	u.ID = id
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return r.getBy(ctx, "id = ?", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.getBy(ctx, "email = ?", email)
}

func (r *UserRepository) getBy(ctx context.Context, where string, arg interface{}) (*user.User, error) {
	query := `
		SELECT id, email, password_hash, full_name, tier, created_at, updated_at
		FROM users WHERE ` + where

	var u user.User
	var fullName sql.NullString
	var tier string
	var createdAt, updatedAt int64

	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &fullName, &tier, &createdAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("User")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get user", err)
	}

	if fullName.Valid {
		u.FullName = fullName.String
	}
	u.Tier = plan.Tier(tier)
	u.CreatedAt = time.Unix(createdAt, 0)
	u.UpdatedAt = time.Unix(updatedAt, 0)
	return &u, nil
}

func (r *UserRepository) UpdateTier(ctx context.Context, id int64, tier string) error {
	query := `UPDATE users SET tier = ?, updated_at = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, tier, time.Now().Unix(), id)
	if err != nil {
		return errors.DatabaseError("Failed to update tier", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return errors.NotFound("User")
	}
	return nil
}

func (r *UserRepository) GetPreferences(ctx context.Context, userID int64) (*user.Preferences, error) {
	query := `
		SELECT dismissed_hints, weekly_digest, updated_at
		FROM user_preferences WHERE user_id = ?
	`

	p := &user.Preferences{UserID: userID, DismissedHints: []string{}}
	var hintsJSON string
	var weeklyDigest int
	var updatedAt int64

	err := r.db.QueryRowContext(ctx, query, userID).Scan(&hintsJSON, &weeklyDigest, &updatedAt)
	if err == sql.ErrNoRows {
		// No row yet means default preferences
		return p, nil
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get preferences", err)
	}

	if err := json.Unmarshal([]byte(hintsJSON), &p.DismissedHints); err != nil {
		p.DismissedHints = []string{}
	}
	p.WeeklyDigest = weeklyDigest != 0
	p.UpdatedAt = time.Unix(updatedAt, 0)
	return p, nil
}

func (r *UserRepository) SavePreferences(ctx context.Context, p *user.Preferences) error {
	hints := p.DismissedHints
	if hints == nil {
		hints = []string{}
	}
	hintsJSON, err := json.Marshal(hints)
	if err != nil {
		return errors.Internal("Failed to encode preferences", err)
	}

	now := time.Now()
	p.UpdatedAt = now
	weeklyDigest := 0
	if p.WeeklyDigest {
		weeklyDigest = 1
	}

	query := `
		INSERT INTO user_preferences (user_id, dismissed_hints, weekly_digest, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			dismissed_hints = excluded.dismissed_hints,
			weekly_digest = excluded.weekly_digest,
			updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, p.UserID, string(hintsJSON), weeklyDigest, now.Unix()); err != nil {
		return errors.DatabaseError("Failed to save preferences", err)
	}
	return nil
}
