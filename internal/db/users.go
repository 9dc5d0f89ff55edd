package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/closurelabs/traininglog/internal/models"
)

func CreateUser(ctx context.Context, database *sql.DB, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.UID == "" {
		u.UID = u.ID
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	_, err := database.ExecContext(ctx, `
		INSERT INTO users (id, uid, name, email, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, u.ID, u.UID, u.Name, u.Email, u.PasswordHash, u.Role, u.CreatedAt)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func GetUserByEmail(ctx context.Context, database *sql.DB, email string) (*models.User, error) {
	return getUser(ctx, database, `email = $1`, strings.ToLower(strings.TrimSpace(email)))
}

func GetUserByUID(ctx context.Context, database *sql.DB, uid string) (*models.User, error) {
	return getUser(ctx, database, `uid = $1 OR id::text = $1`, uid)
}

func getUser(ctx context.Context, database *sql.DB, where string, arg any) (*models.User, error) {
	row := database.QueryRowContext(ctx, `
		SELECT id, uid, name, email, password_hash, role, created_at
		FROM users WHERE `+where, arg)
	var u models.User
	if err := row.Scan(&u.ID, &u.UID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func ListTrainers(ctx context.Context, database *sql.DB) ([]models.User, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT id, uid, name, email, password_hash, role, created_at
		FROM users WHERE role = 'trainer' ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.UID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func CountUsers(ctx context.Context, database *sql.DB) (int64, error) {
	var n int64
	err := database.QueryRowContext(ctx, `SELECT count(*) FROM users`).Scan(&n)
	return n, err
}

func UpdatePassword(ctx context.Context, database *sql.DB, userID, hash string) error {
	res, err := database.ExecContext(ctx,
		`UPDATE users SET password_hash = $1 WHERE id = $2`, hash, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
