package db

import (
	"context"
	"database/sql"

	"github.com/closurelabs/traininglog/internal/models"
)

// SeedAdmin provisions the first admin account into an empty users
// table. This replaces any runtime "well-known admin email" fallback:
// once any user exists the seed does nothing.
func SeedAdmin(ctx context.Context, database *sql.DB, email, passwordHash string) (bool, error) {
	if email == "" || passwordHash == "" {
		return false, nil
	}
	n, err := CountUsers(ctx, database)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	u := models.User{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: passwordHash,
		Role:         models.Admin,
	}
	if err := CreateUser(ctx, database, &u); err != nil {
		return false, err
	}
	return true, nil
}
