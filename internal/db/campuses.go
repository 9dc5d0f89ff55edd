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

func CreateCampus(ctx context.Context, database *sql.DB, projectID, name string) (*models.Campus, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	p, err := GetProject(ctx, database, projectID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	c := models.Campus{
		ID:          uuid.NewString(),
		Name:        name,
		ProjectID:   p.ID,
		ProjectName: p.Name,
		CreatedAt:   time.Now().UTC(),
	}
	_, err = database.ExecContext(ctx, `
		INSERT INTO campuses (id, name, project_id, project_name, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, c.ID, c.Name, c.ProjectID, c.ProjectName, c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create campus: %w", err)
	}
	return &c, nil
}

func ListCampusesByProject(ctx context.Context, database *sql.DB, projectID string) ([]models.Campus, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT id, name, project_id, project_name, created_at
		FROM campuses
		WHERE project_id = $1
		ORDER BY name
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Campus
	for rows.Next() {
		var c models.Campus
		if err := rows.Scan(&c.ID, &c.Name, &c.ProjectID, &c.ProjectName, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func GetCampus(ctx context.Context, database *sql.DB, id string) (*models.Campus, error) {
	row := database.QueryRowContext(ctx, `
		SELECT id, name, project_id, project_name, created_at
		FROM campuses WHERE id = $1
	`, id)
	var c models.Campus
	if err := row.Scan(&c.ID, &c.Name, &c.ProjectID, &c.ProjectName, &c.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// RenameCampus rewrites the campus_name snapshot on dependent batches
// in the same transaction. Entries are untouched.
func RenameCampus(ctx context.Context, database *sql.DB, id, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil
	}
	c, err := GetCampus(ctx, database, id)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrNotFound
	}
	if c.Name == newName {
		return nil
	}

	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`UPDATE campuses SET name = $1 WHERE id = $2`, newName, id); err != nil {
		return fmt.Errorf("rename campus: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE batches SET campus_name = $1 WHERE campus_id = $2`, newName, id); err != nil {
		return fmt.Errorf("cascade batches: %w", err)
	}
	return tx.Commit()
}

func DeleteCampus(ctx context.Context, database *sql.DB, id string) error {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM batches WHERE campus_id = $1`, id); err != nil {
		return fmt.Errorf("delete batches: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM campuses WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete campus: %w", err)
	}
	return tx.Commit()
}
