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

func CreateProject(ctx context.Context, database *sql.DB, name string) (*models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	p := models.Project{ID: uuid.NewString(), Name: name, CreatedAt: time.Now().UTC()}
	_, err := database.ExecContext(ctx,
		`INSERT INTO projects (id, name, created_at) VALUES ($1, $2, $3)`,
		p.ID, p.Name, p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return &p, nil
}

func ListProjects(ctx context.Context, database *sql.DB) ([]models.Project, error) {
	rows, err := database.QueryContext(ctx,
		`SELECT id, name, created_at FROM projects ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func GetProject(ctx context.Context, database *sql.DB, id string) (*models.Project, error) {
	row := database.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM projects WHERE id = $1`, id)
	var p models.Project
	if err := row.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// RenameProject updates the project and rewrites the project_name
// snapshot on every dependent campus and batch in one transaction.
// Entries keep their old snapshot on purpose. Empty or unchanged
// names are a no-op.
func RenameProject(ctx context.Context, database *sql.DB, id, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil
	}
	p, err := GetProject(ctx, database, id)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrNotFound
	}
	if p.Name == newName {
		return nil
	}

	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`UPDATE projects SET name = $1 WHERE id = $2`, newName, id); err != nil {
		return fmt.Errorf("rename project: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE campuses SET project_name = $1 WHERE project_id = $2`, newName, id); err != nil {
		return fmt.Errorf("cascade campuses: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE batches SET project_name = $1 WHERE project_id = $2`, newName, id); err != nil {
		return fmt.Errorf("cascade batches: %w", err)
	}
	return tx.Commit()
}

// DeleteProject removes the project and every dependent batch and
// campus, top-down, in one transaction. Entries referencing the
// project are left in place as historical records.
func DeleteProject(ctx context.Context, database *sql.DB, id string) error {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM batches WHERE project_id = $1`, id); err != nil {
		return fmt.Errorf("delete batches: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM campuses WHERE project_id = $1`, id); err != nil {
		return fmt.Errorf("delete campuses: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM projects WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return tx.Commit()
}
