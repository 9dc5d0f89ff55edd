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

// CreateBatch snapshots the parent names at write time. campusID must
// already be resolved by the caller (hierarchy.ResolveCampus): nil for
// flat projects, a concrete campus otherwise.
func CreateBatch(ctx context.Context, database *sql.DB, projectID string, campusID *string, name string) (*models.Batch, error) {
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

	b := models.Batch{
		ID:          uuid.NewString(),
		Name:        name,
		ProjectID:   p.ID,
		ProjectName: p.Name,
		CreatedAt:   time.Now().UTC(),
	}
	if campusID != nil {
		c, err := GetCampus(ctx, database, *campusID)
		if err != nil {
			return nil, err
		}
		if c == nil || c.ProjectID != p.ID {
			return nil, ErrNotFound
		}
		b.CampusID = &c.ID
		b.CampusName = &c.Name
	}

	_, err = database.ExecContext(ctx, `
		INSERT INTO batches (id, name, project_id, project_name, campus_id, campus_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, b.ID, b.Name, b.ProjectID, b.ProjectName, b.CampusID, b.CampusName, b.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create batch: %w", err)
	}
	return &b, nil
}

func ListBatchesByProject(ctx context.Context, database *sql.DB, projectID string) ([]models.Batch, error) {
	return listBatches(ctx, database, `WHERE project_id = $1`, projectID)
}

func ListBatchesByCampus(ctx context.Context, database *sql.DB, campusID string) ([]models.Batch, error) {
	return listBatches(ctx, database, `WHERE campus_id = $1`, campusID)
}

func listBatches(ctx context.Context, database *sql.DB, where string, arg any) ([]models.Batch, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT id, name, project_id, project_name, campus_id, campus_name, created_at
		FROM batches `+where+` ORDER BY name
	`, arg)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func GetBatch(ctx context.Context, database *sql.DB, id string) (*models.Batch, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT id, name, project_id, project_name, campus_id, campus_name, created_at
		FROM batches WHERE id = $1
	`, id)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		return nil, rows.Err()
	}
	b, err := scanBatch(rows)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// RenameBatch mirrors RenameProject: empty or unchanged names are a
// no-op, an unknown id is ErrNotFound.
func RenameBatch(ctx context.Context, database *sql.DB, id, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil
	}
	b, err := GetBatch(ctx, database, id)
	if err != nil {
		return err
	}
	if b == nil {
		return ErrNotFound
	}
	if b.Name == newName {
		return nil
	}
	_, err = database.ExecContext(ctx,
		`UPDATE batches SET name = $1 WHERE id = $2`, newName, id)
	return err
}

func DeleteBatch(ctx context.Context, database *sql.DB, id string) error {
	_, err := database.ExecContext(ctx, `DELETE FROM batches WHERE id = $1`, id)
	return err
}

func scanBatch(rows *sql.Rows) (models.Batch, error) {
	var b models.Batch
	var campusID, campusName sql.NullString
	if err := rows.Scan(&b.ID, &b.Name, &b.ProjectID, &b.ProjectName, &campusID, &campusName, &b.CreatedAt); err != nil {
		return b, err
	}
	if campusID.Valid {
		b.CampusID = &campusID.String
	}
	if campusName.Valid {
		b.CampusName = &campusName.String
	}
	return b, nil
}
