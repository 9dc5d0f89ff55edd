package hierarchy

import (
	"context"
	"database/sql"

	"github.com/closurelabs/traininglog/internal/db"
	"github.com/closurelabs/traininglog/internal/models"
)

// DBLoader adapts the db package to the Loader interface.
type DBLoader struct {
	DB *sql.DB
}

func (l DBLoader) Projects(ctx context.Context) ([]models.Project, error) {
	return db.ListProjects(ctx, l.DB)
}

func (l DBLoader) CampusesByProject(ctx context.Context, projectID string) ([]models.Campus, error) {
	return db.ListCampusesByProject(ctx, l.DB, projectID)
}

func (l DBLoader) BatchesByProject(ctx context.Context, projectID string) ([]models.Batch, error) {
	return db.ListBatchesByProject(ctx, l.DB, projectID)
}

func (l DBLoader) BatchesByCampus(ctx context.Context, campusID string) ([]models.Batch, error) {
	return db.ListBatchesByCampus(ctx, l.DB, campusID)
}
