package jobs

import (
	"context"
	"database/sql"

	"github.com/closurelabs/traininglog/internal/ctxutil"
	"github.com/closurelabs/traininglog/internal/db"
	"github.com/closurelabs/traininglog/internal/metrics"
)

// RefreshStats keeps the entry-count gauge current.
func RefreshStats(database *sql.DB) Job {
	return func(ctx context.Context) error {
		ctx, cancel := ctxutil.WithDBTimeout(ctx)
		defer cancel()
		n, err := db.CountEntries(ctx, database)
		if err != nil {
			return err
		}
		metrics.EntryCount.Set(float64(n))
		return nil
	}
}
