package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/closurelabs/traininglog/internal/models"
)

// EntryFilter narrows the entry list. Every set field is ANDed into
// the query; an empty field is structurally absent, not a wildcard.
type EntryFilter struct {
	TrainerID string
	ProjectID string
	CampusID  string
	BatchID   string
}

const entryColumns = `id, entry_date, project_id, project_name, campus_id, campus_name,
	batch_id, batch_name, topic, subtopic, start_time, end_time,
	hours, student_count, trainer_id, trainer_name, trainer_email, created_at`

// ListEntries returns matching entries ordered by date descending,
// always, regardless of the filter combination.
func ListEntries(ctx context.Context, database *sql.DB, f EntryFilter) ([]models.Entry, error) {
	var where []string
	var args []any
	add := func(col, val string) {
		if val == "" {
			return
		}
		args = append(args, val)
		where = append(where, col+" = $"+strconv.Itoa(len(args)))
	}
	add("trainer_id", f.TrainerID)
	add("project_id", f.ProjectID)
	add("campus_id", f.CampusID)
	add("batch_id", f.BatchID)

	q := `SELECT ` + entryColumns + ` FROM entries`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY entry_date DESC"

	rows, err := database.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func CreateEntry(ctx context.Context, database *sql.DB, e *models.Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := database.ExecContext(ctx, `
		INSERT INTO entries (id, entry_date, project_id, project_name, campus_id, campus_name,
			batch_id, batch_name, topic, subtopic, start_time, end_time,
			hours, student_count, trainer_id, trainer_name, trainer_email, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`, e.ID, e.Date.Time, nullStr(e.ProjectID), e.ProjectName, e.CampusID, e.CampusName,
		e.BatchID, e.BatchName, e.Topic, e.Subtopic, e.StartTime, e.EndTime,
		e.Hours, e.StudentCount, e.TrainerID, e.TrainerName, e.TrainerEmail, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("create entry: %w", err)
	}
	return nil
}

// UpdateEntry rewrites the mutable fields of an entry (later-flow
// edit). Identity and trainer attribution never change.
func UpdateEntry(ctx context.Context, database *sql.DB, e *models.Entry) error {
	res, err := database.ExecContext(ctx, `
		UPDATE entries SET entry_date = $1, project_id = $2, project_name = $3,
			campus_id = $4, campus_name = $5, batch_id = $6, batch_name = $7,
			topic = $8, subtopic = $9, start_time = $10, end_time = $11,
			hours = $12, student_count = $13
		WHERE id = $14
	`, e.Date.Time, nullStr(e.ProjectID), e.ProjectName, e.CampusID, e.CampusName,
		e.BatchID, e.BatchName, e.Topic, e.Subtopic, e.StartTime, e.EndTime,
		e.Hours, e.StudentCount, e.ID)
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func GetEntry(ctx context.Context, database *sql.DB, id string) (*models.Entry, error) {
	rows, err := database.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM entries WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		return nil, rows.Err()
	}
	e, err := scanEntry(rows)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func CountEntries(ctx context.Context, database *sql.DB) (int64, error) {
	var n int64
	err := database.QueryRowContext(ctx, `SELECT count(*) FROM entries`).Scan(&n)
	return n, err
}

func scanEntry(rows *sql.Rows) (models.Entry, error) {
	var e models.Entry
	var date time.Time
	var projectID, campusID, campusName sql.NullString
	var hours sql.NullFloat64
	var students sql.NullInt64
	err := rows.Scan(&e.ID, &date, &projectID, &e.ProjectName, &campusID, &campusName,
		&e.BatchID, &e.BatchName, &e.Topic, &e.Subtopic, &e.StartTime, &e.EndTime,
		&hours, &students, &e.TrainerID, &e.TrainerName, &e.TrainerEmail, &e.CreatedAt)
	if err != nil {
		return e, err
	}
	e.Date = models.DateOf(date)
	e.ProjectID = projectID.String
	if campusID.Valid {
		e.CampusID = &campusID.String
	}
	if campusName.Valid {
		e.CampusName = &campusName.String
	}
	if hours.Valid {
		e.Hours = &hours.Float64
	}
	if students.Valid {
		n := int(students.Int64)
		e.StudentCount = &n
	}
	return e, nil
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}
