package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/closurelabs/traininglog/internal/db"
	"github.com/closurelabs/traininglog/internal/hierarchy"
	"github.com/closurelabs/traininglog/internal/models"
)

func (s *Server) listEntries(c echo.Context) error {
	f := db.EntryFilter{
		ProjectID: c.QueryParam("project"),
		CampusID:  c.QueryParam("campus"),
		BatchID:   c.QueryParam("batch"),
	}
	claims := claimsOf(c)
	if claims.Role == string(models.Trainer) {
		// trainers only ever see their own entries
		f.TrainerID = claims.UID
	} else if t := c.QueryParam("trainer"); t != "" {
		f.TrainerID = t
	}

	entries, err := db.ListEntries(c.Request().Context(), s.db, f)
	if err != nil {
		// reads degrade to an empty set plus a diagnostic
		s.log.Warn("list entries failed: " + err.Error())
		entries = nil
	}
	return c.JSON(http.StatusOK, emptyAsList(entries))
}

type entryRequest struct {
	Date         string `json:"date" validate:"required"`
	ProjectID    string `json:"projectId" validate:"required"`
	CampusID     string `json:"campusId"`
	BatchID      string `json:"batchId" validate:"required"`
	Topic        string `json:"topic" validate:"required"`
	Subtopic     string `json:"subtopic" validate:"required"`
	StartTime    string `json:"startTime" validate:"required"`
	EndTime      string `json:"endTime" validate:"required"`
	StudentCount int    `json:"studentCount" validate:"required,min=1"`
}

func (s *Server) createEntry(c echo.Context) error {
	var req entryRequest
	if err := c.Bind(&req); err != nil {
		return Errf(KindValidation, "malformed request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	claims := claimsOf(c)
	user, err := db.GetUserByUID(ctx, s.db, claims.UID)
	if err != nil {
		return Wrap(KindInternal, "lookup user", err)
	}
	if user == nil {
		return Errf(KindUnauthorized, "unknown user")
	}

	entry, err := s.buildEntry(c, &req)
	if err != nil {
		return err
	}
	entry.TrainerID = user.UID
	entry.TrainerName = trainerDisplay(user)
	entry.TrainerEmail = user.Email

	if err := db.CreateEntry(ctx, s.db, entry); err != nil {
		return Wrap(KindInternal, "create entry", err)
	}
	return c.JSON(http.StatusCreated, entry)
}

// updateEntry is the later-flow edit: trainers may edit their own
// entries, admins any. Trainer attribution never changes.
func (s *Server) updateEntry(c echo.Context) error {
	var req entryRequest
	if err := c.Bind(&req); err != nil {
		return Errf(KindValidation, "malformed request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	existing, err := db.GetEntry(ctx, s.db, c.Param("id"))
	if err != nil {
		return Wrap(KindInternal, "lookup entry", err)
	}
	if existing == nil {
		return Errf(KindNotFound, "entry not found")
	}
	claims := claimsOf(c)
	if claims.Role == string(models.Trainer) && existing.TrainerID != claims.UID {
		return Errf(KindForbidden, "not your entry")
	}

	entry, err := s.buildEntry(c, &req)
	if err != nil {
		return err
	}
	entry.ID = existing.ID
	entry.TrainerID = existing.TrainerID
	entry.TrainerName = existing.TrainerName
	entry.TrainerEmail = existing.TrainerEmail
	entry.CreatedAt = existing.CreatedAt

	if err := db.UpdateEntry(ctx, s.db, entry); err != nil {
		return mapDBError("update entry", err)
	}
	return c.JSON(http.StatusOK, entry)
}

// buildEntry validates the hierarchy selection, applies the
// single-campus shortcut and snapshots the parent names.
func (s *Server) buildEntry(c echo.Context, req *entryRequest) (*models.Entry, error) {
	ctx := c.Request().Context()

	date, err := time.ParseInLocation("2006-01-02", req.Date, s.cfg.Location)
	if err != nil {
		return nil, Errf(KindValidation, "date must be YYYY-MM-DD")
	}

	project, err := db.GetProject(ctx, s.db, req.ProjectID)
	if err != nil {
		return nil, Wrap(KindInternal, "lookup project", err)
	}
	if project == nil {
		return nil, Errf(KindNotFound, "project not found")
	}

	sel := hierarchy.NewSelector(hierarchy.DBLoader{DB: s.db})
	if err := sel.SetProject(ctx, req.ProjectID); err != nil {
		return nil, Wrap(KindInternal, "load project scope", err)
	}
	campus, err := sel.ResolveCampus(req.CampusID)
	if err != nil {
		return nil, mapHierarchyError(err)
	}

	batch, err := db.GetBatch(ctx, s.db, req.BatchID)
	if err != nil {
		return nil, Wrap(KindInternal, "lookup batch", err)
	}
	if batch == nil || batch.ProjectID != project.ID {
		return nil, Errf(KindNotFound, "batch not found in project")
	}
	if campus != nil && (batch.CampusID == nil || *batch.CampusID != campus.ID) {
		return nil, Errf(KindValidation, "batch does not belong to the selected campus")
	}

	hours := models.ComputeHours(req.StartTime, req.EndTime)
	students := req.StudentCount
	entry := &models.Entry{
		Date:         models.DateOf(date),
		ProjectID:    project.ID,
		ProjectName:  project.Name,
		BatchID:      batch.ID,
		BatchName:    batch.Name,
		Topic:        req.Topic,
		Subtopic:     req.Subtopic,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Hours:        &hours,
		StudentCount: &students,
	}
	if campus != nil {
		entry.CampusID = &campus.ID
		entry.CampusName = &campus.Name
	}
	return entry, nil
}

func trainerDisplay(u *models.User) string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
