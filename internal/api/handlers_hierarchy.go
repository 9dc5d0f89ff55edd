package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/closurelabs/traininglog/internal/db"
	"github.com/closurelabs/traininglog/internal/hierarchy"
)

func (s *Server) listProjects(c echo.Context) error {
	sel := hierarchy.NewSelector(hierarchy.DBLoader{DB: s.db})
	if err := sel.Load(c.Request().Context()); err != nil {
		// read failure degrades to an empty list plus a diagnostic
		s.log.Warn("list projects failed: " + err.Error())
	}
	return c.JSON(http.StatusOK, emptyAsList(sel.Projects))
}

func (s *Server) listCampuses(c echo.Context) error {
	projectID := c.QueryParam("project")
	if projectID == "" {
		return Errf(KindValidation, "project query parameter required")
	}
	sel := hierarchy.NewSelector(hierarchy.DBLoader{DB: s.db})
	if err := sel.SetProject(c.Request().Context(), projectID); err != nil {
		s.log.Warn("list campuses failed: " + err.Error())
	}
	return c.JSON(http.StatusOK, emptyAsList(sel.Campuses))
}

func (s *Server) listBatches(c echo.Context) error {
	projectID := c.QueryParam("project")
	campusID := c.QueryParam("campus")
	if projectID == "" && campusID == "" {
		return Errf(KindValidation, "project or campus query parameter required")
	}

	ctx := c.Request().Context()
	if projectID == "" {
		// campus-only scope; the selector insists on a project first
		batches, err := db.ListBatchesByCampus(ctx, s.db, campusID)
		if err != nil {
			s.log.Warn("list batches failed: " + err.Error())
		}
		return c.JSON(http.StatusOK, emptyAsList(batches))
	}

	sel := hierarchy.NewSelector(hierarchy.DBLoader{DB: s.db})
	if err := sel.SetProject(ctx, projectID); err != nil {
		s.log.Warn("list batches failed: " + err.Error())
	}
	if campusID != "" {
		if err := sel.SetCampus(ctx, campusID); err != nil {
			s.log.Warn("list batches failed: " + err.Error())
		}
	}
	return c.JSON(http.StatusOK, emptyAsList(sel.Batches))
}

// hierarchyOptions returns the derived cascading-selection state for a
// given selection, so every client view shares one derivation.
func (s *Server) hierarchyOptions(c echo.Context) error {
	ctx := c.Request().Context()
	sel := hierarchy.NewSelector(hierarchy.DBLoader{DB: s.db})
	if err := sel.Load(ctx); err != nil {
		s.log.Warn("load projects failed: " + err.Error())
	}
	if projectID := c.QueryParam("project"); projectID != "" {
		if err := sel.SetProject(ctx, projectID); err != nil {
			s.log.Warn("load project scope failed: " + err.Error())
		}
		if campusID := c.QueryParam("campus"); campusID != "" {
			if err := sel.SetCampus(ctx, campusID); err != nil {
				s.log.Warn("load campus scope failed: " + err.Error())
			}
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"projects":           emptyAsList(sel.Projects),
		"campuses":           emptyAsList(sel.Campuses),
		"batches":            emptyAsList(sel.Batches),
		"projectHasCampuses": sel.ProjectHasCampuses(),
		"selection":          sel.Selection,
	})
}

type createProjectRequest struct {
	Name string `json:"name" validate:"required"`
}

func (s *Server) createProject(c echo.Context) error {
	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return Errf(KindValidation, "malformed request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	p, err := db.CreateProject(c.Request().Context(), s.db, req.Name)
	if err != nil {
		return mapDBError("create project", err)
	}
	return c.JSON(http.StatusCreated, p)
}

type renameRequest struct {
	Name string `json:"name"`
}

func (s *Server) renameProject(c echo.Context) error {
	var req renameRequest
	if err := c.Bind(&req); err != nil {
		return Errf(KindValidation, "malformed request body")
	}
	if err := db.RenameProject(c.Request().Context(), s.db, c.Param("id"), req.Name); err != nil {
		return mapDBError("rename project", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) deleteProject(c echo.Context) error {
	if err := db.DeleteProject(c.Request().Context(), s.db, c.Param("id")); err != nil {
		return mapDBError("delete project", err)
	}
	return c.NoContent(http.StatusNoContent)
}

type createCampusRequest struct {
	ProjectID string `json:"projectId" validate:"required"`
	Name      string `json:"name" validate:"required"`
}

func (s *Server) createCampus(c echo.Context) error {
	var req createCampusRequest
	if err := c.Bind(&req); err != nil {
		return Errf(KindValidation, "malformed request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	campus, err := db.CreateCampus(c.Request().Context(), s.db, req.ProjectID, req.Name)
	if err != nil {
		return mapDBError("create campus", err)
	}
	return c.JSON(http.StatusCreated, campus)
}

func (s *Server) renameCampus(c echo.Context) error {
	var req renameRequest
	if err := c.Bind(&req); err != nil {
		return Errf(KindValidation, "malformed request body")
	}
	if err := db.RenameCampus(c.Request().Context(), s.db, c.Param("id"), req.Name); err != nil {
		return mapDBError("rename campus", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) deleteCampus(c echo.Context) error {
	if err := db.DeleteCampus(c.Request().Context(), s.db, c.Param("id")); err != nil {
		return mapDBError("delete campus", err)
	}
	return c.NoContent(http.StatusNoContent)
}

type createBatchRequest struct {
	ProjectID string `json:"projectId" validate:"required"`
	CampusID  string `json:"campusId"`
	Name      string `json:"name" validate:"required"`
}

func (s *Server) createBatch(c echo.Context) error {
	var req createBatchRequest
	if err := c.Bind(&req); err != nil {
		return Errf(KindValidation, "malformed request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	sel := hierarchy.NewSelector(hierarchy.DBLoader{DB: s.db})
	if err := sel.SetProject(ctx, req.ProjectID); err != nil {
		return Wrap(KindInternal, "load project scope", err)
	}
	campus, err := sel.ResolveCampus(req.CampusID)
	if err != nil {
		return mapHierarchyError(err)
	}
	var campusID *string
	if campus != nil {
		campusID = &campus.ID
	}

	batch, err := db.CreateBatch(ctx, s.db, req.ProjectID, campusID, req.Name)
	if err != nil {
		return mapDBError("create batch", err)
	}
	return c.JSON(http.StatusCreated, batch)
}

func (s *Server) renameBatch(c echo.Context) error {
	var req renameRequest
	if err := c.Bind(&req); err != nil {
		return Errf(KindValidation, "malformed request body")
	}
	if err := db.RenameBatch(c.Request().Context(), s.db, c.Param("id"), req.Name); err != nil {
		return mapDBError("rename batch", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) deleteBatch(c echo.Context) error {
	if err := db.DeleteBatch(c.Request().Context(), s.db, c.Param("id")); err != nil {
		return mapDBError("delete batch", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func mapDBError(op string, err error) error {
	switch {
	case errors.Is(err, db.ErrNotFound):
		return Errf(KindNotFound, "%s: record not found", op)
	case errors.Is(err, db.ErrEmptyName):
		return Errf(KindValidation, "%s: name must not be empty", op)
	default:
		return Wrap(KindInternal, op, err)
	}
}

func mapHierarchyError(err error) error {
	switch {
	case errors.Is(err, hierarchy.ErrCampusRequired):
		return Errf(KindValidation, "project has multiple campuses, pick one")
	case errors.Is(err, hierarchy.ErrCampusMismatch):
		return Errf(KindValidation, "campus does not belong to the selected project")
	case errors.Is(err, hierarchy.ErrNoProject):
		return Errf(KindValidation, "project selection required")
	default:
		return Wrap(KindInternal, "resolve campus", err)
	}
}

// emptyAsList keeps JSON responses as [] rather than null.
func emptyAsList[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
