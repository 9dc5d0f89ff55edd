package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/closurelabs/traininglog/internal/db"
	"github.com/closurelabs/traininglog/internal/directory"
	"github.com/closurelabs/traininglog/internal/export"
	"github.com/closurelabs/traininglog/internal/metrics"
	"github.com/closurelabs/traininglog/internal/models"
)

const (
	mimePDF  = "application/pdf"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

func (s *Server) exportEntries(c echo.Context) error {
	format := c.QueryParam("format")
	if format != "pdf" && format != "excel" && format != "word" {
		return Errf(KindValidation, "format must be pdf, excel or word")
	}

	ctx := c.Request().Context()
	f := db.EntryFilter{
		ProjectID: c.QueryParam("project"),
		CampusID:  c.QueryParam("campus"),
		BatchID:   c.QueryParam("batch"),
	}
	claims := claimsOf(c)
	if claims.Role == string(models.Trainer) {
		f.TrainerID = claims.UID
	}

	entries, err := db.ListEntries(ctx, s.db, f)
	if err != nil {
		s.log.Warn("export query failed: " + err.Error())
		entries = nil
	}

	filters := s.filterLabels(c, f)
	dir := directory.Load(ctx, s.db)
	rows := export.BuildRows(entries, dir, s.cfg.Location)
	exportedAt := time.Now().In(s.cfg.Location)

	var data []byte
	var filename, mime string
	switch format {
	case "pdf":
		data, err = export.ToPDF(rows, filters, s.cfg.CompanyName, exportedAt)
		filename, mime = export.PDFFilename(filters), mimePDF
	case "excel":
		data, err = export.ToExcel(rows)
		filename, mime = export.ExcelFilename(filters), mimeXLSX
	case "word":
		data, err = export.ToWord(rows, filters, s.cfg.CompanyName, exportedAt)
		filename, mime = export.WordFilename(filters), mimeDOCX
	}
	if err != nil {
		return Wrap(KindInternal, "render export", err)
	}

	metrics.Exports.WithLabelValues(format).Inc()
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, mime, data)
}

// filterLabels resolves the selected ids back to names for the report
// header and the file name. A missing record simply leaves its label
// blank ("all"/"All ..." fallbacks apply downstream).
func (s *Server) filterLabels(c echo.Context, f db.EntryFilter) export.Filters {
	ctx := c.Request().Context()
	var labels export.Filters
	if f.ProjectID != "" {
		if p, err := db.GetProject(ctx, s.db, f.ProjectID); err == nil && p != nil {
			labels.ProjectName = p.Name
		}
	}
	if f.CampusID != "" {
		if campus, err := db.GetCampus(ctx, s.db, f.CampusID); err == nil && campus != nil {
			labels.CampusName = campus.Name
		}
	}
	if f.BatchID != "" {
		if b, err := db.GetBatch(ctx, s.db, f.BatchID); err == nil && b != nil {
			labels.BatchName = b.Name
		}
	}
	return labels
}
