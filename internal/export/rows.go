package export

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/closurelabs/traininglog/internal/directory"
	"github.com/closurelabs/traininglog/internal/models"
)

// Filters carries the active filter labels, used for the report
// header line and the output file name. Never derived from entry
// content.
type Filters struct {
	ProjectName string
	CampusName  string
	BatchName   string
}

func (f Filters) SummaryLine() string {
	project := f.ProjectName
	if project == "" {
		project = "All Projects"
	}
	campus := f.CampusName
	if campus == "" {
		campus = "All Campuses"
	}
	batch := f.BatchName
	if batch == "" {
		batch = "All Batches"
	}
	return "Filtered: " + project + " - " + campus + " - " + batch
}

// Row is the shared flat form every renderer consumes. All fields are
// already display strings; missing numerics are empty, never "0".
type Row struct {
	Date         string
	Project      string
	Campus       string
	Batch        string
	Trainer      string
	TrainerEmail string
	Topic        string
	Subtopic     string
	Start        string
	End          string
	Hours        string
	Students     string
}

func BuildRows(entries []models.Entry, dir directory.Directory, loc *time.Location) []Row {
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		r := Row{
			Date:         e.Date.Display(loc),
			Project:      orNA(e.ProjectName),
			Campus:       orNA(deref(e.CampusName)),
			Batch:        orNA(e.BatchName),
			Trainer:      dir.DisplayName(e),
			TrainerEmail: dir.Email(e),
			Topic:        e.Topic,
			Subtopic:     e.Subtopic,
			Start:        e.StartTime,
			End:          e.EndTime,
		}
		if e.Hours != nil {
			r.Hours = models.FormatHours(*e.Hours)
		}
		if e.StudentCount != nil {
			r.Students = strconv.Itoa(*e.StudentCount)
		}
		rows = append(rows, r)
	}
	return rows
}

// PDFFilename and WordFilename use campus and batch; the spreadsheet
// additionally keys on project. "all" stands in for a missing label.
func PDFFilename(f Filters) string {
	return sanitizeFileName("training_entries_" + orAll(f.CampusName) + "_" + orAll(f.BatchName) + ".pdf")
}

func ExcelFilename(f Filters) string {
	return sanitizeFileName("training_entries_" + orAll(f.ProjectName) + "_" + orAll(f.CampusName) + "_" + orAll(f.BatchName) + ".xlsx")
}

func WordFilename(f Filters) string {
	return sanitizeFileName("training_entries_" + orAll(f.CampusName) + "_" + orAll(f.BatchName) + ".docx")
}

func orAll(s string) string {
	if strings.TrimSpace(s) == "" {
		return "all"
	}
	return s
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var invalidFileRe = regexp.MustCompile(`[\\/:*?"<>|\s]+`)

func sanitizeFileName(s string) string {
	s = strings.TrimSpace(s)
	return invalidFileRe.ReplaceAllString(s, "_")
}

// colName converts 1 -> A, 27 -> AA.
func colName(n int) string {
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+(n%26))) + s
		n /= 26
	}
	return s
}
