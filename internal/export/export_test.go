package export

import (
	"archive/zip"
	"bytes"
	"compress/zlib"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/closurelabs/traininglog/internal/directory"
	"github.com/closurelabs/traininglog/internal/models"
)

func sampleRows(t *testing.T, n int) []Row {
	t.Helper()
	hours := 1.5
	students := 24
	campus := "Mumbai"
	entries := make([]models.Entry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, models.Entry{
			Date:         models.FlexDate{Time: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
			ProjectName:  "Skilling",
			CampusName:   &campus,
			BatchName:    "Batch 7",
			TrainerID:    "t1",
			TrainerName:  "Jane Doe",
			TrainerEmail: "jane@x.com",
			Topic:        "Go",
			Subtopic:     "Slices",
			StartTime:    "09:00",
			EndTime:      "10:30",
			Hours:        &hours,
			StudentCount: &students,
		})
	}
	return BuildRows(entries, directory.Directory{}, time.UTC)
}

func TestBuildRowsFallbacks(t *testing.T) {
	entries := []models.Entry{{
		Date:      models.FlexDate{Raw: "2024-03-05"},
		Topic:     "Go",
		TrainerID: "nobody",
	}}
	rows := BuildRows(entries, directory.Directory{}, time.UTC)
	require.Len(t, rows, 1)
	r := rows[0]
	assert.Equal(t, "3/5/2024", r.Date)
	assert.Equal(t, "N/A", r.Project)
	assert.Equal(t, "N/A", r.Campus)
	assert.Equal(t, "N/A", r.Batch)
	assert.Equal(t, "N/A", r.Trainer)
	// missing numerics render empty, never zero
	assert.Equal(t, "", r.Hours)
	assert.Equal(t, "", r.Students)
}

func TestToExcelRowCount(t *testing.T) {
	rows := sampleRows(t, 3)
	data, err := ToExcel(rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(excelSheet)
	require.NoError(t, err)
	require.Len(t, got, len(rows)+1, "header plus one row per entry")
	assert.Equal(t, excelHeader, got[0])
	assert.Equal(t, "Jane Doe", got[1][4])
	assert.Equal(t, "1.50", got[1][10])
}

func TestToExcelEmpty(t *testing.T) {
	data, err := ToExcel(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(excelSheet)
	require.NoError(t, err)
	require.Len(t, got, 1, "header only")
}

func TestToPDF(t *testing.T) {
	rows := sampleRows(t, 2)
	filters := Filters{ProjectName: "Skilling"}
	at := time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)

	data, err := ToPDF(rows, filters, "Acme Training", at)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	// same inputs, same clock: byte-identical output
	again, err := ToPDF(rows, filters, "Acme Training", at)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestToPDFRowCount(t *testing.T) {
	rows := sampleRows(t, 3)
	at := time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)

	data, err := ToPDF(rows, Filters{}, "Acme Training", at)
	require.NoError(t, err)

	text := pdfText(t, data)
	assert.Equal(t, len(rows), strings.Count(text, "(Jane Doe)"), "one trainer cell per entry")
	assert.Equal(t, 1, strings.Count(text, "(Trainer)"), "header row rendered once")
	assert.Equal(t, 1, strings.Count(text, "Filtered: All Projects - All Campuses - All Batches"))
}

// pdfText inflates the FlateDecode content streams so cell strings are
// countable as (text) literals.
func pdfText(t *testing.T, data []byte) string {
	t.Helper()
	var out strings.Builder
	rest := data
	for {
		i := bytes.Index(rest, []byte("stream"))
		if i < 0 {
			break
		}
		rest = bytes.TrimLeft(rest[i+len("stream"):], "\r\n")
		j := bytes.Index(rest, []byte("endstream"))
		if j < 0 {
			break
		}
		if zr, err := zlib.NewReader(bytes.NewReader(rest[:j])); err == nil {
			if b, err := io.ReadAll(zr); err == nil {
				out.Write(b)
			}
			_ = zr.Close()
		}
		rest = rest[j+len("endstream"):]
	}
	if out.Len() == 0 {
		// uncompressed output: the literals are already in place
		return string(data)
	}
	return out.String()
}

func TestToWordRowCount(t *testing.T) {
	rows := sampleRows(t, 3)
	at := time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)

	data, err := ToWord(rows, Filters{}, "", at)
	require.NoError(t, err)

	doc := readDocXML(t, data)
	assert.Equal(t, len(rows)+1, strings.Count(doc, "<w:tr>"), "header plus one table row per entry")
	assert.Contains(t, doc, "Training Management System")
	assert.Contains(t, doc, "All Projects")
	assert.Contains(t, doc, "Jane Doe")
}

func readDocXML(t *testing.T, data []byte) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(b)
	}
	t.Fatal("word/document.xml not found")
	return ""
}

func TestSummaryLine(t *testing.T) {
	assert.Equal(t, "Filtered: All Projects - All Campuses - All Batches", Filters{}.SummaryLine())
	assert.Equal(t, "Filtered: Skilling - Mumbai - All Batches",
		Filters{ProjectName: "Skilling", CampusName: "Mumbai"}.SummaryLine())
}

func TestFilenames(t *testing.T) {
	f := Filters{ProjectName: "Skilling 2024", CampusName: "Navi Mumbai", BatchName: "Batch 7"}
	assert.Equal(t, "training_entries_Navi_Mumbai_Batch_7.pdf", PDFFilename(f))
	assert.Equal(t, "training_entries_Navi_Mumbai_Batch_7.docx", WordFilename(f))
	assert.Equal(t, "training_entries_Skilling_2024_Navi_Mumbai_Batch_7.xlsx", ExcelFilename(f))
	assert.Equal(t, "training_entries_all_all.pdf", PDFFilename(Filters{}))
	assert.Equal(t, "training_entries_all_all_all.xlsx", ExcelFilename(Filters{}))
}
