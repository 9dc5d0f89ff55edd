package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// The PDF uses the narrow 8-column schema: no project column, trainer
// as a single display string.
var pdfHeader = []string{"Date", "Campus", "Batch", "Trainer", "Topic", "Subtopic", "Hours", "Students"}

// Fixed per-column widths in mm, tuned to A4 portrait (~182mm usable).
var pdfWidths = []float64{22, 24, 24, 30, 24, 30, 12, 16}

// ToPDF renders the tabular report. exportedAt feeds both the
// "Exported on" line and the document creation date, so two exports of
// the same data with the same clock are byte-identical.
func ToPDF(rows []Row, filters Filters, companyName string, exportedAt time.Time) ([]byte, error) {
	if companyName == "" {
		companyName = "Training Management System"
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(exportedAt)
	pdf.SetModificationDate(exportedAt)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Header band
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(40, 40, 40)
	pdf.Text(14, 22, companyName)
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(100, 100, 100)
	pdf.Text(14, 32, filters.SummaryLine())
	pdf.Text(14, 42, "Exported on: "+exportedAt.Format("1/2/2006"))

	pdf.SetY(50)
	pdf.SetX(14)

	// Table header
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFillColor(41, 128, 185)
	for i, h := range pdfHeader {
		pdf.CellFormat(pdfWidths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	// Body with alternating shading
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(40, 40, 40)
	for i, r := range rows {
		if i%2 == 0 {
			pdf.SetFillColor(255, 255, 255)
		} else {
			pdf.SetFillColor(240, 240, 240)
		}
		pdf.SetX(14)
		cells := []string{r.Date, r.Campus, r.Batch, r.Trainer, r.Topic, r.Subtopic, r.Hours, r.Students}
		for c, v := range cells {
			pdf.CellFormat(pdfWidths[c], 7, v, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
