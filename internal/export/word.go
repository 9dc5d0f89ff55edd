package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/fumiama/go-docx"
)

const (
	wordHeaderFill = "2B80B9"
	wordAltFill    = "F0F0F0"
	// total table width in twips; fixed layout keeps columns stable
	// regardless of content length
	wordTableWidth = 9360
)

// ToWord renders the same 8-column schema as the PDF as a styled
// word-processor table.
func ToWord(rows []Row, filters Filters, companyName string, exportedAt time.Time) ([]byte, error) {
	if companyName == "" {
		companyName = "Training Management System"
	}

	doc := docx.New().WithDefaultTheme()

	title := doc.AddParagraph()
	title.AddText(companyName).Size("32").Color("282828").Bold()

	filterLine := doc.AddParagraph()
	filterLine.AddText(filters.SummaryLine()).Size("22").Color("646464")
	exportLine := doc.AddParagraph()
	exportLine.AddText("Exported on: " + exportedAt.Format("1/2/2006")).Size("22").Color("646464")
	doc.AddParagraph() // spacing before the table

	tbl := doc.AddTable(len(rows)+1, len(pdfHeader), wordTableWidth, nil)

	for c, h := range pdfHeader {
		cell := tbl.TableRows[0].TableCells[c]
		cell.Shade("clear", "auto", wordHeaderFill)
		p := cell.AddParagraph()
		p.AddText(h).Color("FFFFFF").Bold()
		p.Justification("center")
	}

	for i, r := range rows {
		fill := "FFFFFF"
		if i%2 == 1 {
			fill = wordAltFill
		}
		cells := []string{r.Date, r.Campus, r.Batch, r.Trainer, r.Topic, r.Subtopic, r.Hours, r.Students}
		for c, v := range cells {
			cell := tbl.TableRows[i+1].TableCells[c]
			cell.Shade("clear", "auto", fill)
			p := cell.AddParagraph()
			p.AddText(v)
			p.Justification("center")
		}
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("render docx: %w", err)
	}
	return buf.Bytes(), nil
}
