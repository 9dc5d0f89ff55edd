package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const excelSheet = "Training Entries"

// The spreadsheet is the wide schema: project included, trainer split
// into name and email, raw start/end times kept.
var excelHeader = []string{
	"Date", "Project", "Campus", "Batch", "Trainer Name", "Trainer Email",
	"Topic", "Subtopic", "Start Time", "End Time", "Hours", "Student Count",
}

var excelWidths = []float64{12, 18, 16, 16, 20, 26, 16, 22, 11, 11, 9, 14}

func ToExcel(rows []Row) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", excelSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for col, h := range excelHeader {
		cell := fmt.Sprintf("%s1", colName(col+1))
		if err := f.SetCellStr(excelSheet, cell, h); err != nil {
			return nil, fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	for r, row := range rows {
		vals := []string{
			row.Date, row.Project, row.Campus, row.Batch, row.Trainer, row.TrainerEmail,
			row.Topic, row.Subtopic, row.Start, row.End, row.Hours, row.Students,
		}
		for c, v := range vals {
			cell := fmt.Sprintf("%s%d", colName(c+1), r+2)
			if err := f.SetCellStr(excelSheet, cell, v); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	for i, w := range excelWidths {
		col := colName(i + 1)
		_ = f.SetColWidth(excelSheet, col, col, w)
	}

	// Centering is cosmetic; style failures are swallowed.
	if style, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	}); err == nil {
		end := fmt.Sprintf("%s%d", colName(len(excelHeader)), len(rows)+1)
		_ = f.SetCellStyle(excelSheet, "A1", end, style)
	}
	if bold, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	}); err == nil {
		_ = f.SetCellStyle(excelSheet, "A1", colName(len(excelHeader))+"1", bold)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
