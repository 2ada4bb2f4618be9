package export

import (
	"fmt"

	"github.com/sadopc/ekwiwalent/internal/brigade"
	"github.com/sadopc/ekwiwalent/internal/report"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet    = "Podsumowanie"
	operationsSheet = "Zdarzenia"
)

// ToXLSX writes the quarterly report as a workbook: a summary sheet with the
// member and type breakdowns, and a sheet listing every operation.
func ToXLSX(r *report.QuarterlyReport, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(summarySheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")
	if _, err := f.NewSheet(operationsSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#B91C1C"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	moneyStyle, _ := f.NewStyle(&excelize.Style{NumFmt: 2})

	writeSummarySheet(f, r, headerStyle, titleStyle, moneyStyle)
	writeOperationsSheet(f, r, headerStyle, moneyStyle)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("write xlsx file: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, r *report.QuarterlyReport, header, title, money int) {
	sh := summarySheet
	f.SetColWidth(sh, "A", "A", 28)
	f.SetColWidth(sh, "B", "E", 16)

	f.SetCellValue(sh, "A1", fmt.Sprintf("Raport kwartalny %s %d", r.Range.Quarter.Label(), r.Range.Year))
	f.MergeCell(sh, "A1", "E1")
	f.SetCellStyle(sh, "A1", "A1", title)
	f.SetCellValue(sh, "A2", fmt.Sprintf("Okres: %s - %s",
		r.Range.Start.Format(brigade.DateLayout), r.Range.End.Format(brigade.DateLayout)))

	f.SetCellValue(sh, "A4", "Łączna kwota (zł)")
	f.SetCellValue(sh, "B4", r.Compensation.InexactFloat64())
	f.SetCellStyle(sh, "B4", "B4", money)
	f.SetCellValue(sh, "A5", "Łączne godziny")
	f.SetCellValue(sh, "B5", r.Hours.InexactFloat64())
	f.SetCellValue(sh, "A6", "Liczba zdarzeń")
	f.SetCellValue(sh, "B6", r.Totals.Operations)

	row := 8
	writeHeader(f, sh, row, header, "Strażak", "Stopień", "Zdarzenia", "Godziny", "Kwota (zł)")
	row++
	for _, m := range r.Members {
		f.SetCellValue(sh, cell("A", row), m.Name)
		f.SetCellValue(sh, cell("B", row), m.Rank)
		f.SetCellValue(sh, cell("C", row), m.Operations)
		f.SetCellValue(sh, cell("D", row), m.Hours.InexactFloat64())
		f.SetCellValue(sh, cell("E", row), m.Total.InexactFloat64())
		f.SetCellStyle(sh, cell("E", row), cell("E", row), money)
		row++
	}

	row++
	writeHeader(f, sh, row, header, "Typ zdarzenia", "Liczba", "Godziny", "Kwota (zł)")
	row++
	for _, t := range r.Types {
		f.SetCellValue(sh, cell("A", row), t.Type)
		f.SetCellValue(sh, cell("B", row), t.Count)
		f.SetCellValue(sh, cell("C", row), t.Hours.InexactFloat64())
		f.SetCellValue(sh, cell("D", row), t.Total.InexactFloat64())
		f.SetCellStyle(sh, cell("D", row), cell("D", row), money)
		row++
	}
}

func writeOperationsSheet(f *excelize.File, r *report.QuarterlyReport, header, money int) {
	sh := operationsSheet
	f.SetColWidth(sh, "A", "A", 12)
	f.SetColWidth(sh, "B", "C", 24)
	f.SetColWidth(sh, "D", "F", 14)

	writeHeader(f, sh, 1, header, "Data", "Strażak", "Typ", "Godziny", "Stawka (zł/h)", "Kwota (zł)")
	row := 2
	for _, op := range r.Operations {
		f.SetCellValue(sh, cell("A", row), op.Date.Format(brigade.DateLayout))
		f.SetCellValue(sh, cell("B", row), op.MemberName)
		f.SetCellValue(sh, cell("C", row), op.Type)
		f.SetCellValue(sh, cell("D", row), op.Hours.InexactFloat64())
		f.SetCellValue(sh, cell("E", row), op.Rate.InexactFloat64())
		f.SetCellValue(sh, cell("F", row), op.Total.InexactFloat64())
		f.SetCellStyle(sh, cell("F", row), cell("F", row), money)
		row++
	}
}

func writeHeader(f *excelize.File, sheet string, row, style int, titles ...string) {
	for i, t := range titles {
		f.SetCellValue(sheet, cell(colName(i), row), t)
	}
	f.SetCellStyle(sheet, cell("A", row), cell(colName(len(titles)-1), row), style)
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
