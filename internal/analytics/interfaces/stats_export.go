package interfaces

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	analytics "market-dashboard/internal/analytics/domain"
)

// BuildStatsXLSX renders the ranked per-company statistics table as a
// workbook. An undefined participation renders as "sin datos".
func BuildStatsXLSX(title, unit string, stats []analytics.CompanyStat) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "estadisticas"
	f.SetSheetName("Sheet1", sheet)

	_ = f.SetCellValue(sheet, "A1", title)
	headers := []string{
		"Empresa",
		fmt.Sprintf("Mínimo (%s)", unit),
		fmt.Sprintf("Promedio (%s)", unit),
		fmt.Sprintf("Máximo (%s)", unit),
		"Participación Promedio (%)",
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 3)
		if err != nil {
			return nil, err
		}
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, stat := range stats {
		row := i + 4
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), stat.Company)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), stat.Min)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), stat.Mean)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), stat.Max)
		if stat.HasParticipation {
			_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", row), stat.MeanParticipation)
		} else {
			_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", row), "sin datos")
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildStatsPDF renders the ranked per-company statistics table as a PDF.
func BuildStatsPDF(title, unit string, stats []analytics.CompanyStat) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, title)
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(80, 6, "Empresa", "1", 0, "L", false, 0, "")
	pdf.CellFormat(45, 6, fmt.Sprintf("Minimo (%s)", unit), "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 6, fmt.Sprintf("Promedio (%s)", unit), "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 6, fmt.Sprintf("Maximo (%s)", unit), "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 6, "Participacion (%)", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, stat := range stats {
		participation := "sin datos"
		if stat.HasParticipation {
			participation = fmt.Sprintf("%.2f%%", stat.MeanParticipation)
		}
		pdf.CellFormat(80, 6, stat.Company, "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 6, fmt.Sprintf("%.2f", stat.Min), "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 6, fmt.Sprintf("%.2f", stat.Mean), "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 6, fmt.Sprintf("%.2f", stat.Max), "1", 0, "R", false, 0, "")
		pdf.CellFormat(50, 6, participation, "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
