package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/repository"
)

// ExportService renders the weekly progress recap of a project as xlsx.
type ExportService struct {
	projectRepo  *repository.ProjectRepository
	progressRepo *repository.ProgressRepository
}

// NewExportService creates the export service.
func NewExportService(projectRepo *repository.ProjectRepository, progressRepo *repository.ProgressRepository) *ExportService {
	return &ExportService{projectRepo: projectRepo, progressRepo: progressRepo}
}

var progressExportHeaders = []string{
	"Kode Item", "Nama Item Pekerjaan", "Volume", "Satuan", "Harga Satuan",
	"Minggu", "Progress (%)", "Nilai Item", "Tanggal Update",
}

// ProgressRecap builds the recap workbook: one row per ledger record, a
// summary row with the total value and the summed progress percentage.
func (s *ExportService) ProgressRecap(ctx context.Context, projectID string) (*excelize.File, string, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, "", fmt.Errorf("project not found: %w", err)
	}

	records, err := s.progressRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, "", fmt.Errorf("list progress: %w", err)
	}

	f := excelize.NewFile()
	sheet := "Kemajuan"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, h := range progressExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	var totalValue, totalProgress float64
	for rowIdx, record := range records {
		row := rowIdx + 2
		value := record.ItemValue()
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), record.WorkItemCode)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), record.WorkItemName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), record.Volume)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), record.Unit)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), record.UnitPrice)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), record.Week)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), record.ProgressPct)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), value)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), record.UpdateDate.Format("2006-01-02"))
		totalValue += value
		totalProgress += record.ProgressPct
	}

	summaryRow := len(records) + 2
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("G%d", summaryRow), totalProgress)
	f.SetCellValue(sheet, fmt.Sprintf("H%d", summaryRow), totalValue)
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("I%d", summaryRow), summaryStyle)

	colWidths := []float64{10, 30, 10, 8, 14, 12, 12, 16, 14}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	filename := fmt.Sprintf("Kemajuan_%s.xlsx", project.ContractNumber)
	return f, filename, nil
}
