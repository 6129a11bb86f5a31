package uomstatus

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/mutugading/goapps-backend/services/uom/internal/domain/uomstatus"
)

// ExportResult represents the export Statuses result.
type ExportResult struct {
	FileContent []byte
	FileName    string
}

// ExportHandler writes every Status to an Excel workbook.
type ExportHandler struct {
	repo uomstatus.Repository
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(repo uomstatus.Repository) *ExportHandler {
	return &ExportHandler{repo: repo}
}

// Handle executes the export Statuses query.
func (h *ExportHandler) Handle(ctx context.Context) (*ExportResult, error) {
	statuses, err := h.repo.ListAll(ctx)
	if err != nil {
		return nil, normalize(fmt.Errorf("failed to get uom statuses for export: %w", err), "export")
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheetName := "UOM Statuses"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, normalize(fmt.Errorf("failed to create sheet: %w", err), "export")
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{"ID", "Name", "Description", "Usable"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheetName, "A1", "D1", headerStyle)

	for i, s := range statuses {
		row := i + 2
		_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), s.ID())
		_ = f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), s.Name())
		_ = f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), s.Description())
		_ = f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), s.IsUsable())
	}

	_ = f.SetColWidth(sheetName, "A", "A", 8)
	_ = f.SetColWidth(sheetName, "B", "B", 25)
	_ = f.SetColWidth(sheetName, "C", "C", 50)
	_ = f.SetColWidth(sheetName, "D", "D", 10)

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, normalize(fmt.Errorf("failed to write excel to buffer: %w", err), "export")
	}

	return &ExportResult{
		FileContent: buffer.Bytes(),
		FileName:    "uom_status_export.xlsx",
	}, nil
}
