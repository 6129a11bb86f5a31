package uom

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/mutugading/goapps-backend/services/uom/internal/domain/uom"
)

// ExportQuery represents the export UOMs query.
type ExportQuery struct {
	Name     *string
	StatusID *int64
}

// ExportResult represents the export UOMs result.
type ExportResult struct {
	FileContent []byte
	FileName    string
}

// ExportHandler handles the ExportUOMs query.
type ExportHandler struct {
	repo uom.Repository
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(repo uom.Repository) *ExportHandler {
	return &ExportHandler{repo: repo}
}

// Handle writes the matching UOMs to a workbook laid out like the import template.
func (h *ExportHandler) Handle(ctx context.Context, query ExportQuery) (*ExportResult, error) {
	uoms, err := h.repo.ListAll(ctx, uom.ExportFilter{Name: query.Name, StatusID: query.StatusID})
	if err != nil {
		return nil, normalize(fmt.Errorf("failed to get uoms for export: %w", err), "export")
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheetName := "UOMs"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, normalize(fmt.Errorf("failed to create sheet: %w", err), "export")
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	writeHeader(f, sheetName, append([]string{"ID"}, importColumns...))

	for i, u := range uoms {
		row := i + 2
		_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), u.ID())
		_ = f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), u.Name())
		_ = f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), u.Description())
		_ = f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), u.ConversionFactor().String())
		_ = f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), u.StatusID())
	}

	_ = f.SetColWidth(sheetName, "A", "A", 8)
	_ = f.SetColWidth(sheetName, "B", "B", 25)
	_ = f.SetColWidth(sheetName, "C", "C", 40)
	_ = f.SetColWidth(sheetName, "D", "E", 22)

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, normalize(fmt.Errorf("failed to write excel to buffer: %w", err), "export")
	}

	return &ExportResult{
		FileContent: buffer.Bytes(),
		FileName:    "uom_export.xlsx",
	}, nil
}

// writeHeader writes bold column titles to the first row.
func writeHeader(f *excelize.File, sheet string, headers []string) {
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheet, cell, header)
	}

	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheet, "A1", last, headerStyle)
}
