package uom

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// importColumns is the column order read by ImportHandler.
var importColumns = []string{"Name", "Description", "ConversionFactorToBase", "UomStatusId"}

// TemplateResult represents the download template result.
type TemplateResult struct {
	FileContent []byte
	FileName    string
}

// TemplateHandler handles the DownloadTemplate query.
type TemplateHandler struct{}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler() *TemplateHandler {
	return &TemplateHandler{}
}

// Handle generates the import template workbook.
func (h *TemplateHandler) Handle() (*TemplateResult, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheetName := "UOM Import Template"
	index, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	writeHeader(f, sheetName, importColumns)

	sampleData := [][]any{
		{"Kilogram", "Mass in kilograms", "1000", 1},
		{"Gram", "Mass in grams", "1", 1},
		{"Meter", "Length in meters", "1", 1},
		{"Inch", "Length in inches", "0.0254", 1},
	}
	for i, row := range sampleData {
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			_ = f.SetCellValue(sheetName, cell, value)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 25)
	_ = f.SetColWidth(sheetName, "B", "B", 40)
	_ = f.SetColWidth(sheetName, "C", "D", 22)

	notesSheet := "Instructions"
	_, _ = f.NewSheet(notesSheet)
	_ = f.SetCellValue(notesSheet, "A1", "Import Instructions")
	_ = f.SetCellValue(notesSheet, "A3", "1. Name: required, at most 50 characters, unique ignoring case")
	_ = f.SetCellValue(notesSheet, "A4", "2. Description: optional, at most 200 characters")
	_ = f.SetCellValue(notesSheet, "A5", "3. ConversionFactorToBase: greater than 0, up to 7 integer and 3 fraction digits")
	_ = f.SetCellValue(notesSheet, "A6", "4. UomStatusId: id of an existing UOM status")
	_ = f.SetCellValue(notesSheet, "A8", "Notes:")
	_ = f.SetCellValue(notesSheet, "A9", "- Delete sample data rows before importing")
	_ = f.SetCellValue(notesSheet, "A10", "- Save file as .xlsx format")

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel to buffer: %w", err)
	}

	return &TemplateResult{
		FileContent: buffer.Bytes(),
		FileName:    "uom_import_template.xlsx",
	}, nil
}
