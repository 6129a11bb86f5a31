package uom

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/mutugading/goapps-backend/services/uom/internal/domain/shared"
	"github.com/mutugading/goapps-backend/services/uom/internal/domain/uom"
	"github.com/mutugading/goapps-backend/services/uom/pkg/safeconv"
)

// DuplicateAction decides what an import does with a name that already exists.
type DuplicateAction string

// Duplicate actions.
const (
	DuplicateSkip   DuplicateAction = "skip"
	DuplicateUpdate DuplicateAction = "update"
	DuplicateError  DuplicateAction = "error"
)

var (
	// ErrUnsupportedFile is returned for uploads that are not .xlsx workbooks.
	ErrUnsupportedFile = errors.New("file: only .xlsx workbooks are supported")

	// ErrUnknownDuplicateAction is returned for a duplicateAction outside skip, update and error.
	ErrUnknownDuplicateAction = errors.New("duplicateAction: must be one of skip, update, error")

	errStatusIDNotNumeric = errors.New("uomStatusId: must be a positive integer")
)

// ParseDuplicateAction parses s, defaulting to skip when empty.
func ParseDuplicateAction(s string) (DuplicateAction, error) {
	switch DuplicateAction(strings.ToLower(strings.TrimSpace(s))) {
	case "", DuplicateSkip:
		return DuplicateSkip, nil
	case DuplicateUpdate:
		return DuplicateUpdate, nil
	case DuplicateError:
		return DuplicateError, nil
	default:
		return "", shared.InvalidData(ErrUnknownDuplicateAction)
	}
}

// ImportCommand represents the import UOMs command.
type ImportCommand struct {
	FileContent     []byte
	FileName        string
	DuplicateAction DuplicateAction
}

// ImportResult represents the import UOMs result.
type ImportResult struct {
	SuccessCount int32
	SkippedCount int32
	UpdatedCount int32
	FailedCount  int32
	Errors       []ImportError
}

// ImportError describes a rejected row. Err is a *shared.Error whose message
// is resolved by the caller.
type ImportError struct {
	RowNumber int32
	Field     string
	Err       error
}

// ImportHandler creates or updates UOMs from the rows of a workbook. Each row
// is committed on its own through the create and update handlers.
type ImportHandler struct {
	repo   uom.Repository
	create *CreateHandler
	update *UpdateHandler
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(repo uom.Repository, create *CreateHandler, update *UpdateHandler) *ImportHandler {
	return &ImportHandler{repo: repo, create: create, update: update}
}

// Handle executes the import UOMs command.
func (h *ImportHandler) Handle(ctx context.Context, cmd ImportCommand) (*ImportResult, error) {
	result := &ImportResult{Errors: []ImportError{}}

	rows, err := parseExcelFile(cmd.FileContent, cmd.FileName)
	if err != nil {
		return nil, err
	}

	// Skip header row
	if len(rows) <= 1 {
		return result, nil
	}

	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		rowNum := safeconv.IntToInt32(i + 2)
		h.processRow(ctx, row, rowNum, cmd.DuplicateAction, result)
	}

	log.Info().
		Int32("created", result.SuccessCount).
		Int32("updated", result.UpdatedCount).
		Int32("skipped", result.SkippedCount).
		Int32("failed", result.FailedCount).
		Msg("Uom import finished")

	return result, nil
}

func parseExcelFile(content []byte, fileName string) ([][]string, error) {
	if ext := strings.ToLower(filepath.Ext(fileName)); ext != ".xlsx" {
		return nil, shared.InvalidData(ErrUnsupportedFile)
	}

	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, shared.InvalidData(fmt.Errorf("file: failed to open workbook: %w", err))
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Failed to close Excel file")
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, shared.InvalidData(errors.New("file: workbook has no sheets"))
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, shared.InvalidData(fmt.Errorf("file: failed to read rows: %w", err))
	}
	return rows, nil
}

type rowData struct {
	name        string
	description string
	factor      uom.ConversionFactor
	statusID    int64
}

func parseRow(row []string) (rowData, string, error) {
	data := rowData{
		name:        getCell(row, 0),
		description: getCell(row, 1),
	}

	factor, err := uom.ParseConversionFactor(getCell(row, 2))
	if err != nil {
		return rowData{}, "conversionFactorToBase", err
	}
	data.factor = factor

	statusID, err := strconv.ParseInt(getCell(row, 3), 10, 64)
	if err != nil || statusID <= 0 {
		return rowData{}, "uomStatusId", shared.InvalidData(errStatusIDNotNumeric)
	}
	data.statusID = statusID

	return data, "", nil
}

func (h *ImportHandler) processRow(ctx context.Context, row []string, rowNum int32, action DuplicateAction, result *ImportResult) {
	data, field, err := parseRow(row)
	if err != nil {
		result.fail(rowNum, field, err)
		return
	}

	exists, err := h.repo.ExistsByNameIgnoreCase(ctx, data.name)
	if err != nil {
		result.fail(rowNum, "name", normalize(err, "import"))
		return
	}
	if exists {
		h.handleDuplicate(ctx, data, rowNum, action, result)
		return
	}

	_, err = h.create.Handle(ctx, CreateCommand{
		Name:             data.name,
		Description:      data.description,
		ConversionFactor: data.factor,
		StatusID:         data.statusID,
	})
	if err != nil {
		result.fail(rowNum, "create", err)
		return
	}
	result.SuccessCount++
}

func (h *ImportHandler) handleDuplicate(ctx context.Context, data rowData, rowNum int32, action DuplicateAction, result *ImportResult) {
	switch action {
	case DuplicateUpdate:
		h.updateExisting(ctx, data, rowNum, result)
	case DuplicateError:
		result.fail(rowNum, "name", uom.NameTaken(data.name))
	default:
		result.SkippedCount++
	}
}

// updateExisting rewrites name, description and factor. The status column is
// ignored because the Status reference only changes through ChangeStatus.
func (h *ImportHandler) updateExisting(ctx context.Context, data rowData, rowNum int32, result *ImportResult) {
	existing, err := h.repo.GetByName(ctx, data.name)
	if err != nil {
		result.fail(rowNum, "name", normalize(err, "import"))
		return
	}

	_, err = h.update.Handle(ctx, UpdateCommand{
		ID:               existing.ID(),
		Name:             &data.name,
		Description:      &data.description,
		ConversionFactor: &data.factor,
	})
	if err != nil {
		result.fail(rowNum, "update", err)
		return
	}
	result.UpdatedCount++
}

func (r *ImportResult) fail(rowNum int32, field string, err error) {
	r.FailedCount++
	r.Errors = append(r.Errors, ImportError{RowNumber: rowNum, Field: field, Err: err})
}

func getCell(row []string, index int) string {
	if index < len(row) {
		return strings.TrimSpace(row[index])
	}
	return ""
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
