package http

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/mutugading/goapps-backend/services/uom/internal/domain/uom"
	"github.com/mutugading/goapps-backend/services/uom/internal/domain/uomstatus"
)

// CreateStatusRequest is the body of POST /api/v1/uom-status.
type CreateStatusRequest struct {
	Name        string `json:"name" binding:"required,notblank,max=50"`
	Description string `json:"description" binding:"max=200"`
	IsUsable    *bool  `json:"isUsable"`
}

// UpdateStatusRequest is the body of PUT /api/v1/uom-status/{id}. The
// usability flag is deliberately absent.
type UpdateStatusRequest struct {
	Name        *string `json:"name" binding:"omitempty,notblank,max=50"`
	Description *string `json:"description" binding:"omitempty,max=200"`
}

// StatusResponse is the Status output shape.
type StatusResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsUsable    bool   `json:"isUsable"`
}

func toStatusResponse(s *uomstatus.Status) StatusResponse {
	return StatusResponse{
		ID:          s.ID(),
		Name:        s.Name(),
		Description: s.Description(),
		IsUsable:    s.IsUsable(),
	}
}

// CreateUOMRequest is the body of POST /api/v1/uom.
type CreateUOMRequest struct {
	Name                   string           `json:"name" binding:"required,notblank,max=50"`
	Description            string           `json:"description" binding:"max=200"`
	ConversionFactorToBase *decimal.Decimal `json:"conversionFactorToBase" binding:"required"`
	UomStatusID            int64            `json:"uomStatusId" binding:"required,gt=0"`
}

// UpdateUOMRequest is the body of PUT /api/v1/uom/{id}. The Status reference
// is changed only through change-status.
type UpdateUOMRequest struct {
	Name                   *string          `json:"name" binding:"omitempty,notblank,max=50"`
	Description            *string          `json:"description" binding:"omitempty,max=200"`
	ConversionFactorToBase *decimal.Decimal `json:"conversionFactorToBase"`
}

// UOMResponse is the UOM output shape. The factor is a JSON number with
// three decimals.
type UOMResponse struct {
	ID                     int64       `json:"id"`
	Name                   string      `json:"name"`
	Description            string      `json:"description"`
	ConversionFactorToBase json.Number `json:"conversionFactorToBase"`
	UomStatusID            int64       `json:"uomStatusId"`
}

func toUOMResponse(u *uom.UOM) UOMResponse {
	return UOMResponse{
		ID:                     u.ID(),
		Name:                   u.Name(),
		Description:            u.Description(),
		ConversionFactorToBase: json.Number(u.ConversionFactor().String()),
		UomStatusID:            u.StatusID(),
	}
}

// ImportErrorResponse describes one rejected import row.
type ImportErrorResponse struct {
	RowNumber int32  `json:"rowNumber"`
	Field     string `json:"field"`
	Message   string `json:"message"`
}

// ImportResponse summarizes an import.
type ImportResponse struct {
	SuccessCount int32                 `json:"successCount"`
	SkippedCount int32                 `json:"skippedCount"`
	UpdatedCount int32                 `json:"updatedCount"`
	FailedCount  int32                 `json:"failedCount"`
	Errors       []ImportErrorResponse `json:"errors"`
}
