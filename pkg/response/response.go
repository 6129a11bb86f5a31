// Package response provides the payloads shared by every REST endpoint.
package response

import (
	"net/http"
	"time"

	"github.com/mutugading/goapps-backend/services/uom/internal/domain/shared"
)

// statusByKind lists the kinds with a dedicated HTTP status. Every other kind,
// SERVICE_UNAVAILABLE included, is reported as 500.
var statusByKind = map[shared.Kind]int{
	shared.KindInvalidData:      http.StatusBadRequest,
	shared.KindResourceConflict: http.StatusConflict,
	shared.KindResourceNotFound: http.StatusNotFound,
}

// StatusFor returns the HTTP status for an error kind.
func StatusFor(kind shared.Kind) int {
	if status, ok := statusByKind[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Code      int       `json:"code"`
	Value     string    `json:"value"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Path      string    `json:"path"`
}

// NewError builds the payload for kind. A non-empty detail is appended to the
// kind message after ": ".
func NewError(kind shared.Kind, message, detail, path string) ErrorResponse {
	if detail != "" {
		message += ": " + detail
	}
	return ErrorResponse{
		Code:      kind.Code(),
		Value:     kind.Symbol(),
		Message:   message,
		Timestamp: time.Now().UTC(),
		Path:      path,
	}
}

// Page is the paginated list envelope.
type Page[T any] struct {
	Content          []T   `json:"content"`
	Number           int   `json:"number"`
	Size             int   `json:"size"`
	TotalElements    int64 `json:"totalElements"`
	TotalPages       int   `json:"totalPages"`
	NumberOfElements int   `json:"numberOfElements"`
	First            bool  `json:"first"`
	Last             bool  `json:"last"`
}

// NewPage converts a domain page, mapping each element with fn.
func NewPage[T, U any](page shared.Page[T], fn func(T) U) Page[U] {
	mapped := shared.MapPage(page, fn)
	return Page[U]{
		Content:          mapped.Content,
		Number:           mapped.Number,
		Size:             mapped.Size,
		TotalElements:    mapped.TotalElements,
		TotalPages:       mapped.TotalPages(),
		NumberOfElements: mapped.NumberOfElements(),
		First:            mapped.First(),
		Last:             mapped.Last(),
	}
}
