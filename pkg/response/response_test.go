package response_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mutugading/goapps-backend/services/uom/internal/domain/shared"
	"github.com/mutugading/goapps-backend/services/uom/pkg/response"
)

func TestStatusFor(t *testing.T) {
	tests := map[shared.Kind]int{
		shared.KindDatabase:           http.StatusInternalServerError,
		shared.KindInvalidData:        http.StatusBadRequest,
		shared.KindResourceConflict:   http.StatusConflict,
		shared.KindResourceNotFound:   http.StatusNotFound,
		shared.KindServiceUnavailable: http.StatusInternalServerError,
		shared.KindUnexpected:         http.StatusInternalServerError,
	}

	for kind, want := range tests {
		t.Run(kind.Symbol(), func(t *testing.T) {
			assert.Equal(t, want, response.StatusFor(kind))
		})
	}
}

func TestNewError(t *testing.T) {
	resp := response.NewError(shared.KindResourceNotFound, "Resource not found", "UomStatus with id '9' not found", "/api/v1/uom-status/9")

	assert.Equal(t, 1004, resp.Code)
	assert.Equal(t, "RESOURCE_NOT_FOUND", resp.Value)
	assert.Equal(t, "Resource not found: UomStatus with id '9' not found", resp.Message)
	assert.Equal(t, "/api/v1/uom-status/9", resp.Path)
	assert.False(t, resp.Timestamp.IsZero())

	bare := response.NewError(shared.KindUnexpected, "An unexpected error occurred", "", "/x")
	assert.Equal(t, "An unexpected error occurred", bare.Message)
}

func TestNewPage(t *testing.T) {
	page := shared.NewPage([]int{1, 2}, shared.NewPageRequest(0, 2, shared.Sort{}), 3)
	out := response.NewPage(page, func(i int) string { return string(rune('a' + i)) })

	raw, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"content": ["b", "c"],
		"number": 0,
		"size": 2,
		"totalElements": 3,
		"totalPages": 2,
		"numberOfElements": 2,
		"first": true,
		"last": false
	}`, string(raw))
}
