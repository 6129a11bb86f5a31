package http_test

import (
	"math"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	httpdelivery "github.com/mutugading/goapps-backend/services/uom/internal/delivery/http"
	"github.com/mutugading/goapps-backend/services/uom/internal/domain/shared"
)

type statusPage struct {
	Content          []httpdelivery.StatusResponse `json:"content"`
	Number           int                           `json:"number"`
	Size             int                           `json:"size"`
	TotalElements    int64                         `json:"totalElements"`
	TotalPages       int                           `json:"totalPages"`
	NumberOfElements int                           `json:"numberOfElements"`
	First            bool                          `json:"first"`
	Last             bool                          `json:"last"`
}

func (s *testServer) createStatus(t *testing.T, name string, isUsable bool) httpdelivery.StatusResponse {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/v1/uom-status", map[string]any{
		"name":        name,
		"description": name + " status",
		"isUsable":    isUsable,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[httpdelivery.StatusResponse](t, rec)
}

func TestUOMStatus_Create(t *testing.T) {
	srv := newTestServer(t)

	t.Run("created", func(t *testing.T) {
		created := srv.createStatus(t, "Active", true)
		assert.Equal(t, int64(1), created.ID)
		assert.Equal(t, "Active", created.Name)
		assert.Equal(t, "Active status", created.Description)
		assert.True(t, created.IsUsable)
	})

	t.Run("isUsable defaults to true", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/api/v1/uom-status", map[string]any{"name": "Pending"})
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.True(t, decode[httpdelivery.StatusResponse](t, rec).IsUsable)
	})

	t.Run("duplicate name", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/api/v1/uom-status", map[string]any{"name": "Active"})
		assertError(t, rec, http.StatusConflict, 1003, "Resource conflict occurred: UomStatus with name 'Active' already exists")
	})

	t.Run("names are case sensitive", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/api/v1/uom-status", map[string]any{"name": "ACTIVE"})
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("blank name", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/api/v1/uom-status", map[string]any{"name": "   "})
		assertError(t, rec, http.StatusBadRequest, 1002, "Provided data is invalid: name: must not be blank")
	})

	t.Run("missing name", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/api/v1/uom-status", map[string]any{"description": "x"})
		assertError(t, rec, http.StatusBadRequest, 1002, "Provided data is invalid: name: must not be null")
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/api/v1/uom-status", `{"name":`)
		assertError(t, rec, http.StatusBadRequest, 1002, "Provided data is invalid: Malformed request body")
	})
}

func TestUOMStatus_GetAndChangeUsability(t *testing.T) {
	srv := newTestServer(t)
	created := srv.createStatus(t, "Active", true)

	rec := srv.do(t, http.MethodPatch, "/api/v1/uom-status/1/status?isUsable=false", nil)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	assert.Empty(t, rec.Body.String())

	rec = srv.do(t, http.MethodGet, "/api/v1/uom-status/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[httpdelivery.StatusResponse](t, rec)
	assert.Equal(t, created.Name, got.Name)
	assert.False(t, got.IsUsable)

	t.Run("missing isUsable", func(t *testing.T) {
		rec := srv.do(t, http.MethodPatch, "/api/v1/uom-status/1/status", nil)
		assertError(t, rec, http.StatusBadRequest, 1002, "Provided data is invalid: Required parameter 'isUsable' is missing")
	})

	t.Run("invalid isUsable", func(t *testing.T) {
		rec := srv.do(t, http.MethodPatch, "/api/v1/uom-status/1/status?isUsable=maybe", nil)
		assertError(t, rec, http.StatusBadRequest, 1002, "Provided data is invalid: Parameter 'isUsable' has an invalid value 'maybe'")
	})

	t.Run("unknown id", func(t *testing.T) {
		rec := srv.do(t, http.MethodPatch, "/api/v1/uom-status/999/status?isUsable=true", nil)
		assertError(t, rec, http.StatusNotFound, 1004, "Resource not found: UomStatus with id '999' not found")
	})

	t.Run("invalid path id", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/api/v1/uom-status/abc", nil)
		assertError(t, rec, http.StatusBadRequest, 1002, "Provided data is invalid: Parameter 'id' has an invalid value 'abc'")
	})
}

func TestUOMStatus_List(t *testing.T) {
	srv := newTestServer(t)
	srv.createStatus(t, "Active", true)
	srv.createStatus(t, "Inactive", false)
	srv.createStatus(t, "Deprecated", false)

	t.Run("first page", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/api/v1/uom-status?page=0&size=2", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		page := decode[statusPage](t, rec)
		assert.Equal(t, int64(3), page.TotalElements)
		assert.Equal(t, 2, page.TotalPages)
		assert.Equal(t, 2, page.NumberOfElements)
		assert.Equal(t, 2, page.Size)
		assert.True(t, page.First)
		assert.False(t, page.Last)
		assert.Equal(t, "Active", page.Content[0].Name)
	})

	t.Run("sorted descending", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/api/v1/uom-status?sort=name,desc", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		page := decode[statusPage](t, rec)
		require.Len(t, page.Content, 3)
		assert.Equal(t, "Inactive", page.Content[0].Name)
	})

	t.Run("unknown sort property", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/api/v1/uom-status?sort=conversionFactorToBase", nil)
		assertError(t, rec, http.StatusBadRequest, 1002, "")
	})

	t.Run("non numeric page", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/api/v1/uom-status?page=first", nil)
		assertError(t, rec, http.StatusBadRequest, 1002, "Provided data is invalid: Parameter 'page' has an invalid value 'first'")
	})

	t.Run("page beyond addressable range", func(t *testing.T) {
		page := strconv.Itoa(math.MaxInt/shared.MaxPageSize + 1)
		rec := srv.do(t, http.MethodGet, "/api/v1/uom-status?size=100&page="+page, nil)
		assertError(t, rec, http.StatusBadRequest, 1002, "Provided data is invalid: Parameter 'page' has an invalid value '"+page+"'")
	})

	t.Run("search", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/api/v1/uom-status/search?name=act", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		page := decode[statusPage](t, rec)
		assert.Equal(t, int64(2), page.TotalElements)
	})

	t.Run("search with blank name", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/api/v1/uom-status/search?name=", nil)
		assertError(t, rec, http.StatusBadRequest, 1002, "Provided data is invalid: name: search term must not be blank")
	})

	t.Run("search without name", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/api/v1/uom-status/search", nil)
		assertError(t, rec, http.StatusBadRequest, 1002, "Provided data is invalid: Required parameter 'name' is missing")
	})

	t.Run("filter by usability", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/api/v1/uom-status/filter?isUsable=false", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		page := decode[statusPage](t, rec)
		assert.Equal(t, int64(2), page.TotalElements)
		for _, s := range page.Content {
			assert.False(t, s.IsUsable)
		}
	})

	t.Run("empty result", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/api/v1/uom-status/search?name=zzz", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		page := decode[statusPage](t, rec)
		assert.NotNil(t, page.Content)
		assert.Empty(t, page.Content)
		assert.True(t, page.First)
		assert.True(t, page.Last)
	})
}

func TestUOMStatus_CheckName(t *testing.T) {
	srv := newTestServer(t)
	srv.createStatus(t, "Active", true)

	rec := srv.do(t, http.MethodGet, "/api/v1/uom-status/check-name?name=Active", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "true", rec.Body.String())

	rec = srv.do(t, http.MethodGet, "/api/v1/uom-status/check-name?name=active", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "false", rec.Body.String())
}

func TestUOMStatus_Update(t *testing.T) {
	srv := newTestServer(t)
	srv.createStatus(t, "Active", false)
	srv.createStatus(t, "Inactive", false)

	t.Run("keeps usability", func(t *testing.T) {
		rec := srv.do(t, http.MethodPut, "/api/v1/uom-status/1", map[string]any{"name": "Enabled"})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		got := decode[httpdelivery.StatusResponse](t, rec)
		assert.Equal(t, "Enabled", got.Name)
		assert.Equal(t, "Active status", got.Description)
		assert.False(t, got.IsUsable)
	})

	t.Run("rename to existing name", func(t *testing.T) {
		rec := srv.do(t, http.MethodPut, "/api/v1/uom-status/1", map[string]any{"name": "Inactive"})
		assertError(t, rec, http.StatusConflict, 1003, "")
	})

	t.Run("unknown id", func(t *testing.T) {
		rec := srv.do(t, http.MethodPut, "/api/v1/uom-status/999", map[string]any{"name": "Other"})
		assertError(t, rec, http.StatusNotFound, 1004, "")
	})

	t.Run("description too long", func(t *testing.T) {
		long := make([]byte, 201)
		for i := range long {
			long[i] = 'd'
		}
		rec := srv.do(t, http.MethodPut, "/api/v1/uom-status/1", map[string]any{"description": string(long)})
		assertError(t, rec, http.StatusBadRequest, 1002, "Provided data is invalid: description: size must be between 0 and 200")
	})
}

func TestUOMStatus_Delete(t *testing.T) {
	srv := newTestServer(t)
	srv.createStatus(t, "Active", true)
	srv.createStatus(t, "Inactive", false)
	srv.createUOM(t, "Kilogram", "1000", 1)

	rec := srv.do(t, http.MethodDelete, "/api/v1/uom-status/2", nil)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = srv.do(t, http.MethodGet, "/api/v1/uom-status/2", nil)
	assertError(t, rec, http.StatusNotFound, 1004, "")

	t.Run("unknown id", func(t *testing.T) {
		rec := srv.do(t, http.MethodDelete, "/api/v1/uom-status/2", nil)
		assertError(t, rec, http.StatusNotFound, 1004, "")
	})

	t.Run("referenced by a UOM", func(t *testing.T) {
		rec := srv.do(t, http.MethodDelete, "/api/v1/uom-status/1", nil)
		assertError(t, rec, http.StatusInternalServerError, 1006, "")
	})
}

func TestUOMStatus_Export(t *testing.T) {
	srv := newTestServer(t)
	srv.createStatus(t, "Active", true)
	srv.createStatus(t, "Inactive", false)

	rec := srv.do(t, http.MethodGet, "/api/v1/uom-status/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetList()[0])
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}
