package http

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	uomapp "github.com/mutugading/goapps-backend/services/uom/internal/application/uom"
	"github.com/mutugading/goapps-backend/services/uom/internal/domain/shared"
	"github.com/mutugading/goapps-backend/services/uom/internal/domain/uom"
	"github.com/mutugading/goapps-backend/services/uom/pkg/i18n"
	"github.com/mutugading/goapps-backend/services/uom/pkg/response"
)

// UOM permissions.
const (
	PermUOMView   = "uom.master.uom.view"
	PermUOMCreate = "uom.master.uom.create"
	PermUOMUpdate = "uom.master.uom.update"
	PermUOMDelete = "uom.master.uom.delete"
)

const importFileField = "file"

// UOMHandler serves /api/v1/uom.
type UOMHandler struct {
	createHandler       *uomapp.CreateHandler
	getHandler          *uomapp.GetHandler
	listHandler         *uomapp.ListHandler
	checkNameHandler    *uomapp.CheckNameHandler
	updateHandler       *uomapp.UpdateHandler
	changeStatusHandler *uomapp.ChangeStatusHandler
	deleteHandler       *uomapp.DeleteHandler
	exportHandler       *uomapp.ExportHandler
	templateHandler     *uomapp.TemplateHandler
	importHandler       *uomapp.ImportHandler

	maxUploadSize int64
	translator    *ErrorTranslator
}

// NewUOMHandler creates the UOM REST handler. cache and listener may be nil.
func NewUOMHandler(
	repo uom.Repository,
	statuses uomapp.StatusChecker,
	tx shared.Transactor,
	cache uomapp.Cache,
	listener shared.ChangeListener,
	maxUploadSize int64,
) *UOMHandler {
	create := uomapp.NewCreateHandler(repo, statuses, tx, listener)
	update := uomapp.NewUpdateHandler(repo, statuses, tx, listener)

	return &UOMHandler{
		createHandler:       create,
		getHandler:          uomapp.NewGetHandler(repo, cache),
		listHandler:         uomapp.NewListHandler(repo),
		checkNameHandler:    uomapp.NewCheckNameHandler(repo),
		updateHandler:       update,
		changeStatusHandler: uomapp.NewChangeStatusHandler(repo, statuses, tx, listener),
		deleteHandler:       uomapp.NewDeleteHandler(repo, tx, listener),
		exportHandler:       uomapp.NewExportHandler(repo),
		templateHandler:     uomapp.NewTemplateHandler(),
		importHandler:       uomapp.NewImportHandler(repo, create, update),
		maxUploadSize:       maxUploadSize,
	}
}

// RegisterRoutes mounts the UOM routes on rg.
func (h *UOMHandler) RegisterRoutes(rg *gin.RouterGroup, t *ErrorTranslator) {
	h.translator = t
	view := RequirePermission(PermUOMView, t)

	g := rg.Group("/uom")
	g.POST("", RequirePermission(PermUOMCreate, t), h.Create)
	g.GET("", view, h.List)
	g.GET("/search", view, h.Search)
	g.GET("/filter/:uomStatusId", view, h.FilterByStatus)
	g.GET("/check-name", view, h.CheckName)
	g.GET("/export", view, h.Export)
	g.GET("/template", view, h.Template)
	g.POST("/import", RequirePermission(PermUOMCreate, t), RequirePermission(PermUOMUpdate, t), h.Import)
	g.GET("/:id", view, h.Get)
	g.PUT("/:id", RequirePermission(PermUOMUpdate, t), h.Update)
	g.PATCH("/:id/change-status", RequirePermission(PermUOMUpdate, t), h.ChangeStatus)
	g.DELETE("/:id", RequirePermission(PermUOMDelete, t), h.Delete)
}

// Create handles POST /uom.
func (h *UOMHandler) Create(c *gin.Context) {
	var req CreateUOMRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	factor, err := uom.NewConversionFactor(*req.ConversionFactorToBase)
	if err != nil {
		fail(c, err)
		return
	}

	entity, err := h.createHandler.Handle(c.Request.Context(), uomapp.CreateCommand{
		Name:             req.Name,
		Description:      req.Description,
		ConversionFactor: factor,
		StatusID:         req.UomStatusID,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, toUOMResponse(entity))
}

// Get handles GET /uom/{id}.
func (h *UOMHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	entity, err := h.getHandler.Handle(c.Request.Context(), uomapp.GetQuery{ID: id})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, toUOMResponse(entity))
}

// List handles GET /uom.
func (h *UOMHandler) List(c *gin.Context) {
	h.list(c, uomapp.ListQuery{})
}

// Search handles GET /uom/search?name=.
func (h *UOMHandler) Search(c *gin.Context) {
	name, err := requiredQuery(c, "name")
	if err != nil {
		fail(c, err)
		return
	}
	h.list(c, uomapp.ListQuery{Name: &name})
}

// FilterByStatus handles GET /uom/filter/{uomStatusId}.
func (h *UOMHandler) FilterByStatus(c *gin.Context) {
	statusID, err := pathID(c, "uomStatusId")
	if err != nil {
		fail(c, err)
		return
	}
	h.list(c, uomapp.ListQuery{StatusID: &statusID})
}

func (h *UOMHandler) list(c *gin.Context, query uomapp.ListQuery) {
	page, err := pageRequest(c)
	if err != nil {
		fail(c, err)
		return
	}
	query.Page = page

	result, err := h.listHandler.Handle(c.Request.Context(), query)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewPage(result, toUOMResponse))
}

// CheckName handles GET /uom/check-name?name=.
func (h *UOMHandler) CheckName(c *gin.Context) {
	name, err := requiredQuery(c, "name")
	if err != nil {
		fail(c, err)
		return
	}

	taken, err := h.checkNameHandler.Handle(c.Request.Context(), name)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, taken)
}

// Update handles PUT /uom/{id}.
func (h *UOMHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	var req UpdateUOMRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	cmd := uomapp.UpdateCommand{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
	}
	if req.ConversionFactorToBase != nil {
		factor, err := uom.NewConversionFactor(*req.ConversionFactorToBase)
		if err != nil {
			fail(c, err)
			return
		}
		cmd.ConversionFactor = &factor
	}

	entity, err := h.updateHandler.Handle(c.Request.Context(), cmd)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, toUOMResponse(entity))
}

// ChangeStatus handles PATCH /uom/{id}/change-status?newUomStatusId=.
func (h *UOMHandler) ChangeStatus(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	newStatusID, err := requiredIDQuery(c, "newUomStatusId")
	if err != nil {
		fail(c, err)
		return
	}

	err = h.changeStatusHandler.Handle(c.Request.Context(), uomapp.ChangeStatusCommand{ID: id, NewStatusID: newStatusID})
	if err != nil {
		fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete handles DELETE /uom/{id}.
func (h *UOMHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	if err := h.deleteHandler.Handle(c.Request.Context(), uomapp.DeleteCommand{ID: id}); err != nil {
		fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Export handles GET /uom/export with the same name and uomStatusId filters as the list.
func (h *UOMHandler) Export(c *gin.Context) {
	var query uomapp.ExportQuery
	if name, ok := c.GetQuery("name"); ok {
		query.Name = &name
	}
	if _, ok := c.GetQuery("uomStatusId"); ok {
		statusID, err := requiredIDQuery(c, "uomStatusId")
		if err != nil {
			fail(c, err)
			return
		}
		query.StatusID = &statusID
	}

	result, err := h.exportHandler.Handle(c.Request.Context(), query)
	if err != nil {
		fail(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.FileName+`"`)
	c.Data(http.StatusOK, xlsxContentType, result.FileContent)
}

// Template handles GET /uom/template.
func (h *UOMHandler) Template(c *gin.Context) {
	result, err := h.templateHandler.Handle()
	if err != nil {
		fail(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.FileName+`"`)
	c.Data(http.StatusOK, xlsxContentType, result.FileContent)
}

// Import handles POST /uom/import (multipart field "file", optional duplicateAction).
func (h *UOMHandler) Import(c *gin.Context) {
	if h.maxUploadSize > 0 {
		if c.Request.ContentLength > h.maxUploadSize {
			fail(c, h.uploadTooLarge())
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize)
	}

	rawAction, ok := c.GetPostForm("duplicateAction")
	if !ok {
		rawAction = c.Query("duplicateAction")
	}
	action, err := uomapp.ParseDuplicateAction(rawAction)
	if err != nil {
		fail(c, err)
		return
	}

	header, err := c.FormFile(importFileField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			fail(c, h.uploadTooLarge())
			return
		}
		fail(c, shared.InvalidDataf(i18n.KeyFileRequired, importFileField))
		return
	}

	file, err := header.Open()
	if err != nil {
		fail(c, err)
		return
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(file)
	if err != nil {
		fail(c, err)
		return
	}

	result, err := h.importHandler.Handle(c.Request.Context(), uomapp.ImportCommand{
		FileContent:     content,
		FileName:        filepath.Base(header.Filename),
		DuplicateAction: action,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, h.toImportResponse(c, result))
}

func (h *UOMHandler) toImportResponse(c *gin.Context, result *uomapp.ImportResult) ImportResponse {
	resp := ImportResponse{
		SuccessCount: result.SuccessCount,
		SkippedCount: result.SkippedCount,
		UpdatedCount: result.UpdatedCount,
		FailedCount:  result.FailedCount,
		Errors:       make([]ImportErrorResponse, 0, len(result.Errors)),
	}
	for _, e := range result.Errors {
		resp.Errors = append(resp.Errors, ImportErrorResponse{
			RowNumber: e.RowNumber,
			Field:     e.Field,
			Message:   h.translator.Describe(c, e.Err),
		})
	}
	return resp
}

func (h *UOMHandler) uploadTooLarge() error {
	return shared.InvalidDataf(i18n.KeyFileTooLarge, strconv.FormatInt(h.maxUploadSize, 10))
}
