package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	statusapp "github.com/mutugading/goapps-backend/services/uom/internal/application/uomstatus"
	"github.com/mutugading/goapps-backend/services/uom/internal/domain/shared"
	"github.com/mutugading/goapps-backend/services/uom/internal/domain/uomstatus"
	"github.com/mutugading/goapps-backend/services/uom/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Status permissions.
const (
	PermStatusView   = "uom.master.status.view"
	PermStatusCreate = "uom.master.status.create"
	PermStatusUpdate = "uom.master.status.update"
	PermStatusDelete = "uom.master.status.delete"
)

// UOMStatusHandler serves /api/v1/uom-status.
type UOMStatusHandler struct {
	createHandler          *statusapp.CreateHandler
	getHandler             *statusapp.GetHandler
	listHandler            *statusapp.ListHandler
	checkNameHandler       *statusapp.CheckNameHandler
	updateHandler          *statusapp.UpdateHandler
	changeUsabilityHandler *statusapp.ChangeUsabilityHandler
	deleteHandler          *statusapp.DeleteHandler
	exportHandler          *statusapp.ExportHandler
}

// NewUOMStatusHandler creates the Status REST handler. cache and listener may be nil.
func NewUOMStatusHandler(
	repo uomstatus.Repository,
	tx shared.Transactor,
	cache statusapp.Cache,
	listener shared.ChangeListener,
) *UOMStatusHandler {
	return &UOMStatusHandler{
		createHandler:          statusapp.NewCreateHandler(repo, tx, listener),
		getHandler:             statusapp.NewGetHandler(repo, cache),
		listHandler:            statusapp.NewListHandler(repo),
		checkNameHandler:       statusapp.NewCheckNameHandler(repo),
		updateHandler:          statusapp.NewUpdateHandler(repo, tx, listener),
		changeUsabilityHandler: statusapp.NewChangeUsabilityHandler(repo, tx, listener),
		deleteHandler:          statusapp.NewDeleteHandler(repo, tx, listener),
		exportHandler:          statusapp.NewExportHandler(repo),
	}
}

// RegisterRoutes mounts the Status routes on rg.
func (h *UOMStatusHandler) RegisterRoutes(rg *gin.RouterGroup, t *ErrorTranslator) {
	view := RequirePermission(PermStatusView, t)

	g := rg.Group("/uom-status")
	g.POST("", RequirePermission(PermStatusCreate, t), h.Create)
	g.GET("", view, h.List)
	g.GET("/search", view, h.Search)
	g.GET("/filter", view, h.FilterByUsability)
	g.GET("/check-name", view, h.CheckName)
	g.GET("/export", view, h.Export)
	g.GET("/:id", view, h.Get)
	g.PUT("/:id", RequirePermission(PermStatusUpdate, t), h.Update)
	g.PATCH("/:id/status", RequirePermission(PermStatusUpdate, t), h.ChangeUsability)
	g.DELETE("/:id", RequirePermission(PermStatusDelete, t), h.Delete)
}

func fail(c *gin.Context, err error) {
	_ = c.Error(err)
}

// Create handles POST /uom-status.
func (h *UOMStatusHandler) Create(c *gin.Context) {
	var req CreateStatusRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	status, err := h.createHandler.Handle(c.Request.Context(), statusapp.CreateCommand{
		Name:        req.Name,
		Description: req.Description,
		IsUsable:    req.IsUsable,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, toStatusResponse(status))
}

// Get handles GET /uom-status/{id}.
func (h *UOMStatusHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	status, err := h.getHandler.Handle(c.Request.Context(), statusapp.GetQuery{ID: id})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, toStatusResponse(status))
}

// List handles GET /uom-status.
func (h *UOMStatusHandler) List(c *gin.Context) {
	h.list(c, statusapp.ListQuery{})
}

// Search handles GET /uom-status/search?name=.
func (h *UOMStatusHandler) Search(c *gin.Context) {
	name, err := requiredQuery(c, "name")
	if err != nil {
		fail(c, err)
		return
	}
	h.list(c, statusapp.ListQuery{Name: &name})
}

// FilterByUsability handles GET /uom-status/filter?isUsable=.
func (h *UOMStatusHandler) FilterByUsability(c *gin.Context) {
	isUsable, err := requiredBoolQuery(c, "isUsable")
	if err != nil {
		fail(c, err)
		return
	}
	h.list(c, statusapp.ListQuery{IsUsable: &isUsable})
}

func (h *UOMStatusHandler) list(c *gin.Context, query statusapp.ListQuery) {
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

	c.JSON(http.StatusOK, response.NewPage(result, toStatusResponse))
}

// CheckName handles GET /uom-status/check-name?name=.
func (h *UOMStatusHandler) CheckName(c *gin.Context) {
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

// Update handles PUT /uom-status/{id}.
func (h *UOMStatusHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	var req UpdateStatusRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	status, err := h.updateHandler.Handle(c.Request.Context(), statusapp.UpdateCommand{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, toStatusResponse(status))
}

// ChangeUsability handles PATCH /uom-status/{id}/status?isUsable=.
func (h *UOMStatusHandler) ChangeUsability(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	isUsable, err := requiredBoolQuery(c, "isUsable")
	if err != nil {
		fail(c, err)
		return
	}

	err = h.changeUsabilityHandler.Handle(c.Request.Context(), statusapp.ChangeUsabilityCommand{ID: id, IsUsable: isUsable})
	if err != nil {
		fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete handles DELETE /uom-status/{id}.
func (h *UOMStatusHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	if err := h.deleteHandler.Handle(c.Request.Context(), statusapp.DeleteCommand{ID: id}); err != nil {
		fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Export handles GET /uom-status/export.
func (h *UOMStatusHandler) Export(c *gin.Context) {
	result, err := h.exportHandler.Handle(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.FileName+`"`)
	c.Data(http.StatusOK, xlsxContentType, result.FileContent)
}
