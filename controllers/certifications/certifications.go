package certifications

import (
	"github.com/gin-gonic/gin"

	"speclab-backend/controllers/params"
	"speclab-backend/logger"
	"speclab-backend/repository"
	"speclab-backend/response"
	"speclab-backend/services"
	"speclab-backend/services/techtree"
)

type Handler struct {
	tree    *techtree.Service
	catalog *services.CatalogService
	log     *logger.Logger
}

func NewHandler(tree *techtree.Service, catalog *services.CatalogService, log *logger.Logger) *Handler {
	return &Handler{tree: tree, catalog: catalog, log: log.With("handler", "CertificationHandler")}
}

// Graph: GET /certifications/graph?category=
func (h *Handler) Graph(c *gin.Context) {
	data, err := h.tree.Graph(c.Request.Context(), c.Query("category"))
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	response.RespondOK(c, data)
}

// Categories: GET /certifications/categories
func (h *Handler) Categories(c *gin.Context) {
	tree, err := h.tree.Categories(c.Request.Context())
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	response.RespondOK(c, tree)
}

// List: GET /certifications/
func (h *Handler) List(c *gin.Context) {
	w, err := params.BindWindow(c)
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	out, err := h.catalog.List(c.Request.Context(), repository.CertificationFilter{
		Category:    c.Query("category"),
		CategorySub: c.Query("category_sub"),
		Level:       c.Query("level"),
		Search:      c.Query("search"),
		Offset:      w.Skip,
		Limit:       w.Limit,
	})
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	response.RespondOK(c, out)
}

// Get: GET /certifications/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	d, err := h.catalog.Detail(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	response.RespondOK(c, d)
}

// Schedules: GET /certifications/:id/schedules
func (h *Handler) Schedules(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	out, err := h.catalog.Schedules(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	response.RespondOK(c, out)
}
