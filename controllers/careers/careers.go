package careers

import (
	"github.com/gin-gonic/gin"

	"speclab-backend/controllers/params"
	"speclab-backend/logger"
	"speclab-backend/models/career"
	"speclab-backend/repository"
	"speclab-backend/response"
	"speclab-backend/services"
)

type Handler struct {
	careers *services.CareerService
	log     *logger.Logger
}

func NewHandler(careers *services.CareerService, log *logger.Logger) *Handler {
	return &Handler{careers: careers, log: log.With("handler", "CareerHandler")}
}

// List: GET /careers/?type=&category=&search=
func (h *Handler) List(c *gin.Context) {
	h.list(c, c.Query("type"))
}

// Jobs: GET /careers/jobs
func (h *Handler) Jobs(c *gin.Context) {
	h.list(c, career.TypeJob)
}

// Startups: GET /careers/startups
func (h *Handler) Startups(c *gin.Context) {
	h.list(c, career.TypeStartup)
}

func (h *Handler) list(c *gin.Context, typ string) {
	w, err := params.BindWindow(c)
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	out, err := h.careers.List(c.Request.Context(), repository.CareerFilter{
		Type:     typ,
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Offset:   w.Skip,
		Limit:    w.Limit,
	})
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	response.RespondOK(c, out)
}

// Get: GET /careers/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	out, err := h.careers.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	response.RespondOK(c, out)
}
