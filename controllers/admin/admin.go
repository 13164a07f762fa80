package admin

import (
	"github.com/gin-gonic/gin"

	"speclab-backend/logger"
	"speclab-backend/response"
	"speclab-backend/services"
)

// Handler serves /admin. Every route sits behind RequireSuperuser.
type Handler struct {
	users   *services.UserService
	catalog *services.CatalogService
	careers *services.CareerService
	log     *logger.Logger
}

func NewHandler(userSvc *services.UserService, catalog *services.CatalogService, careers *services.CareerService, log *logger.Logger) *Handler {
	return &Handler{users: userSvc, catalog: catalog, careers: careers, log: log.With("handler", "AdminHandler")}
}

// Stats: GET /admin/stats
func (h *Handler) Stats(c *gin.Context) {
	st, err := h.users.Stats(c.Request.Context())
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	response.RespondOK(c, st)
}
