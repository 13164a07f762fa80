package recommendations

import (
	"github.com/gin-gonic/gin"

	"speclab-backend/logger"
	"speclab-backend/middleware"
	"speclab-backend/response"
	"speclab-backend/services"
)

// Handler suggests the next certifications a user can sit for.
type Handler struct {
	progress *services.ProgressService
	log      *logger.Logger
}

func NewHandler(progress *services.ProgressService, log *logger.Logger) *Handler {
	return &Handler{progress: progress, log: log.With("handler", "RecommendationsHandler")}
}

// Next: GET /users/me/recommendations
func (h *Handler) Next(c *gin.Context) {
	out, err := h.progress.Recommendations(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	response.RespondOK(c, out)
}
