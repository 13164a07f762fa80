package progress

import (
	"github.com/gin-gonic/gin"

	"speclab-backend/controllers/params"
	"speclab-backend/logger"
	"speclab-backend/middleware"
	"speclab-backend/response"
	"speclab-backend/services"
)

// Handler serves the caller's own acquired certifications and goals under /users/me.
type Handler struct {
	progress *services.ProgressService
	log      *logger.Logger
}

func NewHandler(progress *services.ProgressService, log *logger.Logger) *Handler {
	return &Handler{progress: progress, log: log.With("handler", "ProgressHandler")}
}

func (h *Handler) Certifications(c *gin.Context) {
	out, err := h.progress.Certifications(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	response.RespondOK(c, out)
}

func (h *Handler) Acquire(c *gin.Context) {
	var in services.AcquireInput
	if err := params.BindJSON(c, &in); err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	out, err := h.progress.Acquire(c.Request.Context(), middleware.CurrentUser(c).ID, in)
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	response.RespondCreated(c, out)
}

// RemoveCertification: DELETE /users/me/certifications/:cert_id
func (h *Handler) RemoveCertification(c *gin.Context) {
	certID, err := params.ID(c, "cert_id")
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	if err := h.progress.RemoveCertification(c.Request.Context(), middleware.CurrentUser(c).ID, certID); err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	response.RespondMessage(c, "취득 자격증이 삭제되었습니다")
}

func (h *Handler) Goals(c *gin.Context) {
	out, err := h.progress.Goals(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	response.RespondOK(c, out)
}

func (h *Handler) AddGoal(c *gin.Context) {
	var in services.GoalInput
	if err := params.BindJSON(c, &in); err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	out, err := h.progress.AddGoal(c.Request.Context(), middleware.CurrentUser(c).ID, in)
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	response.RespondCreated(c, out)
}

func (h *Handler) UpdateGoal(c *gin.Context) {
	goalID, err := params.ID(c, "goal_id")
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	var in services.GoalUpdate
	if err := params.BindJSON(c, &in); err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	out, err := h.progress.UpdateGoal(c.Request.Context(), middleware.CurrentUser(c).ID, goalID, in)
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	response.RespondOK(c, out)
}

func (h *Handler) DeleteGoal(c *gin.Context) {
	goalID, err := params.ID(c, "goal_id")
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	if err := h.progress.DeleteGoal(c.Request.Context(), middleware.CurrentUser(c).ID, goalID); err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	response.RespondMessage(c, "목표가 삭제되었습니다")
}
