package admin

import (
	"github.com/gin-gonic/gin"

	"speclab-backend/controllers/params"
	"speclab-backend/response"
	"speclab-backend/services"
)

type prerequisiteInput struct {
	PrerequisiteID uint `json:"prerequisite_id" binding:"required"`
}

func (h *Handler) ListCertifications(c *gin.Context) {
	p, err := params.BindPaging(c)
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	page, err := h.catalog.AdminList(c.Request.Context(), p.Search, p.Page, p.Limit)
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	response.RespondOK(c, page)
}

func (h *Handler) CreateCertification(c *gin.Context) {
	var in services.CertificationInput
	if err := params.BindJSON(c, &in); err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	out, err := h.catalog.Create(c.Request.Context(), in)
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	response.RespondCreated(c, out)
}

func (h *Handler) UpdateCertification(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	var in services.CertificationInput
	if err := params.BindJSON(c, &in); err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	out, err := h.catalog.Update(c.Request.Context(), id, in)
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	response.RespondOK(c, out)
}

// DeleteCertification deactivates; the row and its edges stay.
func (h *Handler) DeleteCertification(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	if err := h.catalog.Deactivate(c.Request.Context(), id); err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	response.RespondMessage(c, "자격증이 비활성화되었습니다")
}

// AddPrerequisite: POST /admin/certifications/:id/prerequisites
func (h *Handler) AddPrerequisite(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	var in prerequisiteInput
	if err := params.BindJSON(c, &in); err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	if err := h.catalog.AddPrerequisite(c.Request.Context(), id, in.PrerequisiteID); err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	response.RespondCreated(c, gin.H{"certification_id": id, "prerequisite_id": in.PrerequisiteID})
}

// RemovePrerequisite: DELETE /admin/certifications/:id/prerequisites/:prereq_id
func (h *Handler) RemovePrerequisite(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	prereqID, err := params.ID(c, "prereq_id")
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	if err := h.catalog.RemovePrerequisite(c.Request.Context(), id, prereqID); err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	response.RespondMessage(c, "선수 자격증 관계가 삭제되었습니다")
}

func (h *Handler) CreateSchedule(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	var in services.ScheduleInput
	if err := params.BindJSON(c, &in); err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	out, err := h.catalog.CreateSchedule(c.Request.Context(), id, in)
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	response.RespondCreated(c, out)
}

func (h *Handler) DeleteSchedule(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	scheduleID, err := params.ID(c, "schedule_id")
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	if err := h.catalog.DeleteSchedule(c.Request.Context(), id, scheduleID); err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	response.RespondMessage(c, "시험 일정이 삭제되었습니다")
}
