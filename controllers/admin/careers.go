package admin

import (
	"github.com/gin-gonic/gin"

	"speclab-backend/controllers/params"
	"speclab-backend/response"
	"speclab-backend/services"
)

func (h *Handler) ListCareers(c *gin.Context) {
	p, err := params.BindPaging(c)
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	page, err := h.careers.AdminList(c.Request.Context(), p.Search, p.Page, p.Limit)
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	response.RespondOK(c, page)
}

func (h *Handler) CreateCareer(c *gin.Context) {
	var in services.CareerInput
	if err := params.BindJSON(c, &in); err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	out, err := h.careers.Create(c.Request.Context(), in)
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	response.RespondCreated(c, out)
}

func (h *Handler) UpdateCareer(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	var in services.CareerInput
	if err := params.BindJSON(c, &in); err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	out, err := h.careers.Update(c.Request.Context(), id, in)
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	response.RespondOK(c, out)
}

func (h *Handler) DeleteCareer(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	if err := h.careers.Delete(c.Request.Context(), id); err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	response.RespondMessage(c, "진로 정보가 삭제되었습니다")
}

func (h *Handler) AddRequirement(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	var in services.RequirementInput
	if err := params.BindJSON(c, &in); err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	out, err := h.careers.AddRequirement(c.Request.Context(), id, in)
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	response.RespondCreated(c, out)
}

func (h *Handler) RemoveRequirement(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	reqID, err := params.ID(c, "requirement_id")
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	if err := h.careers.RemoveRequirement(c.Request.Context(), id, reqID); err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	response.RespondMessage(c, "요구사항이 삭제되었습니다")
}
