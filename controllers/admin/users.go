package admin

import (
	"github.com/gin-gonic/gin"

	"speclab-backend/controllers/params"
	"speclab-backend/middleware"
	"speclab-backend/response"
	"speclab-backend/services"
)

func (h *Handler) ListUsers(c *gin.Context) {
	p, err := params.BindPaging(c)
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	page, err := h.users.AdminList(c.Request.Context(), p.Search, p.Page, p.Limit)
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	response.RespondOK(c, page)
}

func (h *Handler) GetUser(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	u, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	response.RespondOK(c, u)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	var in services.AdminUserUpdate
	if err := params.BindJSON(c, &in); err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	u, err := h.users.AdminUpdate(c.Request.Context(), id, in)
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	response.RespondOK(c, u)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	if err := h.users.Delete(c.Request.Context(), middleware.CurrentUser(c).ID, id); err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	response.RespondMessage(c, "사용자가 삭제되었습니다")
}
