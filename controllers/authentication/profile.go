package authentication

import (
	"github.com/gin-gonic/gin"

	"speclab-backend/controllers/params"
	"speclab-backend/middleware"
	"speclab-backend/response"
	"speclab-backend/services"
)

// GetProfile: GET /users/me
func (h *AuthHandler) GetProfile(c *gin.Context) {
	response.RespondOK(c, middleware.CurrentUser(c))
}

// UpdateProfile: PUT /users/me
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var in services.ProfileUpdate
	if err := params.BindJSON(c, &in); err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	u, err := h.users.UpdateProfile(c.Request.Context(), middleware.CurrentUser(c).ID, in)
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	response.RespondOK(c, u)
}
