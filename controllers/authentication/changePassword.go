package authentication

import (
	"github.com/gin-gonic/gin"

	"speclab-backend/controllers/params"
	"speclab-backend/middleware"
	"speclab-backend/response"
)

type passwordChange struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword: PUT /users/me/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var in passwordChange
	if err := params.BindJSON(c, &in); err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	u := middleware.CurrentUser(c)
	if err := h.auth.ChangePassword(c.Request.Context(), u.ID, in.CurrentPassword, in.NewPassword); err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	response.RespondMessage(c, "비밀번호가 변경되었습니다")
}
