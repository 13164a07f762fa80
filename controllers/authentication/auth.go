package authentication

import (
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"

	"speclab-backend/apierr"
	"speclab-backend/controllers/params"
	"speclab-backend/logger"
	"speclab-backend/middleware"
	"speclab-backend/models/users"
	"speclab-backend/response"
	"speclab-backend/services"
)

type AuthHandler struct {
	auth        *services.AuthService
	users       *services.UserService
	store       sessions.Store
	sessionName string
	log         *logger.Logger
}

func NewAuthHandler(auth *services.AuthService, userSvc *services.UserService, store sessions.Store, sessionName string, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		auth:        auth,
		users:       userSvc,
		store:       store,
		sessionName: sessionName,
		log:         log.With("handler", "AuthHandler"),
	}
}

type loginJSON struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	services.Token
	User *users.User `json:"user"`
}

// Register: POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var in services.RegisterInput
	if err := params.BindJSON(c, &in); err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	u, err := h.auth.Register(c.Request.Context(), in)
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	response.RespondCreated(c, u)
}

// Login: POST /auth/login, OAuth2 password form with username/password fields.
func (h *AuthHandler) Login(c *gin.Context) {
	email := c.PostForm("username")
	password := c.PostForm("password")
	if email == "" || password == "" {
		response.RespondError(c, h.log, apierr.BadRequest("username과 password는 필수입니다"))
		return
	}
	h.login(c, email, password)
}

// LoginJSON: POST /auth/login/json
func (h *AuthHandler) LoginJSON(c *gin.Context) {
	var in loginJSON
	if err := params.BindJSON(c, &in); err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	h.login(c, in.Email, in.Password)
}

func (h *AuthHandler) login(c *gin.Context, email, password string) {
	u, tok, err := h.auth.Login(c.Request.Context(), email, password)
	if err != nil {
		response.RespondError(c, h.log, err)
		return
	}
	if h.store != nil {
		sess, _ := h.store.Get(c.Request, h.sessionName)
		sess.Values[middleware.SessionUserKey] = u.ID
		if err := sess.Save(c.Request, c.Writer); err != nil {
			h.log.Warn("session save failed", "user_id", u.ID, "error", err)
		}
	}
	response.RespondOK(c, tokenResponse{Token: tok, User: u})
}

// Me: GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	response.RespondOK(c, middleware.CurrentUser(c))
}

// TestToken: POST /auth/test-token, echoes the user the token resolves to.
func (h *AuthHandler) TestToken(c *gin.Context) {
	response.RespondOK(c, middleware.CurrentUser(c))
}

// Logout: POST /auth/logout. Bearer tokens are stateless; only the session cookie is cleared.
func (h *AuthHandler) Logout(c *gin.Context) {
	if h.store != nil {
		sess, _ := h.store.Get(c.Request, h.sessionName)
		delete(sess.Values, middleware.SessionUserKey)
		sess.Options.MaxAge = -1
		if err := sess.Save(c.Request, c.Writer); err != nil {
			h.log.Warn("session clear failed", "error", err)
		}
	}
	response.RespondMessage(c, "로그아웃되었습니다")
}
