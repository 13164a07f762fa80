package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"

	"speclab-backend/apierr"
	"speclab-backend/logger"
	"speclab-backend/models/users"
	"speclab-backend/response"
	"speclab-backend/services"
)

const (
	ctxUser        = "user"
	SessionUserKey = "user_id"
)

type AuthMiddleware struct {
	auth        *services.AuthService
	store       sessions.Store
	sessionName string
	log         *logger.Logger
}

func NewAuthMiddleware(auth *services.AuthService, store sessions.Store, sessionName string, log *logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		auth:        auth,
		store:       store,
		sessionName: sessionName,
		log:         log.With("Middleware", "AuthMiddleware"),
	}
}

// RequireUser resolves the caller from a bearer token, falling back to the
// session cookie set at login.
func (am *AuthMiddleware) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := am.resolve(c)
		if err != nil {
			response.RespondError(c, am.log, err)
			return
		}
		c.Set(ctxUser, u)
		c.Next()
	}
}

// RequireSuperuser must run after RequireUser.
func (am *AuthMiddleware) RequireSuperuser() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil {
			response.RespondError(c, am.log, apierr.Unauthorized("인증이 필요합니다"))
			return
		}
		if !u.IsSuperuser {
			response.RespondError(c, am.log, apierr.Forbidden("관리자 권한이 필요합니다"))
			return
		}
		c.Next()
	}
}

func (am *AuthMiddleware) resolve(c *gin.Context) (*users.User, error) {
	ctx := c.Request.Context()
	if token := bearerToken(c); token != "" {
		return am.auth.UserFromToken(ctx, token)
	}
	if am.store != nil {
		sess, err := am.store.Get(c.Request, am.sessionName)
		if err == nil {
			if id, ok := sess.Values[SessionUserKey].(uint); ok && id != 0 {
				return am.auth.ActiveUser(ctx, id)
			}
		}
	}
	return nil, apierr.Unauthorized("인증이 필요합니다")
}

func CurrentUser(c *gin.Context) *users.User {
	v, ok := c.Get(ctxUser)
	if !ok {
		return nil
	}
	u, _ := v.(*users.User)
	return u
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
