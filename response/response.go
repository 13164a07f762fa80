package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"speclab-backend/apierr"
	"speclab-backend/logger"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

type MessageEnvelope struct {
	Message string `json:"message"`
}

// RespondError writes err as an error envelope. Errors that are not *apierr.Error
// are logged and reported as a generic 500.
func RespondError(c *gin.Context, log *logger.Logger, err error) {
	e, ok := apierr.As(err)
	if !ok {
		e = apierr.Internal(err)
	}
	if e.Status >= http.StatusInternalServerError {
		if log != nil {
			log.Error("request failed", "path", c.FullPath(), "error", err)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorEnvelope{
			Error: APIError{Message: "internal server error", Code: apierr.CodeInternal},
		})
		return
	}
	c.AbortWithStatusJSON(e.Status, ErrorEnvelope{
		Error: APIError{Message: e.Error(), Code: e.Code},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

func RespondMessage(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, MessageEnvelope{Message: msg})
}
