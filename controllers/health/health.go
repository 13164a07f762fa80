package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"speclab-backend/logger"
)

type Handler struct {
	db      *gorm.DB
	name    string
	version string
	log     *logger.Logger
}

func NewHandler(db *gorm.DB, name, version string, log *logger.Logger) *Handler {
	return &Handler{db: db, name: name, version: version, log: log.With("handler", "HealthHandler")}
}

// Root: GET /
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"name": h.name, "version": h.version, "docs": "/health"})
}

// Health: GET /health, reports the database as unhealthy when a ping fails.
func (h *Handler) Health(c *gin.Context) {
	status, dbState := "healthy", "ok"
	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		status, dbState = "unhealthy", "unreachable"
		h.log.Warn("database ping failed")
	}
	code := http.StatusOK
	if status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"status": status, "database": dbState})
}
