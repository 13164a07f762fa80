package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"gorm.io/gorm"

	"speclab-backend/config"
	"speclab-backend/controllers/admin"
	"speclab-backend/controllers/authentication"
	"speclab-backend/controllers/careers"
	"speclab-backend/controllers/certifications"
	"speclab-backend/controllers/health"
	"speclab-backend/controllers/httpCors"
	"speclab-backend/controllers/progress"
	"speclab-backend/controllers/recommendations"
	"speclab-backend/logger"
	"speclab-backend/metrics"
	"speclab-backend/middleware"
	"speclab-backend/repository"
	"speclab-backend/services"
	"speclab-backend/services/techtree"
)

const (
	AppName    = "SpecLab API"
	AppVersion = "1.0.0"
)

// Services bundles everything the handlers call into.
type Services struct {
	Auth     *services.AuthService
	Users    *services.UserService
	Catalog  *services.CatalogService
	Careers  *services.CareerService
	Progress *services.ProgressService
	TechTree *techtree.Service
}

func NewServices(cfg config.Config, db *gorm.DB, m *metrics.Metrics, log *logger.Logger) *Services {
	repos := repository.New(db, log)
	return &Services{
		Auth:     services.NewAuthService(repos.Users, cfg.SigningKey(), cfg.TokenTTL, log),
		Users:    services.NewUserService(db, repos, log),
		Catalog:  services.NewCatalogService(db, repos, cfg.RejectCycles(), log),
		Careers:  services.NewCareerService(db, repos, log),
		Progress: services.NewProgressService(db, repos, m, log),
		TechTree: techtree.NewService(repos.Certifications, m, log),
	}
}

// NewRouter builds the gin engine with every route mounted under cfg.APIPrefix,
// wrapped in the CORS handler.
func NewRouter(cfg config.Config, db *gorm.DB, store sessions.Store, m *metrics.Metrics, log *logger.Logger) http.Handler {
	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	svc := NewServices(cfg, db, m, log)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Metrics(m), middleware.RequestLogger(log))

	healthHandler := health.NewHandler(db, AppName, AppVersion, log)
	r.GET("/", healthHandler.Root)
	r.GET("/health", healthHandler.Health)
	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	authMW := middleware.NewAuthMiddleware(svc.Auth, store, cfg.SessionName, log)
	authHandler := authentication.NewAuthHandler(svc.Auth, svc.Users, store, cfg.SessionName, log)
	certHandler := certifications.NewHandler(svc.TechTree, svc.Catalog, log)
	careerHandler := careers.NewHandler(svc.Careers, log)
	progressHandler := progress.NewHandler(svc.Progress, log)
	recHandler := recommendations.NewHandler(svc.Progress, log)
	adminHandler := admin.NewHandler(svc.Users, svc.Catalog, svc.Careers, log)

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/login/json", authHandler.LoginJSON)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", authMW.RequireUser(), authHandler.Me)
	auth.POST("/test-token", authMW.RequireUser(), authHandler.TestToken)

	certs := api.Group("/certifications")
	certs.GET("/", certHandler.List)
	certs.GET("/graph", certHandler.Graph)
	certs.GET("/categories", certHandler.Categories)
	certs.GET("/:id", certHandler.Get)
	certs.GET("/:id/schedules", certHandler.Schedules)

	careerGroup := api.Group("/careers")
	careerGroup.GET("/", careerHandler.List)
	careerGroup.GET("/jobs", careerHandler.Jobs)
	careerGroup.GET("/startups", careerHandler.Startups)
	careerGroup.GET("/:id", careerHandler.Get)

	me := api.Group("/users/me", authMW.RequireUser())
	me.GET("", authHandler.GetProfile)
	me.PUT("", authHandler.UpdateProfile)
	me.PUT("/password", authHandler.ChangePassword)
	me.GET("/certifications", progressHandler.Certifications)
	me.POST("/certifications", progressHandler.Acquire)
	me.DELETE("/certifications/:cert_id", progressHandler.RemoveCertification)
	me.GET("/goals", progressHandler.Goals)
	me.POST("/goals", progressHandler.AddGoal)
	me.PUT("/goals/:goal_id", progressHandler.UpdateGoal)
	me.DELETE("/goals/:goal_id", progressHandler.DeleteGoal)
	me.GET("/recommendations", recHandler.Next)

	adm := api.Group("/admin", authMW.RequireUser(), authMW.RequireSuperuser())
	adm.GET("/stats", adminHandler.Stats)
	adm.GET("/users", adminHandler.ListUsers)
	adm.GET("/users/:id", adminHandler.GetUser)
	adm.PUT("/users/:id", adminHandler.UpdateUser)
	adm.DELETE("/users/:id", adminHandler.DeleteUser)
	adm.GET("/certifications", adminHandler.ListCertifications)
	adm.POST("/certifications", adminHandler.CreateCertification)
	adm.PUT("/certifications/:id", adminHandler.UpdateCertification)
	adm.DELETE("/certifications/:id", adminHandler.DeleteCertification)
	adm.POST("/certifications/:id/prerequisites", adminHandler.AddPrerequisite)
	adm.DELETE("/certifications/:id/prerequisites/:prereq_id", adminHandler.RemovePrerequisite)
	adm.POST("/certifications/:id/schedules", adminHandler.CreateSchedule)
	adm.DELETE("/certifications/:id/schedules/:schedule_id", adminHandler.DeleteSchedule)
	adm.GET("/careers", adminHandler.ListCareers)
	adm.POST("/careers", adminHandler.CreateCareer)
	adm.PUT("/careers/:id", adminHandler.UpdateCareer)
	adm.DELETE("/careers/:id", adminHandler.DeleteCareer)
	adm.POST("/careers/:id/requirements", adminHandler.AddRequirement)
	adm.DELETE("/careers/:id/requirements/:requirement_id", adminHandler.RemoveRequirement)

	return httpCors.CorsSettings(cfg.AllowedOrigins, cfg.IsDev() && cfg.Env != "test").Handler(r)
}
