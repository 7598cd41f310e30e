package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "passport-extractor/internal/app"
	"passport-extractor/internal/bootstrap"
	"passport-extractor/internal/intake"
	"passport-extractor/internal/transport/http/handler"
	"passport-extractor/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(
		app.Config.App.Name,
		app.Config.App.Env,
		app.Config.Extend.APIToken != "",
		app.StartedAt,
	)
	router.StaticFile("/", "web/index.html")
	router.GET("/healthz", healthHandler.Check)

	extractionService := appsvc.NewExtractionService(app.ExtendClient, app.History, app.ExtendDefaults(), app.Logger)
	intakeOpts := intake.Options{
		MaxSizeBytes:      app.Config.MaxUploadBytes(),
		AllowedExtensions: app.Config.Upload.AllowedExtensions,
	}
	extractionHandler := handler.NewExtractionHandler(extractionService, intakeOpts)
	settingsHandler := handler.NewSettingsHandler(extractionService)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.Session(
		app.Config.Session.Secret,
		time.Duration(app.Config.Session.ExpireMinute)*time.Minute,
	))
	v1.POST("/extractions", extractionHandler.Create)
	v1.GET("/extractions", extractionHandler.List)
	v1.GET("/extractions/:id", extractionHandler.Get)
	v1.GET("/extractions/:id/export", extractionHandler.Export)
	v1.DELETE("/extractions", extractionHandler.Clear)
	v1.GET("/settings", settingsHandler.Show)

	return router
}
