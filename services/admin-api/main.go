package main

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/apihelpers"
	mw "github.com/inbal0012/wild-ginger-bot-sub001/pkg/apihelpers/middlewares"
	"github.com/inbal0012/wild-ginger-bot-sub001/services/admin-api/apihandlers"
)

func main() {

	// Start webserver
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     conf.GinConfig.AllowOrigins,
		AllowMethods:     []string{"POST", "GET", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Content-Length", "Api-Key"},
		ExposeHeaders:    []string{"Authorization", "Content-Type", "Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Add handlers
	router.GET("/", apihandlers.HealthCheckHandle)
	v1Root := router.Group("/v1")
	v1Root.Use(mw.HasValidAPIKey(conf.APIKeys))

	v1APIHandlers := apihandlers.NewHTTPHandler(
		conf.AdminJWTSignKey,
		conf.adminJWTExpiresInDur,
		registrationService,
		eventService,
		formEngine,
		conf.AdminUsers,
	)
	v1APIHandlers.AddAuthAPI(v1Root)
	v1APIHandlers.AddRegistrationsAPI(v1Root)
	v1APIHandlers.AddEventsAPI(v1Root)
	v1APIHandlers.AddFormsAPI(v1Root)

	if conf.GinConfig.DebugMode {
		apihelpers.WriteRoutesToFile(router, "admin-api-routes.txt")
	}

	// Start the server
	slog.Info("Starting Admin API", slog.String("port", conf.GinConfig.Port))
	err := router.Run(":" + conf.GinConfig.Port)
	if err != nil {
		slog.Error("Exited Admin API", slog.String("error", err.Error()))
	}
}
