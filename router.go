package main

import (
	"context"
	"log"
	"strings"

	"github.com/Yulian302/findit-gateway/browse"
	"github.com/Yulian302/findit-gateway/common/health"
	"github.com/Yulian302/findit-gateway/common/ratelimit"
	"github.com/Yulian302/findit-gateway/common/responses"
	"github.com/Yulian302/findit-gateway/common/tracing"
	"github.com/Yulian302/findit-gateway/devices"
	"github.com/Yulian302/findit-gateway/logging"
	"github.com/Yulian302/findit-gateway/metrics"
	"github.com/Yulian302/findit-gateway/middleware"
	"github.com/Yulian302/findit-gateway/objects"
	"github.com/Yulian302/findit-gateway/routers"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func BuildRouter(app *App) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	applyCors(r, app)
	applyLogging(r, app)
	applyMetrics(r, app)
	applyRateLimiting(r, app)
	applyTracing(r, app)
	applySwagger(r, app)

	registerRoutes(r, app, app.Services)

	return r
}

func applyCors(r *gin.Engine, app *App) {
	origins := strings.Split(app.Config.CorsConfig.Origins, ",")
	r.Use(cors.New(
		cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", logging.RequestIDHeader},
			ExposeHeaders:    []string{logging.RequestIDHeader},
			AllowCredentials: true,
		},
	))
}

func applyLogging(r *gin.Engine, app *App) {
	r.Use(logging.LoggerMiddleware(app.Logger))
}

func applyMetrics(r *gin.Engine, app *App) {
	r.Use(metrics.Middleware())
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
}

func applyRateLimiting(r *gin.Engine, app *App) {
	rateLimiter := ratelimit.NewRedisRateLimiter(app.Redis)
	r.Use(middleware.RateLimiterMiddleware(rateLimiter, app.Config.RateLimit.Limit, app.Config.RateLimit.Window))
}

func applyTracing(r *gin.Engine, app *App) {
	if !app.Config.Tracing {
		return
	}

	tp, err := tracing.StartTracing(context.Background(), "findit-gateway")
	if err != nil {
		log.Fatalf("failed to start tracing: %v", err)
	}

	app.TracerProvider = tp
	r.Use(otelgin.Middleware("gateway"))
}

func applySwagger(r *gin.Engine, app *App) {
	if app.Config.IsProd() {
		return
	}
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func registerRoutes(r *gin.Engine, app *App, s *Services) {
	r.GET("/test", func(ctx *gin.Context) {
		responses.JSONSuccess(ctx, "ok")
	})

	health.RegisterHealthRoutes(s.Health, r)

	jwtSecret := app.Config.JWTConfig.SecretKey

	objectsHandler := objects.NewObjectsHandler(s.Listing, s.Registration, app.Config.MaxUploadSize)

	routers.RegisterObjectsRoutes(objectsHandler, jwtSecret, r)

	routers.RegisterAdminRoutes(objectsHandler, jwtSecret, app.Config.AdminConfig.UserIDs, r)

	routers.RegisterBrowseRoutes(
		browse.NewBrowseHandler(s.Browse),
		jwtSecret,
		r,
	)

	routers.RegisterDeviceRoutes(
		devices.NewDeviceHandler(s.Devices),
		jwtSecret,
		r,
	)
}
