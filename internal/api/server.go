package api

import (
	"context"

	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/analysis"
	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/config"
	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/dsn"
	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/handler"
	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/middleware"
	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/pricing"
	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/redis"
	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/repository"
	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/storage"
	"github.com/dytfght/m365-license-optimizer-sub001/internal/pkg"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// StartServer assembles the service and blocks serving HTTP.
func StartServer() {
	logrus.Info("Starting server")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("Cannot read config: %v", err)
	}

	repo, err := repository.New(dsn.FromEnv())
	if err != nil {
		logrus.Fatalf("Cannot initialize repository: %v", err)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logrus.Fatalf("Cannot connect to redis: %v", err)
	}

	// The archive store is optional: without it completed analyses are
	// simply not exported.
	minioClient, err := storage.NewMinIOClient(cfg.Minio.Endpoint, cfg.Minio.AccessKey,
		cfg.Minio.SecretKey, cfg.Minio.Bucket, cfg.Minio.UseSSL)
	if err != nil {
		logrus.Warnf("MinIO unavailable, analysis exports disabled: %v", err)
		minioClient = nil
	}

	resolver := pricing.NewCatalogResolver(repo)
	orchestrator := analysis.NewOrchestrator(repo, repo, repo, resolver, repo)

	authHandler := handler.NewAuthHandler(repo, redisClient, cfg)
	apiHandler := handler.NewAPIHandler(repo, redisClient, minioClient, cfg, orchestrator, authHandler)
	authMiddleware := middleware.NewAuthMiddleware(redisClient, cfg)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	apiHandler.RegisterRoutes(r, authMiddleware)

	app := pkg.NewApp(cfg, r, apiHandler)
	app.RunApp()
}
