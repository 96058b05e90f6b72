package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"clubapi/config"
	"clubapi/db"
	"clubapi/middlewares"
	"clubapi/models"
	"clubapi/routes"
	"clubapi/utils"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load failed", "error", err)
		os.Exit(1)
	}

	// Postgres
	sqldb, err := db.Open(cfg.Database.DSN)
	if err != nil {
		logger.Error("postgres connect failed", "error", err)
		os.Exit(1)
	}
	defer sqldb.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.RunMigrations(ctx, sqldb); err != nil {
		logger.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	// Redis (response cache + quota)
	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	inv := utils.NewCacheInvalidator(rdb)

	server := gin.New()
	server.Use(gin.Recovery())
	server.Use(middlewares.RequestID())
	server.Use(middlewares.RequestLogger(logger))
	server.Use(middlewares.Metrics())
	server.Use(cors.New(cors.Config{
		AllowOrigins: []string{cfg.Server.CORSOrigin},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", middlewares.RequestIDHeader},
	}))

	globalLimiter := middlewares.NewRateLimiter(middlewares.LimiterConfig{
		RPS:     cfg.Limits.RPS,
		Burst:   cfg.Limits.Burst,
		IdleTTL: cfg.Limits.IdleTTL,
	})
	server.Use(globalLimiter.Middleware(func(c *gin.Context) string {
		return "ip:" + c.ClientIP()
	}))

	// Daily quota on mutations only; reads stay cheap via the cache.
	server.Use(middlewares.Quota(rdb, middlewares.QuotaRule{
		Limit:  cfg.Limits.DailyQuota,
		Window: 24 * time.Hour,
		KeyFn: func(c *gin.Context) string {
			if c.Request.Method == http.MethodGet {
				return ""
			}
			return fmt.Sprintf("quota:ip:%s:day", c.ClientIP())
		},
	}))

	server.Use(middlewares.ResponseCache(rdb, cfg.Redis.CacheTTL))

	server.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes.RegisterRoutes(server,
		models.NewSQLEventTypeRepository(sqldb),
		models.NewSQLEventRepository(sqldb),
		models.NewSQLMemberRepository(sqldb),
		models.NewSQLRegistrationRepository(sqldb),
		inv)

	logger.Info("listening", "port", cfg.Server.Port)
	if err := server.Run(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
