package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/minbase/account-service/config"
	"github.com/minbase/account-service/internal/container"
	"github.com/minbase/account-service/internal/interface/middleware"
	"github.com/minbase/account-service/internal/router"
	"github.com/minbase/account-service/pkg/helpers"
	"github.com/minbase/account-service/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	// Redis is the primary store; refuse to start without it.
	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() { _ = rdb.Close() }()
	pingCtx, cancelPing := context.WithTimeout(ctx, 5*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		cancelPing()
		log.Fatalf("failed to connect to redis: %v", err)
	}
	cancelPing()

	c := &container.Container{
		Cfg:    cfg,
		Logger: logger,
		Redis:  rdb,
		JWT:    helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL),
	}
	if cfg.JWTTTL <= 0 {
		logger.Warn("JWT_ACCESS_TTL=0: issuing non-expiring tokens")
	}

	// GCS is optional; profile image upload is disabled without a bucket.
	if cfg.GCSBucket != "" {
		gcsClient, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			log.Fatalf("failed to init GCS client: %v", err)
		}
		defer func() { _ = gcsClient.Close() }()
		c.GCS = gcsClient
	}

	// RabbitMQ is optional; without it no notification emails are queued.
	if cfg.MailSendEnabled && cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable, email jobs disabled")
		} else {
			defer pub.Close()
			c.RabbitPub = pub
		}
	}

	// Elasticsearch is optional; without it user search returns empty.
	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		esClient, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			logger.WithError(err).Warn("elasticsearch unavailable, user search disabled")
		} else {
			c.ES = esClient
		}
	}

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	if origins := cfg.CORSOrigins(); len(origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	if cfg.HTTPLogEnabled || cfg.Env == "development" {
		r.Use(gin.Logger())
	}

	r.GET("/healthz", func(gc *gin.Context) {
		hctx, cancel := context.WithTimeout(gc.Request.Context(), 2*time.Second)
		defer cancel()
		if err := rdb.Ping(hctx).Err(); err != nil {
			gc.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		gc.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	reg := router.NewRegistry(r)
	router.InitModules(reg, c)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}
