package main

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	dbadapter "taskboard/internal/adapter/db"
	httpadapter "taskboard/internal/adapter/http"
	"taskboard/internal/adapter/http/handlers"
	httpmiddleware "taskboard/internal/adapter/http/middleware"
	"taskboard/internal/app/service"
	"taskboard/internal/config"
	"taskboard/pkg/translator"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	translator.InitTranslator(translator.Config{
		TranslationFolder:  "pkg/translator/translation",
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	cfg := config.LoadConfig()
	db, err := dbadapter.ConnectDB(cfg)
	if err != nil {
		logger.Fatal("failed to connect to mysql", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close mysql connection", zap.Error(err))
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	metrics := httpmiddleware.NewMetrics(registry)

	r := gin.New()
	r.Use(gin.Recovery(), httpmiddleware.GinZapMiddleware(logger))
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Fatal("failed to set trusted proxies", zap.Error(err))
	}

	taskRepository := dbadapter.NewTaskRepository(db)
	taskService := service.NewTaskService(taskRepository)
	taskHandler := handlers.NewTaskHandler(taskService)
	healthHandler := handlers.NewHealthHandler(db)

	rateLimiter := httpmiddleware.NewRateLimiter(cfg.RateLimitRPM, cfg.RateLimitBurst)
	httpadapter.RegisterRoutes(r, healthHandler, taskHandler, httpadapter.Middlewares{
		APIKey:    httpmiddleware.APIKeyMiddleware(cfg.APIKey),
		RateLimit: rateLimiter.Middleware(),
		Metrics:   metrics.Middleware(),
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	port := cfg.AppPort
	logger.Info("starting http server", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		logger.Fatal("http server stopped", zap.Error(err))
	}
}
