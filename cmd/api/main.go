package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/dermaline/studio-scheduler/internal/cache"
	"github.com/dermaline/studio-scheduler/internal/config"
	dbpkg "github.com/dermaline/studio-scheduler/internal/db"
	"github.com/dermaline/studio-scheduler/internal/middleware"
	"github.com/dermaline/studio-scheduler/internal/routes"
)

func main() {

	// .env es opcional; en producción las vars vienen del entorno.
	_ = godotenv.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg, log)

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	reports := cache.NewReportCache(rdb, log)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, reports, log)

	log.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
