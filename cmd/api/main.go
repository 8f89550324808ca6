package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clinicsched/medical-scheduler/internal/config"
	dbpkg "github.com/clinicsched/medical-scheduler/internal/db"
	"github.com/clinicsched/medical-scheduler/internal/lock"
	"github.com/clinicsched/medical-scheduler/internal/middleware"
	"github.com/clinicsched/medical-scheduler/internal/routes"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	locker := lock.NewNoopLocker()
	if cfg.RedisAddr != "" {
		client, err := lock.NewRedisClient(cfg.RedisAddr)
		if err != nil {
			log.Fatalf("failed to connect redis: %v", err)
		}
		locker = lock.NewRedisSlotLocker(client, 5*time.Second)
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, locker, cfg)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
