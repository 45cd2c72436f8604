package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chamosbarber/booking-engine/internal/cache"
	"github.com/chamosbarber/booking-engine/internal/config"
	dbpkg "github.com/chamosbarber/booking-engine/internal/db"
	"github.com/chamosbarber/booking-engine/internal/jobs"
	"github.com/chamosbarber/booking-engine/internal/routes"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	availCache := cache.New(cfg)
	if availCache == nil {
		log.Println("availability cache disabled (no redis)")
	}

	sweeper := jobs.NewSweeper(db, availCache, cfg)
	sweeper.Start()
	defer sweeper.Stop()

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, availCache, cfg)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
