package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/robfig/cron/v3"

	"github.com/bookwell-app/booking-api/internal/config"
	dbpkg "github.com/bookwell-app/booking-api/internal/db"
	"github.com/bookwell-app/booking-api/internal/dedup"
	"github.com/bookwell-app/booking-api/internal/middleware"
	"github.com/bookwell-app/booking-api/internal/routes"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	cache := newDedupCache(cfg)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, cache)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

// newDedupCache picks the webhook dedup backend. Redis entries expire on
// their own; the in-memory map needs a periodic sweep.
func newDedupCache(cfg *config.Config) dedup.Cache {
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		log.Println("Webhook dedup cache: redis")
		return dedup.NewRedisCache(redis.NewClient(opts), cfg.DedupTTL)
	}

	mem := dedup.NewMemoryCache(cfg.DedupTTL)

	c := cron.New()
	if _, err := c.AddFunc("@every 1m", func() {
		if removed := mem.Sweep(); removed > 0 {
			log.Printf("dedup sweep: evicted %d expired sessions", removed)
		}
	}); err != nil {
		log.Fatalf("failed to schedule dedup sweep: %v", err)
	}
	c.Start()

	log.Println("Webhook dedup cache: in-memory")
	return mem
}
