package main

import (
	"log"
	"os"

	v1 "go_listar/api/v1"
	"go_listar/internal/auth"
	"go_listar/internal/cache"
	"go_listar/internal/config"
	"go_listar/internal/db"
	"go_listar/internal/listing"
	"go_listar/internal/viewsync"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
		os.Exit(1)
	}
	log.Println("✓ Configuration loaded")

	// 2. Initialize MySQL
	if err := db.InitMySQL(cfg.MySQL.DSN); err != nil {
		log.Fatalf("Failed to initialize MySQL: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.Migrate {
		if err := db.Migrate(db.DB()); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
			os.Exit(1)
		}
	}

	// 3. Initialize Redis
	if err := cache.InitRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
		os.Exit(1)
	}
	defer cache.Close()

	// 4. Initialize JWT
	auth.InitJWT(cfg.JWT.Secret)

	// 5. View counter + flush worker. With the worker off nothing would
	// ever drain redis, so the counter stays nil and views are not buffered.
	var views listing.ViewCounter
	if cfg.ViewSync.Enabled {
		views = viewsync.NewCounter(cache.Client)
		worker := viewsync.NewWorker(&viewsync.Config{
			DB:          db.DB(),
			Redis:       cache.Client,
			Logger:      logrus.NewEntry(logrus.StandardLogger()),
			IntervalSec: cfg.ViewSync.IntervalSec,
		})
		worker.Start()
		defer worker.Stop()
	}

	svc := listing.NewService(db.DB(), views, cfg.PerPage)

	// 6. Initialize Gin router
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	v1.SetupRouter(r, db.DB(), cfg, svc)

	log.Printf("✓ Server starting on %s", cfg.HTTPAddr)

	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
