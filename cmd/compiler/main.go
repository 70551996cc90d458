package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"scene-compiler/internal/common/config"
	"scene-compiler/internal/common/middleware"
	"scene-compiler/internal/compiler/handlers"
	"scene-compiler/internal/compiler/mapper"
	"scene-compiler/internal/compiler/repository"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Scene Compiler Service
// ============================================================

func main() {
	cfg := config.Load()

	compiler, err := mapper.New(cfg.Compiler)
	if err != nil {
		log.Fatalf("compiler options: %v", err)
	}

	// Empty SCENES_DB_PATH runs without persistence.
	var (
		store handlers.SceneStore
		db    *sql.DB
	)
	if cfg.DBPath != "" {
		db, err = repository.OpenSQLite(cfg.DBPath)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		defer db.Close()

		repo := repository.New(db)
		if err := repo.Init(context.Background(), cfg.MigrationsPath); err != nil {
			log.Fatalf("init db: %v", err)
		}
		store = repo
	}

	var pinger handlers.Pinger
	if db != nil {
		pinger = db
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		BodyLimit:    cfg.BodyLimitMB * 1024 * 1024,
		AppName:      "Scene Compiler",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger())
	app.Use(middleware.CORS(cfg.AllowOrigins))

	// ============================================================
	// Routes
	// ============================================================

	handlers.Register(app,
		handlers.NewCompileHandler(compiler, store, cfg.Canvas),
		handlers.NewHealthHandler(pinger),
	)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Scene Compiler on %s (env: %s, canvas: %gx%g)",
		addr, cfg.Environment, cfg.Canvas.Width, cfg.Canvas.Height)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
