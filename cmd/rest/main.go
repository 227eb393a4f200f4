package main

import (
	"context"
	"log"

	"ai-companion-be/internal/bootstrap"
	"ai-companion-be/internal/config"
	"ai-companion-be/internal/server"
	"ai-companion-be/internal/tracer"
	"ai-companion-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start the audit log consumer
	if err := container.AuditService.Start(context.Background()); err != nil {
		log.Printf("Audit consumer failed to start: %v", err)
	}

	// 5. Initialize and run the server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
