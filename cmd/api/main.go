package main

import (
	"context"
	"log"

	"github.com/riaz-codebi/CPCG-Tech-Studio/config"
	"github.com/riaz-codebi/CPCG-Tech-Studio/internal/bootstrap"
	"github.com/riaz-codebi/CPCG-Tech-Studio/internal/identity"
	"github.com/riaz-codebi/CPCG-Tech-Studio/internal/provider"
	"github.com/riaz-codebi/CPCG-Tech-Studio/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	db, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: cfg.Database.DSN})
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	users := identity.NewRepo(db)
	if err := users.EnsureSchema(ctx); err != nil {
		log.Fatalf("schema: %v", err)
	}

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	sessions := session.NewStore(rdb, cfg.Session.TTL)

	ai := provider.NewClient(provider.Options{
		BaseURL:         cfg.Mistral.BaseURL,
		APIKey:          cfg.Mistral.APIKey,
		OCRModel:        cfg.Mistral.OCRModel,
		ChatModel:       cfg.Mistral.ChatModel,
		TranscribeModel: cfg.Mistral.VoxtralModel,
	})

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		Config:   cfg,
		DB:       db,
		Redis:    rdb,
		Users:    users,
		Sessions: sessions,
		Provider: ai,
	})

	log.Printf("%s %s listening on :%s", cfg.App.Name, cfg.App.Version, cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
