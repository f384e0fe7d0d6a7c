package main

import (
	"context"
	"log"

	"anoa.com/collegejournal/internal/bootstrap"
	"anoa.com/collegejournal/internal/config"
	"anoa.com/collegejournal/internal/entity"
	search "anoa.com/collegejournal/internal/modules/search/service"
	"anoa.com/collegejournal/internal/server"
	"anoa.com/collegejournal/pkg/database"
	"anoa.com/collegejournal/pkg/logger"
	"anoa.com/collegejournal/pkg/session"
	"anoa.com/collegejournal/pkg/storage"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := logger.Init(cfg.LogLevel, cfg.LogPath); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zap.L().Sync()

	db := database.Connect()
	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Category{},
		&entity.Tag{},
		&entity.Article{},
		&entity.Comment{},
		&entity.Channel{},
		&entity.Message{},
	); err != nil {
		zap.L().Fatal("failed to migrate database", zap.Error(err))
	}

	if err := bootstrap.Seed(context.Background(), db); err != nil {
		zap.L().Fatal("failed to seed database", zap.Error(err))
	}

	sessions := buildSessionStore(cfg)
	searchSvc := buildSearch(cfg)
	imageStore := buildImageStorage(cfg)

	srv := server.NewServer(cfg, db, sessions, searchSvc, imageStore)

	zap.L().Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
	if err := srv.Run(); err != nil {
		zap.L().Fatal("server stopped", zap.Error(err))
	}
}

// buildSessionStore prefers Redis so sessions survive restarts; without a
// configured Redis it degrades to the in-process store.
func buildSessionStore(cfg *config.Config) session.Store {
	if cfg.RedisURL == "" {
		zap.L().Warn("REDIS_URL not set, using in-memory sessions")
		return session.NewMemoryStore(cfg.SessionTTL)
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		zap.L().Warn("invalid REDIS_URL, using in-memory sessions", zap.Error(err))
		return session.NewMemoryStore(cfg.SessionTTL)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		zap.L().Warn("redis unreachable, using in-memory sessions", zap.Error(err))
		return session.NewMemoryStore(cfg.SessionTTL)
	}

	zap.L().Info("using redis session store")
	return session.NewRedisStore(client, cfg.SessionTTL)
}

func buildSearch(cfg *config.Config) search.SearchService {
	if cfg.MeiliSearchHost == "" {
		zap.L().Info("MEILISEARCH_HOST not set, search uses database fallback")
		return nil
	}

	client := meilisearch.New(cfg.MeiliSearchHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	zap.L().Info("using meilisearch", zap.String("host", cfg.MeiliSearchHost))
	return search.NewMeiliSearchService(client)
}

func buildImageStorage(cfg *config.Config) storage.ImageStorage {
	if cfg.CloudinaryURL == "" {
		zap.L().Info("CLOUDINARY_URL not set, uploads disabled")
		return nil
	}

	store, err := storage.NewCloudinaryStorage()
	if err != nil {
		zap.L().Warn("failed to init cloudinary, uploads disabled", zap.Error(err))
		return nil
	}
	return store
}
