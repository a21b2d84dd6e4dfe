package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/google/uuid"
	"github.com/janus-auth/janus/adapters/events"
	"github.com/janus-auth/janus/adapters/hasher"
	"github.com/janus-auth/janus/adapters/members"
	"github.com/janus-auth/janus/adapters/store"
	"github.com/janus-auth/janus/adapters/tokenizer"
	"github.com/janus-auth/janus/config"
	"github.com/janus-auth/janus/core"
	"github.com/janus-auth/janus/ports"
	"github.com/janus-auth/janus/service"
	"github.com/janus-auth/janus/transport/http"
	"github.com/redis/go-redis/v9"
)

const (
	seedEmail    = "admin@test.com"
	seedPassword = "admin1234"
	seedNickname = "superadmin"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	repo, err := members.NewPostgresMembers(cfg.DatabaseDSN)
	if err != nil {
		log.Error("failed to open member repository", "error", err)
		os.Exit(1)
	}
	defer repo.Close()

	if err := repo.RunMigrations(ctx); err != nil {
		log.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Error("failed to parse redis URL", "error", err)
		os.Exit(1)
	}
	redisClient := redis.NewClient(opts)
	defer redisClient.Close()

	publisher, err := redisstream.NewPublisher(
		redisstream.PublisherConfig{Client: redisClient},
		watermill.NewSlogLogger(log),
	)
	if err != nil {
		log.Error("failed to create event publisher", "error", err)
		os.Exit(1)
	}

	passwordHasher := hasher.NewBcryptHasher()

	if err := seedAdmin(ctx, repo, passwordHasher, log); err != nil {
		log.Error("failed to seed admin account", "error", err)
		os.Exit(1)
	}

	authService := service.NewAuthService(
		tokenizer.NewJWTTokenizer([]byte(cfg.Secret)),
		store.NewRedisStore(redisClient),
		repo,
		passwordHasher,
		events.NewWatermillPublisher(publisher),
		log,
		cfg.AccessTTL,
		cfg.RefreshTTL,
	)

	router := http.SetupRouter(authService)

	log.Info("starting server", "addr", cfg.Addr)
	if err := router.Run(cfg.Addr); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// seedAdmin creates the bootstrap admin account when it does not exist yet.
func seedAdmin(ctx context.Context, repo ports.Members, h ports.Hasher, log *slog.Logger) error {
	exists, err := repo.ExistsByEmail(ctx, seedEmail)
	if err != nil {
		return err
	}
	if exists {
		log.Info("admin account already present", "email", seedEmail)
		return nil
	}

	hash, err := h.Hash(seedPassword)
	if err != nil {
		return err
	}

	admin := &core.Member{
		ID:           uuid.New().String(),
		Email:        seedEmail,
		PasswordHash: hash,
		Nickname:     seedNickname,
		Role:         core.RoleAdmin,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return err
	}

	log.Info("admin account created", "email", seedEmail)
	return nil
}
