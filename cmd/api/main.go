package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"
	"github.com/vineetpuranik/live-bootcamp-project/internal/application/session"
	"github.com/vineetpuranik/live-bootcamp-project/internal/config"
	"github.com/vineetpuranik/live-bootcamp-project/internal/domain"
	"github.com/vineetpuranik/live-bootcamp-project/internal/infrastructure/dynamo"
	"github.com/vineetpuranik/live-bootcamp-project/internal/infrastructure/hash"
	jwtinfra "github.com/vineetpuranik/live-bootcamp-project/internal/infrastructure/jwt"
	"github.com/vineetpuranik/live-bootcamp-project/internal/infrastructure/memory"
	"github.com/vineetpuranik/live-bootcamp-project/internal/infrastructure/postgres"
	"github.com/vineetpuranik/live-bootcamp-project/internal/infrastructure/smtp"
	transporthttp "github.com/vineetpuranik/live-bootcamp-project/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	hasher := hash.NewPool(hash.NewArgon2Hasher(hash.Params{
		Memory:      uint32(cfg.Argon2Memory),
		Iterations:  uint32(cfg.Argon2Iterations),
		Parallelism: uint8(cfg.Argon2Parallelism),
		SaltLength:  16,
		KeyLength:   32,
	}), cfg.HashWorkers)

	// DynamoDB client is only built (and tables bootstrapped) when at least
	// one store runs on it.
	var dynamoClient *dynamodb.Client
	if cfg.UserStoreBackend == config.BackendDynamo ||
		cfg.TokenStoreBackend == config.BackendDynamo ||
		cfg.TwoFAStoreBackend == config.BackendDynamo {
		dynamoClient = dynamo.NewClient(cfg)
		dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)
	}

	var users domain.UserStore
	switch cfg.UserStoreBackend {
	case config.BackendMemory:
		users = memory.NewUserStore(hasher)
	case config.BackendPostgres:
		store, err := postgres.NewUserStore(cfg.PostgresDSN, hasher)
		if err != nil {
			log.Fatalf("postgres user store: %v", err)
		}
		defer store.Close()
		users = store
	case config.BackendDynamo:
		users = dynamo.NewUserStore(dynamoClient, cfg.DynamoTables.Users, hasher)
	default:
		log.Fatalf("unknown USER_STORE backend %q", cfg.UserStoreBackend)
	}

	var bannedTokens domain.BannedTokenStore
	switch cfg.TokenStoreBackend {
	case config.BackendMemory:
		bannedTokens = memory.NewBannedTokenStore()
	case config.BackendDynamo:
		bannedTokens = dynamo.NewBannedTokenStore(dynamoClient, cfg.DynamoTables.BannedTokens)
	default:
		log.Fatalf("unknown TOKEN_STORE backend %q", cfg.TokenStoreBackend)
	}

	var codes domain.TwoFACodeStore
	switch cfg.TwoFAStoreBackend {
	case config.BackendMemory:
		codes = memory.NewTwoFACodeStore(cfg.TwoFATTL)
	case config.BackendDynamo:
		codes = dynamo.NewTwoFACodeStore(dynamoClient, cfg.DynamoTables.TwoFACodes, cfg.TwoFATTL)
	default:
		log.Fatalf("unknown TWOFA_STORE backend %q", cfg.TwoFAStoreBackend)
	}

	jwtProvider, err := jwtinfra.NewProvider(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		log.Fatalf("jwt provider: %v", err)
	}

	sessions := session.NewService(session.ServiceDeps{
		Provider:     jwtProvider,
		BannedTokens: bannedTokens,
	})

	deps := &transporthttp.Deps{
		Users:    users,
		Codes:    codes,
		Sessions: sessions,
		Mailer:   smtp.NewMailer(cfg),
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
