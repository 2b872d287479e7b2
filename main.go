package main

import (
	"context"
	"os"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ochieng/duka-backend/config"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Load()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := config.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}
	config.SeedAdmin(db,
		getEnv("ADMIN_EMAIL", "admin@duka.local"),
		getEnv("ADMIN_PASSWORD", "changeme123"),
	)

	verifier := initOIDC(cfg)

	r := SetupRouter(db, cfg, verifier)
	addr := cfg.Host + ":" + cfg.Port
	log.Info().Str("addr", addr).Msg("server starting")
	if err := r.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// initOIDC builds the Google ID-token verifier. Sign-in with Google is
// optional; without a client id the endpoint reports itself unavailable.
func initOIDC(cfg *config.Config) *oidc.IDTokenVerifier {
	if cfg.GoogleClientID == "" {
		log.Info().Msg("GOOGLE_CLIENT_ID not set, Google sign-in disabled")
		return nil
	}
	provider, err := oidc.NewProvider(context.Background(), "https://accounts.google.com")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise OIDC provider")
	}
	return provider.Verifier(&oidc.Config{ClientID: cfg.GoogleClientID})
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
