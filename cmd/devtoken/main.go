package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/money_transfer_engine/internal/platform/config"
	"github.com/SscSPs/money_transfer_engine/internal/utils"
)

// devtoken prints a bearer token for a holder, signed with the configured JWT secret.
func main() {
	holder := flag.String("holder", "", "Holder name to put in the token subject")
	ttl := flag.Duration("ttl", time.Hour, "Token lifetime")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.IsProduction {
		slog.Error("Refusing to mint tokens in production")
		os.Exit(1)
	}

	token, err := utils.GenerateAccessToken(*holder, cfg.JWTSecret, cfg.JWTIssuer, *ttl)
	if err != nil {
		slog.Error("Failed to generate token", slog.String("error", err.Error()))
		os.Exit(1)
	}
	fmt.Println(token)
}
