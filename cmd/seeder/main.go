package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/money_transfer_engine/internal/core/domain"
	"github.com/SscSPs/money_transfer_engine/internal/platform/config"
	"github.com/SscSPs/money_transfer_engine/internal/seed"
	"github.com/SscSPs/money_transfer_engine/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

func main() {
	count := flag.Int("accounts", 1000, "Number of accounts to create")
	balance := flag.String("balance", "10000.00", "Starting balance of every seeded account")
	inactiveEvery := flag.Int("inactive-every", 0, "Mark every Nth account INACTIVE (0 disables)")
	truncate := flag.Bool("truncate", false, "Delete all accounts and transfer records first")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := run(logger, *count, *balance, *inactiveEvery, *truncate); err != nil {
		logger.Error("Seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger, count int, balance string, inactiveEvery int, truncate bool) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	startBalance, err := decimal.NewFromString(balance)
	if err != nil || startBalance.IsNegative() || !domain.IsMoneyScale(startBalance) {
		return fmt.Errorf("invalid balance %q", balance)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if _, err := database.RunMigrations(cfg.DatabaseURL, logger); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	conn, err := pgx.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(ctx)

	if truncate {
		logger.Warn("Truncating accounts and transfer records")
		if _, err := conn.Exec(ctx, "TRUNCATE TABLE transfer_records, accounts"); err != nil {
			return fmt.Errorf("truncate: %w", err)
		}
	}

	var existing int
	if err := conn.QueryRow(ctx, "SELECT COUNT(*) FROM accounts").Scan(&existing); err != nil {
		return fmt.Errorf("count accounts: %w", err)
	}
	if existing >= count {
		logger.Info("Database already seeded, skipping", slog.Int("accounts", existing))
		return nil
	}

	// COPY uses the binary protocol, which needs a pgtype value for NUMERIC.
	var numericBalance pgtype.Numeric
	if err := numericBalance.Scan(domain.FormatMoney(startBalance)); err != nil {
		return fmt.Errorf("encode balance: %w", err)
	}

	now := time.Now().UTC()
	rows := make([][]any, 0, count)
	for i := 0; i < count; i++ {
		id := seed.AccountID(i)
		status := domain.AccountActive
		if inactiveEvery > 0 && (i+1)%inactiveEvery == 0 {
			status = domain.AccountInactive
		}
		rows = append(rows, []any{id, seed.HolderName(id), numericBalance, string(status), int64(0), now})
	}

	copied, err := conn.CopyFrom(
		ctx,
		pgx.Identifier{"accounts"},
		[]string{"account_id", "holder_name", "balance", "status", "version", "last_updated"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("bulk insert: %w", err)
	}

	logger.Info("Seeded accounts",
		slog.Int64("count", copied),
		slog.Int64("first_id", seed.FirstAccountID),
		slog.String("balance", domain.FormatMoney(startBalance)))
	return nil
}
