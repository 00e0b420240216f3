package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/SscSPs/money_transfer_engine/internal/dto"
	"github.com/SscSPs/money_transfer_engine/internal/platform/config"
	"github.com/SscSPs/money_transfer_engine/internal/seed"
	"github.com/SscSPs/money_transfer_engine/internal/utils"
	"github.com/google/uuid"
)

type options struct {
	targetURL   string
	workers     int
	duration    time.Duration
	accounts    int
	workload    string
	amount      string
	replayRatio float64
}

type tally struct {
	mu      sync.Mutex
	byCode  map[string]uint64
	total   atomic.Uint64
	netErrs atomic.Uint64
}

func (t *tally) add(code string) {
	t.total.Add(1)
	t.mu.Lock()
	t.byCode[code]++
	t.mu.Unlock()
}

type tokenSource struct {
	secret string
	issuer string
	mu     sync.Mutex
	cache  map[int64]string
}

func (ts *tokenSource) forAccount(accountID int64) (string, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if tok, ok := ts.cache[accountID]; ok {
		return tok, nil
	}
	tok, err := utils.GenerateAccessToken(seed.HolderName(accountID), ts.secret, ts.issuer, 24*time.Hour)
	if err != nil {
		return "", err
	}
	ts.cache[accountID] = tok
	return tok, nil
}

func main() {
	var opts options
	flag.StringVar(&opts.targetURL, "url", "http://localhost:8080", "API base URL")
	flag.IntVar(&opts.workers, "workers", 10, "Number of concurrent workers")
	flag.DurationVar(&opts.duration, "duration", 30*time.Second, "Test duration")
	flag.IntVar(&opts.accounts, "accounts", 1000, "Number of seeded accounts to use")
	flag.StringVar(&opts.workload, "workload", "symmetric", "Workload type: symmetric | uniform | hotspot")
	flag.StringVar(&opts.amount, "amount", "1.00", "Amount of every transfer")
	flag.Float64Var(&opts.replayRatio, "replay-ratio", 0.1, "Share of requests that resend the previous idempotency key")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if opts.accounts < 2 {
		logger.Error("At least two accounts are required")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, opts.duration)
	defer cancel()

	tokens := &tokenSource{secret: cfg.JWTSecret, issuer: cfg.JWTIssuer, cache: make(map[int64]string)}
	results := &tally{byCode: make(map[string]uint64)}

	logger.Info("Starting load test",
		slog.String("workload", opts.workload),
		slog.Int("workers", opts.workers),
		slog.Duration("duration", opts.duration))

	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < opts.workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			runWorker(ctx, worker, opts, tokens, results)
		}(i)
	}
	wg.Wait()

	printResults(logger, results, time.Since(start))
}

func runWorker(ctx context.Context, worker int, opts options, tokens *tokenSource, results *tally) {
	client := &http.Client{Timeout: 15 * time.Second}
	lastKey := ""

	for ctx.Err() == nil {
		from, to := pickAccounts(worker, opts)

		key := uuid.NewString()
		if lastKey != "" && rand.Float64() < opts.replayRatio {
			key = lastKey
		}

		code, err := sendTransfer(ctx, client, opts, tokens, from, to, key)
		if err != nil {
			if ctx.Err() == nil {
				results.netErrs.Add(1)
			}
			continue
		}
		results.add(code)
		lastKey = key
	}
}

// pickAccounts chooses a source and destination. The symmetric workload pairs workers
// so that half move money A to B while the other half move B to A.
func pickAccounts(worker int, opts options) (int64, int64) {
	switch opts.workload {
	case "symmetric":
		a, b := seed.AccountID(0), seed.AccountID(1)
		if worker%2 == 0 {
			return a, b
		}
		return b, a
	case "hotspot":
		if rand.Float32() < 0.9 {
			if rand.Float32() < 0.5 {
				return seed.AccountID(0), seed.AccountID(1)
			}
			return seed.AccountID(1), seed.AccountID(0)
		}
	}

	a := rand.IntN(opts.accounts)
	b := rand.IntN(opts.accounts - 1)
	if b >= a {
		b++
	}
	return seed.AccountID(a), seed.AccountID(b)
}

func sendTransfer(ctx context.Context, client *http.Client, opts options, tokens *tokenSource, from, to int64, key string) (string, error) {
	token, err := tokens.forAccount(from)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(map[string]any{
		"fromAccountId":  from,
		"toAccountId":    to,
		"amount":         opts.amount,
		"idempotencyKey": key,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, opts.targetURL+"/api/v1/transfers", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusCreated {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "201", nil
	}

	var errBody dto.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errBody); err != nil || errBody.ErrorCode == "" {
		return fmt.Sprintf("%d", resp.StatusCode), nil
	}
	return fmt.Sprintf("%d %s", resp.StatusCode, errBody.ErrorCode), nil
}

func printResults(logger *slog.Logger, results *tally, elapsed time.Duration) {
	total := results.total.Load()
	logger.Info("Load test finished",
		slog.Uint64("requests", total),
		slog.Uint64("network_errors", results.netErrs.Load()),
		slog.Duration("elapsed", elapsed),
		slog.Float64("rps", float64(total)/elapsed.Seconds()))

	results.mu.Lock()
	defer results.mu.Unlock()
	codes := make([]string, 0, len(results.byCode))
	for code := range results.byCode {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		logger.Info("Outcome", slog.String("status", code), slog.Uint64("count", results.byCode[code]))
	}
}
