package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/referendum-bg/anketa/internal/adapters/captcha/hcaptcha"
	"github.com/referendum-bg/anketa/internal/adapters/handler/http"
	"github.com/referendum-bg/anketa/internal/adapters/repository/postgres"
	"github.com/referendum-bg/anketa/internal/core/ports"
	"github.com/referendum-bg/anketa/internal/core/services"
	"github.com/referendum-bg/anketa/internal/logging"
)

const (
	rateLimitWindow   = time.Hour
	rateLimitAttempts = 1
)

func main() {
	logging.Bootstrap()

	if err := godotenv.Load(); err != nil {
		logging.Log.Info("No .env file found")
	}

	db, err := sql.Open("postgres", dbConnString())
	if err != nil {
		logging.Log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logging.Log.Fatal(err)
	}

	window := rateLimitWindow
	if raw := os.Getenv("RATE_LIMIT_WINDOW"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			logging.Log.Fatalf("invalid RATE_LIMIT_WINDOW %q: %v", raw, err)
		}
		window = parsed
	}

	voteRepo := postgres.NewVoteRepository(db)
	limiter := services.NewFixedWindowLimiter(rateLimitAttempts, window)
	defer limiter.Stop()
	notifier := services.NewTallyNotifier()

	var verifier ports.CaptchaVerifier
	if secret := os.Getenv("HCAPTCHA_SECRET"); secret != "" {
		verifier = hcaptcha.NewVerifier(secret)
	} else {
		logging.Log.Warn("HCAPTCHA_SECRET not set, captcha verification disabled (local development only)")
	}

	checkIPDuplicates := os.Getenv("DUPLICATE_IP_CHECK") == "true"

	submissionService := services.NewSubmissionService(voteRepo, limiter, verifier, notifier, checkIPDuplicates)
	tallyService := services.NewTallyService(voteRepo, notifier)

	voteHandler := http.NewVoteHandler(submissionService)
	ipHandler := http.NewIPHandler()
	resultsHandler := http.NewResultsHandler(tallyService)
	handler := http.NewHandler(voteHandler, ipHandler, resultsHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	server := &stdhttp.Server{Addr: "0.0.0.0:" + port, Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logging.Log.Infof("Listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			logging.Log.Fatal(err)
		}
	}()

	<-ctx.Done()
	logging.Log.Info("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Log.Fatal(err)
	}
}

func dbConnString() string {
	dbName := os.Getenv("POSTGRES_DB")
	user := os.Getenv("POSTGRES_USER")
	password := os.Getenv("POSTGRES_PASSWORD")
	host := os.Getenv("POSTGRES_HOST")
	port := os.Getenv("POSTGRES_PORT")
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbName)
}
