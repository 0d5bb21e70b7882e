package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"

	"skincare-bot/handler"
	"skincare-bot/internal/config"
	"skincare-bot/internal/usecase"
)

func main() {
	// ---- Configuration (read only here) ----
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()})))

	// ---- Handler ----
	actions := usecase.NewActionService()
	h, err := handler.NewHandler(actions)
	if err != nil {
		slog.Error("failed to create handler", "err", err)
		os.Exit(1)
	}

	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		lambda.Start(h.Handle)
		return
	}

	srv := &http.Server{
		Addr:              cfg.ActionsAddress,
		Handler:           handler.NewRouter(h),
		ReadHeaderTimeout: 5 * time.Second,
	}
	slog.Info("action server listening", "addr", cfg.ActionsAddress, "actions", actions.Names())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("action server stopped", "err", err)
		os.Exit(1)
	}
}
