package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/zetacorp/billing/internal/auth"
	"github.com/zetacorp/billing/internal/client"
	clientStore "github.com/zetacorp/billing/internal/client/store"
	"github.com/zetacorp/billing/internal/config"
	"github.com/zetacorp/billing/internal/database"
	billingHttp "github.com/zetacorp/billing/internal/http"
	clientHandler "github.com/zetacorp/billing/internal/http/client"
	invoiceHandler "github.com/zetacorp/billing/internal/http/invoice"
	userHandler "github.com/zetacorp/billing/internal/http/user"
	"github.com/zetacorp/billing/internal/invoice"
	invoiceStore "github.com/zetacorp/billing/internal/invoice/store"
	"github.com/zetacorp/billing/internal/mail"
	"github.com/zetacorp/billing/internal/user"
	userStore "github.com/zetacorp/billing/internal/user/store"
)

func main() {
	// Best effort; the environment wins over an absent .env file.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DB.URL, cfg.DB.Namespace, cfg.DB.Name, cfg.DB.User, cfg.DB.Password)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close(ctx)

	mailer, err := mail.New(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Password, cfg.Sender(), cfg.Mail.FromName)
	if err != nil {
		slog.Error("failed to configure mailer", "error", err)
		os.Exit(1)
	}

	tokens := auth.NewManager(cfg.Auth.Secret, cfg.Auth.TokenTTL)

	var (
		clients        = clientStore.New(db)
		userService    = user.NewService(userStore.New(db), tokens)
		clientService  = client.NewService(clients)
		invoiceService = invoice.NewService(invoiceStore.New(db), clients, mailer, cfg.Mail.FromName)
	)

	var (
		authV1     = userHandler.NewHandler(userService)
		clientsV1  = clientHandler.NewHandler(clientService)
		invoicesV1 = invoiceHandler.NewHandler(invoiceService)
	)

	router := billingHttp.New(cfg.CORS.AllowedOrigins, tokens, authV1, clientsV1, invoicesV1)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
