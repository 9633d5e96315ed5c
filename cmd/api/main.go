package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/medibill/medibill/internal/auth"
	authStore "github.com/medibill/medibill/internal/auth/store"
	"github.com/medibill/medibill/internal/bill"
	billStore "github.com/medibill/medibill/internal/bill/store"
	"github.com/medibill/medibill/internal/cart"
	"github.com/medibill/medibill/internal/config"
	"github.com/medibill/medibill/internal/customer"
	customerStore "github.com/medibill/medibill/internal/customer/store"
	"github.com/medibill/medibill/internal/database"
	medibillHttp "github.com/medibill/medibill/internal/http"
	authHandler "github.com/medibill/medibill/internal/http/auth"
	billHandler "github.com/medibill/medibill/internal/http/bill"
	cartHandler "github.com/medibill/medibill/internal/http/cart"
	customerHandler "github.com/medibill/medibill/internal/http/customer"
	importHandler "github.com/medibill/medibill/internal/http/importcsv"
	medicineHandler "github.com/medibill/medibill/internal/http/medicine"
	reportHandler "github.com/medibill/medibill/internal/http/report"
	"github.com/medibill/medibill/internal/importer"
	"github.com/medibill/medibill/internal/medicine"
	medicineStore "github.com/medibill/medibill/internal/medicine/store"
	"github.com/medibill/medibill/internal/payment"
	"github.com/medibill/medibill/pkg/logging"
)

func main() {
	logging.Setup()

	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	tokens := auth.NewTokenManager(cfg.Auth.Secret, cfg.Auth.TokenTTL)

	var (
		authService     = auth.NewService(authStore.New(db), tokens)
		medicineService = medicine.NewService(medicineStore.New(db))
		customerService = customer.NewService(customerStore.New(db))
		billService     = bill.NewService(billStore.New(db))
		cartService     = cart.NewService(medicineService, customerService, billService)
		importService   = importer.NewService()
		processor       = payment.NewSimulated(cfg.Payment.Delay, cfg.Payment.DeclineRate)
	)

	var (
		authH     = authHandler.NewHandler(authService)
		medicineH = medicineHandler.NewHandler(medicineService)
		customerH = customerHandler.NewHandler(customerService)
		billH     = billHandler.NewHandler(billService, processor)
		cartH     = cartHandler.NewHandler(cartService)
		reportH   = reportHandler.NewHandler(medicineService, customerService, billService)
		importH   = importHandler.NewHandler(importService, medicineService)
	)

	router := medibillHttp.New(tokens, authH, medicineH, customerH, billH, cartH, reportH, importH)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "addr", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
