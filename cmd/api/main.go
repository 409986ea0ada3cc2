package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/jfonseca/inventorypro/internal/auth"
	authStore "github.com/jfonseca/inventorypro/internal/auth/store"
	"github.com/jfonseca/inventorypro/internal/catalog"
	catalogStore "github.com/jfonseca/inventorypro/internal/catalog/store"
	"github.com/jfonseca/inventorypro/internal/category"
	categoryStore "github.com/jfonseca/inventorypro/internal/category/store"
	"github.com/jfonseca/inventorypro/internal/config"
	"github.com/jfonseca/inventorypro/internal/customer"
	customerStore "github.com/jfonseca/inventorypro/internal/customer/store"
	"github.com/jfonseca/inventorypro/internal/database"
	"github.com/jfonseca/inventorypro/internal/export"
	appHttp "github.com/jfonseca/inventorypro/internal/http"
	authHandler "github.com/jfonseca/inventorypro/internal/http/auth"
	catalogHandler "github.com/jfonseca/inventorypro/internal/http/catalog"
	categoryHandler "github.com/jfonseca/inventorypro/internal/http/category"
	customerHandler "github.com/jfonseca/inventorypro/internal/http/customer"
	dashboardHandler "github.com/jfonseca/inventorypro/internal/http/dashboard"
	exportHandler "github.com/jfonseca/inventorypro/internal/http/export"
	importHandler "github.com/jfonseca/inventorypro/internal/http/importcsv"
	invoiceHandler "github.com/jfonseca/inventorypro/internal/http/invoice"
	settingsHandler "github.com/jfonseca/inventorypro/internal/http/settings"
	"github.com/jfonseca/inventorypro/internal/importer"
	"github.com/jfonseca/inventorypro/internal/invoice"
	invoiceStore "github.com/jfonseca/inventorypro/internal/invoice/store"
	"github.com/jfonseca/inventorypro/internal/settings"
	settingsStore "github.com/jfonseca/inventorypro/internal/settings/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(context.Background(), cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	policy := catalog.StockPolicy{
		FinishedMinStock:    cfg.Stock.FinishedMin,
		RawMaterialMinStock: cfg.Stock.RawMaterialMin,
	}

	var (
		settingsService = settings.NewService(settingsStore.New(db))
		catalogService  = catalog.NewService(catalogStore.New(db), settingsService, policy)
		customerService = customer.NewService(customerStore.New(db))
		invoiceService  = invoice.NewService(invoiceStore.New(db), settingsService)
		categoryService = category.NewService(categoryStore.New(db))
		importService   = importer.NewService(importer.NewParser(), catalogService, categoryService)
		exportService   = export.NewService(invoiceService)
		authService     = auth.NewService(authStore.New(db), cfg.Auth.Secret, cfg.Auth.TokenTTL)
	)

	if cfg.Auth.AdminEmail != "" && cfg.Auth.AdminPassword != "" {
		if err := authService.EnsureAdmin(context.Background(), cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
			slog.Error("failed to seed admin user", "error", err)
			os.Exit(1)
		}
	} else {
		slog.Warn("no admin credentials configured, login will fail until a user exists",
			"hint", "set ADMIN_EMAIL and ADMIN_PASSWORD")
	}

	var (
		authH      = authHandler.NewHandler(authService)
		productsH  = catalogHandler.NewHandler(catalogService)
		customersH = customerHandler.NewHandler(customerService)
		invoicesH  = invoiceHandler.NewHandler(invoiceService)
		settingsH  = settingsHandler.NewHandler(settingsService)
		importH    = importHandler.NewHandler(importService)
		exportH    = exportHandler.NewHandler(exportService)
		categoryH  = categoryHandler.NewHandler(categoryService)
		dashboardH = dashboardHandler.NewHandler(catalogService, customerService, invoiceService)
	)

	router := appHttp.New(
		authService,
		authH, productsH, customersH, invoicesH, settingsH,
		importH, exportH, categoryH, dashboardH,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
