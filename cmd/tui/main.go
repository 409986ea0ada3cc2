package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/jfonseca/inventorypro/cmd/tui/internal/view"
	"github.com/jfonseca/inventorypro/internal/catalog"
	catalogStore "github.com/jfonseca/inventorypro/internal/catalog/store"
	"github.com/jfonseca/inventorypro/internal/category"
	categoryStore "github.com/jfonseca/inventorypro/internal/category/store"
	"github.com/jfonseca/inventorypro/internal/config"
	"github.com/jfonseca/inventorypro/internal/customer"
	customerStore "github.com/jfonseca/inventorypro/internal/customer/store"
	"github.com/jfonseca/inventorypro/internal/database"
	"github.com/jfonseca/inventorypro/internal/export"
	"github.com/jfonseca/inventorypro/internal/importer"
	"github.com/jfonseca/inventorypro/internal/invoice"
	invoiceStore "github.com/jfonseca/inventorypro/internal/invoice/store"
	"github.com/jfonseca/inventorypro/internal/settings"
	settingsStore "github.com/jfonseca/inventorypro/internal/settings/store"
)

type model struct {
	catalogService  *catalog.Service
	customerService *customer.Service
	invoiceService  *invoice.Service
	settingsService *settings.Service
	importService   *importer.Service
	exportService   *export.Service

	currentView View

	productsView  view.ProductsModel
	invoicesView  view.InvoicesModel
	customersView view.CustomersModel
	importView    view.ImportModel
	exportView    view.ExportModel
}

type View int

const (
	ViewMenu      View = 0
	ViewProducts  View = 1
	ViewInvoices  View = 2
	ViewCustomers View = 3
	ViewImport    View = 4
	ViewExport    View = 5
)

func initialModel() model {
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

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	policy := catalog.StockPolicy{
		FinishedMinStock:    cfg.Stock.FinishedMin,
		RawMaterialMinStock: cfg.Stock.RawMaterialMin,
	}

	settingsSvc := settings.NewService(settingsStore.New(db))
	catalogSvc := catalog.NewService(catalogStore.New(db), settingsSvc, policy)
	customerSvc := customer.NewService(customerStore.New(db))
	invoiceSvc := invoice.NewService(invoiceStore.New(db), settingsSvc)
	categorySvc := category.NewService(categoryStore.New(db))
	importSvc := importer.NewService(importer.NewParser(), catalogSvc, categorySvc)
	exportSvc := export.NewService(invoiceSvc)

	return model{
		catalogService:  catalogSvc,
		customerService: customerSvc,
		invoiceService:  invoiceSvc,
		settingsService: settingsSvc,
		importService:   importSvc,
		exportService:   exportSvc,
		currentView:     ViewMenu,
		productsView:    view.NewProductsModel(catalogSvc),
		invoicesView:    view.NewInvoicesModel(invoiceSvc, customerSvc, catalogSvc, settingsSvc),
		customersView:   view.NewCustomersModel(customerSvc),
		importView:      view.NewImportModel(importSvc),
		exportView:      view.NewExportModel(exportSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewProducts
				m.productsView = view.NewProductsModel(m.catalogService)

				return m, m.productsView.Init()
			case "2":
				m.currentView = ViewInvoices
				m.invoicesView = view.NewInvoicesModel(
					m.invoiceService, m.customerService, m.catalogService, m.settingsService)

				return m, m.invoicesView.Init()
			case "3":
				m.currentView = ViewCustomers
				m.customersView = view.NewCustomersModel(m.customerService)

				return m, m.customersView.Init()
			case "4":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.importService)

				return m, m.importView.Init()
			case "5":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.exportService)

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewProducts:
		var newModel tea.Model
		newModel, cmd = m.productsView.Update(msg)
		m.productsView = newModel.(view.ProductsModel)
	case ViewInvoices:
		var newModel tea.Model
		newModel, cmd = m.invoicesView.Update(msg)
		m.invoicesView = newModel.(view.InvoicesModel)
	case ViewCustomers:
		var newModel tea.Model
		newModel, cmd = m.customersView.Update(msg)
		m.customersView = newModel.(view.CustomersModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"InventoryPro TUI\n\n" +
				"1. Products\n" +
				"2. Invoices\n" +
				"3. Customers\n" +
				"4. Import Products from CSV\n" +
				"5. Export Invoices to CSV\n\n" +
				"q. Quit",
		)
	case ViewProducts:
		return m.productsView.View()
	case ViewInvoices:
		return m.invoicesView.View()
	case ViewCustomers:
		return m.customersView.View()
	case ViewImport:
		return m.importView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
