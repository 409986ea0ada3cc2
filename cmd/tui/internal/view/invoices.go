package view

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/jfonseca/inventorypro/internal/billing"
	"github.com/jfonseca/inventorypro/internal/catalog"
	"github.com/jfonseca/inventorypro/internal/customer"
	"github.com/jfonseca/inventorypro/internal/invoice"
	"github.com/jfonseca/inventorypro/internal/settings"
)

type invoicesState int

const (
	invoicesStateBrowse invoicesState = iota
	invoicesStateTimeframe
	invoicesStateCustomer
	invoicesStateItems
	invoicesStateAddItem
)

var invoiceStatusFilters = []*invoice.Status{
	nil,
	new(invoice.StatusDraft),
	new(invoice.StatusPending),
	new(invoice.StatusPaid),
	new(invoice.StatusOverdue),
}

type InvoicesModel struct {
	CommonModel
	invoiceService  *invoice.Service
	customerService *customer.Service
	catalogService  *catalog.Service
	settingsService *settings.Service

	state    invoicesState
	table    table.Model
	invoices []*invoice.Invoice

	statusFilterIdx int
	filter          invoice.ListFilter
	timeframePicker TimeframePicker

	loading bool
	err     error
	status  string

	// Draft composer state
	form      *huh.Form
	customers []*customer.Customer
	products  []*catalog.Entry
	cfg       *settings.Settings

	draftCustomerID string
	draftLines      []billing.LineItem

	itemProductID string
	itemQuantity  string
}

func NewInvoicesModel(
	invoiceSvc *invoice.Service,
	customerSvc *customer.Service,
	catalogSvc *catalog.Service,
	settingsSvc *settings.Service,
) InvoicesModel {
	columns := []table.Column{
		{Title: "Number", Width: 10},
		{Title: "Customer", Width: 26},
		{Title: "Issued", Width: 12},
		{Title: "Due", Width: 12},
		{Title: "Status", Width: 9},
		{Title: "Total", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return InvoicesModel{
		invoiceService:  invoiceSvc,
		customerService: customerSvc,
		catalogService:  catalogSvc,
		settingsService: settingsSvc,
		table:           t,
		timeframePicker: NewTimeframePicker(),
	}
}

func (m InvoicesModel) Title() string { return "Invoices" }

func (m InvoicesModel) ShortHelp() string {
	switch m.state {
	case invoicesStateTimeframe:
		return "Enter: select | Esc: back"
	case invoicesStateCustomer, invoicesStateAddItem:
		return "Navigate form | Esc: cancel"
	case invoicesStateItems:
		return "a: add item | c: create draft | Esc: cancel"
	}

	return "Esc: back | n: new draft | f: finalize | p: mark paid | s: status filter | t: timeframe | r: refresh"
}

func (m InvoicesModel) Init() tea.Cmd {
	return m.loadInvoicesCmd()
}

func (m InvoicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadInvoicesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.invoices = msg.invoices
		m.refreshTable()

		return m, nil

	case invoiceActionMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = msg.status
		}

		m.state = invoicesStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadInvoicesCmd()

	case composeDataMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.customers = msg.customers
		m.products = msg.products
		m.cfg = msg.cfg

		return m.enterCustomerMode()

	case TimeframeSelectedMsg:
		if msg.All {
			m.filter.StartDate = nil
			m.filter.EndDate = nil
		} else {
			m.filter.StartDate = &msg.Start
			m.filter.EndDate = &msg.End
		}

		m.state = invoicesStateBrowse
		m.table.Focus()

		return m, m.loadInvoicesCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case invoicesStateBrowse:
		return m.updateBrowse(msg)
	case invoicesStateTimeframe:
		var cmd tea.Cmd
		m.timeframePicker, cmd = m.timeframePicker.Update(msg)

		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			m.state = invoicesStateBrowse
			m.table.Focus()
		}

		return m, cmd
	case invoicesStateCustomer, invoicesStateAddItem:
		return m.updateForm(msg)
	case invoicesStateItems:
		return m.updateItems(msg)
	}

	return m, nil
}

func (m InvoicesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadInvoicesCmd()
		case "n":
			return m, m.loadComposeDataCmd()
		case "f":
			if inv := m.selectedInvoice(); inv != nil {
				return m, m.finalizeCmd(inv.ID)
			}
		case "p":
			if inv := m.selectedInvoice(); inv != nil {
				return m, m.updateStatusCmd(inv.ID, invoice.StatusPaid)
			}
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % len(invoiceStatusFilters)
			m.filter.Status = invoiceStatusFilters[m.statusFilterIdx]

			return m, m.loadInvoicesCmd()
		case "t":
			m.state = invoicesStateTimeframe
			m.timeframePicker.Reset()
			m.table.Blur()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m InvoicesModel) enterCustomerMode() (tea.Model, tea.Cmd) {
	if len(m.customers) == 0 {
		m.status = "No customers yet; add one first."
		return m, nil
	}

	options := make([]huh.Option[string], len(m.customers))
	for i, c := range m.customers {
		options[i] = huh.NewOption(c.Name, c.ID.String())
	}

	m.draftCustomerID = ""
	m.draftLines = nil

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("customer").
				Title("Customer").
				Options(options...).
				Value(&m.draftCustomerID),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = invoicesStateCustomer
	m.table.Blur()

	return m, m.form.Init()
}

func (m InvoicesModel) enterAddItemMode() (tea.Model, tea.Cmd) {
	if len(m.products) == 0 {
		m.status = "No products in the catalog."
		return m, nil
	}

	options := make([]huh.Option[string], len(m.products))
	for i, p := range m.products {
		label := fmt.Sprintf("%s (%s)", p.Name, FormatMoney(p.UnitPrice))
		options[i] = huh.NewOption(label, p.ID.String())
	}

	m.itemProductID = ""
	m.itemQuantity = "1"

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("product").
				Title("Product").
				Options(options...).
				Value(&m.itemProductID),

			huh.NewInput().
				Key("quantity").
				Title("Quantity").
				Value(&m.itemQuantity).
				Validate(func(s string) error {
					n, err := strconv.ParseInt(s, 10, 64)
					if err != nil || n <= 0 {
						return fmt.Errorf("enter a positive whole number")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = invoicesStateAddItem

	return m, m.form.Init()
}

func (m InvoicesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			if m.state == invoicesStateAddItem {
				m.state = invoicesStateItems
				m.form = nil

				return m, nil
			}

			m.state = invoicesStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == invoicesStateCustomer {
		m.state = invoicesStateItems
		m.form = nil

		return m, nil
	}

	// Item form completed: snapshot the product into a line.
	m.form = nil
	m.state = invoicesStateItems

	productID, err := uuid.Parse(m.itemProductID)
	if err != nil {
		return m, nil
	}

	for _, p := range m.products {
		if p.ID != productID {
			continue
		}

		quantity, _ := strconv.ParseInt(m.itemQuantity, 10, 64)

		taxRate := m.cfg.DefaultTaxRatePercent
		m.draftLines = append(m.draftLines, billing.LineItem{
			ProductID:      p.ID,
			Name:           p.Name,
			Quantity:       quantity,
			UnitPrice:      p.UnitPrice,
			TaxRatePercent: taxRate,
		})

		break
	}

	return m, nil
}

func (m InvoicesModel) updateItems(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.state = invoicesStateBrowse
			m.draftLines = nil
			m.table.Focus()

			return m, nil
		case "a":
			return m.enterAddItemMode()
		case "c":
			return m, m.createDraftCmd()
		}
	}

	return m, nil
}

func (m InvoicesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading invoices...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if m.state == invoicesStateTimeframe {
		return lipgloss.NewStyle().Padding(2).Render(m.timeframePicker.View())
	}

	if m.state == invoicesStateItems || m.state == invoicesStateAddItem {
		return lipgloss.NewStyle().Padding(1).Render(m.composerView())
	}

	statusLabels := []string{"All", "Draft", "Pending", "Paid", "Overdue"}

	header := fmt.Sprintf("Filter: [s] Status: %s | [t] Timeframe",
		activeStyle(statusLabels[m.statusFilterIdx]))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Render(m.table.View()),
	)

	if m.state == invoicesStateCustomer && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("New Draft Invoice\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// composerView shows the draft lines with live totals while items are added.
func (m InvoicesModel) composerView() string {
	s := "New Draft Invoice\n\n"

	if len(m.draftLines) == 0 {
		s += "No items yet.\n"
	}

	for _, line := range m.draftLines {
		s += fmt.Sprintf("%3d x %-30s %14s\n", line.Quantity, line.Name, FormatMoney(line.Subtotal()))
	}

	totals := billing.ComputeTotals(m.draftLines).Round()

	s += fmt.Sprintf(
		"\nSubtotal: %s\nTax:      %s\nTotal:    %s\n",
		FormatMoney(totals.Subtotal),
		FormatMoney(totals.TaxAmount),
		FormatMoney(totals.Total),
	)

	s += "\n[a] add item  [c] create draft  [esc] cancel"

	if m.state == invoicesStateAddItem && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("Add Item\n\n" + m.form.View())

		return lipgloss.JoinHorizontal(lipgloss.Top, s, panel)
	}

	return s
}

func (m InvoicesModel) selectedInvoice() *invoice.Invoice {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.invoices) {
		return nil
	}

	return m.invoices[idx]
}

func (m *InvoicesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.invoices))
	for _, inv := range m.invoices {
		rows = append(rows, table.Row{
			inv.Number,
			inv.CustomerName,
			FormatDate(inv.IssueDate),
			FormatDate(inv.DueDate),
			string(inv.Status),
			FormatMoney(inv.Total),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadInvoicesMsg struct {
	invoices []*invoice.Invoice
	err      error
}

func (m InvoicesModel) loadInvoicesCmd() tea.Cmd {
	filter := m.filter

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		invoices, err := m.invoiceService.List(ctx, filter)

		return loadInvoicesMsg{invoices: invoices, err: err}
	}
}

type invoiceActionMsg struct {
	status string
	err    error
}

func (m InvoicesModel) finalizeCmd(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		inv, err := m.invoiceService.Finalize(ctx, id)
		if err != nil {
			return invoiceActionMsg{err: err}
		}

		return invoiceActionMsg{status: fmt.Sprintf("%s finalized.", inv.Number)}
	}
}

func (m InvoicesModel) updateStatusCmd(id uuid.UUID, status invoice.Status) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.invoiceService.UpdateStatus(ctx, id, status); err != nil {
			return invoiceActionMsg{err: err}
		}

		return invoiceActionMsg{status: fmt.Sprintf("Marked %s.", status)}
	}
}

type composeDataMsg struct {
	customers []*customer.Customer
	products  []*catalog.Entry
	cfg       *settings.Settings
	err       error
}

func (m InvoicesModel) loadComposeDataCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		customers, err := m.customerService.List(ctx, "")
		if err != nil {
			return composeDataMsg{err: err}
		}

		products, err := m.catalogService.List(ctx, catalog.ListFilter{})
		if err != nil {
			return composeDataMsg{err: err}
		}

		cfg, err := m.settingsService.Get(ctx)
		if err != nil {
			return composeDataMsg{err: err}
		}

		return composeDataMsg{customers: customers, products: products, cfg: cfg}
	}
}

func (m InvoicesModel) createDraftCmd() tea.Cmd {
	customerID, err := uuid.Parse(m.draftCustomerID)
	if err != nil {
		return func() tea.Msg {
			return invoiceActionMsg{err: fmt.Errorf("no customer selected")}
		}
	}

	lines := m.draftLines
	dueDays := m.cfg.DefaultDueDays

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		now := time.Now()

		inv, err := m.invoiceService.CreateDraft(ctx, invoice.CreateParams{
			CustomerID: customerID,
			IssueDate:  now,
			DueDate:    now.AddDate(0, 0, dueDays),
			Items:      lines,
		})
		if err != nil {
			return invoiceActionMsg{err: err}
		}

		return invoiceActionMsg{status: fmt.Sprintf("Draft %s created.", inv.Number)}
	}
}
