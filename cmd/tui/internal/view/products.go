package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/jfonseca/inventorypro/internal/catalog"
)

type productsState int

const (
	productsStateBrowse productsState = iota
	productsStateSearch
	productsStateEdit
	productsStateAdjust
)

var kindFilters = []*catalog.Kind{
	nil,
	new(catalog.KindFinishedProduct),
	new(catalog.KindRawMaterial),
}

var statusFilters = []*catalog.StockStatus{
	nil,
	new(catalog.StatusInStock),
	new(catalog.StatusLowStock),
	new(catalog.StatusOutOfStock),
}

type ProductsModel struct {
	CommonModel
	catalogService *catalog.Service

	state   productsState
	table   table.Model
	entries []*catalog.Entry
	form    *huh.Form
	search  textinput.Model

	kindFilterIdx   int
	statusFilterIdx int

	filter  catalog.ListFilter
	loading bool
	err     error
	status  string

	// Form bindings
	formName     string
	formCategory string
	formPrice    string
	formStock    string
	formMinStock string
}

func NewProductsModel(catalogSvc *catalog.Service) ProductsModel {
	columns := []table.Column{
		{Title: "SKU", Width: 10},
		{Title: "Name", Width: 30},
		{Title: "Category", Width: 16},
		{Title: "Kind", Width: 10},
		{Title: "Price", Width: 14},
		{Title: "Stock", Width: 7},
		{Title: "Status", Width: 12},
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

	si := textinput.New()
	si.Placeholder = "sku, name or category"
	si.Prompt = "Search: "
	si.Width = 40

	return ProductsModel{
		catalogService: catalogSvc,
		table:          t,
		search:         si,
		filter:         catalog.ListFilter{},
	}
}

func (m ProductsModel) Title() string { return "Products" }

func (m ProductsModel) ShortHelp() string {
	switch m.state {
	case productsStateEdit:
		return "Navigate form | Esc: cancel"
	case productsStateSearch:
		return "Enter: apply | Esc: clear"
	case productsStateAdjust:
		return "Enter: apply delta | Esc: cancel"
	}

	return "Esc: back | /: search | k: kind filter | s: status filter | e: edit | a: adjust stock | r: refresh"
}

func (m ProductsModel) Init() tea.Cmd {
	return m.loadEntriesCmd()
}

func (m ProductsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadProductsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.entries = msg.entries
		m.refreshTable()

		return m, nil

	case productSaveMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			m.status = "Saved."
		}

		m.state = productsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadEntriesCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case productsStateBrowse:
		return m.updateBrowse(msg)
	case productsStateSearch:
		return m.updateSearch(msg)
	case productsStateEdit, productsStateAdjust:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m ProductsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadEntriesCmd()
		case "/":
			m.state = productsStateSearch
			m.table.Blur()
			m.search.Focus()

			return m, textinput.Blink
		case "k":
			m.kindFilterIdx = (m.kindFilterIdx + 1) % len(kindFilters)
			m.filter.Kind = kindFilters[m.kindFilterIdx]

			return m, m.loadEntriesCmd()
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % len(statusFilters)
			m.filter.Status = statusFilters[m.statusFilterIdx]

			return m, m.loadEntriesCmd()
		case "e":
			return m.enterEditMode()
		case "a":
			return m.enterAdjustMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ProductsModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter:
			m.filter.Query = m.search.Value()
			m.state = productsStateBrowse
			m.search.Blur()
			m.table.Focus()

			return m, m.loadEntriesCmd()
		case tea.KeyEsc:
			m.search.SetValue("")
			m.filter.Query = ""
			m.state = productsStateBrowse
			m.search.Blur()
			m.table.Focus()

			return m, m.loadEntriesCmd()
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	return m, cmd
}

func (m ProductsModel) enterEditMode() (tea.Model, tea.Cmd) {
	entry := m.selectedEntry()
	if entry == nil {
		return m, nil
	}

	m.formName = entry.Name
	m.formCategory = entry.Category
	m.formPrice = entry.UnitPrice.String()
	m.formStock = strconv.FormatInt(entry.StockQuantity, 10)

	m.formMinStock = ""
	if entry.MinStockLevel != nil {
		m.formMinStock = strconv.FormatInt(*entry.MinStockLevel, 10)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("category").
				Title("Category").
				Value(&m.formCategory),

			huh.NewInput().
				Key("price").
				Title("Unit Price").
				Value(&m.formPrice).
				Validate(validateDecimal),

			huh.NewInput().
				Key("stock").
				Title("Stock Quantity").
				Value(&m.formStock).
				Validate(validateCount),

			huh.NewInput().
				Key("min_stock").
				Title("Min Stock (blank = default)").
				Value(&m.formMinStock).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					return validateCount(s)
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = productsStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m ProductsModel) enterAdjustMode() (tea.Model, tea.Cmd) {
	if m.selectedEntry() == nil {
		return m, nil
	}

	m.formStock = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("delta").
				Title("Stock Delta (negative to remove)").
				Value(&m.formStock).
				Validate(func(s string) error {
					if _, err := strconv.ParseInt(s, 10, 64); err != nil {
						return fmt.Errorf("enter a whole number")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = productsStateAdjust
	m.table.Blur()

	return m, m.form.Init()
}

func (m ProductsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = productsStateBrowse
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

	if m.state == productsStateAdjust {
		return m, m.adjustCmd()
	}

	return m, m.saveCmd()
}

func (m ProductsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading products...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	kindLabels := []string{"All", "Finished", "Raw Material"}
	statusLabels := []string{"All", "In Stock", "Low Stock", "Out of Stock"}

	header := fmt.Sprintf(
		"Filter: [k] Kind: %s | [s] Stock: %s",
		activeStyle(kindLabels[m.kindFilterIdx]),
		activeStyle(statusLabels[m.statusFilterIdx]),
	)

	if m.state == productsStateSearch || m.filter.Query != "" {
		header = m.search.View() + "\n" + header
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if (m.state == productsStateEdit || m.state == productsStateAdjust) && m.form != nil {
		title := "Edit Product"
		if m.state == productsStateAdjust {
			title = "Adjust Stock"
		}

		sku := ""
		if entry := m.selectedEntry(); entry != nil {
			sku = entry.SKU
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("%s\n\nSKU: %s\n\n%s", title, sku, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m ProductsModel) selectedEntry() *catalog.Entry {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.entries) {
		return nil
	}

	return m.entries[idx]
}

func (m *ProductsModel) refreshTable() {
	policy := m.catalogService.Policy()

	rows := make([]table.Row, 0, len(m.entries))
	for _, e := range m.entries {
		rows = append(rows, table.Row{
			e.SKU,
			e.Name,
			e.Category,
			string(e.Kind),
			FormatMoney(e.UnitPrice),
			strconv.FormatInt(e.StockQuantity, 10),
			string(policy.StatusOf(e)),
		})
	}

	m.table.SetRows(rows)
}

func validateDecimal(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return fmt.Errorf("enter a non-negative amount")
	}

	return nil
}

func validateCount(s string) error {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return fmt.Errorf("enter a non-negative whole number")
	}

	return nil
}

// Messages

type loadProductsMsg struct {
	entries []*catalog.Entry
	err     error
}

func (m ProductsModel) loadEntriesCmd() tea.Cmd {
	filter := m.filter

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		entries, err := m.catalogService.List(ctx, filter)

		return loadProductsMsg{entries: entries, err: err}
	}
}

type productSaveMsg struct {
	err error
}

func (m ProductsModel) saveCmd() tea.Cmd {
	entry := m.selectedEntry()
	if entry == nil {
		return nil
	}

	entry.Name = m.formName
	entry.Category = m.formCategory
	entry.UnitPrice, _ = decimal.NewFromString(m.formPrice)

	entry.StockQuantity, _ = strconv.ParseInt(m.formStock, 10, 64)

	entry.MinStockLevel = nil
	if m.formMinStock != "" {
		minStock, _ := strconv.ParseInt(m.formMinStock, 10, 64)
		entry.MinStockLevel = &minStock
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return productSaveMsg{err: m.catalogService.Update(ctx, entry)}
	}
}

func (m ProductsModel) adjustCmd() tea.Cmd {
	entry := m.selectedEntry()
	if entry == nil {
		return nil
	}

	delta, _ := strconv.ParseInt(m.formStock, 10, 64)

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.catalogService.AdjustStock(ctx, entry.ID, delta)

		return productSaveMsg{err: err}
	}
}
