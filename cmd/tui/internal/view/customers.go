package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/jfonseca/inventorypro/internal/customer"
)

type customersState int

const (
	customersStateBrowse customersState = iota
	customersStateSearch
	customersStateForm
)

type CustomersModel struct {
	CommonModel
	customerService *customer.Service

	state     customersState
	table     table.Model
	customers []*customer.Customer
	form      *huh.Form
	search    textinput.Model

	query   string
	editing uuid.UUID // zero when adding
	loading bool
	err     error
	status  string

	// Form bindings
	formName    string
	formEmail   string
	formPhone   string
	formAddress string
	formCity    string
}

func NewCustomersModel(customerSvc *customer.Service) CustomersModel {
	columns := []table.Column{
		{Title: "Name", Width: 28},
		{Title: "Email", Width: 28},
		{Title: "Phone", Width: 15},
		{Title: "City", Width: 16},
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
	si.Placeholder = "name or email"
	si.Prompt = "Search: "
	si.Width = 40

	return CustomersModel{
		customerService: customerSvc,
		table:           t,
		search:          si,
	}
}

func (m CustomersModel) Title() string { return "Customers" }

func (m CustomersModel) ShortHelp() string {
	switch m.state {
	case customersStateForm:
		return "Navigate form | Esc: cancel"
	case customersStateSearch:
		return "Enter: apply | Esc: clear"
	}

	return "Esc: back | /: search | n: new | e: edit | r: refresh"
}

func (m CustomersModel) Init() tea.Cmd {
	return m.loadCustomersCmd()
}

func (m CustomersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadCustomersMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.customers = msg.customers
		m.refreshTable()

		return m, nil

	case customerSaveMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			m.status = "Saved."
		}

		m.state = customersStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCustomersCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case customersStateBrowse:
		return m.updateBrowse(msg)
	case customersStateSearch:
		return m.updateSearch(msg)
	case customersStateForm:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m CustomersModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCustomersCmd()
		case "/":
			m.state = customersStateSearch
			m.table.Blur()
			m.search.Focus()

			return m, textinput.Blink
		case "n":
			return m.enterFormMode(nil)
		case "e":
			idx := m.table.Cursor()
			if idx < 0 || idx >= len(m.customers) {
				return m, nil
			}

			return m.enterFormMode(m.customers[idx])
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m CustomersModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter:
			m.query = m.search.Value()
			m.state = customersStateBrowse
			m.search.Blur()
			m.table.Focus()

			return m, m.loadCustomersCmd()
		case tea.KeyEsc:
			m.search.SetValue("")
			m.query = ""
			m.state = customersStateBrowse
			m.search.Blur()
			m.table.Focus()

			return m, m.loadCustomersCmd()
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	return m, cmd
}

func (m CustomersModel) enterFormMode(c *customer.Customer) (tea.Model, tea.Cmd) {
	m.editing = uuid.Nil
	m.formName = ""
	m.formEmail = ""
	m.formPhone = ""
	m.formAddress = ""
	m.formCity = ""

	if c != nil {
		m.editing = c.ID
		m.formName = c.Name
		m.formEmail = c.Email
		m.formPhone = c.Phone
		m.formAddress = c.Address
		m.formCity = c.City
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
				Key("email").
				Title("Email").
				Value(&m.formEmail),

			huh.NewInput().
				Key("phone").
				Title("Phone").
				Value(&m.formPhone),

			huh.NewInput().
				Key("address").
				Title("Address").
				Value(&m.formAddress),

			huh.NewInput().
				Key("city").
				Title("City").
				Value(&m.formCity),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = customersStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func (m CustomersModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = customersStateBrowse
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

	return m, m.saveCmd()
}

func (m CustomersModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading customers...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	content := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	if m.state == customersStateSearch || m.query != "" {
		content = lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().PaddingBottom(1).Render(m.search.View()),
			content,
		)
	}

	if m.state == customersStateForm && m.form != nil {
		title := "New Customer"
		if m.editing != uuid.Nil {
			title = "Edit Customer"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("%s\n\n%s", title, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *CustomersModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.customers))
	for _, c := range m.customers {
		rows = append(rows, table.Row{c.Name, c.Email, c.Phone, c.City})
	}

	m.table.SetRows(rows)
}

// Messages

type loadCustomersMsg struct {
	customers []*customer.Customer
	err       error
}

func (m CustomersModel) loadCustomersCmd() tea.Cmd {
	query := m.query

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		customers, err := m.customerService.List(ctx, query)

		return loadCustomersMsg{customers: customers, err: err}
	}
}

type customerSaveMsg struct {
	err error
}

func (m CustomersModel) saveCmd() tea.Cmd {
	editing := m.editing
	params := customer.CreateParams{
		Name:    m.formName,
		Email:   m.formEmail,
		Phone:   m.formPhone,
		Address: m.formAddress,
		City:    m.formCity,
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if editing == uuid.Nil {
			_, err := m.customerService.Create(ctx, params)
			return customerSaveMsg{err: err}
		}

		c, err := m.customerService.Get(ctx, editing)
		if err != nil {
			return customerSaveMsg{err: err}
		}

		c.Name = params.Name
		c.Email = params.Email
		c.Phone = params.Phone
		c.Address = params.Address
		c.City = params.City

		return customerSaveMsg{err: m.customerService.Update(ctx, c)}
	}
}
