package view

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/jfonseca/inventorypro/internal/importer"
)

type importState int

const (
	importStatePath importState = iota
	importStateImporting
	importStateResult
)

type ImportModel struct {
	CommonModel
	importService *importer.Service

	state   importState
	form    *huh.Form
	path    string
	spinner spinner.Model
	summary string
	err     error
}

func NewImportModel(svc *importer.Service) ImportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := ImportModel{
		importService: svc,
		spinner:       s,
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				Title("CSV File Path").
				Placeholder("./products.csv").
				Value(&m.path).
				Validate(func(s string) error {
					if _, err := os.Stat(s); err != nil {
						return fmt.Errorf("file not found")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	return m
}

func (m ImportModel) Title() string { return "Import Products" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStateResult {
		return "Esc: back"
	}

	return "Enter: import | Esc: back"
}

func (m ImportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case importDoneMsg:
		m.state = importStateResult
		m.err = msg.err
		m.summary = msg.summary

		return m, nil

	case spinner.TickMsg:
		if m.state == importStateImporting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)

			return m, cmd
		}

		return m, nil
	}

	switch m.state {
	case importStatePath:
		return m.updatePath(msg)
	case importStateResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			if keyMsg.Type == tea.KeyEsc || keyMsg.Type == tea.KeyEnter {
				return m, Back
			}
		}
	}

	return m, nil
}

func (m ImportModel) updatePath(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = importStateImporting

	return m, tea.Batch(m.spinner.Tick, m.importCmd())
}

func (m ImportModel) View() string {
	switch m.state {
	case importStatePath:
		formView := ""
		if m.form != nil {
			formView = m.form.View()
		}

		return lipgloss.NewStyle().Padding(2).Render("Import Products from CSV\n\n" + formView)
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.spinner.View() + " Importing...")
	case importStateResult:
		if m.err != nil {
			return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Import failed: %v\n\n(Esc to go back)", m.err))
		}

		return lipgloss.NewStyle().Padding(2).Render(m.summary + "\n\n(Esc to go back)")
	}

	return ""
}

// Messages

type importDoneMsg struct {
	summary string
	err     error
}

func (m ImportModel) importCmd() tea.Cmd {
	path := m.form.GetString("path")

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		f, err := os.Open(path)
		if err != nil {
			return importDoneMsg{err: fmt.Errorf("opening file: %w", err)}
		}
		defer f.Close()

		result, err := m.importService.Import(ctx, f)
		if err != nil {
			return importDoneMsg{err: err}
		}

		return importDoneMsg{
			summary: fmt.Sprintf("Imported %d products (%d auto-categorized).", result.Imported, result.Categorized),
		}
	}
}
