package view

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/jfonseca/inventorypro/internal/export"
	"github.com/jfonseca/inventorypro/internal/invoice"
)

type exportState int

const (
	exportStateTimeframe exportState = iota
	exportStatePath
	exportStateExporting
	exportStateResult
)

type ExportModel struct {
	CommonModel
	exportService *export.Service

	state           exportState
	err             error
	timeframePicker TimeframePicker

	startDate time.Time
	endDate   time.Time
	allTime   bool

	form    *huh.Form
	dir     string
	spinner spinner.Model
	summary string
}

func NewExportModel(svc *export.Service) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ExportModel{
		exportService:   svc,
		state:           exportStateTimeframe,
		timeframePicker: NewTimeframePicker(),
		dir:             "./exports",
		spinner:         s,
	}
}

func (m ExportModel) Title() string { return "Export Invoices" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStatePath:
		return "Enter: export | Esc: back"
	case exportStateResult:
		return "Esc: back"
	}

	return "Enter: select | Esc: back"
}

func (m ExportModel) Init() tea.Cmd {
	return m.timeframePicker.Init()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.startDate = msg.Start
		m.endDate = msg.End
		m.allTime = msg.All

		return m.enterPathMode()

	case exportDoneMsg:
		m.state = exportStateResult
		m.err = msg.err
		m.summary = msg.summary

		return m, nil

	case spinner.TickMsg:
		if m.state == exportStateExporting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)

			return m, cmd
		}

		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case exportStateTimeframe:
			if keyMsg.Type == tea.KeyEsc {
				return m, Back
			}
		case exportStateResult:
			if keyMsg.Type == tea.KeyEsc || keyMsg.Type == tea.KeyEnter {
				return m, Back
			}

			return m, nil
		}
	}

	switch m.state {
	case exportStateTimeframe:
		var cmd tea.Cmd
		m.timeframePicker, cmd = m.timeframePicker.Update(msg)

		return m, cmd
	case exportStatePath:
		return m.updatePath(msg)
	}

	return m, nil
}

func (m ExportModel) enterPathMode() (tea.Model, tea.Cmd) {
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("dir").
				Title("Output Directory").
				Value(&m.dir),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = exportStatePath

	return m, m.form.Init()
}

func (m ExportModel) updatePath(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = exportStateTimeframe
			m.form = nil
			m.timeframePicker.Reset()

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

	m.state = exportStateExporting

	return m, tea.Batch(m.spinner.Tick, m.exportCmd())
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStateTimeframe:
		return lipgloss.NewStyle().Padding(2).Render(m.timeframePicker.View())
	case exportStatePath:
		return lipgloss.NewStyle().Padding(2).Render("Export Invoices\n\n" + m.form.View())
	case exportStateExporting:
		return lipgloss.NewStyle().Padding(2).Render(m.spinner.View() + " Exporting...")
	case exportStateResult:
		if m.err != nil {
			return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Export failed: %v\n\n(Esc to go back)", m.err))
		}

		return lipgloss.NewStyle().Padding(2).Render(m.summary + "\n\n(Esc to go back)")
	}

	return ""
}

// Messages

type exportDoneMsg struct {
	summary string
	err     error
}

func (m ExportModel) exportCmd() tea.Cmd {
	dir := m.dir

	filter := invoice.ListFilter{}
	if !m.allTime {
		start, end := m.startDate, m.endDate
		filter.StartDate = &start
		filter.EndDate = &end
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := os.MkdirAll(dir, 0o755); err != nil {
			return exportDoneMsg{err: fmt.Errorf("creating output directory: %w", err)}
		}

		path := filepath.Join(dir, export.Filename(time.Now()))

		f, err := os.Create(path)
		if err != nil {
			return exportDoneMsg{err: fmt.Errorf("creating file: %w", err)}
		}
		defer f.Close()

		n, err := m.exportService.Export(ctx, filter, f)
		if err != nil {
			return exportDoneMsg{err: err}
		}

		return exportDoneMsg{summary: fmt.Sprintf("Wrote %d invoices to %s", n, path)}
	}
}
