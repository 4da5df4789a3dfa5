package tui

import (
	"database/sql"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/aitullalimon/WorkingHoursApp/internal/config"
	"github.com/aitullalimon/WorkingHoursApp/internal/tui/screens"
)

type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenCompanies
	ScreenRecords
	ScreenEarnings
	ScreenPayments
)

type App struct {
	db            *sql.DB
	cfg           *config.Config
	log           *zap.Logger
	currentScreen Screen
	width         int
	height        int

	// Screen models
	dashboard *screens.Dashboard
	companies *screens.Companies
	records   *screens.Records
	earnings  *screens.Earnings
	payments  *screens.Payments

	// Navigation context
	selectedCompanyID *int64
}

func NewApp(db *sql.DB, cfg *config.Config, log *zap.Logger) *App {
	return &App{
		db:            db,
		cfg:           cfg,
		log:           log,
		currentScreen: ScreenDashboard,
	}
}

func (a *App) Init() tea.Cmd {
	a.dashboard = screens.NewDashboard(a.db, a.cfg, a.log)
	a.companies = screens.NewCompanies(a.db, a.cfg)
	a.records = screens.NewRecords(a.db, a.cfg)
	a.earnings = screens.NewEarnings(a.db, a.cfg, a.log)
	a.payments = screens.NewPayments(a.db, a.cfg)

	return a.dashboard.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "q":
			if a.currentScreen == ScreenDashboard {
				return a, tea.Quit
			}
			// Let individual screens handle 'q' for going back
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.dashboard.SetSize(msg.Width, msg.Height)
		a.companies.SetSize(msg.Width, msg.Height)
		a.records.SetSize(msg.Width, msg.Height)
		a.earnings.SetSize(msg.Width, msg.Height)
		a.payments.SetSize(msg.Width, msg.Height)

	case screens.NavigateMsg:
		return a.handleNavigation(msg)
	}

	// Update current screen
	var cmd tea.Cmd
	switch a.currentScreen {
	case ScreenDashboard:
		cmd = a.dashboard.Update(msg)
	case ScreenCompanies:
		cmd = a.companies.Update(msg)
	case ScreenRecords:
		cmd = a.records.Update(msg)
	case ScreenEarnings:
		cmd = a.earnings.Update(msg)
	case ScreenPayments:
		cmd = a.payments.Update(msg)
	}

	return a, cmd
}

func (a *App) handleNavigation(msg screens.NavigateMsg) (tea.Model, tea.Cmd) {
	switch msg.Screen {
	case "dashboard":
		a.currentScreen = ScreenDashboard
		a.selectedCompanyID = nil
		return a, a.dashboard.Init()
	case "companies":
		a.currentScreen = ScreenCompanies
		return a, a.companies.Init()
	case "records":
		a.currentScreen = ScreenRecords
		a.selectedCompanyID = msg.CompanyID
		a.records.SetCompanyFilter(msg.CompanyID)
		return a, a.records.Init()
	case "earnings":
		a.currentScreen = ScreenEarnings
		a.selectedCompanyID = msg.CompanyID
		a.earnings.SetCompanyFilter(msg.CompanyID)
		return a, a.earnings.Init()
	case "payments":
		a.currentScreen = ScreenPayments
		a.selectedCompanyID = msg.CompanyID
		a.payments.SetCompanyFilter(msg.CompanyID)
		return a, a.payments.Init()
	}
	return a, nil
}

func (a *App) View() string {
	var content string

	switch a.currentScreen {
	case ScreenDashboard:
		content = a.dashboard.View()
	case ScreenCompanies:
		content = a.companies.View()
	case ScreenRecords:
		content = a.records.View()
	case ScreenEarnings:
		content = a.earnings.View()
	case ScreenPayments:
		content = a.payments.View()
	}

	return lipgloss.NewStyle().
		Width(a.width).
		Height(a.height).
		Render(content)
}

func Run(db *sql.DB, cfg *config.Config, log *zap.Logger) error {
	app := NewApp(db, cfg, log)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
