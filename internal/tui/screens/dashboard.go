package screens

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/aitullalimon/WorkingHoursApp/internal/billing"
	"github.com/aitullalimon/WorkingHoursApp/internal/config"
	"github.com/aitullalimon/WorkingHoursApp/internal/repository"
)

// Dashboard shows every company with its current-period earnings total and
// is the entry point for the other screens.
type Dashboard struct {
	db       *sql.DB
	cfg      *config.Config
	resolver *billing.Resolver
	width    int
	height   int

	rows    []dashboardRow
	cursor  int
	loading bool
	err     error
}

type dashboardRow struct {
	company repository.CompanyWithStats
	period  billing.Period
	total   float64
}

func NewDashboard(db *sql.DB, cfg *config.Config, log *zap.Logger) *Dashboard {
	return &Dashboard{
		db:       db,
		cfg:      cfg,
		resolver: billing.NewResolver(log),
		loading:  true,
	}
}

func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
}

type dashboardDataMsg struct {
	rows []dashboardRow
	err  error
}

func (d *Dashboard) Init() tea.Cmd {
	d.loading = true
	return d.loadData
}

func (d *Dashboard) loadData() tea.Msg {
	companies, err := repository.NewCompanyRepo(d.db).GetAllWithStats()
	if err != nil {
		return dashboardDataMsg{err: err}
	}

	workRepo := repository.NewWorkRecordRepo(d.db)
	now := time.Now()

	rows := make([]dashboardRow, 0, len(companies))
	for _, c := range companies {
		period := d.resolver.Resolve(c.MonthStartDay, now)

		records, err := workRepo.GetByCompanyAndDateRange(c.ID, period.Start, period.End)
		if err != nil {
			return dashboardDataMsg{err: err}
		}

		breakdown := billing.ComputeEarnings(c.Company, billing.SelectRecords(records, c.ID, period))
		rows = append(rows, dashboardRow{company: c, period: period, total: breakdown.Total})
	}

	return dashboardDataMsg{rows: rows}
}

func (d *Dashboard) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.loading = false
		d.err = msg.err
		d.rows = msg.rows
		if d.cursor >= len(d.rows) {
			d.cursor = max(0, len(d.rows)-1)
		}
		return nil

	case RefreshMsg:
		return d.Init()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if d.cursor > 0 {
				d.cursor--
			}
		case "down", "j":
			if d.cursor < len(d.rows)-1 {
				d.cursor++
			}
		case "c":
			return Navigate("companies")
		case "enter":
			if len(d.rows) > 0 {
				return NavigateWithCompany("earnings", d.rows[d.cursor].company.ID)
			}
		case "r":
			if len(d.rows) > 0 {
				return NavigateWithCompany("records", d.rows[d.cursor].company.ID)
			}
		case "p":
			if len(d.rows) > 0 {
				return NavigateWithCompany("payments", d.rows[d.cursor].company.ID)
			}
		}
	}

	return nil
}

func (d *Dashboard) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("WORKING HOURS"))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("Current billing period per company"))
	b.WriteString("\n\n")

	if d.loading {
		b.WriteString("Loading...\n")
		return b.String()
	}

	if d.err != nil {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", d.err)))
		b.WriteString("\n\n")
	}

	if len(d.rows) == 0 {
		b.WriteString(DimStyle.Render("No companies yet. Press [c] to add one."))
		b.WriteString("\n")
	} else {
		for i, row := range d.rows {
			cursor := "  "
			style := NormalStyle
			if i == d.cursor {
				cursor = "> "
				style = SelectedStyle
			}

			line := fmt.Sprintf("%s%-24s %s — %s  %s",
				cursor,
				row.company.Name,
				row.period.Start.Format(d.cfg.DateFormat),
				row.period.End.Format(d.cfg.DateFormat),
				formatMoney(d.cfg.Currency, row.total),
			)
			b.WriteString(style.Render(line))
			b.WriteString("\n")
		}
	}

	help := "[enter] Earnings  [r] Records  [p] Payments  [c] Companies  [q] Quit"
	b.WriteString(HelpStyle.Render(help))

	return b.String()
}
