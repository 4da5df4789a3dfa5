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
	"github.com/aitullalimon/WorkingHoursApp/internal/models"
	"github.com/aitullalimon/WorkingHoursApp/internal/repository"
)

// Earnings shows the billing period enclosing a reference date and the
// earnings breakdown for the records inside it. The period can be paged
// backward and forward, and the shown total can be appended to the payment
// ledger as due or withdrawn.
type Earnings struct {
	db       *sql.DB
	cfg      *config.Config
	resolver *billing.Resolver
	width    int
	height   int

	companyID int64
	refDate   time.Time

	company   *models.Company
	period    billing.Period
	records   []models.WorkRecord
	breakdown billing.Breakdown
	loading   bool
	err       error
	message   string
}

func NewEarnings(db *sql.DB, cfg *config.Config, log *zap.Logger) *Earnings {
	return &Earnings{
		db:       db,
		cfg:      cfg,
		resolver: billing.NewResolver(log),
		refDate:  time.Now(),
	}
}

func (e *Earnings) SetSize(width, height int) {
	e.width = width
	e.height = height
}

func (e *Earnings) SetCompanyFilter(companyID *int64) {
	if companyID != nil && *companyID != e.companyID {
		e.companyID = *companyID
		e.refDate = time.Now()
	}
}

type earningsDataMsg struct {
	company   *models.Company
	period    billing.Period
	records   []models.WorkRecord
	breakdown billing.Breakdown
	err       error
}

func (e *Earnings) Init() tea.Cmd {
	e.loading = true
	e.message = ""
	return e.loadData
}

func (e *Earnings) loadData() tea.Msg {
	company, err := repository.NewCompanyRepo(e.db).GetByID(e.companyID)
	if err != nil {
		return earningsDataMsg{err: err}
	}
	if company == nil {
		return earningsDataMsg{err: fmt.Errorf("company %d not found", e.companyID)}
	}

	period := e.resolver.Resolve(company.MonthStartDay, e.refDate)

	all, err := repository.NewWorkRecordRepo(e.db).GetByCompanyAndDateRange(company.ID, period.Start, period.End)
	if err != nil {
		return earningsDataMsg{err: err}
	}

	// The range query already scopes company and dates; the filter keeps
	// the boundary semantics in one place.
	records := billing.SelectRecords(all, company.ID, period)

	return earningsDataMsg{
		company:   company,
		period:    period,
		records:   records,
		breakdown: billing.ComputeEarnings(*company, records),
	}
}

func (e *Earnings) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case earningsDataMsg:
		e.loading = false
		e.err = msg.err
		e.company = msg.company
		e.period = msg.period
		e.records = msg.records
		e.breakdown = msg.breakdown
		return nil

	case RefreshMsg:
		return e.Init()

	case tea.KeyMsg:
		return e.handleKey(msg)
	}

	return nil
}

func (e *Earnings) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "[", "h":
		e.refDate = e.period.Start.AddDate(0, 0, -1)
		return e.Init()

	case "]", "l":
		e.refDate = e.period.End.AddDate(0, 0, 1)
		return e.Init()

	case "t":
		e.refDate = time.Now()
		return e.Init()

	case "d":
		return e.recordPayment(models.PaymentDue)

	case "w":
		return e.recordPayment(models.PaymentWithdrawn)

	case "p":
		return NavigateWithCompany("payments", e.companyID)

	case "r":
		return NavigateWithCompany("records", e.companyID)

	case "q", "esc":
		return Navigate("companies")
	}
	return nil
}

func (e *Earnings) recordPayment(action models.PaymentAction) tea.Cmd {
	if e.company == nil {
		return nil
	}

	entry := billing.RecordPayment(e.company.ID, e.period, e.breakdown.Total, action)
	if _, err := repository.NewPaymentRepo(e.db).Insert(entry); err != nil {
		e.err = err
		return nil
	}

	e.message = fmt.Sprintf("Recorded %s: %s", action, formatMoney(e.cfg.Currency, entry.Amount))
	return nil
}

func (e *Earnings) View() string {
	var b strings.Builder

	title := "EARNINGS"
	if e.company != nil {
		title = fmt.Sprintf("EARNINGS — %s", e.company.Name)
	}
	b.WriteString(TitleStyle.Render(title))
	b.WriteString("\n\n")

	if e.loading {
		b.WriteString("Loading...\n")
		return b.String()
	}

	if e.err != nil {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", e.err)))
		b.WriteString("\n\n")
		e.err = nil
	}

	if e.message != "" {
		b.WriteString(SuccessStyle.Render(e.message))
		b.WriteString("\n\n")
	}

	if e.company == nil {
		b.WriteString(DimStyle.Render("No company selected."))
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render("[q] Back"))
		return b.String()
	}

	b.WriteString(SubtitleStyle.Render(fmt.Sprintf(
		"Period: %s — %s (%d records)",
		e.period.Start.Format(e.cfg.DateFormat),
		e.period.End.Format(e.cfg.DateFormat),
		len(e.records),
	)))
	b.WriteString("\n")

	var lines []string
	lines = append(lines, fmt.Sprintf("%-14s %s", "Hours", formatHours(e.breakdown.Hours)))
	lines = append(lines, fmt.Sprintf("%-14s %s", "Units", formatHours(e.breakdown.Units)))
	lines = append(lines, fmt.Sprintf("%-14s %s", "Hourly pay", formatMoney(e.cfg.Currency, e.breakdown.HourlyPay)))
	lines = append(lines, fmt.Sprintf("%-14s %s", "Piece pay", formatMoney(e.cfg.Currency, e.breakdown.PiecePay)))
	lines = append(lines, fmt.Sprintf("%-14s %s", "Transport", formatMoney(e.cfg.Currency, e.breakdown.TransportPay)))
	lines = append(lines, "")
	lines = append(lines, SelectedStyle.Render(fmt.Sprintf("%-14s %s", "Total", formatMoney(e.cfg.Currency, e.breakdown.Total))))

	b.WriteString(BoxStyle.Render(strings.Join(lines, "\n")))
	b.WriteString("\n")

	help := "[ / ] Prev/next period  [t] Today  [d] Mark due  [w] Mark withdrawn  [r] Records  [p] Payments  [q] Back"
	b.WriteString(HelpStyle.Render(help))

	return b.String()
}
