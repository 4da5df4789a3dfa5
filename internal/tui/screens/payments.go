package screens

import (
	"database/sql"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aitullalimon/WorkingHoursApp/internal/config"
	"github.com/aitullalimon/WorkingHoursApp/internal/models"
	"github.com/aitullalimon/WorkingHoursApp/internal/repository"
)

type paymentsMode int

const (
	paymentsModeList paymentsMode = iota
	paymentsModeDelete
)

// Payments lists the append-only ledger for a company. Entries can only be
// deleted, never edited: each one is a snapshot of a period total.
type Payments struct {
	db     *sql.DB
	cfg    *config.Config
	width  int
	height int

	companyID int64
	company   *models.Company
	entries   []models.PaymentRecord
	cursor    int
	mode      paymentsMode
	loading   bool
	err       error
	message   string
}

func NewPayments(db *sql.DB, cfg *config.Config) *Payments {
	return &Payments{db: db, cfg: cfg}
}

func (p *Payments) SetSize(width, height int) {
	p.width = width
	p.height = height
}

func (p *Payments) SetCompanyFilter(companyID *int64) {
	if companyID != nil {
		p.companyID = *companyID
	}
}

type paymentsDataMsg struct {
	company *models.Company
	entries []models.PaymentRecord
	err     error
}

func (p *Payments) Init() tea.Cmd {
	p.loading = true
	p.mode = paymentsModeList
	p.message = ""
	return p.loadData
}

func (p *Payments) loadData() tea.Msg {
	company, err := repository.NewCompanyRepo(p.db).GetByID(p.companyID)
	if err != nil {
		return paymentsDataMsg{err: err}
	}

	entries, err := repository.NewPaymentRepo(p.db).GetByCompanyID(p.companyID)
	if err != nil {
		return paymentsDataMsg{err: err}
	}

	return paymentsDataMsg{company: company, entries: entries}
}

func (p *Payments) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case paymentsDataMsg:
		p.loading = false
		p.err = msg.err
		p.company = msg.company
		p.entries = msg.entries
		if p.cursor >= len(p.entries) {
			p.cursor = max(0, len(p.entries)-1)
		}
		return nil

	case RefreshMsg:
		return p.Init()

	case tea.KeyMsg:
		return p.handleKey(msg)
	}

	return nil
}

func (p *Payments) handleKey(msg tea.KeyMsg) tea.Cmd {
	if p.mode == paymentsModeDelete {
		switch msg.String() {
		case "y", "Y":
			repo := repository.NewPaymentRepo(p.db)
			if err := repo.Delete(p.entries[p.cursor].ID); err != nil {
				p.err = err
			} else {
				p.message = "Ledger entry deleted"
			}
			p.mode = paymentsModeList
			return p.loadData

		case "n", "N", "esc":
			p.mode = paymentsModeList
		}
		return nil
	}

	switch msg.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.entries)-1 {
			p.cursor++
		}
	case "d":
		if len(p.entries) > 0 {
			p.mode = paymentsModeDelete
		}
	case "g":
		return NavigateWithCompany("earnings", p.companyID)
	case "q", "esc":
		return Navigate("companies")
	}
	return nil
}

func (p *Payments) View() string {
	var b strings.Builder

	title := "PAYMENTS"
	if p.company != nil {
		title = fmt.Sprintf("PAYMENTS — %s", p.company.Name)
	}
	b.WriteString(TitleStyle.Render(title))
	b.WriteString("\n\n")

	if p.loading {
		b.WriteString("Loading...\n")
		return b.String()
	}

	if p.err != nil {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", p.err)))
		b.WriteString("\n\n")
		p.err = nil
	}

	if p.message != "" {
		b.WriteString(SuccessStyle.Render(p.message))
		b.WriteString("\n\n")
	}

	if p.mode == paymentsModeDelete && len(p.entries) > 0 {
		entry := p.entries[p.cursor]
		b.WriteString(WarningStyle.Render(fmt.Sprintf(
			"Delete %s entry of %s? (y/n)",
			entry.Action,
			formatMoney(p.cfg.Currency, entry.Amount),
		)))
		b.WriteString("\n")
		return b.String()
	}

	if len(p.entries) == 0 {
		b.WriteString(DimStyle.Render("No ledger entries yet."))
		b.WriteString("\n\n")
	} else {
		for i, entry := range p.entries {
			cursor := "  "
			style := NormalStyle
			if i == p.cursor {
				cursor = "> "
				style = SelectedStyle
			}

			actionStyle := WarningStyle
			if entry.Action == models.PaymentWithdrawn {
				actionStyle = SuccessStyle
			}

			line := fmt.Sprintf("%s%s  %s — %s  %s  %s",
				cursor,
				entry.Date.Format(p.cfg.DateFormat),
				entry.PeriodStart.Format(p.cfg.DateFormat),
				entry.PeriodEnd.Format(p.cfg.DateFormat),
				formatMoney(p.cfg.Currency, entry.Amount),
				actionStyle.Render(string(entry.Action)),
			)
			b.WriteString(style.Render(line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	help := "[d] Delete  [g] Earnings  [q] Back"
	b.WriteString(HelpStyle.Render(help))

	return b.String()
}
