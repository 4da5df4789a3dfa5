package screens

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aitullalimon/WorkingHoursApp/internal/config"
	"github.com/aitullalimon/WorkingHoursApp/internal/models"
	"github.com/aitullalimon/WorkingHoursApp/internal/repository"
)

type companiesMode int

const (
	companiesModeList companiesMode = iota
	companiesModeForm
	companiesModeDelete
)

const (
	companyFieldName = iota
	companyFieldType
	companyFieldRate
	companyFieldAnchor
	companyFieldCount
)

type Companies struct {
	db     *sql.DB
	cfg    *config.Config
	width  int
	height int

	companies []repository.CompanyWithStats
	cursor    int
	mode      companiesMode
	loading   bool
	err       error
	message   string

	// Form state
	editing     *models.Company // nil when adding
	nameInput   textinput.Model
	rateInput   textinput.Model
	paymentType models.PaymentType
	anchor      int
	focus       int
}

func NewCompanies(db *sql.DB, cfg *config.Config) *Companies {
	name := textinput.New()
	name.Placeholder = "Company name"
	name.CharLimit = 100
	name.Width = 40

	rate := textinput.New()
	rate.Placeholder = "Rate"
	rate.CharLimit = 12
	rate.Width = 12

	return &Companies{
		db:        db,
		cfg:       cfg,
		nameInput: name,
		rateInput: rate,
	}
}

func (c *Companies) SetSize(width, height int) {
	c.width = width
	c.height = height
}

type companiesDataMsg struct {
	companies []repository.CompanyWithStats
	err       error
}

func (c *Companies) Init() tea.Cmd {
	c.loading = true
	c.mode = companiesModeList
	c.message = ""
	return c.loadData
}

func (c *Companies) loadData() tea.Msg {
	repo := repository.NewCompanyRepo(c.db)
	companies, err := repo.GetAllWithStats()
	return companiesDataMsg{companies: companies, err: err}
}

func (c *Companies) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case companiesDataMsg:
		c.loading = false
		c.err = msg.err
		c.companies = msg.companies
		if c.cursor >= len(c.companies) {
			c.cursor = max(0, len(c.companies)-1)
		}
		return nil

	case RefreshMsg:
		return c.Init()

	case tea.KeyMsg:
		return c.handleKey(msg)
	}

	if c.mode == companiesModeForm {
		return c.updateFormInputs(msg)
	}

	return nil
}

func (c *Companies) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch c.mode {
	case companiesModeList:
		return c.handleListKey(msg)
	case companiesModeForm:
		return c.handleFormKey(msg)
	case companiesModeDelete:
		return c.handleDeleteKey(msg)
	}
	return nil
}

func (c *Companies) handleListKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if c.cursor > 0 {
			c.cursor--
		}
	case "down", "j":
		if c.cursor < len(c.companies)-1 {
			c.cursor++
		}
	case "a":
		c.openForm(nil)
	case "e":
		if len(c.companies) > 0 {
			company := c.companies[c.cursor].Company
			c.openForm(&company)
		}
	case "d":
		if len(c.companies) > 0 {
			c.mode = companiesModeDelete
		}
	case "enter":
		if len(c.companies) > 0 {
			return NavigateWithCompany("records", c.companies[c.cursor].ID)
		}
	case "g":
		if len(c.companies) > 0 {
			return NavigateWithCompany("earnings", c.companies[c.cursor].ID)
		}
	case "p":
		if len(c.companies) > 0 {
			return NavigateWithCompany("payments", c.companies[c.cursor].ID)
		}
	case "q", "esc":
		return Navigate("dashboard")
	}
	return nil
}

func (c *Companies) openForm(company *models.Company) {
	c.mode = companiesModeForm
	c.editing = company
	c.focus = companyFieldName

	if company == nil {
		c.nameInput.SetValue("")
		c.rateInput.SetValue("")
		c.paymentType = models.PaymentTypeHourly
		c.anchor = c.cfg.DefaultMonthStartDay
	} else {
		c.nameInput.SetValue(company.Name)
		c.paymentType = company.PaymentType
		c.anchor = company.MonthStartDay
		c.rateInput.SetValue(formatOptionalFloat(c.activeRate(company)))
	}

	c.nameInput.Focus()
	c.rateInput.Blur()
}

func (c *Companies) activeRate(company *models.Company) *float64 {
	if c.paymentType == models.PaymentTypePoint {
		return company.PointRate
	}
	return company.HourlyRate
}

func (c *Companies) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		c.mode = companiesModeList
		c.nameInput.Blur()
		c.rateInput.Blur()
		return nil

	case "enter":
		return c.saveForm()

	case "tab", "down":
		c.setFocus((c.focus + 1) % companyFieldCount)
		return nil

	case "shift+tab", "up":
		c.setFocus((c.focus + companyFieldCount - 1) % companyFieldCount)
		return nil

	case "left", "right":
		switch c.focus {
		case companyFieldType:
			if c.paymentType == models.PaymentTypeHourly {
				c.paymentType = models.PaymentTypePoint
			} else {
				c.paymentType = models.PaymentTypeHourly
			}
			return nil
		case companyFieldAnchor:
			if c.anchor == 1 {
				c.anchor = 16
			} else {
				c.anchor = 1
			}
			return nil
		}
	}

	return c.updateFormInputs(msg)
}

func (c *Companies) setFocus(focus int) {
	c.focus = focus
	c.nameInput.Blur()
	c.rateInput.Blur()
	switch focus {
	case companyFieldName:
		c.nameInput.Focus()
	case companyFieldRate:
		c.rateInput.Focus()
	}
}

func (c *Companies) updateFormInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch c.focus {
	case companyFieldName:
		c.nameInput, cmd = c.nameInput.Update(msg)
	case companyFieldRate:
		c.rateInput, cmd = c.rateInput.Update(msg)
	}
	return cmd
}

func (c *Companies) saveForm() tea.Cmd {
	name := strings.TrimSpace(c.nameInput.Value())
	if name == "" {
		c.err = fmt.Errorf("company name is required")
		return nil
	}

	rate, err := parseOptionalFloat(c.rateInput.Value())
	if err != nil {
		c.err = err
		return nil
	}

	company := models.Company{
		Name:          name,
		PaymentType:   c.paymentType,
		MonthStartDay: c.anchor,
	}
	if c.editing != nil {
		company.ID = c.editing.ID
		company.HourlyRate = c.editing.HourlyRate
		company.PointRate = c.editing.PointRate
	}
	if c.paymentType == models.PaymentTypePoint {
		company.PointRate = rate
	} else {
		company.HourlyRate = rate
	}

	repo := repository.NewCompanyRepo(c.db)
	if c.editing == nil {
		if _, err := repo.Create(company); err != nil {
			c.err = err
		} else {
			c.message = fmt.Sprintf("Created company: %s", name)
		}
	} else {
		if err := repo.Update(company); err != nil {
			c.err = err
		} else {
			c.message = fmt.Sprintf("Updated company: %s", name)
		}
	}

	c.mode = companiesModeList
	c.nameInput.Blur()
	c.rateInput.Blur()
	return c.loadData
}

func (c *Companies) handleDeleteKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		repo := repository.NewCompanyRepo(c.db)
		name := c.companies[c.cursor].Name
		err := repo.Delete(c.companies[c.cursor].ID)
		if err != nil {
			c.err = err
		} else {
			c.message = fmt.Sprintf("Deleted company: %s", name)
		}
		c.mode = companiesModeList
		return c.loadData

	case "n", "N", "esc":
		c.mode = companiesModeList
	}
	return nil
}

func (c *Companies) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("COMPANIES"))
	b.WriteString("\n\n")

	if c.loading {
		b.WriteString("Loading...\n")
		return b.String()
	}

	if c.err != nil {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", c.err)))
		b.WriteString("\n\n")
		c.err = nil
	}

	if c.message != "" {
		b.WriteString(SuccessStyle.Render(c.message))
		b.WriteString("\n\n")
	}

	if c.mode == companiesModeForm {
		return c.viewForm(&b)
	}

	if c.mode == companiesModeDelete && len(c.companies) > 0 {
		b.WriteString(WarningStyle.Render(fmt.Sprintf(
			"Delete company '%s'? All its work records will be deleted too. (y/n)",
			c.companies[c.cursor].Name,
		)))
		b.WriteString("\n")
		return b.String()
	}

	if len(c.companies) == 0 {
		b.WriteString(DimStyle.Render("No companies yet."))
		b.WriteString("\n\n")
	} else {
		for i, company := range c.companies {
			cursor := "  "
			style := NormalStyle
			if i == c.cursor {
				cursor = "> "
				style = SelectedStyle
			}

			line := fmt.Sprintf("%s%s [%s, cycle day %d] (%d records, %d payments)",
				cursor,
				company.Name,
				company.PaymentType,
				company.MonthStartDay,
				company.RecordCount,
				company.PaymentCount,
			)
			b.WriteString(style.Render(line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	help := "[a] Add  [e] Edit  [d] Delete  [enter] Records  [g] Earnings  [p] Payments  [q] Back"
	b.WriteString(HelpStyle.Render(help))

	return b.String()
}

func (c *Companies) viewForm(b *strings.Builder) string {
	title := "New company"
	if c.editing != nil {
		title = "Edit company"
	}
	b.WriteString(SubtitleStyle.Render(title))
	b.WriteString("\n")

	rateLabel := "Hourly rate"
	if c.paymentType == models.PaymentTypePoint {
		rateLabel = "Point rate"
	}

	b.WriteString(c.formRow(companyFieldName, "Name", c.nameInput.View()))
	b.WriteString(c.formRow(companyFieldType, "Payment type", fmt.Sprintf("< %s >", c.paymentType)))
	b.WriteString(c.formRow(companyFieldRate, rateLabel, c.rateInput.View()))
	b.WriteString(c.formRow(companyFieldAnchor, "Cycle start day", fmt.Sprintf("< %d >", c.anchor)))

	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("[tab] Next field  [←/→] Toggle  [enter] Save  [esc] Cancel"))
	return b.String()
}

func (c *Companies) formRow(field int, label, value string) string {
	style := NormalStyle
	marker := "  "
	if c.focus == field {
		style = SelectedStyle
		marker = "> "
	}
	return style.Render(fmt.Sprintf("%s%-16s", marker, label)) + value + "\n"
}
