package screens

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aitullalimon/WorkingHoursApp/internal/config"
	"github.com/aitullalimon/WorkingHoursApp/internal/models"
	"github.com/aitullalimon/WorkingHoursApp/internal/repository"
)

type recordsMode int

const (
	recordsModeList recordsMode = iota
	recordsModeForm
	recordsModeDelete
)

const (
	recordFieldDate = iota
	recordFieldStart
	recordFieldEnd
	recordFieldHours
	recordFieldBreak
	recordFieldUnits
	recordFieldUnitRate
	recordFieldTransport
	recordFieldCount
)

var recordFieldLabels = [recordFieldCount]string{
	"Date",
	"Start (HH:MM)",
	"End (HH:MM)",
	"Manual hours",
	"Break (hours)",
	"Units",
	"Unit rate",
	"Transport",
}

type Records struct {
	db     *sql.DB
	cfg    *config.Config
	width  int
	height int

	companyID int64
	company   *models.Company
	records   []models.WorkRecord
	cursor    int
	mode      recordsMode
	loading   bool
	err       error
	message   string

	editing *models.WorkRecord // nil when adding
	inputs  [recordFieldCount]textinput.Model
	focus   int
}

func NewRecords(db *sql.DB, cfg *config.Config) *Records {
	r := &Records{db: db, cfg: cfg}

	for i := range r.inputs {
		ti := textinput.New()
		ti.Placeholder = recordFieldLabels[i]
		ti.CharLimit = 20
		ti.Width = 16
		r.inputs[i] = ti
	}
	r.inputs[recordFieldDate].Placeholder = cfg.DateFormat

	return r
}

func (r *Records) SetSize(width, height int) {
	r.width = width
	r.height = height
}

func (r *Records) SetCompanyFilter(companyID *int64) {
	if companyID != nil {
		r.companyID = *companyID
	}
}

type recordsDataMsg struct {
	company *models.Company
	records []models.WorkRecord
	err     error
}

func (r *Records) Init() tea.Cmd {
	r.loading = true
	r.mode = recordsModeList
	r.message = ""
	return r.loadData
}

func (r *Records) loadData() tea.Msg {
	company, err := repository.NewCompanyRepo(r.db).GetByID(r.companyID)
	if err != nil {
		return recordsDataMsg{err: err}
	}

	records, err := repository.NewWorkRecordRepo(r.db).GetByCompanyID(r.companyID)
	if err != nil {
		return recordsDataMsg{err: err}
	}

	return recordsDataMsg{company: company, records: records}
}

func (r *Records) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case recordsDataMsg:
		r.loading = false
		r.err = msg.err
		r.company = msg.company
		r.records = msg.records
		if r.cursor >= len(r.records) {
			r.cursor = max(0, len(r.records)-1)
		}
		return nil

	case RefreshMsg:
		return r.Init()

	case tea.KeyMsg:
		return r.handleKey(msg)
	}

	if r.mode == recordsModeForm {
		return r.updateFormInput(msg)
	}

	return nil
}

func (r *Records) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch r.mode {
	case recordsModeList:
		return r.handleListKey(msg)
	case recordsModeForm:
		return r.handleFormKey(msg)
	case recordsModeDelete:
		return r.handleDeleteKey(msg)
	}
	return nil
}

func (r *Records) handleListKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if r.cursor > 0 {
			r.cursor--
		}
	case "down", "j":
		if r.cursor < len(r.records)-1 {
			r.cursor++
		}
	case "a":
		r.openForm(nil)
	case "e":
		if len(r.records) > 0 {
			record := r.records[r.cursor]
			r.openForm(&record)
		}
	case "d":
		if len(r.records) > 0 {
			r.mode = recordsModeDelete
		}
	case "g":
		return NavigateWithCompany("earnings", r.companyID)
	case "p":
		return NavigateWithCompany("payments", r.companyID)
	case "q", "esc":
		return Navigate("companies")
	}
	return nil
}

func (r *Records) openForm(record *models.WorkRecord) {
	r.mode = recordsModeForm
	r.editing = record
	r.focus = recordFieldDate

	if record == nil {
		for i := range r.inputs {
			r.inputs[i].SetValue("")
		}
		r.inputs[recordFieldDate].SetValue(time.Now().Format(r.cfg.DateFormat))
	} else {
		r.inputs[recordFieldDate].SetValue(record.Date.Format(r.cfg.DateFormat))
		r.inputs[recordFieldStart].SetValue(formatOptionalClock(record.StartTime))
		r.inputs[recordFieldEnd].SetValue(formatOptionalClock(record.EndTime))
		r.inputs[recordFieldHours].SetValue(formatOptionalFloat(record.HoursWorked))
		r.inputs[recordFieldBreak].SetValue(formatOptionalFloat(record.BreakDuration))
		r.inputs[recordFieldUnits].SetValue(formatOptionalFloat(record.UnitCount))
		r.inputs[recordFieldUnitRate].SetValue(formatOptionalFloat(record.UnitRate))
		r.inputs[recordFieldTransport].SetValue(formatOptionalFloat(record.TransportBill))
	}

	r.setFocus(recordFieldDate)
}

func (r *Records) setFocus(focus int) {
	r.focus = focus
	for i := range r.inputs {
		if i == focus {
			r.inputs[i].Focus()
		} else {
			r.inputs[i].Blur()
		}
	}
}

func (r *Records) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		r.mode = recordsModeList
		for i := range r.inputs {
			r.inputs[i].Blur()
		}
		return nil

	case "enter":
		return r.saveForm()

	case "tab", "down":
		r.setFocus((r.focus + 1) % recordFieldCount)
		return nil

	case "shift+tab", "up":
		r.setFocus((r.focus + recordFieldCount - 1) % recordFieldCount)
		return nil
	}

	return r.updateFormInput(msg)
}

func (r *Records) updateFormInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	r.inputs[r.focus], cmd = r.inputs[r.focus].Update(msg)
	return cmd
}

// parseForm validates the form fields into a work record. The screens own
// input parsing so the billing engine only ever sees typed values.
func (r *Records) parseForm() (*models.WorkRecord, error) {
	date, err := time.Parse(r.cfg.DateFormat, strings.TrimSpace(r.inputs[recordFieldDate].Value()))
	if err != nil {
		return nil, fmt.Errorf("invalid date (want %s)", r.cfg.DateFormat)
	}

	record := models.WorkRecord{
		CompanyID: r.companyID,
		Date:      date,
	}

	if record.StartTime, err = parseOptionalClock(date, r.inputs[recordFieldStart].Value()); err != nil {
		return nil, err
	}
	if record.EndTime, err = parseOptionalClock(date, r.inputs[recordFieldEnd].Value()); err != nil {
		return nil, err
	}
	if record.HoursWorked, err = parseOptionalFloat(r.inputs[recordFieldHours].Value()); err != nil {
		return nil, err
	}
	if record.BreakDuration, err = parseOptionalFloat(r.inputs[recordFieldBreak].Value()); err != nil {
		return nil, err
	}
	if record.UnitCount, err = parseOptionalFloat(r.inputs[recordFieldUnits].Value()); err != nil {
		return nil, err
	}
	if record.UnitRate, err = parseOptionalFloat(r.inputs[recordFieldUnitRate].Value()); err != nil {
		return nil, err
	}
	if record.TransportBill, err = parseOptionalFloat(r.inputs[recordFieldTransport].Value()); err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *Records) saveForm() tea.Cmd {
	record, err := r.parseForm()
	if err != nil {
		r.err = err
		return nil
	}

	repo := repository.NewWorkRecordRepo(r.db)
	if r.editing == nil {
		if _, err := repo.Create(*record); err != nil {
			r.err = err
		} else {
			r.message = "Work record added"
		}
	} else {
		record.ID = r.editing.ID
		if err := repo.Update(*record); err != nil {
			r.err = err
		} else {
			r.message = "Work record updated"
		}
	}

	r.mode = recordsModeList
	for i := range r.inputs {
		r.inputs[i].Blur()
	}
	return r.loadData
}

func (r *Records) handleDeleteKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		repo := repository.NewWorkRecordRepo(r.db)
		if err := repo.Delete(r.records[r.cursor].ID); err != nil {
			r.err = err
		} else {
			r.message = "Work record deleted"
		}
		r.mode = recordsModeList
		return r.loadData

	case "n", "N", "esc":
		r.mode = recordsModeList
	}
	return nil
}

func (r *Records) View() string {
	var b strings.Builder

	title := "WORK RECORDS"
	if r.company != nil {
		title = fmt.Sprintf("WORK RECORDS — %s", r.company.Name)
	}
	b.WriteString(TitleStyle.Render(title))
	b.WriteString("\n\n")

	if r.loading {
		b.WriteString("Loading...\n")
		return b.String()
	}

	if r.err != nil {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", r.err)))
		b.WriteString("\n\n")
		r.err = nil
	}

	if r.message != "" {
		b.WriteString(SuccessStyle.Render(r.message))
		b.WriteString("\n\n")
	}

	if r.mode == recordsModeForm {
		return r.viewForm(&b)
	}

	if r.mode == recordsModeDelete && len(r.records) > 0 {
		b.WriteString(WarningStyle.Render(fmt.Sprintf(
			"Delete the record from %s? (y/n)",
			r.records[r.cursor].Date.Format(r.cfg.DateFormat),
		)))
		b.WriteString("\n")
		return b.String()
	}

	if len(r.records) == 0 {
		b.WriteString(DimStyle.Render("No work records yet."))
		b.WriteString("\n\n")
	} else {
		for i, record := range r.records {
			cursor := "  "
			style := NormalStyle
			if i == r.cursor {
				cursor = "> "
				style = SelectedStyle
			}

			b.WriteString(style.Render(cursor + r.recordLine(&record)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	help := "[a] Add  [e] Edit  [d] Delete  [g] Earnings  [p] Payments  [q] Back"
	b.WriteString(HelpStyle.Render(help))

	return b.String()
}

func (r *Records) recordLine(record *models.WorkRecord) string {
	parts := []string{record.Date.Format(r.cfg.DateFormat)}

	if hours := record.BillableHours(); hours > 0 {
		parts = append(parts, fmt.Sprintf("%sh", formatHours(hours)))
	}
	if record.UnitCount != nil {
		parts = append(parts, fmt.Sprintf("%s units", formatOptionalFloat(record.UnitCount)))
	}
	if record.TransportBill != nil {
		parts = append(parts, fmt.Sprintf("transport %s", formatMoney(r.cfg.Currency, *record.TransportBill)))
	}
	if len(parts) == 1 {
		parts = append(parts, "empty")
	}

	return strings.Join(parts, "  ")
}

func (r *Records) viewForm(b *strings.Builder) string {
	title := "New work record"
	if r.editing != nil {
		title = "Edit work record"
	}
	b.WriteString(SubtitleStyle.Render(title))
	b.WriteString("\n")

	for i := range r.inputs {
		style := NormalStyle
		marker := "  "
		if r.focus == i {
			style = SelectedStyle
			marker = "> "
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%-16s", marker, recordFieldLabels[i])))
		b.WriteString(r.inputs[i].View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("[tab] Next field  [enter] Save  [esc] Cancel"))
	return b.String()
}
