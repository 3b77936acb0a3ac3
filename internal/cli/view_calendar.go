package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pulseforge/pulseforge/internal/calendar"
	"github.com/pulseforge/pulseforge/internal/cli/formatter"
	"github.com/pulseforge/pulseforge/internal/domain"
	"github.com/pulseforge/pulseforge/internal/navigation"
	"github.com/pulseforge/pulseforge/internal/service"
)

var (
	keyDay       = key.NewBinding(key.WithKeys("left", "right", "h", "l"), key.WithHelp("←→", "day"))
	keyWeek      = key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑↓", "week"))
	keyPrevMonth = key.NewBinding(key.WithKeys("[", "p"), key.WithHelp("[", "prev month"))
	keyNextMonth = key.NewBinding(key.WithKeys("]", "N"), key.WithHelp("]", "next month"))
	keyToday     = key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today"))
	keySchedule  = key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "schedule update"))
	keyEditUpd   = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit update"))
)

// calendarView is the month grid with a details pane for the selected day.
type calendarView struct {
	state    *SharedState
	load     loader
	form     formPanel
	month    *service.CalendarMonth
	// partialErr is shown above a month that loaded without system updates.
	partialErr error
	shown    time.Time // first of the displayed month
	selected time.Time
}

type calendarLoadedMsg struct {
	month *service.CalendarMonth
	err   error
}

type updateSavedMsg struct {
	result *domain.SystemUpdateResult
	err    error
}

func newCalendarView(state *SharedState) *calendarView {
	today := state.App.now()
	return &calendarView{
		state:    state,
		load:     newLoader(),
		shown:    calendar.MonthStart(today),
		selected: today,
	}
}

func (v *calendarView) Init() tea.Cmd { return v.reload() }

func (v *calendarView) reload() tea.Cmd {
	month, role, cal := v.shown, v.state.Role(), v.state.App.Calendar
	return v.load.start(fetch(func(ctx context.Context) (*service.CalendarMonth, error) {
		return cal.Month(ctx, month, role)
	}, func(m *service.CalendarMonth, err error) tea.Msg {
		return calendarLoadedMsg{month: m, err: err}
	}))
}

func (v *calendarView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case calendarLoadedMsg:
		v.partialErr = nil
		if msg.month != nil {
			v.load.done(nil)
			v.month, v.partialErr = msg.month, msg.err
			return v, nil
		}
		v.load.done(msg.err)
		return v, nil
	case updateSavedMsg:
		if msg.err != nil {
			return v, flash(formatter.ErrorLine(msg.err))
		}
		line := "Saved system update " + formatter.FormatUpdateResult(msg.result)
		return v, tea.Batch(flash(formatter.StyleGreen.Render(line)), v.reload())
	case spinner.TickMsg:
		return v, v.load.update(msg)
	}

	if v.form.active() {
		return v, v.form.update(msg)
	}

	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}
	system := v.state.Role().IsSystemAdmin()
	switch {
	case key.Matches(k, keyReload):
		return v, v.reload()
	case key.Matches(k, keyToday):
		return v, v.selectDay(v.state.App.now())
	case key.Matches(k, keyPrevMonth):
		return v, v.selectDay(calendar.ShiftMonth(v.shown, -1))
	case key.Matches(k, keyNextMonth):
		return v, v.selectDay(calendar.ShiftMonth(v.shown, 1))
	case key.Matches(k, keyDay):
		delta := 1
		if s := k.String(); s == "left" || s == "h" {
			delta = -1
		}
		return v, v.selectDay(v.selected.AddDate(0, 0, delta))
	case key.Matches(k, keyWeek):
		delta := 7
		if s := k.String(); s == "up" || s == "k" {
			delta = -7
		}
		return v, v.selectDay(v.selected.AddDate(0, 0, delta))
	case system && key.Matches(k, keySchedule):
		return v, v.openSchedule()
	case system && key.Matches(k, keyEditUpd):
		return v, v.openEdit()
	}
	return v, nil
}

// selectDay moves the selection, reloading when it leaves the shown month.
func (v *calendarView) selectDay(day time.Time) tea.Cmd {
	v.selected = day
	if start := calendar.MonthStart(day); !start.Equal(v.shown) {
		v.shown = start
		return v.reload()
	}
	return nil
}

func (v *calendarView) openSchedule() tea.Cmd {
	in := &domain.SystemUpdateInput{}
	if v.selected.After(v.state.App.now()) {
		in.ScheduledDate = v.selected.Format(domain.DateLayout)
	}
	cal := v.state.App.Calendar
	return v.form.open("Schedule system update", systemUpdateForm(in), func() tea.Cmd {
		return func() tea.Msg { return scheduleUpdate(cal, *in) }
	})
}

func (v *calendarView) openEdit() tea.Cmd {
	if v.month == nil {
		return nil
	}
	updates := v.month.On(v.selected).Updates
	if len(updates) == 0 {
		return flash(formatter.StyleYellow.Render("No system update on the selected day."))
	}
	u := updates[0]
	in := &domain.SystemUpdateInput{
		ScheduledDate: u.ScheduledDate,
		Title:         u.Title,
		FeatureBrief:  u.FeatureBrief,
		Expectations:  u.Expectations,
	}
	cal := v.state.App.Calendar
	return v.form.open(fmt.Sprintf("Edit system update #%d", u.ID), systemUpdateForm(in), func() tea.Cmd {
		return func() tea.Msg { return editUpdate(cal, u.ID, *in) }
	})
}

func scheduleUpdate(cal service.CalendarService, in domain.SystemUpdateInput) tea.Msg {
	res, err := cal.ScheduleUpdate(context.Background(), in)
	return updateSavedMsg{result: res, err: err}
}

func editUpdate(cal service.CalendarService, id int64, in domain.SystemUpdateInput) tea.Msg {
	res, err := cal.EditUpdate(context.Background(), id, in)
	return updateSavedMsg{result: res, err: err}
}

func (v *calendarView) View() string {
	if v.form.active() {
		return v.form.view()
	}
	return v.load.render(func() string {
		if v.month == nil {
			return ""
		}
		body := formatter.RenderMonth(v.month, v.selected) + "\n" + formatter.RenderDayEvents(v.selected, v.month.On(v.selected))
		if v.partialErr != nil {
			body = formatter.ErrorLine(v.partialErr) + "\n\n" + body
		}
		return body
	})
}

func (v *calendarView) Page() navigation.Page { return navigation.Calendar }

func (v *calendarView) ShortHelp() []key.Binding {
	if v.form.active() {
		return nil
	}
	keys := []key.Binding{keyDay, keyWeek, keyPrevMonth, keyNextMonth, keyToday}
	if v.state.Role().IsSystemAdmin() {
		keys = append(keys, keySchedule, keyEditUpd)
	}
	return keys
}

func (v *calendarView) CapturesInput() bool { return v.form.active() }
