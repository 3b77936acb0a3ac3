package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/pulseforge/pulseforge/internal/calendar"
	"github.com/pulseforge/pulseforge/internal/service"
)

const calendarCellWidth = 14

var (
	todayStyle    = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true).Reverse(true)
	selectedStyle = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true).Underline(true)
)

// RenderMonth draws the Monday-first month grid. Each day lists at most
// calendar.DisplayCap entries of each kind; selected may be zero.
func RenderMonth(m *service.CalendarMonth, selected time.Time) string {
	var b strings.Builder
	b.WriteString(StyleHeader.Render(m.Month.Format("January 2006")) + "\n\n")

	heads := make([]string, len(calendar.Weekdays))
	for i, d := range calendar.Weekdays {
		heads[i] = padCell(Dim(d))
	}
	b.WriteString(strings.Join(heads, "") + "\n")

	for start := 0; start < len(m.Cells); start += 7 {
		week := m.Cells[start:min(start+7, len(m.Cells))]
		cols := make([][]string, len(week))
		height := 1
		for i, c := range week {
			cols[i] = cellLines(m, c, selected)
			height = max(height, len(cols[i]))
		}
		for line := range height {
			for _, col := range cols {
				text := ""
				if line < len(col) {
					text = col[line]
				}
				b.WriteString(padCell(text))
			}
			b.WriteString("\n")
		}
		b.WriteString(Dim(strings.Repeat("·", calendarCellWidth*7)) + "\n")
	}
	b.WriteString(Dim("▸ start  ■ deadline  ◆ system update") + "\n")
	return b.String()
}

func cellLines(m *service.CalendarMonth, c calendar.Cell, selected time.Time) []string {
	if c.Blank {
		return []string{""}
	}
	day := fmt.Sprintf("%2d", c.Date.Day())
	switch {
	case calendar.SameDay(c.Date, m.Today):
		day = todayStyle.Render(day)
	case !selected.IsZero() && calendar.SameDay(c.Date, selected):
		day = selectedStyle.Render(day)
	default:
		day = StyleFg.Render(day)
	}
	lines := []string{day}

	e := m.On(c.Date)
	name := calendarCellWidth - 3
	for _, p := range e.VisibleStarts() {
		lines = append(lines, StyleGreen.Render("▸ "+Truncate(p.Name, name)))
	}
	for _, p := range e.VisibleDues() {
		lines = append(lines, StyleRed.Render("■ "+Truncate(p.Name, name)))
	}
	for _, u := range e.VisibleUpdates() {
		lines = append(lines, StylePurple.Render("◆ "+Truncate(u.Title, name)))
	}
	if hidden := len(e.Starts) + len(e.Dues) + len(e.Updates) - (len(e.VisibleStarts()) + len(e.VisibleDues()) + len(e.VisibleUpdates())); hidden > 0 {
		lines = append(lines, Dim(fmt.Sprintf("+%d more", hidden)))
	}
	if n := len(e.DueTasks); n > 0 {
		lines = append(lines, StyleYellow.Render(fmt.Sprintf("%d task(s) due", n)))
	}
	return lines
}

func padCell(s string) string {
	return s + strings.Repeat(" ", max(1, calendarCellWidth-lipgloss.Width(s)))
}

// RenderDayEvents lists everything scheduled on day, uncapped.
func RenderDayEvents(day time.Time, e calendar.DayEvents) string {
	var b strings.Builder
	b.WriteString(Header(day.Format("Monday, Jan 2")) + "\n")
	if e.Empty() {
		b.WriteString(Dim("Nothing scheduled.") + "\n")
		return b.String()
	}
	for _, p := range e.Starts {
		fmt.Fprintf(&b, "%s %s %s\n", StyleGreen.Render("▸"), p.Name, Dim("starts"))
	}
	for _, p := range e.Dues {
		fmt.Fprintf(&b, "%s %s %s\n", StyleRed.Render("■"), p.Name, Dim("deadline"))
	}
	for _, u := range e.Updates {
		fmt.Fprintf(&b, "%s %s\n", StylePurple.Render("◆"), u.Title)
		if u.FeatureBrief != "" {
			b.WriteString("    " + Dim(u.FeatureBrief) + "\n")
		}
	}
	if len(e.DueTasks) > 0 {
		b.WriteString("\n" + Bold("Open tasks due") + "\n")
		for _, t := range e.DueTasks {
			fmt.Fprintf(&b, "  %s  %s  %s\n", TaskStatusPill(t.Status), t.Title, PriorityBadge(t.Priority))
		}
	}
	return b.String()
}
