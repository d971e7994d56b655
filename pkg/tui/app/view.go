package app

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/campcal/pkg/board"
	"tableflip.dev/campcal/pkg/calendar"
	"tableflip.dev/campcal/pkg/category"
	"tableflip.dev/campcal/pkg/display"
)

const (
	defaultWidth = 80
	minCellWidth = 8
	// day number plus one line per category
	cellHeight = 5
)

const helpText = "h/← prev · l/→ next · t today · r load · R range · q quit"

// View renders the title, the month grid and the footer.
func (m *Model) View() string {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	cw := width / 7
	if cw < minCellWidth {
		cw = minCellWidth
	}

	lines := []string{m.renderTitle(cw * 7), m.renderHeader(cw)}
	today := m.now().Format(calendar.DateLayout)
	for _, week := range m.grid.Rows {
		lines = append(lines, m.renderWeek(week, cw, today))
	}
	lines = append(lines, "", m.renderNotice())
	if m.progressVisible {
		lines = append(lines, m.progress.ViewAs(m.progressPercent))
	}
	lines = append(lines, m.theme.Footer.Help.Render(helpText))
	return strings.Join(lines, "\n")
}

func (m *Model) renderTitle(width int) string {
	title := m.theme.Calendar.Title.Render(m.title)
	mode := m.theme.Footer.Mode.Render(m.mode.String())
	gap := width - lipgloss.Width(title) - lipgloss.Width(mode)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + mode
}

func (m *Model) renderHeader(cw int) string {
	cells := make([]string, 0, 7)
	for _, label := range m.grid.Header() {
		cells = append(cells, m.theme.Calendar.Weekday.Width(cw).Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m *Model) renderWeek(week calendar.Week, cw int, today string) string {
	blocks := make([]string, 0, 7)
	for _, c := range week {
		blocks = append(blocks, m.renderCell(c, cw, today))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

func (m *Model) renderCell(c calendar.Cell, cw int, today string) string {
	box := m.theme.Calendar.Cell.Width(cw).Height(cellHeight)
	if c.Blank() {
		return box.Render(m.theme.Calendar.Blank.Render(""))
	}
	inner := uint(cw - 1)

	dayStyle := m.theme.Calendar.Day
	if c.ID == today {
		dayStyle = dayStyle.Inherit(m.theme.Calendar.Today)
	}
	lines := []string{dayStyle.Render(strconv.Itoa(c.Day))}

	state, _ := m.board.Cell(c.ID)
	for _, line := range m.cellLines(state) {
		lines = append(lines, truncateStyled(line, inner))
	}
	return box.Render(strings.Join(lines, "\n"))
}

type styledLine struct {
	text  string
	style lipgloss.Style
}

func truncateStyled(l styledLine, width uint) string {
	return l.style.Render(truncate.StringWithTail(l.text, width, "…"))
}

// cellLines maps a board cell to its content lines for the current mode.
func (m *Model) cellLines(c board.Cell) []styledLine {
	st := m.theme.Status
	switch c.State {
	case board.Pending:
		return []styledLine{{text: "·", style: st.Pending}}
	case board.Loading:
		return []styledLine{{text: "loading…", style: st.Loading}}
	case board.Failed:
		return []styledLine{{text: display.ErrorMarker, style: st.Error}}
	}
	rendered := display.Lines(c.Counts, m.mode)
	if len(rendered) == 0 {
		return []styledLine{{text: "-", style: st.Pending}}
	}
	out := make([]styledLine, 0, len(rendered))
	for _, l := range rendered {
		out = append(out, styledLine{text: l.Text, style: m.statusStyle(l.Status)})
	}
	return out
}

func (m *Model) statusStyle(s category.Status) lipgloss.Style {
	switch s {
	case category.Available:
		return m.theme.Status.Available
	case category.Error:
		return m.theme.Status.Error
	}
	return m.theme.Status.Unavailable
}

func (m *Model) renderNotice() string {
	if m.noticeErr {
		return m.theme.Footer.NoticeError.Render(m.notice)
	}
	return m.theme.Footer.Notice.Render(m.notice)
}
