package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pdfactivity/internal/domain"
	"pdfactivity/internal/report"
)

// Model is the Bubble Tea model for browsing classified sentence records.
// Typing filters records by substring; up/down moves through the matches.
type Model struct {
	records  []domain.LabeledRecord
	filtered []int
	summary  report.Summary
	input    textinput.Model
	viewport viewport.Model
	status   string
	cursor   int
	ready    bool
}

// New creates a TUI model over a finished batch.
func New(records []domain.LabeledRecord, summary report.Summary) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type to filter sentences"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	m := Model{
		records:  records,
		summary:  summary,
		input:    ti,
		viewport: vp,
		status:   "Loaded. Type to filter, arrows to browse.",
	}
	m.applyFilter("")
	return m
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		// account for frames around result and query boxes
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		totalHeaderLines := 2 // header + summary
		totalFooterLines := 1 // status
		reserved := totalHeaderLines + totalFooterLines + qh + 1
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderCurrentRecord())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "down":
			if len(m.filtered) > 0 {
				m.cursor = (m.cursor + 1) % len(m.filtered)
				m.viewport.SetContent(m.renderCurrentRecord())
				return m, nil
			}
		case "up":
			if len(m.filtered) > 0 {
				m.cursor = (m.cursor - 1 + len(m.filtered)) % len(m.filtered)
				m.viewport.SetContent(m.renderCurrentRecord())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.applyFilter(m.input.Value())
		m.viewport.SetContent(m.renderCurrentRecord())
	}
	return m, cmd
}

// View renders the layout: header, summary line, record box, filter box,
// status line.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("PDF Activity Extraction")
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.summaryLine())
	record := resultBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	return header + "\n" + summary + "\n" + record + "\n" + input + "\n" + status
}

func (m *Model) applyFilter(query string) {
	q := strings.ToLower(strings.TrimSpace(query))
	m.filtered = m.filtered[:0]
	for i, r := range m.records {
		if q == "" || strings.Contains(strings.ToLower(r.Record.ActivityText), q) {
			m.filtered = append(m.filtered, i)
		}
	}
	m.cursor = 0
	if q == "" {
		m.status = fmt.Sprintf("%d sentences loaded.", len(m.records))
	} else {
		m.status = fmt.Sprintf("%d of %d sentences match %q", len(m.filtered), len(m.records), query)
	}
}

func (m Model) summaryLine() string {
	return fmt.Sprintf("%d sentences, %d activities (%.1f%%)",
		m.summary.TotalSentences, m.summary.Activities, m.summary.ActivityPercentage)
}

func (m Model) renderCurrentRecord() string {
	if len(m.filtered) == 0 {
		return "No matching sentences."
	}
	r := m.records[m.filtered[m.cursor]]
	title := fmt.Sprintf("Sentence %d/%d  %s  page %d  %s",
		m.cursor+1, len(m.filtered), r.Record.DocumentName, r.Record.PageNumber, labelBadge(r.Label))
	body := r.Record.ActivityText
	if r.Record.Error != "" {
		body += "\n\n" + warnStyle.Render("warning: "+r.Record.Error)
	}
	return title + "\n\n" + body
}

func labelBadge(label int) string {
	if label == 1 {
		return activityStyle.Render("[activity]")
	}
	return "[non-activity]"
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	activityStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	warnStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
