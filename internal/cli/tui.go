package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/gamesolver/pkg/store"
)

// =============================================================================
// Key Bindings
// =============================================================================

type recordKeys struct {
	Up, Down, Detail, Select, Back, Quit key.Binding
}

var keys = recordKeys{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Detail: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "details")),
	Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("⏎", "select")),
	Back:   key.NewBinding(key.WithKeys("esc", "tab"), key.WithHelp("esc", "back")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
}

func helpLine(bindings ...key.Binding) string {
	parts := make([]string, len(bindings))
	for i, b := range bindings {
		parts[i] = b.Help().Key + " " + b.Help().Desc
	}
	return StyleDim.Render(strings.Join(parts, "  "))
}

// =============================================================================
// RecordListModel - Interactive record selection
// =============================================================================

// RecordListModel is the bubbletea model for picking a stored solve record.
// Tab opens a scrollable detail pane for the record under the cursor.
type RecordListModel struct {
	Records  []*store.Record
	Cursor   int
	Selected *store.Record
	Height   int
	Offset   int

	detail bool
	pane   viewport.Model
}

// NewRecordListModel creates a new record list model.
func NewRecordListModel(records []*store.Record) RecordListModel {
	return RecordListModel{Records: records, Height: 15, pane: viewport.New(80, 15)}
}

func (m RecordListModel) Init() tea.Cmd {
	return nil
}

func (m RecordListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.Height = max(size.Height-6, 5)
		m.pane.Width = size.Width
		m.pane.Height = m.Height
		return m, nil
	}
	if m.detail {
		return m.updateDetail(msg)
	}

	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(k, keys.Quit):
		return m, tea.Quit
	case key.Matches(k, keys.Up):
		if m.Cursor > 0 {
			m.Cursor--
			if m.Cursor < m.Offset {
				m.Offset = m.Cursor
			}
		}
	case key.Matches(k, keys.Down):
		if m.Cursor < len(m.Records)-1 {
			m.Cursor++
			if m.Cursor >= m.Offset+m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
		}
	case key.Matches(k, keys.Detail):
		if len(m.Records) > 0 {
			m.detail = true
			m.pane.SetContent(recordDetail(m.Records[m.Cursor]))
			m.pane.GotoTop()
		}
	case key.Matches(k, keys.Select):
		if len(m.Records) == 0 {
			return m, tea.Quit
		}
		m.Selected = m.Records[m.Cursor]
		return m, tea.Quit
	}
	return m, nil
}

// updateDetail handles the detail pane; keys other than back and ctrl+c
// scroll it.
func (m RecordListModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case k.String() == "ctrl+c":
			return m, tea.Quit
		case key.Matches(k, keys.Back):
			m.detail = false
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.pane, cmd = m.pane.Update(msg)
	return m, cmd
}

func (m RecordListModel) View() string {
	var b strings.Builder

	if m.detail {
		b.WriteString(StyleTitle.Render("Record " + shortID(m.Records[m.Cursor].ID)))
		b.WriteString("\n")
		b.WriteString(helpLine(keys.Up, keys.Down, keys.Back))
		b.WriteString("\n\n")
		b.WriteString(m.pane.View())
		return b.String()
	}

	b.WriteString(StyleTitle.Render("Select Record"))
	b.WriteString("\n")
	b.WriteString(helpLine(keys.Up, keys.Down, keys.Detail, keys.Select, keys.Quit))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Records))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Records[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		cached := ""
		if r.Cached {
			cached = iconCached
		}
		rows = append(rows, []string{
			cursor,
			shortID(r.ID),
			r.Solver,
			fmt.Sprint(r.Nodes),
			fmt.Sprintf("%d / %d", r.W0, r.W1),
			r.Duration.Round(time.Microsecond).String(),
			cached,
			formatRelativeTime(r.CreatedAt, time.Now()),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Solver", "Nodes", "W0 / W1", "Time", "", "Created").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			}
			if col == 6 {
				return styleCached
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Records))))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// recordDetail lists a record's metadata, regions and strategies, one per
// line.
func recordDetail(r *store.Record) string {
	sol := r.Solution.Solution()
	lines := []string{
		"ID       " + r.ID,
		"Solver   " + r.Solver,
		"Arena    " + r.ArenaHash,
		fmt.Sprintf("Size     %d nodes, %d edges", r.Nodes, r.Edges),
		"Time     " + r.Duration.String(),
		"Created  " + r.CreatedAt.Local().Format(time.DateTime),
		"",
		"W0  " + formatIDs(sol.Regions[0]),
		"W1  " + formatIDs(sol.Regions[1]),
	}
	if sol.HasStrategies() {
		lines = append(lines,
			"σ0  "+formatStrategy(sol.Strategies[0]),
			"σ1  "+formatStrategy(sol.Strategies[1]))
	}
	return strings.Join(lines, "\n")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatRelativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Local().Format("Jan 2, 2006")
	}
}
