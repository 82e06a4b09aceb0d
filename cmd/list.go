package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rivals-mod-manager/logger"
	"rivals-mod-manager/mods"
	"rivals-mod-manager/ui"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Browse and manage installed mods interactively",
	Long:  `Launch an interactive TUI listing every installed mod. Toggle mods on and off, mark favorites, or delete mods without leaving the list.`,
	Run: func(_ *cobra.Command, _ []string) {
		runList()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

// listModel represents the state of the TUI
type listModel struct {
	svc           *mods.Service
	records       []mods.ModRecord
	selectedIndex int
	loading       bool
	working       bool
	spinner       spinner.Model
	error         string
	message       string
	width         int
	height        int
}

type recordsLoadedMsg struct {
	records []mods.ModRecord
}

type actionDoneMsg struct {
	message string
}

type listErrorMsg string

type clearMessageMsg struct{}

func (m listModel) Init() tea.Cmd {
	return tea.Batch(m.loadRecords(), m.spinner.Tick)
}

func (m listModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case recordsLoadedMsg:
		m.records = msg.records
		m.loading = false
		m.working = false
		if m.selectedIndex >= len(m.records) && len(m.records) > 0 {
			m.selectedIndex = len(m.records) - 1
		}
	case actionDoneMsg:
		m.message = msg.message
		return m, tea.Batch(
			m.loadRecords(),
			tea.Tick(3*time.Second, func(time.Time) tea.Msg {
				return clearMessageMsg{}
			}),
		)
	case listErrorMsg:
		m.error = string(msg)
		m.loading = false
		m.working = false
	case clearMessageMsg:
		m.message = ""
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.loading || m.working {
			return m, cmd
		}
	}
	return m, nil
}

func (m *listModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.working {
		return m, nil
	}
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
	case "down", "j":
		if m.selectedIndex < len(m.records)-1 {
			m.selectedIndex++
		}
	case "e", " ":
		if len(m.records) > 0 {
			m.working = true
			return m, tea.Batch(m.toggleEnabled(m.records[m.selectedIndex]), m.spinner.Tick)
		}
	case "f":
		if len(m.records) > 0 {
			m.working = true
			return m, tea.Batch(m.toggleFavorite(m.records[m.selectedIndex]), m.spinner.Tick)
		}
	case "d":
		if len(m.records) > 0 {
			m.working = true
			return m, tea.Batch(m.deleteMod(m.records[m.selectedIndex]), m.spinner.Tick)
		}
	case "r":
		m.loading = true
		return m, tea.Batch(m.loadRecords(), m.spinner.Tick)
	}
	return m, nil
}

func (m listModel) View() string {
	if m.loading {
		return fmt.Sprintf("%s Scanning mods...\n", m.spinner.View())
	}
	if m.working {
		return fmt.Sprintf("%s Working...\n", m.spinner.View())
	}
	if m.error != "" {
		return ui.Error("Error: "+m.error) + "\n"
	}
	if len(m.records) == 0 {
		return "No mods installed yet. Use 'rivals-mod-manager install <file>' to add one.\n"
	}

	var output strings.Builder
	output.WriteString(renderListHeader())
	output.WriteString("\n")

	for i, record := range m.records {
		output.WriteString(m.renderRow(i, record))
		output.WriteString("\n")
	}

	output.WriteString("\n" + renderListFooter())
	if m.message != "" {
		output.WriteString("\n" + ui.Enabled(m.message))
	}
	return output.String()
}

func renderListHeader() string {
	return ui.Header(fmt.Sprintf(" %-36s %-10s %-18s %-10s %s",
		"Mod", "Category", "Character", "Size", "State"))
}

func renderListFooter() string {
	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Italic(true)
	return footerStyle.Render("↑/k: up  ↓/j: down  e: enable/disable  f: favorite  d: delete  r: rescan  q: quit")
}

func (m listModel) renderRow(index int, record mods.ModRecord) string {
	character := "-"
	if record.Character != nil {
		character = string(*record.Character)
	}

	state := ui.Disabled("disabled")
	if record.Enabled {
		state = ui.Enabled("enabled")
	}

	name := record.Name
	if record.IsFavorite {
		name = ui.Favorite("★ ") + name
	}

	row := fmt.Sprintf(" %-36s %-10s %-18s %-10s %s",
		truncate(name, 34),
		string(record.Category),
		truncate(character, 16),
		formatSize(record.FileSize),
		state,
	)

	rowStyle := lipgloss.NewStyle()
	if index == m.selectedIndex {
		rowStyle = rowStyle.Background(lipgloss.Color("8")).Bold(true)
	}
	return rowStyle.Render(row)
}

func truncate(s string, maxLen int) string {
	if len(s) > maxLen {
		return s[:maxLen-3] + "..."
	}
	return s
}

func (m listModel) loadRecords() tea.Cmd {
	return func() tea.Msg {
		records, err := m.svc.ScanAll()
		if err != nil {
			logger.Log.Errorw("Failed to scan mods", zap.Error(err))
			return listErrorMsg(fmt.Sprintf("failed to scan mods: %v", err))
		}
		return recordsLoadedMsg{records: records}
	}
}

func (m listModel) toggleEnabled(record mods.ModRecord) tea.Cmd {
	return func() tea.Msg {
		if err := m.svc.SetEnabled(record.ID, !record.Enabled); err != nil {
			return listErrorMsg(err.Error())
		}
		if record.Enabled {
			return actionDoneMsg{message: fmt.Sprintf("Disabled %s", record.Name)}
		}
		return actionDoneMsg{message: fmt.Sprintf("Enabled %s", record.Name)}
	}
}

func (m listModel) toggleFavorite(record mods.ModRecord) tea.Cmd {
	return func() tea.Msg {
		metadata := record.Metadata
		metadata.IsFavorite = !metadata.IsFavorite
		metadata.UpdatedAt = time.Now().UTC()
		if _, err := m.svc.UpdateMetadata(record.ID, &metadata); err != nil {
			return listErrorMsg(err.Error())
		}
		if metadata.IsFavorite {
			return actionDoneMsg{message: fmt.Sprintf("Marked %s as favorite", record.Name)}
		}
		return actionDoneMsg{message: fmt.Sprintf("Unmarked %s", record.Name)}
	}
}

func (m listModel) deleteMod(record mods.ModRecord) tea.Cmd {
	return func() tea.Msg {
		if err := m.svc.Delete(record.ID); err != nil {
			return listErrorMsg(err.Error())
		}
		return actionDoneMsg{message: fmt.Sprintf("Deleted %s", record.Name)}
	}
}

func runList() {
	_, svc := bootstrap(".")

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := listModel{
		svc:     svc,
		loading: true,
		spinner: sp,
		width:   80,
		height:  24,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Log.Fatalw("Failed to run mod list", zap.Error(err))
	}
}
