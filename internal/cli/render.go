package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/okian/harmony/internal/domain/dataset"
	"github.com/okian/harmony/internal/domain/types"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69")).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
)

// renderTable draws headers and rows as a bordered table.
func renderTable(w io.Writer, headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)
	fmt.Fprintln(w, t.Render())
}

func renderTitle(w io.Writer, title string) {
	fmt.Fprintln(w, titleStyle.Render(title))
}

func renderWarning(w io.Writer, msg string) {
	fmt.Fprintln(w, warningStyle.Render("warning: "+msg))
}

func renderDataset(w io.Writer, t dataset.Table) {
	renderTable(w, t.Columns, t.Rows)
}

func renderRanking(w io.Writer, r types.TeamRanking) {
	rows := make([][]string, len(r.Teams))
	for i, t := range r.Teams {
		rows[i] = []string{
			strconv.Itoa(t.Rank), t.Team, formatScore(t.SkillScore), formatScore(t.SynergyScore), formatScore(t.TotalScore), t.Explanation,
		}
	}
	renderTitle(w, fmt.Sprintf("Top %d teams for %s", r.TopN, r.Task))
	renderTable(w, []string{"Rank", "Team", "Skill", "Synergy", "Total", "Explanation"}, rows)
}

func renderSolo(w io.Writer, task string, solo []types.SoloEntry) {
	rows := make([][]string, len(solo))
	for i, s := range solo {
		rows[i] = []string{strconv.Itoa(s.Rank), s.Employee, formatScore(s.Score)}
	}
	renderTitle(w, "Best solo performers for "+task)
	renderTable(w, []string{"Rank", "Employee", "Score"}, rows)
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
