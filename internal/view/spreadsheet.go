package view

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"driftboard-client/internal/domain"

	"github.com/charmbracelet/lipgloss"
)

const (
	columnWidthSeq      = 7
	columnWidthName     = 48
	columnWidthState    = 12
	columnWidthPriority = 8
	columnWidthEstimate = 10
)

// Spreadsheet renders a project's issues as the spreadsheet layout: one
// row per issue, fixed columns, an editable or read-only affordance in the
// footer. It is a pure consumer; it never mutates the stores it reads.
type Spreadsheet struct {
	header   lipgloss.Style
	row      lipgloss.Style
	dim      lipgloss.Style
	urgent   lipgloss.Style
	footer   lipgloss.Style
	editable bool
}

// NewSpreadsheet creates a renderer. editable controls the affordance shown
// in the footer; callers decide it with a permission check.
func NewSpreadsheet(editable bool) *Spreadsheet {
	return &Spreadsheet{
		header:   lipgloss.NewStyle().Bold(true).Underline(true),
		row:      lipgloss.NewStyle(),
		dim:      lipgloss.NewStyle().Faint(true),
		urgent:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		footer:   lipgloss.NewStyle().Faint(true),
		editable: editable,
	}
}

// Render produces the full table for the given rows. points resolves
// estimate-point IDs to display values; nil is fine.
func (s *Spreadsheet) Render(issues []domain.Issue, points map[string]string) string {
	var b strings.Builder

	b.WriteString(s.header.Render(
		pad("#", columnWidthSeq)+
			pad("ISSUE", columnWidthName)+
			pad("STATE", columnWidthState)+
			pad("PRIORITY", columnWidthPriority)+
			pad("ESTIMATE", columnWidthEstimate)) + "\n")

	for _, issue := range issues {
		b.WriteString(s.renderRow(issue, points) + "\n")
	}

	if len(issues) == 0 {
		b.WriteString(s.dim.Render("no issues") + "\n")
	}

	if s.editable {
		b.WriteString(s.footer.Render("editable: changes commit to the server"))
	} else {
		b.WriteString(s.footer.Render("read-only: your role cannot edit these issues"))
	}

	return b.String()
}

func (s *Spreadsheet) renderRow(issue domain.Issue, points map[string]string) string {
	style := s.row
	if issue.Priority == domain.PriorityUrgent {
		style = s.urgent
	}

	estimate := "-"
	if issue.EstimatePointID != "" {
		if value, ok := points[issue.EstimatePointID]; ok {
			estimate = value
		} else {
			estimate = "?"
		}
	}

	return style.Render(
		pad(fmt.Sprintf("%d", issue.SequenceID), columnWidthSeq) +
			pad(truncate(issue.Name, columnWidthName-2), columnWidthName) +
			pad(issue.State, columnWidthState) +
			pad(string(issue.Priority), columnWidthPriority) +
			pad(estimate, columnWidthEstimate))
}

// pad measures runes, like truncate, so multibyte names keep the columns
// aligned.
func pad(value string, width int) string {
	gap := width - utf8.RuneCountInString(value)
	if gap <= 0 {
		return value
	}
	return value + strings.Repeat(" ", gap)
}

func truncate(value string, width int) string {
	runes := []rune(value)
	if len(runes) <= width {
		return value
	}
	return string(runes[:width-1]) + "…"
}
