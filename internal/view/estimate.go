package view

import (
	"fmt"
	"sort"
	"strings"

	"driftboard-client/internal/domain"

	"github.com/charmbracelet/lipgloss"
)

// EstimateList renders a project's estimate scale, points sorted by key.
type EstimateList struct {
	title lipgloss.Style
	point lipgloss.Style
	id    lipgloss.Style
}

// NewEstimateList creates the estimate renderer.
func NewEstimateList() *EstimateList {
	return &EstimateList{
		title: lipgloss.NewStyle().Bold(true),
		point: lipgloss.NewStyle(),
		id:    lipgloss.NewStyle().Faint(true),
	}
}

// Render produces the point listing for one estimate scale.
func (e *EstimateList) Render(estimate *domain.Estimate) string {
	var b strings.Builder

	name := estimate.Name
	if name == "" {
		name = estimate.ID
	}
	b.WriteString(e.title.Render(name) + "\n")

	points := make([]domain.EstimatePoint, len(estimate.Points))
	copy(points, estimate.Points)
	sort.Slice(points, func(i, j int) bool { return points[i].Key < points[j].Key })

	for _, p := range points {
		b.WriteString(fmt.Sprintf("%s %s\n",
			e.point.Render(pad(p.Value, 8)),
			e.id.Render("("+p.ID+")")))
	}

	return b.String()
}
