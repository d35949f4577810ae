package view

import (
	"strings"
	"testing"
	"unicode/utf8"

	"driftboard-client/internal/domain"

	"github.com/stretchr/testify/assert"
)

func sampleIssues() []domain.Issue {
	return []domain.Issue{
		{ID: "i1", SequenceID: 101, Name: "Fix login redirect", State: "started", Priority: domain.PriorityUrgent, EstimatePointID: "ep1"},
		{ID: "i2", SequenceID: 102, Name: "Polish empty states", State: "backlog", Priority: domain.PriorityLow},
	}
}

func TestSpreadsheet_RenderRows(t *testing.T) {
	out := NewSpreadsheet(true).Render(sampleIssues(), map[string]string{"ep1": "5"})

	assert.Contains(t, out, "Fix login redirect")
	assert.Contains(t, out, "Polish empty states")
	assert.Contains(t, out, "101")
	assert.Contains(t, out, "urgent")
	assert.Contains(t, out, "editable")
	assert.NotContains(t, out, "read-only")

	// Estimate column resolves the point ID through the map
	lines := strings.Split(out, "\n")
	assert.Contains(t, lines[1], "5")
}

func TestSpreadsheet_ReadOnlyFooter(t *testing.T) {
	out := NewSpreadsheet(false).Render(sampleIssues(), nil)
	assert.Contains(t, out, "read-only")
}

func TestSpreadsheet_UnresolvedEstimateShowsPlaceholder(t *testing.T) {
	out := NewSpreadsheet(false).Render(sampleIssues(), nil)
	assert.Contains(t, out, "?")
}

func TestSpreadsheet_EmptyList(t *testing.T) {
	out := NewSpreadsheet(false).Render(nil, nil)
	assert.Contains(t, out, "no issues")
}

func TestSpreadsheet_TruncatesLongNames(t *testing.T) {
	long := strings.Repeat("x", 200)
	out := NewSpreadsheet(false).Render([]domain.Issue{
		{ID: "i1", SequenceID: 1, Name: long, State: "backlog", Priority: domain.PriorityNone},
	}, nil)

	assert.NotContains(t, out, long)
	assert.Contains(t, out, "…")
}

func TestSpreadsheet_AlignsMultibyteNames(t *testing.T) {
	out := NewSpreadsheet(false).Render([]domain.Issue{
		{ID: "i1", SequenceID: 1, Name: "plain ascii name", State: "backlog", Priority: domain.PriorityNone},
		{ID: "i2", SequenceID: 2, Name: "żółć über estimación", State: "backlog", Priority: domain.PriorityNone},
	}, nil)

	// Fixed-width columns: every row occupies the same number of cells
	// regardless of byte length.
	lines := strings.Split(out, "\n")
	ascii := utf8.RuneCountInString(lines[1])
	multibyte := utf8.RuneCountInString(lines[2])
	assert.Equal(t, ascii, multibyte)
}

func TestEstimateList_RenderSortsByKey(t *testing.T) {
	out := NewEstimateList().Render(&domain.Estimate{
		ID:   "e1",
		Name: "Fibonacci",
		Points: []domain.EstimatePoint{
			{ID: "ep2", Key: 1, Value: "2"},
			{ID: "ep1", Key: 0, Value: "1"},
		},
	})

	assert.Contains(t, out, "Fibonacci")
	first := strings.Index(out, "(ep1)")
	second := strings.Index(out, "(ep2)")
	assert.Greater(t, second, first)
}
