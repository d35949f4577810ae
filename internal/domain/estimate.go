package domain

// =====================================================
// Estimate Entities
// =====================================================

// EstimatePoint is one value of a project's estimate scale. Key orders the
// points within the scale; Value is the display text ("1", "2", "XL", ...).
type EstimatePoint struct {
	ID         string `json:"id" validate:"required"`
	EstimateID string `json:"estimate" validate:"required"`
	ProjectID  string `json:"project_id"`
	Key        int    `json:"key"`
	Value      string `json:"value" validate:"required"`
}

// Estimate is a project's estimate scale with its points.
type Estimate struct {
	ID     string          `json:"id" validate:"required"`
	Name   string          `json:"name"`
	Type   string          `json:"type"`
	Points []EstimatePoint `json:"points"`
}
