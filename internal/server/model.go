package server

import "github.com/drakos74/regression/dataset"

// Request is the payload of a fit or an added variable analysis.
type Request struct {
	dataset.Frame
	// Tolerance overrides the configured singular value cutoff when positive.
	Tolerance float64 `json:"tolerance,omitempty"`
	// Column restricts the analysis to one column of the design, intercept included.
	Column *int `json:"column,omitempty"`
	// Store archives the dataset and its report under a new id.
	Store bool   `json:"store,omitempty"`
	Label string `json:"label,omitempty"`
}
