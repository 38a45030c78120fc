package dto

import (
	"finsight/internal/models"

	"github.com/shopspring/decimal"
)

// CategorizeRequest is the body of POST /categorize. Only the title is
// required; the remaining fields are accepted for parity with the expense
// record but do not influence classification.
type CategorizeRequest struct {
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Vendor      string          `json:"vendor"`
	Date        string          `json:"date"`
}

// CategorizeResponse mirrors models.ClassificationResult on the wire
type CategorizeResponse struct {
	Category     string                      `json:"category"`
	Confidence   float64                     `json:"confidence"`
	Alternatives []models.CategoryConfidence `json:"alternatives"`
}

// NewCategorizeResponse converts a classification result to its response form
func NewCategorizeResponse(result *models.ClassificationResult) CategorizeResponse {
	alternatives := result.Alternatives
	if alternatives == nil {
		alternatives = []models.CategoryConfidence{}
	}
	return CategorizeResponse{
		Category:     result.Category,
		Confidence:   result.Confidence,
		Alternatives: alternatives,
	}
}
