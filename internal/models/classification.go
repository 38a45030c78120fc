package models

// CategoryConfidence pairs a category label with its predicted probability
type CategoryConfidence struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

// ClassificationResult is the classifier output for a single expense.
// Alternatives hold the next labels by probability descending, each with
// confidence above 0.10, at most two, and never include the top category.
type ClassificationResult struct {
	Category     string               `json:"category"`
	Confidence   float64              `json:"confidence"`
	Alternatives []CategoryConfidence `json:"alternatives"`
}

// TrainingExample is one labeled (title, description, category) sample
type TrainingExample struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}
