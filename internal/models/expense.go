package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense categories for business spending. The slice order in Categories
// is the canonical label order and doubles as the tie-break order for
// classifier alternatives.
const (
	CategorySalary         = "Salary"
	CategoryRent           = "Rent"
	CategoryUtilities      = "Utilities"
	CategoryMarketing      = "Marketing"
	CategorySoftware       = "Software"
	CategoryHardware       = "Hardware"
	CategoryTravel         = "Travel"
	CategoryOfficeSupplies = "Office Supplies"
	CategoryInsurance      = "Insurance"
	CategoryLegal          = "Legal"
	CategoryTraining       = "Training"
	CategoryEntertainment  = "Entertainment"
	CategoryMaintenance    = "Maintenance"
	CategoryOther          = "Other"
)

// Categories returns all valid expense categories in canonical order,
// ending with the catch-all.
func Categories() []string {
	return []string{
		CategorySalary,
		CategoryRent,
		CategoryUtilities,
		CategoryMarketing,
		CategorySoftware,
		CategoryHardware,
		CategoryTravel,
		CategoryOfficeSupplies,
		CategoryInsurance,
		CategoryLegal,
		CategoryTraining,
		CategoryEntertainment,
		CategoryMaintenance,
		CategoryOther,
	}
}

// IsValidCategory checks if a category string is one of the known labels
func IsValidCategory(category string) bool {
	for _, valid := range Categories() {
		if category == valid {
			return true
		}
	}
	return false
}

// Expense is an immutable input record describing a single business expense.
// Category is either caller-supplied ground truth or produced by the
// classifier; Vendor and Date are optional.
type Expense struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Vendor      string          `json:"vendor,omitempty"`
	Date        *time.Time      `json:"date,omitempty"`
	Category    string          `json:"category,omitempty"`
}

// AmountFloat returns the expense amount as float64 for feature construction
func (e Expense) AmountFloat() float64 {
	f, _ := e.Amount.Float64()
	return f
}

// CategoryOrDefault returns the expense category, falling back to Unknown
// when none was supplied. The default table for optional fields is explicit:
// missing category -> "Unknown", missing date -> zero calendar features.
func (e Expense) CategoryOrDefault() string {
	if e.Category == "" {
		return "Unknown"
	}
	return e.Category
}
