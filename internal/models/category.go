package models

// Category labels an expense. The set is closed and supplied at configuration time.
type Category struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Icon        string `json:"icon"`
}

// DefaultCategories is the category set used when none is configured.
var DefaultCategories = []Category{
	{ID: "food", DisplayName: "Food", Icon: "🍔"},
	{ID: "rent", DisplayName: "Rent", Icon: "🏠"},
	{ID: "transport", DisplayName: "Transport", Icon: "🚗"},
	{ID: "entertainment", DisplayName: "Entertainment", Icon: "🎭"},
	{ID: "shopping", DisplayName: "Shopping", Icon: "🛍️"},
	{ID: "utilities", DisplayName: "Utilities", Icon: "💡"},
	{ID: "travel", DisplayName: "Travel", Icon: "✈️"},
	{ID: "other", DisplayName: "Other", Icon: "📦"},
}
