package core

// defaultCategories is the fixed first-run category set: six income and six
// expense categories with stable short ids. The ids are part of the stored
// data contract; existing datasets reference them.
var defaultCategories = []Category{
	{ID: "1", Name: "Salary", Color: "#22c55e", Icon: "briefcase", Type: Income},
	{ID: "2", Name: "Freelance", Color: "#10b981", Icon: "laptop", Type: Income},
	{ID: "3", Name: "Investments", Color: "#14b8a6", Icon: "trending-up", Type: Income},
	{ID: "4", Name: "Rental", Color: "#0ea5e9", Icon: "key", Type: Income},
	{ID: "5", Name: "Gifts", Color: "#8b5cf6", Icon: "gift", Type: Income},
	{ID: "6", Name: "Other Income", Color: "#64748b", Icon: "plus-circle", Type: Income},
	{ID: "7", Name: "Food", Color: "#ef4444", Icon: "utensils", Type: Expense},
	{ID: "8", Name: "Transport", Color: "#f97316", Icon: "car", Type: Expense},
	{ID: "9", Name: "Housing", Color: "#eab308", Icon: "home", Type: Expense},
	{ID: "10", Name: "Health", Color: "#ec4899", Icon: "heart-pulse", Type: Expense},
	{ID: "11", Name: "Entertainment", Color: "#a855f7", Icon: "gamepad-2", Type: Expense},
	{ID: "12", Name: "Shopping", Color: "#3b82f6", Icon: "shopping-bag", Type: Expense},
}

// DefaultCategories returns a fresh copy of the seed category set.
func DefaultCategories() []Category {
	out := make([]Category, len(defaultCategories))
	copy(out, defaultCategories)
	return out
}

// SeedDataset is the dataset a store starts from when nothing has been
// persisted yet: the default categories and no transactions.
func SeedDataset() Dataset {
	return Dataset{
		Transactions: []Transaction{},
		Categories:   DefaultCategories(),
	}
}
