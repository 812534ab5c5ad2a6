package models

// Category is display metadata for a transaction category.
type Category struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      TransactionType `json:"type"`
	Icon      string          `json:"icon"`
	Color     string          `json:"color"`
	UserID    string          `json:"user_id,omitempty"`
	IsDefault bool            `json:"is_default"`
}
