// Package catalog holds the built-in category, status and month reference data.
package catalog

import (
	"time"

	"gelirgider/internal/models"
)

// Fallback metadata returned for unknown category ids.
const (
	fallbackName  = "Diğer"
	fallbackIcon  = "📌"
	fallbackColor = "#6B7280"
)

var incomeCategories = []models.Category{
	{ID: "medical", Name: "Tıbbi Hizmetler", Icon: "🏥", Color: "#10B981"},
	{ID: "dental", Name: "Diş Hizmetleri", Icon: "🦷", Color: "#8B5CF6"},
	{ID: "consulting", Name: "Danışmanlık", Icon: "💼", Color: "#3B82F6"},
	{ID: "salary", Name: "Maaş", Icon: "💰", Color: "#F59E0B"},
	{ID: "other_income", Name: "Diğer Gelir", Icon: "➕", Color: "#6B7280"},
}

var expenseCategories = []models.Category{
	{ID: "housing", Name: "Ev Giderleri", Icon: "🏠", Color: "#EF4444"},
	{ID: "software", Name: "Yazılım/Dijital", Icon: "💻", Color: "#8B5CF6"},
	{ID: "personal", Name: "Kişisel", Icon: "👤", Color: "#F59E0B"},
	{ID: "transport", Name: "Ulaşım", Icon: "🚗", Color: "#3B82F6"},
	{ID: "personnel", Name: "Personel", Icon: "👥", Color: "#EC4899"},
	{ID: "other_expense", Name: "Diğer Gider", Icon: "➖", Color: "#6B7280"},
}

func categoriesFor(t models.TransactionType) []models.Category {
	switch t {
	case models.TransactionTypeIncome:
		return incomeCategories
	case models.TransactionTypeExpense:
		return expenseCategories
	}
	return nil
}

// List returns the categories of the given type.
func List(t models.TransactionType) []models.Category {
	src := categoriesFor(t)
	out := make([]models.Category, len(src))
	for i, c := range src {
		out[i] = withType(c, t)
	}
	return out
}

// All returns income categories followed by expense categories.
func All() []models.Category {
	return append(List(models.TransactionTypeIncome), List(models.TransactionTypeExpense)...)
}

// Lookup returns the category registered under id for type t. Unknown ids
// get generic metadata with the id preserved.
func Lookup(id string, t models.TransactionType) models.Category {
	for _, c := range categoriesFor(t) {
		if c.ID == id {
			return withType(c, t)
		}
	}
	return models.Category{
		ID:    id,
		Name:  fallbackName,
		Type:  t,
		Icon:  fallbackIcon,
		Color: fallbackColor,
	}
}

// Has reports whether id is a built-in category of type t.
func Has(id string, t models.TransactionType) bool {
	for _, c := range categoriesFor(t) {
		if c.ID == id {
			return true
		}
	}
	return false
}

func withType(c models.Category, t models.TransactionType) models.Category {
	c.Type = t
	c.IsDefault = true
	return c
}

var statusLabels = map[models.TransactionStatus]string{
	models.StatusPending:   "Bekliyor",
	models.StatusReceived:  "Alındı",
	models.StatusPaid:      "Ödendi",
	models.StatusCancelled: "İptal",
}

// StatusLabel returns the display label of s, or s itself when unknown.
func StatusLabel(s models.TransactionStatus) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

var monthNames = [12]string{
	"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran",
	"Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık",
}

// MonthName returns the Turkish name of m.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNames[m-1]
}
