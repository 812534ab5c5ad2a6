package catalog

import (
	"testing"
	"time"

	"gelirgider/internal/models"
)

func TestLookup(t *testing.T) {
	t.Run("known_income_category", func(t *testing.T) {
		c := Lookup("salary", models.TransactionTypeIncome)
		if c.Name != "Maaş" || c.Icon != "💰" || c.Color != "#F59E0B" {
			t.Errorf("unexpected category %+v", c)
		}
		if c.Type != models.TransactionTypeIncome || !c.IsDefault {
			t.Errorf("expected default income category, got %+v", c)
		}
	})

	t.Run("scoped_by_type", func(t *testing.T) {
		c := Lookup("salary", models.TransactionTypeExpense)
		if c.Name != "Diğer" {
			t.Errorf("expected fallback for salary as expense, got %q", c.Name)
		}
	})

	t.Run("unknown_id_preserved", func(t *testing.T) {
		c := Lookup("crypto", models.TransactionTypeExpense)
		if c.ID != "crypto" {
			t.Errorf("expected id to be preserved, got %q", c.ID)
		}
		if c.Icon != "📌" || c.Color != "#6B7280" {
			t.Errorf("unexpected fallback metadata %+v", c)
		}
		if c.IsDefault {
			t.Error("fallback should not be marked default")
		}
	})
}

func TestList(t *testing.T) {
	if got := len(List(models.TransactionTypeIncome)); got != 5 {
		t.Errorf("expected 5 income categories, got %d", got)
	}
	if got := len(List(models.TransactionTypeExpense)); got != 6 {
		t.Errorf("expected 6 expense categories, got %d", got)
	}
	if got := len(All()); got != 11 {
		t.Errorf("expected 11 categories, got %d", got)
	}

	list := List(models.TransactionTypeIncome)
	list[0].Name = "mutated"
	if Lookup(list[0].ID, models.TransactionTypeIncome).Name == "mutated" {
		t.Error("List should return a copy")
	}
}

func TestStatusLabel(t *testing.T) {
	if StatusLabel(models.StatusPaid) != "Ödendi" {
		t.Errorf("unexpected label %q", StatusLabel(models.StatusPaid))
	}
	if StatusLabel("refunded") != "refunded" {
		t.Errorf("unknown status should echo its value")
	}
}

func TestMonthName(t *testing.T) {
	if MonthName(time.February) != "Şubat" {
		t.Errorf("unexpected month name %q", MonthName(time.February))
	}
	if MonthName(0) != "" {
		t.Error("expected empty name for invalid month")
	}
}
