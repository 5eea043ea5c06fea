package core

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTransactionApply(t *testing.T) {
	base := Transaction{
		ID:          "t1",
		Description: "groceries",
		Amount:      Cents(5000),
		CategoryID:  "7",
		Date:        NewDate(2025, time.March, 10),
		Type:        Expense,
		Status:      Paid,
		CreatedAt:   time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
	}

	t.Run("empty patch changes nothing", func(t *testing.T) {
		if got := base.Apply(TransactionPatch{}); got != base {
			t.Fatalf("expected unchanged, got %+v", got)
		}
	})

	t.Run("set fields are applied, others kept", func(t *testing.T) {
		desc := "weekly groceries"
		amount := Cents(6200)
		status := Pending
		got := base.Apply(TransactionPatch{
			Description: &desc,
			Amount:      &amount,
			Status:      &status,
		})
		if got.Description != desc || got.Amount != amount || got.Status != status {
			t.Fatalf("patch not applied: %+v", got)
		}
		if got.ID != base.ID || got.CategoryID != base.CategoryID || got.Type != base.Type {
			t.Fatalf("untouched fields changed: %+v", got)
		}
		if !got.CreatedAt.Equal(base.CreatedAt) || !got.UpdatedAt.Equal(base.UpdatedAt) {
			t.Fatalf("Apply must not touch timestamps")
		}
	})

	t.Run("zero values can be set explicitly", func(t *testing.T) {
		empty := ""
		got := base.Apply(TransactionPatch{Notes: &empty, CategoryID: &empty})
		if got.Notes != "" || got.CategoryID != "" {
			t.Fatalf("explicit empty not applied: %+v", got)
		}
	})
}

func TestCategoryApply(t *testing.T) {
	base := Category{ID: "c1", Name: "Food", Color: "#ef4444", Icon: "utensils", Type: Expense}
	name := "Dining"
	typ := Income
	got := base.Apply(CategoryPatch{Name: &name, Type: &typ})
	if got.Name != "Dining" || got.Type != Income {
		t.Fatalf("patch not applied: %+v", got)
	}
	if got.Color != base.Color || got.Icon != base.Icon || got.ID != base.ID {
		t.Fatalf("untouched fields changed: %+v", got)
	}
}

func TestDatasetClone(t *testing.T) {
	ds := SeedDataset()
	ds.Transactions = append(ds.Transactions, Transaction{ID: "t1"})

	clone := ds.Clone()
	clone.Transactions[0].ID = "mutated"
	clone.Categories[0].Name = "mutated"

	if ds.Transactions[0].ID != "t1" || ds.Categories[0].Name == "mutated" {
		t.Fatalf("clone aliases the original")
	}
}

func TestSeedDataset(t *testing.T) {
	ds := SeedDataset()
	if len(ds.Transactions) != 0 {
		t.Fatalf("seed should have no transactions")
	}
	if len(ds.Categories) != 12 {
		t.Fatalf("expected 12 seed categories, got %d", len(ds.Categories))
	}

	var income, expense int
	seen := map[string]bool{}
	for _, c := range ds.Categories {
		if seen[c.ID] {
			t.Fatalf("duplicate seed id %s", c.ID)
		}
		seen[c.ID] = true
		switch c.Type {
		case Income:
			income++
		case Expense:
			expense++
		default:
			t.Fatalf("category %s has invalid type %q", c.ID, c.Type)
		}
		if c.Name == "" || c.Color == "" || c.Icon == "" {
			t.Fatalf("category %s has empty display fields", c.ID)
		}
	}
	if income != 6 || expense != 6 {
		t.Fatalf("expected 6 income and 6 expense categories, got %d/%d", income, expense)
	}

	// Two calls must not share backing storage.
	other := SeedDataset()
	other.Categories[0].Name = "mutated"
	if SeedDataset().Categories[0].Name == "mutated" {
		t.Fatalf("seed categories are shared between calls")
	}
}

func TestTransactionJSONShape(t *testing.T) {
	tx := Transaction{
		ID:          "t1",
		Description: "salary",
		Amount:      Cents(100000),
		CategoryID:  "1",
		Date:        NewDate(2025, time.March, 3),
		Type:        Income,
		Status:      Paid,
		CreatedAt:   time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC),
	}
	data, err := json.Marshal(tx)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	if raw["amount"] != float64(1000) {
		t.Fatalf("amount should be a JSON number in units, got %v", raw["amount"])
	}
	if raw["date"] != "2025-03-03" {
		t.Fatalf("date should be ISO-8601, got %v", raw["date"])
	}
	if _, ok := raw["notes"]; ok {
		t.Fatalf("empty notes should be omitted")
	}

	var back Transaction
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Amount != tx.Amount || !back.Date.Equal(tx.Date.Time) || back.ID != tx.ID {
		t.Fatalf("round trip mismatch: %+v", back)
	}
}
