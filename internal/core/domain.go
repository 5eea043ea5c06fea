package core

import "time"

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"

	Paid    Status = "paid"
	Pending Status = "pending"
)

type (
	// TransactionType classifies a transaction (or the category it belongs
	// to) as money coming in or going out. The amount itself is always a
	// non-negative magnitude; the type carries the sign.
	TransactionType string

	// Status distinguishes realized transactions from scheduled ones.
	// Only paid transactions count toward aggregates.
	Status string

	Transaction struct {
		ID          string          `json:"id"`
		Description string          `json:"description"`
		Amount      Money           `json:"amount"`
		CategoryID  string          `json:"categoryId"`
		Date        Date            `json:"date"`
		Type        TransactionType `json:"type"`
		Status      Status          `json:"status"`
		Notes       string          `json:"notes,omitempty"`
		CreatedAt   time.Time       `json:"createdAt"`
		UpdatedAt   time.Time       `json:"updatedAt"`
	}

	Category struct {
		ID    string          `json:"id"`
		Name  string          `json:"name"`
		Color string          `json:"color"`
		Icon  string          `json:"icon"`
		Type  TransactionType `json:"type"`
	}

	// Dataset is the aggregate root: every transaction in append order plus
	// the category set. It is the unit of persistence and of import/export.
	Dataset struct {
		Transactions []Transaction `json:"transactions"`
		Categories   []Category    `json:"categories"`
	}

	// TransactionDraft carries the caller-supplied fields of a new
	// transaction. ID and timestamps are assigned by the store.
	TransactionDraft struct {
		Description string
		Amount      Money
		CategoryID  string
		Date        Date
		Type        TransactionType
		Status      Status
		Notes       string
	}

	CategoryDraft struct {
		Name  string
		Color string
		Icon  string
		Type  TransactionType
	}

	// TransactionPatch is a partial update: only non-nil fields are applied.
	TransactionPatch struct {
		Description *string
		Amount      *Money
		CategoryID  *string
		Date        *Date
		Type        *TransactionType
		Status      *Status
		Notes       *string
	}

	CategoryPatch struct {
		Name  *string
		Color *string
		Icon  *string
		Type  *TransactionType
	}
)

func (t TransactionType) IsValid() bool {
	return t == Income || t == Expense
}

func (s Status) IsValid() bool {
	return s == Paid || s == Pending
}

// Apply merges the set fields of the patch into a copy of the transaction.
// Timestamps are left alone; refreshing UpdatedAt is the store's job.
func (t Transaction) Apply(p TransactionPatch) Transaction {
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.CategoryID != nil {
		t.CategoryID = *p.CategoryID
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Notes != nil {
		t.Notes = *p.Notes
	}
	return t
}

// Apply merges the set fields of the patch into a copy of the category.
func (c Category) Apply(p CategoryPatch) Category {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	if p.Icon != nil {
		c.Icon = *p.Icon
	}
	if p.Type != nil {
		c.Type = *p.Type
	}
	return c
}

// Clone returns an independent copy of the dataset so callers can hold on to
// the result without aliasing the store's working state.
func (d Dataset) Clone() Dataset {
	out := Dataset{
		Transactions: make([]Transaction, len(d.Transactions)),
		Categories:   make([]Category, len(d.Categories)),
	}
	copy(out.Transactions, d.Transactions)
	copy(out.Categories, d.Categories)
	return out
}
