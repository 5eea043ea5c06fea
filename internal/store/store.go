// Package store owns the durable financial dataset: transactions and
// categories behind a blob persistence port. Every mutation rewrites the
// whole blob before returning, so a call that came back succeeded on disk.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"fincontrol/internal/blob"
	"fincontrol/internal/core"
	"fincontrol/internal/log"
)

var (
	// ErrNotFound signals an update or delete aimed at an absent id.
	ErrNotFound = errors.New("record not found")

	// ErrCategoryInUse aborts category deletion while transactions still
	// reference the category. This is the one hard constraint the store
	// enforces.
	ErrCategoryInUse = errors.New("category is referenced by transactions")

	// ErrInvalidSnapshot signals an import payload that cannot be parsed
	// or lacks one of the two collections. The stored dataset is left
	// untouched.
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)

type Store struct {
	mu    sync.Mutex
	blob  blob.Store
	log   *log.Logger
	now   func() time.Time
	newID func() string
}

type Option func(*Store)

// WithClock overrides the timestamp source, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDFunc overrides the id generator, for deterministic tests.
func WithIDFunc(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.log = l }
}

func New(b blob.Store, opts ...Option) *Store {
	s := &Store{
		blob:  b,
		log:   log.Nop().WithComponent(log.ComponentStore),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the current dataset. A missing blob yields the seed dataset;
// so does a blob that no longer parses — corruption is logged and swallowed,
// never surfaced to the caller. The seed is not persisted here; the first
// mutation writes it.
func (s *Store) Load(ctx context.Context) (core.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ds, err := s.load(ctx)
	if err != nil {
		return core.Dataset{}, err
	}
	return ds.Clone(), nil
}

// Transactions returns the stored transactions in append order.
func (s *Store) Transactions(ctx context.Context) ([]core.Transaction, error) {
	ds, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return ds.Transactions, nil
}

// Categories returns the stored category set.
func (s *Store) Categories(ctx context.Context) ([]core.Category, error) {
	ds, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return ds.Categories, nil
}

// AddTransaction appends a transaction built from the draft, assigns a fresh
// id and sets both timestamps to the same instant. The draft is taken as
// given: amount sign, category existence and date are deliberately not
// validated, since views tolerate orphaned category references.
func (s *Store) AddTransaction(ctx context.Context, draft core.TransactionDraft) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, err := s.load(ctx)
	if err != nil {
		return core.Transaction{}, err
	}

	now := s.now().UTC()
	tx := core.Transaction{
		ID:          s.newID(),
		Description: draft.Description,
		Amount:      draft.Amount,
		CategoryID:  draft.CategoryID,
		Date:        draft.Date,
		Type:        draft.Type,
		Status:      draft.Status,
		Notes:       draft.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	ds.Transactions = append(ds.Transactions, tx)

	if err := s.persist(ctx, ds); err != nil {
		return core.Transaction{}, err
	}
	s.log.Debug("transaction added",
		log.FieldOperation, log.OpCreate,
		log.FieldTransactionID, tx.ID,
		log.FieldAmountCents, tx.Amount.Cents)
	return tx, nil
}

// UpdateTransaction merges the patch into the transaction with the given id
// and refreshes UpdatedAt. Returns ErrNotFound when the id is absent.
func (s *Store) UpdateTransaction(ctx context.Context, id string, patch core.TransactionPatch) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, err := s.load(ctx)
	if err != nil {
		return core.Transaction{}, err
	}

	for i, tx := range ds.Transactions {
		if tx.ID != id {
			continue
		}
		merged := tx.Apply(patch)
		merged.UpdatedAt = s.now().UTC()
		ds.Transactions[i] = merged
		if err := s.persist(ctx, ds); err != nil {
			return core.Transaction{}, err
		}
		s.log.Debug("transaction updated",
			log.FieldOperation, log.OpUpdate,
			log.FieldTransactionID, id)
		return merged, nil
	}
	return core.Transaction{}, fmt.Errorf("transaction %s: %w", id, ErrNotFound)
}

// DeleteTransaction removes the transaction with the given id. The boolean
// reports whether anything was removed; an absent id is not an error.
func (s *Store) DeleteTransaction(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	for i, tx := range ds.Transactions {
		if tx.ID != id {
			continue
		}
		ds.Transactions = append(ds.Transactions[:i], ds.Transactions[i+1:]...)
		if err := s.persist(ctx, ds); err != nil {
			return false, err
		}
		s.log.Debug("transaction deleted",
			log.FieldOperation, log.OpDelete,
			log.FieldTransactionID, id)
		return true, nil
	}
	return false, nil
}

// AddCategory appends a category with a fresh id.
func (s *Store) AddCategory(ctx context.Context, draft core.CategoryDraft) (core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, err := s.load(ctx)
	if err != nil {
		return core.Category{}, err
	}

	cat := core.Category{
		ID:    s.newID(),
		Name:  draft.Name,
		Color: draft.Color,
		Icon:  draft.Icon,
		Type:  draft.Type,
	}
	ds.Categories = append(ds.Categories, cat)

	if err := s.persist(ctx, ds); err != nil {
		return core.Category{}, err
	}
	s.log.Debug("category added",
		log.FieldOperation, log.OpCreate,
		log.FieldCategoryID, cat.ID)
	return cat, nil
}

// UpdateCategory merges the patch into the category with the given id.
// Returns ErrNotFound when the id is absent.
func (s *Store) UpdateCategory(ctx context.Context, id string, patch core.CategoryPatch) (core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, err := s.load(ctx)
	if err != nil {
		return core.Category{}, err
	}

	for i, cat := range ds.Categories {
		if cat.ID != id {
			continue
		}
		merged := cat.Apply(patch)
		ds.Categories[i] = merged
		if err := s.persist(ctx, ds); err != nil {
			return core.Category{}, err
		}
		s.log.Debug("category updated",
			log.FieldOperation, log.OpUpdate,
			log.FieldCategoryID, id)
		return merged, nil
	}
	return core.Category{}, fmt.Errorf("category %s: %w", id, ErrNotFound)
}

// DeleteCategory removes the category with the given id. It fails with
// ErrCategoryInUse while any transaction references the category; an absent
// id reports (false, nil).
func (s *Store) DeleteCategory(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	for _, tx := range ds.Transactions {
		if tx.CategoryID == id {
			return false, fmt.Errorf("category %s: %w", id, ErrCategoryInUse)
		}
	}

	for i, cat := range ds.Categories {
		if cat.ID != id {
			continue
		}
		ds.Categories = append(ds.Categories[:i], ds.Categories[i+1:]...)
		if err := s.persist(ctx, ds); err != nil {
			return false, err
		}
		s.log.Debug("category deleted",
			log.FieldOperation, log.OpDelete,
			log.FieldCategoryID, id)
		return true, nil
	}
	return false, nil
}

// ExportSnapshot serializes the whole dataset as pretty-printed JSON. The
// output round-trips through ImportSnapshot.
func (s *Store) ExportSnapshot(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

// ImportSnapshot wholesale-replaces the stored dataset with the parsed
// payload. The payload must parse and carry both collections; individual
// record shapes are not validated. On failure the stored dataset is left
// exactly as it was.
func (s *Store) ImportSnapshot(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var snap struct {
		Transactions *[]core.Transaction `json:"transactions"`
		Categories   *[]core.Category    `json:"categories"`
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if snap.Transactions == nil || snap.Categories == nil {
		return fmt.Errorf("%w: missing transactions or categories", ErrInvalidSnapshot)
	}

	ds := core.Dataset{
		Transactions: *snap.Transactions,
		Categories:   *snap.Categories,
	}
	if err := s.persist(ctx, ds); err != nil {
		return err
	}
	s.log.Info("snapshot imported",
		log.FieldOperation, log.OpImport,
		log.FieldCount, len(ds.Transactions))
	return nil
}

// ClearAll erases the persisted dataset. The next Load re-seeds.
func (s *Store) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.blob.Delete(ctx); err != nil {
		return fmt.Errorf("clear dataset: %w", err)
	}
	s.log.Info("dataset cleared", log.FieldOperation, log.OpClear)
	return nil
}

func (s *Store) load(ctx context.Context) (core.Dataset, error) {
	data, ok, err := s.blob.Get(ctx)
	if err != nil {
		return core.Dataset{}, fmt.Errorf("load dataset: %w", err)
	}
	if !ok {
		return core.SeedDataset(), nil
	}
	var ds core.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		s.log.Warn("stored dataset does not parse, falling back to seed",
			log.FieldOperation, log.OpLoad,
			log.FieldError, err.Error())
		return core.SeedDataset(), nil
	}
	if ds.Transactions == nil {
		ds.Transactions = []core.Transaction{}
	}
	if ds.Categories == nil {
		ds.Categories = []core.Category{}
	}
	return ds, nil
}

func (s *Store) persist(ctx context.Context, ds core.Dataset) error {
	data, err := json.Marshal(ds)
	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}
	if err := s.blob.Put(ctx, data); err != nil {
		return fmt.Errorf("persist dataset: %w", err)
	}
	return nil
}
