// Package storage maps application state onto key-value pairs, each value
// independently JSON encoded.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/Tiliavir/contractor-time-tracker/internal/kv"
	"github.com/Tiliavir/contractor-time-tracker/internal/model"
)

// Persisted keys.
const (
	KeyEntries    = "contractor-entries"
	KeyProfile    = "contractor-info"
	KeyCategories = "expense-categories"
	KeyTheme      = "theme"
	KeyInvoice    = "invoice-memo"
)

// Repository reads and writes typed state through a kv.Store.
type Repository struct {
	store  kv.Store
	logger *slog.Logger
}

// New wraps store. A nil logger falls back to slog.Default().
func New(store kv.Store, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{store: store, logger: logger}
}

// Close releases the underlying store.
func (r *Repository) Close() error {
	return r.store.Close()
}

// load decodes key into v. It reports false, leaving v untouched, when the
// key is missing or unreadable; a value that does not decode is backed up
// under <key>.corrupt. Load never fails: bad state reads as no prior data.
func (r *Repository) load(ctx context.Context, key string, v any) bool {
	data, err := r.store.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return false
	}
	if err != nil {
		r.logger.Warn("state unreadable, using defaults", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		backup := key + ".corrupt"
		if berr := r.store.Set(ctx, backup, data); berr != nil {
			r.logger.Error("could not back up corrupt state", "key", key, "error", berr)
		}
		r.logger.Warn("corrupt state, using defaults", "key", key, "backup", backup, "error", err)
		return false
	}
	return true
}

func (r *Repository) save(ctx context.Context, key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("storage error marshalling %s: %w", key, err)
	}
	if err := r.store.Set(ctx, key, data); err != nil {
		return err
	}
	r.logger.Debug("state saved", "key", key, "bytes", len(data))
	return nil
}

// LoadEntries returns the stored entries, or none.
func (r *Repository) LoadEntries(ctx context.Context) []model.Entry {
	var entries []model.Entry
	if !r.load(ctx, KeyEntries, &entries) || entries == nil {
		return []model.Entry{}
	}
	return entries
}

// SaveEntries replaces the stored entries.
func (r *Repository) SaveEntries(ctx context.Context, entries []model.Entry) error {
	if entries == nil {
		entries = []model.Entry{}
	}
	return r.save(ctx, KeyEntries, entries)
}

// LoadProfile returns the stored contractor profile, or an empty one.
func (r *Repository) LoadProfile(ctx context.Context) model.ContractorProfile {
	var p model.ContractorProfile
	if !r.load(ctx, KeyProfile, &p) {
		return model.ContractorProfile{}
	}
	return p
}

// SaveProfile replaces the stored contractor profile.
func (r *Repository) SaveProfile(ctx context.Context, p model.ContractorProfile) error {
	return r.save(ctx, KeyProfile, p)
}

// LoadCategories returns the stored expense categories, or the defaults.
func (r *Repository) LoadCategories(ctx context.Context) model.ExpenseCategorySet {
	var set model.ExpenseCategorySet
	if !r.load(ctx, KeyCategories, &set) || len(set) == 0 {
		return slices.Clone(model.ExpenseCategorySet(model.DefaultExpenseCategories))
	}
	return set
}

// SaveCategories replaces the stored expense categories.
func (r *Repository) SaveCategories(ctx context.Context, set model.ExpenseCategorySet) error {
	return r.save(ctx, KeyCategories, set)
}

// LoadTheme returns the stored theme, or the default.
func (r *Repository) LoadTheme(ctx context.Context) model.Theme {
	var s string
	if !r.load(ctx, KeyTheme, &s) {
		return model.DefaultTheme
	}
	theme, err := model.ParseTheme(s)
	if err != nil {
		r.logger.Warn("unknown stored theme, using default", "theme", s)
		return model.DefaultTheme
	}
	return theme
}

// SaveTheme stores the theme preference.
func (r *Repository) SaveTheme(ctx context.Context, theme model.Theme) error {
	return r.save(ctx, KeyTheme, string(theme))
}

// LoadInvoiceMemo returns the remembered invoice rates and terms.
func (r *Repository) LoadInvoiceMemo(ctx context.Context) model.InvoiceMemo {
	var m model.InvoiceMemo
	if !r.load(ctx, KeyInvoice, &m) {
		return model.InvoiceMemo{}
	}
	return m
}

// SaveInvoiceMemo remembers invoice rates and terms for the next invoice.
func (r *Repository) SaveInvoiceMemo(ctx context.Context, m model.InvoiceMemo) error {
	return r.save(ctx, KeyInvoice, m)
}
