// Package ledger holds the application state and the entry store
// operations. Every mutation updates memory first and then saves; a failed
// save leaves the in-memory state valid for the rest of the session.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/Tiliavir/contractor-time-tracker/internal/model"
	"github.com/Tiliavir/contractor-time-tracker/internal/storage"
	"github.com/Tiliavir/contractor-time-tracker/internal/timecalc"
)

var (
	ErrEntryNotFound   = errors.New("entry not found")
	ErrUnknownCategory = errors.New("unknown expense category")
	ErrNotPersisted    = errors.New("changes could not be saved")
)

// State is everything the application keeps between runs.
type State struct {
	Entries    []model.Entry
	Profile    model.ContractorProfile
	Categories model.ExpenseCategorySet
	Theme      model.Theme
	Memo       model.InvoiceMemo
}

// Ledger owns the State and its persistence.
type Ledger struct {
	repo   *storage.Repository
	logger *slog.Logger
	state  State
}

// Open loads the persisted state. Missing or corrupt values load as
// defaults, so Open itself cannot fail.
func Open(ctx context.Context, repo *storage.Repository, logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Ledger{
		repo:   repo,
		logger: logger,
		state: State{
			Entries:    repo.LoadEntries(ctx),
			Profile:    repo.LoadProfile(ctx),
			Categories: repo.LoadCategories(ctx),
			Theme:      repo.LoadTheme(ctx),
			Memo:       repo.LoadInvoiceMemo(ctx),
		},
	}
	logger.Debug("state loaded", "entries", len(l.state.Entries))
	return l
}

// State returns a copy of the current state.
func (l *Ledger) State() State {
	s := l.state
	s.Entries = slices.Clone(l.state.Entries)
	s.Categories = slices.Clone(l.state.Categories)
	return s
}

// Entries returns the entries in store order.
func (l *Ledger) Entries() []model.Entry {
	return slices.Clone(l.state.Entries)
}

// Entry returns the entry with the given id.
func (l *Ledger) Entry(id string) (model.Entry, error) {
	i := l.index(id)
	if i < 0 {
		return model.Entry{}, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	return l.state.Entries[i], nil
}

// Select returns the entries with the given ids, in store order.
func (l *Ledger) Select(ids []string) ([]model.Entry, error) {
	for _, id := range ids {
		if l.index(id) < 0 {
			return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
		}
	}
	var out []model.Entry
	for _, e := range l.state.Entries {
		if slices.Contains(ids, e.ID) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (l *Ledger) index(id string) int {
	return slices.IndexFunc(l.state.Entries, func(e model.Entry) bool { return e.ID == id })
}

// Validate checks an entry against the form rules.
func (l *Ledger) Validate(e model.Entry) error {
	if err := validateFields(e); err != nil {
		return err
	}
	if e.ExpenseCategory != "" && !l.state.Categories.Contains(e.ExpenseCategory) {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, e.ExpenseCategory)
	}
	return nil
}

func validateFields(e model.Entry) error {
	if e.Date == "" {
		return model.ErrMissingDate
	}
	if _, err := timecalc.ParseDate(e.Date); err != nil {
		return fmt.Errorf("%w: %q", model.ErrInvalidDate, e.Date)
	}
	for _, n := range e.Numbers() {
		if n.IsNegative() {
			return model.ErrNegativeValue
		}
	}
	return nil
}

// AddEntry validates e, assigns its id and timestamp, and appends it.
func (l *Ledger) AddEntry(ctx context.Context, e model.Entry, now time.Time) (model.Entry, error) {
	if err := l.Validate(e); err != nil {
		return model.Entry{}, err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return model.Entry{}, fmt.Errorf("generating entry id: %w", err)
	}
	e.ID = id.String()
	e.Timestamp = now.UTC()

	l.state.Entries = append(l.state.Entries, e)
	l.logger.Info("entry added", "id", e.ID, "date", e.Date, "project", e.ProjectName)
	return e, l.saveEntries(ctx)
}

// UpdateEntry replaces the entry with the given id in place. The id and
// creation timestamp are kept.
func (l *Ledger) UpdateEntry(ctx context.Context, id string, e model.Entry) (model.Entry, error) {
	i := l.index(id)
	if i < 0 {
		return model.Entry{}, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	if err := l.Validate(e); err != nil {
		return model.Entry{}, err
	}
	e.ID = id
	e.Timestamp = l.state.Entries[i].Timestamp

	l.state.Entries[i] = e
	l.logger.Info("entry updated", "id", id)
	return e, l.saveEntries(ctx)
}

// DeleteEntry removes the entry with the given id.
func (l *Ledger) DeleteEntry(ctx context.Context, id string) error {
	i := l.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	l.state.Entries = slices.Delete(l.state.Entries, i, i+1)
	l.logger.Info("entry deleted", "id", id)
	return l.saveEntries(ctx)
}

// ImportEntries merges entries by id: known ids are replaced in place,
// new ones appended. Entries without an id get a fresh one, and unknown
// expense categories join the vocabulary. Nothing is changed when any
// entry fails validation.
func (l *Ledger) ImportEntries(ctx context.Context, entries []model.Entry, now time.Time) (added, replaced int, err error) {
	for i, e := range entries {
		if err := validateFields(e); err != nil {
			return 0, 0, fmt.Errorf("entry %d: %w", i+1, err)
		}
	}
	categoriesChanged := false
	for _, e := range entries {
		if e.ExpenseCategory == "" {
			continue
		}
		if ok, _ := l.state.Categories.Add(e.ExpenseCategory); ok {
			categoriesChanged = true
		}
	}
	var categoriesErr error
	if categoriesChanged {
		categoriesErr = l.persist("categories", l.repo.SaveCategories(ctx, l.state.Categories))
	}
	for _, e := range entries {
		if e.ID == "" {
			id, err := uuid.NewV7()
			if err != nil {
				return added, replaced, fmt.Errorf("generating entry id: %w", err)
			}
			e.ID = id.String()
		}
		if e.Timestamp.IsZero() {
			e.Timestamp = now.UTC()
		}
		if i := l.index(e.ID); i >= 0 {
			l.state.Entries[i] = e
			replaced++
			continue
		}
		l.state.Entries = append(l.state.Entries, e)
		added++
	}
	l.logger.Info("entries imported", "added", added, "replaced", replaced)
	return added, replaced, errors.Join(categoriesErr, l.saveEntries(ctx))
}

// SetProfile replaces the contractor profile.
func (l *Ledger) SetProfile(ctx context.Context, p model.ContractorProfile) error {
	for _, n := range p.DefaultRates {
		if n.IsNegative() {
			return model.ErrNegativeValue
		}
	}
	l.state.Profile = p
	return l.persist("profile", l.repo.SaveProfile(ctx, p))
}

// Profile returns the contractor profile.
func (l *Ledger) Profile() model.ContractorProfile { return l.state.Profile }

// Categories returns the expense category vocabulary.
func (l *Ledger) Categories() model.ExpenseCategorySet {
	return slices.Clone(l.state.Categories)
}

// AddCategory appends a label to the vocabulary and reports whether it
// was new.
func (l *Ledger) AddCategory(ctx context.Context, label string) (bool, error) {
	added, err := l.state.Categories.Add(label)
	if err != nil || !added {
		return added, err
	}
	return true, l.persist("categories", l.repo.SaveCategories(ctx, l.state.Categories))
}

// Theme returns the display preference.
func (l *Ledger) Theme() model.Theme { return l.state.Theme }

// SetTheme stores the display preference.
func (l *Ledger) SetTheme(ctx context.Context, theme model.Theme) error {
	l.state.Theme = theme
	return l.persist("theme", l.repo.SaveTheme(ctx, theme))
}

// Memo returns the remembered invoice rates and terms.
func (l *Ledger) Memo() model.InvoiceMemo { return l.state.Memo }

// RememberInvoice keeps the draft's rates and terms for the next invoice.
func (l *Ledger) RememberInvoice(ctx context.Context, draft model.InvoiceDraft) error {
	l.state.Memo = draft.Memo()
	return l.persist("invoice memo", l.repo.SaveInvoiceMemo(ctx, l.state.Memo))
}

// DraftRates seeds an invoice rate table: explicit overrides first, then
// the remembered memo, then the profile defaults.
func (l *Ledger) DraftRates(overrides model.RateTable) model.RateTable {
	return overrides.Merge(l.state.Memo.Rates.Merge(l.state.Profile.DefaultRates))
}

func (l *Ledger) saveEntries(ctx context.Context) error {
	return l.persist("entries", l.repo.SaveEntries(ctx, l.state.Entries))
}

func (l *Ledger) persist(what string, err error) error {
	if err == nil {
		return nil
	}
	l.logger.Error("save failed, keeping changes in memory", "what", what, "error", err)
	return fmt.Errorf("%w: %s: %w", ErrNotPersisted, what, err)
}
