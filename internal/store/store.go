// Package store owns the ledger state: transactions, recurring items and the
// exchange rate table.
//
// All mutations go through a Store. Writes are serialized by a single lock,
// so a reader never observes a partially applied mutation, and the rate
// cascade in UpdateExchangeRate runs over a consistent collection. After each
// mutation the state is saved to the configured Persister and a change event
// is published. Both are best effort: failures are logged, never returned.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"gelirgider/internal/currency"
	"gelirgider/internal/events"
	"gelirgider/internal/logger"
	"gelirgider/internal/models"
	"gelirgider/internal/recurring"
	"gelirgider/internal/uuid"
)

// Store is the single writer of ledger state.
type Store struct {
	mu    sync.RWMutex
	state State

	persister Persister
	key       string
	publisher events.Publisher
	now       func() time.Time
	newID     func() string
	log       *zap.SugaredLogger
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator sets the function used to assign record ids.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithPublisher sets the destination of change events.
func WithPublisher(p events.Publisher) Option {
	return func(s *Store) { s.publisher = p }
}

// WithKey overrides the persistence namespace key.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithLogger sets the logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *Store) { s.log = l }
}

// WithState sets the initial state, used when nothing has been persisted yet.
func WithState(st State) Option {
	return func(s *Store) { s.state = st.Clone() }
}

// New creates an in-memory store with the default rate table. Nothing is
// persisted unless a Persister is attached through Open.
func New(opts ...Option) *Store {
	s := &Store{
		state:     State{ExchangeRates: currency.DefaultRates()},
		key:       DefaultKey,
		publisher: events.NopPublisher{},
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Named("store")
	}
	s.state.ExchangeRates = pinBaseRate(s.state.ExchangeRates)
	return s
}

// Open creates a store backed by p. Previously persisted state replaces the
// initial state; when nothing is stored yet the initial state is written.
func Open(ctx context.Context, p Persister, opts ...Option) (*Store, error) {
	s := New(opts...)
	s.persister = p

	data, found, err := p.Load(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("load ledger state: %w", err)
	}
	if !found {
		s.log.Infow("no persisted ledger state, writing initial state", "key", s.key)
		s.mu.Lock()
		s.save(ctx)
		s.mu.Unlock()
		return s, nil
	}

	st, err := DecodeState(data)
	if err != nil {
		return nil, err
	}
	st.ExchangeRates = pinBaseRate(st.ExchangeRates)
	s.state = st
	s.log.Infow("loaded ledger state",
		"key", s.key,
		"transactions", len(st.Transactions),
		"recurring_items", len(st.RecurringItems),
	)
	return s, nil
}

// pinBaseRate makes sure the base currency rate is present and equal to 1.
func pinBaseRate(rates models.ExchangeRates) models.ExchangeRates {
	if rates == nil {
		rates = currency.DefaultRates()
	}
	rates[models.BaseCurrency] = decimal.NewFromInt(1)
	return rates
}

// mutate runs fn under the write lock. When fn reports a change the state is
// saved before the lock is released, then the returned events are published.
func (s *Store) mutate(ctx context.Context, fn func(st *State) (bool, []events.Event)) {
	s.mu.Lock()
	changed, evs := fn(&s.state)
	if changed {
		s.save(ctx)
	}
	s.mu.Unlock()

	for _, e := range evs {
		if err := s.publisher.Publish(ctx, e); err != nil {
			s.log.Warnw("failed to publish event", "type", e.Type, "entity_id", e.EntityID, "error", err)
		}
	}
}

// save writes the current state. The caller must hold the write lock.
func (s *Store) save(ctx context.Context) {
	if s.persister == nil {
		return
	}
	data, err := EncodeState(s.state)
	if err != nil {
		s.log.Errorw("failed to encode ledger state", "error", err)
		return
	}
	if err := s.persister.Save(ctx, s.key, data); err != nil {
		s.log.Errorw("failed to persist ledger state", "key", s.key, "error", err)
	}
}

// normalize recomputes the rate and base amount of tx from the live table.
func normalize(tx *models.Transaction, rates models.ExchangeRates) {
	tx.ExchangeRate = currency.RateFor(tx.Currency, rates)
	tx.AmountTRY = tx.Amount.Mul(tx.ExchangeRate)
}

// AddTransaction records a new transaction from form data. A recurring form
// with a frequency also creates the matching recurring item, and the new
// transaction is linked to it.
func (s *Store) AddTransaction(ctx context.Context, form models.TransactionFormData) models.Transaction {
	var created models.Transaction
	s.mutate(ctx, func(st *State) (bool, []events.Event) {
		now := s.now()
		tx := models.Transaction{
			Type:            form.Type,
			CompanyName:     form.CompanyName,
			Amount:          form.Amount.Decimal,
			Currency:        form.Currency,
			CategoryID:      form.CategoryID,
			TransactionDate: form.TransactionDate,
			Status:          form.Status,
			IsRecurring:     form.IsRecurring,
			Notes:           form.Notes,
		}
		if tx.Status == "" {
			tx.Status = models.StatusPending
		}
		tx.Stamp(s.newID(), now)
		normalize(&tx, st.ExchangeRates)

		var evs []events.Event
		if form.IsRecurring && form.Frequency != "" {
			day := form.DayOfMonth
			if day == nil {
				if d, ok := models.ParseDate(form.TransactionDate); ok {
					v := d.Day()
					day = &v
				}
			}
			active := true
			item := s.newRecurringItem(models.RecurringItemInput{
				Type:        form.Type,
				CompanyName: form.CompanyName,
				Amount:      form.Amount,
				Currency:    form.Currency,
				CategoryID:  form.CategoryID,
				Frequency:   form.Frequency,
				DayOfMonth:  day,
				StartDate:   form.TransactionDate,
				IsActive:    &active,
				Notes:       form.Notes,
			}, now)
			tx.RecurringID = item.ID
			st.RecurringItems = append(st.RecurringItems, item)
			evs = append(evs, events.New(events.RecurringCreated, item.ID, item))
		}

		st.Transactions = append(st.Transactions, tx)
		created = tx
		return true, append([]events.Event{events.New(events.TransactionCreated, tx.ID, tx)}, evs...)
	})
	return created
}

// UpdateTransaction merges patch into the transaction with the given id and
// renormalizes it against the current rate table, even when neither amount
// nor currency changed. It reports false, changing nothing, when the id is
// unknown.
func (s *Store) UpdateTransaction(ctx context.Context, id string, patch models.TransactionPatch) (models.Transaction, bool) {
	var updated models.Transaction
	var found bool
	s.mutate(ctx, func(st *State) (bool, []events.Event) {
		i := indexOfTransaction(st.Transactions, id)
		if i < 0 {
			return false, nil
		}
		tx := &st.Transactions[i]
		patch.Apply(tx)
		normalize(tx, st.ExchangeRates)
		tx.Touch(s.now())

		updated, found = *tx, true
		return true, []events.Event{events.New(events.TransactionUpdated, tx.ID, *tx)}
	})
	return updated, found
}

// DeleteTransaction removes the transaction with the given id. Deleting an
// unknown id is a no-op that reports false. Recurring items that produced the
// transaction are kept.
func (s *Store) DeleteTransaction(ctx context.Context, id string) bool {
	var found bool
	s.mutate(ctx, func(st *State) (bool, []events.Event) {
		i := indexOfTransaction(st.Transactions, id)
		if i < 0 {
			return false, nil
		}
		st.Transactions = append(st.Transactions[:i], st.Transactions[i+1:]...)
		found = true
		return true, []events.Event{events.New(events.TransactionDeleted, id, nil)}
	})
	return found
}

func (s *Store) newRecurringItem(in models.RecurringItemInput, now time.Time) models.RecurringItem {
	item := models.RecurringItem{
		Type:        in.Type,
		CompanyName: in.CompanyName,
		Amount:      in.Amount.Decimal,
		Currency:    in.Currency,
		CategoryID:  in.CategoryID,
		Frequency:   in.Frequency,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		IsActive:    in.IsActive == nil || *in.IsActive,
		Notes:       in.Notes,
	}
	if in.DayOfMonth != nil {
		day := *in.DayOfMonth
		item.DayOfMonth = &day
	}
	item.Stamp(s.newID(), now)
	return item
}

// AddRecurringItem creates a recurring template. Items are active unless the
// input says otherwise.
func (s *Store) AddRecurringItem(ctx context.Context, in models.RecurringItemInput) models.RecurringItem {
	var created models.RecurringItem
	s.mutate(ctx, func(st *State) (bool, []events.Event) {
		item := s.newRecurringItem(in, s.now())
		st.RecurringItems = append(st.RecurringItems, item)
		created = item
		return true, []events.Event{events.New(events.RecurringCreated, item.ID, item)}
	})
	return created
}

// UpdateRecurringItem merges patch into the item with the given id.
func (s *Store) UpdateRecurringItem(ctx context.Context, id string, patch models.RecurringItemPatch) (models.RecurringItem, bool) {
	var updated models.RecurringItem
	var found bool
	s.mutate(ctx, func(st *State) (bool, []events.Event) {
		i := indexOfRecurring(st.RecurringItems, id)
		if i < 0 {
			return false, nil
		}
		item := &st.RecurringItems[i]
		patch.Apply(item)
		item.Touch(s.now())

		updated, found = *item, true
		return true, []events.Event{events.New(events.RecurringUpdated, item.ID, *item)}
	})
	return updated, found
}

// DeleteRecurringItem removes the item with the given id. Transactions it
// generated keep their recurring_id.
func (s *Store) DeleteRecurringItem(ctx context.Context, id string) bool {
	var found bool
	s.mutate(ctx, func(st *State) (bool, []events.Event) {
		i := indexOfRecurring(st.RecurringItems, id)
		if i < 0 {
			return false, nil
		}
		st.RecurringItems = append(st.RecurringItems[:i], st.RecurringItems[i+1:]...)
		found = true
		return true, []events.Event{events.New(events.RecurringDeleted, id, nil)}
	})
	return found
}

// ToggleRecurringActive flips the active flag of the item with the given id.
func (s *Store) ToggleRecurringActive(ctx context.Context, id string) (models.RecurringItem, bool) {
	var toggled models.RecurringItem
	var found bool
	s.mutate(ctx, func(st *State) (bool, []events.Event) {
		i := indexOfRecurring(st.RecurringItems, id)
		if i < 0 {
			return false, nil
		}
		item := &st.RecurringItems[i]
		item.IsActive = !item.IsActive
		item.Touch(s.now())

		toggled, found = *item, true
		return true, []events.Event{events.New(events.RecurringToggled, item.ID, map[string]bool{"is_active": item.IsActive})}
	})
	return toggled, found
}

// UpdateExchangeRate sets the rate of c and, in the same critical section,
// renormalizes every transaction in c. Transactions in other currencies are
// untouched. The base currency is fixed at 1; changing it reports false.
func (s *Store) UpdateExchangeRate(ctx context.Context, c models.Currency, rate decimal.Decimal) bool {
	if c == models.BaseCurrency {
		return false
	}
	s.mutate(ctx, func(st *State) (bool, []events.Event) {
		recomputed := applyRate(st, c, rate)
		return true, []events.Event{events.New(events.RatesUpdated, string(c), map[string]interface{}{
			"currency":     c,
			"rate":         rate,
			"recalculated": recomputed,
		})}
	})
	return true
}

// ResetExchangeRates restores the default rate table, cascading every change.
func (s *Store) ResetExchangeRates(ctx context.Context) {
	s.mutate(ctx, func(st *State) (bool, []events.Event) {
		defaults := currency.DefaultRates()
		for _, c := range models.Currencies {
			if c == models.BaseCurrency {
				continue
			}
			applyRate(st, c, defaults[c])
		}
		return true, []events.Event{events.New(events.RatesUpdated, "", st.ExchangeRates.Clone())}
	})
}

// applyRate is the cascading recompute pass. The stored rate is applied as
// given, so a zero rate zeroes the base amounts of its transactions. It
// returns the number of transactions recomputed.
func applyRate(st *State, c models.Currency, rate decimal.Decimal) int {
	if st.ExchangeRates == nil {
		st.ExchangeRates = currency.DefaultRates()
	}
	st.ExchangeRates[c] = rate

	n := 0
	for i := range st.Transactions {
		tx := &st.Transactions[i]
		if tx.Currency != c {
			continue
		}
		tx.ExchangeRate = rate
		tx.AmountTRY = tx.Amount.Mul(rate)
		n++
	}
	return n
}

// GenerateRecurring materializes the occurrences of every active recurring
// item that fall in the given month and have no transaction yet. Generated
// transactions start out pending. Running it again for the same month
// creates nothing.
func (s *Store) GenerateRecurring(ctx context.Context, year int, month time.Month) []models.Transaction {
	var generated []models.Transaction
	s.mutate(ctx, func(st *State) (bool, []events.Event) {
		now := s.now()
		for i := range st.RecurringItems {
			item := &st.RecurringItems[i]
			schedule, dates := recurring.Due(item, year, month)
			for _, due := range dates {
				if hasOccurrence(st.Transactions, item.ID, due, schedule) {
					continue
				}
				tx := materialize(item, due, st.ExchangeRates)
				tx.Stamp(s.newID(), now)
				st.Transactions = append(st.Transactions, tx)
				generated = append(generated, tx)

				if date := tx.TransactionDate; date > item.LastGenerated {
					item.LastGenerated = date
				}
			}
		}
		if len(generated) == 0 {
			return false, nil
		}

		s.log.Infow("generated recurring transactions",
			"year", year,
			"month", int(month),
			"count", len(generated),
		)
		ids := make([]string, len(generated))
		for i, tx := range generated {
			ids[i] = tx.ID
		}
		return true, []events.Event{events.New(events.RecurringGenerated, "", map[string]interface{}{
			"year":            year,
			"month":           int(month),
			"transaction_ids": ids,
		})}
	})
	return generated
}

func materialize(item *models.RecurringItem, due time.Time, rates models.ExchangeRates) models.Transaction {
	tx := models.Transaction{
		Type:            item.Type,
		CompanyName:     item.CompanyName,
		Amount:          item.Amount,
		Currency:        item.Currency,
		CategoryID:      item.CategoryID,
		TransactionDate: models.FormatDate(due),
		Status:          models.StatusPending,
		IsRecurring:     true,
		RecurringID:     item.ID,
		Notes:           item.Notes,
	}
	normalize(&tx, rates)
	return tx
}

// hasOccurrence scans txs for a transaction of recurringID covering due.
func hasOccurrence(txs []models.Transaction, recurringID string, due time.Time, schedule recurring.Schedule) bool {
	for i := range txs {
		if txs[i].RecurringID != recurringID {
			continue
		}
		d, ok := models.ParseDate(txs[i].TransactionDate)
		if ok && schedule.SamePeriod(d, due) {
			return true
		}
	}
	return false
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Transaction returns the transaction with the given id.
func (s *Store) Transaction(id string) (models.Transaction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := indexOfTransaction(s.state.Transactions, id)
	if i < 0 {
		return models.Transaction{}, false
	}
	return s.state.Transactions[i], true
}

// RecurringItem returns the recurring item with the given id.
func (s *Store) RecurringItem(id string) (models.RecurringItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := indexOfRecurring(s.state.RecurringItems, id)
	if i < 0 {
		return models.RecurringItem{}, false
	}
	item := s.state.RecurringItems[i]
	if item.DayOfMonth != nil {
		day := *item.DayOfMonth
		item.DayOfMonth = &day
	}
	return item, true
}

// ExchangeRates returns a copy of the rate table.
func (s *Store) ExchangeRates() models.ExchangeRates {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.ExchangeRates.Clone()
}

func indexOfTransaction(txs []models.Transaction, id string) int {
	for i := range txs {
		if txs[i].ID == id {
			return i
		}
	}
	return -1
}

func indexOfRecurring(items []models.RecurringItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
