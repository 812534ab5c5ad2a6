package store

import (
	"encoding/json"
	"fmt"

	"gelirgider/internal/models"
)

// DefaultKey is the namespace key the ledger document is persisted under.
const DefaultKey = "gelir-gider-storage"

// documentVersion is the schema version written with every document.
const documentVersion = 0

// State is the persisted part of the ledger. Filters, selected period and any
// other view state are deliberately absent.
type State struct {
	Transactions   []models.Transaction   `json:"transactions"`
	RecurringItems []models.RecurringItem `json:"recurringItems"`
	ExchangeRates  models.ExchangeRates   `json:"exchangeRates"`
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := State{
		Transactions:   make([]models.Transaction, len(s.Transactions)),
		RecurringItems: make([]models.RecurringItem, len(s.RecurringItems)),
		ExchangeRates:  s.ExchangeRates.Clone(),
	}
	copy(out.Transactions, s.Transactions)
	for i, item := range s.RecurringItems {
		if item.DayOfMonth != nil {
			day := *item.DayOfMonth
			item.DayOfMonth = &day
		}
		out.RecurringItems[i] = item
	}
	return out
}

// document is the envelope written to the persister.
type document struct {
	State   State `json:"state"`
	Version int   `json:"version"`
}

// EncodeState serializes s into the persisted document format.
func EncodeState(s State) ([]byte, error) {
	if s.Transactions == nil {
		s.Transactions = []models.Transaction{}
	}
	if s.RecurringItems == nil {
		s.RecurringItems = []models.RecurringItem{}
	}
	data, err := json.Marshal(document{State: s, Version: documentVersion})
	if err != nil {
		return nil, fmt.Errorf("encode ledger state: %w", err)
	}
	return data, nil
}

// DecodeState parses a persisted document.
func DecodeState(data []byte) (State, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return State{}, fmt.Errorf("decode ledger state: %w", err)
	}
	return doc.State, nil
}
