// SPDX-FileCopyrightText: Copyright 2026 Skillshub Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"sort"
	"sync"

	"github.com/skillshub/skillshub-core/skillerr"
)

// Registry is an in-memory store of registration records keyed by id.
// It is safe for concurrent use.
type Registry struct {
	mu   sync.Mutex
	byID map[string]*Record
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{byID: make(map[string]*Record)}
}

// Register validates and stores the record. Registering an id that already
// exists replaces the prior record, last write wins.
func (r *Registry) Register(rec *Record) error {
	if rec == nil {
		return skillerr.New(skillerr.KindInvalidInput, "record is required")
	}
	if rec.ID == "" {
		return skillerr.New(skillerr.KindInvalidInput, "record id is required")
	}
	if err := rec.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[rec.ID] = rec
	return nil
}

// Get returns the record registered under id.
func (r *Registry) Get(id string) (*Record, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.byID[id]
	return rec, ok
}

// List returns all records ordered by id.
func (r *Registry) List() []*Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := make([]*Record, 0, len(r.byID))
	for _, rec := range r.byID {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records
}

// Len returns the number of registered records.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}
