// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Passnode Authors

// Package vault implements the in-memory collection of encrypted records for
// one vault kind. The collection enforces uniqueness on the kind's designated
// field and exposes add/remove/find operations over decrypted views; records
// themselves are stored encrypted at all times.
package vault

import (
	"encoding/json"
	"fmt"

	"github.com/passnode/passnode/internal/keychain"
	"github.com/passnode/passnode/models"
)

// Collection is an ordered sequence of encrypted records of one kind.
// Ordering is insertion order as received from the last pull or local add and
// carries no meaning beyond display stability.
//
// Collection is not safe for concurrent use; the sync engine serializes
// access to it.
type Collection struct {
	kind    models.Kind
	crypto  keychain.KeyChainService
	records []models.Record
}

// NewCollection constructs an empty collection for kind.
func NewCollection(kind models.Kind, crypto keychain.KeyChainService) *Collection {
	return &Collection{kind: kind, crypto: crypto}
}

// FromRecords constructs a collection over already-encrypted records, e.g.
// from a pulled snapshot. The slice is not copied; the caller hands over
// ownership.
func FromRecords(kind models.Kind, crypto keychain.KeyChainService, records []models.Record) *Collection {
	return &Collection{kind: kind, crypto: crypto, records: records}
}

// ParseSnapshot deserializes the persisted remote format (a JSON array of
// encrypted records) into a collection. A JSON null body counts as an empty
// collection; anything that does not parse as an array of records is
// reported as [ErrMalformedSnapshot].
func ParseSnapshot(kind models.Kind, crypto keychain.KeyChainService, data []byte) (*Collection, error) {
	var records []models.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedSnapshot, err)
	}
	return FromRecords(kind, crypto, records), nil
}

// Kind returns the vault kind this collection holds.
func (c *Collection) Kind() models.Kind {
	return c.kind
}

// Len returns the number of encrypted records in the collection.
func (c *Collection) Len() int {
	return len(c.records)
}

// Records returns a copy of the encrypted records in order.
func (c *Collection) Records() []models.Record {
	out := make([]models.Record, len(c.records))
	for i, r := range c.records {
		out[i] = r.Clone()
	}
	return out
}

// Snapshot serializes the full collection into the persisted remote format.
// An empty collection serializes to "[]", never to null, so a pulled empty
// snapshot stays distinguishable from a missing one.
func (c *Collection) Snapshot() ([]byte, error) {
	if c.records == nil {
		return []byte("[]"), nil
	}
	data, err := json.Marshal(c.records)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

// Add encrypts plain and appends it. Before appending, every existing
// record's designated field is decrypted and compared (case-sensitive exact
// match) against plain's; a match fails with [ErrDuplicateKey] and leaves
// the collection unchanged.
func (c *Collection) Add(plain models.Record, secret keychain.MasterSecret) error {
	key := plain.Key(c.kind)
	for _, rec := range c.records {
		if c.crypto.DecryptField(rec[c.kind.KeyField], secret) == key {
			return ErrDuplicateKey
		}
	}

	enc, err := c.crypto.EncryptRecord(c.kind, plain, secret)
	if err != nil {
		return fmt.Errorf("encrypt record: %w", err)
	}
	c.records = append(c.records, enc)
	return nil
}

// Remove deletes every record whose decrypted designated field equals key
// and returns how many were removed. More than one match is possible only if
// the uniqueness invariant was already violated by an externally injected
// snapshot; all matches are removed and the caller should treat the count as
// a data-integrity warning.
func (c *Collection) Remove(key string, secret keychain.MasterSecret) int {
	kept := c.records[:0]
	removed := 0
	for _, rec := range c.records {
		if c.crypto.DecryptField(rec[c.kind.KeyField], secret) == key {
			removed++
			continue
		}
		kept = append(kept, rec)
	}
	c.records = kept
	return removed
}

// RemoveRecord removes by a target record that may be either plaintext or
// encrypted. The target's designated field is decrypted first; when that
// yields nothing the raw value is taken as the plaintext key.
func (c *Collection) RemoveRecord(target models.Record, secret keychain.MasterSecret) int {
	key := c.crypto.DecryptField(target[c.kind.KeyField], secret)
	if key == "" {
		key = target.Key(c.kind)
	}
	return c.Remove(key, secret)
}

// List lazily decrypts all records for display, preserving order.
func (c *Collection) List(secret keychain.MasterSecret) []models.Record {
	out := make([]models.Record, 0, len(c.records))
	for _, rec := range c.records {
		out = append(out, c.crypto.DecryptRecord(c.kind, rec, secret))
	}
	return out
}

// Find returns the decrypted record whose designated field equals key.
func (c *Collection) Find(key string, secret keychain.MasterSecret) (models.Record, bool) {
	for _, rec := range c.records {
		if c.crypto.DecryptField(rec[c.kind.KeyField], secret) == key {
			return c.crypto.DecryptRecord(c.kind, rec, secret), true
		}
	}
	return nil, false
}
