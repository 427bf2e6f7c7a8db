package models

// Record is a record-shaped container of named string fields. The same type
// carries both representations of a record: plaintext (all fields
// human-readable, held only transiently in memory) and encrypted (every
// field independently replaced by an authenticated ciphertext string, the
// only form ever persisted or transmitted).
//
// Encryption is applied per field, not per record, so a single field can be
// displayed or matched without touching the others.
type Record map[string]string

// NewRecord builds a record for kind from values given in kind.Fields order.
// Missing trailing values default to the empty string.
func NewRecord(kind Kind, values ...string) Record {
	r := make(Record, len(kind.Fields))
	for i, f := range kind.Fields {
		if i < len(values) {
			r[f] = values[i]
		} else {
			r[f] = ""
		}
	}
	return r
}

// Key returns the record's value on the kind's designated uniqueness field.
func (r Record) Key(kind Kind) string {
	return r[kind.KeyField]
}

// Clone returns an independent copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
