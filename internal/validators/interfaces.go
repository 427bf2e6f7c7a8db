// Package validators provides input validation for vault records before
// they are encrypted and stored.
package validators

import "github.com/passnode/passnode/models"

// Validator checks a plaintext record against the rules of its kind.
type Validator interface {
	// Validate returns a [*ValidationError] describing the first offending
	// field, or nil when the record is acceptable.
	Validate(kind models.Kind, rec models.Record) error
}
