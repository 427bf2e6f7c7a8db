package validators

import (
	"regexp"
	"strings"

	"github.com/passnode/passnode/models"
)

var (
	cvvPattern    = regexp.MustCompile(`^\d{3,4}$`)
	expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])\s*/\s*\d{2}(\d{2})?$`)
)

// RecordValidator validates plaintext vault records. The designated
// uniqueness field of every kind is mandatory; card records additionally get
// format checks on number, CVV and expiry date. All other fields may stay
// empty: an entry with just a name is a legitimate placeholder.
type RecordValidator struct {
}

func NewRecordValidator() Validator {
	return &RecordValidator{}
}

// Validate implements [Validator].
func (v *RecordValidator) Validate(kind models.Kind, rec models.Record) error {
	if strings.TrimSpace(rec.Key(kind)) == "" {
		return &ValidationError{Field: kind.KeyField, Reason: "is required"}
	}

	if kind.Name == models.Cards.Name {
		return v.validateCard(rec)
	}
	return nil
}

func (v *RecordValidator) validateCard(rec models.Record) error {
	if number := rec["cardnumber"]; number != "" {
		digits := strings.Map(dropSpacing, number)
		if len(digits) < 12 || len(digits) > 19 || strings.ContainsFunc(digits, notDigit) {
			return &ValidationError{Field: "cardnumber", Reason: "must be 12-19 digits"}
		}
	}

	if cvv := rec["cvv"]; cvv != "" && !cvvPattern.MatchString(cvv) {
		return &ValidationError{Field: "cvv", Reason: "must be 3 or 4 digits"}
	}

	if expiry := rec["expirydate"]; expiry != "" && !expiryPattern.MatchString(expiry) {
		return &ValidationError{Field: "expirydate", Reason: "must look like MM/YY"}
	}

	return nil
}

func dropSpacing(r rune) rune {
	if r == ' ' || r == '-' {
		return -1
	}
	return r
}

func notDigit(r rune) bool {
	return r < '0' || r > '9'
}
