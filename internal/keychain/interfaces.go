package keychain

//go:generate mockgen -source=interfaces.go -destination=../mock/keychain_service_mock.go -package=mock

import "github.com/passnode/passnode/models"

// KeyChainService owns all client-side cryptography of the zero-knowledge
// scheme. It knows nothing about the network, the remote store, or sessions.
//
// Scheme:
//
//	secret = DeriveKey(masterPassword, credential)   (once per session)
//	cipher = EncryptRecord(kind, plain, secret)      (before any persist)
//	plain  = DecryptRecord(kind, cipher, secret)     (for display only)
type KeyChainService interface {
	// DeriveKey derives the session MasterSecret from the master password and
	// the storage credential. The salt is the first 16 characters of the
	// credential; with no credential configured the literal string
	// "undefined" is used instead. Deterministic and infallible: the same
	// inputs always yield the same secret.
	DeriveKey(masterPassword, credential string) MasterSecret

	// EncryptField encrypts a single plaintext field value to a
	// self-describing ciphertext string. Returns an error only on nonce
	// generation failure.
	EncryptField(plain string, secret MasterSecret) (string, error)

	// DecryptField reverses EncryptField. It never fails: a wrong secret or
	// corrupted ciphertext yields the empty string, indistinguishable from a
	// genuinely empty field.
	DecryptField(cipher string, secret MasterSecret) string

	// DecryptFieldStrict is the checked variant of DecryptField. It reports
	// decoding and authentication-tag failures instead of masking them.
	DecryptFieldStrict(cipher string, secret MasterSecret) (string, error)

	// EncryptRecord encrypts every field of a record independently.
	EncryptRecord(kind models.Kind, plain models.Record, secret MasterSecret) (models.Record, error)

	// DecryptRecord decrypts every field of a record independently. Like
	// DecryptField it never fails; undecryptable fields come back empty.
	DecryptRecord(kind models.Kind, cipher models.Record, secret MasterSecret) models.Record
}
