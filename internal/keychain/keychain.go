// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Passnode Authors

package keychain

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"

	"github.com/passnode/passnode/models"
)

// MasterSecret is the symmetric key derived from the master password. It is
// held only in process memory for the lifetime of one authenticated session
// and is never persisted or transmitted.
type MasterSecret []byte

// undefinedSalt is used when no storage credential is configured. Key
// material derived this way is still valid; it only ties to no account.
const undefinedSalt = "undefined"

// saltLen is how many leading characters of the credential form the salt.
const saltLen = 16

// keyChainService is the private implementation of [KeyChainService].
type keyChainService struct {
	// PBKDF2 tuning parameters. Stored in the struct so they can be
	// adjusted per deployment target.
	iterations int
	keyLen     int
}

// NewKeyChainService constructs a [KeyChainService] with the derivation
// parameters every Passnode client ships with:
//   - iterations: 1000
//   - key length: 32 bytes (256 bits)
//
// The iteration count is fixed: changing it would silently re-key existing
// vaults and make every previously uploaded snapshot undecryptable.
func NewKeyChainService() KeyChainService {
	return &keyChainService{
		iterations: 1000,
		keyLen:     32, // 256 bits
	}
}

// SaltFromCredential returns the key-derivation salt for a storage
// credential: its first 16 characters, the whole credential when it is
// shorter, or "undefined" when it is empty. Tying the salt to the credential
// binds key derivation to the account without a separately managed salt;
// rotating the credential therefore re-keys the vault.
func SaltFromCredential(credential string) string {
	if credential == "" {
		return undefinedSalt
	}
	if len(credential) > saltLen {
		return credential[:saltLen]
	}
	return credential
}

// DeriveKey implements [KeyChainService]. It runs PBKDF2 with HMAC-SHA256
// over the master password and the credential-derived salt. Derivation
// cannot fail for well-formed string inputs; an empty master password is
// accepted and yields a valid but weak key; rejecting it is the caller's
// policy decision.
func (k *keyChainService) DeriveKey(masterPassword, credential string) MasterSecret {
	salt := SaltFromCredential(credential)
	return pbkdf2.Key([]byte(masterPassword), []byte(salt), k.iterations, k.keyLen, sha256.New)
}

// EncryptField implements [KeyChainService]. It seals plain with
// AES-256-GCM keyed by secret and returns a self-describing ciphertext
// string: Base64 (standard encoding) of nonce (12 bytes) ‖ ciphertext.
// Returns an error if cipher creation or the random nonce read fails.
func (k *keyChainService) EncryptField(plain string, secret MasterSecret) (string, error) {
	gcm, err := newGCM(secret)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	// Prepend the nonce so the decryption side can split it out.
	blob := gcm.Seal(nonce, nonce, []byte(plain), nil)
	return base64.StdEncoding.EncodeToString(blob), nil
}

// DecryptField implements [KeyChainService]. Any failure (bad Base64, a
// truncated blob, a wrong secret with its authentication-tag mismatch)
// yields the empty string. The UI path relies on being able to attempt decryption
// without crashing when the key is stale, so this path must not return
// errors; use [KeyChainService.DecryptFieldStrict] to distinguish failures.
func (k *keyChainService) DecryptField(cipherText string, secret MasterSecret) string {
	plain, err := k.DecryptFieldStrict(cipherText, secret)
	if err != nil {
		return ""
	}
	return plain
}

// DecryptFieldStrict implements [KeyChainService]. It Base64-decodes the
// blob, splits out the nonce, and opens the ciphertext with AES-256-GCM.
// An authentication error here almost always means the wrong master
// password produced a wrong secret.
func (k *keyChainService) DecryptFieldStrict(cipherText string, secret MasterSecret) (string, error) {
	blob, err := base64.StdEncoding.DecodeString(cipherText)
	if err != nil {
		return "", fmt.Errorf("decode base64: %w", err)
	}

	gcm, err := newGCM(secret)
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(blob) < nonceSize {
		return "", fmt.Errorf("ciphertext too short")
	}
	nonce, ciphertext := blob[:nonceSize], blob[nonceSize:]

	plain, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("decrypt field: %w", err)
	}

	return string(plain), nil
}

// EncryptRecord implements [KeyChainService]. Every field is encrypted
// independently so a single field can later be displayed or matched without
// decrypting the whole record.
func (k *keyChainService) EncryptRecord(kind models.Kind, plain models.Record, secret MasterSecret) (models.Record, error) {
	out := make(models.Record, len(kind.Fields))
	for _, field := range kind.Fields {
		enc, err := k.EncryptField(plain[field], secret)
		if err != nil {
			return nil, fmt.Errorf("encrypt field %s: %w", field, err)
		}
		out[field] = enc
	}
	return out, nil
}

// DecryptRecord implements [KeyChainService]. Fields that fail to decrypt
// come back as empty strings, indistinguishable from genuinely empty fields.
func (k *keyChainService) DecryptRecord(kind models.Kind, cipherRecord models.Record, secret MasterSecret) models.Record {
	out := make(models.Record, len(kind.Fields))
	for _, field := range kind.Fields {
		out[field] = k.DecryptField(cipherRecord[field], secret)
	}
	return out
}

func newGCM(secret MasterSecret) (cipher.AEAD, error) {
	block, err := aes.NewCipher(secret)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}
