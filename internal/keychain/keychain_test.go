package keychain

import (
	"bytes"
	"testing"

	"github.com/passnode/passnode/models"
)

func TestDeriveKey_DeterministicForSameInputs(t *testing.T) {
	svc := NewKeyChainService()

	password := "correct horse battery staple"
	credential := "abcd1234abcd1234-rest-of-token"

	k1 := svc.DeriveKey(password, credential)
	k2 := svc.DeriveKey(password, credential)

	if len(k1) != 32 {
		t.Fatalf("secret length = %d, want 32", len(k1))
	}
	if !bytes.Equal(k1, k2) {
		t.Fatalf("expected secrets to match for same password+credential")
	}
}

func TestDeriveKey_DifferentCredentialProducesDifferentSecret(t *testing.T) {
	svc := NewKeyChainService()

	password := "same password"

	k1 := svc.DeriveKey(password, "1111111111111111")
	k2 := svc.DeriveKey(password, "2222222222222222")

	if bytes.Equal(k1, k2) {
		t.Fatalf("expected different secrets for different credentials")
	}
}

func TestDeriveKey_SaltIsFirstSixteenCharacters(t *testing.T) {
	svc := NewKeyChainService()

	// Two credentials sharing their first 16 characters must yield the same
	// secret: only the prefix participates in derivation.
	k1 := svc.DeriveKey("pw", "abcd1234abcd1234-SUFFIX-ONE")
	k2 := svc.DeriveKey("pw", "abcd1234abcd1234-SUFFIX-TWO")

	if !bytes.Equal(k1, k2) {
		t.Fatalf("expected secrets to match when credential prefixes match")
	}
}

func TestDeriveKey_MissingCredentialUsesUndefinedSalt(t *testing.T) {
	svc := NewKeyChainService()

	// An absent credential is replaced by the literal salt "undefined".
	k1 := svc.DeriveKey("pw", "")
	k2 := svc.DeriveKey("pw", "undefined")

	if !bytes.Equal(k1, k2) {
		t.Fatalf("expected empty credential to derive with salt %q", "undefined")
	}
}

func TestDeriveKey_EmptyPasswordStillDerives(t *testing.T) {
	svc := NewKeyChainService()

	k := svc.DeriveKey("", "abcd1234abcd1234")
	if len(k) != 32 {
		t.Fatalf("secret length = %d, want 32", len(k))
	}
}

func TestSaltFromCredential_ShortCredential(t *testing.T) {
	if got := SaltFromCredential("short"); got != "short" {
		t.Fatalf("salt = %q, want %q", got, "short")
	}
	if got := SaltFromCredential(""); got != "undefined" {
		t.Fatalf("salt = %q, want %q", got, "undefined")
	}
}

func TestEncryptField_DecryptRoundTrip(t *testing.T) {
	svc := NewKeyChainService()
	secret := svc.DeriveKey("pw", "abcd1234abcd1234")

	cipherText, err := svc.EncryptField("hunter2", secret)
	if err != nil {
		t.Fatalf("EncryptField error: %v", err)
	}
	if cipherText == "hunter2" {
		t.Fatalf("ciphertext equals plaintext")
	}

	if got := svc.DecryptField(cipherText, secret); got != "hunter2" {
		t.Fatalf("DecryptField = %q, want %q", got, "hunter2")
	}
}

func TestEncryptField_FreshNoncePerCall(t *testing.T) {
	svc := NewKeyChainService()
	secret := svc.DeriveKey("pw", "abcd1234abcd1234")

	c1, err := svc.EncryptField("same value", secret)
	if err != nil {
		t.Fatalf("EncryptField error: %v", err)
	}
	c2, err := svc.EncryptField("same value", secret)
	if err != nil {
		t.Fatalf("EncryptField error: %v", err)
	}
	if c1 == c2 {
		t.Fatalf("expected distinct ciphertexts for repeated encryption")
	}
}

func TestDecryptField_WrongSecretYieldsEmptyWithoutError(t *testing.T) {
	svc := NewKeyChainService()
	right := svc.DeriveKey("right password", "abcd1234abcd1234")
	wrong := svc.DeriveKey("wrong password", "abcd1234abcd1234")

	cipherText, err := svc.EncryptField("top secret", right)
	if err != nil {
		t.Fatalf("EncryptField error: %v", err)
	}

	// Must not panic; must not recover the plaintext.
	if got := svc.DecryptField(cipherText, wrong); got != "" {
		t.Fatalf("DecryptField with wrong secret = %q, want empty", got)
	}
}

func TestDecryptField_GarbageInput(t *testing.T) {
	svc := NewKeyChainService()
	secret := svc.DeriveKey("pw", "abcd1234abcd1234")

	for _, input := range []string{"", "not-base64!!", "YWJj"} {
		if got := svc.DecryptField(input, secret); got != "" {
			t.Fatalf("DecryptField(%q) = %q, want empty", input, got)
		}
	}
}

func TestDecryptFieldStrict_ReportsAuthFailure(t *testing.T) {
	svc := NewKeyChainService()
	right := svc.DeriveKey("right password", "abcd1234abcd1234")
	wrong := svc.DeriveKey("wrong password", "abcd1234abcd1234")

	cipherText, err := svc.EncryptField("top secret", right)
	if err != nil {
		t.Fatalf("EncryptField error: %v", err)
	}

	if _, err = svc.DecryptFieldStrict(cipherText, wrong); err == nil {
		t.Fatalf("expected error from strict decryption with wrong secret")
	}
}

func TestEncryptRecord_DecryptRoundTrip(t *testing.T) {
	svc := NewKeyChainService()
	secret := svc.DeriveKey("correct-horse", "abcd1234abcd1234")

	plain := models.Record{
		"website":  "example.com",
		"username": "alice",
		"password": "hunter2",
	}

	enc, err := svc.EncryptRecord(models.Websites, plain, secret)
	if err != nil {
		t.Fatalf("EncryptRecord error: %v", err)
	}
	for _, field := range models.Websites.Fields {
		if enc[field] == plain[field] {
			t.Fatalf("field %s left in plaintext", field)
		}
	}

	got := svc.DecryptRecord(models.Websites, enc, secret)
	for _, field := range models.Websites.Fields {
		if got[field] != plain[field] {
			t.Fatalf("field %s = %q, want %q", field, got[field], plain[field])
		}
	}
}

func TestDecryptRecord_WrongSecretGarblesEveryField(t *testing.T) {
	svc := NewKeyChainService()
	k1 := svc.DeriveKey("one", "abcd1234abcd1234")
	k2 := svc.DeriveKey("two", "abcd1234abcd1234")

	plain := models.NewRecord(models.Notes, "grocery list", "milk, eggs")
	enc, err := svc.EncryptRecord(models.Notes, plain, k1)
	if err != nil {
		t.Fatalf("EncryptRecord error: %v", err)
	}

	got := svc.DecryptRecord(models.Notes, enc, k2)
	for _, field := range models.Notes.Fields {
		if got[field] == plain[field] && plain[field] != "" {
			t.Fatalf("field %s decrypted with wrong secret", field)
		}
	}
}
