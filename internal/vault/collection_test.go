package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/passnode/passnode/internal/keychain"
	"github.com/passnode/passnode/models"
)

func newTestCollection(t *testing.T, kind models.Kind) (*Collection, keychain.KeyChainService, keychain.MasterSecret) {
	t.Helper()
	crypto := keychain.NewKeyChainService()
	secret := crypto.DeriveKey("correct-horse", "abcd1234abcd1234")
	return NewCollection(kind, crypto), crypto, secret
}

func TestAdd_EncryptsAndAppends(t *testing.T) {
	col, _, secret := newTestCollection(t, models.Websites)

	plain := models.Record{"website": "example.com", "username": "alice", "password": "hunter2"}
	require.NoError(t, col.Add(plain, secret))
	require.Equal(t, 1, col.Len())

	// Stored form must be ciphertext.
	stored := col.Records()[0]
	for _, field := range models.Websites.Fields {
		assert.NotEqual(t, plain[field], stored[field])
	}

	// Decrypted view must recover the original triple.
	got := col.List(secret)
	require.Len(t, got, 1)
	assert.Equal(t, plain, got[0])
}

func TestAdd_DuplicateKeyRejected(t *testing.T) {
	col, _, secret := newTestCollection(t, models.Websites)

	first := models.Record{"website": "example.com", "username": "alice", "password": "one"}
	second := models.Record{"website": "example.com", "username": "bob", "password": "two"}

	require.NoError(t, col.Add(first, secret))

	err := col.Add(second, secret)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.Equal(t, 1, col.Len())

	// Matching is case-sensitive: a different case is a different key.
	third := models.Record{"website": "Example.com", "username": "bob", "password": "two"}
	assert.NoError(t, col.Add(third, secret))
	assert.Equal(t, 2, col.Len())
}

func TestRemove_ByDesignatedField(t *testing.T) {
	col, _, secret := newTestCollection(t, models.Notes)

	require.NoError(t, col.Add(models.NewRecord(models.Notes, "first", "aaa"), secret))
	require.NoError(t, col.Add(models.NewRecord(models.Notes, "second", "bbb"), secret))

	assert.Equal(t, 1, col.Remove("first", secret))
	assert.Equal(t, 0, col.Remove("first", secret))

	got := col.List(secret)
	require.Len(t, got, 1)
	for _, rec := range got {
		assert.NotEqual(t, "first", rec.Key(models.Notes))
	}
}

func TestRemove_AllMatchesWhenInvariantAlreadyBroken(t *testing.T) {
	crypto := keychain.NewKeyChainService()
	secret := crypto.DeriveKey("pw", "abcd1234abcd1234")

	// An externally injected snapshot may violate uniqueness; Remove must
	// take out every match, not just the first.
	dup1, err := crypto.EncryptRecord(models.Notes, models.NewRecord(models.Notes, "dup", "v1"), secret)
	require.NoError(t, err)
	dup2, err := crypto.EncryptRecord(models.Notes, models.NewRecord(models.Notes, "dup", "v2"), secret)
	require.NoError(t, err)
	other, err := crypto.EncryptRecord(models.Notes, models.NewRecord(models.Notes, "other", "v3"), secret)
	require.NoError(t, err)

	col := FromRecords(models.Notes, crypto, []models.Record{dup1, other, dup2})

	assert.Equal(t, 2, col.Remove("dup", secret))
	assert.Equal(t, 1, col.Len())
}

func TestRemoveRecord_PlaintextAndEncryptedTargets(t *testing.T) {
	col, crypto, secret := newTestCollection(t, models.Websites)

	require.NoError(t, col.Add(models.Record{"website": "a.com", "username": "u", "password": "p"}, secret))
	require.NoError(t, col.Add(models.Record{"website": "b.com", "username": "u", "password": "p"}, secret))

	// Plaintext target.
	assert.Equal(t, 1, col.RemoveRecord(models.Record{"website": "a.com"}, secret))

	// Encrypted target, as handed out by Records().
	enc, err := crypto.EncryptRecord(models.Websites, models.Record{"website": "b.com", "username": "u", "password": "p"}, secret)
	require.NoError(t, err)
	assert.Equal(t, 1, col.RemoveRecord(enc, secret))

	assert.Equal(t, 0, col.Len())
}

func TestList_PreservesInsertionOrder(t *testing.T) {
	col, _, secret := newTestCollection(t, models.Notes)

	names := []string{"charlie", "alpha", "bravo"}
	for _, n := range names {
		require.NoError(t, col.Add(models.NewRecord(models.Notes, n, "body"), secret))
	}

	got := col.List(secret)
	require.Len(t, got, len(names))
	for i, n := range names {
		assert.Equal(t, n, got[i].Key(models.Notes))
	}
}

func TestSnapshot_RoundTrip(t *testing.T) {
	col, crypto, secret := newTestCollection(t, models.Cards)

	plain := models.Record{
		"bankname":       "First National",
		"cardtype":       "credit",
		"cardnumber":     "4111111111111111",
		"cardholdername": "ALICE EXAMPLE",
		"cvv":            "123",
		"expirydate":     "12/28",
	}
	require.NoError(t, col.Add(plain, secret))

	data, err := col.Snapshot()
	require.NoError(t, err)

	parsed, err := ParseSnapshot(models.Cards, crypto, data)
	require.NoError(t, err)
	require.Equal(t, 1, parsed.Len())

	got := parsed.List(secret)
	assert.Equal(t, plain, got[0])
}

func TestSnapshot_EmptyCollectionIsJSONArray(t *testing.T) {
	col, _, _ := newTestCollection(t, models.Websites)

	data, err := col.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestParseSnapshot_Malformed(t *testing.T) {
	crypto := keychain.NewKeyChainService()

	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: "definitely not json"},
		{name: "object instead of array", data: `{"website":"x"}`},
		{name: "array of scalars", data: `[1,2,3]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSnapshot(models.Websites, crypto, []byte(tt.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedSnapshot)
		})
	}
}

func TestParseSnapshot_NullBodyIsEmpty(t *testing.T) {
	crypto := keychain.NewKeyChainService()

	col, err := ParseSnapshot(models.Websites, crypto, []byte("null"))
	require.NoError(t, err)
	assert.Equal(t, 0, col.Len())
}

func TestFind_DecryptsMatch(t *testing.T) {
	col, _, secret := newTestCollection(t, models.Websites)

	plain := models.Record{"website": "example.com", "username": "alice", "password": "hunter2"}
	require.NoError(t, col.Add(plain, secret))

	got, ok := col.Find("example.com", secret)
	require.True(t, ok)
	assert.Equal(t, plain, got)

	_, ok = col.Find("missing.com", secret)
	assert.False(t, ok)
}
