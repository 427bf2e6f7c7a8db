package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/passnode/passnode/internal/keychain"
)

// Session is the explicit per-login context passed into every vault
// operation. It carries the master secret derived once on authentication and
// the opaque storage credential. Holding this state in a value instead of a
// global lets multiple vault kinds (and, in tests, multiple simulated
// sessions) coexist without interference.
//
// The secret lives only in process memory and is dropped with the session.
type Session struct {
	id         uuid.UUID
	credential string
	secret     keychain.MasterSecret
	issuer     string
}

// NewSession derives the master secret from masterPassword and credential
// and returns the session context. credential may be empty: the session then
// operates local-only and reports Synced() == false.
func NewSession(crypto keychain.KeyChainService, masterPassword, credential string) *Session {
	return &Session{
		id:         uuid.New(),
		credential: credential,
		secret:     crypto.DeriveKey(masterPassword, credential),
		issuer:     issuerFromCredential(credential),
	}
}

// ID returns the session identifier used to correlate log entries.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Credential returns the opaque storage credential; empty means local-only.
func (s *Session) Credential() string {
	return s.credential
}

// Secret returns the master secret of this session.
func (s *Session) Secret() keychain.MasterSecret {
	return s.secret
}

// Synced reports whether a storage credential is configured. Without one,
// pulls and pushes are silent no-ops and data stays local-only.
func (s *Session) Synced() bool {
	return s.credential != ""
}

// Issuer returns the issuer claim of the credential for status display, or
// "" when the credential is absent or not a parseable JWT. The claim is read
// without signature verification: the engine treats the credential as opaque
// and only the storage service authenticates it.
func (s *Session) Issuer() string {
	return s.issuer
}

func issuerFromCredential(credential string) string {
	if credential == "" {
		return ""
	}

	token, _, err := jwt.NewParser().ParseUnverified(credential, jwt.MapClaims{})
	if err != nil {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	issuer, err := claims.GetIssuer()
	if err != nil {
		return ""
	}
	return issuer
}
