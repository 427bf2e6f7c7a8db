package adapter

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_store_mock.go -package=mock

import (
	"context"

	"github.com/passnode/passnode/models"
)

// RemoteStore is the capability the vault engine consumes to persist
// snapshots. The store is content-addressed and append-only: uploads are
// immutable, and the current snapshot for a name is discovered by listing
// all uploads tagged with that name and taking the most recent.
//
// Every operation authenticates with an opaque credential string supplied
// by the caller; the adapter never inspects or validates its format.
type RemoteStore interface {
	// Upload stores data immutably under name and returns its content
	// identifier.
	Upload(ctx context.Context, credential, name string, data []byte) (models.CID, error)

	// List returns all uploads tagged with name, in the store's own order.
	List(ctx context.Context, credential, name string) ([]models.Upload, error)

	// Fetch retrieves the bytes of one uploaded blob by content identifier.
	Fetch(ctx context.Context, credential string, cid models.CID) ([]byte, error)
}
