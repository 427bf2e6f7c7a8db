package service

import (
	"github.com/passnode/passnode/internal/adapter"
	"github.com/passnode/passnode/internal/keychain"
	"github.com/passnode/passnode/internal/logger"
	"github.com/passnode/passnode/internal/store"
	"github.com/passnode/passnode/models"
)

// ClientServices aggregates everything the client runtime needs: the key
// chain, one sync engine per vault kind, and the background refresh job.
type ClientServices struct {
	CryptoService keychain.KeyChainService
	Vaults        map[string]VaultService
	RefreshJob    RefreshJob
}

// NewClientServices wires the per-kind sync engines over one remote store
// adapter and one shared snapshot cache. cache may be nil to disable local
// fallback.
func NewClientServices(remote adapter.RemoteStore, cache store.SnapshotCache, log *logger.Logger) *ClientServices {
	cryptoSvc := keychain.NewKeyChainService()

	vaults := make(map[string]VaultService, len(models.Kinds()))
	for _, kind := range models.Kinds() {
		vaults[kind.Name] = NewSyncEngine(kind, cryptoSvc, remote, cache, log)
	}

	return &ClientServices{
		CryptoService: cryptoSvc,
		Vaults:        vaults,
		RefreshJob:    NewRefreshJob(vaults, log),
	}
}

// Vault returns the engine for kind.
func (s *ClientServices) Vault(kind models.Kind) VaultService {
	return s.Vaults[kind.Name]
}
