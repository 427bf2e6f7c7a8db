package client

import (
	"context"
	"errors"

	"github.com/passnode/passnode/internal/config"
	"github.com/passnode/passnode/internal/logger"
	"github.com/passnode/passnode/internal/service"
	"github.com/passnode/passnode/internal/tui"
)

// App drives the client lifecycle: unlock, browse, optional re-lock loop.
type App struct {
	services *service.ClientServices
	tui      *tui.TUI
	cfg      *config.ClientConfig
	logger   *logger.Logger
}

func NewApp(services *service.ClientServices, ui *tui.TUI, cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	if services == nil || ui == nil || cfg == nil {
		return nil, errors.New("client app: missing dependencies")
	}
	return &App{services: services, tui: ui, cfg: cfg, logger: log}, nil
}

// Run implements [Client]. It blocks until the user quits. Locking the
// vault drops the session and returns to the unlock screen; the master
// secret of the dropped session is never reused.
func (a *App) Run() error {
	ctx := context.Background()

	for {
		sess, err := a.tui.UnlockFlow(ctx, a.cfg.App.Credential)
		if err != nil {
			if errors.Is(err, tui.ErrUserQuit) {
				return nil
			}
			return err
		}

		a.logger.Info().
			Stringer("session", sess.ID()).
			Bool("synced", sess.Synced()).
			Msg("vault unlocked")

		a.services.RefreshJob.Start(ctx, sess, a.cfg.Workers.RefreshInterval)

		lock, err := a.tui.MainLoop(ctx, sess)
		a.services.RefreshJob.Stop()
		if err != nil {
			return err
		}
		if !lock {
			return nil
		}

		a.logger.Info().Stringer("session", sess.ID()).Msg("vault locked")
	}
}
