package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/VoxDroid/smenu/internal/db"
	"github.com/VoxDroid/smenu/internal/registry"
	"github.com/VoxDroid/smenu/internal/resolver"
	"github.com/VoxDroid/smenu/internal/statuslog"
)

// openStore opens the configured database.
func openStore() (*registry.Repository, error) {
	repo, err := registry.Open(settings.DBPath)
	if err != nil {
		if db.IsMissing(err) {
			return nil, fmt.Errorf("%w (run `smenu init` to create it)", err)
		}
		return nil, err
	}
	logger.Debug("store opened", zap.String("path", repo.Path()), zap.Any("columns", repo.Capabilities()))
	return repo, nil
}

func newResolver() *resolver.Resolver {
	return resolver.New(resolver.Options{
		DefaultRoot: settings.DefaultRoot,
		Python:      settings.Python,
		Shell:       settings.Shell,
	})
}

// openStatus opens the status log. A status log that cannot be opened is
// not fatal: events are dropped with a warning.
func openStatus() *statuslog.Log {
	l, err := statuslog.Open(settings.StatusFile)
	if err != nil {
		logger.Warn("status log disabled", zap.String("path", settings.StatusFile), zap.Error(err))
		return statuslog.Nop()
	}
	return l
}

