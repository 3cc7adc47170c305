package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/storefront/internal/logger"
	"github.com/mesh-intelligence/storefront/pkg/storefront"
)

// openSession resolves the data directory, builds the logger, and opens the
// configured backend. The caller must close the session.
func (a *app) openSession(ctx context.Context) (*storefront.Session, error) {
	dataDir, err := a.resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}
	log, err := logger.New(a.logCfg)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	cfg := a.cfg
	cfg.DataDir = dataDir
	s, err := storefront.Open(ctx, cfg, storefront.WithLogger(log))
	if err != nil {
		log.Sync()
		return nil, err
	}
	log.Debug("data dir resolved", zap.String("dir", dataDir))
	return s, nil
}

// withSession opens a session, runs fn, and closes the session. A close
// failure is reported only when fn succeeded.
func (a *app) withSession(ctx context.Context, fn func(s *storefront.Session) error) (err error) {
	s, err := a.openSession(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close session: %w", cerr)
		}
	}()
	return fn(s)
}
