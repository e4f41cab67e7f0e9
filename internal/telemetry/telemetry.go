package telemetry

import (
	"context"

	"github.com/NitishVankina/ServerPet/internal/engine"
	"github.com/NitishVankina/ServerPet/internal/errors"
	"github.com/NitishVankina/ServerPet/internal/logger"
)

type service struct {
	repo Repository
}

// noopRecorder is used when telemetry is disabled.
type noopRecorder struct{}

func NewService(cfg Config) (Recorder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(ErrInvalidConfig, err)
	}

	if !cfg.Enabled {
		logger.Debug().Msg("telemetry disabled, using no-op recorder")
		return &noopRecorder{}, nil
	}

	repo, err := NewRepository(cfg)
	if err != nil {
		return nil, err
	}

	logger.Debug().Str("db_path", cfg.DBPath).Msg("telemetry journal initialized")

	return &service{repo: repo}, nil
}

func (s *service) Record(ctx context.Context, snapshot engine.Snapshot) error {
	select {
	case <-ctx.Done():
		return errors.Wrap(ErrOperationTimeout, ctx.Err())
	default:
		return s.repo.Store(ctx, snapshot)
	}
}

func (s *service) Close() error {
	return s.repo.Close()
}

func (*noopRecorder) Record(context.Context, engine.Snapshot) error { return nil }

func (*noopRecorder) Close() error { return nil }
