package usecase

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"ikedadada/go-onionoo/internal/domain/entity"
	"ikedadada/go-onionoo/internal/domain/repository"
	"ikedadada/go-onionoo/internal/logging"
)

// RelayDirectoryUseCase fetches the relay directory and applies the
// entry/exit filters. Each call performs exactly one fetch.
type RelayDirectoryUseCase interface {
	FetchAllRelays(ctx context.Context) (RelayDirectoryOutput, error)
	FetchEntryNodes(ctx context.Context) (RelayDirectoryOutput, error)
	FetchExitNodes(ctx context.Context) (RelayDirectoryOutput, error)
}

type RelayDirectoryOutput struct {
	Directory entity.Directory
}

type relayDirectoryUseCaseImpl struct {
	relayRepo repository.RelayRepository
	log       logrus.FieldLogger
}

func NewRelayDirectoryUseCase(relayRepo repository.RelayRepository, log logrus.FieldLogger) RelayDirectoryUseCase {
	if log == nil {
		log = logging.Discard()
	}
	return &relayDirectoryUseCaseImpl{
		relayRepo: relayRepo,
		log:       log,
	}
}

func (uc *relayDirectoryUseCaseImpl) FetchAllRelays(ctx context.Context) (RelayDirectoryOutput, error) {
	dir, err := uc.relayRepo.FetchAll(ctx)
	if err != nil {
		return RelayDirectoryOutput{}, fmt.Errorf("fetch relays failed: %w", err)
	}
	uc.log.WithField("relays", dir.Len()).Info("fetched relay directory")
	return RelayDirectoryOutput{Directory: dir}, nil
}

func (uc *relayDirectoryUseCaseImpl) FetchEntryNodes(ctx context.Context) (RelayDirectoryOutput, error) {
	return uc.fetchFiltered(ctx, "entry", (*entity.Relay).IsEntry)
}

func (uc *relayDirectoryUseCaseImpl) FetchExitNodes(ctx context.Context) (RelayDirectoryOutput, error) {
	return uc.fetchFiltered(ctx, "exit", (*entity.Relay).IsExit)
}

func (uc *relayDirectoryUseCaseImpl) fetchFiltered(ctx context.Context, kind string, keep func(*entity.Relay) bool) (RelayDirectoryOutput, error) {
	out, err := uc.FetchAllRelays(ctx)
	if err != nil {
		return RelayDirectoryOutput{}, err
	}
	filtered := out.Directory.Filter(keep)
	uc.log.WithFields(logrus.Fields{"kind": kind, "matched": filtered.Len(), "total": out.Directory.Len()}).Info("filtered relay directory")
	return RelayDirectoryOutput{Directory: filtered}, nil
}
