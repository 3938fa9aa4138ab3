package repository

import (
	"context"

	"ikedadada/go-onionoo/internal/domain/entity"
)

// RelayRepository reads the relay directory from its source.
// Every call goes to the source; nothing is cached between calls.
type RelayRepository interface {
	FetchAll(ctx context.Context) (entity.Directory, error)
}
